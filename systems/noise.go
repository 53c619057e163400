package systems

import (
	"math"

	"github.com/ojrac/opensimplex-go"
)

// boostChannel offsets the boost impulse away from the wander channel so the
// two signals are uncorrelated.
const boostChannel = 1000.0

// WanderNoise provides smooth per-bot wander headings and boost impulses.
// Each bot samples its own row of 2D simplex noise, with time along the
// other axis.
type WanderNoise struct {
	noise opensimplex.Noise
	scale float64 // noise units per simulated second
}

// NewWanderNoise creates a wander source for the given seed.
func NewWanderNoise(seed int64, scale float64) *WanderNoise {
	return &WanderNoise{
		noise: opensimplex.New(seed),
		scale: scale,
	}
}

// Heading returns a slowly varying heading in [-Pi, Pi] for the bot at offset.
func (w *WanderNoise) Heading(offset, t float64) float64 {
	return w.noise.Eval2(offset, t*w.scale) * math.Pi
}

// Impulse returns a slowly varying value in [0, 1] for the bot at offset.
func (w *WanderNoise) Impulse(offset, t float64) float64 {
	v := (w.noise.Eval2(offset+boostChannel, t*w.scale) + 1) / 2
	return clamp01(v)
}
