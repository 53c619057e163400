package snake

import (
	"math"

	"github.com/pthm-cable/slither/config"
)

// Speed returns the base movement speed for a length. Piecewise linear between
// the two anchor lengths and clamped outside them, so it never increases with
// length.
func Speed(cfg config.MovementConfig, length float64) float64 {
	switch {
	case length <= cfg.SpeedMaxLength:
		return cfg.SpeedMax
	case length >= cfg.SpeedMinLength:
		return cfg.SpeedMin
	}
	t := (length - cfg.SpeedMaxLength) / (cfg.SpeedMinLength - cfg.SpeedMaxLength)
	return cfg.SpeedMax + (cfg.SpeedMin-cfg.SpeedMax)*t
}

// VisualScale returns the radius multiplier for a length: 1 at the initial
// length, rising logarithmically to MaxScale at MaxScaleLength and capped there.
func VisualScale(cfg config.ScaleConfig, initialLength, length float64) float64 {
	if length <= initialLength {
		return 1
	}
	if length >= cfg.MaxScaleLength {
		return cfg.MaxScale
	}
	t := math.Log(length/initialLength) / math.Log(cfg.MaxScaleLength/initialLength)
	return 1 + (cfg.MaxScale-1)*t
}

// TaperFactor returns the radius factor of body segment index (1-based from
// the segment behind the head). It shrinks linearly toward the tail and never
// falls below TaperFloor.
func TaperFactor(cfg config.ScaleConfig, index int) float64 {
	if index <= 1 {
		return 1
	}
	return math.Max(cfg.TaperFloor, 1-float64(index-1)*cfg.TaperStep)
}

// ZoomTarget returns the camera zoom target for a length. Zoom falls
// logarithmically from BaseZoom as the snake grows, stops changing past
// LengthCap and never drops below MinZoom. Boosting applies BoostFactor.
func ZoomTarget(cfg config.CameraConfig, initialLength, length float64, boosting bool) float64 {
	capped := math.Min(length, cfg.LengthCap)
	progress := 0.0
	if capped > initialLength && cfg.LengthCap > initialLength {
		progress = math.Log1p(capped-initialLength) / math.Log1p(cfg.LengthCap-initialLength)
	}
	zoom := math.Max(cfg.MinZoom, cfg.BaseZoom-cfg.MaxZoomOut*progress)
	if boosting {
		zoom *= cfg.BoostFactor
	}
	return zoom
}

// DecayRate returns the passive decay rate (length per second) for a length.
// Brackets must be sorted descending; the first one the length exceeds wins.
func DecayRate(cfg config.DecayConfig, length float64) float64 {
	for _, b := range cfg.Brackets {
		if length > b.Above {
			return b.Rate
		}
	}
	return 0
}

// TurnPenalty returns the factor applied to the base turn rate. It is 1 up to
// the first threshold and drops logarithmically past each threshold, floored
// at MinFactor.
func TurnPenalty(cfg config.SteeringConfig, length float64) float64 {
	f := 1.0
	if t := cfg.FirstThreshold; t > 0 && length > t {
		f /= 1 + cfg.FirstGain*math.Log(length/t)
	}
	if t := cfg.SecondThreshold; t > 0 && length > t {
		f /= 1 + cfg.SecondGain*math.Log(length/t)
	}
	return math.Max(f, cfg.MinFactor)
}
