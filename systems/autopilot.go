package systems

import (
	"github.com/pthm-cable/slither/components"
	"github.com/pthm-cable/slither/config"
	"github.com/pthm-cable/slither/snake"
	"github.com/pthm-cable/slither/vmath"
)

// Autopilot produces intents for bot snakes. Priorities, highest first:
// turn back toward the center near the walls, seek the nearest pellet, wander.
type Autopilot struct {
	cfg           config.AutopilotConfig
	width, height float64
	noise         *WanderNoise
	pellets       *PelletField
}

// NewAutopilot creates an autopilot for a width x height world.
func NewAutopilot(cfg config.AutopilotConfig, width, height float64, noise *WanderNoise, pellets *PelletField) *Autopilot {
	return &Autopilot{
		cfg:     cfg,
		width:   width,
		height:  height,
		noise:   noise,
		pellets: pellets,
	}
}

// Steer returns the intent for one bot at simulated time t.
func (a *Autopilot) Steer(s *snake.Snake, bot *components.Bot, t float64) components.Intent {
	pos := s.Position()

	if edgeDistance(pos.X, pos.Y, a.width, a.height) < a.cfg.BoundaryBuffer {
		bot.HasTarget = false
		center := vmath.V(a.width/2, a.height/2)
		return components.Intent{Direction: vmath.Normalize(vmath.Sub(center, pos))}
	}

	var dir vmath.Vec2
	if target, ok := a.pellets.Nearest(pos, a.cfg.SeekRadius); ok {
		bot.Target, bot.HasTarget = target, true
		dir = vmath.Sub(target, pos)
	} else {
		bot.HasTarget = false
		dir = vmath.FromPolar(1, a.noise.Heading(bot.NoiseOffset, t))
	}

	boost := s.Length() > a.cfg.BoostMinLength &&
		a.noise.Impulse(bot.NoiseOffset, t) > a.cfg.BoostThreshold

	return components.Intent{Direction: vmath.Normalize(dir), Boost: boost}
}
