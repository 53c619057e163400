package snake

import (
	"math"

	"github.com/pthm-cable/slither/config"
	"github.com/pthm-cable/slither/vmath"
)

// Steer rotates heading toward desired by at most the length-penalized turn
// rate times dt. It snaps to the target when the remaining angle fits in one
// step, so it never overshoots. A desired direction inside the deadzone keeps
// the current heading.
func Steer(cfg config.SteeringConfig, heading float64, desired vmath.Vec2, length, dt float64) float64 {
	if vmath.Len(desired) <= cfg.InputDeadzone {
		return heading
	}
	target := vmath.Angle(desired)
	diff := vmath.AngleDiff(heading, target)
	maxTurn := cfg.BaseTurnRate * TurnPenalty(cfg, length) * dt
	if math.Abs(diff) <= maxTurn {
		return vmath.NormalizeAngle(target)
	}
	return vmath.NormalizeAngle(heading + math.Copysign(maxTurn, diff))
}
