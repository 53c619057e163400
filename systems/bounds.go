package systems

import (
	"github.com/pthm-cable/slither/snake"
	"github.com/pthm-cable/slither/vmath"
)

// Bounds is the playfield rectangle [0, Width] x [0, Height].
type Bounds struct {
	Width, Height float64
}

// Contains reports whether p lies inside the rectangle.
func (b Bounds) Contains(p vmath.Vec2) bool {
	return p.X >= 0 && p.Y >= 0 && p.X <= b.Width && p.Y <= b.Height
}

// Enforce kills s if its head has left the rectangle. Returns true only
// for the tick on which the kill happens.
func (b Bounds) Enforce(s *snake.Snake) bool {
	if !s.IsAlive() || b.Contains(s.Position()) {
		return false
	}
	s.Kill()
	return true
}

// headBodySkip is the number of leading segments of the other snake ignored
// by the head-vs-body check, so head-on contact does not count.
const headBodySkip = 1

// HeadBodyHits returns the indices of live snakes whose head touches another
// snake's body. Snakes are not killed here, so the result does not depend on
// the order of the slice.
func HeadBodyHits(snakes []*snake.Snake, dst []int) []int {
	for i, s := range snakes {
		if !s.IsAlive() {
			continue
		}
		for j, other := range snakes {
			if i == j {
				continue
			}
			if s.HeadHitsBody(other, headBodySkip) {
				dst = append(dst, i)
				break
			}
		}
	}
	return dst
}
