// Package snake implements the body-following and length-economy simulation of
// a single snake: the arc-length trail, adaptive segment spacing, the
// boost/decay/growth economy and the curves derived from length.
package snake

import (
	"math"

	"github.com/pthm-cable/slither/config"
	"github.com/pthm-cable/slither/vmath"
)

// BoostState is the boost sub-machine state.
type BoostState uint8

const (
	BoostIdle BoostState = iota
	BoostActive
)

func (b BoostState) String() string {
	if b == BoostActive {
		return "boosting"
	}
	return "idle"
}

// Segment is one body unit anchored TargetDistance behind the head.
type Segment struct {
	Pos            vmath.Vec2
	TargetDistance float64
	IsHead         bool
}

// Input is the per-tick control signal.
type Input struct {
	Direction vmath.Vec2 // desired heading; near-zero means no correction
	Boost     bool
}

// Snake owns its trail, segments and length economy. All mutation goes
// through Tick, Grow, ConsumeLength, AddValue and Kill; once dead every
// mutator is a no-op.
type Snake struct {
	cfg     config.SnakeConfig
	trail   *Trail
	spacing *SpacingPolicy

	segments []Segment
	posBuf   []vmath.Vec2

	pos     vmath.Vec2
	heading float64

	length float64
	value  float64
	boost  BoostState

	lengthBurned     float64
	lengthDecayed    float64
	lengthGained     float64
	decayAccumulator float64

	speed      float64
	scale      float64
	headRadius float64
	bodyRadius float64

	alive bool
}

// New creates a live snake of cfg.InitialLength at pos facing heading, with
// its body laid out in a straight line behind the head.
func New(cfg config.SnakeConfig, pos vmath.Vec2, heading float64) *Snake {
	s := &Snake{
		cfg:     cfg,
		spacing: NewSpacingPolicy(cfg.Spacing),
		pos:     pos,
		heading: vmath.NormalizeAngle(heading),
		length:  cfg.InitialLength,
		alive:   true,
	}

	dists := s.spacing.Table(s.length)
	span := dists[len(dists)-1] + cfg.Trail.RetentionMargin
	s.trail = NewTrail(cfg.Trail, pos)
	s.trail.Seed(s.heading, span)
	s.trail.SetRetention(span)

	s.reconcileSegments()
	s.follow()
	s.refreshCurves()
	return s
}

// Tick advances the snake by dt seconds: steer, move, record the trail,
// apply boost cost and decay, then lay out the body and refresh the curves.
// dt is expected to be clamped by the caller.
func (s *Snake) Tick(in Input, dt float64) {
	if !s.alive || dt <= 0 {
		return
	}

	s.heading = Steer(s.cfg.Steering, s.heading, in.Direction, s.length, dt)
	s.setBoost(in.Boost)

	s.pos = vmath.Add(s.pos, vmath.FromPolar(s.MoveSpeed()*dt, s.heading))
	s.trail.Record(s.pos)

	if s.boost == BoostActive {
		s.ConsumeLength(s.cfg.Boost.CostPerSecond * dt)
	}
	s.decay(dt)

	s.follow()
	s.refreshCurves()
}

// Grow adds amount to length and immediately lays out the new tail segments.
func (s *Snake) Grow(amount float64) {
	if !s.alive || amount <= 0 {
		return
	}
	s.length += amount
	s.lengthGained += amount
	s.reconcileSegments()
	s.follow()
	s.refreshCurves()
}

// ConsumeLength removes up to amount of length without going below the boost
// floor and returns how much was removed. The removed amount counts toward
// LengthBurned.
func (s *Snake) ConsumeLength(amount float64) float64 {
	if !s.alive || amount <= 0 {
		return 0
	}
	floor := s.cfg.Boost.MinLength
	if s.length <= floor {
		s.boost = BoostIdle
		return 0
	}
	next := math.Max(floor, s.length-amount)
	consumed := s.length - next
	s.length = next
	s.lengthBurned += consumed
	s.afterShrink()
	return consumed
}

// AddValue credits a reward. Value is independent of length.
func (s *Snake) AddValue(amount float64) {
	if !s.alive || amount <= 0 {
		return
	}
	s.value += amount
}

// Kill marks the snake dead. The body stays in place for display.
func (s *Snake) Kill() {
	s.alive = false
	s.boost = BoostIdle
}

// CollidesWith reports snake-vs-snake collision. Collision resolution is
// disabled, so it always reports false.
func (s *Snake) CollidesWith(other *Snake) bool {
	return false
}

// HeadHitsBody reports whether this snake's head overlaps any of other's
// segments from index skip onward.
func (s *Snake) HeadHitsBody(other *Snake, skip int) bool {
	if other == nil || !s.alive || !other.alive {
		return false
	}
	if skip < 0 {
		skip = 0
	}
	for i := skip; i < len(other.segments); i++ {
		r := s.headRadius + other.SegmentRadius(i)
		if vmath.DistanceSq(s.pos, other.segments[i].Pos) < r*r {
			return true
		}
	}
	return false
}

// setBoost applies the wants-boost signal to the boost sub-machine.
func (s *Snake) setBoost(want bool) {
	if want && s.length > s.cfg.Boost.MinLength {
		s.boost = BoostActive
		return
	}
	s.boost = BoostIdle
}

// decay banks dt and, once a full interval is banked, removes
// rate*banked length, floored at the decay floor.
func (s *Snake) decay(dt float64) {
	floor := s.cfg.Decay.Floor
	if s.length <= floor {
		s.decayAccumulator = 0
		return
	}
	s.decayAccumulator += dt
	if s.decayAccumulator < s.cfg.Decay.Interval {
		return
	}

	loss := DecayRate(s.cfg.Decay, s.length) * s.decayAccumulator
	s.decayAccumulator = 0
	if loss <= 0 {
		return
	}
	next := math.Max(floor, s.length-loss)
	s.lengthDecayed += s.length - next
	s.length = next
	s.afterShrink()
}

func (s *Snake) afterShrink() {
	if s.length <= s.cfg.Boost.MinLength {
		s.boost = BoostIdle
	}
	s.reconcileSegments()
}

// reconcileSegments makes the segment count match floor(length), trimming
// from or appending to the tail. Positions are assigned by follow.
func (s *Snake) reconcileSegments() {
	n := SegmentCount(s.length)
	if len(s.segments) > n {
		s.segments = s.segments[:n]
		return
	}
	for len(s.segments) < n {
		s.segments = append(s.segments, Segment{IsHead: len(s.segments) == 0})
	}
}

// follow places every segment on the recorded path at its target distance.
func (s *Snake) follow() {
	dists := s.spacing.Table(s.length)
	n := len(s.segments)
	s.trail.SetRetention(dists[n-1] + s.cfg.Trail.RetentionMargin)

	if cap(s.posBuf) < n {
		s.posBuf = make([]vmath.Vec2, n, 2*n)
	}
	s.posBuf = s.posBuf[:n]
	s.trail.SampleSorted(dists[:n], s.posBuf)

	for i := range s.segments {
		s.segments[i].Pos = s.posBuf[i]
		s.segments[i].TargetDistance = dists[i]
	}
}

func (s *Snake) refreshCurves() {
	s.speed = Speed(s.cfg.Movement, s.length)
	s.scale = VisualScale(s.cfg.Scale, s.cfg.InitialLength, s.length)
	s.headRadius = s.cfg.Scale.HeadRadius * s.scale
	s.bodyRadius = s.cfg.Scale.BodyRadius * s.scale
}

// Position returns the head position.
func (s *Snake) Position() vmath.Vec2 { return s.pos }

// Heading returns the heading angle in radians.
func (s *Snake) Heading() float64 { return s.heading }

// Length returns the continuous length.
func (s *Snake) Length() float64 { return s.length }

// Value returns the accrued reward value.
func (s *Snake) Value() float64 { return s.value }

// Boost returns the boost sub-machine state.
func (s *Snake) Boost() BoostState { return s.boost }

// IsBoosting reports whether the snake is boosting.
func (s *Snake) IsBoosting() bool { return s.boost == BoostActive }

// IsAlive reports whether the snake is alive.
func (s *Snake) IsAlive() bool { return s.alive }

// Speed returns the base speed derived from length.
func (s *Snake) Speed() float64 { return s.speed }

// MoveSpeed returns the speed used for movement, including boost.
func (s *Snake) MoveSpeed() float64 {
	if s.boost == BoostActive {
		return s.speed * s.cfg.Boost.SpeedMultiplier
	}
	return s.speed
}

// VisualScale returns the current radius multiplier.
func (s *Snake) VisualScale() float64 { return s.scale }

// HeadRadius returns the scaled head radius.
func (s *Snake) HeadRadius() float64 { return s.headRadius }

// BodyRadius returns the scaled untapered body radius.
func (s *Snake) BodyRadius() float64 { return s.bodyRadius }

// SegmentRadius returns the radius of segment i including taper.
func (s *Snake) SegmentRadius(i int) float64 {
	if i == 0 {
		return s.headRadius
	}
	return s.bodyRadius * TaperFactor(s.cfg.Scale, i)
}

// ZoomTarget returns the camera zoom target for the current length and boost.
func (s *Snake) ZoomTarget() float64 {
	return ZoomTarget(s.cfg.Camera, s.cfg.InitialLength, s.length, s.boost == BoostActive)
}

// Segments returns the body, head first. The slice is owned by the snake and
// must not be modified.
func (s *Snake) Segments() []Segment { return s.segments }

// Trail returns the snake's trail for read-only inspection.
func (s *Snake) Trail() *Trail { return s.trail }

// LengthBurned returns the total length consumed by boosting.
func (s *Snake) LengthBurned() float64 { return s.lengthBurned }

// LengthDecayed returns the total length lost to passive decay.
func (s *Snake) LengthDecayed() float64 { return s.lengthDecayed }

// LengthGained returns the total length added by growth.
func (s *Snake) LengthGained() float64 { return s.lengthGained }

// DecayAccumulator returns the banked decay seconds.
func (s *Snake) DecayAccumulator() float64 { return s.decayAccumulator }

// Config returns the parameters the snake was created with.
func (s *Snake) Config() config.SnakeConfig { return s.cfg }
