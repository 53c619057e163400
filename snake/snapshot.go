package snake

import (
	"log/slog"

	"github.com/pthm-cable/slither/vmath"
)

// SegmentView is a read-only segment for rendering.
type SegmentView struct {
	Pos    vmath.Vec2
	Radius float64
}

// Snapshot is a plain copy of everything a renderer or camera needs.
type Snapshot struct {
	Position   vmath.Vec2
	Heading    float64
	Segments   []SegmentView
	Length     float64
	Value      float64
	Speed      float64
	MoveSpeed  float64
	HeadRadius float64
	ZoomTarget float64
	IsBoosting bool
	IsAlive    bool
}

// Snapshot returns a fresh copy of the snake's renderable state.
func (s *Snake) Snapshot() Snapshot {
	var snap Snapshot
	s.SnapshotInto(&snap)
	return snap
}

// SnapshotInto fills dst, reusing its segment buffer.
func (s *Snake) SnapshotInto(dst *Snapshot) {
	dst.Position = s.pos
	dst.Heading = s.heading
	dst.Length = s.length
	dst.Value = s.value
	dst.Speed = s.speed
	dst.MoveSpeed = s.MoveSpeed()
	dst.HeadRadius = s.headRadius
	dst.ZoomTarget = s.ZoomTarget()
	dst.IsBoosting = s.boost == BoostActive
	dst.IsAlive = s.alive

	dst.Segments = dst.Segments[:0]
	for i, seg := range s.segments {
		dst.Segments = append(dst.Segments, SegmentView{Pos: seg.Pos, Radius: s.SegmentRadius(i)})
	}
}

// LogValue implements slog.LogValuer. Segment positions are omitted.
func (snap Snapshot) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("x", snap.Position.X),
		slog.Float64("y", snap.Position.Y),
		slog.Float64("heading", snap.Heading),
		slog.Float64("length", snap.Length),
		slog.Int("segments", len(snap.Segments)),
		slog.Float64("value", snap.Value),
		slog.Float64("speed", snap.MoveSpeed),
		slog.Bool("boosting", snap.IsBoosting),
		slog.Bool("alive", snap.IsAlive),
	)
}
