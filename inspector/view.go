package inspector

import (
	"github.com/pthm-cable/slither/components"
	"github.com/pthm-cable/slither/snake"
)

// taperSamples is how many leading segment radii the view shows.
const taperSamples = 12

// SnakeView is the inspectable state of one player, flattened for display.
type SnakeView struct {
	ID   uint32 `inspect:"skip"`
	Name string `inspect:"skip"`

	Length        float64 `inspect:"label,fmt:%.1f"`
	Value         float64 `inspect:"label,fmt:%.1f"`
	Segments      int
	Heading       float64 `inspect:"angle"`
	Speed         float64 `inspect:"label,fmt:%.0f"`
	MoveSpeed     float64 `inspect:"label,fmt:%.0f,name:Move speed"`
	Scale         float64 `inspect:"label,fmt:%.3f"`
	HeadRadius    float64 `inspect:"label,fmt:%.1f,name:Head radius"`
	Zoom          float64 `inspect:"label,fmt:%.3f"`
	Boost         string
	BoostReserve  float64   `inspect:"bar,max:1,name:Reserve"`
	TurnFactor    float64   `inspect:"bar,max:1,name:Turn"`
	DecayRate     float64   `inspect:"label,fmt:%.2f/s,name:Decay"`
	DecayBank     float64   `inspect:"bar,max:1,name:Decay bank"`
	Gained        float64   `inspect:"label,fmt:%.1f"`
	Burned        float64   `inspect:"label,fmt:%.1f"`
	Decayed       float64   `inspect:"label,fmt:%.1f"`
	TrailSamples  int       `inspect:"label,name:Trail"`
	SegmentRadius []float64 `inspect:"bar,name:Taper"`
	Alive         bool
}

// NewSnakeView builds the view for p. Radii are normalized to the head so
// the taper group reads as fractions.
func NewSnakeView(p *components.Player) SnakeView {
	s := p.Snake
	cfg := s.Config()

	reserve := 0.0
	if s.Length() > 0 {
		reserve = max(0, s.Length()-cfg.Boost.MinLength) / s.Length()
	}
	bank := 0.0
	if cfg.Decay.Interval > 0 {
		bank = min(1, s.DecayAccumulator()/cfg.Decay.Interval)
	}

	segs := s.Segments()
	radii := make([]float64, 0, min(len(segs), taperSamples))
	for i := 0; i < len(segs) && i < taperSamples; i++ {
		if s.HeadRadius() > 0 {
			radii = append(radii, s.SegmentRadius(i)/s.HeadRadius())
		}
	}

	return SnakeView{
		ID:            p.ID,
		Name:          p.Name,
		Length:        s.Length(),
		Value:         s.Value(),
		Segments:      len(segs),
		Heading:       s.Heading(),
		Speed:         s.Speed(),
		MoveSpeed:     s.MoveSpeed(),
		Scale:         s.VisualScale(),
		HeadRadius:    s.HeadRadius(),
		Zoom:          s.ZoomTarget(),
		Boost:         s.Boost().String(),
		BoostReserve:  reserve,
		TurnFactor:    snake.TurnPenalty(cfg.Steering, s.Length()),
		DecayRate:     snake.DecayRate(cfg.Decay, s.Length()),
		DecayBank:     bank,
		Gained:        s.LengthGained(),
		Burned:        s.LengthBurned(),
		Decayed:       s.LengthDecayed(),
		TrailSamples:  s.Trail().Len(),
		SegmentRadius: radii,
		Alive:         s.IsAlive(),
	}
}
