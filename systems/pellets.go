package systems

import (
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/slither/components"
	"github.com/pthm-cable/slither/config"
	"github.com/pthm-cable/slither/vmath"
)

// maxDropRadiusScale caps how much larger than a regular pellet a dropped
// pellet may be drawn and collected.
const maxDropRadiusScale = 3.0

// PelletField owns the pellet entities and their spatial index. It is the
// pickup collaborator: proximity testing against a head happens here, not in
// the snake.
type PelletField struct {
	world     *ecs.World
	mapper    *ecs.Map2[components.Position, components.Pellet]
	posMap    *ecs.Map1[components.Position]
	pelletMap *ecs.Map1[components.Pellet]

	grid *SpatialGrid
	cfg  config.PelletConfig
	rng  *rand.Rand

	width, height float64
	maxRadius     float64

	buf   []Neighbor
	eaten []ecs.Entity
}

// NewPelletField creates an empty field over a width x height world.
func NewPelletField(world *ecs.World, cfg config.PelletConfig, width, height float64, rng *rand.Rand) *PelletField {
	return &PelletField{
		world:     world,
		mapper:    ecs.NewMap2[components.Position, components.Pellet](world),
		posMap:    ecs.NewMap1[components.Position](world),
		pelletMap: ecs.NewMap1[components.Pellet](world),
		grid:      NewSpatialGrid(width, height, cfg.GridCellSize),
		cfg:       cfg,
		rng:       rng,
		width:     width,
		height:    height,
		maxRadius: cfg.Radius,
	}
}

// Count returns the number of live pellets.
func (f *PelletField) Count() int {
	return f.grid.Len()
}

// Spawn creates a pellet of the given value and radius at (x, y).
func (f *PelletField) Spawn(x, y, value, radius float64) ecs.Entity {
	pos := components.Position{X: x, Y: y}
	pellet := components.Pellet{Value: value, Radius: radius}
	e := f.mapper.NewEntity(&pos, &pellet)
	f.grid.Insert(e, x, y)
	if radius > f.maxRadius {
		f.maxRadius = radius
	}
	return e
}

// SpawnRandom creates a regular pellet at a uniform position in the world.
// A BigChance share of them are worth BigValue instead of 1.
func (f *PelletField) SpawnRandom() ecs.Entity {
	value := 1.0
	if f.rng.Float64() < f.cfg.BigChance {
		value = f.cfg.BigValue
	}
	x := f.rng.Float64() * f.width
	y := f.rng.Float64() * f.height
	return f.Spawn(x, y, value, f.cfg.Radius)
}

// Fill spawns pellets until the target count is reached.
func (f *PelletField) Fill() int {
	n := 0
	for f.Count() < f.cfg.TargetCount {
		f.SpawnRandom()
		n++
	}
	return n
}

// Replenish spawns up to SpawnPerTick pellets toward the target count.
func (f *PelletField) Replenish() int {
	n := 0
	for n < f.cfg.SpawnPerTick && f.Count() < f.cfg.TargetCount {
		f.SpawnRandom()
		n++
	}
	return n
}

// Collect removes every pellet overlapping a head of the given radius and
// returns their total value and count.
func (f *PelletField) Collect(head vmath.Vec2, headRadius float64) (value float64, eaten int) {
	f.buf = f.grid.QueryRadiusInto(f.buf[:0], head.X, head.Y, headRadius+f.maxRadius, f.posMap)
	f.eaten = f.eaten[:0]

	for _, n := range f.buf {
		p := f.pelletMap.Get(n.E)
		if p == nil {
			continue
		}
		reach := headRadius + p.Radius
		if n.DistSq > reach*reach {
			continue
		}
		value += p.Value
		f.eaten = append(f.eaten, n.E)
	}

	for _, e := range f.eaten {
		f.remove(e)
	}
	return value, len(f.eaten)
}

// Nearest returns the closest pellet within radius of pos.
func (f *PelletField) Nearest(pos vmath.Vec2, radius float64) (vmath.Vec2, bool) {
	f.buf = f.grid.QueryRadiusInto(f.buf[:0], pos.X, pos.Y, radius, f.posMap)
	best := -1
	bestDist := math.Inf(1)
	for i, n := range f.buf {
		if n.DistSq < bestDist {
			best, bestDist = i, n.DistSq
		}
	}
	if best < 0 {
		return vmath.Vec2{}, false
	}
	n := f.buf[best]
	return vmath.V(pos.X+n.DX, pos.Y+n.DY), true
}

// Scatter drops total value as pellets spread evenly over points, such as the
// body of a dead snake. At most DeathDropMax pellets are created; larger
// drops make bigger pellets. Points outside the world are skipped.
func (f *PelletField) Scatter(points []vmath.Vec2, total float64) int {
	if len(points) == 0 || total <= 0 {
		return 0
	}
	n := len(points)
	if f.cfg.DeathDropMax > 0 && n > f.cfg.DeathDropMax {
		n = f.cfg.DeathDropMax
	}
	per := total / float64(n)
	radius := f.cfg.Radius * math.Min(maxDropRadiusScale, math.Sqrt(math.Max(1, per)))

	spawned := 0
	for i := 0; i < n; i++ {
		p := points[i*len(points)/n]
		x := p.X + (f.rng.Float64()*2-1)*radius
		y := p.Y + (f.rng.Float64()*2-1)*radius
		if x < 0 || y < 0 || x > f.width || y > f.height {
			continue
		}
		f.Spawn(x, y, per, radius)
		spawned++
	}
	return spawned
}

func (f *PelletField) remove(e ecs.Entity) {
	if pos := f.posMap.Get(e); pos != nil {
		f.grid.Remove(e, pos.X, pos.Y)
	}
	f.world.RemoveEntity(e)
}
