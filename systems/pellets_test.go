package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/slither/components"
	"github.com/pthm-cable/slither/config"
	"github.com/pthm-cable/slither/vmath"
)

func testPelletConfig() config.PelletConfig {
	return config.PelletConfig{
		TargetCount:       200,
		SpawnPerTick:      10,
		Radius:            5,
		BigValue:          3,
		BigChance:         0.1,
		GridCellSize:      128,
		DeathDropFraction: 0.5,
		DeathDropMax:      20,
	}
}

func newTestField(cfg config.PelletConfig) (*ecs.World, *PelletField) {
	world := ecs.NewWorld()
	return world, NewPelletField(world, cfg, 2000, 2000, rand.New(rand.NewSource(7)))
}

func sumPelletValues(world *ecs.World) (total float64, count int) {
	filter := ecs.NewFilter1[components.Pellet](world)
	query := filter.Query()
	for query.Next() {
		p := query.Get()
		total += p.Value
		count++
	}
	return total, count
}

func TestPelletField_FillReachesTarget(t *testing.T) {
	world, f := newTestField(testPelletConfig())

	if n := f.Fill(); n != 200 {
		t.Errorf("Fill spawned %d, want 200", n)
	}
	if f.Count() != 200 {
		t.Errorf("Count = %d, want 200", f.Count())
	}
	if n := f.Fill(); n != 0 {
		t.Errorf("second Fill spawned %d, want 0", n)
	}

	filter := ecs.NewFilter2[components.Position, components.Pellet](world)
	query := filter.Query()
	for query.Next() {
		pos, p := query.Get()
		if pos.X < 0 || pos.Y < 0 || pos.X > 2000 || pos.Y > 2000 {
			t.Errorf("pellet out of bounds at (%v, %v)", pos.X, pos.Y)
		}
		if p.Value != 1 && p.Value != 3 {
			t.Errorf("unexpected pellet value %v", p.Value)
		}
	}
}

func TestPelletField_BigChance(t *testing.T) {
	tests := []struct {
		name   string
		chance float64
		want   float64
	}{
		{"never big", 0, 200},
		{"always big", 1, 600},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testPelletConfig()
			cfg.BigChance = tt.chance
			world, f := newTestField(cfg)
			f.Fill()
			if total, _ := sumPelletValues(world); total != tt.want {
				t.Errorf("total value %v, want %v", total, tt.want)
			}
		})
	}
}

func TestPelletField_ReplenishCapsPerTick(t *testing.T) {
	_, f := newTestField(testPelletConfig())

	if n := f.Replenish(); n != 10 {
		t.Errorf("Replenish spawned %d, want 10", n)
	}
	for i := 0; i < 100; i++ {
		f.Replenish()
	}
	if f.Count() != 200 {
		t.Errorf("Count = %d, want target 200", f.Count())
	}
}

func TestPelletField_Collect(t *testing.T) {
	world, f := newTestField(testPelletConfig())
	f.Spawn(100, 100, 3, 5)
	f.Spawn(300, 300, 1, 5)

	value, eaten := f.Collect(vmath.V(104, 100), 10)
	if value != 3 || eaten != 1 {
		t.Errorf("Collect = (%v, %d), want (3, 1)", value, eaten)
	}
	if f.Count() != 1 {
		t.Errorf("Count = %d, want 1", f.Count())
	}

	value, eaten = f.Collect(vmath.V(104, 100), 10)
	if value != 0 || eaten != 0 {
		t.Errorf("second Collect = (%v, %d), want nothing", value, eaten)
	}

	if _, count := sumPelletValues(world); count != 1 {
		t.Errorf("world holds %d pellets, want 1", count)
	}
}

func TestPelletField_CollectUsesPelletRadius(t *testing.T) {
	_, f := newTestField(testPelletConfig())
	f.Spawn(100, 100, 2, 15)

	// 22 away: outside 10+5 but inside 10+15.
	if _, eaten := f.Collect(vmath.V(122, 100), 10); eaten != 1 {
		t.Errorf("large pellet should be collected, eaten = %d", eaten)
	}
}

func TestPelletField_Nearest(t *testing.T) {
	_, f := newTestField(testPelletConfig())
	f.Spawn(500, 500, 1, 5)
	f.Spawn(560, 500, 1, 5)
	f.Spawn(520, 500, 1, 5)

	got, ok := f.Nearest(vmath.V(530, 500), 100)
	if !ok {
		t.Fatal("expected a pellet")
	}
	if vmath.Distance(got, vmath.V(520, 500)) > 1e-9 {
		t.Errorf("Nearest = %v, want (520, 500)", got)
	}

	if _, ok := f.Nearest(vmath.V(1500, 1500), 100); ok {
		t.Error("expected no pellet in an empty area")
	}
}

func TestPelletField_ScatterConservesValue(t *testing.T) {
	world, f := newTestField(testPelletConfig())

	points := make([]vmath.Vec2, 50)
	for i := range points {
		points[i] = vmath.V(1000+float64(i)*8, 1000)
	}

	n := f.Scatter(points, 100)
	if n != 20 {
		t.Fatalf("Scatter spawned %d, want cap 20", n)
	}
	total, count := sumPelletValues(world)
	if count != 20 {
		t.Errorf("world holds %d pellets, want 20", count)
	}
	if math.Abs(total-100) > 1e-9 {
		t.Errorf("scattered value %v, want 100", total)
	}

	if f.Scatter(nil, 10) != 0 || f.Scatter(points, 0) != 0 {
		t.Error("empty scatter should spawn nothing")
	}
}
