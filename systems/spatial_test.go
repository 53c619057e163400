package systems

import (
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/slither/components"
)

func TestSpatialGrid_QueryRadius(t *testing.T) {
	world := ecs.NewWorld()
	mapper := ecs.NewMap1[components.Position](world)
	grid := NewSpatialGrid(1000, 1000, 100)

	points := []components.Position{
		{X: 500, Y: 500},
		{X: 530, Y: 540}, // distance 50
		{X: 650, Y: 500}, // distance 150
		{X: 900, Y: 900},
	}
	entities := make([]ecs.Entity, len(points))
	for i := range points {
		entities[i] = mapper.NewEntity(&points[i])
		grid.Insert(entities[i], points[i].X, points[i].Y)
	}

	got := grid.QueryRadiusInto(nil, 500, 500, 60, mapper)
	if len(got) != 2 {
		t.Fatalf("expected 2 neighbors within 60, got %d", len(got))
	}
	for _, n := range got {
		if n.E == entities[1] && (n.DX != 30 || n.DY != 40 || n.DistSq != 2500) {
			t.Errorf("unexpected neighbor data %+v", n)
		}
	}

	got = grid.QueryRadiusInto(got[:0], 500, 500, 200, mapper)
	if len(got) != 3 {
		t.Errorf("expected 3 neighbors within 200, got %d", len(got))
	}
}

func TestSpatialGrid_Remove(t *testing.T) {
	world := ecs.NewWorld()
	mapper := ecs.NewMap1[components.Position](world)
	grid := NewSpatialGrid(1000, 1000, 100)

	pos := components.Position{X: 10, Y: 10}
	e := mapper.NewEntity(&pos)
	grid.Insert(e, pos.X, pos.Y)

	if grid.Len() != 1 {
		t.Fatalf("expected 1 entity, got %d", grid.Len())
	}
	if !grid.Remove(e, pos.X, pos.Y) {
		t.Fatal("remove should find the entity")
	}
	if grid.Remove(e, pos.X, pos.Y) {
		t.Error("second remove should report not found")
	}
	if grid.Len() != 0 {
		t.Errorf("expected empty grid, got %d", grid.Len())
	}
	if got := grid.QueryRadiusInto(nil, 10, 10, 50, mapper); len(got) != 0 {
		t.Errorf("removed entity still returned: %v", got)
	}
}

func TestSpatialGrid_OutOfBoundsClampsToEdgeCells(t *testing.T) {
	grid := NewSpatialGrid(1000, 1000, 100)
	tests := []struct {
		name             string
		x, y             float64
		wantCol, wantRow int
	}{
		{"negative", -50, -1, 0, 0},
		{"past far edge", 5000, 1200, grid.cols - 1, grid.rows - 1},
		{"inside", 250, 730, 2, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col, row := grid.cellCoords(tt.x, tt.y)
			if col != tt.wantCol || row != tt.wantRow {
				t.Errorf("cellCoords(%v, %v) = (%d, %d), want (%d, %d)",
					tt.x, tt.y, col, row, tt.wantCol, tt.wantRow)
			}
		})
	}
}
