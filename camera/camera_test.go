package camera

import (
	"math"
	"testing"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 0.01
}

func TestNew(t *testing.T) {
	cam := New(1280, 800, 6000, 6000)

	if cam.X != 3000 || cam.Y != 3000 {
		t.Errorf("expected camera at (3000, 3000), got (%f, %f)", cam.X, cam.Y)
	}
	if cam.Zoom != 1 {
		t.Errorf("expected zoom 1, got %f", cam.Zoom)
	}
}

func TestNew_SmallWorldClampsZoom(t *testing.T) {
	cam := New(1280, 720, 640, 720)
	if cam.MinZoom != 2 || cam.Zoom != 2 {
		t.Errorf("expected min zoom and zoom 2, got %f and %f", cam.MinZoom, cam.Zoom)
	}
}

func TestScreenToWorld_RoundTrip(t *testing.T) {
	cam := New(1280, 720, 2560, 1440)
	cam.Snap(900, 400, 0.6)

	sx, sy := cam.WorldToScreen(900, 400)
	if !near(sx, 640) || !near(sy, 360) {
		t.Errorf("followed point should sit at screen center, got (%f, %f)", sx, sy)
	}

	tests := []struct{ sx, sy float32 }{
		{640, 360},
		{100, 100},
		{1200, 600},
	}
	for _, tt := range tests {
		wx, wy := cam.ScreenToWorld(tt.sx, tt.sy)
		gx, gy := cam.WorldToScreen(wx, wy)
		if !near(gx, tt.sx) || !near(gy, tt.sy) {
			t.Errorf("(%f,%f) -> (%f,%f) -> (%f,%f)", tt.sx, tt.sy, wx, wy, gx, gy)
		}
	}
}

func TestSetZoom_Clamp(t *testing.T) {
	cam := New(1280, 720, 2560, 1440)

	if cam.MinZoom != 0.5 {
		t.Fatalf("expected MinZoom 0.5, got %f", cam.MinZoom)
	}

	tests := []struct {
		in, want float32
	}{
		{0.1, 0.5},
		{0.75, 0.75},
		{10, defaultMaxZoom},
	}
	for _, tt := range tests {
		cam.SetZoom(tt.in)
		if cam.Zoom != tt.want {
			t.Errorf("SetZoom(%v): got %v, want %v", tt.in, cam.Zoom, tt.want)
		}
	}
}

func TestResize_RecomputesMinZoom(t *testing.T) {
	cam := New(1280, 720, 2560, 1440)
	cam.SetZoom(0.5)

	cam.Resize(2560, 720)
	if cam.MinZoom != 1 {
		t.Errorf("expected MinZoom 1 after widening, got %f", cam.MinZoom)
	}
	if cam.Zoom != 1 {
		t.Errorf("expected zoom re-clamped to 1, got %f", cam.Zoom)
	}
}

func TestFollow_Converges(t *testing.T) {
	cam := New(1280, 800, 6000, 6000)
	prev := float32(math.Inf(1))
	for i := 0; i < 300; i++ {
		cam.Follow(1000, 2000, 6, 1.0/60)
		d := abs(cam.X-1000) + abs(cam.Y-2000)
		if d > prev {
			t.Fatalf("follow moved away from target at step %d", i)
		}
		prev = d
	}
	if prev > 1 {
		t.Errorf("camera did not converge, remaining distance %f", prev)
	}
}

func TestFollow_ZeroRateSnaps(t *testing.T) {
	cam := New(1280, 800, 6000, 6000)
	cam.Follow(12, 34, 0, 1.0/60)
	if cam.X != 12 || cam.Y != 34 {
		t.Errorf("expected snap to (12, 34), got (%f, %f)", cam.X, cam.Y)
	}
}

func TestApproachZoom(t *testing.T) {
	cam := New(1280, 800, 6000, 6000)
	for i := 0; i < 600; i++ {
		cam.ApproachZoom(0.45, 6, 1.0/60)
		if cam.Zoom < 0.45-1e-4 {
			t.Fatalf("zoom overshot target: %f", cam.Zoom)
		}
	}
	if math.Abs(float64(cam.Zoom-0.45)) > 1e-3 {
		t.Errorf("expected zoom near 0.45, got %f", cam.Zoom)
	}

	cam.ApproachZoom(0.01, 0, 1)
	if cam.Zoom != cam.MinZoom {
		t.Errorf("expected zoom clamped to %f, got %f", cam.MinZoom, cam.Zoom)
	}
}

func TestIsVisible(t *testing.T) {
	cam := New(1280, 720, 2560, 1440)

	tests := []struct {
		name         string
		x, y, radius float32
		want         bool
	}{
		{"center", 1280, 720, 10, true},
		{"far corner", 2400, 1300, 10, false},
		{"just off screen, large radius", 600, 720, 100, true},
		{"just off screen, small radius", 600, 720, 10, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cam.IsVisible(tt.x, tt.y, tt.radius); got != tt.want {
				t.Errorf("IsVisible = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVisibleWorldBounds(t *testing.T) {
	cam := New(1280, 720, 6000, 6000)
	cam.Snap(1000, 1000, 2)

	minX, minY, maxX, maxY := cam.VisibleWorldBounds()
	if !near(minX, 680) || !near(maxX, 1320) || !near(minY, 820) || !near(maxY, 1180) {
		t.Errorf("got (%f, %f)-(%f, %f)", minX, minY, maxX, maxY)
	}
}
