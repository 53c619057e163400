// Package camera maps the bounded world onto the screen around a followed
// snake.
package camera

import "math"

// defaultMaxZoom is the closest the camera gets, in screen pixels per world unit.
const defaultMaxZoom = 4

// Camera is a viewport centered on (X, Y). Zoom is magnification: screen
// pixels per world unit.
type Camera struct {
	X, Y float32
	Zoom float32

	ViewportW, ViewportH float32
	WorldW, WorldH       float32

	// MinZoom keeps the view from growing past the world in its tighter
	// dimension; it is recomputed on Resize.
	MinZoom, MaxZoom float32
}

// New creates a camera over a worldW x worldH world, centered at 1:1.
func New(viewportW, viewportH, worldW, worldH float32) *Camera {
	c := &Camera{
		X:         worldW / 2,
		Y:         worldH / 2,
		Zoom:      1,
		ViewportW: viewportW,
		ViewportH: viewportH,
		WorldW:    worldW,
		WorldH:    worldH,
		MinZoom:   fitZoom(viewportW, viewportH, worldW, worldH),
		MaxZoom:   defaultMaxZoom,
	}
	c.SetZoom(c.Zoom)
	return c
}

func fitZoom(viewportW, viewportH, worldW, worldH float32) float32 {
	return max(viewportW/worldW, viewportH/worldH)
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	return c.ViewportW/2 + (wx-c.X)*c.Zoom, c.ViewportH/2 + (wy-c.Y)*c.Zoom
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	return c.X + (sx-c.ViewportW/2)/c.Zoom, c.Y + (sy-c.ViewportH/2)/c.Zoom
}

// IsVisible reports whether a circle at (wx, wy) may overlap the screen.
// Conservative: the test is against the circle's bounding box.
func (c *Camera) IsVisible(wx, wy, radius float32) bool {
	halfW, halfH := c.halfExtent()
	return abs(wx-c.X) <= halfW+radius && abs(wy-c.Y) <= halfH+radius
}

// VisibleWorldBounds returns the world rectangle covered by the screen.
func (c *Camera) VisibleWorldBounds() (minX, minY, maxX, maxY float32) {
	halfW, halfH := c.halfExtent()
	return c.X - halfW, c.Y - halfH, c.X + halfW, c.Y + halfH
}

func (c *Camera) halfExtent() (float32, float32) {
	return c.ViewportW / (2 * c.Zoom), c.ViewportH / (2 * c.Zoom)
}

// Snap jumps straight to (x, y) at the given zoom.
func (c *Camera) Snap(x, y, zoom float32) {
	c.X, c.Y = x, y
	c.SetZoom(zoom)
}

// Follow moves the camera toward (x, y). rate is in 1/s; a rate of zero
// or less snaps immediately.
func (c *Camera) Follow(x, y, rate, dt float32) {
	k := approach(rate, dt)
	c.X += (x - c.X) * k
	c.Y += (y - c.Y) * k
}

// ApproachZoom eases the zoom toward target at the given rate, then clamps.
func (c *Camera) ApproachZoom(target, rate, dt float32) {
	c.SetZoom(c.Zoom + (target-c.Zoom)*approach(rate, dt))
}

// SetZoom sets the zoom, clamped to [MinZoom, MaxZoom].
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = min(max(zoom, c.MinZoom), c.MaxZoom)
}

// Resize adopts a new viewport size and re-clamps the zoom.
func (c *Camera) Resize(viewportW, viewportH float32) {
	if viewportW == c.ViewportW && viewportH == c.ViewportH {
		return
	}
	c.ViewportW, c.ViewportH = viewportW, viewportH
	c.MinZoom = fitZoom(viewportW, viewportH, c.WorldW, c.WorldH)
	c.SetZoom(c.Zoom)
}

// approach returns the fraction of the remaining distance covered in dt by
// an exponential approach at rate.
func approach(rate, dt float32) float32 {
	if rate <= 0 {
		return 1
	}
	return 1 - float32(math.Exp(-float64(rate*dt)))
}

func abs(x float32) float32 {
	return float32(math.Abs(float64(x)))
}
