// Package renderer draws the arena, pellets and snakes with raylib
// primitives, in screen space through a camera.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/slither/camera"
)

// Palette
var (
	Backdrop  = rl.Color{R: 12, G: 14, B: 20, A: 255}
	Floor     = rl.Color{R: 22, G: 26, B: 36, A: 255}
	GridLine  = rl.Color{R: 34, G: 40, B: 54, A: 255}
	WallColor = rl.Color{R: 180, G: 60, B: 60, A: 255}
)

// gridSpacing is the world-space distance between floor grid lines.
const gridSpacing = 100

// DrawArena draws the world floor, a grid and the fatal boundary.
func DrawArena(cam *camera.Camera) {
	x0, y0 := cam.WorldToScreen(0, 0)
	x1, y1 := cam.WorldToScreen(cam.WorldW, cam.WorldH)
	rl.DrawRectangleV(rl.Vector2{X: x0, Y: y0}, rl.Vector2{X: x1 - x0, Y: y1 - y0}, Floor)

	minX, minY, maxX, maxY := cam.VisibleWorldBounds()
	minX, minY = max(minX, 0), max(minY, 0)
	maxX, maxY = min(maxX, cam.WorldW), min(maxY, cam.WorldH)

	// Skip the grid once lines would be closer than a few pixels.
	if gridSpacing*cam.Zoom >= 6 {
		for x := float32(int(minX/gridSpacing)) * gridSpacing; x <= maxX; x += gridSpacing {
			sx, sy0 := cam.WorldToScreen(x, minY)
			_, sy1 := cam.WorldToScreen(x, maxY)
			rl.DrawLineV(rl.Vector2{X: sx, Y: sy0}, rl.Vector2{X: sx, Y: sy1}, GridLine)
		}
		for y := float32(int(minY/gridSpacing)) * gridSpacing; y <= maxY; y += gridSpacing {
			sx0, sy := cam.WorldToScreen(minX, y)
			sx1, _ := cam.WorldToScreen(maxX, y)
			rl.DrawLineV(rl.Vector2{X: sx0, Y: sy}, rl.Vector2{X: sx1, Y: sy}, GridLine)
		}
	}

	rl.DrawRectangleLinesEx(rl.Rectangle{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}, 4, WallColor)
}
