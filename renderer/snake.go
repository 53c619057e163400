package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/slither/camera"
	"github.com/pthm-cable/slither/snake"
)

// SnakeColor returns a stable color for a snake id.
func SnakeColor(id uint32) rl.Color {
	hue := float32((id * 47) % 360)
	return rl.ColorFromHSV(hue, 0.55, 0.95)
}

// DrawPellet draws one pellet if it is on screen.
func DrawPellet(cam *camera.Camera, x, y, radius, value float64) {
	wx, wy, r := float32(x), float32(y), float32(radius)
	if !cam.IsVisible(wx, wy, r) {
		return
	}
	sx, sy := cam.WorldToScreen(wx, wy)
	color := rl.Color{R: 240, G: 200, B: 90, A: 255}
	if value > 1 {
		color = rl.Color{R: 120, G: 230, B: 140, A: 255}
	}
	rl.DrawCircleV(rl.Vector2{X: sx, Y: sy}, max(r*cam.Zoom, 1), color)
}

// DrawSnake draws a snake tail first so the head ends up on top. Dead snakes
// are drawn faded; boosting snakes get a glow.
func DrawSnake(cam *camera.Camera, snap *snake.Snapshot, color rl.Color) {
	if !snap.IsAlive {
		color.A = 70
	}

	for i := len(snap.Segments) - 1; i >= 0; i-- {
		seg := snap.Segments[i]
		x, y, r := float32(seg.Pos.X), float32(seg.Pos.Y), float32(seg.Radius)
		if !cam.IsVisible(x, y, r*1.5) {
			continue
		}
		sx, sy := cam.WorldToScreen(x, y)
		sr := max(r*cam.Zoom, 1)
		if snap.IsBoosting {
			glow := color
			glow.A = 60
			rl.DrawCircleV(rl.Vector2{X: sx, Y: sy}, sr*1.35, glow)
		}
		c := color
		if i%2 == 1 {
			c = rl.ColorBrightness(color, -0.15)
		}
		rl.DrawCircleV(rl.Vector2{X: sx, Y: sy}, sr, c)
	}

	drawEyes(cam, snap)
}

// drawEyes draws two eyes on the head, looking along the heading.
func drawEyes(cam *camera.Camera, snap *snake.Snapshot) {
	hx, hy := float32(snap.Position.X), float32(snap.Position.Y)
	r := float32(snap.HeadRadius)
	if !cam.IsVisible(hx, hy, r) {
		return
	}

	for _, side := range [2]float64{-1, 1} {
		a := snap.Heading + side*0.6
		ex := hx + float32(math.Cos(a))*r*0.55
		ey := hy + float32(math.Sin(a))*r*0.55
		sx, sy := cam.WorldToScreen(ex, ey)
		rl.DrawCircleV(rl.Vector2{X: sx, Y: sy}, max(r*0.3*cam.Zoom, 1), rl.White)

		px := float32(math.Cos(snap.Heading)) * r * 0.12 * cam.Zoom
		py := float32(math.Sin(snap.Heading)) * r * 0.12 * cam.Zoom
		rl.DrawCircleV(rl.Vector2{X: sx + px, Y: sy + py}, max(r*0.15*cam.Zoom, 1), rl.Black)
	}
}
