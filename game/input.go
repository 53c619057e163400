package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/slither/inspector"
	"github.com/pthm-cable/slither/vmath"
)

// Zoom bias limits for the mouse wheel.
const (
	minZoomBias = 0.5
	maxZoomBias = 2.0
)

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}
	if rl.IsKeyPressed(rl.KeyP) {
		g.paused = !g.paused
	}
	if rl.IsKeyPressed(rl.KeyF3) {
		g.showPerf = !g.showPerf
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) && g.stepsPerUpdate > 1 {
		g.stepsPerUpdate--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && g.stepsPerUpdate < 10 {
		g.stepsPerUpdate++
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		g.zoomBias = min(max(g.zoomBias*(1+wheel*0.1), minZoomBias), maxZoomBias)
	}
	if rl.IsKeyPressed(rl.KeyHome) {
		g.zoomBias = 1
	}

	if rl.IsMouseButtonPressed(rl.MouseButtonRight) {
		g.selectSnakeAt(rl.GetMousePosition())
	}

	g.updateHumanIntent()
}

// selectSnakeAt points the inspector at the snake under the cursor.
func (g *Game) selectSnakeAt(mouse rl.Vector2) {
	wx, wy := g.camera.ScreenToWorld(mouse.X, mouse.Y)

	g.targets = g.targets[:0]
	query := g.players.Query()
	for query.Next() {
		p, _ := query.Get()
		g.targets = append(g.targets, inspector.Target{Entity: query.Entity(), Snake: p.Snake})
	}
	g.inspector.HandleClick(vmath.V(float64(wx), float64(wy)), g.targets)
}

// updateHumanIntent steers the player's snake toward the mouse cursor.
func (g *Game) updateHumanIntent() {
	if !g.hasHuman {
		return
	}
	p, intent := g.humanMapper.Get(g.human)
	if !p.Snake.IsAlive() {
		intent.Direction = vmath.Vec2{}
		intent.Boost = false
		return
	}

	mouse := rl.GetMousePosition()
	wx, wy := g.camera.ScreenToWorld(mouse.X, mouse.Y)
	intent.Direction = vmath.Sub(vmath.V(float64(wx), float64(wy)), p.Snake.Position())
	intent.Boost = rl.IsKeyDown(rl.KeySpace) || rl.IsMouseButtonDown(rl.MouseButtonLeft)
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	g.camera.Resize(w, h)
	g.perfPanel.SetPosition(int32(w)-270, 10)
}

// updateCamera follows the player's snake and eases toward its zoom target.
func (g *Game) updateCamera(dt float32) {
	if !g.hasHuman {
		return
	}
	p := g.playerMap.Get(g.human)
	if p == nil {
		return
	}
	s := p.Snake
	pos := s.Position()
	rate := float32(g.cfg.Snake.Camera.FollowRate)

	g.camera.Follow(float32(pos.X), float32(pos.Y), rate, dt)
	g.camera.ApproachZoom(float32(s.ZoomTarget())*g.zoomBias, rate, dt)
}
