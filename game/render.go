package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/slither/camera"
	"github.com/pthm-cable/slither/inspector"
	"github.com/pthm-cable/slither/renderer"
	"github.com/pthm-cable/slither/ui"
)

// initGraphics sets up the camera, HUD and the player's snake. The raylib
// window must already be open.
func (g *Game) initGraphics() {
	screenW := float32(g.cfg.Screen.Width)
	screenH := float32(g.cfg.Screen.Height)

	g.camera = camera.New(screenW, screenH, float32(g.cfg.World.Width), float32(g.cfg.World.Height))
	g.hud = ui.NewHUD()
	g.perfPanel = ui.NewPerfPanel(int32(screenW)-270, 10)
	g.inspector = inspector.NewInspector(10, 240)

	g.human = g.spawnHuman()
	g.hasHuman = true

	p := g.playerMap.Get(g.human)
	pos := p.Snake.Position()
	g.camera.Snap(float32(pos.X), float32(pos.Y), float32(p.Snake.ZoomTarget()))
}

// Update handles input, runs the simulation steps for this frame and moves
// the camera.
func (g *Game) Update() {
	g.perfCollector.RecordFrame()
	g.handleInput()

	if !g.paused {
		for i := 0; i < g.stepsPerUpdate; i++ {
			g.step(g.cfg.Physics.DT)
		}
	}

	frameDT := min(float64(rl.GetFrameTime()), g.cfg.Physics.MaxDT)
	g.updateCamera(float32(frameDT))
}

// Draw renders the game state.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(renderer.Backdrop)

	renderer.DrawArena(g.camera)
	g.drawPellets()
	g.drawSnakes()
	g.drawHUD()

	rl.EndDrawing()
}

func (g *Game) drawPellets() {
	query := g.pelletFilter.Query()
	for query.Next() {
		pos, pellet := query.Get()
		renderer.DrawPellet(g.camera, pos.X, pos.Y, pellet.Radius, pellet.Value)
	}
}

// drawSnakes draws dead snakes first, then bots, then the player on top.
func (g *Game) drawSnakes() {
	for _, wantAlive := range [2]bool{false, true} {
		query := g.players.Query()
		for query.Next() {
			p, _ := query.Get()
			if p.Snake.IsAlive() != wantAlive || (g.hasHuman && query.Entity() == g.human) {
				continue
			}
			p.Snake.SnapshotInto(&g.snap)
			renderer.DrawSnake(g.camera, &g.snap, renderer.SnakeColor(p.ID))
		}
	}

	if g.hasHuman {
		p := g.playerMap.Get(g.human)
		p.Snake.SnapshotInto(&g.snap)
		renderer.DrawSnake(g.camera, &g.snap, rl.SkyBlue)
	}
}

func (g *Game) drawHUD() {
	data := ui.HUDData{
		Tick:         g.tick,
		Steps:        g.stepsPerUpdate,
		FPS:          rl.GetFPS(),
		Paused:       g.paused,
		Pellets:      g.pellets.Count(),
		Zoom:         g.camera.Zoom,
		BoostFloor:   g.cfg.Snake.Boost.MinLength,
		Alive:        true,
		ScreenHeight: int32(g.camera.ViewportH),
	}

	query := g.players.Query()
	for query.Next() {
		p, _ := query.Get()
		if p.Snake.IsAlive() {
			data.Snakes++
		}
	}

	if g.hasHuman {
		p := g.playerMap.Get(g.human)
		s := p.Snake
		data.Length = s.Length()
		data.Value = s.Value()
		data.Segments = len(s.Segments())
		data.Speed = s.MoveSpeed()
		data.Boosting = s.IsBoosting()
		data.Alive = s.IsAlive()
		if !data.Alive {
			data.RespawnIn = p.DiedAt + g.cfg.Autopilot.RespawnDelay - g.SimTime()
		}
	}

	g.hud.Draw(data)
	g.hud.DrawControls(data.ScreenHeight)

	if e, ok := g.inspector.Selected(); ok {
		p := g.playerMap.Get(e)
		g.inspector.DrawSelectionHighlight(g.camera, p)
		g.inspector.Draw(p)
	}
	if g.showPerf {
		g.perfPanel.Draw(g.perfCollector.Stats())
	}
}
