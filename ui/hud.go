package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/slither/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Length       float64
	Value        float64
	Segments     int
	Speed        float64
	Zoom         float32
	Boosting     bool
	BoostFloor   float64 // length at which boosting stops
	Alive        bool
	RespawnIn    float64 // seconds, valid when not alive
	Snakes       int
	Pellets      int
	Tick         int32
	Steps        int
	FPS          int32
	Paused       bool
	ScreenHeight int32
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

const hudWidth = 280

// Draw renders the HUD.
func (h *HUD) Draw(d HUDData) {
	r := h.renderer
	pad := r.Theme.Padding

	r.DrawPanel(pad, pad, hudWidth, 180)
	x, y := pad*2, pad*2

	y = r.DrawHeader(x, y, "slither")
	y = r.DrawLabelValue(x, y, "Length", formatLength(d.Length))
	y = r.DrawLabelValue(x, y, "Value", fmt.Sprintf("%.0f", d.Value))
	y = r.DrawLabelValue(x, y, "Segments", fmt.Sprintf("%d", d.Segments))
	y = r.DrawLabelValue(x, y, "Speed", fmt.Sprintf("%.0f", d.Speed))

	// Boost reserve: how much length can still be burned, relative to the
	// floor.
	reserve := float32(0)
	if d.BoostFloor > 0 {
		reserve = float32((d.Length - d.BoostFloor) / d.BoostFloor)
	}
	boostText := "ready"
	if d.Boosting {
		boostText = "BOOST"
	} else if reserve <= 0 {
		boostText = "empty"
	}
	y = r.DrawBar(x, y, "Boost", reserve, 0.25, hudWidth-pad, boostText)

	r.DrawLabelValue(x, y, "Zoom", fmt.Sprintf("%.2f", d.Zoom))

	status := fmt.Sprintf("Tick %d | %dx | %d fps | %d snakes | %d pellets",
		d.Tick, d.Steps, d.FPS, d.Snakes, d.Pellets)
	rl.DrawText(status, pad, pad+190, r.Theme.FontSize, r.Theme.LabelColor)

	switch {
	case d.Paused:
		rl.DrawText("PAUSED", pad, pad+210, r.Theme.HeaderSize, rl.Yellow)
	case !d.Alive:
		rl.DrawText(fmt.Sprintf("Respawn in %.1fs", max(d.RespawnIn, 0)), pad, pad+210, r.Theme.HeaderSize, rl.Red)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32) {
	const controls = "Mouse: steer | Space/LMB: boost | Wheel: zoom | RMB: inspect | P: pause | </>: speed | F3: perf | Home: reset zoom"
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders the tick phase breakdown.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{renderer: NewRenderer(), x: x, y: y}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	r := p.renderer
	const width = 260
	height := int32(60 + len(telemetry.Phases)*int(r.Theme.LineHeight))
	r.DrawPanel(p.x, p.y, width, height)

	x, y := p.x+r.Theme.Padding, p.y+r.Theme.Padding
	y = r.DrawHeader(x, y, "Tick phases")
	y = r.DrawLabelValue(x, y, "Tick", stats.AvgTickDuration.Round(time.Microsecond).String())

	for _, phase := range telemetry.Phases {
		pct := stats.PhasePct[phase]
		color := r.Theme.LabelColor
		if pct > 40 {
			color = rl.Red
		} else if pct > 20 {
			color = rl.Orange
		}
		rl.DrawText(fmt.Sprintf("%-10s %5.1f%%", phase, pct), x, y, r.Theme.FontSize, color)
		y += r.Theme.LineHeight
	}
}
