// Package inspector shows a reflection-driven panel for one selected snake.
package inspector

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/slither/camera"
	"github.com/pthm-cable/slither/components"
	"github.com/pthm-cable/slither/snake"
	"github.com/pthm-cable/slither/vmath"
)

// Panel dimensions
const (
	PanelWidth   = 300
	PanelPadding = 10
	HeaderHeight = 30
)

// Panel colors
var (
	ColorPanelBg     = rl.Color{R: 30, G: 30, B: 35, A: 240}
	ColorPanelHeader = rl.Color{R: 45, G: 45, B: 55, A: 255}
	ColorPanelBorder = rl.Color{R: 70, G: 70, B: 80, A: 255}
	ColorHeaderText  = rl.Color{R: 255, G: 255, B: 255, A: 255}
	ColorHighlight   = rl.Color{R: 255, G: 230, B: 80, A: 200}
)

// pickTolerance widens segment hit circles so thin tails stay clickable.
const pickTolerance = 6.0

// Target is a selectable snake.
type Target struct {
	Entity ecs.Entity
	Snake  *snake.Snake
}

// Pick returns the target whose head or body segment is closest to point,
// counting only segments whose radius (plus a tolerance) covers it.
func Pick(point vmath.Vec2, targets []Target) (ecs.Entity, bool) {
	var best ecs.Entity
	bestDist := -1.0
	for _, t := range targets {
		for i, seg := range t.Snake.Segments() {
			r := t.Snake.SegmentRadius(i) + pickTolerance
			d := vmath.DistanceSq(point, seg.Pos)
			if d > r*r {
				continue
			}
			if bestDist < 0 || d < bestDist {
				best, bestDist = t.Entity, d
			}
		}
	}
	return best, bestDist >= 0
}

// Inspector manages snake selection and panel rendering.
type Inspector struct {
	selected    ecs.Entity
	hasSelected bool
	panelX      int32
	panelY      int32
}

// NewInspector creates an inspector anchored to the left edge below the HUD.
func NewInspector(x, y int32) *Inspector {
	return &Inspector{panelX: x, panelY: y}
}

// Select makes e the inspected entity.
func (ins *Inspector) Select(e ecs.Entity) {
	ins.selected = e
	ins.hasSelected = true
}

// Deselect clears the current selection.
func (ins *Inspector) Deselect() {
	ins.hasSelected = false
}

// Selected returns the currently selected entity.
func (ins *Inspector) Selected() (ecs.Entity, bool) {
	return ins.selected, ins.hasSelected
}

// HandleClick selects the snake under point, or clears the selection when
// nothing is there.
func (ins *Inspector) HandleClick(point vmath.Vec2, targets []Target) {
	if e, ok := Pick(point, targets); ok {
		ins.Select(e)
		return
	}
	ins.Deselect()
}

// Draw renders the panel for the selected player. p may be nil when the
// entity no longer exists, which clears the selection.
func (ins *Inspector) Draw(p *components.Player) {
	if !ins.hasSelected {
		return
	}
	if p == nil || p.Snake == nil {
		ins.Deselect()
		return
	}

	view := NewSnakeView(p)
	fields := ExtractFields(&view)

	height := int32(HeaderHeight + 2*PanelPadding)
	for _, f := range fields {
		height += FieldHeight(f)
	}

	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, height, ColorPanelBg)
	rl.DrawRectangleLinesEx(
		rl.Rectangle{X: float32(ins.panelX), Y: float32(ins.panelY), Width: PanelWidth, Height: float32(height)},
		1,
		ColorPanelBorder,
	)
	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, HeaderHeight, ColorPanelHeader)
	rl.DrawText(fmt.Sprintf("%s  #%d", view.Name, view.ID), ins.panelX+PanelPadding, ins.panelY+7, 16, ColorHeaderText)

	x := ins.panelX + PanelPadding
	y := ins.panelY + HeaderHeight + PanelPadding
	for _, f := range fields {
		y += DrawField(x, y, f)
	}
}

// DrawSelectionHighlight rings the selected snake's head.
func (ins *Inspector) DrawSelectionHighlight(cam *camera.Camera, p *components.Player) {
	if !ins.hasSelected || p == nil || p.Snake == nil {
		return
	}
	pos := p.Snake.Position()
	sx, sy := cam.WorldToScreen(float32(pos.X), float32(pos.Y))
	r := float32(p.Snake.HeadRadius()*1.8) * cam.Zoom
	rl.DrawCircleLines(int32(sx), int32(sy), r, ColorHighlight)
}
