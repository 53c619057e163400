// Curve preview tool - plots the length-derived curves of a snake and the
// segment spacing profile, with sliders for the main parameters.
//
// Usage: go run ./cmd/curvepreview [-config path]
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"slices"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/slither/config"
	"github.com/pthm-cable/slither/snake"
)

const (
	windowWidth  = 1100
	windowHeight = 720
	plotX        = 10
	plotY        = 10
	plotW        = 640
	plotH        = 380
	profileY     = plotY + plotH + 40
	profileH     = windowHeight - profileY - 30
	panelX       = plotX + plotW + 20
	panelWidth   = windowWidth - panelX - 10
	samples      = 320
)

// curve is one plotted series, normalized to [0, 1] by its own maximum.
type curve struct {
	name  string
	color color.RGBA
	eval  func(length float64) float64
}

func main() {
	configPath := flag.String("config", "", "Config YAML file (empty = use defaults)")
	flag.Parse()

	base, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg := cloneSnake(base.Snake)

	rl.InitWindow(windowWidth, windowHeight, "Snake Curve Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	maxLength := float32(2000)
	selected := float32(250)
	boosting := false

	for !rl.WindowShouldClose() {
		curves := buildCurves(&cfg, boosting)

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		drawCurves(curves, float64(maxLength), float64(selected))
		drawProfile(&cfg, float64(selected))

		y := float32(plotY)
		rl.DrawText("Snake Parameters", panelX, int32(y), 20, rl.DarkGray)
		y += 35

		maxLength = slider(&y, "Plot range (length)", "%.0f", maxLength, 100, 5000)
		selected = min(slider(&y, "Selected length", "%.0f", selected, 1, 5000), maxLength)

		cfg.Boost.CostPerSecond = sliderF64(&y, "Boost cost (length/s)", "%.2f", cfg.Boost.CostPerSecond, 0.1, 3)
		cfg.Movement.SpeedMax = sliderF64(&y, "Speed max", "%.0f", cfg.Movement.SpeedMax, 50, 600)
		cfg.Movement.SpeedMin = min(sliderF64(&y, "Speed min", "%.0f", cfg.Movement.SpeedMin, 20, 600), cfg.Movement.SpeedMax)
		cfg.Scale.MaxScale = sliderF64(&y, "Max visual scale", "%.2f", cfg.Scale.MaxScale, 1, 6)
		cfg.Camera.BaseZoom = sliderF64(&y, "Base zoom", "%.2f", cfg.Camera.BaseZoom, 0.3, 2)
		cfg.Camera.MaxZoomOut = sliderF64(&y, "Max zoom out", "%.2f", cfg.Camera.MaxZoomOut, 0, 1.5)
		cfg.Spacing.FirstGain = sliderF64(&y, "Spacing first gain", "%.2f", cfg.Spacing.FirstGain, 0, 2)
		cfg.Spacing.SecondGain = sliderF64(&y, "Spacing second gain", "%.2f", cfg.Spacing.SecondGain, 0, 2)
		cfg.Spacing.TailMultiplier = sliderF64(&y, "Tail multiplier", "%.2f", cfg.Spacing.TailMultiplier, 0.5, 3)

		if gui.Button(rl.Rectangle{X: panelX, Y: y, Width: 120, Height: 30}, toggleText(boosting, "Boost: on", "Boost: off")) {
			boosting = !boosting
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: y, Width: 120, Height: 30}, "Reset All") {
			cfg = cloneSnake(base.Snake)
		}
		y += 45

		drawReadout(&cfg, float64(selected), boosting, y)

		rl.DrawText("Press C to copy snake YAML to clipboard", panelX, windowHeight-30, 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			if data, err := yaml.Marshal(map[string]config.SnakeConfig{"snake": cfg}); err == nil {
				rl.SetClipboardText(string(data))
			}
		}

		rl.EndDrawing()
	}
}

// cloneSnake copies s including its decay brackets.
func cloneSnake(s config.SnakeConfig) config.SnakeConfig {
	s.Decay.Brackets = slices.Clone(s.Decay.Brackets)
	return s
}

func buildCurves(cfg *config.SnakeConfig, boosting bool) []curve {
	return []curve{
		{"speed", rl.Blue, func(l float64) float64 { return snake.Speed(cfg.Movement, l) }},
		{"visual scale", rl.Orange, func(l float64) float64 { return snake.VisualScale(cfg.Scale, cfg.InitialLength, l) }},
		{"zoom target", rl.DarkGreen, func(l float64) float64 { return snake.ZoomTarget(cfg.Camera, cfg.InitialLength, l, boosting) }},
		{"turn factor", rl.Purple, func(l float64) float64 { return snake.TurnPenalty(cfg.Steering, l) }},
		{"decay rate", rl.Maroon, func(l float64) float64 { return snake.DecayRate(cfg.Decay, l) }},
	}
}

func drawCurves(curves []curve, maxLength, selected float64) {
	rl.DrawRectangle(plotX, plotY, plotW, plotH, rl.White)
	rl.DrawRectangleLines(plotX, plotY, plotW, plotH, rl.DarkGray)

	values := make([]float64, samples)
	for ci, c := range curves {
		for i := range values {
			l := 1 + (maxLength-1)*float64(i)/float64(samples-1)
			values[i] = c.eval(l)
		}
		peak := slices.Max(values)
		if peak <= 0 {
			peak = 1
		}
		prev := rl.Vector2{}
		for i, v := range values {
			p := rl.Vector2{
				X: plotX + float32(i)*plotW/float32(samples-1),
				Y: plotY + plotH - float32(v/peak)*(plotH-10),
			}
			if i > 0 {
				rl.DrawLineEx(prev, p, 2, c.color)
			}
			prev = p
		}
		legendY := int32(plotY + 8 + ci*18)
		rl.DrawRectangle(plotX+8, legendY+3, 10, 10, c.color)
		rl.DrawText(fmt.Sprintf("%s (max %.3g)", c.name, peak), plotX+24, legendY, 14, rl.DarkGray)
	}

	sx := plotX + float32((selected-1)/(maxLength-1))*plotW
	rl.DrawLineV(rl.Vector2{X: sx, Y: plotY}, rl.Vector2{X: sx, Y: plotY + plotH}, rl.Gray)
	rl.DrawText("1", plotX, plotY+plotH+4, 12, rl.Gray)
	rl.DrawText(fmt.Sprintf("%.0f", maxLength), plotX+plotW-40, plotY+plotH+4, 12, rl.Gray)
}

// drawProfile plots the gap between consecutive segments for the selected
// length. The tail widening shows up as a step near the end.
func drawProfile(cfg *config.SnakeConfig, length float64) {
	rl.DrawRectangle(plotX, profileY, plotW, profileH, rl.White)
	rl.DrawRectangleLines(plotX, profileY, plotW, profileH, rl.DarkGray)

	policy := snake.NewSpacingPolicy(cfg.Spacing)
	table := policy.Table(length)
	n := len(table)
	rl.DrawText(fmt.Sprintf("Segment gaps at length %.0f (%d segments, body %.0f units)",
		length, n, table[n-1]), plotX, profileY-20, 14, rl.DarkGray)
	if n < 2 {
		return
	}

	peak := 0.0
	for i := 1; i < n; i++ {
		peak = max(peak, table[i]-table[i-1])
	}
	barW := float32(plotW) / float32(n-1)
	for i := 1; i < n; i++ {
		h := float32((table[i]-table[i-1])/peak) * (profileH - 10)
		x := plotX + float32(i-1)*barW
		rl.DrawRectangleV(rl.Vector2{X: x, Y: profileY + profileH - h}, rl.Vector2{X: max(barW-1, 1), Y: h}, rl.SkyBlue)
	}
}

func drawReadout(cfg *config.SnakeConfig, length float64, boosting bool, y float32) {
	speed := snake.Speed(cfg.Movement, length)
	move := speed
	if boosting {
		move *= cfg.Boost.SpeedMultiplier
	}
	burnSec := 0.0
	if cfg.Boost.CostPerSecond > 0 && length > cfg.Boost.MinLength {
		burnSec = (length - cfg.Boost.MinLength) / cfg.Boost.CostPerSecond
	}

	lines := []string{
		fmt.Sprintf("Move speed: %.1f", move),
		fmt.Sprintf("Visual scale: %.3f", snake.VisualScale(cfg.Scale, cfg.InitialLength, length)),
		fmt.Sprintf("Zoom target: %.3f", snake.ZoomTarget(cfg.Camera, cfg.InitialLength, length, boosting)),
		fmt.Sprintf("Turn factor: %.3f", snake.TurnPenalty(cfg.Steering, length)),
		fmt.Sprintf("Decay: %.2f/s", snake.DecayRate(cfg.Decay, length)),
		fmt.Sprintf("Boost until floor: %.1fs", burnSec),
	}
	for _, line := range lines {
		rl.DrawText(line, panelX, int32(y), 14, rl.DarkGray)
		y += 18
	}
}

func slider(y *float32, label, format string, value, lo, hi float32) float32 {
	rl.DrawText(label, panelX, int32(*y), 14, rl.Gray)
	*y += 18
	v := gui.SliderBar(
		rl.Rectangle{X: panelX, Y: *y, Width: panelWidth - 80, Height: 20},
		"", "",
		value, lo, hi,
	)
	rl.DrawText(fmt.Sprintf(format, v), int32(panelX+panelWidth-70), int32(*y+2), 16, rl.DarkGray)
	*y += 30
	return v
}

func sliderF64(y *float32, label, format string, value, lo, hi float64) float64 {
	v := slider(y, label, format, float32(value), float32(lo), float32(hi))
	if v == float32(value) {
		return value
	}
	return float64(v)
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}
