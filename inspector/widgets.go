package inspector

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Widget colors
var (
	ColorBarBg       = rl.Color{R: 40, G: 40, B: 40, A: 255}
	ColorBarFill     = rl.Color{R: 100, G: 180, B: 100, A: 255}
	ColorBarLow      = rl.Color{R: 180, G: 80, B: 80, A: 255}
	ColorText        = rl.Color{R: 220, G: 220, B: 220, A: 255}
	ColorTextDim     = rl.Color{R: 150, G: 150, B: 150, A: 255}
	ColorAngleBg     = rl.Color{R: 50, G: 50, B: 60, A: 255}
	ColorAngleNeedle = rl.Color{R: 255, G: 200, B: 100, A: 255}
	ColorBoolOn      = rl.Color{R: 100, G: 200, B: 100, A: 255}
	ColorBoolOff     = rl.Color{R: 80, G: 80, B: 80, A: 255}
)

const (
	labelColumn = 90 // x offset of values from the field name
	fontSize    = 14
)

// DrawLabel renders "name  value". Returns the height used.
func DrawLabel(x, y int32, name string, value any, options map[string]string) int32 {
	rl.DrawText(name, x, y, fontSize, ColorTextDim)
	rl.DrawText(FormatValue(value, options["fmt"]), x+labelColumn, y, fontSize, ColorText)
	return 18
}

// DrawBar renders a horizontal bar scaled by the max option.
func DrawBar(x, y int32, name string, value float32, options map[string]string) int32 {
	ratio := clampRatio(value / OptionFloat(options, "max", 1))
	const barWidth, barHeight = 120, 12

	rl.DrawText(name, x, y, fontSize, ColorTextDim)
	barX := x + labelColumn
	rl.DrawRectangle(barX, y+1, barWidth, barHeight, ColorBarBg)
	fill := ColorBarFill
	if ratio < 0.3 {
		fill = ColorBarLow
	}
	rl.DrawRectangle(barX, y+1, int32(barWidth*ratio), barHeight, fill)
	rl.DrawText(fmt.Sprintf("%.2f", value), barX+barWidth+6, y, fontSize, ColorTextDim)
	return 18
}

// DrawBarGroup renders one vertical mini-bar per value.
func DrawBarGroup(x, y int32, name string, values []float32, options map[string]string) int32 {
	maxVal := OptionFloat(options, "max", 1)
	const barWidth, barHeight, gap = 12, 30, 2

	rl.DrawText(name, x, y+barHeight/2-7, fontSize, ColorTextDim)
	barX := x + labelColumn
	for i, v := range values {
		ratio := clampRatio(v / maxVal)
		bx := barX + int32(i)*(barWidth+gap)
		rl.DrawRectangle(bx, y, barWidth, barHeight, ColorBarBg)
		h := int32(barHeight * ratio)
		rl.DrawRectangle(bx, y+barHeight-h, barWidth, h, lerpColor(ColorBarLow, ColorBarFill, ratio))
	}
	return barHeight + 4
}

// DrawAngle renders a compass needle for a heading in radians.
func DrawAngle(x, y int32, name string, radians float32) int32 {
	const size = 36
	cx := x + labelColumn + size/2
	cy := y + size/2

	rl.DrawText(name, x, cy-7, fontSize, ColorTextDim)
	rl.DrawCircle(cx, cy, size/2, ColorAngleBg)
	rl.DrawCircleLines(cx, cy, size/2, ColorTextDim)

	needle := float32(size/2 - 4)
	end := rl.Vector2{
		X: float32(cx) + needle*float32(math.Cos(float64(radians))),
		Y: float32(cy) + needle*float32(math.Sin(float64(radians))),
	}
	rl.DrawLineEx(rl.Vector2{X: float32(cx), Y: float32(cy)}, end, 2, ColorAngleNeedle)

	degrees := float64(radians) * 180 / math.Pi
	rl.DrawText(fmt.Sprintf("%.0f deg", degrees), x+labelColumn+size+6, cy-7, fontSize, ColorTextDim)
	return size + 4
}

// DrawBool renders an on/off indicator.
func DrawBool(x, y int32, name string, value bool) int32 {
	rl.DrawText(name, x, y, fontSize, ColorTextDim)

	color, text := ColorBoolOff, "no"
	if value {
		color, text = ColorBoolOn, "yes"
	}
	ix := x + labelColumn
	rl.DrawRectangle(ix, y+1, 12, 12, color)
	rl.DrawText(text, ix+18, y, fontSize, color)
	return 18
}

// DrawField renders a field with its widget, falling back to a label when
// the value does not fit the widget.
func DrawField(x, y int32, f Field) int32 {
	switch f.Widget {
	case WidgetBar:
		if values, ok := FloatSlice(f.Value); ok {
			return DrawBarGroup(x, y, f.Name, values, f.Options)
		}
		if v, ok := FloatValue(f.Value); ok {
			return DrawBar(x, y, f.Name, v, f.Options)
		}
	case WidgetAngle:
		if v, ok := FloatValue(f.Value); ok {
			return DrawAngle(x, y, f.Name, v)
		}
	case WidgetBool:
		if v, ok := f.Value.(bool); ok {
			return DrawBool(x, y, f.Name, v)
		}
	}
	return DrawLabel(x, y, f.Name, f.Value, f.Options)
}

// FieldHeight returns the height DrawField will use for f.
func FieldHeight(f Field) int32 {
	switch f.Widget {
	case WidgetBar:
		if _, ok := FloatSlice(f.Value); ok {
			return 34
		}
	case WidgetAngle:
		if _, ok := FloatValue(f.Value); ok {
			return 40
		}
	}
	return 18
}

func clampRatio(r float32) float32 {
	return min(max(r, 0), 1)
}

func lerpColor(a, b rl.Color, t float32) rl.Color {
	return rl.Color{
		R: uint8(float32(a.R) + (float32(b.R)-float32(a.R))*t),
		G: uint8(float32(a.G) + (float32(b.G)-float32(a.G))*t),
		B: uint8(float32(a.B) + (float32(b.B)-float32(a.B))*t),
		A: 255,
	}
}
