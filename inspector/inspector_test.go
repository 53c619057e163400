package inspector

import (
	"math"
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/slither/components"
	"github.com/pthm-cable/slither/config"
	"github.com/pthm-cable/slither/snake"
	"github.com/pthm-cable/slither/vmath"
)

// ---------- Tags ----------

func TestParseTag(t *testing.T) {
	tests := []struct {
		tag     string
		widget  Widget
		options map[string]string
	}{
		{"", WidgetAuto, map[string]string{}},
		{"bar", WidgetBar, map[string]string{}},
		{"bar,max:200", WidgetBar, map[string]string{"max": "200"}},
		{"label,fmt:%.1f,name:Move speed", WidgetLabel, map[string]string{"fmt": "%.1f", "name": "Move speed"}},
		{"skip", WidgetSkip, map[string]string{}},
		{"unknown", WidgetAuto, map[string]string{}},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			w, opts := ParseTag(tt.tag)
			if w != tt.widget {
				t.Errorf("widget = %v, want %v", w, tt.widget)
			}
			if len(opts) != len(tt.options) {
				t.Fatalf("options = %v, want %v", opts, tt.options)
			}
			for k, v := range tt.options {
				if opts[k] != v {
					t.Errorf("option %q = %q, want %q", k, opts[k], v)
				}
			}
		})
	}
}

func TestExtractFields(t *testing.T) {
	type sample struct {
		Hidden  int     `inspect:"skip"`
		Speed   float64 `inspect:"label,name:Top speed"`
		Active  bool
		Radii   []float64
		private int
	}
	fields := ExtractFields(&sample{Speed: 3, Active: true, Radii: []float64{1, 0.5}})

	if len(fields) != 3 {
		t.Fatalf("got %d fields, want 3", len(fields))
	}
	want := []struct {
		name   string
		widget Widget
	}{
		{"Top speed", WidgetLabel},
		{"Active", WidgetBool},
		{"Radii", WidgetBar},
	}
	for i, w := range want {
		if fields[i].Name != w.name || fields[i].Widget != w.widget {
			t.Errorf("field %d = (%q, %v), want (%q, %v)", i, fields[i].Name, fields[i].Widget, w.name, w.widget)
		}
	}
	if ExtractFields(42) != nil {
		t.Error("non-struct input should yield nil")
	}
}

func TestFormatValue(t *testing.T) {
	if got := FormatValue(1.234, ""); got != "1.23" {
		t.Errorf("float default = %q", got)
	}
	if got := FormatValue(0.5, "%.2f/s"); got != "0.50/s" {
		t.Errorf("custom fmt = %q", got)
	}
	if got := FormatValue("idle", ""); got != "idle" {
		t.Errorf("string = %q", got)
	}
}

func TestOptionFloat(t *testing.T) {
	opts := map[string]string{"max": "2.5", "bad": "x"}
	if got := OptionFloat(opts, "max", 1); got != 2.5 {
		t.Errorf("max = %v", got)
	}
	if got := OptionFloat(opts, "bad", 1); got != 1 {
		t.Errorf("malformed = %v, want default", got)
	}
	if got := OptionFloat(opts, "missing", 7); got != 7 {
		t.Errorf("missing = %v, want default", got)
	}
}

// ---------- View ----------

func TestNewSnakeView(t *testing.T) {
	cfg := config.DefaultSnake()
	s := snake.New(cfg, vmath.V(100, 100), 0)
	s.Grow(40)
	p := &components.Player{Snake: s, ID: 7, Name: "bot-7"}

	v := NewSnakeView(p)
	if v.ID != 7 || v.Name != "bot-7" {
		t.Errorf("identity = (%d, %q)", v.ID, v.Name)
	}
	if math.Abs(v.Length-s.Length()) > 1e-9 {
		t.Errorf("Length = %v, want %v", v.Length, s.Length())
	}
	wantReserve := (s.Length() - cfg.Boost.MinLength) / s.Length()
	if math.Abs(v.BoostReserve-wantReserve) > 1e-9 {
		t.Errorf("BoostReserve = %v, want %v", v.BoostReserve, wantReserve)
	}
	if len(v.SegmentRadius) == 0 || math.Abs(v.SegmentRadius[0]-1) > 1e-9 {
		t.Errorf("taper should start at 1, got %v", v.SegmentRadius)
	}
	if len(v.SegmentRadius) > taperSamples {
		t.Errorf("taper has %d entries, cap is %d", len(v.SegmentRadius), taperSamples)
	}
	if v.Boost != "idle" || !v.Alive {
		t.Errorf("state = (%q, %v)", v.Boost, v.Alive)
	}
}

// ---------- Picking ----------

func TestPick(t *testing.T) {
	world := ecs.NewWorld()
	mapper := ecs.NewMap1[components.Position](world)
	ea := mapper.NewEntity(&components.Position{})
	eb := mapper.NewEntity(&components.Position{})

	cfg := config.DefaultSnake()
	a := snake.New(cfg, vmath.V(100, 100), 0)
	b := snake.New(cfg, vmath.V(400, 100), 0)
	targets := []Target{{Entity: ea, Snake: a}, {Entity: eb, Snake: b}}

	tests := []struct {
		name  string
		point vmath.Vec2
		want  ecs.Entity
		found bool
	}{
		{"head of a", vmath.V(101, 100), ea, true},
		{"head of b", vmath.V(400, 102), eb, true},
		{"empty space", vmath.V(250, 400), ecs.Entity{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Pick(tt.point, targets)
			if ok != tt.found {
				t.Fatalf("found = %v, want %v", ok, tt.found)
			}
			if ok && got != tt.want {
				t.Errorf("picked %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInspector_HandleClick(t *testing.T) {
	world := ecs.NewWorld()
	mapper := ecs.NewMap1[components.Position](world)
	e := mapper.NewEntity(&components.Position{})
	s := snake.New(config.DefaultSnake(), vmath.V(50, 50), 0)
	targets := []Target{{Entity: e, Snake: s}}

	ins := NewInspector(10, 10)
	ins.HandleClick(vmath.V(50, 50), targets)
	if got, ok := ins.Selected(); !ok || got != e {
		t.Fatalf("Selected = (%v, %v), want (%v, true)", got, ok, e)
	}

	ins.HandleClick(vmath.V(5000, 5000), targets)
	if _, ok := ins.Selected(); ok {
		t.Error("click on empty space should clear the selection")
	}
}
