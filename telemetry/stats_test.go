package telemetry

import (
	"math"
	"testing"
)

func TestSummarize(t *testing.T) {
	tests := []struct {
		name    string
		lengths []float64
		want    LengthSummary
	}{
		{"empty", nil, LengthSummary{}},
		{"single", []float64{42}, LengthSummary{Mean: 42, P10: 42, P50: 42, P90: 42, Max: 42}},
		{
			"unsorted five",
			[]float64{50, 10, 40, 20, 30},
			LengthSummary{Mean: 30, Std: math.Sqrt(200), P10: 10, P50: 30, P90: 50, Max: 50},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Summarize(tt.lengths)
			fields := []struct {
				name      string
				got, want float64
			}{
				{"mean", got.Mean, tt.want.Mean},
				{"std", got.Std, tt.want.Std},
				{"p10", got.P10, tt.want.P10},
				{"p50", got.P50, tt.want.P50},
				{"p90", got.P90, tt.want.P90},
				{"max", got.Max, tt.want.Max},
			}
			for _, f := range fields {
				if math.Abs(f.got-f.want) > 0.001 {
					t.Errorf("%s = %v, want %v", f.name, f.got, f.want)
				}
			}
		})
	}
}

func TestSummarize_DoesNotReorderInput(t *testing.T) {
	in := []float64{3, 1, 2}
	Summarize(in)
	if in[0] != 3 || in[1] != 1 || in[2] != 2 {
		t.Errorf("input reordered: %v", in)
	}
}

func TestCollector_FlushAndReset(t *testing.T) {
	c := NewCollector(1.0, 0.1)
	if c.WindowDurationTicks() != 10 {
		t.Fatalf("expected 10 ticks per window, got %d", c.WindowDurationTicks())
	}

	c.RecordDeath()
	c.RecordRespawn()
	c.RecordRespawn()
	c.RecordPickup(3, 5)
	c.RecordPickup(1, 1)
	c.RecordDrop(7)
	c.RecordLengthLoss(0.5, 0.25)
	c.RecordBoost(0.1)

	if c.ShouldFlush(9) {
		t.Error("should not flush before the window ends")
	}
	if !c.ShouldFlush(10) {
		t.Error("should flush at the window end")
	}

	stats := c.Flush(10, Population{Lengths: []float64{10, 30}, Segments: 40, Boosting: 1, Pellets: 99})

	if stats.Deaths != 1 || stats.Respawns != 2 || stats.PelletsEaten != 4 || stats.PelletsDropped != 7 {
		t.Errorf("unexpected counts %+v", stats)
	}
	if stats.LengthGained != 6 || stats.LengthBurned != 0.5 || stats.LengthDecayed != 0.25 {
		t.Errorf("unexpected length flows %+v", stats)
	}
	if stats.Alive != 2 || stats.Boosting != 1 || stats.Pellets != 99 {
		t.Errorf("unexpected population %+v", stats)
	}
	if stats.MeanSegments != 20 || stats.LengthMean != 20 || stats.LengthMax != 30 {
		t.Errorf("unexpected distribution %+v", stats)
	}
	if math.Abs(stats.SimTimeSec-1.0) > 1e-9 {
		t.Errorf("sim time = %v, want 1", stats.SimTimeSec)
	}

	if c.ShouldFlush(15) {
		t.Error("window should restart at the flush tick")
	}
	next := c.Flush(20, Population{})
	if next.WindowStartTick != 10 || next.Deaths != 0 || next.LengthGained != 0 || next.Alive != 0 {
		t.Errorf("counters not reset: %+v", next)
	}
}
