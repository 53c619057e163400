package telemetry

import (
	"testing"
	"time"
)

func TestPerfCollector_PhasesTracked(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseSnakes)
		time.Sleep(100 * time.Microsecond)
		pc.StartPhase(PhasePickups)
		time.Sleep(200 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()
	if stats.AvgTickDuration <= 0 {
		t.Fatal("expected positive average tick duration")
	}
	for _, phase := range []string{PhaseSnakes, PhasePickups} {
		if stats.PhaseAvg[phase] <= 0 {
			t.Errorf("phase %q not tracked", phase)
		}
	}
	if _, ok := stats.PhaseAvg[PhaseBounds]; ok {
		t.Error("untimed phase should be absent")
	}
	if stats.MinTickDuration > stats.P95TickDuration || stats.P95TickDuration > stats.MaxTickDuration {
		t.Errorf("expected min <= p95 <= max, got %v %v %v",
			stats.MinTickDuration, stats.P95TickDuration, stats.MaxTickDuration)
	}
}

func TestPerfCollector_RingReusesSlots(t *testing.T) {
	pc := NewPerfCollector(3)

	// Fill the ring with ticks that time "old", then overwrite every slot
	// with ticks that time only "new".
	for i := 0; i < 3; i++ {
		pc.StartTick()
		pc.StartPhase("old")
		pc.EndTick()
	}
	for i := 0; i < 3; i++ {
		pc.StartTick()
		pc.StartPhase("new")
		pc.EndTick()
	}

	stats := pc.Stats()
	if _, ok := stats.PhaseAvg["old"]; ok {
		t.Error("overwritten slots still report the old phase")
	}
	if stats.TicksPerSecond <= 0 {
		t.Error("expected positive ticks per second")
	}
}

func TestPerfCollector_PhasePercentages(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase("fast")
		time.Sleep(10 * time.Microsecond)
		pc.StartPhase("slow")
		time.Sleep(500 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()
	if stats.PhasePct["slow"] <= stats.PhasePct["fast"] {
		t.Errorf("expected slow (%v%%) > fast (%v%%)", stats.PhasePct["slow"], stats.PhasePct["fast"])
	}
	if total := stats.PhasePct["slow"] + stats.PhasePct["fast"]; total > 100.0001 {
		t.Errorf("phase shares sum to %v%%", total)
	}
}

func TestPerfCollector_EmptyStats(t *testing.T) {
	stats := NewPerfCollector(10).Stats()

	if stats.AvgTickDuration != 0 || stats.P95TickDuration != 0 {
		t.Error("expected zero durations for empty collector")
	}
	if stats.PhaseAvg == nil || stats.PhasePct == nil {
		t.Error("expected non-nil phase maps")
	}
}

func TestPerfCollector_EndTickWithoutStart(t *testing.T) {
	pc := NewPerfCollector(4)
	pc.EndTick()
	if got := pc.Stats().AvgTickDuration; got != 0 {
		t.Errorf("stray EndTick recorded a tick of %v", got)
	}
}

func TestPerfCollector_FrameTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	pc.RecordFrame()
	time.Sleep(16 * time.Millisecond)
	pc.RecordFrame()

	stats := pc.Stats()
	if stats.FrameDuration < 15*time.Millisecond {
		t.Errorf("expected frame duration >= 15ms, got %v", stats.FrameDuration)
	}
	if stats.FPS <= 0 || stats.FPS > 70 {
		t.Errorf("expected FPS in (0, 70] for a 16ms frame, got %v", stats.FPS)
	}
}

func TestPerfStats_ToCSV(t *testing.T) {
	s := PerfStats{
		AvgTickDuration: 1500 * time.Microsecond,
		P95TickDuration: 2 * time.Millisecond,
		PhasePct:        map[string]float64{PhaseSnakes: 60, PhasePickups: 25},
	}
	row := s.ToCSV(120)
	if row.WindowEnd != 120 || row.AvgTickUS != 1500 || row.P95TickUS != 2000 {
		t.Errorf("unexpected row %+v", row)
	}
	if row.SnakesPct != 60 || row.PickupsPct != 25 || row.BoundsPct != 0 {
		t.Errorf("unexpected phase split %+v", row)
	}
}
