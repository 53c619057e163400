package game

import (
	"log/slog"

	"github.com/pthm-cable/slither/telemetry"
)

// flushTelemetry flushes the stats window once it is complete.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	stats := g.collector.Flush(g.tick, g.samplePopulation())
	perfStats := g.perfCollector.Stats()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := g.outputManager.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
}

// samplePopulation collects the live length distribution at window end.
func (g *Game) samplePopulation() telemetry.Population {
	pop := telemetry.Population{Pellets: g.pellets.Count()}

	query := g.players.Query()
	for query.Next() {
		p, _ := query.Get()
		s := p.Snake
		if !s.IsAlive() {
			continue
		}
		pop.Lengths = append(pop.Lengths, s.Length())
		pop.Segments += len(s.Segments())
		if s.IsBoosting() {
			pop.Boosting++
		}
	}
	return pop
}
