// Package telemetry aggregates windowed simulation statistics, per-snake
// lifetimes and tick timing, and writes them out as CSV.
package telemetry

import (
	"log/slog"
	"slices"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Population at window end
	Alive    int `csv:"alive"`
	Boosting int `csv:"boosting"`
	Pellets  int `csv:"pellets"`

	// Events during window
	Deaths         int `csv:"deaths"`
	Respawns       int `csv:"respawns"`
	PelletsEaten   int `csv:"pellets_eaten"`
	PelletsDropped int `csv:"pellets_dropped"`

	// Length flows during window
	LengthGained  float64 `csv:"length_gained"`
	LengthBurned  float64 `csv:"length_burned"`
	LengthDecayed float64 `csv:"length_decayed"`
	BoostSeconds  float64 `csv:"boost_seconds"`

	// Length distribution (sampled at window end)
	LengthMean float64 `csv:"length_mean"`
	LengthStd  float64 `csv:"length_std"`
	LengthP10  float64 `csv:"length_p10"`
	LengthP50  float64 `csv:"length_p50"`
	LengthP90  float64 `csv:"length_p90"`
	LengthMax  float64 `csv:"length_max"`

	MeanSegments float64 `csv:"mean_segments"`
}

// LengthSummary is the distribution of snake lengths at one instant.
type LengthSummary struct {
	Mean, Std     float64
	P10, P50, P90 float64
	Max           float64
}

// Summarize computes the length distribution. The input is not modified.
// An empty input yields the zero summary.
func Summarize(lengths []float64) LengthSummary {
	if len(lengths) == 0 {
		return LengthSummary{}
	}
	sorted := slices.Clone(lengths)
	slices.Sort(sorted)

	mean, std := stat.PopMeanStdDev(sorted, nil)
	return LengthSummary{
		Mean: mean,
		Std:  std,
		P10:  stat.Quantile(0.10, stat.Empirical, sorted, nil),
		P50:  stat.Quantile(0.50, stat.Empirical, sorted, nil),
		P90:  stat.Quantile(0.90, stat.Empirical, sorted, nil),
		Max:  sorted[len(sorted)-1],
	}
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("alive", s.Alive),
		slog.Int("boosting", s.Boosting),
		slog.Int("pellets", s.Pellets),
		slog.Int("deaths", s.Deaths),
		slog.Int("respawns", s.Respawns),
		slog.Int("pellets_eaten", s.PelletsEaten),
		slog.Int("pellets_dropped", s.PelletsDropped),
		slog.Float64("length_gained", s.LengthGained),
		slog.Float64("length_burned", s.LengthBurned),
		slog.Float64("length_decayed", s.LengthDecayed),
		slog.Float64("boost_seconds", s.BoostSeconds),
		slog.Float64("length_mean", s.LengthMean),
		slog.Float64("length_std", s.LengthStd),
		slog.Float64("length_p10", s.LengthP10),
		slog.Float64("length_p50", s.LengthP50),
		slog.Float64("length_p90", s.LengthP90),
		slog.Float64("length_max", s.LengthMax),
		slog.Float64("mean_segments", s.MeanSegments),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"alive", s.Alive,
		"boosting", s.Boosting,
		"pellets", s.Pellets,
		"deaths", s.Deaths,
		"respawns", s.Respawns,
		"pellets_eaten", s.PelletsEaten,
		"length_gained", s.LengthGained,
		"length_burned", s.LengthBurned,
		"length_decayed", s.LengthDecayed,
		"length_mean", s.LengthMean,
		"length_p50", s.LengthP50,
		"length_max", s.LengthMax,
	)
}
