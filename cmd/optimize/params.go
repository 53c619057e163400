// Package main tunes the length economy with CMA-ES so that bot snakes settle
// around a target length.
package main

import (
	"github.com/pthm-cable/slither/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Boost economy
			{Name: "boost_cost", Path: "snake.boost.cost_per_second", Min: 0.2, Max: 2.0, Default: 0.7},
			{Name: "boost_speed_mult", Path: "snake.boost.speed_multiplier", Min: 1.2, Max: 2.5, Default: 1.8},
			// Passive decay: every bracket rate is multiplied by this
			{Name: "decay_scale", Path: "snake.decay.brackets[*].rate", Min: 0.25, Max: 4.0, Default: 1.0},
			{Name: "decay_floor", Path: "snake.decay.floor", Min: 20, Max: 120, Default: 50},
			// Food supply
			{Name: "pellet_target", Path: "pellets.target_count", Min: 500, Max: 6000, Default: 2500},
			{Name: "big_chance", Path: "pellets.big_chance", Min: 0.0, Max: 0.4, Default: 0.1},
			// Bot behavior
			{Name: "bot_boost_threshold", Path: "autopilot.boost_threshold", Min: 0.3, Max: 0.9, Default: 0.55},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = min(max(v[i], spec.Min), spec.Max)
	}
	return clamped
}

// ApplyToConfig applies parameter values to cfg. Decay brackets are rewritten
// in place, so cfg must own its bracket slice.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	c := pv.Clamp(values)

	cfg.Snake.Boost.CostPerSecond = c[0]
	cfg.Snake.Boost.SpeedMultiplier = c[1]
	for i := range cfg.Snake.Decay.Brackets {
		cfg.Snake.Decay.Brackets[i].Rate *= c[2]
	}
	cfg.Snake.Decay.Floor = c[3]
	cfg.Pellets.TargetCount = int(c[4])
	cfg.Pellets.BigChance = c[5]
	cfg.Autopilot.BoostThreshold = c[6]
}

// ExtractFromConfig extracts current parameter values from cfg. The decay
// scale is always reported as 1 since brackets carry absolute rates.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		cfg.Snake.Boost.CostPerSecond,
		cfg.Snake.Boost.SpeedMultiplier,
		1.0,
		cfg.Snake.Decay.Floor,
		float64(cfg.Pellets.TargetCount),
		cfg.Pellets.BigChance,
		cfg.Autopilot.BoostThreshold,
	}
}
