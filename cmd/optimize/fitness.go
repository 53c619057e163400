package main

import (
	"math"
	"slices"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/slither/config"
	"github.com/pthm-cable/slither/game"
	"github.com/pthm-cable/slither/telemetry"
)

// FitnessEvaluator runs headless simulations and computes fitness.
type FitnessEvaluator struct {
	params       *ParamVector
	maxTicks     int32
	seeds        []int64
	baseConfig   *config.Config
	statsWindow  float64
	targetLength float64

	mu         sync.Mutex
	lastLength float64 // steady-state mean length from the most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int32, seeds []int64, baseCfg *config.Config, targetLength float64) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:       params,
		maxTicks:     maxTicks,
		seeds:        seeds,
		baseConfig:   baseCfg,
		statsWindow:  10.0,
		targetLength: targetLength,
	}
}

// LastMeanLength returns the steady-state mean length of the most recent evaluation.
func (fe *FitnessEvaluator) LastMeanLength() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastLength
}

const (
	warmupWindows   = 3    // windows skipped while bots grow from their initial length
	stabilityWeight = 0.25 // weight of the length CV term
	emptyPenalty    = 10.0 // fitness of a run with no usable windows
)

type seedResult struct {
	fitness    float64
	meanLength float64
}

// Evaluate computes fitness for a parameter vector (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			windows := fe.runSimulation(x, s)
			f, mean := fe.computeFitness(windows)
			results[idx] = seedResult{fitness: f, meanLength: mean}
		}(i, seed)
	}
	wg.Wait()

	var totalFitness, totalLength float64
	for _, r := range results {
		totalFitness += r.fitness
		totalLength += r.meanLength
	}
	n := float64(len(fe.seeds))

	fe.mu.Lock()
	fe.lastLength = totalLength / n
	fe.mu.Unlock()

	return totalFitness / n
}

// runSimulation executes one headless run and returns its window stats.
func (fe *FitnessEvaluator) runSimulation(x []float64, seed int64) []telemetry.WindowStats {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	var windows []telemetry.WindowStats
	g := game.NewGameWithOptions(game.Options{
		Config:         cfg,
		Seed:           seed,
		Headless:       true,
		StatsWindowSec: fe.statsWindow,
		StepsPerUpdate: 1,
		Bots:           -1,
		StatsCallback: func(stats telemetry.WindowStats) {
			windows = append(windows, stats)
		},
	})
	defer g.Unload()

	for g.Tick() < fe.maxTicks {
		g.UpdateHeadless()
	}
	return windows
}

// copyConfig creates a deep copy of the base config. Decay brackets are the
// only shared slice.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	cfg.Snake.Decay.Brackets = slices.Clone(fe.baseConfig.Snake.Decay.Brackets)
	return &cfg
}

// computeFitness scores one run by how far the steady-state mean length sits
// from the target, plus a penalty for oscillation between windows.
// Returns the fitness and the steady-state mean length.
func (fe *FitnessEvaluator) computeFitness(windows []telemetry.WindowStats) (float64, float64) {
	if len(windows) <= warmupWindows {
		return emptyPenalty, 0
	}
	means := make([]float64, 0, len(windows)-warmupWindows)
	for _, w := range windows[warmupWindows:] {
		if w.Alive == 0 {
			continue
		}
		means = append(means, w.LengthMean)
	}
	if len(means) == 0 {
		return emptyPenalty, 0
	}

	mean, std := stat.MeanStdDev(means, nil)
	if math.IsNaN(std) {
		std = 0
	}
	rel := (mean - fe.targetLength) / fe.targetLength
	cv := 0.0
	if mean > 0 {
		cv = std / mean
	}
	return rel*rel + stabilityWeight*cv*cv, mean
}
