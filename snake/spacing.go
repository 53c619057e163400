package snake

import (
	"math"

	"github.com/pthm-cable/slither/config"
	"gonum.org/v1/gonum/floats"
)

// SpacingPolicy maps a segment index and the snake's length to a target arc
// distance behind the head.
//
// Distances are prefix sums of per-step gaps. The table is keyed by the
// segment count floor(length) and rebuilt only when that count changes.
type SpacingPolicy struct {
	cfg config.SpacingConfig

	key    int       // segment count the table was built for, 0 if none
	gaps   []float64 // gaps[j] is the distance between segment j-1 and j; gaps[0] is 0
	prefix []float64 // prefix[i] is the target distance of segment i
}

// NewSpacingPolicy creates a policy for the given spacing parameters.
func NewSpacingPolicy(cfg config.SpacingConfig) *SpacingPolicy {
	return &SpacingPolicy{cfg: cfg}
}

// SegmentCount returns the number of segments a snake of the given length has.
func SegmentCount(length float64) int {
	n := int(math.Floor(length))
	if n < 1 {
		return 1
	}
	return n
}

// RegimeMultiplier returns the length-dependent gap multiplier. It is 1 up to
// the first threshold, grows logarithmically past it, and compounds with a
// second logarithmic term past the second threshold.
func (p *SpacingPolicy) RegimeMultiplier(length float64) float64 {
	m := 1.0
	if t := p.cfg.FirstThreshold; t > 0 && length > t {
		m *= 1 + p.cfg.FirstGain*math.Log1p((length-t)/t)
	}
	if t := p.cfg.SecondThreshold; t > 0 && length > t {
		m *= 1 + p.cfg.SecondGain*math.Log1p((length-t)/t)
	}
	return m
}

// Gap returns the distance between segment step-1 and step for a snake with
// count segments. Steps in the trailing tail fraction are widened.
func (p *SpacingPolicy) Gap(step, count int) float64 {
	if step <= 0 {
		return 0
	}
	g := p.cfg.BaseGap * p.RegimeMultiplier(float64(count))
	if float64(step) > p.cfg.TailStart*float64(count) {
		g *= p.cfg.TailMultiplier
	}
	return g
}

// TargetDistance returns the arc distance behind the head for segment index.
// Index 0 is the head at distance 0. Strictly increasing in index.
func (p *SpacingPolicy) TargetDistance(index int, length float64) float64 {
	if index <= 0 {
		return 0
	}
	n := SegmentCount(length)
	p.ensure(n, index+1)
	return p.prefix[index]
}

// Table returns the target distances of all segments for the given length.
// The returned slice is owned by the policy and valid until the next call.
func (p *SpacingPolicy) Table(length float64) []float64 {
	n := SegmentCount(length)
	p.ensure(n, n)
	return p.prefix[:n]
}

// ensure builds the table for count segments with at least size entries.
func (p *SpacingPolicy) ensure(count, size int) {
	if p.key == count && len(p.prefix) >= size {
		return
	}
	if size < count {
		size = count
	}
	if cap(p.gaps) < size {
		p.gaps = make([]float64, size)
		p.prefix = make([]float64, size)
	}
	p.gaps = p.gaps[:size]
	p.prefix = p.prefix[:size]
	for j := range p.gaps {
		p.gaps[j] = p.Gap(j, count)
	}
	floats.CumSum(p.prefix, p.gaps)
	p.key = count
}
