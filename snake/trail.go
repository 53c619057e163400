package snake

import (
	"math"
	"sort"

	"github.com/pthm-cable/slither/config"
	"github.com/pthm-cable/slither/vmath"
)

// TrailSample is one recorded point of the head's path.
// Arc is the cumulative distance traveled since the snake was created.
type TrailSample struct {
	Pos vmath.Vec2
	Arc float64
}

// Trail records the head's path as samples ordered newest first.
//
// Committed samples live in a ring buffer that grows up to MaxSamples. The
// live head sits in front of the newest committed sample and always mirrors
// the current head position, so SampleAt(0) is exact even between commits.
type Trail struct {
	samples []TrailSample // ring storage
	newest  int           // physical index of the newest committed sample
	count   int

	head TrailSample

	minSpacing      float64
	retention       float64 // arc distance behind the head that must stay sampled
	maxSamples      int
	rebaseThreshold float64
	rebased         int
}

// initialTrailCapacity is the ring size before the first growth.
const initialTrailCapacity = 64

// NewTrail creates a trail holding a single sample at arc 0.
func NewTrail(cfg config.TrailConfig, pos vmath.Vec2) *Trail {
	capacity := initialTrailCapacity
	if cfg.MaxSamples < capacity {
		capacity = cfg.MaxSamples
	}
	t := &Trail{
		samples:         make([]TrailSample, capacity),
		minSpacing:      cfg.MinSampleSpacing,
		maxSamples:      cfg.MaxSamples,
		rebaseThreshold: cfg.RebaseThreshold,
	}
	t.head = TrailSample{Pos: pos, Arc: 0}
	t.samples[0] = t.head
	t.count = 1
	return t
}

// Seed replaces the history with a straight line of length span behind the
// head, pointing away from heading. Seeded samples carry negative arc so the
// head stays at arc 0.
func (t *Trail) Seed(heading, span float64) {
	if span <= 0 {
		return
	}
	back := vmath.FromPolar(-1, heading)
	n := int(math.Ceil(span / t.minSpacing))
	if n+1 > t.maxSamples {
		n = t.maxSamples - 1
	}

	headPos, headArc := t.head.Pos, t.head.Arc
	t.count = 0
	t.newest = len(t.samples) - 1
	for i := n; i >= 0; i-- {
		d := float64(i) * t.minSpacing
		t.push(TrailSample{Pos: vmath.Add(headPos, vmath.Scale(d, back)), Arc: headArc - d})
	}
	t.head = t.at(0)
}

// Record moves the live head to pos and commits it as a sample once it is at
// least the minimum spacing away from the newest committed sample. Returns
// whether a sample was committed.
func (t *Trail) Record(pos vmath.Vec2) bool {
	last := t.at(0)
	d := vmath.Distance(last.Pos, pos)
	t.head = TrailSample{Pos: pos, Arc: last.Arc + d}
	if d < t.minSpacing {
		return false
	}

	t.push(t.head)
	t.prune()
	if t.rebaseThreshold > 0 && t.head.Arc > t.rebaseThreshold {
		t.Rebase()
	}
	return true
}

// SetRetention sets how much arc distance behind the head must remain sampled.
// Pruning against it happens on the next committed sample.
func (t *Trail) SetRetention(distance float64) {
	t.retention = distance
}

// Retention returns the current retention distance.
func (t *Trail) Retention() float64 {
	return t.retention
}

// Len returns the number of committed samples.
func (t *Trail) Len() int {
	return t.count
}

// Head returns the live head sample.
func (t *Trail) Head() TrailSample {
	return t.head
}

// Sample returns committed sample k, where 0 is the newest.
func (t *Trail) Sample(k int) TrailSample {
	return t.at(k)
}

// Oldest returns the oldest retained sample.
func (t *Trail) Oldest() TrailSample {
	return t.at(t.count - 1)
}

// Span returns the arc distance from the head to the oldest retained sample.
func (t *Trail) Span() float64 {
	return t.head.Arc - t.Oldest().Arc
}

// Rebases returns how many times the arc origin has been shifted.
func (t *Trail) Rebases() int {
	return t.rebased
}

// SampleAt returns the path position d units behind the head.
// Distances beyond the retained history clamp to the oldest sample.
func (t *Trail) SampleAt(d float64) vmath.Vec2 {
	target := t.head.Arc - d
	if target >= t.head.Arc {
		return t.head.Pos
	}
	oldest := t.Oldest()
	if target <= oldest.Arc {
		return oldest.Pos
	}
	newest := t.at(0)
	if target >= newest.Arc {
		return interpolate(newest, t.head, target)
	}

	// First logical index whose arc is at or behind target; arcs decrease with k.
	k := sort.Search(t.count, func(k int) bool {
		return t.at(k).Arc <= target
	})
	return interpolate(t.at(k), t.at(k-1), target)
}

// SampleSorted fills out[i] with SampleAt(dists[i]) for ascending dists in a
// single pass over the samples.
func (t *Trail) SampleSorted(dists []float64, out []vmath.Vec2) {
	oldest := t.Oldest()
	newer := t.head
	idx := 0
	older := t.at(0)

	for i, d := range dists {
		target := t.head.Arc - d
		if target >= t.head.Arc {
			out[i] = t.head.Pos
			continue
		}
		if target <= oldest.Arc {
			out[i] = oldest.Pos
			continue
		}
		for older.Arc > target {
			newer = older
			idx++
			older = t.at(idx)
		}
		out[i] = interpolate(older, newer, target)
	}
}

// Rebase shifts every arc so the oldest sample sits at 0. Distances between
// samples and from the head are unchanged.
func (t *Trail) Rebase() {
	offset := t.Oldest().Arc
	if offset == 0 {
		return
	}
	for k := 0; k < t.count; k++ {
		t.samples[t.physical(k)].Arc -= offset
	}
	t.head.Arc -= offset
	t.rebased++
}

// interpolate returns the position at arc target between older and newer.
func interpolate(older, newer TrailSample, target float64) vmath.Vec2 {
	span := newer.Arc - older.Arc
	if span <= 0 {
		return older.Pos
	}
	return vmath.Lerp(older.Pos, newer.Pos, (target-older.Arc)/span)
}

func (t *Trail) physical(k int) int {
	return (t.newest - k + len(t.samples)) % len(t.samples)
}

func (t *Trail) at(k int) TrailSample {
	return t.samples[t.physical(k)]
}

// push adds s as the newest sample, growing the ring or overwriting the oldest
// sample once MaxSamples is reached.
func (t *Trail) push(s TrailSample) {
	if t.count == len(t.samples) {
		if len(t.samples) < t.maxSamples {
			t.grow()
		} else {
			t.count--
		}
	}
	t.newest = (t.newest + 1) % len(t.samples)
	t.samples[t.newest] = s
	t.count++
}

func (t *Trail) grow() {
	n := len(t.samples) * 2
	if n > t.maxSamples {
		n = t.maxSamples
	}
	buf := make([]TrailSample, n)
	for k := 0; k < t.count; k++ {
		buf[t.count-1-k] = t.at(k)
	}
	t.samples = buf
	t.newest = t.count - 1
}

// prune drops the oldest samples no longer needed to cover the retention
// distance. The newest committed sample is never dropped.
func (t *Trail) prune() {
	if t.retention <= 0 {
		return
	}
	for t.count > 1 && t.head.Arc-t.at(t.count-2).Arc >= t.retention {
		t.count--
	}
}
