package telemetry

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationTicks int32
	dt                  float64

	windowStartTick int32

	// Event counters for current window
	deaths         int
	respawns       int
	pelletsEaten   int
	pelletsDropped int

	lengthGained  float64
	lengthBurned  float64
	lengthDecayed float64
	boostSeconds  float64
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec, dt float64) *Collector {
	ticksPerWindow := int32(windowDurationSec / dt)
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}
	return &Collector{
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// RecordDeath records a snake death.
func (c *Collector) RecordDeath() {
	c.deaths++
}

// RecordRespawn records a snake entering the field.
func (c *Collector) RecordRespawn() {
	c.respawns++
}

// RecordPickup records pellets eaten and the length they added.
func (c *Collector) RecordPickup(eaten int, gained float64) {
	c.pelletsEaten += eaten
	c.lengthGained += gained
}

// RecordDrop records pellets scattered by a death.
func (c *Collector) RecordDrop(n int) {
	c.pelletsDropped += n
}

// RecordLengthLoss records length burned by boosting and lost to decay.
func (c *Collector) RecordLengthLoss(burned, decayed float64) {
	c.lengthBurned += burned
	c.lengthDecayed += decayed
}

// RecordBoost records dt seconds of one snake boosting.
func (c *Collector) RecordBoost(dt float64) {
	c.boostSeconds += dt
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Population is the state sampled at window end.
type Population struct {
	Lengths  []float64
	Segments int // total across live snakes
	Boosting int
	Pellets  int
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int32, pop Population) WindowStats {
	sum := Summarize(pop.Lengths)

	var meanSegments float64
	if n := len(pop.Lengths); n > 0 {
		meanSegments = float64(pop.Segments) / float64(n)
	}

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * c.dt,

		Alive:    len(pop.Lengths),
		Boosting: pop.Boosting,
		Pellets:  pop.Pellets,

		Deaths:         c.deaths,
		Respawns:       c.respawns,
		PelletsEaten:   c.pelletsEaten,
		PelletsDropped: c.pelletsDropped,

		LengthGained:  c.lengthGained,
		LengthBurned:  c.lengthBurned,
		LengthDecayed: c.lengthDecayed,
		BoostSeconds:  c.boostSeconds,

		LengthMean: sum.Mean,
		LengthStd:  sum.Std,
		LengthP10:  sum.P10,
		LengthP50:  sum.P50,
		LengthP90:  sum.P90,
		LengthMax:  sum.Max,

		MeanSegments: meanSegments,
	}

	*c = Collector{
		windowDurationTicks: c.windowDurationTicks,
		dt:                  c.dt,
		windowStartTick:     currentTick,
	}
	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
