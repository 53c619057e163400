package telemetry

// LifetimeRecord is the life summary of one snake, written when it dies.
type LifetimeRecord struct {
	ID        uint32  `csv:"id"`
	Name      string  `csv:"name"`
	BirthTick int32   `csv:"birth_tick"`
	DeathTick int32   `csv:"death_tick"`
	Survival  float64 `csv:"survival_sec"`

	PeakLength  float64 `csv:"peak_length"`
	FinalLength float64 `csv:"final_length"`

	PelletsEaten  int     `csv:"pellets_eaten"`
	LengthGained  float64 `csv:"length_gained"`
	LengthBurned  float64 `csv:"length_burned"`
	LengthDecayed float64 `csv:"length_decayed"`
	BoostSeconds  float64 `csv:"boost_seconds"`

	Cause string `csv:"cause"`
}

// LifetimeTracker manages per-snake lifetime statistics.
type LifetimeTracker struct {
	records map[uint32]*LifetimeRecord
}

// NewLifetimeTracker creates a new lifetime tracker.
func NewLifetimeTracker() *LifetimeTracker {
	return &LifetimeTracker{
		records: make(map[uint32]*LifetimeRecord),
	}
}

// Register starts tracking a snake born at birthTick.
func (lt *LifetimeTracker) Register(id uint32, name string, birthTick int32, length float64) {
	lt.records[id] = &LifetimeRecord{
		ID:          id,
		Name:        name,
		BirthTick:   birthTick,
		PeakLength:  length,
		FinalLength: length,
	}
}

// Get returns the record for a snake, or nil if not tracked.
func (lt *LifetimeTracker) Get(id uint32) *LifetimeRecord {
	return lt.records[id]
}

// RecordPickup adds pellets eaten and the length they added.
func (lt *LifetimeTracker) RecordPickup(id uint32, eaten int, gained float64) {
	if r := lt.records[id]; r != nil {
		r.PelletsEaten += eaten
		r.LengthGained += gained
	}
}

// RecordBoost adds dt seconds of boosting.
func (lt *LifetimeTracker) RecordBoost(id uint32, dt float64) {
	if r := lt.records[id]; r != nil {
		r.BoostSeconds += dt
	}
}

// UpdateLength tracks the current and peak length and the running totals of
// length burned and decayed.
func (lt *LifetimeTracker) UpdateLength(id uint32, length, burned, decayed float64) {
	r := lt.records[id]
	if r == nil {
		return
	}
	r.FinalLength = length
	if length > r.PeakLength {
		r.PeakLength = length
	}
	r.LengthBurned = burned
	r.LengthDecayed = decayed
}

// Finish stops tracking a snake and returns its completed record.
func (lt *LifetimeTracker) Finish(id uint32, deathTick int32, dt float64, cause string) *LifetimeRecord {
	r := lt.records[id]
	if r == nil {
		return nil
	}
	delete(lt.records, id)
	r.DeathTick = deathTick
	r.Survival = float64(deathTick-r.BirthTick) * dt
	r.Cause = cause
	return r
}

// Count returns the number of tracked snakes.
func (lt *LifetimeTracker) Count() int {
	return len(lt.records)
}
