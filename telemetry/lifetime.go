package telemetry

// LifetimeStats tracks per-ant statistics over its lifetime.
type LifetimeStats struct {
	BirthTick       int32
	SurvivalTimeSec float32
	Caste           uint8

	// Foraging career
	Trips         int     // completed source-to-colony round trips
	FoodCollected float32 // cumulative food picked up at sources
	FoodDelivered float32 // cumulative food dropped at the colony
	PeakCarry     float32

	// Trail laying
	DepositsMade int
}

// LifetimeTracker manages per-ant lifetime statistics.
type LifetimeTracker struct {
	stats map[uint32]*LifetimeStats
}

// NewLifetimeTracker creates a new lifetime tracker.
func NewLifetimeTracker() *LifetimeTracker {
	return &LifetimeTracker{
		stats: make(map[uint32]*LifetimeStats),
	}
}

// Register creates lifetime stats for a newly spawned ant.
func (lt *LifetimeTracker) Register(antID uint32, birthTick int32, caste uint8) {
	lt.stats[antID] = &LifetimeStats{
		BirthTick: birthTick,
		Caste:     caste,
	}
}

// Get returns the lifetime stats for an ant, or nil if not found.
func (lt *LifetimeTracker) Get(antID uint32) *LifetimeStats {
	return lt.stats[antID]
}

// Remove removes an ant's stats and returns them (for hall of fame/logging).
func (lt *LifetimeTracker) Remove(antID uint32) *LifetimeStats {
	stats := lt.stats[antID]
	delete(lt.stats, antID)
	return stats
}

// RecordHarvest adds food picked up at a source.
func (lt *LifetimeTracker) RecordHarvest(antID uint32, amount float32) {
	if s := lt.stats[antID]; s != nil {
		s.FoodCollected += amount
	}
}

// RecordDelivery adds a completed drop-off at the colony.
func (lt *LifetimeTracker) RecordDelivery(antID uint32, amount float32) {
	if s := lt.stats[antID]; s != nil {
		s.Trips++
		s.FoodDelivered += amount
	}
}

// RecordDeposit increments the trail deposit count.
func (lt *LifetimeTracker) RecordDeposit(antID uint32) {
	if s := lt.stats[antID]; s != nil {
		s.DepositsMade++
	}
}

// UpdateCarry tracks peak carried load.
func (lt *LifetimeTracker) UpdateCarry(antID uint32, carry float32) {
	if s := lt.stats[antID]; s != nil {
		if carry > s.PeakCarry {
			s.PeakCarry = carry
		}
	}
}

// UpdateSurvivalTime updates the survival time based on current tick.
func (lt *LifetimeTracker) UpdateSurvivalTime(antID uint32, currentTick int32, dt float32) {
	if s := lt.stats[antID]; s != nil {
		s.SurvivalTimeSec = float32(currentTick-s.BirthTick) * dt
	}
}

// All returns all tracked stats (for snapshots).
func (lt *LifetimeTracker) All() map[uint32]*LifetimeStats {
	return lt.stats
}

// Count returns the number of tracked ants.
func (lt *LifetimeTracker) Count() int {
	return len(lt.stats)
}
