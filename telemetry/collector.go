package telemetry

import (
	"github.com/phiberoptik112/digital-ant-farm/pheromone"
)

// AntSummary is the population snapshot the simulation hands to Flush.
type AntSummary struct {
	Count     int
	Searching int
	Returning int
	Fleeing   int
	AgesSec   []float64
}

// ColonySummary is the colony snapshot the simulation hands to Flush.
type ColonySummary struct {
	Level      int
	XP         float64
	FoodStored float64
}

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float32

	// Current window tracking
	windowStartTick int32

	// Event counters for current window
	births      int
	deaths      int
	starvations int
	deliveries  int

	foodCollected float64
	foodDelivered float64
	foodConsumed  float64

	// Field counters as of the previous flush, for window deltas
	prevField pheromone.Stats
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec float64, dt float32) *Collector {
	ticksPerWindow := int32(windowDurationSec / float64(dt))
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
		windowStartTick:     0,
	}
}

// RecordBirth records an ant spawned by the colony.
func (c *Collector) RecordBirth() {
	c.births++
}

// RecordDeath records an ant death. Starvation deaths are counted
// separately as well.
func (c *Collector) RecordDeath(starved bool) {
	c.deaths++
	if starved {
		c.starvations++
	}
}

// RecordHarvest records food picked up at a source.
func (c *Collector) RecordHarvest(amount float64) {
	c.foodCollected += amount
}

// RecordDelivery records food dropped off at the colony.
func (c *Collector) RecordDelivery(amount float64) {
	c.deliveries++
	c.foodDelivered += amount
}

// RecordConsumption records food eaten from colony storage.
func (c *Collector) RecordConsumption(amount float64) {
	c.foodConsumed += amount
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets counters for the next window.
// The caller must provide:
// - currentTick: the current simulation tick
// - ants: population counts by state plus ages for percentile calculation
// - colony: level, experience and storage at window end
// - activeSources: food sources with remaining amount
// - field: cumulative field stats, diffed against the previous flush
func (c *Collector) Flush(
	currentTick int32,
	ants AntSummary,
	colony ColonySummary,
	activeSources int,
	field pheromone.Stats,
) WindowStats {
	ageMean, ageP10, ageP50, ageP90 := ComputeDistribution(ants.AgesSec)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * float64(c.dt),

		AntCount:  ants.Count,
		Searching: ants.Searching,
		Returning: ants.Returning,
		Fleeing:   ants.Fleeing,

		Births:      c.births,
		Deaths:      c.deaths,
		Starvations: c.starvations,
		Deliveries:  c.deliveries,

		FoodCollected: c.foodCollected,
		FoodDelivered: c.foodDelivered,
		FoodConsumed:  c.foodConsumed,
		FoodStored:    colony.FoodStored,
		ActiveSources: activeSources,

		ColonyLevel: colony.Level,
		ColonyXP:    colony.XP,

		Deposits:      field.Total,
		FoodTrails:    field.KindCounts[pheromone.KindFoodTrail],
		HomeTrails:    field.KindCounts[pheromone.KindHomeTrail],
		DangerMarks:   field.KindCounts[pheromone.KindDanger],
		TotalStrength: float64(field.TotalStrength),
		AvgQuality:    float64(field.AvgQuality),
		HighQuality:   field.HighQuality,
		TrailUsage:    field.TotalUsage,

		DepositsCreated: counterDelta(field.Created, c.prevField.Created),
		DepositsExpired: counterDelta(field.Expired, c.prevField.Expired),
		DepositsPruned:  counterDelta(field.Pruned, c.prevField.Pruned),
		SpreadEvents:    counterDelta(field.SpreadFired, c.prevField.SpreadFired),

		AgeMean: ageMean,
		AgeP10:  ageP10,
		AgeP50:  ageP50,
		AgeP90:  ageP90,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.births = 0
	c.deaths = 0
	c.starvations = 0
	c.deliveries = 0
	c.foodCollected = 0
	c.foodDelivered = 0
	c.foodConsumed = 0
	c.prevField = field

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}

// counterDelta turns cumulative field counters into a window delta.
// Counters restart at zero after a snapshot restore, so a negative
// difference collapses to zero.
func counterDelta(cur, prev uint64) int {
	d := int64(cur) - int64(prev)
	if d < 0 {
		return 0
	}
	return int(d)
}
