package telemetry

import (
	"math"
	"testing"

	"github.com/phiberoptik112/digital-ant-farm/pheromone"
)

const testDT = float32(1.0 / 60.0)

func TestCollector_WindowBoundary(t *testing.T) {
	c := NewCollector(5.0, testDT)

	if got := c.WindowDurationTicks(); got != 300 {
		t.Fatalf("WindowDurationTicks = %d, want 300", got)
	}

	if c.ShouldFlush(299) {
		t.Error("ShouldFlush(299) = true, want false")
	}
	if !c.ShouldFlush(300) {
		t.Error("ShouldFlush(300) = false, want true")
	}

	c.Flush(300, AntSummary{}, ColonySummary{}, 0, pheromone.Stats{})

	if c.ShouldFlush(599) {
		t.Error("ShouldFlush(599) after flush = true, want false")
	}
	if !c.ShouldFlush(600) {
		t.Error("ShouldFlush(600) after flush = false, want true")
	}
}

func TestCollector_TinyWindowClampsToOneTick(t *testing.T) {
	c := NewCollector(0.001, testDT)

	if got := c.WindowDurationTicks(); got != 1 {
		t.Errorf("WindowDurationTicks = %d, want 1", got)
	}
}

func TestCollector_FlushResetsCounters(t *testing.T) {
	c := NewCollector(5.0, testDT)

	c.RecordBirth()
	c.RecordBirth()
	c.RecordDeath(false)
	c.RecordDeath(true)
	c.RecordHarvest(3.5)
	c.RecordDelivery(2.0)
	c.RecordDelivery(1.5)
	c.RecordConsumption(0.8)

	stats := c.Flush(300, AntSummary{Count: 12, Searching: 8, Returning: 3, Fleeing: 1},
		ColonySummary{Level: 2, XP: 45.0, FoodStored: 18.5}, 4, pheromone.Stats{})

	if stats.Births != 2 {
		t.Errorf("Births = %d, want 2", stats.Births)
	}
	if stats.Deaths != 2 || stats.Starvations != 1 {
		t.Errorf("Deaths = %d, Starvations = %d, want 2 and 1", stats.Deaths, stats.Starvations)
	}
	if stats.Deliveries != 2 {
		t.Errorf("Deliveries = %d, want 2", stats.Deliveries)
	}
	if math.Abs(stats.FoodCollected-3.5) > 1e-9 {
		t.Errorf("FoodCollected = %f, want 3.5", stats.FoodCollected)
	}
	if math.Abs(stats.FoodDelivered-3.5) > 1e-9 {
		t.Errorf("FoodDelivered = %f, want 3.5", stats.FoodDelivered)
	}
	if math.Abs(stats.FoodConsumed-0.8) > 1e-9 {
		t.Errorf("FoodConsumed = %f, want 0.8", stats.FoodConsumed)
	}
	if stats.AntCount != 12 || stats.Searching != 8 || stats.Returning != 3 || stats.Fleeing != 1 {
		t.Errorf("population = %d/%d/%d/%d, want 12/8/3/1",
			stats.AntCount, stats.Searching, stats.Returning, stats.Fleeing)
	}
	if stats.ColonyLevel != 2 || stats.ActiveSources != 4 {
		t.Errorf("ColonyLevel = %d, ActiveSources = %d, want 2 and 4", stats.ColonyLevel, stats.ActiveSources)
	}
	if math.Abs(stats.SimTimeSec-5.0) > 0.001 {
		t.Errorf("SimTimeSec = %f, want 5.0", stats.SimTimeSec)
	}

	// Second window with no events comes back empty.
	next := c.Flush(600, AntSummary{}, ColonySummary{}, 0, pheromone.Stats{})
	if next.Births != 0 || next.Deaths != 0 || next.Deliveries != 0 {
		t.Errorf("counters not reset: births %d deaths %d deliveries %d",
			next.Births, next.Deaths, next.Deliveries)
	}
	if next.FoodCollected != 0 || next.FoodDelivered != 0 || next.FoodConsumed != 0 {
		t.Error("food counters not reset")
	}
	if next.WindowStartTick != 300 {
		t.Errorf("WindowStartTick = %d, want 300", next.WindowStartTick)
	}
}

func TestCollector_FieldDeltasAcrossWindows(t *testing.T) {
	c := NewCollector(5.0, testDT)

	first := c.Flush(300, AntSummary{}, ColonySummary{}, 0, pheromone.Stats{
		Created: 10, Expired: 2, Pruned: 0, SpreadFired: 1,
	})
	if first.DepositsCreated != 10 || first.DepositsExpired != 2 || first.SpreadEvents != 1 {
		t.Errorf("first window deltas = %d/%d/%d, want 10/2/1",
			first.DepositsCreated, first.DepositsExpired, first.SpreadEvents)
	}

	second := c.Flush(600, AntSummary{}, ColonySummary{}, 0, pheromone.Stats{
		Created: 25, Expired: 7, Pruned: 3, SpreadFired: 1,
	})
	if second.DepositsCreated != 15 || second.DepositsExpired != 5 {
		t.Errorf("second window deltas = %d/%d, want 15/5",
			second.DepositsCreated, second.DepositsExpired)
	}
	if second.DepositsPruned != 3 || second.SpreadEvents != 0 {
		t.Errorf("pruned/spread deltas = %d/%d, want 3/0",
			second.DepositsPruned, second.SpreadEvents)
	}

	// Counters restart after a snapshot restore; deltas never go negative.
	third := c.Flush(900, AntSummary{}, ColonySummary{}, 0, pheromone.Stats{
		Created: 4, Expired: 1,
	})
	if third.DepositsCreated != 0 || third.DepositsExpired != 0 {
		t.Errorf("post-restore deltas = %d/%d, want 0/0",
			third.DepositsCreated, third.DepositsExpired)
	}
}

func TestCollector_FieldKindBreakdown(t *testing.T) {
	c := NewCollector(5.0, testDT)

	var field pheromone.Stats
	field.Total = 9
	field.KindCounts[pheromone.KindFoodTrail] = 5
	field.KindCounts[pheromone.KindHomeTrail] = 3
	field.KindCounts[pheromone.KindDanger] = 1
	field.HighQuality = 2
	field.TotalUsage = 40

	stats := c.Flush(300, AntSummary{}, ColonySummary{}, 0, field)

	if stats.Deposits != 9 {
		t.Errorf("Deposits = %d, want 9", stats.Deposits)
	}
	if stats.FoodTrails != 5 || stats.HomeTrails != 3 || stats.DangerMarks != 1 {
		t.Errorf("kind breakdown = %d/%d/%d, want 5/3/1",
			stats.FoodTrails, stats.HomeTrails, stats.DangerMarks)
	}
	if stats.HighQuality != 2 || stats.TrailUsage != 40 {
		t.Errorf("HighQuality = %d, TrailUsage = %d, want 2 and 40", stats.HighQuality, stats.TrailUsage)
	}
}

func TestCollector_AgeDistribution(t *testing.T) {
	c := NewCollector(5.0, testDT)

	ants := AntSummary{
		Count:   5,
		AgesSec: []float64{10, 20, 30, 40, 50},
	}
	stats := c.Flush(300, ants, ColonySummary{}, 0, pheromone.Stats{})

	if math.Abs(stats.AgeMean-30.0) > 0.001 {
		t.Errorf("AgeMean = %f, want 30.0", stats.AgeMean)
	}
	if math.Abs(stats.AgeP50-30.0) > 0.001 {
		t.Errorf("AgeP50 = %f, want 30.0", stats.AgeP50)
	}
	if stats.AgeP90 <= stats.AgeP10 {
		t.Errorf("AgeP90 (%f) should exceed AgeP10 (%f)", stats.AgeP90, stats.AgeP10)
	}
}
