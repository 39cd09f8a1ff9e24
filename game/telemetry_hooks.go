package game

import (
	"log/slog"
	"math/rand"

	"github.com/phiberoptik112/digital-ant-farm/components"
	"github.com/phiberoptik112/digital-ant-farm/pheromone"
	"github.com/phiberoptik112/digital-ant-farm/telemetry"
)

// flushTelemetry closes the stats window when due and handles
// milestone detection off the flushed stats.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	ants := g.sampleAnts()
	colony := telemetry.ColonySummary{
		Level:      g.colony.Level,
		XP:         g.colony.XP,
		FoodStored: g.colony.FoodStored,
	}

	stats := g.collector.Flush(g.tick, ants, colony, g.food.ActiveCount(), g.field.Stats())
	perfStats := g.perf.Stats()
	g.lastStats = stats

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if g.output != nil {
		if err := g.output.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.output.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}

	for _, m := range g.milestones.Check(stats) {
		if g.logStats {
			m.LogMilestone()
		}
		if g.output != nil {
			if err := g.output.WriteMilestone(m); err != nil {
				slog.Error("failed to write milestone", "error", err)
			}
		}
		if g.snapshotDir != "" {
			g.saveSnapshot(&m)
		}
	}
}

// sampleAnts counts the population by state and collects ages for the
// percentile stats.
func (g *Game) sampleAnts() telemetry.AntSummary {
	dt := float64(g.config().Derived.DT32)
	var s telemetry.AntSummary

	query := g.antFilter.Query()
	for query.Next() {
		_, _, ant := query.Get()
		if ant.Dead {
			continue
		}
		s.Count++
		switch ant.State {
		case components.StateReturning:
			s.Returning++
		case components.StateFleeing:
			s.Fleeing++
		default:
			s.Searching++
		}
		s.AgesSec = append(s.AgesSec, float64(ant.Age)*dt)
	}
	return s
}

// saveSnapshot writes the current state to the snapshot directory.
func (g *Game) saveSnapshot(milestone *telemetry.Milestone) {
	snapshot := g.createSnapshot(milestone)

	path, err := telemetry.SaveSnapshot(snapshot, g.snapshotDir)
	if err != nil {
		slog.Error("failed to save snapshot", "error", err)
		return
	}

	slog.Info("snapshot saved", "path", path, "tick", g.tick)
}

// createSnapshot builds a snapshot from the current state.
func (g *Game) createSnapshot(milestone *telemetry.Milestone) *telemetry.Snapshot {
	snapshot := &telemetry.Snapshot{
		Version:     telemetry.SnapshotVersion,
		RNGSeed:     g.seed,
		WorldWidth:  g.worldW,
		WorldHeight: g.worldH,
		GroundSeed:  g.groundSeed,
		Tick:        g.tick,
		Colony:      g.colony.record(),
		Food:        g.food.records(),
		Milestone:   milestone,
	}

	query := g.antFilter.Query()
	for query.Next() {
		pos, vel, ant := query.Get()
		if ant.Dead {
			continue
		}

		var lifetime *telemetry.LifetimeStatsJSON
		if ls := g.lifetimes.Get(ant.ID); ls != nil {
			lifetime = ls.ToJSON()
		}

		snapshot.Ants = append(snapshot.Ants, telemetry.AntRecord{
			ID:          ant.ID,
			Caste:       ant.Caste,
			State:       uint8(ant.State),
			X:           pos.X,
			Y:           pos.Y,
			VelX:        vel.X,
			VelY:        vel.Y,
			Heading:     ant.Heading,
			Age:         ant.Age,
			Lifespan:    ant.LifespanTicks,
			Carrying:    ant.Carrying,
			TargetFood:  ant.TargetFood,
			TrailTimer:  ant.TrailTimer,
			FleeTicks:   ant.FleeTicks,
			LastDeposit: ant.LastDeposit,
			Lifetime:    lifetime,
		})
	}

	deposits := g.field.Deposits()
	snapshot.Field.NextID = g.field.NextID()
	snapshot.Field.Deposits = make([]telemetry.DepositRecord, 0, len(deposits))
	for _, d := range deposits {
		snapshot.Field.Deposits = append(snapshot.Field.Deposits, telemetry.DepositRecordFrom(d))
	}

	return snapshot
}

// restoreFromSnapshot replaces the freshly constructed world state
// with the saved one. Caste-scaled ant parameters are recomputed from
// the current config rather than stored, so a tuned config carries
// into a resumed run.
func (g *Game) restoreFromSnapshot(path string) error {
	snapshot, err := telemetry.LoadSnapshot(path)
	if err != nil {
		return err
	}

	cfg := g.config()

	g.tick = snapshot.Tick
	g.seed = snapshot.RNGSeed
	g.rng = rand.New(rand.NewSource(snapshot.RNGSeed))

	g.colony = restoreColony(snapshot.Colony)
	g.food.restore(snapshot.Food)

	deposits := make([]pheromone.Deposit, 0, len(snapshot.Field.Deposits))
	for _, r := range snapshot.Field.Deposits {
		deposits = append(deposits, r.ToDeposit())
	}
	g.field.Restore(deposits, snapshot.Tick, snapshot.Field.NextID)

	for _, r := range snapshot.Ants {
		caste := r.Caste
		if int(caste) >= len(cfg.Castes) {
			caste = 0
		}
		cc := &cfg.Castes[caste]

		pos := components.Position{X: r.X, Y: r.Y}
		vel := components.Velocity{X: r.VelX, Y: r.VelY}
		ant := components.Ant{
			ID:            r.ID,
			State:         components.AntState(r.State),
			Caste:         caste,
			Heading:       r.Heading,
			MaxSpeed:      float32(cfg.Ants.MaxSpeed * cc.SpeedMult),
			Detection:     float32(cfg.Ants.DetectionRadius * cc.DetectionMult),
			Sense:         float32(cfg.Ants.SenseRange),
			Age:           r.Age,
			LifespanTicks: r.Lifespan,
			Carrying:      r.Carrying,
			TargetFood:    r.TargetFood,
			TrailTimer:    r.TrailTimer,
			FleeTicks:     r.FleeTicks,
			LastDeposit:   r.LastDeposit,
		}

		g.antMapper.NewEntity(&pos, &vel, &ant)
		g.population++
		g.casteCounts[caste]++

		g.lifetimes.Register(r.ID, snapshot.Tick-r.Age, caste)
		if r.Lifetime != nil {
			if ls := g.lifetimes.Get(r.ID); ls != nil {
				*ls = *r.Lifetime.FromJSON()
			}
		}

		if r.ID >= g.nextID {
			g.nextID = r.ID + 1
		}
	}

	return nil
}
