package game

import (
	"github.com/phiberoptik112/digital-ant-farm/telemetry"
)

// step advances the simulation one tick through the fixed phase
// pipeline. Phase order matters: agents read a consistent view of the
// world built before any of this tick's writes, and the field ages
// only after every deposit and reinforcement landed.
func (g *Game) step() {
	dt := g.config().Derived.DT32

	g.perf.StartTick()

	g.perf.StartPhase(telemetry.PhaseEnvironment)
	if g.ground != nil {
		g.ground.Step(g.tick)
	}

	g.perf.StartPhase(telemetry.PhaseAgents)
	g.buildSnapshots()
	g.computeAnts(dt)

	g.perf.StartPhase(telemetry.PhaseIntegrate)
	g.applyIntents()

	g.perf.StartPhase(telemetry.PhaseColony)
	g.updateColony(dt)

	g.perf.StartPhase(telemetry.PhaseFood)
	g.food.Step(dt)

	g.perf.StartPhase(telemetry.PhaseField)
	g.field.Step()

	g.perf.StartPhase(telemetry.PhaseTelemetry)
	g.flushTelemetry()

	g.perf.EndTick()
	g.tick++
}

// updateColony runs the colony economy and resolves this tick's
// deaths. Starvation claims at most one ant per tick; the victim is
// marked here and distinguished from old-age deaths in cleanupDead.
func (g *Game) updateColony(dt float32) {
	ct := g.colony.update(g.rng, g.population, dt)
	if ct.Consumed > 0 {
		g.collector.RecordConsumption(ct.Consumed)
	}
	if ct.StarveOne {
		g.markStarvationVictim()
	}
	if ct.SpawnCaste >= 0 {
		g.spawnAnt(uint8(ct.SpawnCaste))
	}
	g.cleanupDead()
}

// markStarvationVictim picks a random live ant and marks it dead.
// Snapshots may include ants that already died of old age this tick,
// so the live component is re-checked through the mapper.
func (g *Game) markStarvationVictim() {
	n := len(g.par.snapshots)
	if n == 0 {
		return
	}
	start := g.rng.Intn(n)
	for i := 0; i < n; i++ {
		snap := &g.par.snapshots[(start+i)%n]
		ant := g.antMap.Get(snap.Entity)
		if ant == nil || ant.Dead {
			continue
		}
		ant.Dead = true
		g.starvedID = ant.ID
		g.starvedValid = true
		return
	}
}
