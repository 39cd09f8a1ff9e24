package game

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/phiberoptik112/digital-ant-farm/components"
	"github.com/phiberoptik112/digital-ant-farm/pheromone"
)

// spawnInitialPopulation seeds the nest with workers clustered inside
// the nest radius.
func (g *Game) spawnInitialPopulation() {
	cfg := g.config()
	for i := 0; i < cfg.Colony.InitialPopulation; i++ {
		g.spawnAnt(0)
	}
}

// spawnAnt creates one ant of the given caste at the nest. Caste
// multipliers are baked into the component at spawn, so later config
// edits only affect ants produced afterward.
func (g *Game) spawnAnt(caste uint8) ecs.Entity {
	cfg := g.config()
	if int(caste) >= len(cfg.Castes) {
		caste = 0
	}
	cc := &cfg.Castes[caste]

	id := g.nextID
	g.nextID++

	// Scatter inside the nest so a burst of spawns does not stack.
	angle := g.rng.Float32() * 2 * math.Pi
	dist := g.rng.Float32() * float32(cfg.Colony.NestRadius)
	x := clamp32(g.colony.X+fastCos(angle)*dist, 0, g.worldW)
	y := clamp32(g.colony.Y+fastSin(angle)*dist, 0, g.worldH)

	pos := components.Position{X: x, Y: y}
	vel := components.Velocity{}
	ant := components.Ant{
		ID:            id,
		State:         components.StateSearching,
		Caste:         caste,
		Heading:       g.rng.Float32() * 2 * math.Pi,
		MaxSpeed:      float32(cfg.Ants.MaxSpeed * cc.SpeedMult),
		Detection:     float32(cfg.Ants.DetectionRadius * cc.DetectionMult),
		Sense:         float32(cfg.Ants.SenseRange),
		LifespanTicks: int32(float64(cfg.Derived.MaxLifespanTicks) * cc.LifespanMult),
		TargetFood:    -1,
		// Stagger the deposit cadence so trails do not pulse in lockstep.
		TrailTimer: int32(g.rng.Intn(cfg.Ants.HomeTrailPeriod)) + 1,
	}

	entity := g.antMapper.NewEntity(&pos, &vel, &ant)
	g.population++
	g.casteCounts[caste]++

	g.collector.RecordBirth()
	g.lifetimes.Register(id, g.tick, caste)

	return entity
}

// cleanupDead removes ants marked dead this tick. Old-age deaths far
// from the nest leave a danger marker where the body fell, which is
// what other ants are fleeing from.
func (g *Game) cleanupDead() {
	cfg := g.config()
	dt := cfg.Derived.DT32
	colonyRadius := float32(cfg.Colony.Radius)

	// First pass: collect dead entities (must complete before modifying).
	type deadInfo struct {
		entity ecs.Entity
		id     uint32
		caste  uint8
		x, y   float32
	}
	var toRemove []deadInfo

	query := g.antFilter.Query()
	for query.Next() {
		pos, _, ant := query.Get()
		if ant.Dead {
			toRemove = append(toRemove, deadInfo{
				entity: query.Entity(),
				id:     ant.ID,
				caste:  ant.Caste,
				x:      pos.X,
				y:      pos.Y,
			})
		}
	}

	// Second pass: remove entities (query iteration complete).
	for _, dead := range toRemove {
		starved := g.starvedValid && dead.id == g.starvedID
		g.collector.RecordDeath(starved)

		g.lifetimes.UpdateSurvivalTime(dead.id, g.tick, dt)
		if stats := g.lifetimes.Remove(dead.id); stats != nil {
			g.hallOfFame.Consider(stats, dead.id)
		}

		if !starved {
			dx := dead.x - g.colony.X
			dy := dead.y - g.colony.Y
			if dx*dx+dy*dy > colonyRadius*colonyRadius {
				g.field.DepositDefault(dead.x, dead.y, pheromone.KindDanger)
			}
		}

		if g.hasAntSelection && g.selectedAnt == dead.entity {
			g.hasAntSelection = false
			if g.insp != nil {
				g.insp.Clear()
			}
		}

		g.antMapper.Remove(dead.entity)
		g.population--
		g.casteCounts[dead.caste]--
		g.colony.TotalDied++
	}

	g.starvedValid = false
	g.starvedID = 0
}
