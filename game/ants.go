package game

import (
	"math"

	"github.com/phiberoptik112/digital-ant-farm/components"
	"github.com/phiberoptik112/digital-ant-farm/pheromone"
)

const (
	// fleeDuration is how long a spooked ant keeps running, in ticks.
	fleeDuration = 45

	// chaseSlack extends the detection radius while an ant is already
	// committed to a food source, so a grazing pass does not drop it.
	chaseSlack = 1.5

	// Trail following probes three points ahead of the ant (left,
	// center, right of the heading) and turns toward the strongest
	// response. Probing ahead keeps the ant moving along the trail
	// instead of parking on the deposit it is standing in.
	trailProbeAngle  = 0.6
	trailProbeDist   = 0.6 // fraction of sense range
	trailProbeRadius = 0.5 // fraction of sense range

	// edgeRepelWeight outweighs unit-length steering near the walls.
	edgeRepelWeight = 1.5
)

// computeChunk runs the steering state machine for a range of
// snapshots. Workers call this concurrently: it reads the snapshots,
// the field, the food system, and the colony, and writes only to the
// intent at the same index.
func (g *Game) computeChunk(i0, i1 int, dt float32) {
	cfg := g.config()
	maxTurn := float32(cfg.Ants.MaxTurnRate) * dt
	jitter := float32(cfg.Ants.WanderJitter) * dt
	carrySlow := float32(cfg.Ants.CarrySlowdown)
	edgeMargin := float32(cfg.Ants.EdgeMargin)

	for i := i0; i < i1; i++ {
		snap := &g.par.snapshots[i]
		out := &g.par.intents[i]

		ant := &snap.Ant

		out.NewState = ant.State
		out.NewTargetFood = ant.TargetFood
		out.NewFleeTicks = ant.FleeTicks
		out.NewTrailTimer = ant.TrailTimer
		out.MarkUsed = 0
		out.DepositKind = -1
		out.WantHarvest = -1
		out.WantDeliver = false

		// Zero direction means keep the current heading.
		var dirX, dirY float32
		switch ant.State {
		case components.StateFleeing:
			dirX, dirY = g.steerFleeing(snap, out)
		case components.StateReturning:
			dirX, dirY = g.steerReturning(snap, out)
		default:
			dirX, dirY = g.steerSearching(snap, out, jitter)
		}

		dirX, dirY = addEdgeRepulsion(snap.Pos.X, snap.Pos.Y, dirX, dirY, edgeMargin, g.worldW, g.worldH)

		newHeading := ant.Heading
		if dirX != 0 || dirY != 0 {
			target := float32(math.Atan2(float64(dirY), float64(dirX)))
			delta := clamp32(normalizeAngle(target-ant.Heading), -maxTurn, maxTurn)
			newHeading = normalizeAngle(ant.Heading + delta)
		}

		speed := ant.MaxSpeed
		if ant.Carrying > 0 {
			speed *= carrySlow
		}
		if out.WantHarvest >= 0 || out.WantDeliver {
			speed = 0 // stand still at the source or the nest
		}

		velX := fastCos(newHeading) * speed
		velY := fastSin(newHeading) * speed

		out.NewHeading = newHeading
		out.NewVelX = velX
		out.NewVelY = velY
		out.NewPosX = clamp32(snap.Pos.X+velX*dt, 0, g.worldW)
		out.NewPosY = clamp32(snap.Pos.Y+velY*dt, 0, g.worldH)
	}
}

// steerFleeing keeps running away from the danger gradient until the
// flee timer expires, then resumes foraging or hauling.
func (g *Game) steerFleeing(snap *antSnapshot, out *antIntent) (float32, float32) {
	ant := &snap.Ant
	dangerRange := float32(g.config().Ants.DangerAvoidRange)

	var dirX, dirY float32
	if dx, dy, ok := g.field.Direction(snap.Pos.X, snap.Pos.Y, pheromone.KindDanger, dangerRange); ok {
		dirX, dirY = -dx, -dy
	}

	out.NewFleeTicks = ant.FleeTicks - 1
	if out.NewFleeTicks <= 0 {
		out.NewFleeTicks = 0
		if ant.Carrying > 0 {
			out.NewState = components.StateReturning
		} else {
			out.NewState = components.StateSearching
		}
	}
	return dirX, dirY
}

// steerSearching forages: danger pre-empts, then direct food detection,
// then food-trail following, then a bounded random wander. Searching
// ants also drop home-trail breadcrumbs on a fixed cadence.
func (g *Game) steerSearching(snap *antSnapshot, out *antIntent, jitter float32) (float32, float32) {
	ant := &snap.Ant
	x, y := snap.Pos.X, snap.Pos.Y
	dangerRange := float32(g.config().Ants.DangerAvoidRange)

	if dx, dy, ok := g.field.Direction(x, y, pheromone.KindDanger, dangerRange); ok {
		out.NewState = components.StateFleeing
		out.NewFleeTicks = fleeDuration
		out.NewTargetFood = -1
		return -dx, -dy
	}

	out.NewTrailTimer = ant.TrailTimer - 1
	if out.NewTrailTimer <= 0 {
		out.DepositKind = int8(pheromone.KindHomeTrail)
		out.NewTrailTimer = int32(g.config().Ants.HomeTrailPeriod)
	}

	// Chase a remembered source while it stays valid and in reach.
	if ant.TargetFood >= 0 {
		src := g.food.Source(int(ant.TargetFood))
		if src == nil || src.Depleted {
			out.NewTargetFood = -1
		} else {
			dx := src.X - x
			dy := src.Y - y
			distSq := dx*dx + dy*dy
			if distSq <= src.Radius*src.Radius {
				out.WantHarvest = ant.TargetFood
				return 0, 0
			}
			chase := ant.Detection * chaseSlack
			if distSq <= chase*chase {
				return dx, dy
			}
			out.NewTargetFood = -1
		}
	}

	if idx := g.food.Nearest(x, y, ant.Detection); idx >= 0 {
		out.NewTargetFood = int32(idx)
		src := g.food.Source(idx)
		return src.X - x, src.Y - y
	}

	if dx, dy, id, ok := g.probeTrail(snap, pheromone.KindFoodTrail); ok {
		out.MarkUsed = id
		return dx, dy
	}

	h := ant.Heading + wanderNoise(ant.ID, g.tick)*jitter
	return fastCos(h), fastSin(h)
}

// steerReturning hauls food home: beeline inside detection range,
// otherwise prefer an established home-trail corridor. The food trail
// gets laid every tick on the way.
func (g *Game) steerReturning(snap *antSnapshot, out *antIntent) (float32, float32) {
	ant := &snap.Ant
	x, y := snap.Pos.X, snap.Pos.Y
	cfg := g.config()
	dangerRange := float32(cfg.Ants.DangerAvoidRange)
	nestRadius := float32(cfg.Colony.NestRadius)

	if dx, dy, ok := g.field.Direction(x, y, pheromone.KindDanger, dangerRange); ok {
		out.NewState = components.StateFleeing
		out.NewFleeTicks = fleeDuration
		return -dx, -dy
	}

	homeX := g.colony.X - x
	homeY := g.colony.Y - y
	distSq := homeX*homeX + homeY*homeY
	if distSq <= nestRadius*nestRadius {
		out.WantDeliver = true
		return 0, 0
	}

	out.DepositKind = int8(pheromone.KindFoodTrail)

	if distSq > ant.Detection*ant.Detection {
		if dx, dy, id, ok := g.probeTrail(snap, pheromone.KindHomeTrail); ok {
			// Only follow the corridor while it points homeward.
			if dx*homeX+dy*homeY > 0 {
				out.MarkUsed = id
				return dx, dy
			}
		}
	}
	return homeX, homeY
}

// probeTrail samples the field at three points ahead of the ant and
// returns the direction of the strongest response plus the deposit
// that produced it.
func (g *Game) probeTrail(snap *antSnapshot, kind pheromone.Kind) (dx, dy float32, id uint64, ok bool) {
	sense := snap.Ant.Sense
	probeDist := sense * trailProbeDist
	probeRadius := sense * trailProbeRadius

	headings := [3]float32{
		snap.Ant.Heading,
		snap.Ant.Heading + trailProbeAngle,
		snap.Ant.Heading - trailProbeAngle,
	}

	var best pheromone.Match
	var bestH float32
	found := false
	for _, h := range headings {
		px := snap.Pos.X + fastCos(h)*probeDist
		py := snap.Pos.Y + fastSin(h)*probeDist
		m, hit := g.field.Sense(px, py, kind, probeRadius)
		if !hit {
			continue
		}
		if !found || m.Influence > best.Influence {
			best = m
			bestH = h
			found = true
		}
	}
	if !found {
		return 0, 0, 0, false
	}
	return fastCos(bestH), fastSin(bestH), best.ID, true
}

// addEdgeRepulsion blends an inward push that ramps up inside the
// margin. The primary direction is normalized first so the weights
// compare; the push dominates near the wall.
func addEdgeRepulsion(x, y, dirX, dirY, margin, worldW, worldH float32) (float32, float32) {
	length := fastSqrt(dirX*dirX + dirY*dirY)
	if length > 0 {
		dirX /= length
		dirY /= length
	}
	if x < margin {
		dirX += edgeRepelWeight * (1 - x/margin)
	} else if x > worldW-margin {
		dirX -= edgeRepelWeight * (1 - (worldW-x)/margin)
	}
	if y < margin {
		dirY += edgeRepelWeight * (1 - y/margin)
	} else if y > worldH-margin {
		dirY -= edgeRepelWeight * (1 - (worldH-y)/margin)
	}
	return dirX, dirY
}

// wanderNoise returns a deterministic pseudo-random value in [-1, 1)
// keyed by ant and tick, so the agent phase stays reproducible under
// any worker count.
func wanderNoise(id uint32, tick int32) float32 {
	h := uint64(id)<<32 | uint64(uint32(tick))
	h ^= h >> 33
	h *= 0xff51afd7ed558ccd
	h ^= h >> 33
	h *= 0xc4ceb9fe1a85ec53
	h ^= h >> 33
	return float32(h>>40)/float32(1<<23)*2 - 1
}

// applyIntents writes the computed results back single-threaded:
// movement, state bookkeeping, field interaction, and the harvest and
// delivery arbitration that two workers must never race on. Aging
// rides along since every live ant passes through here.
func (g *Game) applyIntents() {
	cfg := g.config()
	carryCap := float32(cfg.Ants.CarryCapacity)
	harvestBite := float32(cfg.Food.HarvestAmount)

	for i := range g.par.snapshots {
		snap := &g.par.snapshots[i]
		out := &g.par.intents[i]

		pos := g.posMap.Get(snap.Entity)
		vel := g.velMap.Get(snap.Entity)
		ant := g.antMap.Get(snap.Entity)
		if pos == nil || vel == nil || ant == nil {
			continue
		}

		ant.Heading = out.NewHeading
		vel.X = out.NewVelX
		vel.Y = out.NewVelY
		pos.X = out.NewPosX
		pos.Y = out.NewPosY

		ant.State = out.NewState
		ant.TargetFood = out.NewTargetFood
		ant.FleeTicks = out.NewFleeTicks
		ant.TrailTimer = out.NewTrailTimer

		if out.MarkUsed != 0 {
			g.field.MarkUsed(out.MarkUsed)
		}
		if out.DepositKind >= 0 {
			if id, err := g.field.DepositDefault(pos.X, pos.Y, pheromone.Kind(out.DepositKind)); err == nil {
				ant.LastDeposit = id
				g.lifetimes.RecordDeposit(ant.ID)
			}
		}

		// Harvest: the source may have been drained by an earlier ant
		// this same tick, so the outcome decides the state change.
		if out.WantHarvest >= 0 {
			want := harvestBite
			if room := carryCap - ant.Carrying; room < want {
				want = room
			}
			took := g.food.Harvest(int(out.WantHarvest), want)
			if took > 0 {
				ant.Carrying += took
				g.collector.RecordHarvest(float64(took))
				g.lifetimes.RecordHarvest(ant.ID, took)
				g.lifetimes.UpdateCarry(ant.ID, ant.Carrying)
			}
			if ant.Carrying >= carryCap || took == 0 {
				ant.State = components.StateReturning
				ant.TargetFood = -1
			}
		}

		// Delivery: storage may be full; keep hauling until it drains.
		if out.WantDeliver && ant.Carrying > 0 {
			stored := g.colony.ReceiveFood(float64(ant.Carrying))
			if stored > 0 {
				g.collector.RecordDelivery(stored)
				g.lifetimes.RecordDelivery(ant.ID, float32(stored))
				ant.Carrying -= float32(stored)
				if ant.Carrying < 1e-4 {
					ant.Carrying = 0
				}
				g.lifetimes.UpdateCarry(ant.ID, ant.Carrying)
			}
			if ant.Carrying == 0 {
				ant.State = components.StateSearching
				ant.TargetFood = -1
			}
		}

		ant.Age++
		if ant.Age >= ant.LifespanTicks {
			ant.Dead = true
		}
	}
}
