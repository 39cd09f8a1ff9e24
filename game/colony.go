package game

import (
	"math/rand"

	"github.com/phiberoptik112/digital-ant-farm/config"
	"github.com/phiberoptik112/digital-ant-farm/telemetry"
)

// maxProductionBatch caps a single queen order.
const maxProductionBatch = 50

// ProductionOrder is a queued batch of ants the queen has commissioned.
type ProductionOrder struct {
	Caste     uint8
	Remaining int
}

// Colony tracks the nest's shared state: the food economy, development
// progression, and the queen's production queue. Level bonuses mutate the
// live caps, so PopCap/StorageMax/SpawnRate drift above the config base.
type Colony struct {
	X, Y float32

	FoodStored float64
	StorageMax float64

	Level int
	XP    float64

	PopCap        int
	SpawnRate     float64
	SpawnCooldown int32

	Starving bool

	TotalCollected float64
	TotalSpawned   int
	TotalDied      int

	Queue []ProductionOrder
}

// colonyTick is what one colony update decided. The caller applies it:
// spawning touches the ECS and starvation picks a victim from the live set.
type colonyTick struct {
	Consumed   float64
	StarveOne  bool
	SpawnCaste int // -1 when no spawn this tick
}

func newColony(x, y float32) *Colony {
	ccfg := &config.Cfg().Colony
	return &Colony{
		X:          x,
		Y:          y,
		FoodStored: ccfg.InitialFood,
		StorageMax: ccfg.FoodStorageMax,
		Level:      1,
		PopCap:     ccfg.MaxPopulation,
		SpawnRate:  ccfg.SpawnRate,
	}
}

// ReceiveFood stores a delivery, clamped to capacity, and awards experience
// for the amount actually kept. Returns the stored amount.
func (c *Colony) ReceiveFood(amount float64) float64 {
	ccfg := &config.Cfg().Colony
	space := c.StorageMax - c.FoodStored
	if amount > space {
		amount = space
	}
	if amount <= 0 {
		return 0
	}
	c.FoodStored += amount
	c.TotalCollected += amount
	c.XP += amount * ccfg.XPPerFood
	c.checkLevelUp()
	return amount
}

func (c *Colony) checkLevelUp() {
	ccfg := &config.Cfg().Colony
	for {
		required := float64(c.Level) * ccfg.LevelXP
		if c.XP < required {
			return
		}
		c.XP -= required
		c.Level++
		c.PopCap += ccfg.LevelPopBonus
		c.StorageMax += ccfg.LevelStorageBonus
		c.SpawnRate += ccfg.LevelSpawnBonus
	}
}

// update advances the economy one tick: rations for the live population,
// starvation when storage runs dry, and at most one spawn decision. The
// production queue takes priority over ambient spawning; both honor the
// same cooldown, cost, and population cap.
func (c *Colony) update(rng *rand.Rand, population int, dt float32) colonyTick {
	out := colonyTick{SpawnCaste: -1}
	ccfg := &config.Cfg().Colony

	need := float64(population) * ccfg.ConsumptionRate * float64(dt)
	if c.FoodStored >= need {
		c.FoodStored -= need
		c.Starving = false
		out.Consumed = need
	} else {
		out.Consumed = c.FoodStored
		c.FoodStored = 0
		c.Starving = true
		if rng.Float64() < ccfg.StarvationDeathChance {
			out.StarveOne = true
		}
	}

	if c.SpawnCooldown > 0 {
		c.SpawnCooldown--
		return out
	}
	if population >= c.PopCap {
		return out
	}

	if len(c.Queue) > 0 {
		caste := c.Queue[0].Caste
		cost := c.CasteCost(caste)
		if c.FoodStored >= cost {
			c.FoodStored -= cost
			c.Queue[0].Remaining--
			if c.Queue[0].Remaining <= 0 {
				c.Queue = c.Queue[1:]
			}
			c.SpawnCooldown = int32(ccfg.SpawnCooldown)
			c.TotalSpawned++
			out.SpawnCaste = int(caste)
		}
		return out
	}

	// Ambient spawning produces the first caste (workers).
	if rng.Float64() < c.SpawnRate && c.FoodStored >= ccfg.SpawnCost {
		c.FoodStored -= ccfg.SpawnCost
		c.SpawnCooldown = int32(ccfg.SpawnCooldown)
		c.TotalSpawned++
		out.SpawnCaste = 0
	}
	return out
}

// QueueProduction appends a batch order for the queen panel. The count is
// clamped to 1..maxProductionBatch. Returns false for an unknown caste.
func (c *Colony) QueueProduction(caste uint8, count int) bool {
	if int(caste) >= len(config.Cfg().Castes) {
		return false
	}
	if count < 1 {
		count = 1
	}
	if count > maxProductionBatch {
		count = maxProductionBatch
	}
	c.Queue = append(c.Queue, ProductionOrder{Caste: caste, Remaining: count})
	return true
}

// QueuedCount returns the total ants remaining across all queued orders.
func (c *Colony) QueuedCount() int {
	n := 0
	for i := range c.Queue {
		n += c.Queue[i].Remaining
	}
	return n
}

// CasteCost returns the production cost for a caste index.
func (c *Colony) CasteCost(caste uint8) float64 {
	castes := config.Cfg().Castes
	if int(caste) >= len(castes) {
		return 0
	}
	return castes[caste].Cost
}

// CanAfford reports whether the colony could pay for one ant of the caste
// right now.
func (c *Colony) CanAfford(caste uint8) bool {
	return c.FoodStored >= c.CasteCost(caste)
}

// record converts the colony to snapshot form.
func (c *Colony) record() telemetry.ColonyRecord {
	return telemetry.ColonyRecord{
		X:             c.X,
		Y:             c.Y,
		Level:         c.Level,
		XP:            c.XP,
		FoodStored:    c.FoodStored,
		SpawnCooldown: c.SpawnCooldown,
	}
}

// restoreColony rebuilds a colony from a snapshot record. Level bonuses are
// replayed from the config base, so caps match what the level implies.
func restoreColony(r telemetry.ColonyRecord) *Colony {
	c := newColony(r.X, r.Y)
	for c.Level < r.Level {
		ccfg := &config.Cfg().Colony
		c.Level++
		c.PopCap += ccfg.LevelPopBonus
		c.StorageMax += ccfg.LevelStorageBonus
		c.SpawnRate += ccfg.LevelSpawnBonus
	}
	c.XP = r.XP
	c.FoodStored = r.FoodStored
	c.SpawnCooldown = r.SpawnCooldown
	return c
}
