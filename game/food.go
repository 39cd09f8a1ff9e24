package game

import (
	"math/rand"

	"github.com/phiberoptik112/digital-ant-farm/config"
	"github.com/phiberoptik112/digital-ant-farm/telemetry"
)

// foodPlacementAttempts bounds the rejection sampling per source.
const foodPlacementAttempts = 100

// minFoodRadius is the draw radius of a nearly empty source.
const minFoodRadius = float32(3)

// FoodSource is one harvestable site in the world.
type FoodSource struct {
	X, Y     float32
	Amount   float32
	Capacity float32

	RegenRate  float32 // Units per second once the cooldown expires
	Radius     float32 // Visual radius at full capacity
	RegenDelay int32   // Ticks remaining before a depleted source refills

	Depleted bool
}

// VisualRadius scales the draw radius with the remaining fraction.
func (f *FoodSource) VisualRadius() float32 {
	if f.Depleted || f.Capacity <= 0 {
		return 0
	}
	ratio := f.Amount / f.Capacity
	return minFoodRadius + (f.Radius-minFoodRadius)*ratio
}

// foodSystem manages the world's food sources outside the ECS.
// Source count stays small (max_sources), so queries are linear scans.
type foodSystem struct {
	sources []FoodSource
	rng     *rand.Rand
	worldW  float32
	worldH  float32
}

func newFoodSystem(rng *rand.Rand, worldW, worldH float32) *foodSystem {
	fs := &foodSystem{
		sources: make([]FoodSource, 0, config.Cfg().Food.MaxSources),
		rng:     rng,
		worldW:  worldW,
		worldH:  worldH,
	}
	fs.generate(config.Cfg().Food.InitialSources)
	return fs
}

// generate places up to n new sources honoring min spacing and the edge margin.
func (fs *foodSystem) generate(n int) {
	fcfg := &config.Cfg().Food
	margin := float32(fcfg.EdgeMargin)
	minDist := float32(fcfg.MinDistance)

	for s := 0; s < n; s++ {
		if len(fs.sources) >= fcfg.MaxSources {
			return
		}
		for attempt := 0; attempt < foodPlacementAttempts; attempt++ {
			x := margin + fs.rng.Float32()*(fs.worldW-2*margin)
			y := margin + fs.rng.Float32()*(fs.worldH-2*margin)
			if fs.tooClose(x, y, minDist) {
				continue
			}
			amount := float32(fcfg.AmountMin + fs.rng.Float64()*(fcfg.AmountMax-fcfg.AmountMin))
			fs.sources = append(fs.sources, FoodSource{
				X:         x,
				Y:         y,
				Amount:    amount,
				Capacity:  amount,
				RegenRate: float32(fcfg.RegenRate),
				Radius:    float32(fcfg.Radius),
			})
			break
		}
	}
}

func (fs *foodSystem) tooClose(x, y, minDist float32) bool {
	for i := range fs.sources {
		dx := fs.sources[i].X - x
		dy := fs.sources[i].Y - y
		if dx*dx+dy*dy < minDist*minDist {
			return true
		}
	}
	return false
}

// Harvest removes up to want units from source i and returns the amount
// actually taken. Draining a source arms its regeneration cooldown.
func (fs *foodSystem) Harvest(i int, want float32) float32 {
	if i < 0 || i >= len(fs.sources) || want <= 0 {
		return 0
	}
	f := &fs.sources[i]
	if f.Depleted {
		return 0
	}
	took := want
	if took > f.Amount {
		took = f.Amount
	}
	f.Amount -= took
	if f.Amount <= 0 {
		f.Amount = 0
		f.Depleted = true
		f.RegenDelay = int32(config.Cfg().Food.RegenCooldown)
	}
	return took
}

// Step advances regeneration. A depleted source waits out its cooldown,
// then refills at RegenRate per second and reopens at full capacity.
// Returns the number of sources that reopened this tick.
func (fs *foodSystem) Step(dt float32) int {
	reopened := 0
	for i := range fs.sources {
		f := &fs.sources[i]
		if !f.Depleted {
			continue
		}
		if f.RegenDelay > 0 {
			f.RegenDelay--
			continue
		}
		f.Amount += f.RegenRate * dt
		if f.Amount >= f.Capacity {
			f.Amount = f.Capacity
			f.Depleted = false
			reopened++
		}
	}
	return reopened
}

// Nearest returns the index of the closest non-depleted source within
// maxDist of (x, y), or -1 when none qualifies.
func (fs *foodSystem) Nearest(x, y, maxDist float32) int {
	best := -1
	bestSq := maxDist * maxDist
	for i := range fs.sources {
		f := &fs.sources[i]
		if f.Depleted {
			continue
		}
		dx := f.X - x
		dy := f.Y - y
		distSq := dx*dx + dy*dy
		if distSq <= bestSq {
			bestSq = distSq
			best = i
		}
	}
	return best
}

// Source returns the source at index i, or nil when out of range.
func (fs *foodSystem) Source(i int) *FoodSource {
	if i < 0 || i >= len(fs.sources) {
		return nil
	}
	return &fs.sources[i]
}

// Count returns the total number of sources.
func (fs *foodSystem) Count() int {
	return len(fs.sources)
}

// ActiveCount returns the number of non-depleted sources.
func (fs *foodSystem) ActiveCount() int {
	n := 0
	for i := range fs.sources {
		if !fs.sources[i].Depleted {
			n++
		}
	}
	return n
}

// TotalFood returns the sum of remaining amounts across all sources.
func (fs *foodSystem) TotalFood() float32 {
	var total float32
	for i := range fs.sources {
		total += fs.sources[i].Amount
	}
	return total
}

// records converts live sources to snapshot form.
func (fs *foodSystem) records() []telemetry.FoodRecord {
	out := make([]telemetry.FoodRecord, len(fs.sources))
	for i := range fs.sources {
		f := &fs.sources[i]
		out[i] = telemetry.FoodRecord{
			X:          f.X,
			Y:          f.Y,
			Amount:     f.Amount,
			Capacity:   f.Capacity,
			RegenRate:  f.RegenRate,
			Radius:     f.Radius,
			RegenDelay: f.RegenDelay,
			Depleted:   f.Depleted,
		}
	}
	return out
}

// restore replaces the live set with snapshot records.
func (fs *foodSystem) restore(records []telemetry.FoodRecord) {
	fs.sources = fs.sources[:0]
	for _, r := range records {
		fs.sources = append(fs.sources, FoodSource{
			X:          r.X,
			Y:          r.Y,
			Amount:     r.Amount,
			Capacity:   r.Capacity,
			RegenRate:  r.RegenRate,
			Radius:     r.Radius,
			RegenDelay: r.RegenDelay,
			Depleted:   r.Depleted,
		})
	}
}
