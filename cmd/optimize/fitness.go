package main

import (
	"math"
	"sync"

	"github.com/phiberoptik112/digital-ant-farm/config"
	"github.com/phiberoptik112/digital-ant-farm/game"
	"github.com/phiberoptik112/digital-ant-farm/telemetry"
)

// FitnessEvaluator runs headless simulations and computes fitness.
type FitnessEvaluator struct {
	params      *ParamVector
	maxTicks    int32
	seeds       []int64
	statsWindow float64

	// Best run tracking
	mu             sync.Mutex
	bestFitness    float64
	bestHallOfFame *telemetry.HallOfFame
	lastQuality    float64 // quality from most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int32, seeds []int64) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxTicks:    maxTicks,
		seeds:       seeds,
		statsWindow: 10.0, // 10 seconds per window
		bestFitness: math.Inf(1),
	}
}

// BestHallOfFame returns the hall of fame from the best evaluation.
func (fe *FitnessEvaluator) BestHallOfFame() *telemetry.HallOfFame {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.bestHallOfFame
}

// LastQuality returns the quality score from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// runResult holds the results from a single simulation run.
type runResult struct {
	delivered   float64                 // total food delivered over the run
	windowStats []telemetry.WindowStats // collected via StatsCallback each window
	hallOfFame  *telemetry.HallOfFame
}

// seedResult holds the result from one seed evaluation.
type seedResult struct {
	fitness    float64
	quality    float64
	hallOfFame *telemetry.HallOfFame
}

// Evaluate computes fitness for a parameter vector (lower = better).
// Fitness is negative delivered food: more food home = lower (better)
// fitness, with a quality bonus for efficient, stable colonies.
//
// The parameters are applied to the shared config once, then all seeds
// run in parallel against it. Nothing mutates the config while runs
// are in flight.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	fe.params.ApplyToConfig(config.Cfg(), x)

	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			result := fe.runSimulation(s)
			results[idx] = seedResult{
				fitness:    fe.computeFitness(result),
				quality:    fe.computeQuality(result.windowStats),
				hallOfFame: result.hallOfFame,
			}
		}(i, seed)
	}
	wg.Wait()

	// Aggregate results
	var totalFitness, totalQuality float64
	var bestSeedFitness = math.Inf(1)
	var bestSeedHallOfFame *telemetry.HallOfFame

	for _, r := range results {
		totalFitness += r.fitness
		totalQuality += r.quality
		if r.fitness < bestSeedFitness {
			bestSeedFitness = r.fitness
			bestSeedHallOfFame = r.hallOfFame
		}
	}

	n := float64(len(fe.seeds))
	avgFitness := totalFitness / n

	fe.mu.Lock()
	if avgFitness < fe.bestFitness {
		fe.bestFitness = avgFitness
		fe.bestHallOfFame = bestSeedHallOfFame
	}
	fe.lastQuality = totalQuality / n
	fe.mu.Unlock()

	return avgFitness
}

// runSimulation executes a single headless simulation run. Ends early
// when the colony is functionally dead: no ants left and not enough
// stored food to spawn one.
func (fe *FitnessEvaluator) runSimulation(seed int64) *runResult {
	result := &runResult{}

	g, err := game.NewGameWithOptions(game.Options{
		Seed:           seed,
		Headless:       true,
		StatsWindowSec: fe.statsWindow,
		StepsPerUpdate: 1,
		StatsCallback: func(stats telemetry.WindowStats) {
			result.windowStats = append(result.windowStats, stats)
		},
	})
	if err != nil {
		return result
	}
	defer g.Unload()

	spawnCost := config.Cfg().Colony.SpawnCost

	for g.Tick() < fe.maxTicks {
		g.UpdateHeadless()

		if g.Population() == 0 && g.Colony().FoodStored < spawnCost {
			break
		}
	}

	for _, w := range result.windowStats {
		result.delivered += w.FoodDelivered
	}
	result.hallOfFame = g.HallOfFame()
	return result
}

// computeFitness calculates the scalar fitness (lower = better).
// Formula: -(delivered × (1.0 + 0.2 × quality))
// Delivered food dominates; quality adds up to 20% bonus to
// differentiate configs with similar throughput.
func (fe *FitnessEvaluator) computeFitness(r *runResult) float64 {
	quality := fe.computeQuality(r.windowStats)
	return -(r.delivered * (1.0 + 0.2*quality))
}

// Quality component weights.
const (
	qualityWeightCompletion = 0.4
	qualityWeightEfficiency = 0.35
	qualityWeightStability  = 0.25

	qualityWarmupWindows = 3 // skip first N windows (warmup)
)

// computeQuality computes colony quality in [0, 1] from window stats.
func (fe *FitnessEvaluator) computeQuality(windows []telemetry.WindowStats) float64 {
	if len(windows) <= qualityWarmupWindows {
		return 0
	}
	valid := windows[qualityWarmupWindows:]

	var collected, delivered float64
	var effSum float64
	var effCount int
	popCounts := make([]float64, 0, len(valid))

	for _, w := range valid {
		collected += w.FoodCollected
		delivered += w.FoodDelivered

		if w.AntCount > 0 {
			popCounts = append(popCounts, float64(w.AntCount))

			// Delivered food per ant-second this window
			perAntSec := w.FoodDelivered / (float64(w.AntCount) * fe.statsWindow)
			effSum += 1.0 - math.Exp(-perAntSec/0.05)
			effCount++
		}
	}

	if effCount == 0 {
		return 0
	}

	// 1. Completion: fraction of harvested food that made it home.
	// Drops when ants die mid-trip or flee carrying food.
	completionScore := 0.0
	if collected > 0 {
		completionScore = clamp01(delivered / collected)
	}

	// 2. Per-ant throughput (averaged per valid window)
	efficiencyScore := effSum / float64(effCount)

	// 3. Population stability (CV across valid windows)
	stabilityScore := 0.0
	if len(popCounts) >= 2 {
		c := cv(popCounts)
		stabilityScore = math.Exp(-c * c)
	}

	quality := qualityWeightCompletion*completionScore +
		qualityWeightEfficiency*efficiencyScore +
		qualityWeightStability*stabilityScore

	return clamp01(quality)
}

// cv computes the coefficient of variation (std/mean) for a slice of values.
func cv(values []float64) float64 {
	n := float64(len(values))
	if n == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / n
	if mean == 0 {
		return 0
	}
	var sqDiff float64
	for _, v := range values {
		d := v - mean
		sqDiff += d * d
	}
	return math.Sqrt(sqDiff/n) / mean
}

// clamp01 clamps x to [0, 1].
func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
