package telemetry

import (
	"log/slog"
	"sort"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Population at window end
	AntCount  int `csv:"ants"`
	Searching int `csv:"searching"`
	Returning int `csv:"returning"`
	Fleeing   int `csv:"fleeing"`

	// Events during window
	Births      int `csv:"births"`
	Deaths      int `csv:"deaths"`
	Starvations int `csv:"starvations"`
	Deliveries  int `csv:"deliveries"`

	// Food economy
	FoodCollected float64 `csv:"food_collected"`
	FoodDelivered float64 `csv:"food_delivered"`
	FoodConsumed  float64 `csv:"food_consumed"`
	FoodStored    float64 `csv:"food_stored"`
	ActiveSources int     `csv:"active_sources"`

	// Colony progression
	ColonyLevel int     `csv:"colony_level"`
	ColonyXP    float64 `csv:"colony_xp"`

	// Field state at window end
	Deposits      int     `csv:"deposits"`
	FoodTrails    int     `csv:"food_trails"`
	HomeTrails    int     `csv:"home_trails"`
	DangerMarks   int     `csv:"danger_marks"`
	TotalStrength float64 `csv:"total_strength"`
	AvgQuality    float64 `csv:"avg_quality"`
	HighQuality   int     `csv:"high_quality"`
	TrailUsage    int64   `csv:"trail_usage"`

	// Field churn during window
	DepositsCreated int `csv:"deposits_created"`
	DepositsExpired int `csv:"deposits_expired"`
	DepositsPruned  int `csv:"deposits_pruned"`
	SpreadEvents    int `csv:"spread_events"`

	// Ant age distribution at window end (seconds)
	AgeMean float64 `csv:"age_mean"`
	AgeP10  float64 `csv:"age_p10"`
	AgeP50  float64 `csv:"age_p50"`
	AgeP90  float64 `csv:"age_p90"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeDistribution calculates mean and percentiles from sampled values.
func ComputeDistribution(values []float64) (mean, p10, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean = sum / float64(n)

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = Percentile(sorted, 0.10)
	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)

	return mean, p10, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("ants", s.AntCount),
		slog.Int("searching", s.Searching),
		slog.Int("returning", s.Returning),
		slog.Int("fleeing", s.Fleeing),
		slog.Int("births", s.Births),
		slog.Int("deaths", s.Deaths),
		slog.Int("starvations", s.Starvations),
		slog.Int("deliveries", s.Deliveries),
		slog.Float64("food_collected", s.FoodCollected),
		slog.Float64("food_delivered", s.FoodDelivered),
		slog.Float64("food_consumed", s.FoodConsumed),
		slog.Float64("food_stored", s.FoodStored),
		slog.Int("active_sources", s.ActiveSources),
		slog.Int("colony_level", s.ColonyLevel),
		slog.Float64("colony_xp", s.ColonyXP),
		slog.Int("deposits", s.Deposits),
		slog.Int("food_trails", s.FoodTrails),
		slog.Int("home_trails", s.HomeTrails),
		slog.Int("danger_marks", s.DangerMarks),
		slog.Float64("total_strength", s.TotalStrength),
		slog.Float64("avg_quality", s.AvgQuality),
		slog.Int("high_quality", s.HighQuality),
		slog.Int64("trail_usage", s.TrailUsage),
		slog.Int("deposits_created", s.DepositsCreated),
		slog.Int("deposits_expired", s.DepositsExpired),
		slog.Int("deposits_pruned", s.DepositsPruned),
		slog.Int("spread_events", s.SpreadEvents),
		slog.Float64("age_mean", s.AgeMean),
		slog.Float64("age_p10", s.AgeP10),
		slog.Float64("age_p50", s.AgeP50),
		slog.Float64("age_p90", s.AgeP90),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"ants", s.AntCount,
		"searching", s.Searching,
		"returning", s.Returning,
		"fleeing", s.Fleeing,
		"births", s.Births,
		"deaths", s.Deaths,
		"starvations", s.Starvations,
		"deliveries", s.Deliveries,
		"food_collected", s.FoodCollected,
		"food_delivered", s.FoodDelivered,
		"food_consumed", s.FoodConsumed,
		"food_stored", s.FoodStored,
		"active_sources", s.ActiveSources,
		"colony_level", s.ColonyLevel,
		"colony_xp", s.ColonyXP,
		"deposits", s.Deposits,
		"food_trails", s.FoodTrails,
		"home_trails", s.HomeTrails,
		"danger_marks", s.DangerMarks,
		"total_strength", s.TotalStrength,
		"avg_quality", s.AvgQuality,
		"high_quality", s.HighQuality,
		"trail_usage", s.TrailUsage,
		"deposits_created", s.DepositsCreated,
		"deposits_expired", s.DepositsExpired,
		"deposits_pruned", s.DepositsPruned,
		"spread_events", s.SpreadEvents,
		"age_mean", s.AgeMean,
		"age_p10", s.AgeP10,
		"age_p50", s.AgeP50,
		"age_p90", s.AgeP90,
	)
}
