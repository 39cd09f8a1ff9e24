// Package main provides CMA-ES optimization for foraging parameters.
package main

import (
	"github.com/phiberoptik112/digital-ant-farm/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
// Danger parameters are locked: the fitness runs have no predators, so
// optimizing them would just drift.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Food trail
			{Name: "food_strength", Path: "field.food_trail.strength", Min: 10, Max: 100, Default: 40},
			{Name: "food_decay", Path: "field.food_trail.decay_rate", Min: 0.1, Max: 1.5, Default: 0.5},
			{Name: "food_radius", Path: "field.food_trail.radius", Min: 10, Max: 50, Default: 25},
			// Home trail
			{Name: "home_strength", Path: "field.home_trail.strength", Min: 5, Max: 60, Default: 20},
			{Name: "home_decay", Path: "field.home_trail.decay_rate", Min: 0.05, Max: 1.0, Default: 0.3},
			{Name: "home_radius", Path: "field.home_trail.radius", Min: 8, Max: 40, Default: 15},
			// Quality feedback
			{Name: "quality_increment", Path: "field.quality_increment", Min: 0.01, Max: 0.25, Default: 0.05},
			{Name: "quality_coeff", Path: "field.quality_coeff", Min: 0.1, Max: 1.0, Default: 0.7},
			{Name: "reinforcement_fraction", Path: "field.reinforcement_fraction", Min: 0.02, Max: 0.4, Default: 0.1},
			// Spread
			{Name: "spread_strength_factor", Path: "spread.strength_factor", Min: 0.1, Max: 0.9, Default: 0.4},
			{Name: "spread_delay", Path: "spread.delay", Min: 0.5, Max: 8.0, Default: 2.0},
			// Ant behavior
			{Name: "home_trail_period", Path: "ants.home_trail_period", Min: 10, Max: 90, Default: 30},
			{Name: "wander_jitter", Path: "ants.wander_jitter", Min: 0.5, Max: 5.0, Default: 2.5},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		val := v[i]
		if val < spec.Min {
			val = spec.Min
		}
		if val > spec.Max {
			val = spec.Max
		}
		clamped[i] = val
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)

	// Order must match Specs order
	i := 0

	cfg.Field.FoodTrail.Strength = clamped[i]; i++
	cfg.Field.FoodTrail.DecayRate = clamped[i]; i++
	cfg.Field.FoodTrail.Radius = clamped[i]; i++

	cfg.Field.HomeTrail.Strength = clamped[i]; i++
	cfg.Field.HomeTrail.DecayRate = clamped[i]; i++
	cfg.Field.HomeTrail.Radius = clamped[i]; i++

	cfg.Field.QualityIncrement = clamped[i]; i++
	cfg.Field.QualityCoeff = clamped[i]; i++
	cfg.Field.ReinforcementFraction = clamped[i]; i++

	cfg.Spread.StrengthFactor = clamped[i]; i++
	cfg.Spread.Delay = clamped[i]; i++

	cfg.Ants.HomeTrailPeriod = int(clamped[i]); i++
	cfg.Ants.WanderJitter = clamped[i]
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		cfg.Field.FoodTrail.Strength,
		cfg.Field.FoodTrail.DecayRate,
		cfg.Field.FoodTrail.Radius,
		cfg.Field.HomeTrail.Strength,
		cfg.Field.HomeTrail.DecayRate,
		cfg.Field.HomeTrail.Radius,
		cfg.Field.QualityIncrement,
		cfg.Field.QualityCoeff,
		cfg.Field.ReinforcementFraction,
		cfg.Spread.StrengthFactor,
		cfg.Spread.Delay,
		float64(cfg.Ants.HomeTrailPeriod),
		cfg.Ants.WanderJitter,
	}
}
