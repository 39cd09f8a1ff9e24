package pheromone

import "github.com/phiberoptik112/digital-ant-farm/config"

// Kind identifies a signal category. Each kind carries independent
// creation defaults and sensing filters treat kinds as disjoint.
type Kind uint8

const (
	KindFoodTrail Kind = iota // Trail leading to food
	KindHomeTrail             // Trail leading back to nest
	KindDanger                // Warning signal
	kindCount
)

// KindCount is the number of signal kinds, for per-kind arrays.
const KindCount = int(kindCount)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindFoodTrail:
		return "food_trail"
	case KindHomeTrail:
		return "home_trail"
	case KindDanger:
		return "danger"
	}
	return "unknown"
}

// Defaults returns the configured creation parameters for a kind.
// Adding a kind without a config mapping is a compile-time visible
// change here, not a silent fallback.
func (k Kind) Defaults() config.KindParams {
	fc := &config.Cfg().Field
	switch k {
	case KindFoodTrail:
		return fc.FoodTrail
	case KindHomeTrail:
		return fc.HomeTrail
	case KindDanger:
		return fc.Danger
	}
	panic("pheromone: unknown kind")
}
