// Package components defines ECS components for the simulation.
package components

// AntState determines which steering behavior drives an ant.
type AntState uint8

const (
	StateSearching AntState = iota // Looking for food, following food trails
	StateReturning                 // Carrying food back to the nest
	StateFleeing                   // Running from a danger marker
)

// String returns a display name for the state.
func (s AntState) String() string {
	switch s {
	case StateSearching:
		return "searching"
	case StateReturning:
		return "returning"
	case StateFleeing:
		return "fleeing"
	default:
		return "unknown"
	}
}

// Position represents an entity's world position.
type Position struct {
	X, Y float32
}

// Velocity represents an entity's velocity in world units per second.
// Written during the agent phase, integrated afterward.
type Velocity struct {
	X, Y float32
}

// Ant holds per-ant state. Caste-scaled parameters are cached at spawn
// so caste config edits only affect ants produced afterward.
type Ant struct {
	ID    uint32   `inspect:"label"`
	State AntState `inspect:"label"`
	Caste uint8    `inspect:"label"`
	Dead  bool     `inspect:"skip"` // Marked during the agent phase, removed after it

	Heading  float32 `inspect:"angle"`
	MaxSpeed float32 `inspect:"label,fmt:%.0f"` // Caste-scaled, world units per second

	Detection float32 `inspect:"skip"` // Caste-scaled food detection radius
	Sense     float32 `inspect:"skip"` // Caste-scaled pheromone query range

	Age           int32 `inspect:"label"` // Ticks since spawn
	LifespanTicks int32 `inspect:"skip"`  // Caste-scaled

	Carrying   float32 `inspect:"bar,max:5"` // Food units held; zero while searching
	TargetFood int32   `inspect:"label"`     // Locked food source index, -1 when none

	TrailTimer  int32  `inspect:"skip"`  // Ticks until the next exploration deposit
	FleeTicks   int32  `inspect:"label"` // Ticks remaining in the fleeing state
	LastDeposit uint64 `inspect:"label"` // Most recent own deposit, for inspection
}

// IsCarrying reports whether the ant holds any food.
func (a *Ant) IsCarrying() bool {
	return a.Carrying > 0
}
