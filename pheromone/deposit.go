package pheromone

// SpreadState tracks the one-shot spreading lifecycle of a deposit.
type SpreadState uint8

const (
	SpreadPending  SpreadState = iota // Delay not yet elapsed
	SpreadEligible                    // Delay elapsed, not yet fired
	SpreadDone                        // Fired; never fires again
	SpreadDisabled                    // Never spreads (spread children, opted-out deposits)
)

// String returns the spread state name.
func (s SpreadState) String() string {
	switch s {
	case SpreadPending:
		return "pending"
	case SpreadEligible:
		return "eligible"
	case SpreadDone:
		return "done"
	case SpreadDisabled:
		return "disabled"
	}
	return "unknown"
}

// Deposit is a single decaying positional signal. Position is immutable
// after creation; everything else is mutated only by Field.Step and by
// usage marks.
type Deposit struct {
	ID   uint64
	X, Y float32
	Kind Kind

	Strength    float32
	MaxStrength float32 // Strength at creation; spreading and the reinforcement cap reference this
	DecayRate   float32 // Per-tick loss before quality/ground modulation
	Radius      float32 // Radius of influence for sensing

	Spread       SpreadState
	SpreadAt     int32 // Tick at which the deposit becomes eligible
	SpreadRadius float32
	SpreadFactor float32
	SpreadCount  int32
	Origin       uint64 // ID of the deposit that spread this one; 0 for originals. Diagnostics only.

	UsageCount   int32
	Quality      float32 // Starts at 1; grows with use, slows decay
	LastUsedTick int32
	CreatedTick  int32
}

// InfluenceAt returns the deposit's effective influence at (x, y):
// strength scaled by linear falloff inside the influence radius, zero
// at or beyond it.
func (d *Deposit) InfluenceAt(x, y float32) float32 {
	dx := x - d.X
	dy := y - d.Y
	distSq := dx*dx + dy*dy
	if distSq >= d.Radius*d.Radius {
		return 0
	}
	dist := sqrt32(distSq)
	return d.Strength * (1 - dist/d.Radius)
}

// Opts controls spreading for a new deposit. Zero-valued fields fall
// back to the global spread configuration; SpreadRadius additionally
// falls back to the influence radius times the configured multiplier.
type Opts struct {
	CanSpread    bool
	SpreadDelay  float32 // Seconds
	SpreadRadius float32
	SpreadFactor float32
	SpreadCount  int32
}
