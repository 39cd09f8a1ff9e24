package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/phiberoptik112/digital-ant-farm/pheromone"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot holds the complete simulation state for resuming a run.
type Snapshot struct {
	Version int   `json:"version"`
	RNGSeed int64 `json:"rng_seed"`

	WorldWidth  float32 `json:"world_width"`
	WorldHeight float32 `json:"world_height"`
	GroundSeed  int64   `json:"ground_seed"`

	Tick int32 `json:"tick"`

	Colony ColonyRecord `json:"colony"`
	Ants   []AntRecord  `json:"ants"`
	Food   []FoodRecord `json:"food"`
	Field  FieldRecord  `json:"field"`

	Milestone *Milestone `json:"milestone,omitempty"`
}

// ColonyRecord holds the colony's state.
type ColonyRecord struct {
	X             float32 `json:"x"`
	Y             float32 `json:"y"`
	Level         int     `json:"level"`
	XP            float64 `json:"xp"`
	FoodStored    float64 `json:"food_stored"`
	SpawnCooldown int32   `json:"spawn_cooldown"`
}

// AntRecord holds one ant's complete state.
type AntRecord struct {
	ID    uint32 `json:"id"`
	Caste uint8  `json:"caste"`
	State uint8  `json:"state"`

	// Position and movement
	X       float32 `json:"x"`
	Y       float32 `json:"y"`
	VelX    float32 `json:"vel_x"`
	VelY    float32 `json:"vel_y"`
	Heading float32 `json:"heading"`

	// Agent state
	Age         int32   `json:"age"`
	Lifespan    int32   `json:"lifespan"`
	Carrying    float32 `json:"carrying"`
	TargetFood  int32   `json:"target_food"`
	TrailTimer  int32   `json:"trail_timer"`
	FleeTicks   int32   `json:"flee_ticks"`
	LastDeposit uint64  `json:"last_deposit"`

	// Lifetime stats
	Lifetime *LifetimeStatsJSON `json:"lifetime,omitempty"`
}

// FoodRecord holds one food source's state.
type FoodRecord struct {
	X          float32 `json:"x"`
	Y          float32 `json:"y"`
	Amount     float32 `json:"amount"`
	Capacity   float32 `json:"capacity"`
	RegenRate  float32 `json:"regen_rate"`
	Radius     float32 `json:"radius"`
	RegenDelay int32   `json:"regen_delay"`
	Depleted   bool    `json:"depleted"`
}

// FieldRecord holds the pheromone field's live set.
type FieldRecord struct {
	NextID   uint64          `json:"next_id"`
	Deposits []DepositRecord `json:"deposits"`
}

// DepositRecord is the JSON-serializable form of a pheromone deposit.
type DepositRecord struct {
	ID   uint64  `json:"id"`
	X    float32 `json:"x"`
	Y    float32 `json:"y"`
	Kind uint8   `json:"kind"`

	Strength    float32 `json:"strength"`
	MaxStrength float32 `json:"max_strength"`
	DecayRate   float32 `json:"decay_rate"`
	Radius      float32 `json:"radius"`

	Spread       uint8   `json:"spread"`
	SpreadAt     int32   `json:"spread_at"`
	SpreadRadius float32 `json:"spread_radius"`
	SpreadFactor float32 `json:"spread_factor"`
	SpreadCount  int32   `json:"spread_count"`
	Origin       uint64  `json:"origin"`

	UsageCount   int32   `json:"usage_count"`
	Quality      float32 `json:"quality"`
	LastUsedTick int32   `json:"last_used_tick"`
	CreatedTick  int32   `json:"created_tick"`
}

// DepositRecordFrom converts a live deposit to its snapshot form.
func DepositRecordFrom(d pheromone.Deposit) DepositRecord {
	return DepositRecord{
		ID:           d.ID,
		X:            d.X,
		Y:            d.Y,
		Kind:         uint8(d.Kind),
		Strength:     d.Strength,
		MaxStrength:  d.MaxStrength,
		DecayRate:    d.DecayRate,
		Radius:       d.Radius,
		Spread:       uint8(d.Spread),
		SpreadAt:     d.SpreadAt,
		SpreadRadius: d.SpreadRadius,
		SpreadFactor: d.SpreadFactor,
		SpreadCount:  d.SpreadCount,
		Origin:       d.Origin,
		UsageCount:   d.UsageCount,
		Quality:      d.Quality,
		LastUsedTick: d.LastUsedTick,
		CreatedTick:  d.CreatedTick,
	}
}

// ToDeposit converts the snapshot form back to a live deposit.
func (r DepositRecord) ToDeposit() pheromone.Deposit {
	return pheromone.Deposit{
		ID:           r.ID,
		X:            r.X,
		Y:            r.Y,
		Kind:         pheromone.Kind(r.Kind),
		Strength:     r.Strength,
		MaxStrength:  r.MaxStrength,
		DecayRate:    r.DecayRate,
		Radius:       r.Radius,
		Spread:       pheromone.SpreadState(r.Spread),
		SpreadAt:     r.SpreadAt,
		SpreadRadius: r.SpreadRadius,
		SpreadFactor: r.SpreadFactor,
		SpreadCount:  r.SpreadCount,
		Origin:       r.Origin,
		UsageCount:   r.UsageCount,
		Quality:      r.Quality,
		LastUsedTick: r.LastUsedTick,
		CreatedTick:  r.CreatedTick,
	}
}

// LifetimeStatsJSON is the JSON-serializable form of LifetimeStats.
type LifetimeStatsJSON struct {
	BirthTick       int32   `json:"birth_tick"`
	SurvivalTimeSec float32 `json:"survival_time_sec"`
	Caste           uint8   `json:"caste"`
	Trips           int     `json:"trips"`
	FoodCollected   float32 `json:"food_collected"`
	FoodDelivered   float32 `json:"food_delivered"`
	PeakCarry       float32 `json:"peak_carry"`
	DepositsMade    int     `json:"deposits_made"`
}

// ToJSON converts LifetimeStats to its JSON form.
func (ls *LifetimeStats) ToJSON() *LifetimeStatsJSON {
	if ls == nil {
		return nil
	}
	return &LifetimeStatsJSON{
		BirthTick:       ls.BirthTick,
		SurvivalTimeSec: ls.SurvivalTimeSec,
		Caste:           ls.Caste,
		Trips:           ls.Trips,
		FoodCollected:   ls.FoodCollected,
		FoodDelivered:   ls.FoodDelivered,
		PeakCarry:       ls.PeakCarry,
		DepositsMade:    ls.DepositsMade,
	}
}

// FromJSON converts the JSON form back to LifetimeStats.
func (lsj *LifetimeStatsJSON) FromJSON() *LifetimeStats {
	if lsj == nil {
		return nil
	}
	return &LifetimeStats{
		BirthTick:       lsj.BirthTick,
		SurvivalTimeSec: lsj.SurvivalTimeSec,
		Caste:           lsj.Caste,
		Trips:           lsj.Trips,
		FoodCollected:   lsj.FoodCollected,
		FoodDelivered:   lsj.FoodDelivered,
		PeakCarry:       lsj.PeakCarry,
		DepositsMade:    lsj.DepositsMade,
	}
}

// SaveSnapshot writes a snapshot to disk.
// Returns the filepath where it was saved.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	// Build filename
	name := fmt.Sprintf("snapshot_%d", snapshot.Tick)
	if snapshot.Milestone != nil {
		// Sanitize milestone type for filename
		sanitized := strings.ReplaceAll(string(snapshot.Milestone.Type), " ", "_")
		name = fmt.Sprintf("snapshot_%d_%s", snapshot.Tick, sanitized)
	}
	name += ".json"

	path := filepath.Join(dir, name)

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	return path, nil
}

// LoadSnapshot reads a snapshot from disk.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}

	if snapshot.Version != SnapshotVersion {
		return nil, fmt.Errorf("snapshot version %d not supported (want %d)", snapshot.Version, SnapshotVersion)
	}

	return &snapshot, nil
}
