// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	World     WorldConfig     `yaml:"world"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Field     FieldConfig     `yaml:"field"`
	Spread    SpreadConfig    `yaml:"spread"`
	Ground    GroundConfig    `yaml:"ground"`
	Colony    ColonyConfig    `yaml:"colony"`
	Ants      AntsConfig      `yaml:"ants"`
	Castes    []CasteConfig   `yaml:"castes"`
	Food      FoodConfig      `yaml:"food"`
	Render    RenderConfig    `yaml:"render"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// WorldConfig holds simulation world dimensions.
// World can be larger than the screen; camera handles the viewport.
type WorldConfig struct {
	Width  int `yaml:"width"`  // World width in world units (0 = use screen width)
	Height int `yaml:"height"` // World height in world units (0 = use screen height)
}

// PhysicsConfig holds simulation timing and spatial index parameters.
type PhysicsConfig struct {
	DT           float64 `yaml:"dt"`
	GridCellSize float64 `yaml:"grid_cell_size"` // Pheromone index cell size; keep >= largest influence radius
}

// KindParams holds per-kind deposit creation defaults.
type KindParams struct {
	Strength  float64 `yaml:"strength"`
	DecayRate float64 `yaml:"decay_rate"` // Strength lost per tick before modulation
	Radius    float64 `yaml:"radius"`     // Radius of influence
	CanSpread bool    `yaml:"can_spread"`
}

// FieldConfig holds pheromone field parameters.
type FieldConfig struct {
	FoodTrail KindParams `yaml:"food_trail"`
	HomeTrail KindParams `yaml:"home_trail"`
	Danger    KindParams `yaml:"danger"`

	MaxDeposits int `yaml:"max_deposits"` // Soft cap; lowest-strength deposits pruned first

	QualityCap       float64 `yaml:"quality_cap"`
	QualityIncrement float64 `yaml:"quality_increment"` // Quality gained per usage mark
	QualityCoeff     float64 `yaml:"quality_coeff"`     // Decay slowdown per quality point above 1
	QualityFloor     float64 `yaml:"quality_floor"`     // Minimum decay factor from quality alone
	QualityWindow    float64 `yaml:"quality_window"`    // Seconds unused before quality relaxes
	QualityRelax     float64 `yaml:"quality_relax"`     // Per-tick relaxation multiplier toward 1.0

	ReinforcementPeriod      int     `yaml:"reinforcement_period"`       // Strength boost every N usage marks
	ReinforcementFraction    float64 `yaml:"reinforcement_fraction"`     // Boost as fraction of current strength
	ReinforcementCapMultiple float64 `yaml:"reinforcement_cap_multiple"` // Strength never exceeds this multiple of creation strength
}

// SpreadConfig holds secondary deposit propagation parameters.
type SpreadConfig struct {
	Enabled          bool    `yaml:"enabled"`
	Delay            float64 `yaml:"delay"` // Seconds before a deposit becomes eligible
	StrengthFactor   float64 `yaml:"strength_factor"`
	Count            int     `yaml:"count"`
	RadiusMultiplier float64 `yaml:"radius_multiplier"` // Spread circle radius as multiple of influence radius
	RadiusDamping    float64 `yaml:"radius_damping"`    // Secondary influence radius as fraction of original
}

// GroundConfig holds the ambient ground grid parameters.
type GroundConfig struct {
	Enabled          bool    `yaml:"enabled"`
	CellSize         float64 `yaml:"cell_size"`
	DriftInterval    float64 `yaml:"drift_interval"` // Seconds between property random walks
	MoistureDrift    float64 `yaml:"moisture_drift"`
	TemperatureDrift float64 `yaml:"temperature_drift"`
	MinMultiplier    float64 `yaml:"min_multiplier"` // Clamp on combined decay multiplier
	MaxMultiplier    float64 `yaml:"max_multiplier"`
}

// ColonyConfig holds nest economics parameters.
type ColonyConfig struct {
	Radius                float64 `yaml:"radius"`
	NestRadius            float64 `yaml:"nest_radius"` // Delivery distance threshold
	InitialPopulation     int     `yaml:"initial_population"`
	InitialFood           float64 `yaml:"initial_food"` // Stored food at simulation start
	MaxPopulation         int     `yaml:"max_population"`
	SpawnRate             float64 `yaml:"spawn_rate"`     // Spawn probability per tick when affordable
	SpawnCooldown         int     `yaml:"spawn_cooldown"` // Minimum ticks between spawns
	SpawnCost             float64 `yaml:"spawn_cost"`
	FoodStorageMax        float64 `yaml:"food_storage_max"`
	ConsumptionRate       float64 `yaml:"consumption_rate"` // Food per ant per second
	StarvationDeathChance float64 `yaml:"starvation_death_chance"`
	XPPerFood             float64 `yaml:"xp_per_food"`
	LevelXP               float64 `yaml:"level_xp"` // XP for next level = level * this
	LevelPopBonus         int     `yaml:"level_pop_bonus"`
	LevelStorageBonus     float64 `yaml:"level_storage_bonus"`
	LevelSpawnBonus       float64 `yaml:"level_spawn_bonus"`
}

// AntsConfig holds agent movement and deposit cadence parameters.
type AntsConfig struct {
	MaxSpeed         float64 `yaml:"max_speed"`      // World units per second
	CarrySlowdown    float64 `yaml:"carry_slowdown"` // Speed multiplier while carrying food
	MaxTurnRate      float64 `yaml:"max_turn_rate"`  // Radians per second
	WanderJitter     float64 `yaml:"wander_jitter"`  // Radians per second of random heading drift
	DetectionRadius  float64 `yaml:"detection_radius"`
	SenseRange       float64 `yaml:"sense_range"` // Pheromone query range
	MaxLifespan      float64 `yaml:"max_lifespan"`
	HomeTrailPeriod  int     `yaml:"home_trail_period"` // Ticks between exploration deposits while searching
	DangerAvoidRange float64 `yaml:"danger_avoid_range"`
	CarryCapacity    float64 `yaml:"carry_capacity"` // Food units per trip
	EdgeMargin       float64 `yaml:"edge_margin"`    // Steer away inside this distance from world edges
}

// CasteConfig defines a production template for ants.
// Multipliers apply to the shared AntsConfig base values.
type CasteConfig struct {
	Name          string  `yaml:"name"`
	Cost          float64 `yaml:"cost"` // Colony food cost to produce
	SpeedMult     float64 `yaml:"speed_mult"`
	DetectionMult float64 `yaml:"detection_mult"`
	LifespanMult  float64 `yaml:"lifespan_mult"`
	Description   string  `yaml:"description"`
}

// FoodConfig holds food source parameters.
type FoodConfig struct {
	InitialSources int     `yaml:"initial_sources"`
	MaxSources     int     `yaml:"max_sources"`
	AmountMin      float64 `yaml:"amount_min"`
	AmountMax      float64 `yaml:"amount_max"`
	HarvestAmount  float64 `yaml:"harvest_amount"` // Units removed per harvest
	RegenCooldown  int     `yaml:"regen_cooldown"` // Ticks before a depleted source starts refilling
	RegenRate      float64 `yaml:"regen_rate"`     // Units per second once refilling
	Radius         float64 `yaml:"radius"`         // Base visual radius at full capacity
	MinDistance    float64 `yaml:"min_distance"`   // Minimum spacing between sources
	EdgeMargin     float64 `yaml:"edge_margin"`
}

// RenderConfig holds renderer parameters.
type RenderConfig struct {
	DepositCacheSize int `yaml:"deposit_cache_size"` // Max cached gradient textures
	GradientRings    int `yaml:"gradient_rings"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow          float64 `yaml:"stats_window"` // Seconds per stats window
	PerfCollectorWindow  int     `yaml:"perf_collector_window"`
	MilestoneHistorySize int     `yaml:"milestone_history_size"`
	HallOfFameSize       int     `yaml:"hall_of_fame_size"` // Entries kept per caste
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT32               float32          // Physics.DT as float32
	ScreenW32          float32          // Screen.Width as float32
	ScreenH32          float32          // Screen.Height as float32
	WorldW32           float32          // Effective world width as float32
	WorldH32           float32          // Effective world height as float32
	MaxLifespanTicks   int32            // Ants.MaxLifespan in ticks
	DriftIntervalTicks int32            // Ground.DriftInterval in ticks
	StatsWindowTicks   int32            // Telemetry.StatsWindow in ticks
	CasteIndex         map[string]uint8 // name -> index for caste lookup
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	// Compute derived values
	cfg.computeDerived()

	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.DT32 = float32(c.Physics.DT)
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)

	// World dimensions default to screen size if not specified
	worldW := c.World.Width
	if worldW == 0 {
		worldW = c.Screen.Width
	}
	worldH := c.World.Height
	if worldH == 0 {
		worldH = c.Screen.Height
	}
	c.Derived.WorldW32 = float32(worldW)
	c.Derived.WorldH32 = float32(worldH)

	c.Derived.MaxLifespanTicks = int32(c.Ants.MaxLifespan / c.Physics.DT)
	c.Derived.DriftIntervalTicks = int32(c.Ground.DriftInterval / c.Physics.DT)
	c.Derived.StatsWindowTicks = int32(c.Telemetry.StatsWindow / c.Physics.DT)

	// Synthesize default castes if none specified
	if len(c.Castes) == 0 {
		c.Castes = []CasteConfig{
			{
				Name:          "worker",
				Cost:          10.0,
				SpeedMult:     1.0,
				DetectionMult: 1.0,
				LifespanMult:  1.0,
				Description:   "Balanced foragers",
			},
			{
				Name:          "soldier",
				Cost:          15.0,
				SpeedMult:     0.8,
				DetectionMult: 0.9,
				LifespanMult:  1.3,
				Description:   "Strong defenders",
			},
			{
				Name:          "scout",
				Cost:          12.0,
				SpeedMult:     1.4,
				DetectionMult: 1.5,
				LifespanMult:  0.8,
				Description:   "Fast explorers",
			},
			{
				Name:          "nurse",
				Cost:          8.0,
				SpeedMult:     0.9,
				DetectionMult: 0.8,
				LifespanMult:  1.1,
				Description:   "Colony maintainers",
			},
		}
	}

	// Apply defaults to castes that don't specify all fields
	for i := range c.Castes {
		caste := &c.Castes[i]
		if caste.SpeedMult == 0 {
			caste.SpeedMult = 1.0
		}
		if caste.DetectionMult == 0 {
			caste.DetectionMult = 1.0
		}
		if caste.LifespanMult == 0 {
			caste.LifespanMult = 1.0
		}
	}

	// Build caste index for fast lookup
	c.Derived.CasteIndex = make(map[string]uint8, len(c.Castes))
	for i, caste := range c.Castes {
		c.Derived.CasteIndex[caste.Name] = uint8(i)
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
