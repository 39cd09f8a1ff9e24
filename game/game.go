package game

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/phiberoptik112/digital-ant-farm/camera"
	"github.com/phiberoptik112/digital-ant-farm/components"
	"github.com/phiberoptik112/digital-ant-farm/config"
	"github.com/phiberoptik112/digital-ant-farm/inspector"
	"github.com/phiberoptik112/digital-ant-farm/pheromone"
	"github.com/phiberoptik112/digital-ant-farm/renderer"
	"github.com/phiberoptik112/digital-ant-farm/telemetry"
	"github.com/phiberoptik112/digital-ant-farm/ui"
)

// Game owns the complete simulation state and, in windowed mode, the
// rendering stack. Headless games never touch raylib.
type Game struct {
	world *ecs.World
	rng   *rand.Rand
	seed  int64

	antMapper *ecs.Map3[components.Position, components.Velocity, components.Ant]
	antFilter *ecs.Filter3[components.Position, components.Velocity, components.Ant]
	posMap    *ecs.Map1[components.Position]
	velMap    *ecs.Map1[components.Velocity]
	antMap    *ecs.Map1[components.Ant]

	field  *pheromone.Field
	ground *pheromone.Ground
	colony *Colony
	food   *foodSystem

	par *parallelState

	collector  *telemetry.Collector
	perf       *telemetry.PerfCollector
	milestones *telemetry.MilestoneDetector
	lifetimes  *telemetry.LifetimeTracker
	hallOfFame *telemetry.HallOfFame
	output     *telemetry.OutputManager

	statsCallback func(telemetry.WindowStats)
	lastStats     telemetry.WindowStats

	logStats    bool
	snapshotDir string
	headless    bool

	// Rendering stack, nil in headless mode
	cam         *camera.Camera
	depositView *renderer.DepositRenderer
	groundView  *renderer.GroundOverlay
	hud         *ui.HUD
	tuning      *ui.TuningPanel
	queen       *ui.QueenPanel
	insp        *inspector.Inspector

	tick           int32
	paused         bool
	stepsPerUpdate int
	nextID         uint32
	population     int
	casteCounts    []int

	// Starvation victim for this tick, matched against IDs in cleanupDead.
	starvedID    uint32
	starvedValid bool

	selectedAnt     ecs.Entity
	hasAntSelection bool
	selectedDeposit uint64 // 0 = none

	debug          bool
	showGround     bool
	showDeposits   bool
	showSenseRange bool

	groundSeed int64

	width, height  float32 // screen
	worldW, worldH float32
}

// NewGameWithOptions builds a simulation. config.Init must have run,
// and in windowed mode the raylib window must already exist.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := config.Cfg()

	if opts.StepsPerUpdate < 1 {
		opts.StepsPerUpdate = 1
	}
	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}

	world := ecs.NewWorld()
	g := &Game{
		world:          &world,
		rng:            rand.New(rand.NewSource(opts.Seed)),
		seed:           opts.Seed,
		groundSeed:     opts.Seed,
		logStats:       opts.LogStats,
		snapshotDir:    opts.SnapshotDir,
		headless:       opts.Headless,
		statsCallback:  opts.StatsCallback,
		stepsPerUpdate: opts.StepsPerUpdate,
		nextID:         1,
		casteCounts:    make([]int, len(cfg.Castes)),
		showGround:     true,
		showDeposits:   true,
		width:          cfg.Derived.ScreenW32,
		height:         cfg.Derived.ScreenH32,
		worldW:         cfg.Derived.WorldW32,
		worldH:         cfg.Derived.WorldH32,
	}

	g.antMapper = ecs.NewMap3[components.Position, components.Velocity, components.Ant](&world)
	g.antFilter = ecs.NewFilter3[components.Position, components.Velocity, components.Ant](&world)
	g.posMap = ecs.NewMap1[components.Position](&world)
	g.velMap = ecs.NewMap1[components.Velocity](&world)
	g.antMap = ecs.NewMap1[components.Ant](&world)

	if cfg.Ground.Enabled {
		g.ground = pheromone.NewGround(g.worldW, g.worldH, g.groundSeed)
	}
	g.field = pheromone.NewField(g.worldW, g.worldH, g.ground)
	g.colony = newColony(g.worldW/2, g.worldH/2)
	g.food = newFoodSystem(g.rng, g.worldW, g.worldH)

	g.par = newParallelState()

	g.collector = telemetry.NewCollector(statsWindow, cfg.Derived.DT32)
	g.perf = telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow)
	g.milestones = telemetry.NewMilestoneDetector(cfg.Telemetry.MilestoneHistorySize)
	g.lifetimes = telemetry.NewLifetimeTracker()
	g.hallOfFame = telemetry.NewHallOfFame(cfg.Telemetry.HallOfFameSize, len(cfg.Castes))

	if opts.OutputDir != "" {
		om, err := telemetry.NewOutputManager(opts.OutputDir)
		if err != nil {
			return nil, fmt.Errorf("output dir: %w", err)
		}
		g.output = om
		if err := om.WriteConfig(cfg); err != nil {
			slog.Error("failed to write config", "error", err)
		}
	}

	if !opts.Headless {
		g.cam = camera.New(g.width, g.height, g.worldW, g.worldH)
		g.depositView = renderer.NewDepositRenderer()
		if g.ground != nil {
			g.groundView = renderer.NewGroundOverlay(g.ground)
		}
		g.hud = ui.NewHUD()
		g.tuning = ui.NewTuningPanel(10, 210)
		g.queen = ui.NewQueenPanel(int32(g.width)-270, 40)
		g.insp = inspector.NewInspector(int32(g.width), int32(g.height))
	}

	if opts.SnapshotPath != "" {
		if err := g.restoreFromSnapshot(opts.SnapshotPath); err != nil {
			return nil, fmt.Errorf("restore snapshot: %w", err)
		}
		slog.Info("restored from snapshot", "path", opts.SnapshotPath, "tick", g.tick, "ants", g.population)
	} else {
		g.spawnInitialPopulation()
	}

	return g, nil
}

// Update advances the simulation for one rendered frame: input, then
// stepsPerUpdate ticks unless paused.
func (g *Game) Update() {
	g.handleInput()

	if !g.paused {
		for i := 0; i < g.stepsPerUpdate; i++ {
			g.step()
		}
	}
	g.perf.RecordFrame()
}

// UpdateHeadless advances exactly one tick with no input handling.
func (g *Game) UpdateHeadless() {
	g.step()
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int32 {
	return g.tick
}

// Population returns the live ant count.
func (g *Game) Population() int {
	return g.population
}

// Colony returns the colony for panels and tests.
func (g *Game) Colony() *Colony {
	return g.colony
}

// Field returns the pheromone field.
func (g *Game) Field() *pheromone.Field {
	return g.field
}

// HallOfFame returns the best-ant tracker.
func (g *Game) HallOfFame() *telemetry.HallOfFame {
	return g.hallOfFame
}

// Unload stops workers, flushes pending output, and releases textures.
func (g *Game) Unload() {
	g.par.stopWorkers()

	if g.output != nil {
		if err := g.output.WriteHallOfFame(g.hallOfFame); err != nil {
			slog.Error("failed to write hall of fame", "error", err)
		}
		if err := g.output.Close(); err != nil {
			slog.Error("failed to close output", "error", err)
		}
	}

	if g.depositView != nil {
		g.depositView.Unload()
	}
	if g.groundView != nil {
		g.groundView.Unload()
	}
}
