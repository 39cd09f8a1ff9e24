package game

import (
	"testing"

	"github.com/phiberoptik112/digital-ant-farm/config"
	"github.com/phiberoptik112/digital-ant-farm/telemetry"
)

func newHeadlessGame(t *testing.T, seed int64) *Game {
	t.Helper()
	g, err := NewGameWithOptions(Options{
		Seed:           seed,
		Headless:       true,
		StepsPerUpdate: 1,
	})
	if err != nil {
		t.Fatalf("creating game: %v", err)
	}
	t.Cleanup(g.Unload)
	return g
}

func TestHeadlessRunAdvances(t *testing.T) {
	resetDefaults()
	g := newHeadlessGame(t, 42)

	if g.Population() != config.Cfg().Colony.InitialPopulation {
		t.Fatalf("expected initial population %d, got %d",
			config.Cfg().Colony.InitialPopulation, g.Population())
	}

	for i := 0; i < 600; i++ {
		g.UpdateHeadless()
	}

	if g.Tick() != 600 {
		t.Errorf("expected tick 600, got %d", g.Tick())
	}
	if g.Field().Tick() != 600 {
		t.Errorf("field tick %d out of step with game", g.Field().Tick())
	}
	if g.Population() == 0 {
		t.Error("colony died within 10 seconds on defaults")
	}
	// Ants lay home trails from the first seconds, so the field cannot
	// stay empty.
	if g.Field().Count() == 0 {
		t.Error("expected deposits after 600 ticks")
	}
}

func TestPopulationAccounting(t *testing.T) {
	resetDefaults()
	g := newHeadlessGame(t, 42)

	for i := 0; i < 1200; i++ {
		g.UpdateHeadless()
	}

	c := g.Colony()
	expected := config.Cfg().Colony.InitialPopulation + c.TotalSpawned - c.TotalDied
	if g.Population() != expected {
		t.Errorf("population %d does not match initial + spawned - died = %d",
			g.Population(), expected)
	}
}

func TestHeadlessDeterminism(t *testing.T) {
	resetDefaults()

	run := func(seed int64) (int32, int, float64, float64, int, int) {
		g := newHeadlessGame(t, seed)
		for i := 0; i < 500; i++ {
			g.UpdateHeadless()
		}
		c := g.Colony()
		return g.Tick(), g.Population(), c.FoodStored, c.XP, c.TotalSpawned, g.Field().Count()
	}

	t1, p1, f1, x1, s1, d1 := run(123)
	t2, p2, f2, x2, s2, d2 := run(123)

	if t1 != t2 || p1 != p2 || f1 != f2 || x1 != x2 || s1 != s2 || d1 != d2 {
		t.Errorf("same seed diverged: (%d %d %f %f %d %d) vs (%d %d %f %f %d %d)",
			t1, p1, f1, x1, s1, d1, t2, p2, f2, x2, s2, d2)
	}

	t3, p3, f3, _, _, _ := run(456)
	if t1 == t3 && p1 == p3 && f1 == f3 {
		t.Log("different seeds produced identical state; suspicious but not impossible")
	}
}

func TestStarvationShrinksColony(t *testing.T) {
	resetDefaults()
	cfg := config.Cfg()
	cfg.Colony.InitialFood = 0
	cfg.Colony.StarvationDeathChance = 1.0
	cfg.Food.InitialSources = 0

	g := newHeadlessGame(t, 42)

	for i := 0; i < 60; i++ {
		g.UpdateHeadless()
	}

	if g.Population() != 0 {
		t.Errorf("expected colony starved to zero, got %d ants", g.Population())
	}
	if g.Colony().TotalDied != cfg.Colony.InitialPopulation {
		t.Errorf("expected %d deaths recorded, got %d",
			cfg.Colony.InitialPopulation, g.Colony().TotalDied)
	}
	if g.Colony().TotalSpawned != 0 {
		t.Errorf("colony spawned %d ants with no food", g.Colony().TotalSpawned)
	}
}

func TestLifespanDeathsEmptyColony(t *testing.T) {
	resetDefaults()
	cfg := config.Cfg()
	cfg.Ants.MaxLifespan = 0.05 // A few ticks
	cfg.Colony.InitialFood = 0  // Nothing to respawn with
	cfg.Food.InitialSources = 0
	cfg.Derived.MaxLifespanTicks = 3

	g := newHeadlessGame(t, 42)

	for i := 0; i < 20; i++ {
		g.UpdateHeadless()
	}

	if g.Population() != 0 {
		t.Errorf("expected all ants dead of old age, got %d", g.Population())
	}
}

func TestSnapshotRestoreRebuildsState(t *testing.T) {
	resetDefaults()
	g := newHeadlessGame(t, 42)
	for i := 0; i < 400; i++ {
		g.UpdateHeadless()
	}

	snap := g.createSnapshot(nil)
	path, err := telemetry.SaveSnapshot(snap, t.TempDir())
	if err != nil {
		t.Fatalf("saving snapshot: %v", err)
	}

	restored, err := NewGameWithOptions(Options{
		Seed:         999, // Overridden by the snapshot's recorded seed
		Headless:     true,
		SnapshotPath: path,
	})
	if err != nil {
		t.Fatalf("restoring snapshot: %v", err)
	}
	t.Cleanup(restored.Unload)

	if restored.Tick() != g.Tick() {
		t.Errorf("tick %d, want %d", restored.Tick(), g.Tick())
	}
	if restored.Population() != g.Population() {
		t.Errorf("population %d, want %d", restored.Population(), g.Population())
	}
	if restored.Colony().Level != g.Colony().Level {
		t.Errorf("level %d, want %d", restored.Colony().Level, g.Colony().Level)
	}
	if restored.Colony().FoodStored != g.Colony().FoodStored {
		t.Errorf("food %f, want %f", restored.Colony().FoodStored, g.Colony().FoodStored)
	}
	if restored.Field().Count() != g.Field().Count() {
		t.Errorf("deposits %d, want %d", restored.Field().Count(), g.Field().Count())
	}

	// A restored game keeps simulating.
	restored.UpdateHeadless()
	if restored.Tick() != g.Tick()+1 {
		t.Errorf("restored game did not advance: tick %d", restored.Tick())
	}
}

func TestStatsCallbackFires(t *testing.T) {
	resetDefaults()

	var windows []telemetry.WindowStats
	g, err := NewGameWithOptions(Options{
		Seed:           42,
		Headless:       true,
		StatsWindowSec: 1.0,
		StatsCallback: func(s telemetry.WindowStats) {
			windows = append(windows, s)
		},
	})
	if err != nil {
		t.Fatalf("creating game: %v", err)
	}
	t.Cleanup(g.Unload)

	// 3 sim-seconds at a 1 second window.
	for i := 0; i < 180; i++ {
		g.UpdateHeadless()
	}

	if len(windows) != 3 {
		t.Fatalf("expected 3 stats windows, got %d", len(windows))
	}

	// Population at window end must reconcile with the birth and death
	// events counted inside the window. The initial population is born
	// during construction, inside the first window.
	count := 0
	for i, w := range windows {
		count += w.Births - w.Deaths
		if w.AntCount != count {
			t.Errorf("window %d: ant count %d does not match running total %d",
				i, w.AntCount, count)
		}
	}
	if windows[1].WindowStartTick != windows[0].WindowEndTick {
		t.Errorf("window 1 starts at %d, previous ended at %d",
			windows[1].WindowStartTick, windows[0].WindowEndTick)
	}
}
