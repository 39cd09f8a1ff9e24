package game

import (
	"math"
	"math/rand"
	"testing"

	"github.com/phiberoptik112/digital-ant-farm/config"
)

func testFoodSystem(sources ...FoodSource) *foodSystem {
	return &foodSystem{
		sources: sources,
		rng:     rand.New(rand.NewSource(7)),
		worldW:  800,
		worldH:  600,
	}
}

func TestGenerateHonorsSpacingAndMargin(t *testing.T) {
	resetDefaults()
	fcfg := &config.Cfg().Food

	fs := newFoodSystem(rand.New(rand.NewSource(42)), 800, 600)

	if fs.Count() != fcfg.InitialSources {
		t.Fatalf("expected %d sources, got %d", fcfg.InitialSources, fs.Count())
	}

	margin := float32(fcfg.EdgeMargin)
	minDist := float32(fcfg.MinDistance)
	for i := 0; i < fs.Count(); i++ {
		s := fs.Source(i)
		if s.X < margin || s.X > 800-margin || s.Y < margin || s.Y > 600-margin {
			t.Errorf("source %d at (%f, %f) violates edge margin", i, s.X, s.Y)
		}
		if s.Amount < float32(fcfg.AmountMin) || s.Amount > float32(fcfg.AmountMax) {
			t.Errorf("source %d amount %f outside configured range", i, s.Amount)
		}
		if s.Amount != s.Capacity {
			t.Errorf("source %d should start full: %f/%f", i, s.Amount, s.Capacity)
		}
		for j := i + 1; j < fs.Count(); j++ {
			o := fs.Source(j)
			dx := float64(s.X - o.X)
			dy := float64(s.Y - o.Y)
			if dist := math.Sqrt(dx*dx + dy*dy); dist < float64(minDist) {
				t.Errorf("sources %d and %d only %f apart, want >= %f", i, j, dist, minDist)
			}
		}
	}
}

func TestGenerateRespectsMaxSources(t *testing.T) {
	resetDefaults()
	fs := newFoodSystem(rand.New(rand.NewSource(42)), 800, 600)

	fs.generate(100)
	if fs.Count() != config.Cfg().Food.MaxSources {
		t.Errorf("expected cap at %d sources, got %d", config.Cfg().Food.MaxSources, fs.Count())
	}
}

func TestHarvestArmsRegenCooldown(t *testing.T) {
	resetDefaults()
	fs := testFoodSystem(FoodSource{X: 100, Y: 100, Amount: 5, Capacity: 5, RegenRate: 10, Radius: 10})

	if took := fs.Harvest(0, 3); took != 3 {
		t.Fatalf("expected 3 taken, got %f", took)
	}
	if fs.Source(0).Depleted {
		t.Fatal("source with 2 left should not be depleted")
	}

	// Draining the rest closes the source and arms the cooldown.
	if took := fs.Harvest(0, 10); took != 2 {
		t.Fatalf("expected remaining 2 taken, got %f", took)
	}
	s := fs.Source(0)
	if !s.Depleted {
		t.Fatal("drained source should be depleted")
	}
	if s.RegenDelay != int32(config.Cfg().Food.RegenCooldown) {
		t.Errorf("expected cooldown %d, got %d", config.Cfg().Food.RegenCooldown, s.RegenDelay)
	}

	// Depleted sources yield nothing.
	if took := fs.Harvest(0, 1); took != 0 {
		t.Errorf("expected 0 from depleted source, got %f", took)
	}
}

func TestHarvestRejectsBadInput(t *testing.T) {
	resetDefaults()
	fs := testFoodSystem(FoodSource{X: 100, Y: 100, Amount: 5, Capacity: 5})

	if took := fs.Harvest(-1, 1); took != 0 {
		t.Errorf("negative index should yield 0, got %f", took)
	}
	if took := fs.Harvest(5, 1); took != 0 {
		t.Errorf("out of range index should yield 0, got %f", took)
	}
	if took := fs.Harvest(0, -2); took != 0 {
		t.Errorf("negative want should yield 0, got %f", took)
	}
}

func TestStepRefillsAndReopensAtFull(t *testing.T) {
	resetDefaults()
	fs := testFoodSystem(FoodSource{
		X: 100, Y: 100, Amount: 0, Capacity: 5,
		RegenRate: 10, Radius: 10, RegenDelay: 2, Depleted: true,
	})

	// Two ticks of cooldown pass without refilling.
	if n := fs.Step(1.0); n != 0 {
		t.Fatalf("reopened during cooldown: %d", n)
	}
	if n := fs.Step(1.0); n != 0 {
		t.Fatalf("reopened during cooldown: %d", n)
	}
	if fs.Source(0).Amount != 0 {
		t.Fatalf("refilled during cooldown: %f", fs.Source(0).Amount)
	}

	// One second at 10/s overshoots capacity 5; the source clamps and reopens.
	if n := fs.Step(1.0); n != 1 {
		t.Fatalf("expected 1 reopen, got %d", n)
	}
	s := fs.Source(0)
	if s.Depleted {
		t.Error("reopened source still flagged depleted")
	}
	if s.Amount != s.Capacity {
		t.Errorf("expected refill clamped to capacity %f, got %f", s.Capacity, s.Amount)
	}
}

func TestStepRefillsGradually(t *testing.T) {
	resetDefaults()
	fs := testFoodSystem(FoodSource{
		X: 100, Y: 100, Amount: 0, Capacity: 100,
		RegenRate: 10, Radius: 10, Depleted: true,
	})

	fs.Step(0.5)
	s := fs.Source(0)
	if math.Abs(float64(s.Amount-5)) > 1e-4 {
		t.Errorf("expected 5 units after half a second, got %f", s.Amount)
	}
	if !s.Depleted {
		t.Error("partially refilled source should stay closed")
	}
}

func TestNearestSkipsDepleted(t *testing.T) {
	resetDefaults()
	fs := testFoodSystem(
		FoodSource{X: 110, Y: 100, Amount: 0, Capacity: 5, Depleted: true},
		FoodSource{X: 150, Y: 100, Amount: 5, Capacity: 5},
	)

	if got := fs.Nearest(100, 100, 200); got != 1 {
		t.Errorf("expected nearest open source 1, got %d", got)
	}
	if got := fs.Nearest(100, 100, 20); got != -1 {
		t.Errorf("expected -1 outside range, got %d", got)
	}
	if fs.ActiveCount() != 1 {
		t.Errorf("expected 1 active source, got %d", fs.ActiveCount())
	}
}

func TestVisualRadiusScalesWithAmount(t *testing.T) {
	resetDefaults()
	full := FoodSource{Amount: 100, Capacity: 100, Radius: 10}
	half := FoodSource{Amount: 50, Capacity: 100, Radius: 10}
	empty := FoodSource{Depleted: true, Capacity: 100, Radius: 10}

	if full.VisualRadius() != 10 {
		t.Errorf("full source radius %f, want 10", full.VisualRadius())
	}
	if r := half.VisualRadius(); r <= minFoodRadius || r >= 10 {
		t.Errorf("half source radius %f outside (%f, 10)", r, minFoodRadius)
	}
	if empty.VisualRadius() != 0 {
		t.Errorf("depleted source radius %f, want 0", empty.VisualRadius())
	}
}

func TestFoodRecordsRestoreRoundtrip(t *testing.T) {
	resetDefaults()
	fs := testFoodSystem(
		FoodSource{X: 100, Y: 100, Amount: 30, Capacity: 50, RegenRate: 10, Radius: 10},
		FoodSource{X: 300, Y: 200, Amount: 0, Capacity: 80, RegenRate: 10, Radius: 10, RegenDelay: 120, Depleted: true},
	)

	records := fs.records()
	fresh := testFoodSystem()
	fresh.restore(records)

	if fresh.Count() != 2 {
		t.Fatalf("expected 2 restored sources, got %d", fresh.Count())
	}
	a := fresh.Source(0)
	if a.X != 100 || a.Amount != 30 || a.Capacity != 50 || a.Depleted {
		t.Errorf("source 0 not restored faithfully: %+v", *a)
	}
	b := fresh.Source(1)
	if !b.Depleted || b.RegenDelay != 120 {
		t.Errorf("depleted state not restored: %+v", *b)
	}
	if fresh.TotalFood() != 30 {
		t.Errorf("expected 30 total food, got %f", fresh.TotalFood())
	}
}
