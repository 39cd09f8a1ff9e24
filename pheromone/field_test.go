package pheromone

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/phiberoptik112/digital-ant-farm/config"
)

// resetDefaults reloads the embedded defaults so config mutations in
// one test do not leak into the next.
func resetDefaults() {
	config.MustInit("")
}

func mustDeposit(t *testing.T, f *Field, x, y float32, kind Kind, strength, decay, radius float32, opts Opts) uint64 {
	t.Helper()
	id, err := f.Deposit(x, y, kind, strength, decay, radius, opts)
	if err != nil {
		t.Fatalf("deposit failed: %v", err)
	}
	return id
}

// ---------- creation and validation ----------

func TestDepositRejectsNegativeParams(t *testing.T) {
	resetDefaults()
	f := NewField(800, 600, nil)

	cases := []struct {
		name     string
		strength float32
		decay    float32
		radius   float32
	}{
		{"negative strength", -1, 0.5, 25},
		{"negative decay", 40, -0.5, 25},
		{"negative radius", 40, 0.5, -25},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.Deposit(100, 100, KindFoodTrail, tc.strength, tc.decay, tc.radius, Opts{})
			if !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("expected ErrInvalidParameter, got %v", err)
			}
		})
	}
	if f.Count() != 0 {
		t.Errorf("expected no deposits after rejected calls, got %d", f.Count())
	}
}

func TestDepositDefaultUsesKindParams(t *testing.T) {
	resetDefaults()
	f := NewField(800, 600, nil)

	homeID, err := f.DepositDefault(100, 100, KindHomeTrail)
	if err != nil {
		t.Fatalf("deposit failed: %v", err)
	}
	home := f.Get(homeID)
	if math.Abs(float64(home.Strength-20)) > 1e-4 {
		t.Errorf("expected home trail strength 20, got %f", home.Strength)
	}
	if math.Abs(float64(home.DecayRate-0.3)) > 1e-4 {
		t.Errorf("expected home trail decay 0.3, got %f", home.DecayRate)
	}
	if math.Abs(float64(home.Radius-15)) > 1e-4 {
		t.Errorf("expected home trail radius 15, got %f", home.Radius)
	}
	if home.Spread != SpreadDisabled {
		t.Errorf("home trails never spread, got state %v", home.Spread)
	}

	foodID, err := f.DepositDefault(200, 200, KindFoodTrail)
	if err != nil {
		t.Fatalf("deposit failed: %v", err)
	}
	food := f.Get(foodID)
	if food.Spread != SpreadPending {
		t.Errorf("expected food trail pending spread, got state %v", food.Spread)
	}
	if food.SpreadAt != 120 {
		t.Errorf("expected spread eligibility at tick 120, got %d", food.SpreadAt)
	}
	if math.Abs(float64(food.SpreadRadius-50)) > 1e-3 {
		t.Errorf("expected spread circle radius 50, got %f", food.SpreadRadius)
	}
	if food.SpreadCount != 8 {
		t.Errorf("expected 8 secondaries, got %d", food.SpreadCount)
	}
	if food.Quality != 1 || food.UsageCount != 0 {
		t.Errorf("expected fresh deposit quality 1 usage 0, got %f %d", food.Quality, food.UsageCount)
	}
	if food.MaxStrength != food.Strength {
		t.Errorf("expected MaxStrength equal to creation strength, got %f vs %f", food.MaxStrength, food.Strength)
	}
}

func TestTickAndCreatedTick(t *testing.T) {
	resetDefaults()
	f := NewField(800, 600, nil)

	for i := 0; i < 5; i++ {
		f.Step()
	}
	if f.Tick() != 5 {
		t.Errorf("expected tick 5, got %d", f.Tick())
	}

	id := mustDeposit(t, f, 100, 100, KindFoodTrail, 40, 0, 25, Opts{})
	if got := f.Get(id).CreatedTick; got != 5 {
		t.Errorf("expected creation tick 5, got %d", got)
	}
}

// ---------- decay ----------

func TestDecayIsLinearAndRemovalIsExact(t *testing.T) {
	resetDefaults()
	f := NewField(800, 600, nil)

	// 40 strength at 0.5 per tick survives exactly 79 full ticks and
	// is gone on the 80th.
	id := mustDeposit(t, f, 400, 300, KindFoodTrail, 40, 0.5, 25, Opts{})

	for i := 0; i < 79; i++ {
		f.Step()
	}
	d := f.Get(id)
	if d == nil {
		t.Fatal("deposit expired early")
	}
	if math.Abs(float64(d.Strength-0.5)) > 1e-4 {
		t.Errorf("expected strength 0.5 after 79 ticks, got %f", d.Strength)
	}

	f.Step()
	if f.Count() != 0 {
		t.Fatalf("expected empty field after 80 ticks, got %d deposits", f.Count())
	}
	if f.Get(id) != nil {
		t.Error("expected expired deposit to be unreachable")
	}
	if got := f.Stats().Expired; got != 1 {
		t.Errorf("expected 1 expiry recorded, got %d", got)
	}
}

func TestDecayNeverGoesNegative(t *testing.T) {
	resetDefaults()
	f := NewField(800, 600, nil)

	// Decay larger than remaining strength clamps to zero on the
	// removal tick instead of undershooting.
	mustDeposit(t, f, 100, 100, KindFoodTrail, 1, 10, 25, Opts{})
	f.Step()
	if f.Count() != 0 {
		t.Fatal("expected deposit removed on first tick")
	}
	for _, d := range f.Deposits() {
		if d.Strength < 0 {
			t.Errorf("strength went negative: %f", d.Strength)
		}
	}
}

func TestGroundModulatesDecay(t *testing.T) {
	resetDefaults()
	ground := NewGround(800, 600, 42)
	f := NewField(800, 600, ground)

	const x, y = 123, 234
	id := mustDeposit(t, f, x, y, KindFoodTrail, 40, 0.5, 25, Opts{})
	mult := ground.DecayMultiplier(x, y)

	before := f.Get(id).Strength
	f.Step()
	lost := before - f.Get(id).Strength

	want := 0.5 * mult
	if math.Abs(float64(lost-want)) > 1e-3 {
		t.Errorf("expected per-tick loss %f at multiplier %f, got %f", want, mult, lost)
	}
}

// ---------- spreading ----------

func TestSpreadFiresOnceWithEightSecondaries(t *testing.T) {
	resetDefaults()
	f := NewField(800, 600, nil)

	id := mustDeposit(t, f, 400, 300, KindFoodTrail, 50, 0.05, 25, Opts{CanSpread: true})

	fired := -1
	for i := 1; i <= 130; i++ {
		f.Step()
		if f.Count() > 1 {
			fired = i
			break
		}
	}
	if fired != 120 {
		t.Fatalf("expected spread on tick 120, fired at %d", fired)
	}
	if f.Count() != 9 {
		t.Fatalf("expected originator plus 8 secondaries, got %d", f.Count())
	}

	children := 0
	for _, d := range f.Deposits() {
		if d.ID == id {
			continue
		}
		children++
		if d.Origin != id {
			t.Errorf("secondary %d has origin %d, want %d", d.ID, d.Origin, id)
		}
		if d.Kind != KindFoodTrail {
			t.Errorf("secondary %d has kind %v, want food trail", d.ID, d.Kind)
		}
		if d.Spread != SpreadDisabled {
			t.Errorf("secondary %d can spread, state %v", d.ID, d.Spread)
		}
		// Strength derives from creation strength, not decayed strength.
		if math.Abs(float64(d.Strength-20)) > 1e-3 {
			t.Errorf("secondary %d strength %f, want 20", d.ID, d.Strength)
		}
		if math.Abs(float64(d.Radius-20)) > 1e-3 {
			t.Errorf("secondary %d radius %f, want 20", d.ID, d.Radius)
		}
		dx := float64(d.X - 400)
		dy := float64(d.Y - 300)
		if dist := math.Sqrt(dx*dx + dy*dy); math.Abs(dist-50) > 1e-3 {
			t.Errorf("secondary %d at distance %f, want 50", d.ID, dist)
		}
	}
	if children != 8 {
		t.Errorf("expected 8 secondaries, got %d", children)
	}

	// Spreading never fires twice for the same deposit.
	for i := 0; i < 200; i++ {
		f.Step()
	}
	s := f.Stats()
	if s.SpreadFired != 1 {
		t.Errorf("expected exactly one spread event, got %d", s.SpreadFired)
	}
	if s.SpreadCreated != 8 {
		t.Errorf("expected 8 spread creations, got %d", s.SpreadCreated)
	}
}

func TestSpreadSkipsOutOfWorldPositions(t *testing.T) {
	resetDefaults()
	f := NewField(800, 600, nil)

	// Near the left edge: three of the eight circle positions fall
	// outside the world and are skipped, not clamped.
	mustDeposit(t, f, 10, 300, KindFoodTrail, 50, 0, 25, Opts{CanSpread: true})

	for i := 0; i < 121; i++ {
		f.Step()
	}
	if f.Count() != 6 {
		t.Fatalf("expected originator plus 5 in-bounds secondaries, got %d", f.Count())
	}
	for _, d := range f.Deposits() {
		if d.X < 0 || d.X >= 800 || d.Y < 0 || d.Y >= 600 {
			t.Errorf("deposit %d outside world at (%f, %f)", d.ID, d.X, d.Y)
		}
	}
}

func TestSpreadParksWhileDisabled(t *testing.T) {
	resetDefaults()
	config.Cfg().Spread.Enabled = false
	f := NewField(800, 600, nil)

	id := mustDeposit(t, f, 400, 300, KindFoodTrail, 50, 0, 25, Opts{CanSpread: true})

	for i := 0; i < 130; i++ {
		f.Step()
	}
	if got := f.Get(id).Spread; got != SpreadEligible {
		t.Fatalf("expected deposit parked eligible while spreading disabled, got %v", got)
	}
	if f.Count() != 1 {
		t.Fatalf("expected no secondaries while disabled, got %d deposits", f.Count())
	}

	// Re-enabling fires the parked deposit on the next step.
	config.Cfg().Spread.Enabled = true
	f.Step()
	if f.Count() != 9 {
		t.Errorf("expected 8 secondaries after re-enabling, got %d deposits", f.Count())
	}
	if got := f.Get(id).Spread; got != SpreadDone {
		t.Errorf("expected originator done, got %v", got)
	}
}

func TestRemovalAppliesBeforeSpread(t *testing.T) {
	resetDefaults()
	f := NewField(800, 600, nil)

	// Strength hits zero on the same tick eligibility arrives; the
	// removal wins and no secondaries appear.
	mustDeposit(t, f, 400, 300, KindFoodTrail, 60, 0.5, 25, Opts{CanSpread: true})

	for i := 0; i < 120; i++ {
		f.Step()
	}
	if f.Count() != 0 {
		t.Fatalf("expected field empty, got %d deposits", f.Count())
	}
	s := f.Stats()
	if s.SpreadFired != 0 || s.SpreadCreated != 0 {
		t.Errorf("expected no spread from a deposit removed the same tick, got fired=%d created=%d",
			s.SpreadFired, s.SpreadCreated)
	}
	if s.Expired != 1 {
		t.Errorf("expected 1 expiry, got %d", s.Expired)
	}
}

// ---------- sensing ----------

func TestSenseFindsHighestInfluence(t *testing.T) {
	resetDefaults()
	f := NewField(800, 600, nil)

	// Influence is strength scaled by proximity, so a strong deposit
	// slightly farther away beats a weak one nearby.
	strong := mustDeposit(t, f, 100, 110, KindFoodTrail, 10, 0, 25, Opts{})
	weak := mustDeposit(t, f, 100, 103, KindFoodTrail, 5, 0, 25, Opts{})

	m, ok := f.Sense(100, 100, KindFoodTrail, 50)
	if !ok {
		t.Fatal("expected a match")
	}
	if m.ID != strong {
		t.Errorf("expected strong deposit %d, got %d", strong, m.ID)
	}
	if math.Abs(float64(m.Influence-6)) > 1e-3 {
		t.Errorf("expected influence 6, got %f", m.Influence)
	}
	if math.Abs(float64(m.Distance-10)) > 1e-3 {
		t.Errorf("expected distance 10, got %f", m.Distance)
	}

	// A tight query range excludes the stronger deposit entirely.
	m, ok = f.Sense(100, 100, KindFoodTrail, 5)
	if !ok {
		t.Fatal("expected a match within short range")
	}
	if m.ID != weak {
		t.Errorf("expected near deposit %d within range 5, got %d", weak, m.ID)
	}
}

func TestSenseZeroBeyondInfluenceRadius(t *testing.T) {
	resetDefaults()
	f := NewField(800, 600, nil)

	mustDeposit(t, f, 200, 200, KindFoodTrail, 50, 0, 10, Opts{})

	// Within query range but outside the deposit's own radius.
	if _, ok := f.Sense(215, 200, KindFoodTrail, 50); ok {
		t.Error("expected no match beyond the influence radius")
	}
}

func TestSenseSeparatesKinds(t *testing.T) {
	resetDefaults()
	f := NewField(800, 600, nil)

	food := mustDeposit(t, f, 100, 100, KindFoodTrail, 40, 0, 25, Opts{})
	danger := mustDeposit(t, f, 102, 100, KindDanger, 60, 0, 30, Opts{})

	if m, ok := f.Sense(101, 100, KindFoodTrail, 50); !ok || m.ID != food {
		t.Errorf("expected food trail match %d, got %+v ok=%v", food, m, ok)
	}
	if m, ok := f.Sense(101, 100, KindDanger, 50); !ok || m.ID != danger {
		t.Errorf("expected danger match %d, got %+v ok=%v", danger, m, ok)
	}
}

func TestSenseNoMatchMutatesNothing(t *testing.T) {
	resetDefaults()
	f := NewField(800, 600, nil)

	if _, ok := f.Sense(400, 300, KindFoodTrail, 100); ok {
		t.Fatal("expected no match on empty field")
	}

	id := mustDeposit(t, f, 100, 100, KindFoodTrail, 40, 0, 25, Opts{})
	if _, ok := f.Sense(100, 100, KindDanger, 100); ok {
		t.Fatal("expected no danger match")
	}
	d := f.Get(id)
	if d.UsageCount != 0 || d.Quality != 1 || d.Strength != 40 {
		t.Errorf("sensing mutated the deposit: usage=%d quality=%f strength=%f",
			d.UsageCount, d.Quality, d.Strength)
	}
}

func TestDirectionPointsTowardStrongerSide(t *testing.T) {
	resetDefaults()
	f := NewField(800, 600, nil)

	mustDeposit(t, f, 80, 100, KindFoodTrail, 5, 0, 30, Opts{})
	mustDeposit(t, f, 120, 100, KindFoodTrail, 20, 0, 30, Opts{})

	dx, dy, ok := f.Direction(100, 100, KindFoodTrail, 50)
	if !ok {
		t.Fatal("expected a direction")
	}
	if dx <= 0.9 {
		t.Errorf("expected direction toward the stronger deposit, dx=%f", dx)
	}
	if math.Abs(float64(dy)) > 1e-3 {
		t.Errorf("expected no vertical pull, dy=%f", dy)
	}
	if length := math.Sqrt(float64(dx*dx + dy*dy)); math.Abs(length-1) > 1e-4 {
		t.Errorf("expected unit direction, length=%f", length)
	}

	if _, _, ok := f.Direction(700, 500, KindFoodTrail, 30); ok {
		t.Error("expected no direction far from any deposit")
	}
}

// ---------- usage and quality ----------

func TestMarkUsedReinforcementIsBounded(t *testing.T) {
	resetDefaults()
	f := NewField(800, 600, nil)

	id := mustDeposit(t, f, 100, 100, KindFoodTrail, 100, 0, 20, Opts{})

	for i := 0; i < 10; i++ {
		if !f.MarkUsed(id) {
			t.Fatal("expected MarkUsed to succeed on live deposit")
		}
	}
	d := f.Get(id)
	if d.UsageCount != 10 {
		t.Errorf("expected usage 10, got %d", d.UsageCount)
	}
	if math.Abs(float64(d.Quality-1.5)) > 1e-4 {
		t.Errorf("expected quality 1.5 after 10 uses, got %f", d.Quality)
	}
	// Boosts land on uses 3, 6, and 9: three compounded 10% bumps,
	// not one per use.
	if math.Abs(float64(d.Strength-133.1)) > 0.01 {
		t.Errorf("expected strength 133.1 after 10 uses, got %f", d.Strength)
	}

	for i := 0; i < 30; i++ {
		f.MarkUsed(id)
	}
	d = f.Get(id)
	if math.Abs(float64(d.Strength-150)) > 1e-3 {
		t.Errorf("expected strength capped at 150, got %f", d.Strength)
	}
	if math.Abs(float64(d.Quality-2)) > 1e-4 {
		t.Errorf("expected quality capped at 2, got %f", d.Quality)
	}
}

func TestQualitySlowsDecay(t *testing.T) {
	resetDefaults()
	f := NewField(800, 600, nil)

	expert := mustDeposit(t, f, 100, 100, KindFoodTrail, 40, 0.5, 25, Opts{})
	fresh := mustDeposit(t, f, 300, 300, KindFoodTrail, 40, 0.5, 25, Opts{})

	for i := 0; i < 20; i++ {
		f.MarkUsed(expert)
	}
	if q := f.Get(expert).Quality; math.Abs(float64(q-2)) > 1e-4 {
		t.Fatalf("expected quality 2 after 20 uses, got %f", q)
	}

	expertBefore := f.Get(expert).Strength
	freshBefore := f.Get(fresh).Strength
	f.Step()
	expertLost := expertBefore - f.Get(expert).Strength
	freshLost := freshBefore - f.Get(fresh).Strength

	// Quality 2 decays at the 0.3 floor, a fresh trail at full rate.
	if math.Abs(float64(expertLost-0.15)) > 1e-3 {
		t.Errorf("expected expert trail to lose 0.15, lost %f", expertLost)
	}
	if math.Abs(float64(freshLost-0.5)) > 1e-3 {
		t.Errorf("expected fresh trail to lose 0.5, lost %f", freshLost)
	}
}

func TestQualityRelaxesWhenUnused(t *testing.T) {
	resetDefaults()
	f := NewField(800, 600, nil)

	id := mustDeposit(t, f, 100, 100, KindFoodTrail, 40, 0, 25, Opts{})
	for i := 0; i < 10; i++ {
		f.MarkUsed(id)
	}

	// Inside the usage window quality holds.
	for i := 0; i < 600; i++ {
		f.Step()
	}
	if q := f.Get(id).Quality; math.Abs(float64(q-1.5)) > 1e-4 {
		t.Fatalf("expected quality held at 1.5 inside the window, got %f", q)
	}

	// Past the window it relaxes 1% per tick.
	for i := 0; i < 10; i++ {
		f.Step()
	}
	if q := f.Get(id).Quality; math.Abs(float64(q-1.3566)) > 5e-3 {
		t.Errorf("expected quality ~1.3566 after 10 relax ticks, got %f", q)
	}

	// Relaxation bottoms out at neutral, never below.
	for i := 0; i < 100; i++ {
		f.Step()
	}
	if q := f.Get(id).Quality; math.Abs(float64(q-1)) > 1e-6 {
		t.Errorf("expected quality settled at 1, got %f", q)
	}
}

func TestMarkUsedStaleIDReturnsFalse(t *testing.T) {
	resetDefaults()
	f := NewField(800, 600, nil)

	id := mustDeposit(t, f, 100, 100, KindFoodTrail, 1, 1, 25, Opts{})
	f.Step()
	if f.MarkUsed(id) {
		t.Error("expected MarkUsed to fail on expired deposit")
	}
	if f.MarkUsed(9999) {
		t.Error("expected MarkUsed to fail on unknown id")
	}
}

// ---------- capacity and invariants ----------

func TestSoftCapPrunesWeakestFirst(t *testing.T) {
	resetDefaults()
	config.Cfg().Field.MaxDeposits = 10
	f := NewField(800, 600, nil)

	for i := 1; i <= 15; i++ {
		mustDeposit(t, f, float32(i*50), 100, KindFoodTrail, float32(i), 0, 10, Opts{})
	}
	if f.Count() != 15 {
		t.Fatalf("expected 15 deposits before step, got %d", f.Count())
	}

	f.Step()
	if f.Count() != 10 {
		t.Fatalf("expected cap of 10 after step, got %d", f.Count())
	}
	for _, d := range f.Deposits() {
		if d.Strength < 6-1e-4 {
			t.Errorf("expected weakest deposits pruned, found survivor with strength %f", d.Strength)
		}
	}
	if got := f.Stats().Pruned; got != 5 {
		t.Errorf("expected 5 pruned, got %d", got)
	}
}

func TestLiveSetMatchesIndexUnderChurn(t *testing.T) {
	resetDefaults()
	config.Cfg().Field.MaxDeposits = 60
	f := NewField(800, 600, nil)
	rng := rand.New(rand.NewSource(7))

	cap32 := float32(config.Cfg().Field.ReinforcementCapMultiple)
	for tick := 0; tick < 600; tick++ {
		for j := 0; j < 2; j++ {
			x := rng.Float32() * 800
			y := rng.Float32() * 600
			kind := Kind(rng.Intn(KindCount))
			strength := 1 + rng.Float32()*20
			decay := 0.1 + rng.Float32()*0.5
			radius := 5 + rng.Float32()*20
			opts := Opts{CanSpread: rng.Float32() < 0.3}
			if _, err := f.Deposit(x, y, kind, strength, decay, radius, opts); err != nil {
				t.Fatalf("deposit failed: %v", err)
			}
		}
		if tick%5 == 0 {
			if m, ok := f.Sense(rng.Float32()*800, rng.Float32()*600, KindFoodTrail, 60); ok {
				f.MarkUsed(m.ID)
			}
		}

		f.Step()

		if f.grid.Len() != f.Count() {
			t.Fatalf("tick %d: index holds %d entries for %d deposits", tick, f.grid.Len(), f.Count())
		}
		if f.Count() > 60 {
			t.Fatalf("tick %d: cap violated with %d deposits", tick, f.Count())
		}
		for _, d := range f.Deposits() {
			if d.Strength < 0 {
				t.Fatalf("tick %d: deposit %d negative strength %f", tick, d.ID, d.Strength)
			}
			if d.Strength > d.MaxStrength*cap32*(1+1e-4) {
				t.Fatalf("tick %d: deposit %d strength %f exceeds bound %f",
					tick, d.ID, d.Strength, d.MaxStrength*cap32)
			}
		}
	}
}

func TestStrengthBoundedUnderHeavyUse(t *testing.T) {
	cases := []struct {
		strength float32
		decay    float32
	}{
		{10, 0.1},
		{50, 0.5},
		{50, 1.0},
		{100, 0.05},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("s%.0f_d%.2f", tc.strength, tc.decay), func(t *testing.T) {
			resetDefaults()
			f := NewField(800, 600, nil)
			id := mustDeposit(t, f, 400, 300, KindFoodTrail, tc.strength, tc.decay, 25, Opts{})
			bound := tc.strength * 1.5 * (1 + 1e-4)

			for tick := 0; tick < 300; tick++ {
				for j := 0; j < 3; j++ {
					f.MarkUsed(id)
				}
				f.Step()

				d := f.Get(id)
				if d == nil {
					return
				}
				if d.Strength > bound {
					t.Fatalf("tick %d: strength %f exceeds bound %f", tick, d.Strength, bound)
				}
			}
		})
	}
}

func TestClearEmptiesField(t *testing.T) {
	resetDefaults()
	f := NewField(800, 600, nil)

	for i := 0; i < 5; i++ {
		mustDeposit(t, f, float32(100+i*50), 200, KindFoodTrail, 40, 0.5, 25, Opts{})
	}
	f.Clear()

	if f.Count() != 0 {
		t.Errorf("expected empty field, got %d", f.Count())
	}
	if f.grid.Len() != 0 {
		t.Errorf("expected empty index, got %d", f.grid.Len())
	}
	if _, ok := f.Sense(200, 200, KindFoodTrail, 200); ok {
		t.Error("expected no match after clear")
	}
}

func TestStatsAggregates(t *testing.T) {
	resetDefaults()
	f := NewField(800, 600, nil)

	used := mustDeposit(t, f, 100, 100, KindFoodTrail, 40, 0, 25, Opts{})
	mustDeposit(t, f, 300, 100, KindFoodTrail, 10, 0, 25, Opts{})
	mustDeposit(t, f, 500, 100, KindDanger, 30, 0, 30, Opts{})

	for i := 0; i < 12; i++ {
		f.MarkUsed(used)
	}

	s := f.Stats()
	if s.Total != 3 {
		t.Errorf("expected total 3, got %d", s.Total)
	}
	if s.KindCounts[KindFoodTrail] != 2 || s.KindCounts[KindHomeTrail] != 0 || s.KindCounts[KindDanger] != 1 {
		t.Errorf("unexpected kind counts %v", s.KindCounts)
	}
	if s.TotalUsage != 12 {
		t.Errorf("expected total usage 12, got %d", s.TotalUsage)
	}
	if s.HighQuality != 1 {
		t.Errorf("expected 1 high-quality trail, got %d", s.HighQuality)
	}
	if math.Abs(float64(s.AvgQuality-1.2)) > 1e-3 {
		t.Errorf("expected average quality 1.2, got %f", s.AvgQuality)
	}
	// 40 boosted on uses 3, 6, 9, 12 plus the untouched 10 and 30.
	if math.Abs(float64(s.TotalStrength-98.564)) > 0.01 {
		t.Errorf("expected total strength ~98.564, got %f", s.TotalStrength)
	}
	if s.Created != 3 {
		t.Errorf("expected 3 created, got %d", s.Created)
	}
}

// ---------- benchmarks ----------

func BenchmarkFieldStep(b *testing.B) {
	config.MustInit("")
	f := NewField(1600, 1200, nil)
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 3000; i++ {
		x := rng.Float32() * 1600
		y := rng.Float32() * 1200
		f.Deposit(x, y, Kind(rng.Intn(KindCount)), 40, 0.001, 25, Opts{})
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f.Step()
	}
}

func BenchmarkFieldSense(b *testing.B) {
	config.MustInit("")
	f := NewField(1600, 1200, nil)
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 3000; i++ {
		x := rng.Float32() * 1600
		y := rng.Float32() * 1200
		f.Deposit(x, y, Kind(rng.Intn(KindCount)), 40, 0, 25, Opts{})
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x := float32((i * 29) % 1600)
		y := float32((i * 31) % 1200)
		f.Sense(x, y, KindFoodTrail, 50)
	}
}
