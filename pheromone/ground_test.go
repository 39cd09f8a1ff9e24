package pheromone

import (
	"math"
	"testing"

	"github.com/phiberoptik112/digital-ant-farm/config"
)

func TestGroundPropertiesInRange(t *testing.T) {
	resetDefaults()
	g := NewGround(800, 600, 42)

	for i, c := range g.Cells() {
		if c.Moisture < 0.3-1e-3 || c.Moisture > 0.8+1e-3 {
			t.Fatalf("cell %d moisture %f outside [0.3, 0.8]", i, c.Moisture)
		}
		if c.Temperature < 0.6-1e-3 || c.Temperature > 1.0+1e-3 {
			t.Fatalf("cell %d temperature %f outside [0.6, 1.0]", i, c.Temperature)
		}
		if c.Porosity < 0.2-1e-3 || c.Porosity > 0.7+1e-3 {
			t.Fatalf("cell %d porosity %f outside [0.2, 0.7]", i, c.Porosity)
		}
		if c.Roughness < 0.1-1e-3 || c.Roughness > 0.9+1e-3 {
			t.Fatalf("cell %d roughness %f outside [0.1, 0.9]", i, c.Roughness)
		}
	}
}

func TestGroundDriftStaysBounded(t *testing.T) {
	resetDefaults()
	g := NewGround(400, 300, 42)

	porosityBefore := make([]float32, len(g.Cells()))
	for i, c := range g.Cells() {
		porosityBefore[i] = c.Porosity
	}

	interval := config.Cfg().Derived.DriftIntervalTicks
	for tick := int32(1); tick <= interval*10; tick++ {
		g.Step(tick)
	}

	if g.Version() != 10 {
		t.Errorf("expected 10 drift passes, got %d", g.Version())
	}
	for i, c := range g.Cells() {
		if c.Moisture < 0.1 || c.Moisture > 1.0 {
			t.Fatalf("cell %d moisture drifted to %f outside [0.1, 1.0]", i, c.Moisture)
		}
		if c.Temperature < 0.5 || c.Temperature > 1.0 {
			t.Fatalf("cell %d temperature drifted to %f outside [0.5, 1.0]", i, c.Temperature)
		}
		if c.Porosity != porosityBefore[i] {
			t.Fatalf("cell %d porosity changed from %f to %f", i, porosityBefore[i], c.Porosity)
		}
	}
}

func TestGroundVersionTracksDriftInterval(t *testing.T) {
	resetDefaults()
	g := NewGround(400, 300, 42)

	interval := config.Cfg().Derived.DriftIntervalTicks
	for tick := int32(1); tick < interval; tick++ {
		g.Step(tick)
	}
	if g.Version() != 0 {
		t.Fatalf("expected no drift before the interval, got version %d", g.Version())
	}
	g.Step(interval)
	if g.Version() != 1 {
		t.Errorf("expected drift at the interval tick, got version %d", g.Version())
	}
}

func TestGroundDeterministicBySeed(t *testing.T) {
	resetDefaults()
	a := NewGround(400, 300, 42)
	b := NewGround(400, 300, 42)
	c := NewGround(400, 300, 43)

	for i := range a.Cells() {
		if a.Cells()[i] != b.Cells()[i] {
			t.Fatalf("cell %d differs between identical seeds", i)
		}
	}

	diffs := 0
	for i := range a.Cells() {
		if a.Cells()[i] != c.Cells()[i] {
			diffs++
		}
	}
	if diffs == 0 {
		t.Error("expected different seeds to generate different ground")
	}
}

func TestDecayMultiplierBounded(t *testing.T) {
	resetDefaults()
	g := NewGround(800, 600, 42)

	lo := float32(config.Cfg().Ground.MinMultiplier)
	hi := float32(config.Cfg().Ground.MaxMultiplier)

	// Including out-of-bounds positions, which clamp to border cells.
	points := [][2]float32{
		{0, 0}, {400, 300}, {799, 599}, {-50, -50}, {900, 700}, {123, 456},
	}
	for row := 0; row < g.Rows(); row++ {
		for col := 0; col < g.Cols(); col++ {
			points = append(points, [2]float32{
				float32(col)*g.CellSize() + 1,
				float32(row)*g.CellSize() + 1,
			})
		}
	}
	for _, p := range points {
		m := g.DecayMultiplier(p[0], p[1])
		if m < lo || m > hi {
			t.Fatalf("multiplier %f at (%f, %f) outside [%f, %f]", m, p[0], p[1], lo, hi)
		}
	}
}

func TestDecayMultiplierTracksCellProperties(t *testing.T) {
	resetDefaults()
	g := NewGround(800, 600, 42)

	c := g.CellAt(100, 100)

	c.Moisture = 0.1
	dry := g.DecayMultiplier(100, 100)
	c.Moisture = 1.0
	wet := g.DecayMultiplier(100, 100)
	if wet >= dry {
		t.Errorf("expected wet ground to slow decay, dry=%f wet=%f", dry, wet)
	}

	c.Temperature = 0.5
	cool := g.DecayMultiplier(100, 100)
	c.Temperature = 1.0
	hot := g.DecayMultiplier(100, 100)
	if hot <= cool {
		t.Errorf("expected hot ground to speed decay, cool=%f hot=%f", cool, hot)
	}
}

func TestGroundCellLookupClamps(t *testing.T) {
	resetDefaults()
	g := NewGround(400, 300, 42)

	if got, want := g.CellAt(-10, -10), &g.Cells()[0]; got != want {
		t.Error("expected negative positions to clamp to the first cell")
	}
	if got, want := g.CellAt(4000, 3000), &g.Cells()[len(g.Cells())-1]; got != want {
		t.Error("expected far positions to clamp to the last cell")
	}

	if math.Abs(float64(g.CellSize()-15)) > 1e-6 {
		t.Errorf("expected configured cell size 15, got %f", g.CellSize())
	}
}
