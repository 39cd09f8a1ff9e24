package game

import (
	"math"
	"testing"
)

func TestWanderNoiseDeterministic(t *testing.T) {
	if wanderNoise(42, 100) != wanderNoise(42, 100) {
		t.Error("same ant and tick must produce the same noise")
	}
	if wanderNoise(42, 100) == wanderNoise(43, 100) &&
		wanderNoise(42, 101) == wanderNoise(42, 100) {
		t.Error("noise should vary across ants and ticks")
	}
}

func TestWanderNoiseBoundsAndSpread(t *testing.T) {
	var lo, hi float32 = 1, -1
	for tick := int32(0); tick < 1000; tick++ {
		v := wanderNoise(7, tick)
		if v < -1 || v >= 1 {
			t.Fatalf("noise %f outside [-1, 1) at tick %d", v, tick)
		}
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if lo > -0.5 || hi < 0.5 {
		t.Errorf("noise barely varies: range [%f, %f]", lo, hi)
	}
}

func TestNormalizeAngleWraps(t *testing.T) {
	cases := []struct {
		in, want float32
	}{
		{1.0, 1.0},
		{math.Pi + 0.5, -math.Pi + 0.5},
		{-math.Pi - 0.5, math.Pi - 0.5},
	}
	for _, tc := range cases {
		if got := normalizeAngle(tc.in); absf(got-tc.want) > 1e-5 {
			t.Errorf("normalizeAngle(%f) = %f, want %f", tc.in, got, tc.want)
		}
	}
}

func TestClamp32(t *testing.T) {
	if got := clamp32(5, 0, 1); got != 1 {
		t.Errorf("clamp32(5,0,1) = %f", got)
	}
	if got := clamp32(-5, 0, 1); got != 0 {
		t.Errorf("clamp32(-5,0,1) = %f", got)
	}
	if got := clamp32(0.5, 0, 1); got != 0.5 {
		t.Errorf("clamp32(0.5,0,1) = %f", got)
	}
}

func TestFastTrigTracksStdlib(t *testing.T) {
	for a := -math.Pi; a <= math.Pi; a += 0.01 {
		x := float32(a)
		if diff := math.Abs(float64(fastSin(x)) - math.Sin(a)); diff > 0.005 {
			t.Fatalf("fastSin(%f) off by %f", a, diff)
		}
		if diff := math.Abs(float64(fastCos(x)) - math.Cos(a)); diff > 0.005 {
			t.Fatalf("fastCos(%f) off by %f", a, diff)
		}
	}
}

func TestFastSqrt(t *testing.T) {
	if fastSqrt(0) != 0 {
		t.Errorf("fastSqrt(0) = %f", fastSqrt(0))
	}
	if fastSqrt(-4) != 0 {
		t.Errorf("fastSqrt(-4) = %f", fastSqrt(-4))
	}
	for _, v := range []float64{0.01, 1, 4, 100, 1600, 250000} {
		got := float64(fastSqrt(float32(v)))
		want := math.Sqrt(v)
		if math.Abs(got-want)/want > 0.005 {
			t.Errorf("fastSqrt(%f) = %f, want ~%f", v, got, want)
		}
	}
}

func TestEdgeRepulsionPushesInward(t *testing.T) {
	// Heading straight at the left wall from inside the margin.
	dx, dy := addEdgeRepulsion(5, 300, -1, 0, 25, 800, 600)
	if dx <= 0 {
		t.Errorf("expected net push away from left wall, got dx=%f", dx)
	}
	if dy != 0 {
		t.Errorf("expected no vertical push, got dy=%f", dy)
	}

	// Same at the bottom wall.
	dx, dy = addEdgeRepulsion(400, 598, 0, 1, 25, 800, 600)
	if dy >= 0 {
		t.Errorf("expected net push away from bottom wall, got dy=%f", dy)
	}
	_ = dx
}

func TestEdgeRepulsionRampsWithDepth(t *testing.T) {
	// The push grows as the ant gets closer to the wall.
	shallowX, _ := addEdgeRepulsion(20, 300, 0, 1, 25, 800, 600)
	deepX, _ := addEdgeRepulsion(2, 300, 0, 1, 25, 800, 600)
	if deepX <= shallowX {
		t.Errorf("expected stronger push deeper in margin: %f vs %f", deepX, shallowX)
	}
}

func TestEdgeRepulsionInactiveInInterior(t *testing.T) {
	dx, dy := addEdgeRepulsion(400, 300, 3, 4, 25, 800, 600)
	// The primary direction is normalized but otherwise untouched.
	if absf(dx-0.6) > 0.01 || absf(dy-0.8) > 0.01 {
		t.Errorf("interior direction should just normalize: got (%f, %f)", dx, dy)
	}
}

func TestEdgeRepulsionCornerPushesBothAxes(t *testing.T) {
	dx, dy := addEdgeRepulsion(5, 5, 0, 0, 25, 800, 600)
	if dx <= 0 || dy <= 0 {
		t.Errorf("corner should push diagonally inward, got (%f, %f)", dx, dy)
	}
}
