package pheromone

import (
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/phiberoptik112/digital-ant-farm/config"
)

// GroundCell holds the ambient properties of one patch of ground.
// Moisture and temperature drift over time; porosity and roughness are
// fixed at generation.
type GroundCell struct {
	Moisture    float32 // 0.1..1.0, wet ground preserves deposits
	Temperature float32 // 0.5..1.0, hot ground evaporates them
	Porosity    float32 // 0.2..0.7, absorbent ground drains them
	Roughness   float32 // 0.1..0.9, display only
}

// Ground models the substrate under the field as a coarse cell grid.
// Cells modulate deposit decay through DecayMultiplier and drift
// slowly so the map stays alive. Ground never mutates the field; the
// field reads it.
type Ground struct {
	cells    []GroundCell
	cols     int
	rows     int
	cellSize float32

	rng        *rand.Rand
	driftTicks int32
	version    uint64
}

// NewGround generates a ground grid covering the world rectangle.
// Layered simplex noise keeps neighboring cells correlated instead of
// white-noise speckle. A zero seed picks a random one.
func NewGround(worldW, worldH float32, seed int64) *Ground {
	if seed == 0 {
		seed = rand.Int63()
	}
	cfg := config.Cfg()
	cellSize := float32(cfg.Ground.CellSize)

	g := &Ground{
		cols:       int(worldW/cellSize) + 1,
		rows:       int(worldH/cellSize) + 1,
		cellSize:   cellSize,
		rng:        rand.New(rand.NewSource(seed)),
		driftTicks: cfg.Derived.DriftIntervalTicks,
	}
	g.cells = make([]GroundCell, g.cols*g.rows)

	// Independent noise layers per property.
	moistureNoise := opensimplex.NewNormalized(seed)
	temperatureNoise := opensimplex.NewNormalized(seed + 1)
	porosityNoise := opensimplex.NewNormalized(seed + 2)
	roughnessNoise := opensimplex.NewNormalized(seed + 3)

	for row := 0; row < g.rows; row++ {
		for col := 0; col < g.cols; col++ {
			x, y := float64(col), float64(row)
			c := &g.cells[row*g.cols+col]
			c.Moisture = 0.3 + 0.5*float32(octaveNoise(moistureNoise, x, y, 3, 0.08, 0.5))
			c.Temperature = 0.6 + 0.4*float32(octaveNoise(temperatureNoise, x, y, 3, 0.05, 0.5))
			c.Porosity = 0.2 + 0.5*float32(octaveNoise(porosityNoise, x, y, 3, 0.08, 0.5))
			c.Roughness = 0.1 + 0.8*float32(octaveNoise(roughnessNoise, x, y, 2, 0.12, 0.5))
		}
	}
	return g
}

// Step drifts moisture and temperature once per drift interval.
// Porosity is a property of the soil and never changes.
func (g *Ground) Step(tick int32) {
	if g.driftTicks <= 0 || tick%g.driftTicks != 0 {
		return
	}
	gc := &config.Cfg().Ground
	moistureDrift := float32(gc.MoistureDrift)
	temperatureDrift := float32(gc.TemperatureDrift)

	for i := range g.cells {
		c := &g.cells[i]
		c.Moisture = clampFloat(c.Moisture+(g.rng.Float32()*2-1)*moistureDrift, 0.1, 1.0)
		c.Temperature = clampFloat(c.Temperature+(g.rng.Float32()*2-1)*temperatureDrift, 0.5, 1.0)
	}
	g.version++
}

// DecayMultiplier returns the bounded environmental decay factor at a
// world position.
func (g *Ground) DecayMultiplier(x, y float32) float32 {
	c := &g.cells[g.cellIndex(x, y)]
	m := (1 - c.Moisture*0.3) * (0.8 + c.Temperature*0.4) * (1 - c.Porosity*0.2)
	gc := &config.Cfg().Ground
	return clampFloat(m, float32(gc.MinMultiplier), float32(gc.MaxMultiplier))
}

// CellAt returns the cell containing a world position. Out-of-bounds
// positions clamp to the border cells, same as the spatial index.
func (g *Ground) CellAt(x, y float32) *GroundCell {
	return &g.cells[g.cellIndex(x, y)]
}

func (g *Ground) cellIndex(x, y float32) int {
	col := int(x / g.cellSize)
	row := int(y / g.cellSize)
	if col < 0 {
		col = 0
	} else if col >= g.cols {
		col = g.cols - 1
	}
	if row < 0 {
		row = 0
	} else if row >= g.rows {
		row = g.rows - 1
	}
	return row*g.cols + col
}

// Cells returns the backing cell slice, row-major. Valid for the life
// of the ground.
func (g *Ground) Cells() []GroundCell {
	return g.cells
}

func (g *Ground) Cols() int         { return g.cols }
func (g *Ground) Rows() int         { return g.rows }
func (g *Ground) CellSize() float32 { return g.cellSize }

// Version increments on every drift pass. Renderers cache the ground
// overlay and redraw only when the version moves.
func (g *Ground) Version() uint64 {
	return g.version
}

// octaveNoise layers a few noise frequencies for natural variation.
func octaveNoise(n opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0
	for i := 0; i < octaves; i++ {
		total += n.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}
	return total / maxVal
}
