package renderer

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/phiberoptik112/digital-ant-farm/camera"
	"github.com/phiberoptik112/digital-ant-farm/pheromone"
)

// GroundOverlay renders the substrate as a tinted cell texture. The
// texture re-uploads only when the ground version moves, which is once
// per drift interval, not per frame.
type GroundOverlay struct {
	ground *pheromone.Ground

	tex         rl.Texture2D
	texVersion  uint64
	pixels      []color.RGBA
	initialized bool
}

// NewGroundOverlay creates the overlay for a ground grid.
func NewGroundOverlay(ground *pheromone.Ground) *GroundOverlay {
	return &GroundOverlay{ground: ground}
}

// init creates the texture (must run after the raylib window exists).
func (o *GroundOverlay) init() {
	cols := o.ground.Cols()
	rows := o.ground.Rows()

	img := rl.GenImageColor(cols, rows, rl.Black)
	o.tex = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	rl.SetTextureFilter(o.tex, rl.FilterBilinear)

	o.pixels = make([]color.RGBA, cols*rows)
	o.upload()
	o.initialized = true
}

// upload tints each cell by its moisture and temperature and pushes
// the pixel buffer to the GPU.
func (o *GroundOverlay) upload() {
	cells := o.ground.Cells()
	for i := range cells {
		c := &cells[i]
		o.pixels[i] = cellColor(c)
	}
	rl.UpdateTexture(o.tex, o.pixels)
	o.texVersion = o.ground.Version()
}

// cellColor maps soil properties to an earthy tint. Wet cells darken
// toward blue-brown, hot cells push amber, rough cells vary the value.
func cellColor(c *pheromone.GroundCell) color.RGBA {
	value := 0.85 + 0.3*c.Roughness

	r := (95 + 70*c.Temperature - 35*c.Moisture) * value
	g := (78 + 30*c.Temperature - 22*c.Moisture) * value
	b := (52 + 48*c.Moisture) * value

	return color.RGBA{R: clampByte(r), G: clampByte(g), B: clampByte(b), A: 255}
}

func clampByte(v float32) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// Draw renders the overlay under the world through the camera.
func (o *GroundOverlay) Draw(cam *camera.Camera) {
	if !o.initialized {
		o.init()
	}
	if o.ground.Version() != o.texVersion {
		o.upload()
	}

	worldW := float32(o.ground.Cols()) * o.ground.CellSize()
	worldH := float32(o.ground.Rows()) * o.ground.CellSize()

	sx0, sy0 := cam.WorldToScreen(0, 0)
	sx1, sy1 := cam.WorldToScreen(worldW, worldH)

	src := rl.Rectangle{Width: float32(o.ground.Cols()), Height: float32(o.ground.Rows())}
	dst := rl.Rectangle{X: sx0, Y: sy0, Width: sx1 - sx0, Height: sy1 - sy0}
	rl.DrawTexturePro(o.tex, src, dst, rl.Vector2{}, 0, rl.White)
}

// Unload frees the texture.
func (o *GroundOverlay) Unload() {
	if o.initialized {
		rl.UnloadTexture(o.tex)
		o.initialized = false
	}
}
