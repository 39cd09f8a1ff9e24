package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/phiberoptik112/digital-ant-farm/config"
)

const (
	tuningWidth  = 270
	tuningHeight = 470
)

// TuningPanel edits the live field parameters. Slider changes write
// straight into the shared config, so they apply to deposits created
// from that point on; existing deposits keep the values they were
// created with.
type TuningPanel struct {
	x, y    int32
	visible bool
	rend    *Renderer

	// Which kind the per-kind sliders edit.
	kind int
}

// NewTuningPanel creates the panel at a screen position, hidden.
func NewTuningPanel(x, y int32) *TuningPanel {
	return &TuningPanel{x: x, y: y, rend: NewRenderer()}
}

// Toggle shows or hides the panel.
func (p *TuningPanel) Toggle() {
	p.visible = !p.visible
}

// Visible reports whether the panel is shown.
func (p *TuningPanel) Visible() bool {
	return p.visible
}

// Contains reports whether a screen point lands on the visible panel.
func (p *TuningPanel) Contains(x, y float32) bool {
	if !p.visible {
		return false
	}
	return x >= float32(p.x) && x <= float32(p.x+tuningWidth) &&
		y >= float32(p.y) && y <= float32(p.y+tuningHeight)
}

// kindParams returns the config block the panel is editing.
func (p *TuningPanel) kindParams(cfg *config.Config) *config.KindParams {
	switch p.kind {
	case 1:
		return &cfg.Field.HomeTrail
	case 2:
		return &cfg.Field.Danger
	default:
		return &cfg.Field.FoodTrail
	}
}

// Draw renders the panel and applies slider edits.
func (p *TuningPanel) Draw() {
	if !p.visible {
		return
	}

	cfg := config.Cfg()
	x := p.x + 10
	y := p.y + 8

	p.rend.DrawPanel(p.x, p.y, tuningWidth, tuningHeight)
	y = p.rend.DrawSectionHeader(x, y, "FIELD TUNING [T]")
	y += 4

	// Kind selector
	names := [3]string{"Food", "Home", "Danger"}
	bw := float32(78)
	for i, name := range names {
		label := name
		if i == p.kind {
			label = "> " + name
		}
		if gui.Button(rl.Rectangle{X: float32(x) + float32(i)*(bw+4), Y: float32(y), Width: bw, Height: 22}, label) {
			p.kind = i
		}
	}
	y += 30

	kp := p.kindParams(cfg)
	kp.Strength = float64(p.slider(&y, "strength", float32(kp.Strength), 5, 120, "%.0f"))
	kp.DecayRate = float64(p.slider(&y, "decay rate", float32(kp.DecayRate), 0.05, 2.0, "%.2f"))
	kp.Radius = float64(p.slider(&y, "radius", float32(kp.Radius), 5, 60, "%.0f"))

	y += 6
	y = p.rend.DrawSectionHeader(x, y, "QUALITY")
	cfg.Field.QualityIncrement = float64(p.slider(&y, "increment", float32(cfg.Field.QualityIncrement), 0.01, 0.25, "%.2f"))
	cfg.Field.QualityCoeff = float64(p.slider(&y, "decay slow", float32(cfg.Field.QualityCoeff), 0.1, 1.0, "%.2f"))

	y += 6
	y = p.rend.DrawSectionHeader(x, y, "SPREAD")
	cfg.Spread.StrengthFactor = float64(p.slider(&y, "strength", float32(cfg.Spread.StrengthFactor), 0.1, 0.9, "%.2f"))
	cfg.Spread.Delay = float64(p.slider(&y, "delay s", float32(cfg.Spread.Delay), 0.5, 10, "%.1f"))
	cfg.Spread.Count = int(p.slider(&y, "count", float32(cfg.Spread.Count), 1, 6, "%.0f"))

	y += 6
	y = p.rend.DrawSectionHeader(x, y, "ANTS")
	cfg.Ants.HomeTrailPeriod = int(p.slider(&y, "trail ticks", float32(cfg.Ants.HomeTrailPeriod), 5, 120, "%.0f"))
}

// slider draws one labelled slider row and returns the edited value.
func (p *TuningPanel) slider(y *int32, label string, value, min, max float32, format string) float32 {
	x := p.x + 10
	t := p.rend.Theme

	rl.DrawText(label, x, *y, t.FontSize, t.LabelColor)
	*y += 14

	v := gui.SliderBar(
		rl.Rectangle{X: float32(x), Y: float32(*y), Width: tuningWidth - 80, Height: 16},
		"", "", value, min, max,
	)
	rl.DrawText(fmt.Sprintf(format, v), x+tuningWidth-64, *y+2, t.FontSize, t.ValueColor)
	*y += 22

	return v
}
