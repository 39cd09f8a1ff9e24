// Package inspector renders a reflection-driven detail panel for a
// selected simulation object. Fields annotate themselves with inspect
// struct tags; anything without a tag gets a widget chosen by type.
package inspector

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Panel dimensions
const (
	PanelWidth   = 250
	PanelPadding = 10
	HeaderHeight = 26
)

// Panel colors
var (
	ColorPanelBg     = rl.Color{R: 30, G: 30, B: 35, A: 240}
	ColorPanelHeader = rl.Color{R: 45, G: 45, B: 55, A: 255}
	ColorPanelBorder = rl.Color{R: 70, G: 70, B: 80, A: 255}
	ColorHeaderText  = rl.Color{R: 255, G: 255, B: 255, A: 255}
)

// Inspector shows the fields of whatever was last handed to SetTarget.
// The target is a value copy taken each frame, so the panel never
// holds pointers into simulation storage.
type Inspector struct {
	screenWidth  int32
	screenHeight int32

	title  string
	fields []Field
}

// NewInspector creates an inspector sized to the screen.
func NewInspector(screenWidth, screenHeight int32) *Inspector {
	return &Inspector{
		screenWidth:  screenWidth,
		screenHeight: screenHeight,
	}
}

// SetTarget replaces the displayed object. Called every frame while a
// selection is live so the values stay fresh.
func (ins *Inspector) SetTarget(title string, target interface{}) {
	ins.title = title
	ins.fields = ExtractFields(target)
}

// Clear empties the panel.
func (ins *Inspector) Clear() {
	ins.title = ""
	ins.fields = nil
}

// Active reports whether the panel has something to show.
func (ins *Inspector) Active() bool {
	return ins.title != ""
}

// Resize updates the screen size the panel anchors against.
func (ins *Inspector) Resize(screenWidth, screenHeight int32) {
	ins.screenWidth = screenWidth
	ins.screenHeight = screenHeight
}

// The panel sits against the right edge, above the debug overlay's
// corner slot.
func (ins *Inspector) rect() (x, y, w, h int32) {
	h = HeaderHeight + PanelPadding
	for _, f := range ins.fields {
		h += FieldHeight(f)
	}
	h += PanelPadding

	x = ins.screenWidth - PanelWidth - 10
	y = ins.screenHeight - h - 160
	if y < 10 {
		y = 10
	}
	return x, y, PanelWidth, h
}

// Contains reports whether a screen point lands on the visible panel.
func (ins *Inspector) Contains(mx, my float32) bool {
	if !ins.Active() {
		return false
	}
	x, y, w, h := ins.rect()
	return mx >= float32(x) && mx <= float32(x+w) &&
		my >= float32(y) && my <= float32(y+h)
}

// Draw renders the panel if a target is set.
func (ins *Inspector) Draw() {
	if !ins.Active() {
		return
	}

	px, py, pw, ph := ins.rect()

	rl.DrawRectangle(px, py, pw, ph, ColorPanelBg)
	rl.DrawRectangleLinesEx(
		rl.Rectangle{X: float32(px), Y: float32(py), Width: float32(pw), Height: float32(ph)},
		1,
		ColorPanelBorder,
	)

	rl.DrawRectangle(px, py, pw, HeaderHeight, ColorPanelHeader)
	rl.DrawText(ins.title, px+PanelPadding, py+6, 14, ColorHeaderText)

	x := px + PanelPadding
	y := py + HeaderHeight + PanelPadding
	for _, f := range ins.fields {
		y += DrawField(x, y, f)
	}
}
