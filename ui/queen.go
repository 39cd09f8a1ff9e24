package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	queenWidth     = 260
	queenRowHeight = 46
)

// CasteInfo is one row of the production panel.
type CasteInfo struct {
	Name       string
	Cost       float64
	Count      int
	Queued     int
	Affordable bool
}

// QueenInfo is the colony state the panel renders.
type QueenInfo struct {
	FoodStored float64
	QueueLen   int
	Castes     []CasteInfo
}

// QueenOrder asks the colony to queue ants of one caste.
type QueenOrder struct {
	Caste uint8
	Count int
}

// QueenPanel shows per-caste production controls. Orders are queued
// with the colony and paid for when the ant actually spawns, so the
// buttons stay clickable even when food is short.
type QueenPanel struct {
	x, y    int32
	visible bool
	rend    *Renderer
}

// NewQueenPanel creates the panel at a screen position, hidden.
func NewQueenPanel(x, y int32) *QueenPanel {
	return &QueenPanel{x: x, y: y, rend: NewRenderer()}
}

// Toggle shows or hides the panel.
func (p *QueenPanel) Toggle() {
	p.visible = !p.visible
}

// Move repositions the panel, used when the window is resized.
func (p *QueenPanel) Move(x, y int32) {
	p.x, p.y = x, y
}

func (p *QueenPanel) height(castes int) int32 {
	return 58 + int32(castes)*queenRowHeight + 10
}

// Contains reports whether a screen point lands on the visible panel.
func (p *QueenPanel) Contains(x, y float32) bool {
	if !p.visible {
		return false
	}
	return x >= float32(p.x) && x <= float32(p.x+queenWidth) &&
		y >= float32(p.y) && y <= float32(p.y+p.height(4))
}

// Draw renders the panel and returns any production orders clicked
// this frame.
func (p *QueenPanel) Draw(info QueenInfo) []QueenOrder {
	if !p.visible {
		return nil
	}

	var orders []QueenOrder

	x := p.x + 10
	y := p.y + 8
	t := p.rend.Theme

	p.rend.DrawPanel(p.x, p.y, queenWidth, p.height(len(info.Castes)))
	y = p.rend.DrawSectionHeader(x, y, "QUEEN [Q]")
	y = p.rend.DrawLabelValue(x, y, "Food", fmt.Sprintf("%.0f", info.FoodStored))
	if info.QueueLen > 0 {
		y = p.rend.DrawLabelValue(x, y, "Queue", fmt.Sprintf("%d", info.QueueLen))
	}
	y += 4

	for i, c := range info.Castes {
		costColor := t.ValueColor
		if !c.Affordable {
			costColor = t.WarnColor
		}

		rl.DrawText(c.Name, x, y, t.FontSize, t.LabelColor)
		rl.DrawText(fmt.Sprintf("%.0f food", c.Cost), x+80, y, t.FontSize, costColor)
		line := fmt.Sprintf("%d", c.Count)
		if c.Queued > 0 {
			line = fmt.Sprintf("%d +%d", c.Count, c.Queued)
		}
		rl.DrawText(line, x+170, y, t.FontSize, t.ValueColor)
		y += 16

		if gui.Button(rl.Rectangle{X: float32(x), Y: float32(y), Width: 56, Height: 20}, "+1") {
			orders = append(orders, QueenOrder{Caste: uint8(i), Count: 1})
		}
		if gui.Button(rl.Rectangle{X: float32(x) + 62, Y: float32(y), Width: 56, Height: 20}, "+5") {
			orders = append(orders, QueenOrder{Caste: uint8(i), Count: 5})
		}
		y += queenRowHeight - 16
	}

	return orders
}
