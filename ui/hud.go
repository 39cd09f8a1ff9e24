package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData is the per-frame state the HUD displays. The game fills it
// from live counts so the HUD has no reach into simulation types.
type HUDData struct {
	Tick       int32
	Population int
	PopCap     int
	Searching  int
	Returning  int
	Fleeing    int

	ColonyLevel  int
	ColonyXP     float64
	ColonyNextXP float64
	FoodStored   float64
	StorageMax   float64
	Starving     bool
	QueueLen     int

	ActiveSources int
	TotalSources  int
	Deposits      int
	CacheHitRate  float64

	StepsPerUpdate int
	Paused         bool
}

// HUD is the always-on status panel in the top-left corner.
type HUD struct {
	rend *Renderer
}

// NewHUD creates the HUD.
func NewHUD() *HUD {
	return &HUD{rend: NewRenderer()}
}

const hudWidth = 240

// Draw renders the HUD.
func (h *HUD) Draw(d HUDData) {
	t := h.rend.Theme
	x := int32(10)
	y := int32(10)

	h.rend.DrawPanel(x-4, y-4, hudWidth, 196)

	y = h.rend.DrawLabelValue(x, y, "Tick", fmt.Sprintf("%d", d.Tick))
	y = h.rend.DrawLabelValue(x, y, "Ants", fmt.Sprintf("%d/%d", d.Population, d.PopCap))
	y = h.rend.DrawLabelValue(x, y, "States",
		fmt.Sprintf("s:%d r:%d f:%d", d.Searching, d.Returning, d.Fleeing))

	y += 4
	y = h.rend.DrawStockBar(x, y, fmt.Sprintf("Lv %d", d.ColonyLevel), d.ColonyXP, d.ColonyNextXP, hudWidth-16)
	y = h.rend.DrawStockBar(x, y, "Food", d.FoodStored, d.StorageMax, hudWidth-16)
	if d.Starving {
		rl.DrawText("STARVING", x+t.LabelWidth, y, t.FontSize, t.WarnColor)
		y += t.LineHeight
	}
	if d.QueueLen > 0 {
		y = h.rend.DrawLabelValue(x, y, "Queue", fmt.Sprintf("%d", d.QueueLen))
	}

	y += 4
	y = h.rend.DrawLabelValue(x, y, "Sources", fmt.Sprintf("%d/%d", d.ActiveSources, d.TotalSources))
	y = h.rend.DrawLabelValue(x, y, "Deposits",
		fmt.Sprintf("%d (cache %.0f%%)", d.Deposits, d.CacheHitRate*100))

	y += 4
	speed := fmt.Sprintf("%dx [</>]  %d fps", d.StepsPerUpdate, rl.GetFPS())
	y = h.rend.DrawLabelValue(x, y, "Speed", speed)

	if d.Paused {
		rl.DrawText("PAUSED [space]", x, y+2, t.HeaderFontSize, t.SectionHeader)
	}
}
