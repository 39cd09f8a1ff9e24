package game

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/phiberoptik112/digital-ant-farm/components"
	"github.com/phiberoptik112/digital-ant-farm/ui"
)

// antBodyRadius is the drawn body size in world units.
const antBodyRadius = 2.5

// casteColors indexes by caste, wrapping for configs with more castes
// than entries.
var casteColors = []rl.Color{
	{R: 222, G: 184, B: 135, A: 255}, // worker, tan
	{R: 205, G: 92, B: 92, A: 255},   // soldier, brick
	{R: 135, G: 206, B: 235, A: 255}, // scout, sky blue
	{R: 255, G: 165, B: 0, A: 255},   // nurse, orange
}

// Draw renders the world through the camera, then the UI on top.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Color{R: 28, G: 24, B: 20, A: 255})

	if g.showGround && g.groundView != nil {
		g.groundView.Draw(g.cam)
	}
	if g.showDeposits {
		g.depositView.Draw(g.field.Deposits(), g.cam)
	}

	g.drawFood()
	g.drawColony()
	g.drawAnts()
	g.drawSelection()

	g.drawHUD()
	g.drawPanels()

	if g.debug {
		g.drawDebugPanel()
	}

	rl.EndDrawing()
}

// drawFood renders sources as circles that shrink with remaining
// amount. Depleted sources leave a faint ring so the player can see
// where food will come back.
func (g *Game) drawFood() {
	zoom := g.cam.Zoom
	for i := 0; i < g.food.Count(); i++ {
		src := g.food.Source(i)
		if !g.cam.IsVisible(src.X, src.Y, src.Radius) {
			continue
		}
		sx, sy := g.cam.WorldToScreen(src.X, src.Y)

		if src.Depleted {
			rl.DrawCircleLines(int32(sx), int32(sy), src.Radius*zoom, rl.Color{R: 80, G: 90, B: 60, A: 120})
			continue
		}

		r := src.VisualRadius() * zoom
		rl.DrawCircleV(rl.Vector2{X: sx, Y: sy}, r, rl.Color{R: 124, G: 180, B: 80, A: 210})
		rl.DrawCircleLines(int32(sx), int32(sy), r, rl.Color{R: 160, G: 220, B: 110, A: 200})

		if g.debug {
			rl.DrawText(fmt.Sprintf("%.0f", src.Amount), int32(sx)+4, int32(sy)-10, 10, rl.RayWhite)
		}
	}
}

// drawColony renders the territory ring and the nest entrance.
func (g *Game) drawColony() {
	cfg := g.config()
	zoom := g.cam.Zoom
	sx, sy := g.cam.WorldToScreen(g.colony.X, g.colony.Y)

	territory := float32(cfg.Colony.Radius) * zoom
	nest := float32(cfg.Colony.NestRadius) * zoom

	rl.DrawCircleLines(int32(sx), int32(sy), territory, rl.Color{R: 150, G: 110, B: 70, A: 60})
	rl.DrawCircleV(rl.Vector2{X: sx, Y: sy}, nest, rl.Color{R: 110, G: 75, B: 40, A: 200})
	rl.DrawCircleLines(int32(sx), int32(sy), nest, rl.Color{R: 180, G: 130, B: 80, A: 255})

	rl.DrawText(fmt.Sprintf("Lv %d", g.colony.Level), int32(sx)-14, int32(sy)-int32(nest)-16, 12, rl.RayWhite)
}

// drawAnts renders every live ant as an oriented triangle, colored by
// caste and fading slightly with age.
func (g *Game) drawAnts() {
	zoom := g.cam.Zoom
	radius := antBodyRadius * zoom
	showRanges := g.showSenseRange

	query := g.antFilter.Query()
	for query.Next() {
		pos, _, ant := query.Get()
		if ant.Dead {
			continue
		}
		if !g.cam.IsVisible(pos.X, pos.Y, antBodyRadius*4) {
			continue
		}

		sx, sy := g.cam.WorldToScreen(pos.X, pos.Y)

		color := casteColors[int(ant.Caste)%len(casteColors)]
		if ant.LifespanTicks > 0 {
			// Fade out over the last third of life.
			frac := float32(ant.Age) / float32(ant.LifespanTicks)
			if frac > 0.66 {
				fade := (frac - 0.66) / 0.34
				color.A = uint8(255 - fade*120)
			}
		}

		if radius < 1.5 {
			rl.DrawPixelV(rl.Vector2{X: sx, Y: sy}, color)
			continue
		}

		drawOrientedTriangle(sx, sy, ant.Heading, radius, color)

		if ant.Carrying > 0 {
			rl.DrawCircleV(rl.Vector2{X: sx, Y: sy}, radius*0.45, rl.Color{R: 124, G: 180, B: 80, A: 255})
		}

		if showRanges {
			rl.DrawCircleLines(int32(sx), int32(sy), ant.Detection*zoom, rl.Color{R: 90, G: 140, B: 200, A: 60})
			rl.DrawCircleLines(int32(sx), int32(sy), ant.Sense*zoom, rl.Color{R: 200, G: 180, B: 90, A: 40})
		}
	}
}

// drawSelection highlights the selected ant or deposit and feeds the
// inspector its current field values.
func (g *Game) drawSelection() {
	zoom := g.cam.Zoom

	if g.hasAntSelection {
		if !g.world.Alive(g.selectedAnt) {
			g.hasAntSelection = false
			g.insp.Clear()
		} else {
			pos := g.posMap.Get(g.selectedAnt)
			ant := g.antMap.Get(g.selectedAnt)
			if pos != nil && ant != nil {
				sx, sy := g.cam.WorldToScreen(pos.X, pos.Y)
				rl.DrawCircleLines(int32(sx), int32(sy), antBodyRadius*zoom+4, rl.Yellow)
				rl.DrawCircleLines(int32(sx), int32(sy), ant.Detection*zoom, rl.Color{R: 90, G: 140, B: 200, A: 90})
				g.insp.SetTarget(fmt.Sprintf("Ant #%d (%s)", ant.ID, ant.State), *ant)
			}
		}
	}

	if g.selectedDeposit != 0 {
		d := g.field.Get(g.selectedDeposit)
		if d == nil {
			g.selectedDeposit = 0
			g.insp.Clear()
		} else {
			sx, sy := g.cam.WorldToScreen(d.X, d.Y)
			rl.DrawCircleLines(int32(sx), int32(sy), d.Radius*zoom, rl.Yellow)
			g.insp.SetTarget(fmt.Sprintf("Deposit #%d (%s)", d.ID, d.Kind), *d)
		}
	}
}

// drawHUD fills the HUD from live state plus the last flushed window.
func (g *Game) drawHUD() {
	cfg := g.config()
	fieldStats := g.field.Stats()

	var searching, returning, fleeing int
	query := g.antFilter.Query()
	for query.Next() {
		_, _, ant := query.Get()
		if ant.Dead {
			continue
		}
		switch ant.State {
		case components.StateReturning:
			returning++
		case components.StateFleeing:
			fleeing++
		default:
			searching++
		}
	}

	g.hud.Draw(ui.HUDData{
		Tick:           g.tick,
		Population:     g.population,
		PopCap:         g.colony.PopCap,
		Searching:      searching,
		Returning:      returning,
		Fleeing:        fleeing,
		ColonyLevel:    g.colony.Level,
		ColonyXP:       g.colony.XP,
		ColonyNextXP:   float64(g.colony.Level) * cfg.Colony.LevelXP,
		FoodStored:     g.colony.FoodStored,
		StorageMax:     g.colony.StorageMax,
		Starving:       g.colony.Starving,
		ActiveSources:  g.food.ActiveCount(),
		TotalSources:   g.food.Count(),
		Deposits:       fieldStats.Total,
		CacheHitRate:   g.depositView.HitRate(),
		QueueLen:       g.colony.QueuedCount(),
		StepsPerUpdate: g.stepsPerUpdate,
		Paused:         g.paused,
	})
}

// drawPanels renders the tuning and queen panels and applies any
// production orders the queen panel emitted this frame.
func (g *Game) drawPanels() {
	g.tuning.Draw()

	info := ui.QueenInfo{
		FoodStored: g.colony.FoodStored,
		QueueLen:   g.colony.QueuedCount(),
	}
	cfg := g.config()
	for i := range cfg.Castes {
		queued := 0
		for _, ord := range g.colony.Queue {
			if int(ord.Caste) == i {
				queued += ord.Remaining
			}
		}
		info.Castes = append(info.Castes, ui.CasteInfo{
			Name:       cfg.Castes[i].Name,
			Cost:       cfg.Castes[i].Cost,
			Count:      g.casteCounts[i],
			Queued:     queued,
			Affordable: g.colony.CanAfford(uint8(i)),
		})
	}
	for _, ord := range g.queen.Draw(info) {
		g.colony.QueueProduction(ord.Caste, ord.Count)
	}

	g.insp.Draw()
}

// drawDebugPanel renders the debug overlay menu.
func (g *Game) drawDebugPanel() {
	panelX := int32(g.width) - 210
	panelY := int32(g.height) - 150
	panelW := int32(200)
	panelH := int32(140)

	rl.DrawRectangle(panelX, panelY, panelW, panelH, rl.Color{R: 0, G: 0, B: 0, A: 180})
	rl.DrawRectangleLines(panelX, panelY, panelW, panelH, rl.Yellow)

	rl.DrawText("DEBUG [D to close]", panelX+10, panelY+8, 14, rl.Yellow)

	status := func(on bool) (string, rl.Color) {
		if on {
			return "ON", rl.Green
		}
		return "OFF", rl.Gray
	}
	s, c := status(g.showGround)
	rl.DrawText(fmt.Sprintf("[1] Ground: %s", s), panelX+10, panelY+28, 12, c)
	s, c = status(g.showDeposits)
	rl.DrawText(fmt.Sprintf("[2] Deposits: %s", s), panelX+10, panelY+44, 12, c)
	s, c = status(g.showSenseRange)
	rl.DrawText(fmt.Sprintf("[3] Ranges: %s", s), panelX+10, panelY+60, 12, c)

	fs := g.field.Stats()
	rl.DrawText(fmt.Sprintf("food %d  home %d  danger %d",
		fs.KindCounts[0], fs.KindCounts[1], fs.KindCounts[2]), panelX+10, panelY+82, 11, rl.White)

	perf := g.perf.Stats()
	rl.DrawText(fmt.Sprintf("tick %v", perf.AvgTickDuration), panelX+10, panelY+100, 11, rl.White)
	rl.DrawText(fmt.Sprintf("tps %.0f  fps %.0f", perf.TicksPerSecond, perf.FPS), panelX+10, panelY+116, 11, rl.White)
}

// drawOrientedTriangle draws a triangle pointing in the heading direction.
func drawOrientedTriangle(x, y, heading, radius float32, color rl.Color) {
	cos := fastCos(heading)
	sin := fastSin(heading)

	frontX := x + cos*radius*1.5
	frontY := y + sin*radius*1.5

	backAngle := heading + backCornerAngle
	backLeftX := x + fastCos(backAngle)*radius
	backLeftY := y + fastSin(backAngle)*radius

	backAngle = heading - backCornerAngle
	backRightX := x + fastCos(backAngle)*radius
	backRightY := y + fastSin(backAngle)*radius

	v1 := rl.Vector2{X: frontX, Y: frontY}
	v2 := rl.Vector2{X: backLeftX, Y: backLeftY}
	v3 := rl.Vector2{X: backRightX, Y: backRightY}

	// DrawTriangle requires counter-clockwise winding (v1, v3, v2)
	rl.DrawTriangle(v1, v3, v2, color)
}

// backCornerAngle places the rear corners of the body triangle.
const backCornerAngle = math.Pi * 0.8
