package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/phiberoptik112/digital-ant-farm/pheromone"
)

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) && g.stepsPerUpdate > 1 {
		g.stepsPerUpdate--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && g.stepsPerUpdate < 10 {
		g.stepsPerUpdate++
	}

	if rl.IsKeyPressed(rl.KeyD) {
		g.debug = !g.debug
	}

	// Overlay toggles (always available, not just in debug mode)
	if rl.IsKeyPressed(rl.KeyOne) {
		g.showGround = !g.showGround
	}
	if rl.IsKeyPressed(rl.KeyTwo) {
		g.showDeposits = !g.showDeposits
	}
	if rl.IsKeyPressed(rl.KeyThree) {
		g.showSenseRange = !g.showSenseRange
	}

	if rl.IsKeyPressed(rl.KeyT) {
		g.tuning.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyQ) {
		g.queen.Toggle()
	}

	g.handleCameraInput()
	g.handleMouse()
}

// handleMouse routes clicks that do not land on a panel into the world.
func (g *Game) handleMouse() {
	mouse := rl.GetMousePosition()
	if g.overPanel(mouse.X, mouse.Y) {
		return
	}

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		wx, wy := g.cam.ScreenToWorld(mouse.X, mouse.Y)
		g.selectAt(wx, wy)
	}

	// Right-click drops a danger marker, the manual scare tool.
	if rl.IsMouseButtonPressed(rl.MouseButtonRight) {
		wx, wy := g.cam.ScreenToWorld(mouse.X, mouse.Y)
		if wx >= 0 && wx <= g.worldW && wy >= 0 && wy <= g.worldH {
			g.field.DepositDefault(wx, wy, pheromone.KindDanger)
		}
	}
}

// overPanel reports whether a screen point lands on visible UI.
func (g *Game) overPanel(x, y float32) bool {
	if g.tuning != nil && g.tuning.Contains(x, y) {
		return true
	}
	if g.queen != nil && g.queen.Contains(x, y) {
		return true
	}
	if g.insp != nil && g.insp.Contains(x, y) {
		return true
	}
	return false
}

// selectAt picks the nearest ant to a world point, falling back to the
// nearest deposit. Clicking empty ground clears the selection.
func (g *Game) selectAt(wx, wy float32) {
	// Pick radius shrinks as the camera zooms in, roughly constant in
	// screen pixels.
	pickRadius := 10.0 / g.cam.Zoom
	if pickRadius < 4 {
		pickRadius = 4
	}

	bestDistSq := pickRadius * pickRadius
	found := false

	query := g.antFilter.Query()
	for query.Next() {
		pos, _, ant := query.Get()
		if ant.Dead {
			continue
		}
		dx := pos.X - wx
		dy := pos.Y - wy
		if distSq := dx*dx + dy*dy; distSq < bestDistSq {
			bestDistSq = distSq
			g.selectedAnt = query.Entity()
			found = true
		}
	}
	if found {
		g.hasAntSelection = true
		g.selectedDeposit = 0
		return
	}

	bestDistSq = pickRadius * pickRadius
	var bestID uint64
	for _, d := range g.field.Deposits() {
		dx := d.X - wx
		dy := d.Y - wy
		if distSq := dx*dx + dy*dy; distSq < bestDistSq {
			bestDistSq = distSq
			bestID = d.ID
		}
	}
	g.hasAntSelection = false
	g.selectedDeposit = bestID
	if bestID == 0 && g.insp != nil {
		g.insp.Clear()
	}
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.width && h == g.height {
		return
	}
	g.width = w
	g.height = h

	if g.cam != nil {
		g.cam.Resize(w, h)
	}
	if g.queen != nil {
		g.queen.Move(int32(w)-270, 40)
	}
	if g.insp != nil {
		g.insp.Resize(int32(w), int32(h))
	}
}

// handleCameraInput processes camera pan/zoom controls.
func (g *Game) handleCameraInput() {
	if g.cam == nil {
		return
	}

	// Pan speed scales inversely with zoom for natural feel
	panSpeed := float32(8.0) / g.cam.Zoom

	if rl.IsKeyDown(rl.KeyRight) {
		g.cam.Pan(panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		g.cam.Pan(-panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		g.cam.Pan(0, panSpeed)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		g.cam.Pan(0, -panSpeed)
	}

	if wheelMove := rl.GetMouseWheelMove(); wheelMove != 0 {
		g.cam.ZoomBy(1.0 + wheelMove*0.1)
	}

	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		g.cam.ZoomBy(1.25)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		g.cam.ZoomBy(0.8)
	}

	if rl.IsKeyPressed(rl.KeyHome) {
		g.cam.Reset()
	}
}
