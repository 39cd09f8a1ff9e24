// Trail decay preview tool - interactive strength-over-time curves.
//
// Usage: go run ./cmd/trailpreview
package main

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	plotWidth    = 560
	plotHeight   = 420
	panelWidth   = windowWidth - plotWidth - 30

	dt = 1.0 / 60.0

	// Locked quality model constants, matching the config defaults.
	qualityCap    = 2.0
	qualityFloor  = 0.3
	reinforcePd   = 3
	reinforceCapX = 1.5
)

// KindSpec holds the per-kind deposit parameters.
type KindSpec struct {
	Name     string
	Strength float32
	Decay    float32
	Radius   float32
	Color    rl.Color
}

// TrailParams holds everything the preview simulates.
type TrailParams struct {
	Kinds [3]KindSpec

	UsesPerSec    float32 // Simulated agent traffic on the trail
	QualityIncr   float32
	QualityCoeff  float32
	ReinforceFrac float32
	SpreadDelay   float32
	PlotSeconds   float32
}

func defaultParams() TrailParams {
	return TrailParams{
		Kinds: [3]KindSpec{
			{Name: "food_trail", Strength: 40, Decay: 0.5, Radius: 25, Color: rl.Color{R: 80, G: 200, B: 120, A: 255}},
			{Name: "home_trail", Strength: 20, Decay: 0.3, Radius: 15, Color: rl.Color{R: 90, G: 150, B: 240, A: 255}},
			{Name: "danger", Strength: 60, Decay: 0.8, Radius: 30, Color: rl.Color{R: 230, G: 90, B: 70, A: 255}},
		},
		UsesPerSec:    3,
		QualityIncr:   0.05,
		QualityCoeff:  0.7,
		ReinforceFrac: 0.1,
		SpreadDelay:   2.0,
		PlotSeconds:   20,
	}
}

func main() {
	rl.InitWindow(windowWidth, windowHeight, "Trail Decay Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	params := defaultParams()
	kindSel := 0
	needsRegen := true

	// One curve per kind without traffic, plus a used curve for the
	// selected kind.
	var curves [3][]float32
	var usedCurve []float32

	for !rl.WindowShouldClose() {
		if needsRegen {
			maxTicks := int(params.PlotSeconds / dt)
			for i := range params.Kinds {
				curves[i] = simulateTrail(params, params.Kinds[i], 0, maxTicks)
			}
			usedCurve = simulateTrail(params, params.Kinds[kindSel], params.UsesPerSec, maxTicks)
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		// Plot area
		drawPlot(params, kindSel, curves, usedCurve)

		// Lifetime stats
		statsY := int32(plotHeight + 35)
		for i, k := range params.Kinds {
			life := float32(len(curves[i])) * dt
			rl.DrawText(fmt.Sprintf("%s: dies in %.1fs idle", k.Name, life), 15, statsY, 14, k.Color)
			statsY += 18
		}
		usedLife := float32(len(usedCurve)) * dt
		rl.DrawText(fmt.Sprintf("%s with %.0f uses/s: %.1fs", params.Kinds[kindSel].Name, params.UsesPerSec, usedLife),
			15, statsY+6, 16, rl.DarkGray)

		// Control panel
		panelX := float32(plotWidth + 20)
		panelY := float32(10)

		rl.DrawText("Trail Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 30

		// Kind selector
		for i, k := range params.Kinds {
			label := k.Name
			if i == kindSel {
				label = "> " + k.Name
			}
			if gui.Button(rl.Rectangle{X: panelX + float32(i)*132, Y: panelY, Width: 126, Height: 24}, label) {
				kindSel = i
				needsRegen = true
			}
		}
		panelY += 34

		k := &params.Kinds[kindSel]
		k.Strength = slider(&panelY, panelX, "Strength (initial signal)", k.Strength, 5, 120, "%.0f", &needsRegen)
		k.Decay = slider(&panelY, panelX, "Decay rate (loss per tick)", k.Decay, 0.05, 2.0, "%.2f", &needsRegen)
		k.Radius = slider(&panelY, panelX, "Radius (influence range)", k.Radius, 5, 60, "%.0f", &needsRegen)

		rl.DrawLine(int32(panelX), int32(panelY), int32(panelX)+int32(panelWidth)-20, int32(panelY), rl.LightGray)
		panelY += 12

		rl.DrawText("Quality feedback", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 22
		params.UsesPerSec = slider(&panelY, panelX, "Traffic (uses per second)", params.UsesPerSec, 0, 20, "%.0f", &needsRegen)
		params.QualityIncr = slider(&panelY, panelX, "Quality increment per use", params.QualityIncr, 0.01, 0.25, "%.2f", &needsRegen)
		params.QualityCoeff = slider(&panelY, panelX, "Decay slowdown coefficient", params.QualityCoeff, 0.1, 1.0, "%.2f", &needsRegen)
		params.ReinforceFrac = slider(&panelY, panelX, "Reinforcement fraction", params.ReinforceFrac, 0.02, 0.4, "%.2f", &needsRegen)

		rl.DrawLine(int32(panelX), int32(panelY), int32(panelX)+int32(panelWidth)-20, int32(panelY), rl.LightGray)
		panelY += 12

		params.SpreadDelay = slider(&panelY, panelX, "Spread delay (marker, seconds)", params.SpreadDelay, 0.5, 10, "%.1f", &needsRegen)
		params.PlotSeconds = slider(&panelY, panelX, "Plot window (seconds)", params.PlotSeconds, 5, 60, "%.0f", &needsRegen)

		panelY += 8
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = defaultParams()
			kindSel = 0
			needsRegen = true
		}
		panelY += 45

		// Output YAML
		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 22
		for _, line := range yamlLines(params) {
			rl.DrawText(line, int32(panelX), int32(panelY), 12, rl.Gray)
			panelY += 14
		}

		// Instructions
		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)

		// Copy to clipboard on C key
		if rl.IsKeyPressed(rl.KeyC) {
			yaml := ""
			for _, line := range yamlLines(params) {
				yaml += line + "\n"
			}
			rl.SetClipboardText(yaml)
		}

		rl.EndDrawing()
	}
}

// slider draws one labelled slider row and sets regen when it moves.
func slider(y *float32, x float32, label string, value, min, max float32, format string, regen *bool) float32 {
	rl.DrawText(label, int32(x), int32(*y), 14, rl.Gray)
	*y += 18
	v := gui.SliderBar(
		rl.Rectangle{X: x, Y: *y, Width: float32(panelWidth - 80), Height: 18},
		fmt.Sprintf(format, min), fmt.Sprintf(format, max),
		value, min, max,
	)
	rl.DrawText(fmt.Sprintf(format, v), int32(x+float32(panelWidth-70)), int32(*y+2), 16, rl.DarkGray)
	*y += 30
	if v != value {
		*regen = true
	}
	return v
}

// simulateTrail runs one deposit through the decay, quality, and
// reinforcement rules. Same model as pheromone/field.go, with uniform
// ground (no environment multiplier). Returns per-tick strength until
// the deposit dies or the window ends.
func simulateTrail(p TrailParams, k KindSpec, usesPerSec float32, maxTicks int) []float32 {
	strength := k.Strength
	maxStrength := k.Strength
	quality := float32(1)
	usageCount := 0

	useEvery := 0
	if usesPerSec > 0 {
		useEvery = int(1 / (usesPerSec * dt))
		if useEvery < 1 {
			useEvery = 1
		}
	}

	samples := make([]float32, 0, maxTicks)
	for tick := 0; tick < maxTicks; tick++ {
		if useEvery > 0 && tick%useEvery == 0 && tick > 0 {
			usageCount++
			quality = min32(qualityCap, 1+float32(usageCount)*p.QualityIncr)
			if usageCount%reinforcePd == 0 {
				strength = min32(strength*(1+p.ReinforceFrac), maxStrength*reinforceCapX)
			}
		}

		qualityFactor := max32(qualityFloor, 1-(quality-1)*p.QualityCoeff)
		strength -= k.Decay * qualityFactor
		if strength <= 0 {
			break
		}
		samples = append(samples, strength)
	}
	return samples
}

// drawPlot renders the strength-over-time curves.
func drawPlot(params TrailParams, kindSel int, curves [3][]float32, usedCurve []float32) {
	px, py := int32(10), int32(10)
	rl.DrawRectangle(px, py, plotWidth, plotHeight, rl.Color{R: 248, G: 248, B: 245, A: 255})
	rl.DrawRectangleLines(px, py, plotWidth, plotHeight, rl.DarkGray)

	// Y scale: tallest possible curve is strength times the
	// reinforcement cap.
	var yMax float32 = 1
	for _, k := range params.Kinds {
		if s := k.Strength * reinforceCapX; s > yMax {
			yMax = s
		}
	}

	maxTicks := int(params.PlotSeconds / dt)

	// Spread delay marker
	mx := px + int32(float32(plotWidth)*params.SpreadDelay/params.PlotSeconds)
	if mx < px+plotWidth {
		rl.DrawLine(mx, py, mx, py+plotHeight, rl.Color{R: 200, G: 180, B: 120, A: 255})
		rl.DrawText("spread", mx+4, py+4, 12, rl.Color{R: 180, G: 150, B: 80, A: 255})
	}

	for i := range curves {
		drawCurve(px, py, curves[i], maxTicks, yMax, faded(params.Kinds[i].Color))
	}
	drawCurve(px, py, usedCurve, maxTicks, yMax, params.Kinds[kindSel].Color)

	rl.DrawText(fmt.Sprintf("%.0f", yMax), px+4, py+2, 12, rl.Gray)
	rl.DrawText("0", px+4, py+plotHeight-16, 12, rl.Gray)
	rl.DrawText(fmt.Sprintf("%.0fs", params.PlotSeconds), px+plotWidth-34, py+plotHeight-16, 12, rl.Gray)
	rl.DrawText("bright = with traffic, faded = idle", px+8, py+plotHeight+6, 12, rl.Gray)
}

// drawCurve plots one strength series into the plot rect.
func drawCurve(px, py int32, samples []float32, maxTicks int, yMax float32, color rl.Color) {
	if len(samples) < 2 || maxTicks < 2 {
		return
	}
	prev := plotPoint(px, py, 0, samples[0], maxTicks, yMax)
	for t := 1; t < len(samples); t++ {
		cur := plotPoint(px, py, t, samples[t], maxTicks, yMax)
		rl.DrawLineV(prev, cur, color)
		prev = cur
	}
}

func plotPoint(px, py int32, tick int, strength float32, maxTicks int, yMax float32) rl.Vector2 {
	x := float32(px) + float32(plotWidth)*float32(tick)/float32(maxTicks)
	y := float32(py) + float32(plotHeight)*(1-strength/yMax)
	return rl.Vector2{X: x, Y: y}
}

func faded(c rl.Color) rl.Color {
	return rl.Color{R: c.R, G: c.G, B: c.B, A: 90}
}

// yamlLines formats the current parameters as a config fragment.
func yamlLines(p TrailParams) []string {
	lines := []string{"field:"}
	for _, k := range p.Kinds {
		lines = append(lines,
			fmt.Sprintf("  %s:", k.Name),
			fmt.Sprintf("    strength: %.1f", k.Strength),
			fmt.Sprintf("    decay_rate: %.2f", k.Decay),
			fmt.Sprintf("    radius: %.1f", k.Radius),
		)
	}
	lines = append(lines,
		fmt.Sprintf("  quality_increment: %.2f", p.QualityIncr),
		fmt.Sprintf("  quality_coeff: %.2f", p.QualityCoeff),
		fmt.Sprintf("  reinforcement_fraction: %.2f", p.ReinforceFrac),
		"spread:",
		fmt.Sprintf("  delay: %.1f", p.SpreadDelay),
	)
	return lines
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
