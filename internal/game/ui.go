package game

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Theme colors
var (
	colorBgDark    = rl.NewColor(10, 10, 15, 255)
	colorBgPanel   = rl.NewColor(18, 18, 24, 245)
	colorBgElement = rl.NewColor(28, 28, 38, 255)
	colorBgHover   = rl.NewColor(38, 38, 52, 255)

	colorAccent        = rl.NewColor(108, 99, 255, 255)
	colorTextPrimary   = rl.NewColor(255, 255, 255, 255)
	colorTextSecondary = rl.NewColor(200, 200, 208, 255)
	colorTextMuted     = rl.NewColor(119, 119, 119, 255)
)

const (
	panelWidth  = 240
	panelHeight = 330
	panelMargin = 10
	rowHeight   = 24
)

// initRayguiStyle sets up the dark theme
func initRayguiStyle() {
	gui.SetStyle(gui.DEFAULT, gui.BACKGROUND_COLOR, gui.NewColorPropertyValue(colorBgPanel))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_NORMAL, gui.NewColorPropertyValue(colorBgElement))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_FOCUSED, gui.NewColorPropertyValue(colorBgHover))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_PRESSED, gui.NewColorPropertyValue(colorAccent))

	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_NORMAL, gui.NewColorPropertyValue(colorTextSecondary))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_FOCUSED, gui.NewColorPropertyValue(colorTextPrimary))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_PRESSED, gui.NewColorPropertyValue(colorTextPrimary))

	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_NORMAL, gui.NewColorPropertyValue(rl.NewColor(50, 50, 65, 255)))
	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_FOCUSED, gui.NewColorPropertyValue(colorAccent))
	gui.SetStyle(gui.DEFAULT, gui.LINE_COLOR, gui.NewColorPropertyValue(colorBgDark))

	gui.SetStyle(gui.DEFAULT, gui.TEXT_SIZE, 15)
}

func panelBounds() rl.Rectangle {
	return rl.Rectangle{
		X:      float32(rl.GetScreenWidth() - panelWidth - panelMargin),
		Y:      panelMargin,
		Width:  panelWidth,
		Height: panelHeight,
	}
}

func (g *Game) DrawUI(drawn int) {
	g.drawStats(drawn)
	g.drawPanel()

	if g.status != "" && rl.GetTime()-g.statusTime < 3 {
		rl.DrawText(g.status, 10, int32(rl.GetScreenHeight())-30, 18, colorTextPrimary)
	}
}

func (g *Game) drawStats(drawn int) {
	stats := g.World.LastStats
	rl.DrawFPS(10, 10)
	rl.DrawText("Right-drag to orbit, wheel to zoom, click to nudge", 10, 35, 16, colorTextMuted)
	rl.DrawText("Space throws a ball, P pauses, N steps, F5 saves a snapshot", 10, 55, 16, colorTextMuted)

	y := int32(85)
	line := func(text string, color rl.Color) {
		rl.DrawText(text, 10, y, 16, color)
		y += 20
	}
	line(fmt.Sprintf("Bodies:      %d (%d drawn)", stats.Bodies, drawn), rl.Green)
	line(fmt.Sprintf("Contacts:    %d", stats.Contacts), rl.Green)
	line(fmt.Sprintf("Iterations:  %d pos / %d vel", stats.PositionIterations, stats.VelocityIterations), rl.Green)
	line(fmt.Sprintf("Penetration: %.4f", stats.MaxPenetration), rl.Green)
	line(fmt.Sprintf("Impacts:     %d", g.impacts), rl.Green)
	line(fmt.Sprintf("Tick:        %d", g.World.Ticks()), rl.Green)
	if g.picked != nil {
		v := g.picked.Body.Velocity
		line(fmt.Sprintf("Picked:      %s (%.2f, %.2f, %.2f)", g.picked.Name, v[0], v[1], v[2]), rl.Yellow)
	}

	if g.DebugMode {
		line(fmt.Sprintf("Update:  %.2f ms", g.updateMs), rl.Lime)
		line(fmt.Sprintf("Draw:    %.2f ms", g.drawMs), rl.Lime)
	}
}

func (g *Game) drawPanel() {
	bounds := panelBounds()
	gui.Panel(bounds, "Simulation")

	settings := &g.World.Scene.World.Settings
	x := bounds.X + 10
	y := bounds.Y + 34
	w := bounds.Width - 20
	row := func() rl.Rectangle {
		r := rl.Rectangle{X: x, Y: y, Width: w, Height: rowHeight - 4}
		y += rowHeight
		return r
	}
	check := func() rl.Rectangle {
		r := row()
		r.Width = r.Height
		return r
	}
	slider := func() rl.Rectangle {
		r := row()
		r.X += 90
		r.Width -= 130
		return r
	}

	g.World.Paused = gui.CheckBox(check(), "Paused", g.World.Paused)
	g.ShowContacts = gui.CheckBox(check(), "Show contacts", g.ShowContacts)
	settings.Sleep.Enabled = gui.CheckBox(check(), "Sleeping", settings.Sleep.Enabled)

	gui.Label(row(), "Position iterations")
	settings.Solver.PositionIterations = int(gui.Slider(slider(), "", fmt.Sprintf("%d", settings.Solver.PositionIterations),
		float32(settings.Solver.PositionIterations), 1, 30) + 0.5)

	gui.Label(row(), "Velocity iterations")
	settings.Solver.VelocityIterations = int(gui.Slider(slider(), "", fmt.Sprintf("%d", settings.Solver.VelocityIterations),
		float32(settings.Solver.VelocityIterations), 1, 30) + 0.5)

	gui.Label(row(), "Restitution")
	settings.Material.Restitution = gui.Slider(slider(), "", fmt.Sprintf("%.2f", settings.Material.Restitution),
		settings.Material.Restitution, 0, 1)

	y += 6
	if gui.Button(row(), "Reset scene") {
		g.Reset()
	}
	if gui.Button(row(), "Save snapshot") {
		g.SaveSnapshot()
	}
	if gui.Button(row(), "Save config") {
		g.SaveConfig()
	}
}
