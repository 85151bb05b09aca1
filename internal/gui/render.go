package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/geodesim/internal/engine"
)

const (
	gridX    = 110
	gridY    = 110
	laneGap  = 6
	maxCell  = 40
	barWidth = 400
)

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	if sim, ok := a.simulation(); ok {
		a.drawGrid(sim)
	}
	a.DrawHUD()

	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	f := a.Session.Render()
	w, h := int(rl.GetScreenWidth()), int(rl.GetScreenHeight())

	a.drawText("geodesim", 30, 30, 24, ColSelect)
	a.drawText(fmt.Sprintf(":: %s", a.Source), 170, 34, 16, ColText)

	status, col := "PAUSED", ColTextDim
	switch {
	case f.Playing:
		status, col = "PLAYING", ColSelect
	case f.Done:
		status, col = "DONE", ColAccent
	}
	a.drawText(status, w-130, 30, 16, col)

	a.drawText(f.Status, 30, h-110, 18, ColText)
	filled := int32(f.Coverage / 100 * barWidth)
	rl.DrawRectangle(30, int32(h-84), barWidth, 10, ColGrid)
	rl.DrawRectangle(30, int32(h-84), filled, 10, ColAccent)

	if f.Err != nil {
		a.drawText("error: "+f.Err.Error(), 30, 70, 16, ColError)
	} else if a.Notice != "" {
		a.drawText(a.Notice, 30, 70, 14, ColTextDim)
	}

	a.drawText("[R] RESET  [S] STEP  [T] STEP x10  [SPACE] PLAY  [E] SVG  DROP A FILE TO LOAD", w-720, h-40, 14, ColTextDim)
	a.drawText(fmt.Sprintf("%d FPS", int32(rl.GetFPS())), 30, h-40, 14, ColTextDim)
}

// drawGrid draws one row of cells per blueprint, shaded by frontier size
// like the SVG drawing.
func (a *App) drawGrid(sim *engine.Simulation) {
	lanes := sim.Lanes()
	if len(lanes) == 0 {
		return
	}
	w, h := int(rl.GetScreenWidth()), int(rl.GetScreenHeight())
	cell := min((w-gridX-160)/sim.Horizon(), (h-gridY-140)/len(lanes)-laneGap, maxCell)
	cell = max(cell, 4)
	peak := sim.PeakSize()

	for row, l := range lanes {
		y := gridY + row*(cell+laneGap)
		a.drawText(fmt.Sprintf("#%d", l.Blueprint.ID), 30, y+cell/2-8, 16, ColText)
		for m := 0; m < sim.Horizon(); m++ {
			x := gridX + m*cell
			col := ColGrid
			if m < sim.Steps() {
				r, g, b := engine.ShadeRGB(l.Sizes[m+1], peak)
				col = rl.NewColor(r, g, b, 255)
			}
			rl.DrawRectangle(int32(x), int32(y), int32(cell-1), int32(cell-1), col)
		}
		geodes := ColText
		if l.Geodes() > 0 {
			geodes = ColGeode
		}
		a.drawText(fmt.Sprintf("geodes %d", l.Geodes()), gridX+sim.Horizon()*cell+12, y+cell/2-8, 16, geodes)
	}

	if !sim.Done() {
		x := gridX + sim.Steps()*cell
		height := len(lanes)*(cell+laneGap) - laneGap
		rl.DrawRectangleLines(int32(x), int32(gridY), int32(cell-1), int32(height), ColAccent)
	}
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}
