package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/geodesim/internal/engine"
)

// Grid draws one row per blueprint: its label, one two-column cell per
// minute shaded by frontier size, and the best geode count so far.
func Grid(sim *engine.Simulation) string {
	peak := sim.PeakSize()
	var b strings.Builder

	b.WriteString(strings.Repeat(" ", 6))
	for m := 0; m < sim.Horizon(); m++ {
		if (m+1)%5 == 0 {
			b.WriteString(mutedStyle().Render(fmt.Sprintf("%-2d", (m+1)%100)))
		} else {
			b.WriteString("  ")
		}
	}
	b.WriteString("\n")

	for _, l := range sim.Lanes() {
		b.WriteString(mutedStyle().Render(fmt.Sprintf("#%-4d ", l.Blueprint.ID)))
		for m := 0; m < sim.Horizon(); m++ {
			switch {
			case m < sim.Steps():
				c := blend(CurrentTheme.Low, CurrentTheme.High, engine.Level(l.Sizes[m+1], peak))
				b.WriteString(lipgloss.NewStyle().Foreground(c).Render("██"))
			case m == sim.Steps():
				b.WriteString(keyStyle().Render("▒▒"))
			default:
				b.WriteString(lipgloss.NewStyle().Foreground(CurrentTheme.Empty).Render("░░"))
			}
		}
		geodes := mutedStyle()
		if l.Geodes() > 0 {
			geodes = lipgloss.NewStyle().Bold(true).Foreground(CurrentTheme.Geode)
		}
		b.WriteString(geodes.Render(fmt.Sprintf("  %3d geodes", l.Geodes())))
		b.WriteString(mutedStyle().Render(fmt.Sprintf("  %8d states", l.FrontierSize())))
		b.WriteString("\n")
	}
	return b.String()
}

// FrontierChart plots log10 of every lane's frontier size per minute.
// It returns "" until there are two minutes to plot.
func FrontierChart(sim *engine.Simulation, width int) string {
	if sim.Steps() < 2 {
		return ""
	}
	var series [][]float64
	for _, l := range sim.Lanes() {
		vals := make([]float64, len(l.Sizes))
		for i, n := range l.Sizes {
			vals[i] = math.Log10(float64(max(n, 1)))
		}
		series = append(series, vals)
	}
	return asciigraph.PlotMany(series,
		asciigraph.Height(6),
		asciigraph.Width(width),
		asciigraph.Precision(1),
		asciigraph.Caption("log10 frontier size"))
}
