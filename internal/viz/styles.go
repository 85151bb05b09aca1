package viz

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func titleStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(CurrentTheme.Title)
}

func textStyle() lipgloss.Style  { return lipgloss.NewStyle().Foreground(CurrentTheme.Text) }
func mutedStyle() lipgloss.Style { return lipgloss.NewStyle().Foreground(CurrentTheme.Muted) }
func keyStyle() lipgloss.Style   { return lipgloss.NewStyle().Bold(true).Foreground(CurrentTheme.Accent) }

func errorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(CurrentTheme.Error)
}

func statusStyle(playing bool) lipgloss.Style {
	if playing {
		return lipgloss.NewStyle().Bold(true).Foreground(CurrentTheme.High)
	}
	return lipgloss.NewStyle().Bold(true).Foreground(CurrentTheme.Warning)
}

// GradientText colors each rune of text along a ramp from start to end.
func GradientText(text string, start, end lipgloss.Color) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}
	var b strings.Builder
	for i, c := range runes {
		t := 0.0
		if len(runes) > 1 {
			t = float64(i) / float64(len(runes)-1)
		}
		b.WriteString(lipgloss.NewStyle().Foreground(blend(start, end, t)).Bold(true).Render(string(c)))
	}
	return b.String()
}

// ProgressBar renders ratio in [0, 1] as a bar of width cells.
func ProgressBar(ratio float64, width int) string {
	filled := int(ratio * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	bar := lipgloss.NewStyle().Foreground(blend(CurrentTheme.Low, CurrentTheme.High, ratio)).Render(strings.Repeat("█", filled))
	return bar + lipgloss.NewStyle().Foreground(CurrentTheme.Empty).Render(strings.Repeat("░", width-filled))
}

// Separator draws a horizontal rule with a centre mark.
func Separator(width int) string {
	if width < 8 {
		return mutedStyle().Render(strings.Repeat("─", max(width, 0)))
	}
	mid := width / 2
	left := strings.Repeat("─", mid-3)
	right := strings.Repeat("─", width-mid-3)
	return mutedStyle().Render(left + " ◆ " + right)
}

// blend interpolates two #rrggbb colors.
func blend(a, b lipgloss.Color, t float64) lipgloss.Color {
	t = min(max(t, 0), 1)
	ar, ag, ab := parseHex(string(a))
	br, bg, bb := parseHex(string(b))
	mix := func(x, y int) int { return x + int(t*float64(y-x)+0.5) }
	return lipgloss.Color(hexColor(mix(ar, br), mix(ag, bg), mix(ab, bb)))
}

func parseHex(hex string) (r, g, b int) {
	if len(hex) != 7 || hex[0] != '#' {
		return 255, 255, 255
	}
	v, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return 255, 255, 255
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff)
}

func hexColor(r, g, b int) string {
	clamp := func(v int) int { return min(max(v, 0), 255) }
	return fmt.Sprintf("#%02x%02x%02x", clamp(r), clamp(g), clamp(b))
}
