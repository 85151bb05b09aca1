package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines color scheme for the TUI
type Theme struct {
	Name    string
	Title   lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Accent  lipgloss.Color
	Geode   lipgloss.Color
	Error   lipgloss.Color
	Empty   lipgloss.Color
	Low     lipgloss.Color // smallest frontier
	High    lipgloss.Color // largest frontier
	Warning lipgloss.Color
}

var (
	ThemeForest = Theme{
		Name:    "forest",
		Title:   lipgloss.Color("#00cccc"),
		Text:    lipgloss.Color("#dddddd"),
		Muted:   lipgloss.Color("#666688"),
		Accent:  lipgloss.Color("#00ffff"),
		Geode:   lipgloss.Color("#ff88ff"),
		Error:   lipgloss.Color("#ff4444"),
		Empty:   lipgloss.Color("#2a2a2a"),
		Low:     lipgloss.Color("#144628"),
		High:    lipgloss.Color("#28ff64"),
		Warning: lipgloss.Color("#ffaa00"),
	}

	ThemeEmber = Theme{
		Name:    "ember",
		Title:   lipgloss.Color("#ff6b6b"),
		Text:    lipgloss.Color("#fff5f5"),
		Muted:   lipgloss.Color("#8b6b8c"),
		Accent:  lipgloss.Color("#feca57"),
		Geode:   lipgloss.Color("#ff9ff3"),
		Error:   lipgloss.Color("#ff4757"),
		Empty:   lipgloss.Color("#2d1b2e"),
		Low:     lipgloss.Color("#5a1e12"),
		High:    lipgloss.Color("#ffc048"),
		Warning: lipgloss.Color("#ffc048"),
	}

	ThemeMono = Theme{
		Name:    "mono",
		Title:   lipgloss.Color("#ffffff"),
		Text:    lipgloss.Color("#cccccc"),
		Muted:   lipgloss.Color("#888888"),
		Accent:  lipgloss.Color("#ffffff"),
		Geode:   lipgloss.Color("#ffffff"),
		Error:   lipgloss.Color("#ff0000"),
		Empty:   lipgloss.Color("#222222"),
		Low:     lipgloss.Color("#444444"),
		High:    lipgloss.Color("#eeeeee"),
		Warning: lipgloss.Color("#ffaa00"),
	}

	// Default theme
	CurrentTheme = ThemeForest

	Themes = []Theme{
		ThemeForest,
		ThemeEmber,
		ThemeMono,
	}
)

// GetTheme returns a theme by name
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeForest
}

// SetTheme changes the current theme
func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

// NextTheme switches to the theme after the current one.
func NextTheme() {
	names := ThemeNames()
	for i, name := range names {
		if name == CurrentTheme.Name {
			SetTheme(names[(i+1)%len(names)])
			return
		}
	}
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
