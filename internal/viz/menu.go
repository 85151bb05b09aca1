package viz

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/geodesim/internal/engine"
	"github.com/san-kum/geodesim/internal/player"
)

// Menu picks a built-in input and then hands over to the player screen.
type Menu struct {
	names   []string
	inputs  map[string]string
	cursor  int
	factory engine.Factory
	batch   int
	opts    Options
	started bool
	live    Model
	width   int
}

func NewMenu(inputs map[string]string, factory engine.Factory, batch int, opts Options) Menu {
	names := make([]string, 0, len(inputs))
	for name := range inputs {
		names = append(names, name)
	}
	sort.Strings(names)
	return Menu{names: names, inputs: inputs, factory: factory, batch: batch, opts: opts.withDefaults(), width: 80}
}

func (m Menu) Init() tea.Cmd { return nil }

func (m Menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = ws.Width
	}
	if m.started {
		next, cmd := m.live.Update(msg)
		m.live = next.(Model)
		return m, cmd
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.names)-1 {
			m.cursor++
		}
	case "enter", " ":
		if len(m.names) == 0 {
			return m, nil
		}
		name := m.names[m.cursor]
		session := player.New(m.factory, m.inputs[name], player.WithBatch(m.batch))
		m.opts.Logger.Info("preset selected", "preset", name, "err", session.Err())
		m.live = NewModel(session, name, m.opts)
		m.live.width = m.width
		m.started = true
		return m, m.live.Init()
	}
	return m, nil
}

func (m Menu) View() string {
	if m.started {
		return m.live.View()
	}
	var b strings.Builder
	b.WriteString("\n\n    " + titleStyle().Render("GEODESIM") + "\n    " + mutedStyle().Render("robot blueprint search") + "\n    " + mutedStyle().Render("─────────────────────────") + "\n\n")
	for i, name := range m.names {
		desc := describe(m.inputs[name])
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", keyStyle().Render("▸"), lipgloss.NewStyle().Foreground(CurrentTheme.Text).Bold(true).Render(fmt.Sprintf("%-10s", name)), lipgloss.NewStyle().Foreground(CurrentTheme.Geode).Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("    %s  %s\n", mutedStyle().Render(fmt.Sprintf("  %-10s", name)), mutedStyle().Render(desc)))
		}
	}
	b.WriteString("\n    " + keyStyle().Render("j/k") + mutedStyle().Render(" navigate  ") + keyStyle().Render("enter") + mutedStyle().Render(" select  ") + keyStyle().Render("q") + mutedStyle().Render(" quit") + "\n")
	return b.String()
}

func describe(input string) string {
	n := 0
	for _, line := range strings.Split(input, "\n") {
		if strings.TrimSpace(line) != "" {
			n++
		}
	}
	if n == 1 {
		return "1 blueprint"
	}
	return fmt.Sprintf("%d blueprints", n)
}

// RunMenu starts the preset picker on the alternate screen.
func RunMenu(inputs map[string]string, factory engine.Factory, batch int, opts Options) error {
	_, err := tea.NewProgram(NewMenu(inputs, factory, batch, opts), tea.WithAltScreen()).Run()
	return err
}
