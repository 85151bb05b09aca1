package viz

import (
	"context"
	"fmt"
	"image"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/geodesim/internal/engine"
	"github.com/san-kum/geodesim/internal/export"
	"github.com/san-kum/geodesim/internal/player"
)

const (
	DefaultFPS  = 30
	recordLimit = 600
	chartWidth  = 48
)

var (
	panelStyle = lipgloss.NewStyle().Padding(1, 2)
	helpStyle  = lipgloss.NewStyle().MarginTop(1)
)

// Options configure the terminal player.
type Options struct {
	FPS int
	// OutDir receives exported SVG and GIF files.
	OutDir string
	Logger *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.FPS <= 0 {
		o.FPS = DefaultFPS
	}
	if o.OutDir == "" {
		o.OutDir = "."
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o
}

type frameMsg struct{ token player.PlayToken }

type loadedMsg struct {
	ticket player.LoadTicket
	path   string
	text   string
	err    error
}

type savedMsg struct {
	path string
	err  error
}

// Model is the player screen.
type Model struct {
	session   player.Session
	opts      Options
	source    string
	prompting bool
	pathBuf   string
	notice    string
	recording bool
	frames    []*image.Paletted
	showHelp  bool
	exports   int
	width     int
}

// NewModel wraps session. source names the current input in the header.
func NewModel(session player.Session, source string, opts Options) Model {
	return Model{session: session, opts: opts.withDefaults(), source: source, width: 80}
}

// Session returns the controller state the model currently shows.
func (m Model) Session() player.Session { return m.session }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) tick(token player.PlayToken) tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.opts.FPS), func(time.Time) tea.Msg {
		return frameMsg{token: token}
	})
}

func readCmd(ticket player.LoadTicket, path string) tea.Cmd {
	return func() tea.Msg {
		text, err := player.ReadFile(context.Background(), path)
		return loadedMsg{ticket: ticket, path: path, text: text, err: err}
	}
}

func saveSVGCmd(path, markup string) tea.Cmd {
	return func() tea.Msg {
		return savedMsg{path: path, err: export.SaveSVG(path, markup)}
	}
}

func saveGIFCmd(path string, frames []*image.Paletted, delay int) tea.Cmd {
	return func() tea.Msg {
		return savedMsg{path: path, err: export.SaveGIF(path, frames, delay)}
	}
}

// Update maps keys and scheduled messages onto session operations.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		if m.prompting {
			return m.promptKey(msg)
		}
		return m.playerKey(msg)
	case frameMsg:
		s, token, ok := m.session.Frame(msg.token)
		m.session = s
		m.capture()
		if !ok {
			m.opts.Logger.Debug("play chain ended", "token", msg.token, "step", m.stepCount())
			return m, nil
		}
		return m, m.tick(token)
	case loadedMsg:
		s, applied := m.session.CompleteLoad(msg.ticket, msg.text, msg.err)
		if !applied {
			m.opts.Logger.Info("stale load ignored", "path", msg.path, "ticket", msg.ticket)
			return m, nil
		}
		m.session = s
		if msg.err != nil {
			m.notice = ""
			m.opts.Logger.Warn("load failed", "path", msg.path, "err", msg.err)
			return m, nil
		}
		m.source = filepath.Base(msg.path)
		m.notice = "loaded " + msg.path
		m.opts.Logger.Info("input loaded", "path", msg.path, "err", s.Err())
		m.capture()
		return m, nil
	case savedMsg:
		if msg.err != nil {
			m.notice = "export failed: " + msg.err.Error()
			m.opts.Logger.Error("export failed", "path", msg.path, "err", msg.err)
		} else {
			m.notice = "saved " + msg.path
			m.opts.Logger.Info("exported", "path", msg.path)
		}
		return m, nil
	}
	return m, nil
}

func (m Model) playerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "r":
		m.session = m.session.Reset()
		m.notice = ""
		m.opts.Logger.Info("reset", "err", m.session.Err())
		m.capture()
	case "s", "enter":
		m.session, _ = m.session.Step()
		m.capture()
	case "t":
		m.session = m.session.StepBatch()
		m.capture()
	case " ", "p":
		s, token, ok := m.session.TogglePlay()
		m.session = s
		m.opts.Logger.Debug("toggle play", "playing", s.Playing(), "token", token)
		m.capture()
		if ok {
			return m, m.tick(token)
		}
	case "o":
		m.prompting, m.pathBuf = true, ""
	case "e":
		f := m.session.Render()
		if f.Markup == "" {
			m.notice = "nothing to export"
			return m, nil
		}
		m.exports++
		path := filepath.Join(m.opts.OutDir, fmt.Sprintf("geodesim-step%02d-%d.svg", f.Step, m.exports))
		return m, saveSVGCmd(path, f.Markup)
	case "g":
		if m.recording {
			frames := m.frames
			m.recording, m.frames = false, nil
			if len(frames) == 0 {
				m.notice = "recording empty"
				return m, nil
			}
			path := filepath.Join(m.opts.OutDir, "geodesim.gif")
			return m, saveGIFCmd(path, frames, max(100/m.opts.FPS, 2))
		}
		m.recording, m.frames = true, nil
		m.capture()
	case "c":
		NextTheme()
	case "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

func (m Model) promptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.prompting, m.pathBuf = false, ""
	case tea.KeyEnter:
		path := strings.TrimSpace(m.pathBuf)
		m.prompting, m.pathBuf = false, ""
		if path == "" {
			return m, nil
		}
		s, ticket := m.session.BeginLoad()
		m.session = s
		m.notice = "loading " + path
		m.opts.Logger.Debug("load requested", "path", path, "ticket", ticket)
		return m, readCmd(ticket, path)
	case tea.KeyBackspace:
		if r := []rune(m.pathBuf); len(r) > 0 {
			m.pathBuf = string(r[:len(r)-1])
		}
	case tea.KeyRunes, tea.KeySpace:
		m.pathBuf += string(msg.Runes)
	case tea.KeyCtrlC:
		return m, tea.Quit
	}
	return m, nil
}

// capture appends the current grid to the GIF recording.
func (m *Model) capture() {
	if !m.recording || len(m.frames) >= recordLimit {
		return
	}
	sim, ok := m.session.Handle().(*engine.Simulation)
	if !ok {
		return
	}
	m.frames = append(m.frames, export.Raster(sim, 8))
}

func (m Model) stepCount() int {
	if h := m.session.Handle(); h != nil {
		return h.Steps()
	}
	return 0
}

// View renders the TUI interface.
func (m Model) View() string {
	f := m.session.Render()
	var s strings.Builder

	s.WriteString(GradientText("GEODESIM", CurrentTheme.Title, CurrentTheme.Geode))
	s.WriteString("  " + mutedStyle().Render(m.source) + "\n\n")

	if sim, ok := m.session.Handle().(*engine.Simulation); ok {
		s.WriteString(Grid(sim) + "\n")
		if chart := FrontierChart(sim, chartWidth); chart != "" {
			s.WriteString(textStyle().Render(chart) + "\n\n")
		}
	}

	state := "PAUSED"
	switch {
	case f.Playing:
		state = "PLAYING"
	case f.Done:
		state = "DONE"
	}
	if m.recording {
		state += " ● REC"
	}
	s.WriteString(statusStyle(f.Playing).Render(state) + "  " + textStyle().Render(f.Status) + "\n")
	s.WriteString(ProgressBar(f.Coverage/100, 40) + "\n")

	if f.Err != nil {
		s.WriteString("\n" + errorStyle().Render("error: "+f.Err.Error()) + "\n")
	}
	if m.prompting {
		s.WriteString("\n" + keyStyle().Render("open: ") + textStyle().Render(m.pathBuf+"_") + "\n")
	} else if m.notice != "" {
		s.WriteString("\n" + mutedStyle().Render(m.notice) + "\n")
	}

	s.WriteString(helpStyle.Render(Separator(min(m.width-4, 56)) + "\n" + m.helpLine()))
	view := panelStyle.Render(s.String())
	if m.showHelp {
		return helpOverlay + "\n" + view
	}
	return view
}

func (m Model) helpLine() string {
	keys := []struct{ key, what string }{
		{"r", "reset"}, {"s", "step"}, {"t", fmt.Sprintf("step×%d", m.session.Batch())},
		{"space", "play"}, {"o", "open"}, {"e", "svg"}, {"q", "quit"},
	}
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = keyStyle().Render(k.key) + mutedStyle().Render(" "+k.what)
	}
	return strings.Join(parts, "  ")
}

const helpOverlay = `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  R        - Reset to current input   ║
║  S/Enter  - Step one minute          ║
║  T        - Step a batch             ║
║  Space/P  - Play/Pause               ║
║  O        - Open an input file       ║
║  E        - Export SVG               ║
║  G        - Toggle GIF recording     ║
║  C        - Cycle themes             ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝`

// Run starts the player on the terminal's alternate screen.
func Run(session player.Session, source string, opts Options) error {
	_, err := tea.NewProgram(NewModel(session, source, opts), tea.WithAltScreen()).Run()
	return err
}
