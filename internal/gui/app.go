package gui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/geodesim/internal/engine"
	"github.com/san-kum/geodesim/internal/export"
	"github.com/san-kum/geodesim/internal/player"
)

// Theme Colors (Monochrome Hyper-Minimalist)
var (
	ColBg      = rl.NewColor(10, 10, 10, 255)    // Deep Black
	ColAccent  = rl.NewColor(0, 204, 204, 255)   // Cursor cyan
	ColSelect  = rl.NewColor(255, 255, 255, 255) // Bright White
	ColText    = rl.NewColor(140, 140, 140, 255) // Neutral Gray
	ColTextDim = rl.NewColor(60, 60, 60, 255)    // Dark Gray (Subtle)
	ColGrid    = rl.NewColor(28, 28, 28, 255)    // Unvisited cell
	ColGeode   = rl.NewColor(255, 136, 255, 255)
	ColError   = rl.NewColor(255, 68, 68, 255)
)

const (
	screenW = 1280
	screenH = 720
)

type Options struct {
	FPS    int
	OutDir string
	Logger *slog.Logger
}

type loaded struct {
	ticket player.LoadTicket
	path   string
	text   string
	err    error
}

type App struct {
	Session player.Session
	Source  string
	Notice  string
	Font    rl.Font

	opts    Options
	token   player.PlayToken
	loads   chan loaded
	exports int
}

// initWindow opens the window and disables the default exit key.
func initWindow(fps int) {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(screenW, screenH, "geodesim")
	rl.SetTargetFPS(int32(fps))
	rl.SetExitKey(0)
}

// loadFont loads the Liberation Mono font from the system path, falling
// back to raylib's built-in font.
func loadFont() rl.Font {
	font := rl.LoadFontEx("/usr/share/fonts/liberation/LiberationMono-Regular.ttf", 32, nil, 0)
	if font.Texture.ID == 0 {
		return rl.GetFontDefault()
	}
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

func NewApp(session player.Session, source string, opts Options) *App {
	if opts.FPS <= 0 {
		opts.FPS = 30
	}
	if opts.OutDir == "" {
		opts.OutDir = "."
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &App{
		Session: session,
		Source:  source,
		opts:    opts,
		loads:   make(chan loaded, 4),
	}
}

// Run opens the window and blocks until it is closed.
func Run(session player.Session, source string, opts Options) {
	app := NewApp(session, source, opts)
	initWindow(app.opts.FPS)
	defer rl.CloseWindow()
	app.Font = loadFont()
	app.RunLoop()
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		a.Update()
		a.Draw()
	}
}

// Update handles one frame of input: completed loads, dropped files,
// keys, and the play chain's frame.
func (a *App) Update() {
	a.drainLoads()

	if rl.IsFileDropped() {
		files := rl.LoadDroppedFiles()
		if len(files) > 0 {
			// the newest drop wins, so only the last file is read
			a.load(files[len(files)-1])
		}
		rl.UnloadDroppedFiles()
	}

	switch {
	case rl.IsKeyPressed(rl.KeyR):
		a.Session = a.Session.Reset()
		a.Notice = ""
		a.opts.Logger.Info("reset", "err", a.Session.Err())
	case rl.IsKeyPressed(rl.KeyS), rl.IsKeyPressed(rl.KeyEnter):
		a.Session, _ = a.Session.Step()
	case rl.IsKeyPressed(rl.KeyT):
		a.Session = a.Session.StepBatch()
	case rl.IsKeyPressed(rl.KeySpace), rl.IsKeyPressed(rl.KeyP):
		a.togglePlay()
		return
	case rl.IsKeyPressed(rl.KeyE):
		a.exportSVG()
	}

	a.frame()
}

func (a *App) togglePlay() {
	s, token, ok := a.Session.TogglePlay()
	a.Session = s
	if ok {
		a.token = token
	}
	a.opts.Logger.Debug("toggle play", "playing", s.Playing(), "token", token)
}

// frame runs the pending animation frame, if any.
func (a *App) frame() {
	if a.token == 0 {
		return
	}
	s, token, ok := a.Session.Frame(a.token)
	a.Session = s
	if !ok {
		a.token = 0
		return
	}
	a.token = token
}

func (a *App) load(path string) {
	s, ticket := a.Session.BeginLoad()
	a.Session = s
	a.Notice = "loading " + filepath.Base(path)
	a.opts.Logger.Debug("load requested", "path", path, "ticket", ticket)
	go func() {
		text, err := player.ReadFile(context.Background(), path)
		a.loads <- loaded{ticket: ticket, path: path, text: text, err: err}
	}()
}

func (a *App) drainLoads() {
	for {
		select {
		case l := <-a.loads:
			s, applied := a.Session.CompleteLoad(l.ticket, l.text, l.err)
			if !applied {
				a.opts.Logger.Info("stale load ignored", "path", l.path, "ticket", l.ticket)
				continue
			}
			a.Session = s
			if l.err == nil {
				a.Source = filepath.Base(l.path)
				a.Notice = "loaded " + l.path
			}
			a.opts.Logger.Info("load completed", "path", l.path, "err", s.Err())
		default:
			return
		}
	}
}

func (a *App) exportSVG() {
	f := a.Session.Render()
	if f.Markup == "" {
		a.Notice = "nothing to export"
		return
	}
	a.exports++
	path := filepath.Join(a.opts.OutDir, fmt.Sprintf("geodesim-step%02d-%d.svg", f.Step, a.exports))
	if err := export.SaveSVG(path, f.Markup); err != nil {
		a.Notice = "export failed: " + err.Error()
		a.opts.Logger.Error("export failed", "path", path, "err", err)
		return
	}
	a.Notice = "saved " + path
}

func (a *App) simulation() (*engine.Simulation, bool) {
	sim, ok := a.Session.Handle().(*engine.Simulation)
	return sim, ok
}
