package automation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/san-kum/geodesim/internal/config"
	"github.com/san-kum/geodesim/internal/engine"
	"github.com/san-kum/geodesim/internal/export"
	"github.com/san-kum/geodesim/internal/player"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownAction = errors.New("unknown action")
	ErrExpectation   = errors.New("expectation failed")
)

// Scenario is a scripted player session.
type Scenario struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Input       string   `yaml:"input"`
	Preset      string   `yaml:"preset"`
	Horizon     int      `yaml:"horizon"`
	Batch       int      `yaml:"batch"`
	Actions     []Action `yaml:"actions"`
}

// Action is one controller operation. Do is one of reset, step, step_n,
// batch, toggle, frame, load, input, svg and expect.
type Action struct {
	Do   string  `yaml:"do"`
	N    int     `yaml:"n"`
	Path string  `yaml:"path"`
	Text string  `yaml:"text"`
	Want *Expect `yaml:"want"`
}

type Expect struct {
	Step    *int  `yaml:"step"`
	Playing *bool `yaml:"playing"`
	Done    *bool `yaml:"done"`
	Error   *bool `yaml:"error"`
}

// Result is the frame observed after one action.
type Result struct {
	Index  int
	Action string
	Frame  player.Frame
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	for i, a := range scenario.Actions {
		if !knownAction(a.Do) {
			return nil, fmt.Errorf("action %d: %w %q", i+1, ErrUnknownAction, a.Do)
		}
	}
	return &scenario, nil
}

func knownAction(name string) bool {
	switch name {
	case "reset", "step", "step_n", "batch", "toggle", "frame", "load", "input", "svg", "expect":
		return true
	}
	return false
}

func (sc *Scenario) input() (string, error) {
	if sc.Input != "" {
		return sc.Input, nil
	}
	name := sc.Preset
	if name == "" {
		name = config.DefaultPreset
	}
	text, ok := config.GetPreset(name)
	if !ok {
		return "", fmt.Errorf("unknown preset %q", name)
	}
	return text, nil
}

// Runner replays scenarios against a fresh session each time.
type Runner struct {
	Options engine.Options
	Logger  *slog.Logger
}

func (r Runner) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return r.Logger
}

// Run executes every action in order and returns the frame seen after
// each. It stops at the first failing action.
func (r Runner) Run(ctx context.Context, sc *Scenario) ([]Result, error) {
	log := r.logger().With("scenario", sc.Name)
	opts := r.Options
	if sc.Horizon > 0 {
		opts.Horizon = sc.Horizon
	}
	text, err := sc.input()
	if err != nil {
		return nil, err
	}

	var playerOpts []player.Option
	if sc.Batch > 0 {
		playerOpts = append(playerOpts, player.WithBatch(sc.Batch))
	}
	s := player.New(engine.NewFactory(opts), text, playerOpts...)
	// token of the most recently scheduled frame; it outlives a pause the
	// way a pending animation frame would
	var token player.PlayToken

	results := make([]Result, 0, len(sc.Actions))
	for i, a := range sc.Actions {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		switch a.Do {
		case "reset":
			s = s.Reset()
		case "step":
			s, _ = s.Step()
		case "step_n":
			s = s.StepN(a.N)
		case "batch":
			s = s.StepBatch()
		case "toggle":
			var next player.PlayToken
			var ok bool
			if s, next, ok = s.TogglePlay(); ok {
				token = next
			}
		case "frame":
			n := max(a.N, 1)
			for j := 0; j < n; j++ {
				next, nextToken, ok := s.Frame(token)
				s = next
				if !ok {
					break
				}
				token = nextToken
			}
		case "load":
			var ticket player.LoadTicket
			s, ticket = s.BeginLoad()
			text, err := player.ReadFile(ctx, a.Path)
			s, _ = s.CompleteLoad(ticket, text, err)
		case "input":
			s = s.WithInput(a.Text)
		case "svg":
			if err := export.SaveSVG(a.Path, s.Render().Markup); err != nil {
				return results, fmt.Errorf("action %d: %w", i+1, err)
			}
		case "expect":
		default:
			return results, fmt.Errorf("action %d: %w %q", i+1, ErrUnknownAction, a.Do)
		}

		f := s.Render()
		log.Debug("action", "index", i+1, "do", a.Do, "status", f.Status, "playing", f.Playing)
		results = append(results, Result{Index: i + 1, Action: a.Do, Frame: f})
		if a.Want != nil {
			if err := a.Want.check(f); err != nil {
				return results, fmt.Errorf("action %d (%s): %w", i+1, a.Do, err)
			}
		}
	}
	return results, nil
}

func (e *Expect) check(f player.Frame) error {
	if e.Step != nil && f.Step != *e.Step {
		return fmt.Errorf("%w: step %d, want %d", ErrExpectation, f.Step, *e.Step)
	}
	if e.Playing != nil && f.Playing != *e.Playing {
		return fmt.Errorf("%w: playing %v, want %v", ErrExpectation, f.Playing, *e.Playing)
	}
	if e.Done != nil && f.Done != *e.Done {
		return fmt.Errorf("%w: done %v, want %v", ErrExpectation, f.Done, *e.Done)
	}
	if e.Error != nil && (f.Err != nil) != *e.Error {
		return fmt.Errorf("%w: error %v, want error=%v", ErrExpectation, f.Err, *e.Error)
	}
	return nil
}
