package engine

import (
	"errors"
	"fmt"
	"sync"

	"github.com/san-kum/geodesim/internal/blueprint"
)

// Handle is one immutable version of a simulation.
type Handle interface {
	// Step returns the handle one unit later and whether further steps
	// remain. Stepping a finished handle returns the receiver and false.
	Step() (Handle, bool)
	Done() bool
	SVG() string
	Steps() int
	Visited() int
	Cells() int
}

// Factory constructs a handle from blueprint text.
type Factory func(text string) (Handle, error)

// ErrInvalidHorizon indicates a horizon that is not positive.
var ErrInvalidHorizon = errors.New("engine: horizon must be positive")

const (
	DefaultHorizon  = 24
	DefaultCellSize = 16
)

type Options struct {
	Horizon  int
	CellSize int
}

func DefaultOptions() Options {
	return Options{Horizon: DefaultHorizon, CellSize: DefaultCellSize}
}

// Lane is the search progress of a single blueprint.
type Lane struct {
	Blueprint blueprint.Blueprint
	// Sizes[i] is the frontier size after minute i; Sizes[0] is 1.
	Sizes    []int
	Best     blueprint.State
	BestPath *blueprint.Path
	frontier blueprint.Frontier
}

func (l Lane) Geodes() int { return l.Best.Stock[blueprint.Geode] }

func (l Lane) FrontierSize() int { return len(l.frontier) }

// Simulation advances every blueprint of the input one minute per step.
type Simulation struct {
	opts   Options
	minute int
	lanes  []Lane
}

// New parses text and returns the simulation at minute zero.
func New(text string, opts Options) (*Simulation, error) {
	if opts.Horizon <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidHorizon, opts.Horizon)
	}
	if opts.CellSize <= 0 {
		opts.CellSize = DefaultCellSize
	}
	bps, err := blueprint.Parse(text)
	if err != nil {
		return nil, err
	}
	lanes := make([]Lane, len(bps))
	for i, bp := range bps {
		f := blueprint.Start()
		best, path := f.Best()
		lanes[i] = Lane{Blueprint: bp, Sizes: []int{len(f)}, Best: best, BestPath: path, frontier: f}
	}
	return &Simulation{opts: opts, lanes: lanes}, nil
}

// NewFactory adapts New to a Factory with fixed options.
func NewFactory(opts Options) Factory {
	return func(text string) (Handle, error) {
		sim, err := New(text, opts)
		if err != nil {
			return nil, err
		}
		return sim, nil
	}
}

func (s *Simulation) Step() (Handle, bool) {
	next, more := s.Advance()
	return next, more
}

// Advance is Step with the concrete type.
func (s *Simulation) Advance() (*Simulation, bool) {
	if s.Done() {
		return s, false
	}
	lanes := make([]Lane, len(s.lanes))
	var wg sync.WaitGroup
	for i := range s.lanes {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			lanes[idx] = s.lanes[idx].advance()
		}(i)
	}
	wg.Wait()

	next := &Simulation{opts: s.opts, minute: s.minute + 1, lanes: lanes}
	return next, !next.Done()
}

func (l Lane) advance() Lane {
	f := l.Blueprint.Advance(l.frontier)
	sizes := make([]int, len(l.Sizes)+1)
	copy(sizes, l.Sizes)
	sizes[len(l.Sizes)] = len(f)
	best, path := f.Best()
	return Lane{Blueprint: l.Blueprint, Sizes: sizes, Best: best, BestPath: path, frontier: f}
}

func (s *Simulation) Done() bool { return s.minute >= s.opts.Horizon }

func (s *Simulation) Steps() int { return s.minute }

func (s *Simulation) Horizon() int { return s.opts.Horizon }

func (s *Simulation) Visited() int { return len(s.lanes) * s.minute }

func (s *Simulation) Cells() int { return len(s.lanes) * s.opts.Horizon }

// PeakSize is the largest frontier seen so far in any lane, at least 1.
// Front ends scale their shading against it.
func (s *Simulation) PeakSize() int {
	peak := 1
	for _, l := range s.lanes {
		for _, n := range l.Sizes {
			if n > peak {
				peak = n
			}
		}
	}
	return peak
}

// Lanes returns a copy of the per-blueprint progress.
func (s *Simulation) Lanes() []Lane {
	out := make([]Lane, len(s.lanes))
	copy(out, s.lanes)
	return out
}

// Coverage returns the visited share of h's grid as a percentage.
func Coverage(h Handle) float64 {
	if h == nil || h.Cells() == 0 {
		return 0
	}
	return float64(h.Visited()) / float64(h.Cells()) * 100
}

// Status formats the step counter and coverage the way every front end
// shows them.
func Status(h Handle) string {
	if h == nil {
		return "Step 0, 0.0% coverage"
	}
	return fmt.Sprintf("Step %d, %.1f%% coverage", h.Steps(), Coverage(h))
}
