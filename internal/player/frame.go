package player

import "github.com/san-kum/geodesim/internal/engine"

// Frame is everything a front end draws for one session version.
type Frame struct {
	Markup   string
	Step     int
	Visited  int
	Cells    int
	Coverage float64
	Status   string
	Playing  bool
	Done     bool
	Err      error
}

// Render projects the session onto a Frame. It does not touch the engine
// state, so rendering twice yields identical frames.
func (s Session) Render() Frame {
	f := Frame{Playing: s.playing, Err: s.err}
	if s.handle == nil {
		f.Status = engine.Status(nil)
		if s.err != nil {
			f.Markup = engine.ErrorSVG(s.err)
		}
		return f
	}
	f.Markup = s.handle.SVG()
	f.Step = s.handle.Steps()
	f.Visited = s.handle.Visited()
	f.Cells = s.handle.Cells()
	f.Coverage = engine.Coverage(s.handle)
	f.Status = engine.Status(s.handle)
	f.Done = s.handle.Done()
	return f
}
