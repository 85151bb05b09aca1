package blueprint

import (
	"fmt"
	"strings"
)

// State is one point of the search. It is comparable and used as a map key.
type State struct {
	Target Resource
	Robots Resources
	Stock  Resources
}

// Initial is the state at minute zero: one ore robot and nothing in stock.
func Initial() State {
	return State{Target: NoTarget, Robots: Resources{1, 0, 0, 0}}
}

func (s State) String() string {
	return fmt.Sprintf("State[target=%s, robots=%s, stock=%s]", s.Target, s.Robots, s.Stock)
}

// Path is the immutable list of robots chosen so far, newest first.
// A nil *Path is the empty path.
type Path struct {
	Robot Resource
	Prev  *Path
	Len   int
}

// Extend returns a new path with robot appended. p is not modified.
func (p *Path) Extend(robot Resource) *Path {
	n := 1
	if p != nil {
		n = p.Len + 1
	}
	return &Path{Robot: robot, Prev: p, Len: n}
}

// Robots returns the chosen robots in the order they were chosen.
func (p *Path) Robots() []Resource {
	if p == nil {
		return nil
	}
	out := make([]Resource, p.Len)
	for i, n := p.Len-1, p; n != nil; i, n = i-1, n.Prev {
		out[i] = n.Robot
	}
	return out
}

func (p *Path) String() string {
	robots := p.Robots()
	names := make([]string, len(robots))
	for i, r := range robots {
		names[i] = r.String()
	}
	return strings.Join(names, ", ")
}

// Successors calls emit for every state reachable from s in one minute,
// along with its path.
func (bp *Blueprint) Successors(s State, path *Path, emit func(State, *Path)) {
	used, built, ok := bp.build(s.Target, s.Stock)
	if !ok {
		emit(State{Target: s.Target, Robots: s.Robots, Stock: s.Stock.Add(s.Robots)}, path)
		return
	}
	robots := s.Robots.Add(built)
	stock := s.Stock.Sub(used).Add(s.Robots)
	for _, r := range bp.BuildableRobots(s) {
		emit(State{Target: r, Robots: robots, Stock: stock}, path.Extend(r))
	}
}
