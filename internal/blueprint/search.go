package blueprint

import (
	"context"
)

// Frontier maps every distinct state reached after some minutes to the
// path that first reached it.
type Frontier map[State]*Path

// Start returns the frontier at minute zero.
func Start() Frontier {
	return Frontier{Initial(): nil}
}

// Advance returns the frontier one minute after f. f is left untouched.
// When two paths reach the same state the shorter, then lexically smaller,
// path is kept so the result does not depend on map iteration order.
func (bp *Blueprint) Advance(f Frontier) Frontier {
	next := make(Frontier, len(f)*2)
	for s, p := range f {
		bp.Successors(s, p, func(ns State, np *Path) {
			if old, seen := next[ns]; seen && !pathLess(np, old) {
				return
			}
			next[ns] = np
		})
	}
	return next
}

// Best returns the state holding the most geodes and its path. Ties are
// broken on the state itself so the choice is stable.
func (f Frontier) Best() (State, *Path) {
	var (
		best  State
		path  *Path
		found bool
	)
	for s, p := range f {
		if !found || s.Stock[Geode] > best.Stock[Geode] ||
			(s.Stock[Geode] == best.Stock[Geode] && stateLess(s, best)) {
			best, path, found = s, p, true
		}
	}
	return best, path
}

// MaxGeodes returns the largest number of geodes open after minutes.
func (bp *Blueprint) MaxGeodes(minutes int) int {
	n, _ := bp.MaxGeodesContext(context.Background(), minutes)
	return n
}

// MaxGeodesContext is MaxGeodes with cancellation checked between minutes.
func (bp *Blueprint) MaxGeodesContext(ctx context.Context, minutes int) (int, error) {
	f := Start()
	for t := 0; t < minutes; t++ {
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		default:
		}
		f = bp.Advance(f)
	}
	best, _ := f.Best()
	return best.Stock[Geode], nil
}

// QualityLevel is the blueprint ID times the geodes it opens in minutes.
func (bp *Blueprint) QualityLevel(minutes int) int {
	return bp.ID * bp.MaxGeodes(minutes)
}

func pathLess(a, b *Path) bool {
	if a == nil || b == nil {
		return a == nil && b != nil
	}
	if a.Len != b.Len {
		return a.Len < b.Len
	}
	// newest-first walk; shared tails end the comparison early
	for a != b {
		if a.Robot != b.Robot {
			return a.Robot < b.Robot
		}
		a, b = a.Prev, b.Prev
	}
	return false
}

func stateLess(a, b State) bool {
	for i := NumResources - 1; i >= 0; i-- {
		if a.Stock[i] != b.Stock[i] {
			return a.Stock[i] > b.Stock[i]
		}
	}
	for i := NumResources - 1; i >= 0; i-- {
		if a.Robots[i] != b.Robots[i] {
			return a.Robots[i] > b.Robots[i]
		}
	}
	return a.Target < b.Target
}
