package automation

import (
	"context"

	"github.com/san-kum/geodesim/internal/engine"
)

// SweepResult is the best geode count of every blueprint after Minutes.
type SweepResult struct {
	Minutes    int
	Geodes     []int
	QualitySum int
}

// RunSweep steps one simulation through minutes 1..to and reports the
// best geode counts after each minute from on.
func RunSweep(ctx context.Context, text string, from, to int) ([]SweepResult, error) {
	sim, err := engine.New(text, engine.Options{Horizon: to})
	if err != nil {
		return nil, err
	}
	from = max(from, 1)
	results := make([]SweepResult, 0, max(to-from+1, 0))
	for !sim.Done() {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		sim, _ = sim.Advance()
		if sim.Steps() < from {
			continue
		}
		r := SweepResult{Minutes: sim.Steps()}
		for _, l := range sim.Lanes() {
			r.Geodes = append(r.Geodes, l.Geodes())
			r.QualitySum += l.Blueprint.ID * l.Geodes()
		}
		results = append(results, r)
	}
	return results, nil
}
