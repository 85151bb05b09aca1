package automation

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/geodesim/internal/engine"
)

const single = `Blueprint 1: Each ore robot costs 4 ore. Each clay robot costs 2 ore. Each obsidian robot costs 3 ore and 14 clay. Each geode robot costs 2 ore and 7 obsidian.`

func runner() Runner {
	return Runner{Options: engine.DefaultOptions()}
}

func TestParseScenario(t *testing.T) {
	sc, err := ParseScenario([]byte(`
name: basic
preset: single
horizon: 6
actions:
  - do: step_n
    n: 3
  - do: expect
    want: {step: 3, playing: false}
`))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if sc.Name != "basic" || len(sc.Actions) != 2 || sc.Actions[0].N != 3 {
		t.Errorf("unexpected scenario %+v", sc)
	}
	if sc.Actions[1].Want == nil || *sc.Actions[1].Want.Step != 3 {
		t.Error("expected step expectation")
	}

	_, err = ParseScenario([]byte("actions:\n  - do: explode\n"))
	if !errors.Is(err, ErrUnknownAction) {
		t.Errorf("expected ErrUnknownAction, got %v", err)
	}
}

func TestRun_PauseBeforeFrame(t *testing.T) {
	sc, err := ParseScenario([]byte(`
preset: sample
actions:
  - do: toggle
    want: {step: 1, playing: true}
  - do: toggle
    want: {playing: false}
  - do: frame
    want: {step: 1, playing: false}
`))
	if err != nil {
		t.Fatal(err)
	}
	results, err := runner().Run(context.Background(), sc)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(results) != 3 {
		t.Errorf("expected 3 results, got %d", len(results))
	}
}

func TestRun_PlayToEnd(t *testing.T) {
	sc := &Scenario{
		Input:   single,
		Horizon: 5,
		Actions: []Action{{Do: "toggle"}, {Do: "frame", N: 100}},
	}
	results, err := runner().Run(context.Background(), sc)
	if err != nil {
		t.Fatal(err)
	}
	last := results[len(results)-1].Frame
	if last.Step != 5 || last.Playing || !last.Done {
		t.Errorf("expected finished at step 5, got %+v", last)
	}
}

func TestRun_StepComposition(t *testing.T) {
	sc := &Scenario{
		Input: single,
		Actions: []Action{
			{Do: "step_n", N: 4}, {Do: "step_n", N: 6}, {Do: "reset"}, {Do: "batch"},
		},
	}
	results, err := runner().Run(context.Background(), sc)
	if err != nil {
		t.Fatal(err)
	}
	if results[1].Frame.Markup != results[3].Frame.Markup {
		t.Error("StepN(4) then StepN(6) should draw the same as one batch of 10")
	}
}

func TestRun_LoadAndSVG(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.txt")
	if err := os.WriteFile(in, []byte(single), 0644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "out.svg")
	sc := &Scenario{
		Actions: []Action{
			{Do: "step"},
			{Do: "load", Path: in},
			{Do: "svg", Path: out},
			{Do: "load", Path: filepath.Join(dir, "missing")},
		},
	}
	results, err := runner().Run(context.Background(), sc)
	if err != nil {
		t.Fatal(err)
	}
	if results[1].Frame.Step != 0 || results[1].Frame.Cells != 24 {
		t.Errorf("expected fresh single-blueprint session, got %+v", results[1].Frame)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("svg not written: %v", err)
	}
	if results[3].Frame.Err == nil {
		t.Error("expected read error to be reported")
	}
}

func TestRun_ExpectationFails(t *testing.T) {
	yes := true
	sc := &Scenario{
		Input:   "garbage",
		Actions: []Action{{Do: "step", Want: &Expect{Error: &yes}}, {Do: "expect", Want: &Expect{Done: &yes}}},
	}
	results, err := runner().Run(context.Background(), sc)
	if !errors.Is(err, ErrExpectation) {
		t.Fatalf("expected ErrExpectation, got %v", err)
	}
	if len(results) != 2 {
		t.Errorf("expected failing action to be reported, got %d results", len(results))
	}
}

func TestRun_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := runner().Run(ctx, &Scenario{Actions: []Action{{Do: "step"}}})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRunSweep(t *testing.T) {
	if testing.Short() {
		t.Skip("full 24 minute search")
	}
	results, err := RunSweep(context.Background(), single, 18, 24)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 7 || results[0].Minutes != 18 {
		t.Fatalf("unexpected sweep shape %+v", results)
	}
	if results[0].Geodes[0] != 0 {
		t.Errorf("expected no geodes at minute 18, got %d", results[0].Geodes[0])
	}
	if last := results[len(results)-1]; last.Geodes[0] != 9 || last.QualitySum != 9 {
		t.Errorf("expected 9 geodes at minute 24, got %+v", last)
	}
}

func TestRunSweep_Malformed(t *testing.T) {
	if _, err := RunSweep(context.Background(), "nope", 1, 3); err == nil {
		t.Error("expected parse error")
	}
}
