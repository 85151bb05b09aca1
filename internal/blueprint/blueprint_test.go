package blueprint

import (
	"context"
	"errors"
	"strings"
	"testing"
)

const sampleInput = `Blueprint 1: Each ore robot costs 4 ore. Each clay robot costs 2 ore. Each obsidian robot costs 3 ore and 14 clay. Each geode robot costs 2 ore and 7 obsidian.
Blueprint 2: Each ore robot costs 2 ore. Each clay robot costs 3 ore. Each obsidian robot costs 3 ore and 8 clay. Each geode robot costs 3 ore and 12 obsidian.
`

func mustParse(t *testing.T) []Blueprint {
	t.Helper()
	bps, err := Parse(sampleInput)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return bps
}

func TestParse(t *testing.T) {
	bps := mustParse(t)
	if len(bps) != 2 {
		t.Fatalf("expected 2 blueprints, got %d", len(bps))
	}

	bp := bps[1]
	if bp.ID != 2 {
		t.Errorf("expected id 2, got %d", bp.ID)
	}
	if bp.Recipes[Obsidian] != (Resources{3, 8, 0, 0}) {
		t.Errorf("obsidian recipe = %v", bp.Recipes[Obsidian])
	}
	if bp.Recipes[Geode] != (Resources{3, 0, 12, 0}) {
		t.Errorf("geode recipe = %v", bp.Recipes[Geode])
	}
	if bp.MaxRobots[Ore] != 3 || bp.MaxRobots[Clay] != 8 || bp.MaxRobots[Obsidian] != 12 {
		t.Errorf("max robots = %v", bp.MaxRobots)
	}
}

func TestParse_CRLFAndBlankLines(t *testing.T) {
	input := "\r\n" + "Blueprint 7: Each ore robot costs 4 ore. Each clay robot costs 2 ore. Each obsidian robot costs 3 ore and 14 clay. Each geode robot costs 2 ore and 7 obsidian.\r\n\r\n"
	bps, err := Parse(input)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(bps) != 1 || bps[0].ID != 7 {
		t.Errorf("unexpected blueprints: %+v", bps)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		line  int
		want  error
	}{
		{"garbage", "hello world", 1, ErrMalformed},
		{"second line bad", strings.Split(sampleInput, "\n")[0] + "\nBlueprint x: nope\n", 2, ErrMalformed},
		{"wrapped blueprint", "Blueprint 1:\n  Each ore robot costs 4 ore.\n  Each clay robot costs 2 ore.\n", 1, ErrMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("expected *ParseError, got %v", err)
			}
			if perr.Line != tt.line {
				t.Errorf("expected line %d, got %d", tt.line, perr.Line)
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v in chain, got %v", tt.want, err)
			}
		})
	}
}

func TestParse_Empty(t *testing.T) {
	for _, in := range []string{"", "\n\n", "   "} {
		if _, err := Parse(in); !errors.Is(err, ErrNoBlueprints) {
			t.Errorf("Parse(%q) = %v, want ErrNoBlueprints", in, err)
		}
	}
}

func TestResources(t *testing.T) {
	if !(Resources{10, 10, 0, 0}).Contains(Resources{4, 0, 0, 0}) {
		t.Error("expected contains")
	}
	if (Resources{1, 0, 0, 0}).Contains(Resources{1, 1, 0, 0}) {
		t.Error("expected not contains")
	}

	tests := []struct {
		got, want Resources
	}{
		{Resources{1, 0, 0, 0}.Add(Resources{0, 1, 0, 0}), Resources{1, 1, 0, 0}},
		{Resources{4, 2, 0, 0}.Sub(Resources{0, 1, 0, 0}), Resources{4, 1, 0, 0}},
		{Resources{2, 2, 2, 2}.Sub(Resources{1, 1, 1, 1}), Resources{1, 1, 1, 1}},
		{Resources{2, 2, 2, 2}.Sub(Resources{1, 1, 3, 1}), Resources{1, 1, 0, 1}},
		{Resources{2, 2, 2, 2}.Sub(Resources{1, 1, 1, 1}).Add(Resources{1, 2, 3, 4}), Resources{2, 3, 4, 5}},
	}
	for i, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("case %d: got %v, want %v", i, tt.got, tt.want)
		}
	}
}

func TestBuildableRobots(t *testing.T) {
	bps := mustParse(t)
	s := State{Target: NoTarget, Robots: Resources{1, 1, 0, 0}, Stock: Resources{1, 1, 0, 0}}

	got := bps[0].BuildableRobots(s)
	want := []Resource{Ore, Clay, Obsidian}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got %v, want %v", got, want)
		}
	}
}

func TestBuildableRobots_SkipsWhenGeodeAffordable(t *testing.T) {
	bps := mustParse(t)
	s := State{Target: NoTarget, Robots: Resources{1, 1, 1, 0}, Stock: Resources{2, 0, 7, 0}}

	for _, r := range bps[0].BuildableRobots(s) {
		if r == Ore || r == Clay {
			t.Errorf("did not expect %s robot to be buildable", r)
		}
	}
}

func TestSuccessors_Waits(t *testing.T) {
	bps := mustParse(t)
	s := State{Target: Clay, Robots: Resources{1, 0, 0, 0}, Stock: Resources{1, 0, 0, 0}}

	var got []State
	bps[0].Successors(s, nil, func(ns State, _ *Path) { got = append(got, ns) })
	if len(got) != 1 {
		t.Fatalf("expected a single waiting successor, got %d", len(got))
	}
	if got[0].Stock != (Resources{2, 0, 0, 0}) || got[0].Target != Clay {
		t.Errorf("unexpected successor %v", got[0])
	}
}

func TestSuccessors_Builds(t *testing.T) {
	bps := mustParse(t)
	s := State{Target: Clay, Robots: Resources{1, 0, 0, 0}, Stock: Resources{2, 0, 0, 0}}

	bps[0].Successors(s, nil, func(ns State, p *Path) {
		if ns.Robots != (Resources{1, 1, 0, 0}) {
			t.Errorf("expected a new clay robot, got %v", ns.Robots)
		}
		if ns.Stock != (Resources{1, 0, 0, 0}) {
			t.Errorf("expected stock [1 0 0 0], got %v", ns.Stock)
		}
		if p.Len != 1 || p.Robot != ns.Target {
			t.Errorf("path does not record target: %v", p)
		}
	})
}

func TestAdvance_FrontierSizes(t *testing.T) {
	bps := mustParse(t)
	want := []int{2, 2, 3, 3, 6, 6, 11, 13}

	f := Start()
	for minute, n := range want {
		prev := len(f)
		next := bps[0].Advance(f)
		if len(f) != prev {
			t.Fatal("Advance mutated its input")
		}
		f = next
		if len(f) != n {
			t.Errorf("minute %d: expected %d states, got %d", minute+1, n, len(f))
		}
	}
}

func TestPath(t *testing.T) {
	var p *Path
	if p.String() != "" || p.Robots() != nil {
		t.Error("nil path should be empty")
	}
	a := p.Extend(Clay)
	b := a.Extend(Obsidian)
	c := a.Extend(Geode)

	if b.String() != "clay, obsidian" {
		t.Errorf("unexpected path %q", b.String())
	}
	if c.Prev != a || a.Len != 1 || c.Len != 2 {
		t.Error("paths should share their tail")
	}
	if !pathLess(b, c) || pathLess(c, b) || pathLess(b, b) {
		t.Error("pathLess ordering is wrong")
	}
	if !pathLess(a, b) {
		t.Error("shorter path should sort first")
	}
}

func TestAdvance_KeepsSmallestPath(t *testing.T) {
	bp := mustParse(t)[0]
	a, b := Start(), Start()
	for m := 0; m < 10; m++ {
		a, b = bp.Advance(a), bp.Advance(b)
	}
	if len(a) != len(b) {
		t.Fatalf("frontier sizes differ: %d and %d", len(a), len(b))
	}

	// every surviving path must be the smallest of all paths reaching its state
	prev := Start()
	for m := 0; m < 9; m++ {
		prev = bp.Advance(prev)
	}
	for s, p := range prev {
		bp.Successors(s, p, func(ns State, np *Path) {
			if kept := a[ns]; pathLess(np, kept) {
				t.Errorf("state %v kept %q over smaller %q", ns, kept, np)
			}
		})
	}
	for s, p := range a {
		if b[s].String() != p.String() {
			t.Errorf("state %v: paths %q and %q differ between runs", s, p, b[s])
		}
	}
}

func TestQualityLevel(t *testing.T) {
	bps := mustParse(t)
	if ql := bps[0].QualityLevel(24); ql != 9 {
		t.Errorf("expected quality level 9, got %d", ql)
	}
	if ql := bps[1].QualityLevel(24); ql != 24 {
		t.Errorf("expected quality level 24, got %d", ql)
	}
}

func TestQualitySum(t *testing.T) {
	bps := mustParse(t)
	sum, err := QualitySum(context.Background(), bps, 24)
	if err != nil {
		t.Fatalf("quality sum failed: %v", err)
	}
	if sum != 33 {
		t.Errorf("expected 33, got %d", sum)
	}
}

func TestMaxGeodes_Canceled(t *testing.T) {
	bps := mustParse(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := MaxGeodesAll(ctx, bps, 24); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestMaxGeodes_32(t *testing.T) {
	if testing.Short() {
		t.Skip("explores millions of states")
	}
	bps := mustParse(t)
	if n := bps[0].MaxGeodes(32); n != 56 {
		t.Errorf("expected 56, got %d", n)
	}
}
