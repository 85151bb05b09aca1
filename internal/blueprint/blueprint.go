package blueprint

import "math"

// Blueprint lists the cost of each robot type, indexed by the resource the
// robot collects.
type Blueprint struct {
	ID        int
	Recipes   [NumResources]Resources
	MaxRobots Resources
}

// New builds a blueprint and derives MaxRobots: no more robots of a kind are
// useful than the largest amount of that resource any recipe consumes.
// Geode robots are unbounded.
func New(id int, ore, clay, obsidian, geode Resources) Blueprint {
	bp := Blueprint{ID: id, Recipes: [NumResources]Resources{ore, clay, obsidian, geode}}
	for r := Ore; r < Geode; r++ {
		for _, recipe := range bp.Recipes {
			if recipe[r] > bp.MaxRobots[r] {
				bp.MaxRobots[r] = recipe[r]
			}
		}
	}
	bp.MaxRobots[Geode] = math.MaxInt
	return bp
}

func (bp *Blueprint) buildable(s State, robot Resource) bool {
	recipe := bp.Recipes[robot]
	if s.Robots[robot] >= bp.MaxRobots[robot] {
		return false
	}
	// nothing collects an ingredient yet
	for r := Ore; r < Geode; r++ {
		if recipe[r] != 0 && s.Robots[r] == 0 {
			return false
		}
	}
	if robot == Ore && s.Stock[Ore] > bp.MaxRobots[Ore] {
		return false
	}
	if robot == Clay && s.Stock[Clay] > bp.MaxRobots[Clay]*2 {
		return false
	}
	if robot < Obsidian && s.Stock.Contains(bp.Recipes[Geode]) {
		return false
	}
	return true
}

// BuildableRobots returns, in resource order, the robot types worth saving
// up for from state s.
func (bp *Blueprint) BuildableRobots(s State) []Resource {
	out := make([]Resource, 0, NumResources)
	for r := Ore; r <= Geode; r++ {
		if bp.buildable(s, r) {
			out = append(out, r)
		}
	}
	return out
}

// build reports what gets spent and produced this minute when the factory
// works towards target. A state without a target spends nothing.
func (bp *Blueprint) build(target Resource, stock Resources) (used, robots Resources, ok bool) {
	if target == NoTarget {
		return Resources{}, Resources{}, true
	}
	recipe := bp.Recipes[target]
	if !stock.Contains(recipe) {
		return Resources{}, Resources{}, false
	}
	return recipe, Single(target), true
}
