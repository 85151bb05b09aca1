// Package blueprint models the robot factory puzzle: blueprints describing
// robot recipes, the per-minute search state, and the breadth-first search
// that finds how many geodes a blueprint can open.
//
//   - [Resources]: quantities of ore, clay, obsidian and geodes
//   - [Blueprint]: the four robot recipes plus the useful robot caps
//   - [State]: robots, stock and the robot the factory is saving up for
//   - [Frontier]: every distinct state reachable after a number of minutes
//
// # Example
//
//	bps, err := blueprint.Parse(input)
//	if err != nil {
//		return err
//	}
//	sum, err := blueprint.QualitySum(ctx, bps, 24)
//
// Input holds one blueprint per line; a description wrapped over several
// lines is rejected.
//
// Frontiers are never mutated once built, so one frontier can be shared by
// several simulation handles.
package blueprint
