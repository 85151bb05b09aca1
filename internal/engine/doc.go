// Package engine is the simulation engine the players drive.
//
// Front ends only see the [Handle] capability: build one from blueprint
// text with a [Factory], advance it with Step, and draw it with SVG. Every
// Step returns a new handle and leaves the receiver untouched, so a session
// can hold exactly one handle at a time and drop the previous one.
//
//   - [Simulation]: the blueprint search, one lane per blueprint
//   - [Lane]: frontier, frontier-size history and best path of one blueprint
//
// # Coverage
//
// The drawable grid has one cell per blueprint per minute of the horizon.
// A cell is visited once its minute has been simulated, so coverage grows
// from 0% at step 0 to 100% when the horizon is reached.
package engine
