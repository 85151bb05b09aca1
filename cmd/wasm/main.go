//go:build js && wasm

// Command wasm exposes the simulation to the browser via WebAssembly.
// After loading, it registers these global JavaScript functions:
//
//	day19New(text) -> {id} | {error}
//	day19Step(id) -> bool        // false once the horizon is reached
//	day19SVG(id) -> string
//	day19Steps(id) -> number
//	day19Visited(id) -> number
//	day19Cells(id) -> number
//	day19Drop(id)
//	day19Mount([ids]) -> null | {error}
//
// day19Mount binds the page's content, status, bar, reset, step, step10,
// playpause and file input elements to a player session and renders it.
// The handle functions are the raw engine; a page that wants the play and
// load guards should use day19Mount instead.
package main

import (
	"syscall/js"

	"github.com/google/uuid"
	"github.com/san-kum/geodesim/internal/engine"
)

var (
	factory = engine.NewFactory(engine.DefaultOptions())
	handles = map[string]engine.Handle{}
)

func main() {
	js.Global().Set("day19New", js.FuncOf(newSimulation))
	js.Global().Set("day19Step", js.FuncOf(step))
	js.Global().Set("day19SVG", js.FuncOf(withHandle(func(h engine.Handle) any { return h.SVG() })))
	js.Global().Set("day19Steps", js.FuncOf(withHandle(func(h engine.Handle) any { return h.Steps() })))
	js.Global().Set("day19Visited", js.FuncOf(withHandle(func(h engine.Handle) any { return h.Visited() })))
	js.Global().Set("day19Cells", js.FuncOf(withHandle(func(h engine.Handle) any { return h.Cells() })))
	js.Global().Set("day19Drop", js.FuncOf(drop))
	js.Global().Set("day19Mount", js.FuncOf(mount))
	select {} // keep the WASM module alive until the page is closed
}

func newSimulation(_ js.Value, args []js.Value) any {
	if len(args) < 1 {
		return map[string]any{"error": "no input provided"}
	}
	h, err := factory(args[0].String())
	if err != nil {
		return map[string]any{"error": err.Error()}
	}
	id := uuid.NewString()
	handles[id] = h
	return map[string]any{"id": id}
}

func lookup(args []js.Value) (string, engine.Handle, bool) {
	if len(args) < 1 {
		return "", nil, false
	}
	id := args[0].String()
	h, ok := handles[id]
	return id, h, ok
}

func step(_ js.Value, args []js.Value) any {
	id, h, ok := lookup(args)
	if !ok {
		return false
	}
	next, more := h.Step()
	handles[id] = next
	return more
}

func withHandle(fn func(engine.Handle) any) func(js.Value, []js.Value) any {
	return func(_ js.Value, args []js.Value) any {
		_, h, ok := lookup(args)
		if !ok {
			return map[string]any{"error": "unknown simulation"}
		}
		return fn(h)
	}
}

func drop(_ js.Value, args []js.Value) any {
	if id, _, ok := lookup(args); ok {
		delete(handles, id)
	}
	return nil
}
