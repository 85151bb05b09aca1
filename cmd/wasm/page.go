//go:build js && wasm

package main

import (
	"errors"
	"fmt"
	"syscall/js"

	"github.com/san-kum/geodesim/internal/config"
	"github.com/san-kum/geodesim/internal/player"
)

// elementIDs names the page elements day19Mount binds to. A page may pass
// an object with any of these keys to use its own ids.
var elementIDs = map[string]string{
	"content":   "content",
	"status":    "status",
	"bar":       "bar",
	"reset":     "reset",
	"step":      "step",
	"batch":     "step10",
	"playpause": "playpause",
	"file":      "file",
}

// page binds DOM elements to a player.Driver. Animation frames and file
// reads come back through the driver, so a frame scheduled before a pause
// and a read overtaken by a newer one are both dropped.
type page struct {
	driver *player.Driver
	el     map[string]js.Value
	funcs  []js.Func
}

var mounted *page

func mount(_ js.Value, args []js.Value) any {
	ids := make(map[string]string, len(elementIDs))
	for k, v := range elementIDs {
		ids[k] = v
		if len(args) > 0 && args[0].Type() == js.TypeObject {
			if o := args[0].Get(k); o.Type() == js.TypeString {
				ids[k] = o.String()
			}
		}
	}

	doc := js.Global().Get("document")
	el := make(map[string]js.Value, len(ids))
	for k, id := range ids {
		e := doc.Call("getElementById", id)
		if e.IsNull() && k == "file" {
			e = doc.Call("querySelector", "input[type=file]")
		}
		if e.IsNull() {
			return map[string]any{"error": fmt.Sprintf("missing element #%s", id)}
		}
		el[k] = e
	}

	if mounted != nil {
		mounted.unmount()
	}
	input, _ := config.GetPreset(config.DefaultPreset)
	p := &page{el: el}
	p.driver = &player.Driver{
		Session:  player.New(factory, input),
		Schedule: p.schedule,
		Show:     p.render,
	}
	p.bind("reset", "onclick", func(js.Value) { p.driver.Reset() })
	p.bind("step", "onclick", func(js.Value) { p.driver.Step() })
	p.bind("batch", "onclick", func(js.Value) { p.driver.StepBatch() })
	p.bind("playpause", "onclick", func(js.Value) { p.driver.TogglePlay() })
	p.bind("file", "onchange", p.fileChanged)
	mounted = p
	p.render(p.driver.Session.Render())
	return nil
}

func (p *page) bind(name, event string, fn func(ev js.Value)) {
	f := js.FuncOf(func(_ js.Value, args []js.Value) any {
		ev := js.Undefined()
		if len(args) > 0 {
			ev = args[0]
		}
		fn(ev)
		return nil
	})
	p.funcs = append(p.funcs, f)
	p.el[name].Set(event, f)
}

func (p *page) unmount() {
	p.driver.Show = nil
	p.driver.Stop()
	for _, f := range p.funcs {
		f.Release()
	}
	p.funcs = nil
}

// schedule hands the frame for token to requestAnimationFrame.
func (p *page) schedule(token player.PlayToken) {
	var cb js.Func
	cb = js.FuncOf(func(js.Value, []js.Value) any {
		cb.Release()
		p.driver.Frame(token)
		return nil
	})
	js.Global().Call("requestAnimationFrame", cb)
}

func (p *page) fileChanged(ev js.Value) {
	files := ev.Get("target").Get("files")
	if files.Length() == 0 {
		return
	}
	file := files.Index(0)
	name := file.Get("name").String()
	ticket := p.driver.BeginLoad()

	reader := js.Global().Get("FileReader").New()
	var onload, onerror js.Func
	done := func() {
		onload.Release()
		onerror.Release()
	}
	onload = js.FuncOf(func(js.Value, []js.Value) any {
		defer done()
		p.driver.CompleteLoad(ticket, reader.Get("result").String(), nil)
		return nil
	})
	onerror = js.FuncOf(func(js.Value, []js.Value) any {
		defer done()
		msg := "read failed"
		if e := reader.Get("error"); !e.IsNull() && !e.IsUndefined() {
			msg = e.Get("message").String()
		}
		p.driver.CompleteLoad(ticket, "", &player.FileReadError{Path: name, Err: errors.New(msg)})
		return nil
	})
	reader.Set("onload", onload)
	reader.Set("onerror", onerror)
	reader.Call("readAsText", file)
}

func (p *page) render(f player.Frame) {
	p.el["content"].Set("innerHTML", f.Markup)
	status := f.Status
	if f.Err != nil {
		status = "error: " + f.Err.Error()
	}
	p.el["status"].Set("innerText", status)
	p.el["bar"].Get("style").Set("right", fmt.Sprintf("%.1f%%", 100-f.Coverage))
	label := "Play"
	if f.Playing {
		label = "Pause"
	}
	p.el["playpause"].Set("innerText", label)
}
