package player_test

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/san-kum/geodesim/internal/engine"
)

var errBadInput = errors.New("fake: bad input")

// fakeHandle finishes after limit steps. Input text is "name:limit".
type fakeHandle struct {
	name  string
	steps int
	limit int
}

func (h fakeHandle) Step() (engine.Handle, bool) {
	if h.Done() {
		return h, false
	}
	h.steps++
	return h, !h.Done()
}

func (h fakeHandle) Done() bool   { return h.steps >= h.limit }
func (h fakeHandle) Steps() int   { return h.steps }
func (h fakeHandle) Visited() int { return h.steps }
func (h fakeHandle) Cells() int   { return h.limit }

func (h fakeHandle) SVG() string {
	return fmt.Sprintf(`<svg id="%s" data-step="%d"/>`, h.name, h.steps)
}

func fakeFactory(text string) (engine.Handle, error) {
	name, limit, ok := strings.Cut(strings.TrimSpace(text), ":")
	if !ok {
		return nil, errBadInput
	}
	n, err := strconv.Atoi(limit)
	if err != nil {
		return nil, errBadInput
	}
	return fakeHandle{name: name, limit: n}, nil
}
