package blueprint

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformed indicates a line that does not describe a blueprint.
	ErrMalformed = errors.New("blueprint: malformed line")

	// ErrNoBlueprints indicates input without a single blueprint line.
	ErrNoBlueprints = errors.New("blueprint: no blueprints in input")
)

// ParseError reports the input line that could not be parsed.
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v: %q", e.Line, e.Err, e.Text)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
