package player

import (
	"errors"

	"github.com/san-kum/geodesim/internal/engine"
)

// DefaultBatch is the number of steps taken by StepBatch.
const DefaultBatch = 10

// PlayToken identifies one play chain. The zero token is never current.
type PlayToken uint64

// LoadTicket identifies one file load request.
type LoadTicket uint64

// Session is the controller state. The zero value is not usable; build one
// with New.
type Session struct {
	factory engine.Factory
	input   string
	handle  engine.Handle
	err     error
	playing bool
	batch   int

	token      PlayToken
	lastToken  PlayToken
	lastTicket LoadTicket
}

type Option func(*Session)

// WithBatch sets the number of steps StepBatch takes.
func WithBatch(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.batch = n
		}
	}
}

// New builds the engine for input and returns an idle session.
func New(factory engine.Factory, input string, opts ...Option) Session {
	s := Session{factory: factory, input: input, batch: DefaultBatch}
	for _, opt := range opts {
		opt(&s)
	}
	return s.Reset()
}

func (s Session) Input() string         { return s.input }
func (s Session) Handle() engine.Handle { return s.handle }
func (s Session) Err() error            { return s.err }
func (s Session) Playing() bool         { return s.playing }
func (s Session) Batch() int            { return s.batch }

// Reset replaces the engine with a fresh one built from the current input
// and stops playing. A construction failure leaves the session without an
// engine and is reported through Err and Render.
func (s Session) Reset() Session {
	s.playing, s.token = false, 0
	h, err := s.factory(s.input)
	if err != nil {
		s.handle, s.err = nil, err
		return s
	}
	s.handle, s.err = h, nil
	return s
}

// WithInput replaces the input text and resets.
func (s Session) WithInput(text string) Session {
	s.input = text
	return s.Reset()
}

// BeginLoad issues the ticket for a new file read. Any earlier ticket is
// superseded.
func (s Session) BeginLoad() (Session, LoadTicket) {
	s.lastTicket++
	return s, s.lastTicket
}

// CompleteLoad applies the result of the read issued with ticket. It
// returns false, with s unchanged, when ticket has been superseded. A read
// error keeps the current engine and is reported through Err.
func (s Session) CompleteLoad(ticket LoadTicket, text string, err error) (Session, bool) {
	if ticket != s.lastTicket {
		return s, false
	}
	if err != nil {
		var ferr *FileReadError
		if !errors.As(err, &ferr) {
			err = &FileReadError{Err: err}
		}
		s.err = err
		return s, true
	}
	return s.WithInput(text), true
}

// Step advances the engine once and reports whether further steps remain.
// A session without an engine, or with a finished one, is returned as is.
func (s Session) Step() (Session, bool) {
	if s.handle == nil || s.handle.Done() {
		return s, false
	}
	var more bool
	s.handle, more = s.handle.Step()
	return s, more
}

// StepN advances up to n times, stopping early when the engine finishes.
func (s Session) StepN(n int) Session {
	for i := 0; i < n; i++ {
		var more bool
		if s, more = s.Step(); !more {
			break
		}
	}
	return s
}

// StepBatch is StepN with the session's batch size.
func (s Session) StepBatch() Session {
	return s.StepN(s.batch)
}

// TogglePlay switches between idle and playing. Starting to play takes one
// step right away and returns the token for the next frame; ok is false
// when no frame should be scheduled.
func (s Session) TogglePlay() (next Session, token PlayToken, ok bool) {
	if s.playing {
		s.playing, s.token = false, 0
		return s, 0, false
	}
	if s.handle == nil || s.handle.Done() {
		return s, 0, false
	}
	s.lastToken++
	s.playing, s.token = true, s.lastToken
	return s.Frame(s.token)
}

// Frame runs the animation frame scheduled for token. Frames for a retired
// token do nothing. When the engine finishes the session stops playing.
func (s Session) Frame(token PlayToken) (next Session, nextToken PlayToken, ok bool) {
	if !s.playing || token == 0 || token != s.token {
		return s, 0, false
	}
	s, more := s.Step()
	if !more {
		s.playing, s.token = false, 0
		return s, 0, false
	}
	return s, s.token, true
}
