// Package player is the controller between a front end and the simulation
// engine.
//
// A [Session] is a value: every operation returns a new Session and never
// changes the receiver. Front ends keep the newest one and draw its
// [Frame].
//
// # Playing
//
// TogglePlay hands out a [PlayToken]. The front end schedules one animation
// frame carrying that token and calls Frame when it fires. Pausing, resetting
// or loading a new input retires the token, so a frame that was already
// scheduled does nothing when it arrives.
//
// # Loading files
//
// BeginLoad hands out a [LoadTicket] for an asynchronous read. Only the
// newest ticket is honored by CompleteLoad; a slower read of an older
// selection is dropped.
package player
