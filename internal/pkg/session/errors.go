package session

import "errors"

// ErrInvalidTransition is returned when a state change would move a session backwards.
var ErrInvalidTransition = errors.New("invalid session state transition")

// ErrPlayerIndexAlreadySet is returned when the seat is assigned a second time.
var ErrPlayerIndexAlreadySet = errors.New("player index already set")

// ErrInvalidPlayerIndex is returned for seats outside 0..3.
var ErrInvalidPlayerIndex = errors.New("invalid player index")
