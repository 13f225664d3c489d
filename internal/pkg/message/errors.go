package message

import "github.com/pkg/errors"

// ErrFrameTooLarge is returned when a frame body exceeds MaxBodySize.
var ErrFrameTooLarge = errors.New("frame too large")

// ErrUnknownKind is returned when a frame carries a kind outside the protocol.
var ErrUnknownKind = errors.New("unknown message kind")

// ErrBadRoster is returned when a roster does not name exactly four seats.
var ErrBadRoster = errors.New("roster must have exactly 4 names")
