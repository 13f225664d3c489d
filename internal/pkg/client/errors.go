package client

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrAlreadyConnected indicates that Connect was called while a session is live.
var ErrAlreadyConnected = errors.New("already connected")

// ErrNotConnected indicates that there is no live session to send on.
var ErrNotConnected = errors.New("not connected")

// ErrConnectAborted indicates that Close was called while Connect was dialing.
var ErrConnectAborted = errors.New("connect aborted")

// ErrEmptyPlayerName indicates that the prompt returned no display name.
var ErrEmptyPlayerName = errors.New("empty player name")

// ErrInvalidSeat indicates that the server referred to a seat outside 0..3.
var ErrInvalidSeat = errors.New("invalid seat")

// ErrUnhandledMessage indicates a message type the dispatcher does not know.
var ErrUnhandledMessage = errors.New("unhandled message")

// ConnectionError is returned by Connect when the server cannot be reached.
type ConnectionError struct {
	Addr string
	Err  error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connect to %s failed: %v", e.Addr, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }
