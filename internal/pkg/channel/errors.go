package channel

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrChannelClosed is returned once the peer has closed the connection, the
// network failed, or the channel was closed locally.
var ErrChannelClosed = errors.New("channel closed")

// DecodeError is returned by Receive when a frame arrived but could not be decoded.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return fmt.Sprintf("decode frame failed: %v", e.Err) }

func (e *DecodeError) Unwrap() error { return e.Err }

// SendError is returned by Send when a frame could not be written.
type SendError struct {
	Err error
}

func (e *SendError) Error() string { return fmt.Sprintf("send frame failed: %v", e.Err) }

func (e *SendError) Unwrap() error { return e.Err }
