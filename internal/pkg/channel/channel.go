// Package channel carries protocol messages over a duplex byte stream.
package channel

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"github.com/davinnev/Big-Two-LAN/internal/pkg/message"

	"github.com/pkg/errors"
)

// Channel sends and receives framed messages on a connection. Send is safe
// for concurrent use; Receive must only be called from one goroutine.
type Channel struct {
	conn net.Conn
	r    *bufio.Reader

	mu sync.Mutex // guards writes to conn

	closeOnce sync.Once
	closed    chan struct{}
	closeErr  error
}

// New wraps conn in a Channel.
func New(conn net.Conn) *Channel {
	return &Channel{
		conn:   conn,
		r:      bufio.NewReader(conn),
		closed: make(chan struct{}),
	}
}

// Send writes msg as a single frame. Concurrent calls never interleave bytes.
func (c *Channel) Send(msg message.Message) error {
	buf, err := message.Frame(msg)
	if err != nil {
		return &SendError{Err: errors.Wrapf(err, "frame %s failed", msg.Kind())}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	select {
	case <-c.closed:
		return &SendError{Err: ErrChannelClosed}
	default:
	}
	if _, err := c.conn.Write(buf); err != nil {
		return &SendError{Err: err}
	}
	return nil
}

// Receive blocks until the next message arrives. When ctx is cancelled the
// pending read is interrupted and ErrChannelClosed is returned.
func (c *Channel) Receive(ctx context.Context) (message.Message, error) {
	stop := context.AfterFunc(ctx, func() {
		_ = c.conn.SetReadDeadline(time.Now())
	})
	defer stop()

	body, err := message.ReadBody(c.r)
	if err != nil {
		if errors.Is(err, message.ErrFrameTooLarge) {
			return nil, &DecodeError{Err: err}
		}
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %w", ErrChannelClosed, ctx.Err())
		}
		return nil, closedError(err)
	}
	msg, err := message.Decode(body)
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	return msg, nil
}

// Close closes the underlying connection. It is safe to call more than once.
func (c *Channel) Close() error {
	c.closeOnce.Do(func() {
		close(c.closed)
		c.closeErr = c.conn.Close()
	})
	return c.closeErr
}

// RemoteAddr returns the address of the peer.
func (c *Channel) RemoteAddr() string {
	return c.conn.RemoteAddr().String()
}

func closedError(err error) error {
	if err == io.EOF {
		return ErrChannelClosed
	}
	return fmt.Errorf("%w: %w", ErrChannelClosed, err)
}
