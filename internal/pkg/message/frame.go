package message

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// Frame constants.
const (
	// FrameHeaderSize is the size of the length prefix in bytes.
	FrameHeaderSize = 4

	// MaxBodySize is the largest frame body accepted from the server.
	MaxBodySize = 1 << 20
)

// Frame encodes msg into a complete frame (length prefix and body), ready to
// be written with a single call.
//
// Wire format:
//
//	┌──────────────────────────────┬──────────────────────────────┐
//	│ Body Length                  │ Body                         │
//	│ (4 bytes, big-endian)        │ (msgpack envelope)           │
//	└──────────────────────────────┴──────────────────────────────┘
func Frame(msg Message) ([]byte, error) {
	body, err := Encode(msg)
	if err != nil {
		return nil, err
	}
	if len(body) > MaxBodySize {
		return nil, ErrFrameTooLarge
	}
	buf := make([]byte, FrameHeaderSize+len(body))
	binary.BigEndian.PutUint32(buf, uint32(len(body)))
	copy(buf[FrameHeaderSize:], body)
	return buf, nil
}

// WriteFrame writes msg to w as one frame.
func WriteFrame(w io.Writer, msg Message) error {
	buf, err := Frame(msg)
	if err != nil {
		return err
	}
	_, err = w.Write(buf)
	return err
}

// ReadBody reads one frame from r and returns its body. Errors from r are
// returned unwrapped so callers can tell a closed stream (io.EOF,
// io.ErrUnexpectedEOF) from an oversized frame (ErrFrameTooLarge).
func ReadBody(r io.Reader) ([]byte, error) {
	var header [FrameHeaderSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, err
	}
	length := binary.BigEndian.Uint32(header[:])
	if length > MaxBodySize {
		return nil, errors.Wrapf(ErrFrameTooLarge, "%d bytes", length)
	}
	body := make([]byte, length)
	if _, err := io.ReadFull(r, body); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}
	return body, nil
}

// ReadFrame reads and decodes one frame from r.
func ReadFrame(r io.Reader) (Message, error) {
	body, err := ReadBody(r)
	if err != nil {
		return nil, err
	}
	return Decode(body)
}
