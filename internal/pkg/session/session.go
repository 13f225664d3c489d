package session

import (
	"fmt"
	"net"
	"strconv"
	"sync"

	"github.com/davinnev/Big-Two-LAN/internal/pkg/message"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// State is the connection state of a Session.
type State int

// Session states, in the only order a session moves through them.
const (
	// Disconnected is the state before Connect.
	Disconnected State = iota
	// Connecting is held while the server is being dialled.
	Connecting
	// Connected means the receive loop is running.
	Connected
	// Closed is terminal.
	Closed
)

func (s State) String() string {
	switch s {
	case Disconnected:
		return "Disconnected"
	case Connecting:
		return "Connecting"
	case Connected:
		return "Connected"
	case Closed:
		return "Closed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Session is the client's view of one connection to a game server.
type Session struct {
	ID         uuid.UUID
	PlayerName string
	ServerAddr string
	ServerPort uint16

	mu          sync.RWMutex
	state       State
	playerIndex int
}

// New creates a Disconnected session with no seat assigned.
func New(serverAddr string, serverPort uint16, playerName string) *Session {
	return &Session{
		ID:          uuid.New(),
		PlayerName:  playerName,
		ServerAddr:  serverAddr,
		ServerPort:  serverPort,
		playerIndex: message.NoPlayer,
	}
}

// Address returns the host:port the session dials.
func (s *Session) Address() string {
	return net.JoinHostPort(s.ServerAddr, strconv.Itoa(int(s.ServerPort)))
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Transition moves the session forward to the given state. States only move
// forward; Closed can be entered from any state but never left.
func (s *Session) Transition(to State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if to <= s.state || to > Closed {
		return errors.Wrapf(ErrInvalidTransition, "%s -> %s", s.state, to)
	}
	s.state = to
	return nil
}

// PlayerIndex returns the seat assigned by the server, or message.NoPlayer.
func (s *Session) PlayerIndex() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.playerIndex
}

// SetPlayerIndex records the seat assigned by the server. It can only be set once.
func (s *Session) SetPlayerIndex(i int) error {
	if !message.ValidSeat(i) {
		return errors.Wrapf(ErrInvalidPlayerIndex, "%d", i)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.playerIndex != message.NoPlayer {
		return errors.Wrapf(ErrPlayerIndexAlreadySet, "seat %d", s.playerIndex)
	}
	s.playerIndex = i
	return nil
}
