package client

import (
	"context"

	"github.com/davinnev/Big-Two-LAN/internal/pkg/message"
	"github.com/davinnev/Big-Two-LAN/internal/pkg/table"
)

// Prompt asks the local user for their display name.
type Prompt interface {
	PlayerName(ctx context.Context) (string, error)
}

// GameState is the local game model the dispatcher keeps in step with the server.
type GameState interface {
	PlayerSlots() []table.Slot
	SetPlayerName(index int, name string)
	Start(deck message.Deck)
	CheckMove(playerIndex int, cards []int)
	EndOfGame() bool
}

// UI is the presentation layer.
type UI interface {
	PrintMessage(text string)
	SendChat(text string)
	DisableInput()
	Repaint()
	// SessionEnded is called once when the session terminates. err is nil
	// when the session was closed locally.
	SessionEnded(err error)
}

// Sender writes a message to the server.
type Sender interface {
	Send(msg message.Message) error
}
