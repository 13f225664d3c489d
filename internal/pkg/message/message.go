package message

import "fmt"

// NoPlayer is the origin used on messages whose sender is decided by the server.
const NoPlayer = -1

// Seats is the number of player seats at a table.
const Seats = 4

// Kind identifies the type of a Message on the wire.
type Kind int

// Message kinds, numbered as the server expects them.
const (
	KindRoster Kind = iota
	KindJoin
	KindFull
	KindQuit
	KindReady
	KindStart
	KindMove
	KindChat
)

// String returns the protocol name of the kind.
func (k Kind) String() string {
	switch k {
	case KindRoster:
		return "ROSTER"
	case KindJoin:
		return "JOIN"
	case KindFull:
		return "FULL"
	case KindQuit:
		return "QUIT"
	case KindReady:
		return "READY"
	case KindStart:
		return "START"
	case KindMove:
		return "MOVE"
	case KindChat:
		return "MSG"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Message is a single protocol message. The set of implementations is closed:
// Roster, Join, Full, Quit, Ready, Start, Move and Chat.
type Message interface {
	Kind() Kind
	// Origin is the seat index of the player the message concerns, or NoPlayer.
	Origin() int
	isMessage()
}

// Roster carries the names of all four seats. Its origin is the seat the
// server assigned to the receiving client.
type Roster struct {
	Player int
	Names  [Seats]string
}

// Join announces a player's display name.
type Join struct {
	Player int
	Name   string
}

// Full tells the client that every seat is taken.
type Full struct {
	Player int
}

// Quit tells the client that a player left their seat.
type Quit struct {
	Player int
}

// Ready signals that a player is ready to start.
type Ready struct {
	Player int
}

// Start begins a game with the given deck.
type Start struct {
	Player int
	Deck   Deck
}

// Move carries the indices of the cards a player played. An empty move is a pass.
type Move struct {
	Player int
	Cards  []int
}

// Chat carries a line of chat text.
type Chat struct {
	Player int
	Text   string
}

func (Roster) Kind() Kind { return KindRoster }
func (Join) Kind() Kind   { return KindJoin }
func (Full) Kind() Kind   { return KindFull }
func (Quit) Kind() Kind   { return KindQuit }
func (Ready) Kind() Kind  { return KindReady }
func (Start) Kind() Kind  { return KindStart }
func (Move) Kind() Kind   { return KindMove }
func (Chat) Kind() Kind   { return KindChat }

func (m Roster) Origin() int { return m.Player }
func (m Join) Origin() int   { return m.Player }
func (m Full) Origin() int   { return m.Player }
func (m Quit) Origin() int   { return m.Player }
func (m Ready) Origin() int  { return m.Player }
func (m Start) Origin() int  { return m.Player }
func (m Move) Origin() int   { return m.Player }
func (m Chat) Origin() int   { return m.Player }

func (Roster) isMessage() {}
func (Join) isMessage()   {}
func (Full) isMessage()   {}
func (Quit) isMessage()   {}
func (Ready) isMessage()  {}
func (Start) isMessage()  {}
func (Move) isMessage()   {}
func (Chat) isMessage()   {}

// NewJoin creates the JOIN a client sends to announce its name.
func NewJoin(name string) Join {
	return Join{Player: NoPlayer, Name: name}
}

// NewReady creates the READY a client sends once it is seated.
func NewReady() Ready {
	return Ready{Player: NoPlayer}
}

// NewMove creates the MOVE a client sends to play cards from its hand.
func NewMove(cards []int) Move {
	return Move{Player: NoPlayer, Cards: cards}
}

// NewChat creates the MSG a client sends to chat.
func NewChat(text string) Chat {
	return Chat{Player: NoPlayer, Text: text}
}

// ValidSeat reports whether i is a seat index.
func ValidSeat(i int) bool {
	return i >= 0 && i < Seats
}
