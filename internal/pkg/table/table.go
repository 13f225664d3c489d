// Package table keeps the client's local copy of the game table: the four
// seats, each player's hand, and the last move played. It does not judge
// whether moves are legal.
package table

import (
	"sync"

	"github.com/davinnev/Big-Two-LAN/internal/pkg/message"

	"github.com/sirupsen/logrus"
)

var logger logrus.FieldLogger = logrus.StandardLogger()

// HandSize is the number of cards dealt to each seat.
const HandSize = message.DeckSize / message.Seats

// Slot is one seat at the table. An empty Name means the seat is free.
type Slot struct {
	Index int
	Name  string
}

// Move is a set of cards played from a hand.
type Move struct {
	Player int
	Cards  []message.Card
}

// Table is safe for concurrent use.
type Table struct {
	mu       sync.RWMutex
	slots    [message.Seats]Slot
	hands    [message.Seats][]message.Card
	started  bool
	turn     int
	lastMove *Move

	onTurn func(seat int)
}

// Option configures a Table.
type Option func(*Table)

// WithTurnListener calls fn with the seat to play whenever the turn changes,
// at game start and after every move. fn runs without the table locked.
func WithTurnListener(fn func(seat int)) Option {
	return func(t *Table) {
		t.onTurn = fn
	}
}

// opener is the card whose holder leads the first trick.
var opener = message.Card{Suit: 0, Rank: 2}

// New creates a table with four free seats.
func New(opts ...Option) *Table {
	t := &Table{turn: message.NoPlayer}
	for i := range t.slots {
		t.slots[i].Index = i
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// PlayerSlots returns a copy of the seats.
func (t *Table) PlayerSlots() []Slot {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Slot, len(t.slots))
	copy(out, t.slots[:])
	return out
}

// SetPlayerName names the player sitting at seat i. Out of range seats are ignored.
func (t *Table) SetPlayerName(i int, name string) {
	if !message.ValidSeat(i) {
		logger.WithField("seat", i).Warn("ignoring name for invalid seat")
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.slots[i].Name = name
}

// Start deals deck round-robin into the four hands, discarding any previous
// game. The holder of the three of diamonds plays first.
func (t *Table) Start(deck message.Deck) {
	t.start(deck)
	t.notifyTurn()
}

func (t *Table) start(deck message.Deck) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.turn = 0
	for i := range t.hands {
		t.hands[i] = make([]message.Card, 0, HandSize)
	}
	for i, c := range deck {
		seat := i % message.Seats
		t.hands[seat] = append(t.hands[seat], c)
		if c == opener {
			t.turn = seat
		}
	}
	t.started = true
	t.lastMove = nil
	logger.WithField("cards", len(deck)).Info("game started")
}

// CheckMove applies a move announced by the server: the cards at the given
// hand indices are removed from the player's hand. An empty move is a pass.
// Moves with unknown players or out of range indices are logged and dropped.
func (t *Table) CheckMove(player int, cards []int) {
	if t.checkMove(player, cards) {
		t.notifyTurn()
	}
}

func (t *Table) checkMove(player int, cards []int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	fields := logrus.Fields{"player": player, "cards": cards}
	if !t.started || !message.ValidSeat(player) {
		logger.WithFields(fields).Warn("ignoring move outside a game")
		return false
	}
	hand := t.hands[player]
	played := make([]message.Card, 0, len(cards))
	drop := make(map[int]bool, len(cards))
	for _, idx := range cards {
		if idx < 0 || idx >= len(hand) || drop[idx] {
			logger.WithFields(fields).Warn("ignoring move with bad card index")
			return false
		}
		drop[idx] = true
		played = append(played, hand[idx])
	}
	t.turn = (player + 1) % message.Seats
	if len(played) == 0 {
		logger.WithFields(fields).Info("player passed")
		return true
	}
	remaining := make([]message.Card, 0, len(hand)-len(played))
	for i, c := range hand {
		if !drop[i] {
			remaining = append(remaining, c)
		}
	}
	t.hands[player] = remaining
	t.lastMove = &Move{Player: player, Cards: played}
	logger.WithFields(fields).WithField("left", len(remaining)).Info("player moved")
	return true
}

func (t *Table) notifyTurn() {
	if t.onTurn == nil {
		return
	}
	t.onTurn(t.Turn())
}

// EndOfGame reports whether a game has started and some player has emptied their hand.
func (t *Table) EndOfGame() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if !t.started {
		return false
	}
	for _, h := range t.hands {
		if len(h) == 0 {
			return true
		}
	}
	return false
}

// Turn returns the seat expected to play next, or message.NoPlayer before a game starts.
func (t *Table) Turn() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.turn
}

// Hand returns a copy of the cards held at seat i.
func (t *Table) Hand(i int) []message.Card {
	if !message.ValidSeat(i) {
		return nil
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]message.Card, len(t.hands[i]))
	copy(out, t.hands[i])
	return out
}

// LastMove returns the most recent non-pass move, if any.
func (t *Table) LastMove() (Move, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.lastMove == nil {
		return Move{}, false
	}
	return *t.lastMove, true
}
