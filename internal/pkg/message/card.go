package message

import "fmt"

// DeckSize is the number of cards in a full deck.
const DeckSize = 52

// Card is a single playing card. Suits run 0..3 (diamonds, clubs, hearts,
// spades) and ranks 0..12 (ace through king).
type Card struct {
	Suit uint8 `msgpack:"s"`
	Rank uint8 `msgpack:"r"`
}

var (
	suitNames = [...]string{"d", "c", "h", "s"}
	rankNames = [...]string{"A", "2", "3", "4", "5", "6", "7", "8", "9", "T", "J", "Q", "K"}
)

// Valid reports whether the card's suit and rank are in range.
func (c Card) Valid() bool {
	return int(c.Suit) < len(suitNames) && int(c.Rank) < len(rankNames)
}

func (c Card) String() string {
	if !c.Valid() {
		return fmt.Sprintf("?%d/%d", c.Suit, c.Rank)
	}
	return rankNames[c.Rank] + suitNames[c.Suit]
}

// Deck is an ordered set of cards as dealt by the server.
type Deck []Card
