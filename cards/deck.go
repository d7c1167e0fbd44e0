package cards

import (
	"errors"
	"math/rand"
	"time"
)

// ErrDeckExhausted is returned when a deal asks for more cards than remain.
var ErrDeckExhausted = errors.New("deck exhausted")

// Deck is an ordered sequence of unique cards, consumed from the end as
// cards are dealt. A fresh deck holds the 52 cards in canonical order and
// must be shuffled before dealing.
type Deck struct {
	cards Stack
}

// NewDeck creates a standard deck of 52 cards in canonical order
func NewDeck() *Deck {
	var cards Stack
	suits := []Suit{Spades, Hearts, Diamonds, Clubs}
	values := []Value{Ace, Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King}

	for _, suit := range suits {
		for _, value := range values {
			cards = append(cards, Card{Suit: suit, Value: value})
		}
	}

	return &Deck{cards: cards}
}

// Shuffle permutes the remaining cards uniformly (Fisher–Yates). A zero seed
// uses the wall clock; tests pass a fixed seed for deterministic deals.
func (d *Deck) Shuffle(seed int64) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	r := rand.New(rand.NewSource(seed))

	for i := len(d.cards) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Deal removes and returns n cards from the consuming end of the deck
func (d *Deck) Deal(n int) (Stack, error) {
	if n < 0 || n > len(d.cards) {
		return nil, ErrDeckExhausted
	}

	dealt := make(Stack, n)
	for i := 0; i < n; i++ {
		card := d.cards[len(d.cards)-1]
		d.cards = d.cards[:len(d.cards)-1]
		dealt[i] = card
	}

	return dealt, nil
}

// Remaining returns the number of cards left in the deck
func (d *Deck) Remaining() int {
	return len(d.cards)
}
