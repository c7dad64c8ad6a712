package deck

import (
	"errors"
	"fmt"
	rand "math/rand/v2"

	"github.com/lox/blackjack/internal/randutil"
)

// Size is the number of cards in a full deck
const Size = 52

// ErrDeckExhausted is returned when drawing from an empty deck
var ErrDeckExhausted = errors.New("deck exhausted")

// Deck represents a deck of playing cards consumed from the front
type Deck struct {
	cards []Card
	drawn int
	rng   *rand.Rand
}

// Option configures deck construction
type Option func(*deckOptions)

type deckOptions struct {
	handles func(Card) any
}

// WithHandles attaches display metadata to each card as it is built
func WithHandles(fn func(Card) any) Option {
	return func(o *deckOptions) {
		o.handles = fn
	}
}

// New creates a standard 52-card deck in suit-major order. The deck is not
// shuffled; a nil rng is replaced with an entropy-seeded source.
func New(rng *rand.Rand, opts ...Option) *Deck {
	var o deckOptions
	for _, opt := range opts {
		opt(&o)
	}
	if rng == nil {
		rng = randutil.NewEntropy()
	}

	d := &Deck{
		cards: make([]Card, 0, Size),
		rng:   rng,
	}
	for _, suit := range Suits {
		for rank := Ace; rank <= King; rank++ {
			c := NewCard(suit, rank)
			if o.handles != nil {
				c.Handle = o.handles(c)
			}
			d.cards = append(d.cards, c)
		}
	}
	return d
}

// NewShuffled creates a standard deck and shuffles it
func NewShuffled(rng *rand.Rand, opts ...Option) *Deck {
	d := New(rng, opts...)
	d.Shuffle()
	return d
}

// NewStacked creates a deck that deals cards in exactly the given order.
// Duplicate cards are rejected.
func NewStacked(cards []Card) (*Deck, error) {
	if len(cards) > Size {
		return nil, fmt.Errorf("stacked deck has %d cards, max %d", len(cards), Size)
	}
	seen := make(map[[2]int]bool, len(cards))
	for _, c := range cards {
		if c.IsFaceDown() || c.Suit < Hearts || c.Suit > Spades {
			return nil, fmt.Errorf("invalid card in stacked deck: %v", c)
		}
		key := [2]int{int(c.Suit), int(c.Rank)}
		if seen[key] {
			return nil, fmt.Errorf("duplicate card in stacked deck: %s", c)
		}
		seen[key] = true
	}
	return &Deck{
		cards: append([]Card(nil), cards...),
		rng:   randutil.NewEntropy(),
	}, nil
}

// Shuffle randomizes the order of the remaining cards using Fisher-Yates
func (d *Deck) Shuffle() {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := d.rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Draw removes and returns the front card of the deck
func (d *Deck) Draw() (Card, error) {
	if d.IsEmpty() {
		return Card{}, ErrDeckExhausted
	}

	card := d.cards[0]
	d.cards = d.cards[1:]
	d.drawn++
	return card, nil
}

// Remaining returns the number of cards left in the deck
func (d *Deck) Remaining() int {
	return len(d.cards)
}

// Drawn returns the number of cards drawn so far
func (d *Deck) Drawn() int {
	return d.drawn
}

// IsEmpty returns true if the deck has no cards left
func (d *Deck) IsEmpty() bool {
	return len(d.cards) == 0
}

// Cards returns a copy of the remaining cards, front first
func (d *Deck) Cards() []Card {
	return append([]Card(nil), d.cards...)
}
