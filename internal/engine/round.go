package engine

import (
	"fmt"
	"io"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/randutil"
)

// Phase is the lifecycle stage of a round
type Phase int

const (
	NotStarted Phase = iota
	InProgress
	Over
)

// String returns the wire name of the phase
func (p Phase) String() string {
	switch p {
	case NotStarted:
		return "not_started"
	case InProgress:
		return "in_progress"
	case Over:
		return "over"
	default:
		return "unknown"
	}
}

// DeckFactory builds the deck for a new round, already shuffled
type DeckFactory func() (*deck.Deck, error)

// Round holds the state of one blackjack round. A Round is not safe for
// concurrent use; callers serialize access.
type Round struct {
	deck   *deck.Deck
	player []deck.Card
	dealer []deck.Card
	result Result
	phase  Phase

	newDeck DeckFactory
	rng     *rand.Rand
	handles func(deck.Card) any
	logger  *log.Logger
}

// Option configures a Round
type Option func(*Round)

// WithRand shuffles every deck from rng
func WithRand(rng *rand.Rand) Option {
	return func(r *Round) {
		r.rng = rng
	}
}

// WithSeed shuffles every deck from a source seeded with seed
func WithSeed(seed int64) Option {
	return WithRand(randutil.New(seed))
}

// WithDeckFactory replaces deck construction and shuffling entirely
func WithDeckFactory(f DeckFactory) Option {
	return func(r *Round) {
		r.newDeck = f
	}
}

// WithCardHandles attaches display metadata to every card of each new deck
func WithCardHandles(fn func(deck.Card) any) Option {
	return func(r *Round) {
		r.handles = fn
	}
}

// WithLogger sets the logger
func WithLogger(logger *log.Logger) Option {
	return func(r *Round) {
		r.logger = logger
	}
}

// NewRound creates a round in the NotStarted phase
func NewRound(opts ...Option) *Round {
	r := &Round{}
	for _, opt := range opts {
		opt(r)
	}

	if r.logger == nil {
		r.logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	r.logger = r.logger.WithPrefix("engine")

	if r.rng == nil {
		r.rng = randutil.NewEntropy()
	}
	if r.newDeck == nil {
		var opts []deck.Option
		if r.handles != nil {
			opts = append(opts, deck.WithHandles(r.handles))
		}
		rng := r.rng
		r.newDeck = func() (*deck.Deck, error) {
			return deck.NewShuffled(rng, opts...), nil
		}
	}
	return r
}

// StartNewRound builds and shuffles a new deck, deals two cards each in
// player, dealer, player, dealer order and settles naturals. It reports
// whether the round ended immediately. A failure to deal abandons the round.
func (r *Round) StartNewRound() (bool, error) {
	r.deck = nil
	r.player = make([]deck.Card, 0, 4)
	r.dealer = make([]deck.Card, 0, 4)
	r.result = Result{}

	d, err := r.newDeck()
	if err != nil {
		r.abandon()
		return false, fmt.Errorf("build deck: %w", err)
	}

	r.deck = d
	r.phase = InProgress

	for i := 0; i < 2; i++ {
		if err := r.drawTo(&r.player); err != nil {
			r.abandon()
			return false, fmt.Errorf("deal player card: %w", err)
		}
		if err := r.drawTo(&r.dealer); err != nil {
			r.abandon()
			return false, fmt.Errorf("deal dealer card: %w", err)
		}
	}

	playerNatural := Value(r.player) == BlackjackTotal
	dealerNatural := Value(r.dealer) == BlackjackTotal
	switch {
	case playerNatural && dealerNatural:
		r.finish(Result{Outcome: Push, Reason: BothBlackjack})
	case playerNatural:
		r.finish(Result{Outcome: PlayerWins, Reason: Blackjack})
	case dealerNatural:
		r.finish(Result{Outcome: DealerWins, Reason: Blackjack})
	}

	r.logger.Debug("Round dealt",
		"player", r.player,
		"dealer", r.dealer,
		"over", r.phase == Over)

	return r.phase == Over, nil
}

// PlayerHit draws one card into the player's hand. Busting ends the round
// with the dealer winning.
func (r *Round) PlayerHit() error {
	if err := r.checkInProgress(); err != nil {
		return err
	}

	if err := r.drawTo(&r.player); err != nil {
		r.abandon()
		return fmt.Errorf("player hit: %w", err)
	}

	total := Value(r.player)
	r.logger.Debug("Player hit", "card", r.player[len(r.player)-1], "total", total)
	if total > BlackjackTotal {
		r.finish(Result{Outcome: DealerWins, Reason: PlayerBust})
	}
	return nil
}

// PlayerStand plays out the dealer's hand and settles the round. The round
// is always over afterwards.
func (r *Round) PlayerStand() error {
	if err := r.checkInProgress(); err != nil {
		return err
	}

	for Value(r.dealer) < DealerStandTotal {
		if err := r.drawTo(&r.dealer); err != nil {
			r.abandon()
			return fmt.Errorf("dealer draw: %w", err)
		}
	}

	r.finish(r.determineWinner())
	return nil
}

func (r *Round) determineWinner() Result {
	playerValue := Value(r.player)
	dealerValue := Value(r.dealer)

	switch {
	case playerValue > BlackjackTotal:
		return Result{Outcome: DealerWins, Reason: PlayerBust}
	case dealerValue > BlackjackTotal:
		return Result{Outcome: PlayerWins, Reason: DealerBust}
	case playerValue > dealerValue:
		return Result{Outcome: PlayerWins, Reason: HighCard}
	case dealerValue > playerValue:
		return Result{Outcome: DealerWins, Reason: HighCard}
	default:
		return Result{Outcome: Push, Reason: Tie}
	}
}

func (r *Round) checkInProgress() error {
	switch r.phase {
	case NotStarted:
		return ErrRoundNotStarted
	case Over:
		return ErrRoundOver
	}
	return nil
}

func (r *Round) drawTo(hand *[]deck.Card) error {
	c, err := r.deck.Draw()
	if err != nil {
		return err
	}
	*hand = append(*hand, c)
	return nil
}

func (r *Round) finish(res Result) {
	r.result = res
	r.phase = Over
	r.logger.Debug("Round over",
		"result", res,
		"player_total", Value(r.player),
		"dealer_total", Value(r.dealer))
}

// abandon ends the round without a result
func (r *Round) abandon() {
	r.result = Result{}
	r.phase = Over
	r.logger.Error("Round abandoned", "remaining", r.Remaining())
}

// Phase returns the current phase
func (r *Round) Phase() Phase {
	return r.phase
}

// IsOver reports whether the round has ended
func (r *Round) IsOver() bool {
	return r.phase == Over
}

// PlayerHand returns a copy of the player's cards in deal order
func (r *Round) PlayerHand() []deck.Card {
	return append([]deck.Card(nil), r.player...)
}

// DealerHand returns a copy of the dealer's cards in deal order. Unless
// revealAll is set, cards after the first are returned as deck.FaceDown
// while the round is still in progress.
func (r *Round) DealerHand(revealAll bool) []deck.Card {
	cards := append([]deck.Card(nil), r.dealer...)
	if revealAll || r.phase != InProgress {
		return cards
	}
	for i := 1; i < len(cards); i++ {
		cards[i] = deck.FaceDown
	}
	return cards
}

// PlayerTotal returns the player's best total
func (r *Round) PlayerTotal() int {
	return Value(r.player)
}

// DealerTotal returns the dealer's best total over the cards a caller
// would see with the same revealAll flag
func (r *Round) DealerTotal(revealAll bool) int {
	return Value(r.DealerHand(revealAll))
}

// Result returns the round's result, and false until the round has one
func (r *Round) Result() (Result, bool) {
	return r.result, !r.result.IsZero()
}

// CanHit reports whether the player may still draw
func (r *Round) CanHit() bool {
	return r.phase == InProgress && Value(r.player) <= BlackjackTotal
}

// CanStand reports whether the player may stand
func (r *Round) CanStand() bool {
	return r.phase == InProgress
}

// Remaining returns the number of cards left in the current deck
func (r *Round) Remaining() int {
	if r.deck == nil {
		return 0
	}
	return r.deck.Remaining()
}
