// Package session owns one player's current blackjack round, serializes
// access to it, and keeps a short in-memory record of finished rounds.
package session

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/engine"
	"github.com/lox/blackjack/internal/roundid"
)

// DefaultMaxHistory is how many finished rounds a session remembers
const DefaultMaxHistory = 100

// RoundRecord describes a finished round
type RoundRecord struct {
	ID          string
	StartedAt   time.Time
	EndedAt     time.Time
	Player      []deck.Card
	Dealer      []deck.Card
	PlayerTotal int
	DealerTotal int
	Result      engine.Result
	Abandoned   bool
}

// Tally counts outcomes across the rounds of a session
type Tally struct {
	Rounds     int
	PlayerWins int
	DealerWins int
	Pushes     int
	Blackjacks int
	Abandoned  int
}

// Add counts one finished round
func (t *Tally) Add(rec RoundRecord) {
	t.Rounds++
	if rec.Abandoned {
		t.Abandoned++
		return
	}
	switch rec.Result.Outcome {
	case engine.PlayerWins:
		t.PlayerWins++
		if rec.Result.Reason == engine.Blackjack {
			t.Blackjacks++
		}
	case engine.DealerWins:
		t.DealerWins++
	case engine.Push:
		t.Pushes++
	}
}

// View is what a presentation adapter renders for the current round
type View struct {
	SessionID string
	RoundID   string
	engine.Snapshot
}

// Session wraps an engine.Round for a single caller. It is safe for
// concurrent use.
type Session struct {
	mu sync.Mutex

	id         string
	round      *engine.Round
	roundID    string
	startedAt  time.Time
	recorded   bool
	lastActive time.Time

	history    []RoundRecord
	maxHistory int
	tally      Tally

	clock      quartz.Clock
	ids        *roundid.Generator
	engineOpts []engine.Option
	logger     *log.Logger
}

// Option configures a Session
type Option func(*Session)

// WithClock sets the clock used for timestamps and round IDs
func WithClock(clock quartz.Clock) Option {
	return func(s *Session) {
		s.clock = clock
	}
}

// WithEngineOptions passes options through to the underlying round
func WithEngineOptions(opts ...engine.Option) Option {
	return func(s *Session) {
		s.engineOpts = append(s.engineOpts, opts...)
	}
}

// WithLogger sets the logger
func WithLogger(logger *log.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithMaxHistory bounds the number of remembered rounds
func WithMaxHistory(n int) Option {
	return func(s *Session) {
		s.maxHistory = n
	}
}

// WithID sets the session ID instead of generating one
func WithID(id string) Option {
	return func(s *Session) {
		s.id = id
	}
}

// New creates a session with no round started
func New(opts ...Option) *Session {
	s := &Session{maxHistory: DefaultMaxHistory}
	for _, opt := range opts {
		opt(s)
	}

	if s.clock == nil {
		s.clock = quartz.NewReal()
	}
	if s.logger == nil {
		s.logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if s.id == "" {
		s.id = uuid.NewString()
	}
	s.logger = s.logger.WithPrefix("session")
	s.ids = roundid.NewGenerator(s.clock, nil)
	s.round = engine.NewRound(append(s.engineOpts, engine.WithLogger(s.logger))...)
	s.lastActive = s.clock.Now()
	return s
}

// ID returns the session ID
func (s *Session) ID() string {
	return s.id
}

// NewRound starts a fresh round and returns its view
func (s *Session) NewRound() (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.touch()
	s.roundID = s.ids.Generate()
	s.startedAt = s.clock.Now()
	s.recorded = false

	over, err := s.round.StartNewRound()
	s.logger.Info("Round started", "session", s.id, "round", s.roundID, "immediate", over)
	s.recordIfOver()
	return s.view(false), err
}

// Hit draws a card for the player
func (s *Session) Hit() (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.touch()
	err := s.round.PlayerHit()
	s.recordIfOver()
	return s.view(false), err
}

// Stand ends the player's turn and settles the round
func (s *Session) Stand() (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.touch()
	err := s.round.PlayerStand()
	s.recordIfOver()
	return s.view(false), err
}

// View returns the current round's view
func (s *Session) View(revealAll bool) View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view(revealAll)
}

// History returns finished rounds, oldest first
func (s *Session) History() []RoundRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]RoundRecord(nil), s.history...)
}

// Tally returns the outcome counts so far
func (s *Session) Tally() Tally {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tally
}

// LastActive returns when the session last handled an action
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

func (s *Session) touch() {
	s.lastActive = s.clock.Now()
}

func (s *Session) view(revealAll bool) View {
	return View{
		SessionID: s.id,
		RoundID:   s.roundID,
		Snapshot:  s.round.Snapshot(revealAll),
	}
}

func (s *Session) recordIfOver() {
	if s.recorded || !s.round.IsOver() {
		return
	}
	s.recorded = true

	res, ok := s.round.Result()
	rec := RoundRecord{
		ID:          s.roundID,
		StartedAt:   s.startedAt,
		EndedAt:     s.clock.Now(),
		Player:      s.round.PlayerHand(),
		Dealer:      s.round.DealerHand(true),
		PlayerTotal: s.round.PlayerTotal(),
		DealerTotal: s.round.DealerTotal(true),
		Result:      res,
		Abandoned:   !ok,
	}

	s.history = append(s.history, rec)
	if s.maxHistory > 0 && len(s.history) > s.maxHistory {
		s.history = s.history[len(s.history)-s.maxHistory:]
	}
	s.tally.Add(rec)

	if rec.Abandoned {
		s.logger.Warn("Round abandoned", "session", s.id, "round", rec.ID)
		return
	}
	s.logger.Info("Round finished",
		"session", s.id,
		"round", rec.ID,
		"result", rec.Result,
		"player_total", rec.PlayerTotal,
		"dealer_total", rec.DealerTotal)
}
