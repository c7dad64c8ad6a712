package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/engine"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/statistics"
)

// DefaultStandOn mirrors the dealer: hit below 17, stand on 17 or more
const DefaultStandOn = engine.DealerStandTotal

// Config holds configuration for running simulations
type Config struct {
	Rounds  int
	Workers int
	// StandOn is the player total at which the simulated player stands
	StandOn int
	Seed    int64
	Logger  *log.Logger
}

// Simulator plays many rounds with a fixed player policy
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Workers <= 0 {
		config.Workers = 1
	}
	if config.StandOn <= 0 {
		config.StandOn = DefaultStandOn
	}
	if config.Logger == nil {
		config.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	config.Logger = config.Logger.WithPrefix("simulator")
	return &Simulator{config: config}
}

// Run plays every round and returns the combined statistics. Each worker
// owns its own round and derives its seed from the configured one, so a
// given seed and worker count always produce the same totals.
func (s *Simulator) Run(ctx context.Context) (*statistics.Statistics, error) {
	if s.config.Rounds <= 0 {
		return nil, fmt.Errorf("invalid rounds count: %d", s.config.Rounds)
	}

	workers := min(s.config.Workers, s.config.Rounds)
	perWorker := s.config.Rounds / workers
	remainder := s.config.Rounds % workers

	g, ctx := errgroup.WithContext(ctx)
	results := make([]*statistics.Statistics, workers)

	for w := 0; w < workers; w++ {
		rounds := perWorker
		if w < remainder {
			rounds++
		}
		seed := randutil.Derive(s.config.Seed, w)

		g.Go(func() error {
			stats, err := s.runWorker(ctx, seed, rounds)
			if err != nil {
				return fmt.Errorf("worker %d: %w", w, err)
			}
			results[w] = stats
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := &statistics.Statistics{}
	for _, r := range results {
		total.Merge(r)
	}

	if err := total.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	s.config.Logger.Info("Simulation complete",
		"rounds", total.Rounds,
		"workers", workers,
		"player_wins", total.PlayerWins,
		"dealer_wins", total.DealerWins,
		"pushes", total.Pushes)
	return total, nil
}

func (s *Simulator) runWorker(ctx context.Context, seed int64, rounds int) (*statistics.Statistics, error) {
	stats := &statistics.Statistics{}
	round := engine.NewRound(engine.WithSeed(seed), engine.WithLogger(s.config.Logger))

	for i := 0; i < rounds; i++ {
		if i%256 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		result, err := PlayRound(round, s.config.StandOn)
		if err != nil && !errors.Is(err, deck.ErrDeckExhausted) {
			return nil, err
		}
		stats.Add(result)
	}
	return stats, nil
}

// PlayRound starts a new round on r and plays it to the end, hitting while
// the player total is below standOn. An exhausted deck yields an abandoned
// result along with the error.
func PlayRound(r *engine.Round, standOn int) (statistics.RoundResult, error) {
	over, err := r.StartNewRound()
	if err != nil {
		return statistics.RoundResult{Abandoned: true}, err
	}

	for !over && r.CanHit() && r.PlayerTotal() < standOn {
		if err := r.PlayerHit(); err != nil {
			return statistics.RoundResult{Abandoned: true}, err
		}
		over = r.IsOver()
	}
	if !over {
		if err := r.PlayerStand(); err != nil {
			return statistics.RoundResult{Abandoned: true}, err
		}
	}

	res, _ := r.Result()
	return statistics.RoundResult{
		Result:      res,
		PlayerTotal: r.PlayerTotal(),
		DealerTotal: r.DealerTotal(true),
		PlayerCards: len(r.PlayerHand()),
		DealerCards: len(r.DealerHand(true)),
	}, nil
}
