package statistics

import (
	"fmt"
	"math"

	"github.com/lox/blackjack/internal/engine"
)

// RoundResult represents the outcome of a single simulated round
type RoundResult struct {
	Result      engine.Result
	PlayerTotal int
	DealerTotal int
	PlayerCards int
	DealerCards int
	Abandoned   bool
}

// Score returns +1 for a player win, -1 for a dealer win and 0 otherwise
func (r RoundResult) Score() float64 {
	switch r.Result.Outcome {
	case engine.PlayerWins:
		return 1
	case engine.DealerWins:
		return -1
	default:
		return 0
	}
}

// Statistics tracks outcome counts for a run of rounds
type Statistics struct {
	Rounds int
	Sum    float64
	Sum2   float64 // Sum of squares for variance calculation

	PlayerWins int
	DealerWins int
	Pushes     int
	Abandoned  int

	PlayerBlackjacks int
	DealerBlackjacks int
	BothBlackjacks   int
	PlayerBusts      int
	DealerBusts      int

	// DealerTotals counts final dealer totals 17..21, with index 22
	// holding every bust total. Player busts are not counted.
	DealerTotals [23]int
}

// Add incorporates a new round result into the statistics
func (s *Statistics) Add(r RoundResult) {
	s.Rounds++
	if r.Abandoned {
		s.Abandoned++
		return
	}

	score := r.Score()
	s.Sum += score
	s.Sum2 += score * score

	switch r.Result.Outcome {
	case engine.PlayerWins:
		s.PlayerWins++
	case engine.DealerWins:
		s.DealerWins++
	case engine.Push:
		s.Pushes++
	}

	switch r.Result.Reason {
	case engine.Blackjack:
		if r.Result.Outcome == engine.PlayerWins {
			s.PlayerBlackjacks++
		} else {
			s.DealerBlackjacks++
		}
	case engine.BothBlackjack:
		s.BothBlackjacks++
	case engine.PlayerBust:
		s.PlayerBusts++
	case engine.DealerBust:
		s.DealerBusts++
	}

	// The dealer never plays out a hand the player busted
	switch {
	case r.Result.Reason == engine.PlayerBust:
	case r.DealerTotal > 21:
		s.DealerTotals[22]++
	case r.DealerTotal >= engine.DealerStandTotal:
		s.DealerTotals[r.DealerTotal]++
	}
}

// Merge folds another set of statistics into s
func (s *Statistics) Merge(o *Statistics) {
	s.Rounds += o.Rounds
	s.Sum += o.Sum
	s.Sum2 += o.Sum2
	s.PlayerWins += o.PlayerWins
	s.DealerWins += o.DealerWins
	s.Pushes += o.Pushes
	s.Abandoned += o.Abandoned
	s.PlayerBlackjacks += o.PlayerBlackjacks
	s.DealerBlackjacks += o.DealerBlackjacks
	s.BothBlackjacks += o.BothBlackjacks
	s.PlayerBusts += o.PlayerBusts
	s.DealerBusts += o.DealerBusts
	for i := range s.DealerTotals {
		s.DealerTotals[i] += o.DealerTotals[i]
	}
}

// Settled returns the number of rounds that reached a result
func (s *Statistics) Settled() int {
	return s.Rounds - s.Abandoned
}

// Mean returns the average score per settled round
func (s *Statistics) Mean() float64 {
	n := s.Settled()
	if n == 0 {
		return 0
	}
	return s.Sum / float64(n)
}

// Variance returns the sample variance of round scores
func (s *Statistics) Variance() float64 {
	n := s.Settled()
	if n < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.Sum2 - float64(n)*mean*mean) / float64(n-1)
}

// StdDev returns the sample standard deviation of round scores
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	n := s.Settled()
	if n == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(n))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Rate returns n as a fraction of settled rounds
func (s *Statistics) Rate(n int) float64 {
	settled := s.Settled()
	if settled == 0 {
		return 0
	}
	return float64(n) / float64(settled)
}

// Validate checks that the counts are consistent
func (s *Statistics) Validate() error {
	if s.Rounds <= 0 {
		return fmt.Errorf("invalid rounds count: %d", s.Rounds)
	}

	if total := s.PlayerWins + s.DealerWins + s.Pushes + s.Abandoned; total != s.Rounds {
		return fmt.Errorf("outcomes total (%d) does not match rounds (%d)", total, s.Rounds)
	}

	if math.Abs(s.Sum-float64(s.PlayerWins-s.DealerWins)) > 1e-6 {
		return fmt.Errorf("score sum %.0f does not match wins %d - losses %d",
			s.Sum, s.PlayerWins, s.DealerWins)
	}

	if s.PlayerBlackjacks+s.DealerBusts > s.PlayerWins {
		return fmt.Errorf("player win reasons exceed player wins")
	}
	if s.DealerBlackjacks+s.PlayerBusts > s.DealerWins {
		return fmt.Errorf("dealer win reasons exceed dealer wins")
	}
	return nil
}
