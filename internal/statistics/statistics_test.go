package statistics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack/internal/engine"
)

func result(o engine.Outcome, r engine.Reason, dealerTotal int) RoundResult {
	return RoundResult{Result: engine.Result{Outcome: o, Reason: r}, DealerTotal: dealerTotal}
}

func TestStatisticsAdd(t *testing.T) {
	var s Statistics
	s.Add(result(engine.PlayerWins, engine.Blackjack, 13))
	s.Add(result(engine.DealerWins, engine.PlayerBust, 15))
	s.Add(result(engine.PlayerWins, engine.DealerBust, 24))
	s.Add(result(engine.Push, engine.Tie, 18))
	s.Add(result(engine.DealerWins, engine.HighCard, 20))
	s.Add(RoundResult{Abandoned: true})

	require.NoError(t, s.Validate())
	assert.Equal(t, 6, s.Rounds)
	assert.Equal(t, 5, s.Settled())
	assert.Equal(t, 2, s.PlayerWins)
	assert.Equal(t, 2, s.DealerWins)
	assert.Equal(t, 1, s.Pushes)
	assert.Equal(t, 1, s.Abandoned)
	assert.Equal(t, 1, s.PlayerBlackjacks)
	assert.Equal(t, 1, s.PlayerBusts)
	assert.Equal(t, 1, s.DealerBusts)
	assert.Equal(t, 1, s.DealerTotals[22])
	assert.Equal(t, 1, s.DealerTotals[18])
	assert.Equal(t, 1, s.DealerTotals[20])
	assert.InDelta(t, 0.0, s.Mean(), 1e-9)
	assert.InDelta(t, 0.4, s.Rate(s.PlayerWins), 1e-9)
}

func TestPlayerBustSkipsDealerTotal(t *testing.T) {
	var s Statistics
	s.Add(result(engine.DealerWins, engine.PlayerBust, 19))
	assert.Equal(t, [23]int{}, s.DealerTotals)
	assert.Equal(t, 1, s.PlayerBusts)
}

func TestStatisticsVariance(t *testing.T) {
	var s Statistics
	for i := 0; i < 10; i++ {
		s.Add(result(engine.PlayerWins, engine.HighCard, 18))
		s.Add(result(engine.DealerWins, engine.HighCard, 20))
	}

	assert.InDelta(t, 0.0, s.Mean(), 1e-9)
	assert.InDelta(t, 20.0/19.0, s.Variance(), 1e-9)
	lo, hi := s.ConfidenceInterval95()
	assert.Less(t, lo, 0.0)
	assert.Greater(t, hi, 0.0)
}

func TestStatisticsMerge(t *testing.T) {
	var a, b Statistics
	a.Add(result(engine.PlayerWins, engine.HighCard, 19))
	b.Add(result(engine.DealerWins, engine.Blackjack, 21))
	b.Add(result(engine.Push, engine.BothBlackjack, 21))

	a.Merge(&b)
	require.NoError(t, a.Validate())
	assert.Equal(t, 3, a.Rounds)
	assert.Equal(t, 1, a.DealerBlackjacks)
	assert.Equal(t, 1, a.BothBlackjacks)
	assert.Equal(t, 2, a.DealerTotals[21])
}

func TestStatisticsValidate(t *testing.T) {
	var empty Statistics
	assert.Error(t, empty.Validate())

	broken := Statistics{Rounds: 2, PlayerWins: 1}
	assert.Error(t, broken.Validate())
}

func TestEmptyStatistics(t *testing.T) {
	var s Statistics
	assert.Zero(t, s.Mean())
	assert.Zero(t, s.StdError())
	assert.Zero(t, s.Rate(1))
}
