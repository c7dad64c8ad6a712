package engine

import "github.com/lox/blackjack/internal/deck"

// Snapshot is a point-in-time copy of a round's observable state
type Snapshot struct {
	Phase       Phase
	Player      []deck.Card
	Dealer      []deck.Card
	PlayerTotal int
	DealerTotal int
	Result      Result
	CanHit      bool
	CanStand    bool
}

// Snapshot copies the round's observable state. revealAll has the same
// meaning as for DealerHand; DealerTotal only counts visible cards.
func (r *Round) Snapshot(revealAll bool) Snapshot {
	dealer := r.DealerHand(revealAll)
	return Snapshot{
		Phase:       r.phase,
		Player:      r.PlayerHand(),
		Dealer:      dealer,
		PlayerTotal: Value(r.player),
		DealerTotal: Value(dealer),
		Result:      r.result,
		CanHit:      r.CanHit(),
		CanStand:    r.CanStand(),
	}
}
