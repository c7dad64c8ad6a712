package engine

// Outcome is who won a finished round
type Outcome int

const (
	NoOutcome Outcome = iota
	PlayerWins
	DealerWins
	Push
)

// String returns the wire name of the outcome
func (o Outcome) String() string {
	switch o {
	case PlayerWins:
		return "player_wins"
	case DealerWins:
		return "dealer_wins"
	case Push:
		return "push"
	default:
		return "none"
	}
}

// Reason is why a round ended the way it did
type Reason int

const (
	NoReason Reason = iota
	Blackjack
	BothBlackjack
	PlayerBust
	DealerBust
	HighCard
	Tie
)

// String returns the wire name of the reason
func (r Reason) String() string {
	switch r {
	case Blackjack:
		return "blackjack"
	case BothBlackjack:
		return "both_blackjack"
	case PlayerBust:
		return "player_bust"
	case DealerBust:
		return "dealer_bust"
	case HighCard:
		return "high_card"
	case Tie:
		return "tie"
	default:
		return "none"
	}
}

// Result classifies a finished round. The zero value means no result yet.
type Result struct {
	Outcome Outcome
	Reason  Reason
}

// IsZero reports whether no result has been set
func (r Result) IsZero() bool {
	return r.Outcome == NoOutcome
}

// Message returns the text shown to the player for this result
func (r Result) Message() string {
	switch {
	case r.Reason == BothBlackjack:
		return "Both players have blackjack! It's a push."
	case r.Outcome == PlayerWins && r.Reason == Blackjack:
		return "Player blackjack! Player wins."
	case r.Outcome == DealerWins && r.Reason == Blackjack:
		return "Dealer blackjack! Dealer wins."
	case r.Reason == PlayerBust:
		return "Player busts! Dealer wins."
	case r.Reason == DealerBust:
		return "Dealer busts! Player wins."
	case r.Outcome == PlayerWins:
		return "Player wins!"
	case r.Outcome == DealerWins:
		return "Dealer wins."
	case r.Outcome == Push:
		return "It's a tie!"
	default:
		return ""
	}
}

// String implements fmt.Stringer
func (r Result) String() string {
	if r.IsZero() {
		return "none"
	}
	return r.Outcome.String() + "(" + r.Reason.String() + ")"
}
