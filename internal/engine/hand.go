package engine

import "github.com/lox/blackjack/internal/deck"

const (
	// BlackjackTotal is the best possible hand total
	BlackjackTotal = 21

	// DealerStandTotal is the total at which the dealer stops drawing.
	// Soft 17 counts, so the dealer stands on it.
	DealerStandTotal = 17
)

// Value returns the best blackjack total for a hand. Each Ace starts at 11
// and is downgraded to 1 while the total exceeds 21. The result is not
// clamped, so a value above 21 means the hand is bust. Face-down cards are
// skipped.
func Value(cards []deck.Card) int {
	total, _ := value(cards)
	return total
}

// IsSoft reports whether the hand's best total still counts an Ace as 11
func IsSoft(cards []deck.Card) bool {
	_, soft := value(cards)
	return soft > 0
}

// IsBust reports whether the hand's best total exceeds 21
func IsBust(cards []deck.Card) bool {
	return Value(cards) > BlackjackTotal
}

// IsNatural reports whether the hand is a two-card 21
func IsNatural(cards []deck.Card) bool {
	return len(cards) == 2 && Value(cards) == BlackjackTotal
}

// value returns the total and the number of Aces still counted as 11
func value(cards []deck.Card) (int, int) {
	total, aces := 0, 0
	for _, c := range cards {
		if c.IsFaceDown() {
			continue
		}
		total += c.Rank.Score()
		if c.IsAce() {
			aces++
		}
	}

	for total > BlackjackTotal && aces > 0 {
		total -= 10
		aces--
	}
	return total, aces
}
