// Package engine implements a single-player blackjack round.
//
// The main type is Round, which owns a freshly shuffled deck, the player
// and dealer hands, and the round's result. A round moves through three
// phases: NotStarted, InProgress and Over. Once Over, player actions are
// rejected with ErrInvalidTransition and the state is left untouched.
//
// # Basic Usage
//
//	r := engine.NewRound()
//	if over, err := r.StartNewRound(); err == nil && !over {
//	    _ = r.PlayerHit()
//	    _ = r.PlayerStand()
//	}
//	if res, ok := r.Result(); ok {
//	    fmt.Println(res.Message())
//	}
//
// # Deterministic Testing
//
// Seed the shuffle, or supply the exact deck to deal from:
//
//	r := engine.NewRound(engine.WithSeed(42))
//
//	r := engine.NewRound(engine.WithDeckFactory(func() (*deck.Deck, error) {
//	    return deck.NewStacked(deck.MustParseCards("AsTh Kd 6c"))
//	}))
//
// # Concealment
//
// The engine never redacts on its own. DealerHand and Snapshot take a
// revealAll flag; while the round is in progress and revealAll is false,
// every dealer card after the first is replaced with deck.FaceDown.
package engine
