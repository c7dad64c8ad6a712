package engine

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is returned when a player action is attempted on a
// round that is not in progress. The round is left unchanged.
var ErrInvalidTransition = errors.New("invalid transition")

// ErrRoundNotStarted is returned for player actions before StartNewRound.
// It matches ErrInvalidTransition under errors.Is.
var ErrRoundNotStarted = fmt.Errorf("%w: round not started", ErrInvalidTransition)

// ErrRoundOver is returned for player actions after the round has ended.
// It matches ErrInvalidTransition under errors.Is.
var ErrRoundOver = fmt.Errorf("%w: round is over", ErrInvalidTransition)
