// Package boarderr holds the Board's sentinel error kinds.
//
// They live in their own package, separate from board, so that httpapi can
// classify a Board failure (to pick an HTTP status) without importing the
// board package itself — mirroring how the teacher's
// matcherrors package is shared between matchmaking and ws to avoid a
// circular import.
package boarderr

import "errors"

// Sentinel error kinds. Board operations wrap one of these with
// fmt.Errorf("%w: ...", Kind) so callers can classify failures with
// errors.Is while still getting a human-readable message.
var (
	// ErrBadArgument covers a blank player/viewer identity, an out-of-bounds
	// position, or a null/invalid output token from a map transformer.
	ErrBadArgument = errors.New("bad argument")

	// ErrNoCardAtPosition covers rule 1-A and rule 2-A: the targeted
	// position has no card.
	ErrNoCardAtPosition = errors.New("no card at position")

	// ErrCardAlreadyControlled covers rule 2-B only: the second card of a
	// turn is already controlled (by anyone, including the caller).
	ErrCardAlreadyControlled = errors.New("card already controlled")

	// ErrCancelled is surfaced to a flip that was waiting on rule 1-D when
	// the board was reset.
	ErrCancelled = errors.New("cancelled")
)
