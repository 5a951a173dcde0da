package board

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"memoryscramble/internal/boarderr"
)

// Transform computes the replacement for a card token. It is assumed to be
// a pure function of tok: calling it again with the same token must yield
// the same result, since Map invokes it exactly once per distinct token
// currently on the board and applies that one result to every card sharing
// it.
type Transform func(ctx context.Context, tok string) (string, error)

// Map applies f to every distinct card token currently on the board and
// replaces each card with its token's result, preserving face-up/down
// state and control. All cards sharing an original token are replaced in
// one atomic step, so a viewer can never observe a mid-transform state in
// which cards that were equal have become unequal.
//
// Three phases, per the design: (1) snapshot the current token groups
// under the monitor and release it; (2) invoke f once per distinct token,
// concurrently, unlocked; (3) apply each group's replacement atomically
// under the monitor, skipping any position whose card changed out from
// under it between snapshot and apply.
//
// Map fails the entire call with a boarderr.ErrBadArgument-wrapped error if
// f is nil, if any invocation of f returns an error, or if any result is
// the empty string or contains whitespace. Which failure surfaces first is
// unspecified when more than one group fails.
func (b *Board) Map(ctx context.Context, f Transform) error {
	if f == nil {
		return fmt.Errorf("%w: transform function must not be nil", boarderr.ErrBadArgument)
	}

	groups := b.snapshotGroups()

	type replacement struct {
		from, to string
	}
	var mu sync.Mutex
	var replacements []replacement

	g, gctx := errgroup.WithContext(ctx)
	for tok := range groups {
		tok := tok
		g.Go(func() error {
			to, err := f(gctx, tok)
			if err != nil {
				return fmt.Errorf("%w: transform(%q): %v", boarderr.ErrBadArgument, tok, err)
			}
			if to == tok {
				return nil
			}
			if !ValidateToken(to) {
				return fmt.Errorf("%w: transform(%q) produced invalid token %q", boarderr.ErrBadArgument, tok, to)
			}
			mu.Lock()
			replacements = append(replacements, replacement{from: tok, to: to})
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, r := range replacements {
		if b.applyReplacement(groups[r.from], r.from, r.to) {
			b.notifyWatchers()
		}
	}
	return nil
}

// snapshotGroups partitions every present cell by its current token.
func (b *Board) snapshotGroups() map[string][]Position {
	b.mu.Lock()
	defer b.mu.Unlock()

	groups := make(map[string][]Position)
	for r := 0; r < b.rows; r++ {
		for c := 0; c < b.cols; c++ {
			pos := Position{Row: r, Col: c}
			cl := b.cells[b.index(pos)]
			if cl.present() {
				groups[cl.Card] = append(groups[cl.Card], pos)
			}
		}
	}
	return groups
}

// applyReplacement swaps from for to at every position in positions whose
// cell still carries from, preserving Up state. Reports whether any
// replacement occurred.
func (b *Board) applyReplacement(positions []Position, from, to string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	changed := false
	for _, pos := range positions {
		idx := b.index(pos)
		cl := b.cells[idx]
		if cl.Card == from {
			b.cells[idx] = cell{Card: to, Up: cl.Up}
			changed = true
		}
	}
	return changed
}
