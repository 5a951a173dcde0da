package board

import (
	"context"
	"fmt"

	"memoryscramble/internal/boarderr"
)

// Flip runs one step of the nine-case flip state machine against the
// player pid's current turn at (row, col). See the design's rule
// references (1-A..1-D, 2-A..2-E, 3-A..3-B) for the full case analysis;
// this implementation follows them in order.
//
// ctx governs only the single designated suspension point (rule 1-D's
// wait for a controlled position to free up); it has no effect once Flip
// has passed that point. Cancelling ctx while a flip is parked there
// returns ctx.Err() and cleans up the parked waiter so a later control
// release does not try to resolve a stale promise.
//
// Flip returns a boarderr-wrapped error for BadArgument (thrown before any
// state change), NoCardAtPosition, CardAlreadyControlled, or Cancelled (the
// board was Reset while this call was parked at rule 1-D). The state
// transitions that precede a NoCardAtPosition/CardAlreadyControlled failure
// in the same call — in particular, losing control of the first card when
// the second choice fails — are not rolled back; they are user-observable
// via View/Watch.
func (b *Board) Flip(ctx context.Context, pid string, row, col int) error {
	if isBlank(pid) {
		return fmt.Errorf("%w: player id must not be blank", boarderr.ErrBadArgument)
	}
	target := Position{Row: row, Col: col}
	if !b.inBounds(target) {
		return fmt.Errorf("%w: position %v out of bounds", boarderr.ErrBadArgument, target)
	}

	var visible bool
	var toWake []*waiter

	b.mu.Lock()
	P := b.playerStateFor(pid)

	// Stage A: cleanup of the previous completed turn.
	if P.second != nil {
		f := *P.first
		s := *P.second

		if f == s {
			// Degenerate: the previous turn's second flip failed on an
			// empty or controlled cell, leaving only one tracked
			// position.
			if f != target {
				if c := b.cells[b.index(f)]; c.present() && c.Up {
					if _, controlled := b.control[f]; !controlled {
						b.cells[b.index(f)] = cell{Card: c.Card, Up: false}
						visible = true
					}
				}
			}
		} else {
			matched := b.control[f] == pid && b.control[s] == pid
			if matched {
				b.cells[b.index(f)] = cell{}
				b.cells[b.index(s)] = cell{}
				visible = true
				toWake = append(toWake, b.releaseControl(f)...)
				toWake = append(toWake, b.releaseControl(s)...)
			} else {
				for _, pos := range [2]Position{f, s} {
					if pos == target {
						continue
					}
					c := b.cells[b.index(pos)]
					if !c.present() || !c.Up {
						continue
					}
					if _, controlled := b.control[pos]; controlled {
						continue
					}
					b.cells[b.index(pos)] = cell{Card: c.Card, Up: false}
					visible = true
				}
			}
		}
		P.first = nil
		P.second = nil
	}

	if P.first == nil {
		// Stage B: first-card flip.
		for {
			c := b.cells[b.index(target)]
			if !c.present() {
				b.mu.Unlock()
				return b.finishFlip(visible, toWake,
					fmt.Errorf("%w: %v", boarderr.ErrNoCardAtPosition, target))
			}

			controller, isControlled := b.control[target]
			if isControlled && controller != pid {
				w := &waiter{ch: make(chan error, 1)}
				b.waiters[target] = append(b.waiters[target], w)
				b.mu.Unlock()

				var waitErr error
				select {
				case waitErr = <-w.ch:
				case <-ctx.Done():
					b.removeWaiter(target, w)
					waitErr = ctx.Err()
				}
				if waitErr != nil {
					return b.finishFlip(visible, toWake, waitErr)
				}
				b.mu.Lock()
				continue
			}

			if !c.Up {
				b.cells[b.index(target)] = cell{Card: c.Card, Up: true}
				visible = true
			}
			b.control[target] = pid
			pos := target
			P.first = &pos
			break
		}
	} else {
		// Stage C: second-card flip.
		f := *P.first
		c := b.cells[b.index(target)]

		if !c.present() {
			toWake = append(toWake, b.releaseControl(f)...)
			P.second = &f
			b.mu.Unlock()
			return b.finishFlip(visible, toWake,
				fmt.Errorf("%w: %v", boarderr.ErrNoCardAtPosition, target))
		}

		if _, controlled := b.control[target]; controlled {
			toWake = append(toWake, b.releaseControl(f)...)
			P.second = &f
			b.mu.Unlock()
			return b.finishFlip(visible, toWake,
				fmt.Errorf("%w: %v", boarderr.ErrCardAlreadyControlled, target))
		}

		if !c.Up {
			b.cells[b.index(target)] = cell{Card: c.Card, Up: true}
			visible = true
		}

		fCard := b.cells[b.index(f)].Card
		pos := target
		if fCard == c.Card {
			b.control[target] = pid
			P.second = &pos
		} else {
			toWake = append(toWake, b.releaseControl(f)...)
			P.second = &pos
		}
	}

	b.mu.Unlock()
	return b.finishFlip(visible, toWake, nil)
}

// releaseControl drops pos from the control map (a no-op if it was not
// controlled) and pops every waiter parked on pos, returning them for the
// caller to wake after the monitor is released. Must be called with mu
// held.
func (b *Board) releaseControl(pos Position) []*waiter {
	delete(b.control, pos)
	ws := b.waiters[pos]
	if len(ws) > 0 {
		delete(b.waiters, pos)
	}
	return ws
}

// removeWaiter deletes w from pos's waiter queue if it is still there. A
// no-op if w was already popped by a concurrent releaseControl (it will
// have a pending send on w.ch that nobody reads, which is harmless).
func (b *Board) removeWaiter(pos Position, w *waiter) {
	b.mu.Lock()
	defer b.mu.Unlock()
	ws := b.waiters[pos]
	for i, ww := range ws {
		if ww == w {
			ws = append(ws[:i], ws[i+1:]...)
			if len(ws) == 0 {
				delete(b.waiters, pos)
			} else {
				b.waiters[pos] = ws
			}
			return
		}
	}
}

// finishFlip runs Flip's post-release actions: wake every collected waiter,
// then — iff the operation produced a visible change — run watcher
// fan-out. Returns err unchanged so callers can write "return
// b.finishFlip(...)".
func (b *Board) finishFlip(visible bool, toWake []*waiter, err error) error {
	for _, w := range toWake {
		w.ch <- nil
	}
	if visible {
		b.notifyWatchers()
	}
	return err
}
