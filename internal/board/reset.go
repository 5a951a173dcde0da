package board

import "memoryscramble/internal/boarderr"

// Reset restores the board to its as-constructed state: every cell back to
// its initial token, face-down; the control map and every player's turn
// state cleared. Any flip currently waiting on rule 1-D is woken with
// boarderr.ErrCancelled. Reset always counts as a visible change, even if
// the board happened to already be in its initial state, so watchers are
// always notified.
func (b *Board) Reset() {
	b.mu.Lock()

	for i, tok := range b.initial {
		b.cells[i] = cell{Card: tok, Up: false}
	}
	b.control = make(map[Position]string)
	b.players = make(map[string]*playerState)

	var cancelled []*waiter
	for pos, ws := range b.waiters {
		cancelled = append(cancelled, ws...)
		delete(b.waiters, pos)
	}

	b.mu.Unlock()

	for _, w := range cancelled {
		w.ch <- boarderr.ErrCancelled
	}
	b.notifyWatchers()
}
