package board

import (
	"context"
	"fmt"

	"memoryscramble/internal/boarderr"
)

// Watch registers a fresh one-shot notification for viewerID and blocks
// until the next visible change to the board, returning that viewer's
// rendering at that point. A pure control transfer (face/value/presence
// unchanged) never resolves a watch; only a face-up, face-down, removal,
// or replace-token mutation does (including every Reset).
//
// Multiple concurrent watchers, including repeated calls from the same
// viewerID, are all delivered the same logical event; their renderings may
// reflect slightly later state if further visible changes race ahead of
// delivery, which is acceptable. This makes Watch one-shot: a long-poll
// caller that wants the next change calls Watch again after each delivery.
//
// If ctx is cancelled before a visible change occurs, Watch removes its own
// registry entry (so a later release doesn't try to resolve a dead
// promise) and returns ctx.Err(). A no-op resolution of an already-removed
// entry is tolerated gracefully.
func (b *Board) Watch(ctx context.Context, viewerID string) (string, error) {
	if isBlank(viewerID) {
		return "", fmt.Errorf("%w: viewer id must not be blank", boarderr.ErrBadArgument)
	}

	ch := make(chan string, 1)
	entry := &watcherEntry{viewerID: viewerID, ch: ch}

	b.mu.Lock()
	b.watchers = append(b.watchers, entry)
	b.mu.Unlock()

	select {
	case rendering := <-ch:
		return rendering, nil
	case <-ctx.Done():
		b.removeWatcher(entry)
		return "", ctx.Err()
	}
}

// removeWatcher deletes entry from the registry if it is still there. Safe
// to call after entry has already been popped and resolved by
// notifyWatchers; in that case it is a no-op.
func (b *Board) removeWatcher(entry *watcherEntry) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, e := range b.watchers {
		if e == entry {
			b.watchers = append(b.watchers[:i], b.watchers[i+1:]...)
			return
		}
	}
}

// notifyWatchers snapshots and clears the watcher registry, then renders
// and resolves each one outside the monitor. Called after any operation
// that produced a visible change.
func (b *Board) notifyWatchers() {
	b.mu.Lock()
	if len(b.watchers) == 0 {
		b.mu.Unlock()
		return
	}
	snapshot := b.watchers
	b.watchers = nil
	b.mu.Unlock()

	for _, e := range snapshot {
		e.ch <- b.render(e.viewerID)
	}
}
