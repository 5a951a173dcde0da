// Package scheduler runs small periodic background jobs, grounded on the
// teacher's timer-goroutine idiom (a time.After/time.Ticker select against
// a cancellation channel, as in its turn-timer and reconnection-timeout
// handling).
package scheduler

import (
	"log/slog"
	"time"

	"memoryscramble/internal/board"
	"memoryscramble/internal/spectator"
)

// PeriodicReset calls b.Reset() on a fixed cadence until done closes.
// Matches the teacher's "<= 0 disables" convention: callers should not
// start this goroutine at all when interval <= 0.
func PeriodicReset(b *board.Board, interval time.Duration, done <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			b.Reset()
			slog.Info("periodic reset", "tag", "scheduler")
		case <-done:
			return
		}
	}
}

// KeepAlivePing asks hub to ping every connected spectator on a fixed
// cadence, so intermediate proxies don't time out idle long-lived
// watch/websocket connections.
func KeepAlivePing(hub *spectator.Hub, interval time.Duration, done <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			hub.Ping()
		case <-done:
			return
		}
	}
}
