// Package httpapi is the plain-text HTTP front door: one route per board
// operation, mirroring the teacher's api.Handler shape — a small struct of
// dependencies and one method per route, with the GET method check made once
// in dispatch and failures written with http.Error. There is no router
// library; paths are split by hand,
// exactly as the teacher's main.go parses bearer tokens and query
// parameters by hand.
package httpapi

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/time/rate"

	"memoryscramble/internal/boarderr"
	"memoryscramble/internal/boardreg"
	"memoryscramble/internal/config"
	"memoryscramble/internal/spectator"
)

// Handler holds dependencies for the board HTTP routes.
type Handler struct {
	Registry *boardreg.Registry
	Config   *config.Config

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	hubs     map[string]*spectator.Hub
}

// NewHandler creates an httpapi.Handler serving boards out of reg.
func NewHandler(reg *boardreg.Registry, cfg *config.Config) *Handler {
	return &Handler{
		Registry: reg,
		Config:   cfg,
		limiters: make(map[string]*rate.Limiter),
		hubs:     make(map[string]*spectator.Hub),
	}
}

// limiterFor returns the per-room-per-viewer token bucket, creating one on
// first use. This is ambient abuse protection, not a board semantic: it
// only gates whether a request reaches the Board at all.
func (h *Handler) limiterFor(room, viewer string) *rate.Limiter {
	key := room + "/" + viewer
	h.mu.Lock()
	defer h.mu.Unlock()
	l, ok := h.limiters[key]
	if !ok {
		l = rate.NewLimiter(rate.Limit(h.Config.RateLimitPerSec), h.Config.RateLimitBurst)
		h.limiters[key] = l
	}
	return l
}

// HubFor returns the spectator hub for room, creating it on first use. The
// scheduler's keep-alive job and the /ws route share this same lazily
// created hub per room, so a ping actually reaches connected sockets.
func (h *Handler) HubFor(room string) *spectator.Hub {
	h.mu.Lock()
	defer h.mu.Unlock()
	if hub, ok := h.hubs[room]; ok {
		return hub
	}
	b, ok := h.Registry.Get(room)
	if !ok {
		return nil
	}
	hub := spectator.NewHub(room, b)
	h.hubs[room] = hub
	return hub
}

// Health answers GET /health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte("ok"))
}

// writeBoardError maps every board error kind to a single 409, with the
// error's message as the body, per the propagation policy that callers
// cannot recover differently from one kind versus another over HTTP.
func writeBoardError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, boarderr.ErrBadArgument),
		errors.Is(err, boarderr.ErrNoCardAtPosition),
		errors.Is(err, boarderr.ErrCardAlreadyControlled),
		errors.Is(err, boarderr.ErrCancelled):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		slog.Error("unmapped board error", "tag", "httpapi", "err", err)
		http.Error(w, err.Error(), http.StatusConflict)
	}
}

// parseRowCol parses a "row,col" path segment.
func parseRowCol(s string) (row, col int, err error) {
	parts := strings.SplitN(s, ",", 2)
	if len(parts) != 2 {
		return 0, 0, errors.New("expected row,col")
	}
	row, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, errors.New("invalid row")
	}
	col, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, errors.New("invalid col")
	}
	return row, col, nil
}
