package httpapi

import (
	"context"
	"net/http"
)

func (h *Handler) look(w http.ResponseWriter, r *http.Request, room, pid string) {
	b, found := h.Registry.Get(room)
	if !found {
		http.Error(w, "room not found", http.StatusNotFound)
		return
	}
	rendering, err := b.View(pid)
	if err != nil {
		writeBoardError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte(rendering))
}

func (h *Handler) flip(w http.ResponseWriter, r *http.Request, room, pid, rowCol string) {
	b, found := h.Registry.Get(room)
	if !found {
		http.Error(w, "room not found", http.StatusNotFound)
		return
	}
	if !h.limiterFor(room, pid).Allow() {
		http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
		return
	}
	row, col, err := parseRowCol(rowCol)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := b.Flip(r.Context(), pid, row, col); err != nil {
		writeBoardError(w, err)
		return
	}
	rendering, err := b.View(pid)
	if err != nil {
		writeBoardError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte(rendering))
}

// replace implements GET /{room}/replace/{pid}/{from}/{to}: a board.Map
// call whose transform substitutes to for every card currently reading
// from, leaving every other token unchanged.
func (h *Handler) replace(w http.ResponseWriter, r *http.Request, room, pid, from, to string) {
	b, found := h.Registry.Get(room)
	if !found {
		http.Error(w, "room not found", http.StatusNotFound)
		return
	}
	if !h.limiterFor(room, pid).Allow() {
		http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
		return
	}

	err := b.Map(r.Context(), func(_ context.Context, tok string) (string, error) {
		if tok == from {
			return to, nil
		}
		return tok, nil
	})
	if err != nil {
		writeBoardError(w, err)
		return
	}

	rendering, err := b.View(pid)
	if err != nil {
		writeBoardError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte(rendering))
}

func (h *Handler) watch(w http.ResponseWriter, r *http.Request, room, pid string) {
	b, found := h.Registry.Get(room)
	if !found {
		http.Error(w, "room not found", http.StatusNotFound)
		return
	}
	rendering, err := b.Watch(r.Context(), pid)
	if err != nil {
		writeBoardError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte(rendering))
}

func (h *Handler) ws(w http.ResponseWriter, r *http.Request, room, pid string) {
	hub := h.HubFor(room)
	if hub == nil {
		http.Error(w, "room not found", http.StatusNotFound)
		return
	}
	hub.ServeWS(w, r, pid)
}
