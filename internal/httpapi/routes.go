package httpapi

import (
	"net/http"
	"strings"
)

// Mux builds the full route table described by the HTTP front door's
// contract: GET /{room}/look/{pid}, /{room}/flip/{pid}/{row},{col},
// /{room}/replace/{pid}/{from}/{to}, /{room}/watch/{pid}, /{room}/ws/{pid},
// and /health.
func (h *Handler) Mux() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", h.Health)
	mux.HandleFunc("/", h.dispatch)
	return mux
}

// dispatch parses "/{room}/{op}/{rest...}" by hand, exactly as the
// teacher's main.go parses paths and headers without a router library —
// none appears anywhere in the retrieved pack for this concern.
func (h *Handler) dispatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	segments := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(segments) < 3 {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	room, op := segments[0], segments[1]
	rest := segments[2:]

	switch op {
	case "look":
		if len(rest) != 1 {
			http.Error(w, "expected /{room}/look/{pid}", http.StatusBadRequest)
			return
		}
		h.look(w, r, room, rest[0])
	case "flip":
		if len(rest) != 2 {
			http.Error(w, "expected /{room}/flip/{pid}/{row},{col}", http.StatusBadRequest)
			return
		}
		h.flip(w, r, room, rest[0], rest[1])
	case "replace":
		if len(rest) != 3 {
			http.Error(w, "expected /{room}/replace/{pid}/{from}/{to}", http.StatusBadRequest)
			return
		}
		h.replace(w, r, room, rest[0], rest[1], rest[2])
	case "watch":
		if len(rest) != 1 {
			http.Error(w, "expected /{room}/watch/{pid}", http.StatusBadRequest)
			return
		}
		h.watch(w, r, room, rest[0])
	case "ws":
		if len(rest) != 1 {
			http.Error(w, "expected /{room}/ws/{pid}", http.StatusBadRequest)
			return
		}
		h.ws(w, r, room, rest[0])
	default:
		http.Error(w, "not found", http.StatusNotFound)
	}
}
