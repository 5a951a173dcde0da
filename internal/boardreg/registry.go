// Package boardreg keeps the set of live boards a server is hosting, one
// per room. The Board type itself knows nothing about rooms; this is purely
// the lookup layer main.go and internal/httpapi use to find one.
package boardreg

import (
	"sync"

	"github.com/google/uuid"

	"memoryscramble/internal/board"
)

// Registry maps room ids to boards.
type Registry struct {
	mu     sync.RWMutex
	boards map[string]*board.Board
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{boards: make(map[string]*board.Board)}
}

// Create mints a new room id and board, registers it, and returns both.
func (reg *Registry) Create(rows, cols int, tokens []string) (id string, b *board.Board) {
	b = board.New(rows, cols, tokens)
	id = uuid.New().String()

	reg.mu.Lock()
	reg.boards[id] = b
	reg.mu.Unlock()

	return id, b
}

// Get looks up the board for a room id.
func (reg *Registry) Get(id string) (*board.Board, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	b, ok := reg.boards[id]
	return b, ok
}

// Delete removes a room's board from the registry. It does not affect
// goroutines already holding a reference to the board (e.g. parked in a
// long-poll watch); they simply outlive the registry entry.
func (reg *Registry) Delete(id string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	delete(reg.boards, id)
}

// IDs returns every currently registered room id.
func (reg *Registry) IDs() []string {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	ids := make([]string, 0, len(reg.boards))
	for id := range reg.boards {
		ids = append(ids, id)
	}
	return ids
}
