// internal/store/memory.go
//
// In-memory session store for running games.
// Each browser session owns exactly one active game; starting a new game
// replaces the stored value wholesale.
//
// Characteristics:
//   - Stores *game.Game keyed by session ID.
//   - Concurrency-safe via RWMutex (the HTTP server handles requests in parallel).
//   - State is lost when the process restarts; nothing is persisted.

package store

import (
	"context"
	"errors"
	"sync"

	"github.com/thecivilword/civilword/internal/game"
)

// ErrNotFound is returned by Get for unknown sessions.
var ErrNotFound = errors.New("store: session not found")

// Store defines the session interface for active games.
type Store interface {
	// Save sets the active game for a session, replacing any previous one.
	Save(ctx context.Context, session string, g *game.Game) error

	// Get retrieves the active game for a session.
	Get(ctx context.Context, session string) (*game.Game, error)

	// Delete forgets a session.
	Delete(ctx context.Context, session string) error
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu    sync.RWMutex
	games map[string]*game.Game
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{games: make(map[string]*game.Game)}
}

func (m *memory) Save(ctx context.Context, session string, g *game.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[session] = g
	return nil
}

func (m *memory) Get(ctx context.Context, session string) (*game.Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if g, ok := m.games[session]; ok {
		return g, nil
	}
	return nil, ErrNotFound
}

func (m *memory) Delete(ctx context.Context, session string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.games, session)
	return nil
}
