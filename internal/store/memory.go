// internal/store/memory.go
//
// In-memory implementation of the game Store used by the HTTP API.
//
// Characteristics:
//   - Stores *game.Game objects keyed by ID in a map.
//   - Concurrency-safe via RWMutex; Update runs the mutation under the
//     write lock so concurrent guesses on one game are serialised.
//   - State is lost when the process restarts.

package store

import (
	"context"
	"errors"
	"sync"

	"github.com/robalobadob/hangman/internal/game"
)

// ErrNotFound is returned for unknown game IDs.
var ErrNotFound = errors.New("game not found")

// Store defines the persistence interface for game sessions.
type Store interface {
	// Save persists or replaces a game.
	Save(ctx context.Context, g *game.Game) error

	// Get retrieves a game by ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*game.Game, error)

	// Update applies fn to the stored game while holding the store lock.
	// fn's error is returned unchanged.
	Update(ctx context.Context, id string, fn func(*game.Game) error) error
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu    sync.RWMutex          // guards games and every stored game
	games map[string]*game.Game // keyed by Game.ID
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{games: make(map[string]*game.Game)}
}

func (m *memory) Save(ctx context.Context, g *game.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[g.ID] = g
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (*game.Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if g, ok := m.games[id]; ok {
		return g, nil
	}
	return nil, ErrNotFound
}

func (m *memory) Update(ctx context.Context, id string, fn func(*game.Game) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.games[id]
	if !ok {
		return ErrNotFound
	}
	return fn(g)
}
