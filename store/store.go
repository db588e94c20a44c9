package store

import (
	"errors"
	"sync"

	"github.com/lazharichir/queens/domain"
)

var (
	// ErrNotFound means no game exists under the given ID
	ErrNotFound = errors.New("game not found")
	// ErrStaleVersion means a CompareAndSwap lost the race
	ErrStaleVersion = errors.New("stale version")
	// ErrExists means a game was already created under the given ID
	ErrExists = errors.New("game already exists")
)

// Store is the versioned-state contract the move pipeline commits
// through. All commits within a game are serialized by the
// compare-and-swap; observers see states in version order.
type Store interface {
	// Create stores a brand-new game at its current version.
	Create(g *domain.Game) error
	// Load fetches the latest committed state of a game.
	Load(gameID string) (*domain.Game, error)
	// CompareAndSwap commits next iff the stored version still equals
	// expected. Returns ErrStaleVersion otherwise.
	CompareAndSwap(gameID string, expected int64, next *domain.Game) error
	// AppendMove records a committed move in the audit log.
	AppendMove(gameID string, mv domain.Move, version int64) error
	// RecentMoves returns up to limit latest audited moves, oldest first.
	RecentMoves(gameID string, limit int) ([]domain.Move, error)
	// ListGames returns the IDs of all stored games.
	ListGames() ([]string, error)
	// Close releases any underlying resources.
	Close() error
}

// MemoryStore is the in-memory Store used by tests and single-node
// deployments. Snapshots are deep copies, so committed states are
// immutable to callers.
type MemoryStore struct {
	mu    sync.RWMutex
	games map[string]*domain.Game
	moves map[string][]domain.Move
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		games: make(map[string]*domain.Game),
		moves: make(map[string][]domain.Move),
	}
}

// Create stores a new game
func (s *MemoryStore) Create(g *domain.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.games[g.ID]; exists {
		return ErrExists
	}
	s.games[g.ID] = g.Clone()
	return nil
}

// Load returns a deep copy of the latest committed state
func (s *MemoryStore) Load(gameID string) (*domain.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, exists := s.games[gameID]
	if !exists {
		return nil, ErrNotFound
	}
	return g.Clone(), nil
}

// CompareAndSwap commits the next state if the version still matches
func (s *MemoryStore) CompareAndSwap(gameID string, expected int64, next *domain.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, exists := s.games[gameID]
	if !exists {
		return ErrNotFound
	}
	if current.Version != expected {
		return ErrStaleVersion
	}
	s.games[gameID] = next.Clone()
	return nil
}

// AppendMove records a committed move
func (s *MemoryStore) AppendMove(gameID string, mv domain.Move, version int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.moves[gameID] = append(s.moves[gameID], mv)
	return nil
}

// RecentMoves returns the tail of the audit log, oldest first
func (s *MemoryStore) RecentMoves(gameID string, limit int) ([]domain.Move, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := s.moves[gameID]
	if limit > 0 && len(all) > limit {
		all = all[len(all)-limit:]
	}
	out := make([]domain.Move, len(all))
	copy(out, all)
	return out, nil
}

// ListGames returns all stored game IDs
func (s *MemoryStore) ListGames() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.games))
	for id := range s.games {
		ids = append(ids, id)
	}
	return ids, nil
}

// Close is a no-op for the in-memory store
func (s *MemoryStore) Close() error {
	return nil
}
