package game

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Manager is a concurrent registry of running games keyed by UUID. Each
// game itself is single-threaded; the manager only guards the registry.
type Manager struct {
	mu     sync.RWMutex
	games  map[string]*Game
	logger *zap.Logger
}

// NewManager creates an empty game registry.
func NewManager(logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		games:  make(map[string]*Game),
		logger: logger,
	}
}

// Create starts a new game and registers it under a fresh id.
func (m *Manager) Create(nPlayers int, deal DealFunc, picker PickFunc) (string, *Game, error) {
	g, err := New(nPlayers, deal, picker, m.logger)
	if err != nil {
		return "", nil, fmt.Errorf("creating game: %w", err)
	}
	id := uuid.New().String()

	m.mu.Lock()
	m.games[id] = g
	m.mu.Unlock()

	m.logger.Info("game registered",
		zap.String("game_id", id),
		zap.Int("players", nPlayers),
	)
	return id, g, nil
}

// Get returns the game with the given id.
func (m *Manager) Get(id string) (*Game, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.games[id]
	return g, ok
}

// Remove drops a game from the registry.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.games[id]; ok {
		delete(m.games, id)
		m.logger.Info("game removed", zap.String("game_id", id))
	}
}

// Count returns the number of registered games.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}

// IDs returns the ids of all registered games.
func (m *Manager) IDs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.games))
	for id := range m.games {
		ids = append(ids, id)
	}
	return ids
}
