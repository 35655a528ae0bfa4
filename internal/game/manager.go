package game

import (
	"sync"

	"github.com/google/uuid"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/lgbarn/board-rules-go/internal/chess"
	"github.com/lgbarn/board-rules-go/internal/errors"
	"github.com/lgbarn/board-rules-go/internal/rules"
)

// Manager keeps independent game sessions keyed by uuid.
type Manager struct {
	mu    sync.RWMutex
	games map[string]*Game
	opts  []rules.Option
}

// NewManager creates a manager. opts are applied to every game's engine.
func NewManager(opts ...rules.Option) *Manager {
	return &Manager{games: make(map[string]*Game), opts: opts}
}

// NewGame starts a session on layout (the initial position when empty).
// opts are applied after the manager's own.
func (m *Manager) NewGame(v chess.Variant, layout string, opts ...rules.Option) (*Game, error) {
	all := append(append([]rules.Option(nil), m.opts...), opts...)
	g, err := New(uuid.NewString(), v, layout, all...)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[g.ID] = g
	return g, nil
}

// Get returns the session with the given id.
func (m *Manager) Get(id string) (*Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.games[id]
	if !ok {
		return nil, errors.Wrapf(errors.ErrGameNotFound, "id %s", id)
	}
	return g, nil
}

// Play plays a move in session id.
func (m *Manager) Play(id string, from, to chess.Coord) (Turn, error) {
	g, err := m.Get(id)
	if err != nil {
		return Turn{}, err
	}
	return g.Play(from, to)
}

// Remove ends session id.
func (m *Manager) Remove(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.games[id]; !ok {
		return errors.Wrapf(errors.ErrGameNotFound, "id %s", id)
	}
	delete(m.games, id)
	return nil
}

// IDs returns the ids of all sessions in sorted order.
func (m *Manager) IDs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := maps.Keys(m.games)
	slices.Sort(ids)
	return ids
}

// Len returns the number of sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}
