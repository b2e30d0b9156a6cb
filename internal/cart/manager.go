package cart

import (
	"context"
	"fmt"
	"sync"

	"github.com/SvAkshayKumar/SmartCart-GenAI/pkg/logger"
)

// Manager maps session ids to engines, rehydrating each session from the
// store exactly once before first use.
type Manager struct {
	mu      sync.Mutex
	engines map[string]*Engine
	store   Store
	logg    *logger.Logger
}

// NewManager builds a session manager backed by the provided store.
func NewManager(store Store, logg *logger.Logger) (*Manager, error) {
	if store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	return &Manager{
		engines: make(map[string]*Engine),
		store:   store,
		logg:    logg,
	}, nil
}

// Engine returns the engine for the session, loading persisted state on the
// first call. A failed load degrades to an empty cart.
func (m *Manager) Engine(ctx context.Context, sessionID string) *Engine {
	m.mu.Lock()
	defer m.mu.Unlock()

	if engine, ok := m.engines[sessionID]; ok {
		return engine
	}

	seed, err := m.store.LoadCart(ctx, sessionID)
	if err != nil {
		if m.logg != nil {
			m.logg.Error(ctx, "rehydrating cart, starting empty", err)
		}
		seed = nil
	}

	engine := NewEngine(sessionID, seed, m.store, m.logg)
	m.engines[sessionID] = engine
	return engine
}
