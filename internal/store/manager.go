package store

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Manager hands out one Store per learner, rehydrating from the
// persistence layer on first access.
type Manager struct {
	mu        sync.Mutex
	stores    map[string]*Store
	persister Persister
	logger    *zap.Logger
}

func NewManager(persister Persister, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		stores:    map[string]*Store{},
		persister: persister,
		logger:    logger,
	}
}

func (m *Manager) Get(ctx context.Context, learnerID string) (*Store, error) {
	m.mu.Lock()
	if st, ok := m.stores[learnerID]; ok {
		m.mu.Unlock()
		return st, nil
	}
	m.mu.Unlock()

	var initial State
	if m.persister != nil {
		snap, err := m.persister.Load(ctx, learnerID)
		if err != nil {
			return nil, err
		}
		initial = FromSnapshot(snap)
	} else {
		initial = NewState()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if st, ok := m.stores[learnerID]; ok {
		return st, nil
	}
	st := NewStore(learnerID, initial, m.persister, m.logger)
	m.stores[learnerID] = st
	return st, nil
}
