package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

const rehydrateTimeout = 10 * time.Second

// Manager owns one store per chat user
type Manager struct {
	storage Storage
	prefix  string
	logger  *zap.Logger

	mu     sync.Mutex
	stores map[int64]*Store
}

// NewManager creates a manager persisting under "<prefix>:<user id>"
func NewManager(storage Storage, prefix string, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		storage: storage,
		prefix:  prefix,
		logger:  logger,
		stores:  make(map[int64]*Store),
	}
}

// Key returns the storage key of userID's session
func (m *Manager) Key(userID int64) string {
	return fmt.Sprintf("%s:%d", m.prefix, userID)
}

// Get returns userID's store. A new store starts rehydrating in the
// background; use Store.Await before acting on its state. When storage
// could not be read the store is dropped so the next Get rehydrates again.
func (m *Manager) Get(userID int64) *Store {
	m.mu.Lock()
	store, ok := m.stores[userID]
	if !ok {
		store = NewStore(m.logger.With(zap.Int64("user_id", userID)))
		Persist(store, m.storage, m.Key(userID), m.logger)
		m.stores[userID] = store
	}
	m.mu.Unlock()

	if !ok {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), rehydrateTimeout)
			defer cancel()
			state, err := store.Rehydrate(ctx, m.storage, m.Key(userID))
			if err != nil {
				m.forget(userID, store)
				m.logger.Warn("Session rehydration will be retried",
					zap.Int64("user_id", userID),
					zap.Error(err),
				)
				return
			}
			m.logger.Debug("Session rehydrated",
				zap.Int64("user_id", userID),
				zap.String("status", string(state.Status)),
			)
		}()
	}
	return store
}

// Load returns userID's store once rehydration has resolved
func (m *Manager) Load(ctx context.Context, userID int64) (*Store, State, error) {
	store := m.Get(userID)
	state, err := store.Await(ctx)
	return store, state, err
}

func (m *Manager) forget(userID int64, store *Store) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stores[userID] == store {
		delete(m.stores, userID)
	}
}
