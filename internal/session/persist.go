package session

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"
)

const persistTimeout = 5 * time.Second

// Persist mirrors the store into storage under key: written on login,
// removed on logout and when rehydration ends anonymous. A rehydration that
// could not read storage leaves the key alone. It returns the unsubscribe
// function.
func Persist(store *Store, storage Storage, key string, logger *zap.Logger) func() {
	if logger == nil {
		logger = zap.NewNop()
	}

	return store.Subscribe(func(c Change) {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()

		switch {
		case c.Action == ActionLogin && c.State.Status == StatusAuthenticated:
			data, err := json.Marshal(persisted{User: c.State.User})
			if err != nil {
				logger.Error("Failed to encode session", zap.String("key", key), zap.Error(err))
				return
			}
			if err := storage.SetItem(ctx, key, data); err != nil {
				logger.Error("Failed to persist session", zap.String("key", key), zap.Error(err))
			}

		case c.Action == ActionLogout,
			c.Action == ActionRehydrate && c.State.Status == StatusAnonymous && !c.ReadFailed:
			if err := storage.RemoveItem(ctx, key); err != nil {
				logger.Error("Failed to clear persisted session", zap.String("key", key), zap.Error(err))
			}
		}
	})
}
