package session

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"labportal/internal/domain"
	"labportal/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPersist_WritesOnLoginAndClearsOnLogout(t *testing.T) {
	storage := testutil.NewMemoryStorage()
	store := NewStore(nil)
	Persist(store, storage, "persist:auth:1", nil)

	store.Rehydrate(context.Background(), storage, "persist:auth:1")
	require.NoError(t, store.Login(context.Background(), doctor))

	data, ok := storage.Get("persist:auth:1")
	require.True(t, ok)

	var stored map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &stored))
	assert.Len(t, stored, 1, "only the user field is persisted")

	var user domain.Profile
	require.NoError(t, json.Unmarshal(stored["user"], &user))
	assert.Equal(t, doctor, user)

	require.NoError(t, store.Logout(context.Background()))
	_, ok = storage.Get("persist:auth:1")
	assert.False(t, ok)
}

func TestPersist_RestoresAcrossStores(t *testing.T) {
	storage := testutil.NewMemoryStorage()

	first := NewStore(nil)
	Persist(first, storage, "k", nil)
	first.Rehydrate(context.Background(), storage, "k")
	require.NoError(t, first.Login(context.Background(), doctor))

	second := NewStore(nil)
	Persist(second, storage, "k", nil)
	state, err := second.Rehydrate(context.Background(), storage, "k")
	require.NoError(t, err)

	assert.Equal(t, StatusAuthenticated, state.Status)
	assert.Equal(t, &doctor, state.User)
}

func TestPersist_ClearsCorruptData(t *testing.T) {
	storage := testutil.NewMemoryStorage()
	storage.Put("k", []byte("not json"))

	store := NewStore(nil)
	Persist(store, storage, "k", nil)
	state, err := store.Rehydrate(context.Background(), storage, "k")
	require.NoError(t, err)

	assert.Equal(t, StatusAnonymous, state.Status)
	_, ok := storage.Get("k")
	assert.False(t, ok)
	assert.Equal(t, []string{"k"}, storage.Removed())
}

func TestPersist_KeepsSessionOnReadError(t *testing.T) {
	storage := testutil.NewMemoryStorage()
	storage.Put("k", []byte(`{"user":{"id":"u-1","username":"bs.lan","fullName":"Nguyễn Thị Lan","role":"ROLE_DOCTOR"}}`))
	storage.FailGets(errors.New("connection refused"))

	store := NewStore(nil)
	Persist(store, storage, "k", nil)
	state, err := store.Rehydrate(context.Background(), storage, "k")

	require.Error(t, err)
	assert.Equal(t, StatusAnonymous, state.Status)
	assert.True(t, storage.Has("k"), "a failed read must not clear the stored session")
	assert.Empty(t, storage.Removed())

	storage.FailGets(nil)
	retry := NewStore(nil)
	Persist(retry, storage, "k", nil)
	state, err = retry.Rehydrate(context.Background(), storage, "k")
	require.NoError(t, err)
	assert.Equal(t, StatusAuthenticated, state.Status)
	assert.Equal(t, &doctor, state.User)
}
