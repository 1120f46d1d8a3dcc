package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okuyamiwatch/backend/pkg/config"
	redislib "github.com/redis/go-redis/v9"
)

type memoryStore struct {
	values map[string]string
	ttls   map[string]time.Duration
}

func newMemoryStore() *memoryStore {
	return &memoryStore{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (m *memoryStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	m.values[key] = value.(string)
	m.ttls[key] = ttl
	return nil
}

func (m *memoryStore) Get(ctx context.Context, key string) (string, error) {
	v, ok := m.values[key]
	if !ok {
		return "", redislib.Nil
	}
	return v, nil
}

func (m *memoryStore) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(m.values, key)
		delete(m.ttls, key)
	}
	return nil
}

func (m *memoryStore) SessionKey(tokenID string) string {
	return "test:session:" + tokenID
}

func newTestManager(store *memoryStore, ttl time.Duration) *Manager {
	return &Manager{store: store, keyer: store, ttl: ttl}
}

func TestNewManagerValidatesTTLOrdering(t *testing.T) {
	_, err := NewManager(nil, config.JWTConfig{})
	assert.Error(t, err)
}

func TestGenerateStoresTokenUnderJTI(t *testing.T) {
	store := newMemoryStore()
	mgr := newTestManager(store, time.Hour)

	token, err := mgr.Generate(context.Background(), "jti-1")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, token, store.values["test:session:jti-1"])
	assert.Equal(t, time.Hour, store.ttls["test:session:jti-1"])

	_, err = mgr.Generate(context.Background(), "  ")
	assert.Error(t, err)
}

func TestGenerateTokensAreUnique(t *testing.T) {
	store := newMemoryStore()
	mgr := newTestManager(store, time.Hour)

	first, err := mgr.Generate(context.Background(), "jti-1")
	require.NoError(t, err)
	second, err := mgr.Generate(context.Background(), "jti-2")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestRotateIssuesNewPairAndInvalidatesOld(t *testing.T) {
	store := newMemoryStore()
	mgr := newTestManager(store, time.Hour)

	oldToken, err := mgr.Generate(context.Background(), "jti-old")
	require.NoError(t, err)

	newID, newToken, err := mgr.Rotate(context.Background(), "jti-old", oldToken)
	require.NoError(t, err)
	assert.NotEqual(t, "jti-old", newID)
	assert.NotEqual(t, oldToken, newToken)

	_, hasOld := store.values["test:session:jti-old"]
	assert.False(t, hasOld)
	assert.Equal(t, newToken, store.values["test:session:"+newID])

	// The consumed pair is dead; replaying it must fail.
	_, _, err = mgr.Rotate(context.Background(), "jti-old", oldToken)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestRotateRejectsMismatchedToken(t *testing.T) {
	store := newMemoryStore()
	mgr := newTestManager(store, time.Hour)

	_, err := mgr.Generate(context.Background(), "jti-1")
	require.NoError(t, err)

	_, _, err = mgr.Rotate(context.Background(), "jti-1", "a-guess")
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)

	_, _, err = mgr.Rotate(context.Background(), "", "")
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestRevokeDeletesMapping(t *testing.T) {
	store := newMemoryStore()
	mgr := newTestManager(store, time.Hour)

	token, err := mgr.Generate(context.Background(), "jti-1")
	require.NoError(t, err)

	require.NoError(t, mgr.Revoke(context.Background(), "jti-1"))
	_, _, err = mgr.Rotate(context.Background(), "jti-1", token)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)

	assert.Error(t, mgr.Revoke(context.Background(), " "))
}
