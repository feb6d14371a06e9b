package session

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sbenmansour/cessiondesk/internal/app/models"
	"github.com/sbenmansour/cessiondesk/internal/app/storage"
)

func TestManagerSetAndClear(t *testing.T) {
	store := storage.NewMemoryStore()
	m := NewManager(store, zap.NewNop())

	assert.False(t, m.IsAuthenticated())
	assert.Empty(t, m.Token())
	assert.Nil(t, m.User())

	user := &models.User{ID: "u-1", Email: "owner@example.com", FullName: "Owner"}
	m.Set("tok-abc", user)

	assert.True(t, m.IsAuthenticated())
	assert.Equal(t, "tok-abc", m.Token())
	assert.Equal(t, user, m.User())

	stored, err := store.Get(storage.KeyToken)
	require.NoError(t, err)
	assert.Equal(t, "tok-abc", stored)

	m.Clear()
	assert.False(t, m.IsAuthenticated())
	assert.Nil(t, m.User())

	_, err = store.Get(storage.KeyToken)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = store.Get(storage.KeyUser)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestSetWithEmptyValuesDropsStoredEntries(t *testing.T) {
	store := storage.NewMemoryStore()
	m := NewManager(store, zap.NewNop())

	m.Set("tok-abc", &models.User{ID: "u-1"})
	m.Set("", nil)

	_, err := store.Get(storage.KeyToken)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = store.Get(storage.KeyUser)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	restarted := NewManager(store, zap.NewNop())
	assert.False(t, restarted.IsAuthenticated())
	assert.Nil(t, restarted.User())
}

func TestManagerHydratesFromStore(t *testing.T) {
	store := storage.NewMemoryStore()
	require.NoError(t, store.Set(storage.KeyToken, "persisted-token"))

	raw, err := json.Marshal(models.User{ID: "u-2", Email: "x@example.com"})
	require.NoError(t, err)
	require.NoError(t, store.Set(storage.KeyUser, string(raw)))

	m := NewManager(store, zap.NewNop())
	assert.True(t, m.IsAuthenticated())
	assert.Equal(t, "persisted-token", m.Token())
	require.NotNil(t, m.User())
	assert.Equal(t, "u-2", m.User().ID)
}

func TestManagerDiscardsCorruptUserEntry(t *testing.T) {
	store := storage.NewMemoryStore()
	require.NoError(t, store.Set(storage.KeyToken, "tok"))
	require.NoError(t, store.Set(storage.KeyUser, "{not json"))

	m := NewManager(store, zap.NewNop())
	assert.True(t, m.IsAuthenticated())
	assert.Nil(t, m.User())

	_, err := store.Get(storage.KeyUser)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestTokenExpiresAt(t *testing.T) {
	store := storage.NewMemoryStore()
	m := NewManager(store, zap.NewNop())

	assert.True(t, m.TokenExpiresAt().IsZero())

	m.Set("not-a-jwt", nil)
	assert.True(t, m.TokenExpiresAt().IsZero())

	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u-1",
		"exp": exp.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	m.Set(signed, nil)
	assert.Equal(t, exp.Unix(), m.TokenExpiresAt().Unix())
}
