package session

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/DKSALL9/StayFlow/internal/adapter/store/memorystore"
	"github.com/DKSALL9/StayFlow/internal/catalog/domain"
	"github.com/DKSALL9/StayFlow/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newManager(t *testing.T) (*Manager, *memorystore.MemoryStore) {
	t.Helper()
	store := memorystore.New()
	return NewManager(context.Background(), store, testSecret, logger.NewNop()), store
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("derives the name from the email local part", func(t *testing.T) {
		m, store := newManager(t)

		user, token, err := m.Login(ctx, "alice@example.com", "secret1")
		require.NoError(t, err)
		assert.Equal(t, "alice", user.Name)
		assert.Equal(t, "alice@example.com", user.Email)
		assert.NotEmpty(t, user.ID)
		assert.NotEmpty(t, token)

		raw, err := store.Get(ctx, domain.KeyUser)
		require.NoError(t, err)
		var persisted domain.User
		require.NoError(t, json.Unmarshal(raw, &persisted))
		assert.Equal(t, user.ID, persisted.ID)
	})

	t.Run("short password is rejected", func(t *testing.T) {
		m, store := newManager(t)

		_, _, err := m.Login(ctx, "alice@example.com", "12345")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.Nil(t, m.CurrentUser())

		_, err = store.Get(ctx, domain.KeyUser)
		assert.ErrorIs(t, err, domain.ErrKeyNotFound)
	})

	t.Run("six characters is the minimum", func(t *testing.T) {
		m, _ := newManager(t)
		_, _, err := m.Login(ctx, "alice@example.com", "123456")
		assert.NoError(t, err)
	})

	t.Run("empty email is rejected", func(t *testing.T) {
		m, _ := newManager(t)
		_, _, err := m.Login(ctx, "  ", "secret1")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("signing in replaces the previous session", func(t *testing.T) {
		m, _ := newManager(t)

		_, _, err := m.Login(ctx, "alice@example.com", "secret1")
		require.NoError(t, err)
		_, _, err = m.Login(ctx, "bob@example.com", "secret2")
		require.NoError(t, err)

		current := m.CurrentUser()
		require.NotNil(t, current)
		assert.Equal(t, "bob@example.com", current.Email)
	})
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("uses the provided name", func(t *testing.T) {
		m, _ := newManager(t)
		user, _, err := m.Register(ctx, "carol@example.com", "secret1", "Carol D")
		require.NoError(t, err)
		assert.Equal(t, "Carol D", user.Name)
	})

	t.Run("empty name falls back to the email local part", func(t *testing.T) {
		m, _ := newManager(t)
		user, _, err := m.Register(ctx, "carol@example.com", "secret1", "  ")
		require.NoError(t, err)
		assert.Equal(t, "carol", user.Name)
	})

	t.Run("short password is rejected", func(t *testing.T) {
		m, _ := newManager(t)
		_, _, err := m.Register(ctx, "carol@example.com", "123", "Carol")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	m, store := newManager(t)

	_, _, err := m.Login(ctx, "alice@example.com", "secret1")
	require.NoError(t, err)
	require.NotNil(t, m.CurrentUser())

	require.NoError(t, m.Logout(ctx))
	assert.Nil(t, m.CurrentUser())
	_, err = store.Get(ctx, domain.KeyUser)
	assert.ErrorIs(t, err, domain.ErrKeyNotFound)

	// Signing out twice is harmless.
	assert.NoError(t, m.Logout(ctx))
}

func TestSessionRestore(t *testing.T) {
	ctx := context.Background()
	store := memorystore.New()

	first := NewManager(ctx, store, testSecret, logger.NewNop())
	user, _, err := first.Login(ctx, "alice@example.com", "secret1")
	require.NoError(t, err)

	restored := NewManager(ctx, store, testSecret, logger.NewNop())
	current := restored.CurrentUser()
	require.NotNil(t, current)
	assert.Equal(t, user.ID, current.ID)
	assert.Equal(t, "alice@example.com", current.Email)
}

func TestSessionRestoreMalformedData(t *testing.T) {
	ctx := context.Background()
	store := memorystore.New()
	require.NoError(t, store.Set(ctx, domain.KeyUser, []byte(`{broken`)))

	m := NewManager(ctx, store, testSecret, logger.NewNop())
	assert.Nil(t, m.CurrentUser())
}

func TestVerifyToken(t *testing.T) {
	ctx := context.Background()
	m, _ := newManager(t)

	user, token, err := m.Login(ctx, "alice@example.com", "secret1")
	require.NoError(t, err)

	userID, err := m.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)

	_, err = m.VerifyToken("not-a-token")
	assert.Error(t, err)

	other := NewManager(ctx, memorystore.New(), "different-secret", logger.NewNop())
	_, err = other.VerifyToken(token)
	assert.Error(t, err, "token signed with another secret must not verify")
}

func TestCurrentUserReturnsACopy(t *testing.T) {
	ctx := context.Background()
	m, _ := newManager(t)

	_, _, err := m.Login(ctx, "alice@example.com", "secret1")
	require.NoError(t, err)

	copy1 := m.CurrentUser()
	copy1.Name = "mutated"
	copy1.SavedProperties = append(copy1.SavedProperties, "seed-1")

	copy2 := m.CurrentUser()
	assert.Equal(t, "alice", copy2.Name)
	assert.Empty(t, copy2.SavedProperties)
}
