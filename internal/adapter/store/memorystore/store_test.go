package memorystore

import (
	"context"
	"sync"
	"testing"

	"github.com/DKSALL9/StayFlow/internal/catalog/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := New()

	_, err := store.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrKeyNotFound)

	require.NoError(t, store.Set(ctx, "properties", []byte(`[]`)))
	value, err := store.Get(ctx, "properties")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), value)

	require.NoError(t, store.Remove(ctx, "properties"))
	_, err = store.Get(ctx, "properties")
	assert.ErrorIs(t, err, domain.ErrKeyNotFound)
}

func TestMemoryStoreRemoveMissingKey(t *testing.T) {
	store := New()
	assert.NoError(t, store.Remove(context.Background(), "never-set"))
}

func TestMemoryStoreCopiesValues(t *testing.T) {
	ctx := context.Background()
	store := New()

	original := []byte(`{"a":1}`)
	require.NoError(t, store.Set(ctx, "k", original))
	original[0] = 'X'

	value, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"a":1}`), value)

	// Mutating the returned slice must not affect the stored copy.
	value[0] = 'Y'
	again, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"a":1}`), again)
}

func TestMemoryStoreConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	store := New()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = store.Set(ctx, "k", []byte("v"))
		}()
		go func() {
			defer wg.Done()
			_, _ = store.Get(ctx, "k")
		}()
	}
	wg.Wait()
}
