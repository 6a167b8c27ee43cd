package usecase

import (
	"context"
	"testing"

	natsclient "github.com/DKSALL9/StayFlow/internal/adapter/messaging/nats"
	"github.com/DKSALL9/StayFlow/internal/adapter/store/memorystore"
	"github.com/DKSALL9/StayFlow/internal/catalog/domain"
	"github.com/DKSALL9/StayFlow/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, subject string, data interface{}) error {
	args := m.Called(ctx, subject, data)
	return args.Error(0)
}

func newCatalogUC(t *testing.T) (*CatalogUsecase, *memorystore.MemoryStore, *MockPublisher) {
	t.Helper()
	store := memorystore.New()
	publisher := new(MockPublisher)
	return NewCatalogUsecase(store, publisher, logger.NewNop()), store, publisher
}

func TestLoadCatalogSeedFirst(t *testing.T) {
	ctx := context.Background()
	uc, _, publisher := newCatalogUC(t)
	publisher.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	first, err := uc.SubmitProperty(ctx, SubmitPropertyInput{Title: "Desert Villa", Location: "Phoenix, Arizona", Price: 120, Image: "img-1"})
	require.NoError(t, err)
	second, err := uc.SubmitProperty(ctx, SubmitPropertyInput{Title: "Forest Cabin", Location: "Portland, Oregon", Price: 90, Image: "img-2"})
	require.NoError(t, err)

	catalog := uc.LoadCatalog(ctx)
	require.Len(t, catalog, 5)
	assert.Equal(t, "seed-1", catalog[0].ID)
	assert.Equal(t, "seed-2", catalog[1].ID)
	assert.Equal(t, "seed-3", catalog[2].ID)
	assert.Equal(t, first.ID, catalog[3].ID)
	assert.Equal(t, second.ID, catalog[4].ID)
}

func TestLoadCatalogMalformedDataFailsSoft(t *testing.T) {
	ctx := context.Background()
	uc, store, _ := newCatalogUC(t)

	require.NoError(t, store.Set(ctx, domain.KeyProperties, []byte(`{not json`)))

	catalog := uc.LoadCatalog(ctx)
	assert.Len(t, catalog, 3, "malformed persisted data should leave only the seed listings")
}

func TestSearch(t *testing.T) {
	ctx := context.Background()
	uc, _, _ := newCatalogUC(t)
	catalog := uc.LoadCatalog(ctx)

	t.Run("empty query returns the catalog unchanged", func(t *testing.T) {
		assert.Equal(t, catalog, uc.Search(catalog, ""))
		assert.Equal(t, catalog, uc.Search(catalog, "   "))
	})

	t.Run("case-insensitive substring on title and location", func(t *testing.T) {
		byLocation := uc.Search(catalog, "ASPEN")
		require.Len(t, byLocation, 1)
		assert.Equal(t, "seed-2", byLocation[0].ID)

		byTitle := uc.Search(catalog, "apartment")
		require.Len(t, byTitle, 1)
		assert.Equal(t, "seed-3", byTitle[0].ID)
	})

	t.Run("no match yields empty, not nil error", func(t *testing.T) {
		assert.Empty(t, uc.Search(catalog, "submarine"))
	})

	t.Run("order is preserved", func(t *testing.T) {
		// "c" hits Luxury Beach House (California) before City Center Apartment.
		matched := uc.Search(catalog, "c")
		require.NotEmpty(t, matched)
		assert.Equal(t, "seed-1", matched[0].ID)
	})
}

func TestSubmitProperty(t *testing.T) {
	ctx := context.Background()

	t.Run("persists and publishes", func(t *testing.T) {
		uc, store, publisher := newCatalogUC(t)
		publisher.On("Publish", mock.Anything, natsclient.SubjectPropertyCreated, mock.Anything).Return(nil).Once()

		property, err := uc.SubmitProperty(ctx, SubmitPropertyInput{Title: "Desert Villa", Location: "Phoenix, Arizona", Price: 120, Image: "img"})
		require.NoError(t, err)
		assert.NotEmpty(t, property.ID)
		assert.Zero(t, property.Rating)

		raw, err := store.Get(ctx, domain.KeyProperties)
		require.NoError(t, err)
		assert.Contains(t, string(raw), property.ID)

		publisher.AssertExpectations(t)
	})

	t.Run("validation failure writes nothing", func(t *testing.T) {
		uc, store, publisher := newCatalogUC(t)

		_, err := uc.SubmitProperty(ctx, SubmitPropertyInput{Title: "", Location: "Nowhere", Price: 10, Image: "img"})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)

		_, err = store.Get(ctx, domain.KeyProperties)
		assert.ErrorIs(t, err, domain.ErrKeyNotFound)
		publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("publish failure does not fail the submission", func(t *testing.T) {
		uc, _, publisher := newCatalogUC(t)
		publisher.On("Publish", mock.Anything, natsclient.SubjectPropertyCreated, mock.Anything).Return(assert.AnError).Once()

		_, err := uc.SubmitProperty(ctx, SubmitPropertyInput{Title: "Desert Villa", Location: "Phoenix, Arizona", Price: 120, Image: "img"})
		assert.NoError(t, err)
	})
}

func TestSubmitReview(t *testing.T) {
	ctx := context.Background()
	reviewer := &domain.User{ID: "u1", Name: "alice"}

	t.Run("seed listing is materialized on first review", func(t *testing.T) {
		uc, store, publisher := newCatalogUC(t)
		publisher.On("Publish", mock.Anything, natsclient.SubjectReviewCreated, mock.Anything).Return(nil).Once()

		updated, err := uc.SubmitReview(ctx, "seed-1", reviewer, 5, "Still amazing")
		require.NoError(t, err)
		assert.InDelta(t, 4.9, updated.Rating, 1e-9)
		assert.Len(t, updated.Reviews, 2)

		raw, err := store.Get(ctx, domain.KeyProperties)
		require.NoError(t, err)
		assert.Contains(t, string(raw), "seed-1")

		// The reviewed copy replaces the compiled-in seed on reload.
		catalog := uc.LoadCatalog(ctx)
		require.Len(t, catalog, 3)
		assert.Equal(t, "seed-1", catalog[0].ID)
		assert.Len(t, catalog[0].Reviews, 2)
		assert.InDelta(t, 4.9, catalog[0].Rating, 1e-9)
	})

	t.Run("user-submitted listing accumulates reviews", func(t *testing.T) {
		uc, _, publisher := newCatalogUC(t)
		publisher.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil)

		property, err := uc.SubmitProperty(ctx, SubmitPropertyInput{Title: "Desert Villa", Location: "Phoenix, Arizona", Price: 120, Image: "img"})
		require.NoError(t, err)

		updated, err := uc.SubmitReview(ctx, property.ID, reviewer, 4, "Nice stay")
		require.NoError(t, err)
		assert.InDelta(t, 4.0, updated.Rating, 1e-9)

		updated, err = uc.SubmitReview(ctx, property.ID, reviewer, 2, "Second visit was worse")
		require.NoError(t, err)
		assert.InDelta(t, 3.0, updated.Rating, 1e-9)
		assert.Len(t, updated.Reviews, 2)
	})

	t.Run("unknown listing", func(t *testing.T) {
		uc, _, _ := newCatalogUC(t)
		_, err := uc.SubmitReview(ctx, "no-such-id", reviewer, 4, "ok")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("invalid rating writes nothing", func(t *testing.T) {
		uc, store, _ := newCatalogUC(t)
		_, err := uc.SubmitReview(ctx, "seed-1", reviewer, 9, "ok")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)

		_, err = store.Get(ctx, domain.KeyProperties)
		assert.ErrorIs(t, err, domain.ErrKeyNotFound)
	})
}

func TestAttachMedia(t *testing.T) {
	ctx := context.Background()
	uc, _, _ := newCatalogUC(t)

	updated, err := uc.AttachMedia(ctx, "seed-2", "https://cdn.example.com/retreat.mp4")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/retreat.mp4", updated.Image)

	catalog := uc.LoadCatalog(ctx)
	var persisted *domain.Property
	for i := range catalog {
		if catalog[i].ID == "seed-2" && catalog[i].Image == "https://cdn.example.com/retreat.mp4" {
			persisted = &catalog[i]
		}
	}
	require.NotNil(t, persisted, "attached media should survive reload")

	_, err = uc.AttachMedia(ctx, "seed-2", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.AttachMedia(ctx, "no-such-id", "ref")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetProperty(t *testing.T) {
	ctx := context.Background()
	uc, _, _ := newCatalogUC(t)

	property, err := uc.GetProperty(ctx, "seed-3")
	require.NoError(t, err)
	assert.Equal(t, "City Center Apartment", property.Title)

	_, err = uc.GetProperty(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
