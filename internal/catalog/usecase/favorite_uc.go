package usecase

import (
	"context"

	"github.com/DKSALL9/StayFlow/internal/catalog/domain"
	"github.com/DKSALL9/StayFlow/internal/platform/logger"
	"go.uber.org/zap"
)

// IdentitySaver persists changes to the signed-in user's record. Implemented
// by the session manager.
type IdentitySaver interface {
	SaveUser(ctx context.Context, user *domain.User) error
}

// FavoriteUsecase manages the user's saved listings. Saved listings live as a
// shared snapshot collection; membership per user is tracked on the user
// record by listing id.
type FavoriteUsecase struct {
	store    domain.Store
	catalog  *CatalogUsecase
	identity IdentitySaver
	logger   *logger.Logger
}

func NewFavoriteUsecase(store domain.Store, catalog *CatalogUsecase, identity IdentitySaver, log *logger.Logger) *FavoriteUsecase {
	return &FavoriteUsecase{
		store:    store,
		catalog:  catalog,
		identity: identity,
		logger:   log.Named("FavoriteUsecase"),
	}
}

// SaveProperty bookmarks a listing for the user. Saving an already saved
// listing is a no-op.
func (uc *FavoriteUsecase) SaveProperty(ctx context.Context, user *domain.User, propertyID string) error {
	if user.HasSaved(propertyID) {
		return nil
	}

	property, err := uc.catalog.GetProperty(ctx, propertyID)
	if err != nil {
		return err
	}

	saved := loadSavedProperties(ctx, uc.store, uc.logger)
	found := false
	for i := range saved {
		if saved[i].ID == propertyID {
			found = true
			break
		}
	}
	if !found {
		saved = append(saved, *property)
		if err := saveSavedProperties(ctx, uc.store, saved); err != nil {
			uc.logger.Error("SaveProperty: failed to persist saved properties", zap.Error(err))
			return err
		}
	}

	user.SavedProperties = append(user.SavedProperties, propertyID)
	if err := uc.identity.SaveUser(ctx, user); err != nil {
		uc.logger.Error("SaveProperty: failed to persist user", zap.String("user_id", user.ID), zap.Error(err))
		return err
	}

	uc.logger.Info("SaveProperty: listing saved",
		zap.String("user_id", user.ID),
		zap.String("property_id", propertyID))
	return nil
}

// RemoveSaved drops a listing from the user's bookmarks. Removing a listing
// that was never saved is a no-op.
func (uc *FavoriteUsecase) RemoveSaved(ctx context.Context, user *domain.User, propertyID string) error {
	if !user.HasSaved(propertyID) {
		return nil
	}

	remaining := make([]string, 0, len(user.SavedProperties))
	for _, id := range user.SavedProperties {
		if id != propertyID {
			remaining = append(remaining, id)
		}
	}
	user.SavedProperties = remaining
	if err := uc.identity.SaveUser(ctx, user); err != nil {
		uc.logger.Error("RemoveSaved: failed to persist user", zap.String("user_id", user.ID), zap.Error(err))
		return err
	}

	uc.logger.Info("RemoveSaved: listing removed",
		zap.String("user_id", user.ID),
		zap.String("property_id", propertyID))
	return nil
}

// ListSaved returns the snapshots of the user's saved listings, in the order
// they were saved.
func (uc *FavoriteUsecase) ListSaved(ctx context.Context, user *domain.User) []domain.Property {
	saved := loadSavedProperties(ctx, uc.store, uc.logger)

	byID := make(map[string]domain.Property, len(saved))
	for _, property := range saved {
		byID[property.ID] = property
	}

	own := make([]domain.Property, 0, len(user.SavedProperties))
	for _, id := range user.SavedProperties {
		if property, ok := byID[id]; ok {
			own = append(own, property)
		}
	}
	return own
}
