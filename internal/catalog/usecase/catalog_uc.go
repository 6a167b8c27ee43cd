package usecase

import (
	"context"
	"fmt"
	"strings"

	natsclient "github.com/DKSALL9/StayFlow/internal/adapter/messaging/nats"
	"github.com/DKSALL9/StayFlow/internal/catalog/domain"
	"github.com/DKSALL9/StayFlow/internal/platform/logger"
	"go.uber.org/zap"
)

// CatalogUsecase manages the property catalog: the fixed seed listings plus
// everything submitted at runtime.
type CatalogUsecase struct {
	store     domain.Store
	publisher MessagePublisher
	logger    *logger.Logger
}

func NewCatalogUsecase(store domain.Store, publisher MessagePublisher, log *logger.Logger) *CatalogUsecase {
	if publisher == nil {
		publisher = NoopPublisher{}
	}
	return &CatalogUsecase{
		store:     store,
		publisher: publisher,
		logger:    log.Named("CatalogUsecase"),
	}
}

// LoadCatalog returns the seed listings followed by the persisted submissions,
// in submission order. A persisted copy of a seed listing replaces the
// compiled-in version in place. It never fails: unreadable or malformed
// persisted data is replaced with an empty set.
func (uc *CatalogUsecase) LoadCatalog(ctx context.Context) []domain.Property {
	catalog := domain.SeedCatalog()
	seedIndex := make(map[string]int, len(catalog))
	for i := range catalog {
		seedIndex[catalog[i].ID] = i
	}

	for _, property := range loadProperties(ctx, uc.store, uc.logger) {
		if i, ok := seedIndex[property.ID]; ok {
			catalog[i] = property
			continue
		}
		catalog = append(catalog, property)
	}
	return catalog
}

// Search filters the catalog by a case-insensitive substring match on title or
// location, preserving catalog order. An empty or blank query returns the
// input unchanged.
func (uc *CatalogUsecase) Search(catalog []domain.Property, query string) []domain.Property {
	if strings.TrimSpace(query) == "" {
		return catalog
	}
	matched := make([]domain.Property, 0, len(catalog))
	for _, property := range catalog {
		if property.Matches(query) {
			matched = append(matched, property)
		}
	}
	return matched
}

// GetProperty resolves a listing by id from the seed set or the persisted
// submissions.
func (uc *CatalogUsecase) GetProperty(ctx context.Context, propertyID string) (*domain.Property, error) {
	catalog := uc.LoadCatalog(ctx)
	for i := range catalog {
		if catalog[i].ID == propertyID {
			return &catalog[i], nil
		}
	}
	return nil, fmt.Errorf("%w: property with ID %s", domain.ErrNotFound, propertyID)
}

// SubmitPropertyInput carries a new listing submission. Image is the already
// validated media reference (data URI or uploaded object URL).
type SubmitPropertyInput struct {
	Title    string
	Location string
	Price    float64
	Image    string
}

// SubmitProperty validates and appends a new listing to the persisted set.
// Nothing is written when validation fails.
func (uc *CatalogUsecase) SubmitProperty(ctx context.Context, input SubmitPropertyInput) (*domain.Property, error) {
	property, err := domain.NewProperty(input.Title, input.Location, input.Price, input.Image)
	if err != nil {
		uc.logger.Warn("SubmitProperty: validation failed", zap.Error(err))
		return nil, err
	}

	properties := loadProperties(ctx, uc.store, uc.logger)
	properties = append(properties, *property)
	if err := saveProperties(ctx, uc.store, properties); err != nil {
		uc.logger.Error("SubmitProperty: failed to persist properties", zap.Error(err))
		return nil, err
	}

	uc.logger.Info("SubmitProperty: property created",
		zap.String("property_id", property.ID),
		zap.String("title", property.Title))

	if pubErr := uc.publisher.Publish(ctx, natsclient.SubjectPropertyCreated, map[string]interface{}{
		"property_id": property.ID,
		"title":       property.Title,
		"location":    property.Location,
		"price":       property.Price,
	}); pubErr != nil {
		uc.logger.Error("SubmitProperty: failed to publish event", zap.String("property_id", property.ID), zap.Error(pubErr))
	}

	return property, nil
}

// AttachMedia replaces the media reference of a listing. Attaching media to a
// seed listing copies it into the persisted set first.
func (uc *CatalogUsecase) AttachMedia(ctx context.Context, propertyID, imageRef string) (*domain.Property, error) {
	if imageRef == "" {
		return nil, fmt.Errorf("%w: media reference cannot be empty", domain.ErrInvalidInput)
	}

	properties := loadProperties(ctx, uc.store, uc.logger)
	target := -1
	for i := range properties {
		if properties[i].ID == propertyID {
			target = i
			break
		}
	}
	if target < 0 {
		for _, seed := range domain.SeedCatalog() {
			if seed.ID == propertyID {
				properties = append(properties, seed)
				target = len(properties) - 1
				break
			}
		}
	}
	if target < 0 {
		return nil, fmt.Errorf("%w: property with ID %s", domain.ErrNotFound, propertyID)
	}

	properties[target].Image = imageRef
	if err := saveProperties(ctx, uc.store, properties); err != nil {
		uc.logger.Error("AttachMedia: failed to persist properties", zap.String("property_id", propertyID), zap.Error(err))
		return nil, err
	}

	updated := properties[target]
	uc.logger.Info("AttachMedia: media attached", zap.String("property_id", propertyID))
	return &updated, nil
}

// SubmitReview attaches a review to a listing and folds its rating into the
// listing aggregate as a rolling mean. Reviewing a seed listing copies it into
// the persisted set so the review survives restarts.
func (uc *CatalogUsecase) SubmitReview(ctx context.Context, propertyID string, reviewer *domain.User, rating int32, comment string) (*domain.Property, error) {
	review, err := domain.NewReview(reviewer, rating, comment)
	if err != nil {
		uc.logger.Warn("SubmitReview: validation failed", zap.String("property_id", propertyID), zap.Error(err))
		return nil, err
	}

	properties := loadProperties(ctx, uc.store, uc.logger)
	target := -1
	for i := range properties {
		if properties[i].ID == propertyID {
			target = i
			break
		}
	}
	if target < 0 {
		// First review of a seed listing materializes it in the store.
		for _, seed := range domain.SeedCatalog() {
			if seed.ID == propertyID {
				properties = append(properties, seed)
				target = len(properties) - 1
				break
			}
		}
	}
	if target < 0 {
		return nil, fmt.Errorf("%w: property with ID %s", domain.ErrNotFound, propertyID)
	}

	properties[target].AddReview(*review)
	if err := saveProperties(ctx, uc.store, properties); err != nil {
		uc.logger.Error("SubmitReview: failed to persist properties", zap.String("property_id", propertyID), zap.Error(err))
		return nil, err
	}

	updated := properties[target]
	uc.logger.Info("SubmitReview: review added",
		zap.String("property_id", propertyID),
		zap.String("review_id", review.ID),
		zap.Int32("rating", rating),
		zap.Float64("new_rating", updated.Rating))

	if pubErr := uc.publisher.Publish(ctx, natsclient.SubjectReviewCreated, map[string]interface{}{
		"property_id": propertyID,
		"review_id":   review.ID,
		"rating":      rating,
		"new_rating":  updated.Rating,
	}); pubErr != nil {
		uc.logger.Error("SubmitReview: failed to publish event", zap.String("property_id", propertyID), zap.Error(pubErr))
	}

	return &updated, nil
}
