package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/DKSALL9/StayFlow/internal/catalog/domain"
	"github.com/DKSALL9/StayFlow/internal/platform/logger"
	"go.uber.org/zap"
)

// MessagePublisher publishes domain events. Publish failures are logged by
// callers and never fail the operation.
type MessagePublisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
}

// NoopPublisher is used when no event broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(ctx context.Context, subject string, data interface{}) error {
	return nil
}

// Collection reads fail soft: an absent key or malformed JSON yields an empty
// collection, logged but never surfaced to the caller.

func loadProperties(ctx context.Context, store domain.Store, log *logger.Logger) []domain.Property {
	raw, err := store.Get(ctx, domain.KeyProperties)
	if err != nil {
		if !errors.Is(err, domain.ErrKeyNotFound) {
			log.Warn("Failed to read persisted properties, treating as empty", zap.Error(err))
		}
		return []domain.Property{}
	}
	var properties []domain.Property
	if err := json.Unmarshal(raw, &properties); err != nil {
		log.Warn("Persisted properties are malformed, treating as empty",
			zap.Error(fmt.Errorf("%w: %v", domain.ErrStoreRead, err)))
		return []domain.Property{}
	}
	return properties
}

func saveProperties(ctx context.Context, store domain.Store, properties []domain.Property) error {
	raw, err := json.Marshal(properties)
	if err != nil {
		return fmt.Errorf("failed to marshal properties: %w", err)
	}
	return store.Set(ctx, domain.KeyProperties, raw)
}

func loadReservations(ctx context.Context, store domain.Store, log *logger.Logger) []domain.Reservation {
	raw, err := store.Get(ctx, domain.KeyReservations)
	if err != nil {
		if !errors.Is(err, domain.ErrKeyNotFound) {
			log.Warn("Failed to read persisted reservations, treating as empty", zap.Error(err))
		}
		return []domain.Reservation{}
	}
	var reservations []domain.Reservation
	if err := json.Unmarshal(raw, &reservations); err != nil {
		log.Warn("Persisted reservations are malformed, treating as empty",
			zap.Error(fmt.Errorf("%w: %v", domain.ErrStoreRead, err)))
		return []domain.Reservation{}
	}
	return reservations
}

func saveReservations(ctx context.Context, store domain.Store, reservations []domain.Reservation) error {
	raw, err := json.Marshal(reservations)
	if err != nil {
		return fmt.Errorf("failed to marshal reservations: %w", err)
	}
	return store.Set(ctx, domain.KeyReservations, raw)
}

func loadSavedProperties(ctx context.Context, store domain.Store, log *logger.Logger) []domain.Property {
	raw, err := store.Get(ctx, domain.KeySavedProperties)
	if err != nil {
		if !errors.Is(err, domain.ErrKeyNotFound) {
			log.Warn("Failed to read saved properties, treating as empty", zap.Error(err))
		}
		return []domain.Property{}
	}
	var properties []domain.Property
	if err := json.Unmarshal(raw, &properties); err != nil {
		log.Warn("Saved properties are malformed, treating as empty",
			zap.Error(fmt.Errorf("%w: %v", domain.ErrStoreRead, err)))
		return []domain.Property{}
	}
	return properties
}

func saveSavedProperties(ctx context.Context, store domain.Store, properties []domain.Property) error {
	raw, err := json.Marshal(properties)
	if err != nil {
		return fmt.Errorf("failed to marshal saved properties: %w", err)
	}
	return store.Set(ctx, domain.KeySavedProperties, raw)
}
