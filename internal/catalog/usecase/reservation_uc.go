package usecase

import (
	"context"
	"time"

	natsclient "github.com/DKSALL9/StayFlow/internal/adapter/messaging/nats"
	"github.com/DKSALL9/StayFlow/internal/catalog/domain"
	"github.com/DKSALL9/StayFlow/internal/mailer"
	"github.com/DKSALL9/StayFlow/internal/platform/logger"
	"go.uber.org/zap"
)

// ReservationUsecase manages the booking history. Reservations are
// append-only; every new one starts out pending.
type ReservationUsecase struct {
	store     domain.Store
	catalog   *CatalogUsecase
	publisher MessagePublisher
	mailer    mailer.Mailer
	logger    *logger.Logger
}

// NewReservationUsecase wires the booking flow. The mailer may be nil when no
// SMTP relay is configured.
func NewReservationUsecase(store domain.Store, catalog *CatalogUsecase, publisher MessagePublisher, m mailer.Mailer, log *logger.Logger) *ReservationUsecase {
	if publisher == nil {
		publisher = NoopPublisher{}
	}
	return &ReservationUsecase{
		store:     store,
		catalog:   catalog,
		publisher: publisher,
		mailer:    m,
		logger:    log.Named("ReservationUsecase"),
	}
}

// SubmitReservation books a stay at the given listing for the current renter.
// The total price is derived from the listing price and the night count at
// submission time and never recomputed afterwards.
func (uc *ReservationUsecase) SubmitReservation(ctx context.Context, propertyID string, renter *domain.User, checkIn, checkOut time.Time, guests int) (*domain.Reservation, error) {
	property, err := uc.catalog.GetProperty(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	reservation, err := domain.NewReservation(property, renter, checkIn, checkOut, guests)
	if err != nil {
		uc.logger.Warn("SubmitReservation: validation failed", zap.String("property_id", propertyID), zap.Error(err))
		return nil, err
	}

	reservations := loadReservations(ctx, uc.store, uc.logger)
	reservations = append(reservations, *reservation)
	if err := saveReservations(ctx, uc.store, reservations); err != nil {
		uc.logger.Error("SubmitReservation: failed to persist reservations", zap.Error(err))
		return nil, err
	}

	uc.logger.Info("SubmitReservation: reservation created",
		zap.String("reservation_id", reservation.ID),
		zap.String("property_id", propertyID),
		zap.String("user_id", renter.ID),
		zap.Float64("total_price", reservation.TotalPrice))

	if pubErr := uc.publisher.Publish(ctx, natsclient.SubjectReservationCreated, map[string]interface{}{
		"reservation_id": reservation.ID,
		"property_id":    propertyID,
		"user_id":        renter.ID,
		"total_price":    reservation.TotalPrice,
		"status":         reservation.Status,
	}); pubErr != nil {
		uc.logger.Error("SubmitReservation: failed to publish event", zap.String("reservation_id", reservation.ID), zap.Error(pubErr))
	}

	if uc.mailer != nil && renter.Email != "" {
		if mailErr := uc.mailer.SendReservationSubmittedEmail(renter.Email, property.Title, reservation.TotalPrice); mailErr != nil {
			uc.logger.Error("SubmitReservation: failed to send confirmation email",
				zap.String("reservation_id", reservation.ID), zap.Error(mailErr))
		}
	}

	return reservation, nil
}

// ListUserReservations returns the renter's bookings in submission order.
func (uc *ReservationUsecase) ListUserReservations(ctx context.Context, userID string) []domain.Reservation {
	reservations := loadReservations(ctx, uc.store, uc.logger)
	own := make([]domain.Reservation, 0, len(reservations))
	for _, reservation := range reservations {
		if reservation.UserID == userID {
			own = append(own, reservation)
		}
	}
	return own
}
