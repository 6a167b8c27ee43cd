package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/DKSALL9/StayFlow/internal/catalog/domain"
	"github.com/DKSALL9/StayFlow/internal/catalog/usecase"
	"github.com/DKSALL9/StayFlow/internal/platform/metrics"
	"github.com/DKSALL9/StayFlow/internal/session"
)

// ReservationHandler exposes booking submission and history.
type ReservationHandler struct {
	reservations *usecase.ReservationUsecase
	sessions     *session.Manager
	metrics      *metrics.MetricsManager
}

func NewReservationHandler(reservations *usecase.ReservationUsecase, sessions *session.Manager, m *metrics.MetricsManager) *ReservationHandler {
	return &ReservationHandler{reservations: reservations, sessions: sessions, metrics: m}
}

type submitReservationRequest struct {
	PropertyID string `json:"propertyId"`
	CheckIn    string `json:"checkIn"`
	CheckOut   string `json:"checkOut"`
	Guests     int    `json:"guests"`
}

func (h *ReservationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	const route = "/api/reservations"

	renter := h.sessions.CurrentUser()
	if renter == nil {
		writeError(w, h.metrics, route, session.ErrNoSession)
		return
	}

	var req submitReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.metrics, route, fmt.Errorf("%w: malformed request body", domain.ErrInvalidInput))
		return
	}

	checkIn, err := parseDate(req.CheckIn)
	if err != nil {
		writeError(w, h.metrics, route, fmt.Errorf("%w: invalid checkIn date: %v", domain.ErrInvalidInput, err))
		return
	}
	checkOut, err := parseDate(req.CheckOut)
	if err != nil {
		writeError(w, h.metrics, route, fmt.Errorf("%w: invalid checkOut date: %v", domain.ErrInvalidInput, err))
		return
	}

	reservation, err := h.reservations.SubmitReservation(r.Context(), req.PropertyID, renter, checkIn, checkOut, req.Guests)
	if err != nil {
		writeError(w, h.metrics, route, err)
		return
	}
	if h.metrics != nil {
		h.metrics.ReservationsCreatedTotal.Inc()
	}
	writeJSON(w, http.StatusCreated, reservation)
}

func (h *ReservationHandler) List(w http.ResponseWriter, r *http.Request) {
	renter := h.sessions.CurrentUser()
	if renter == nil {
		writeError(w, h.metrics, "/api/reservations", session.ErrNoSession)
		return
	}
	writeJSON(w, http.StatusOK, h.reservations.ListUserReservations(r.Context(), renter.ID))
}

// parseDate accepts calendar dates and full RFC 3339 timestamps.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}
