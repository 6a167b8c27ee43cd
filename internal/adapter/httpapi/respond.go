package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/DKSALL9/StayFlow/internal/catalog/domain"
	"github.com/DKSALL9/StayFlow/internal/platform/metrics"
	"github.com/DKSALL9/StayFlow/internal/session"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// writeError maps domain errors onto HTTP statuses and counts them.
func writeError(w http.ResponseWriter, m *metrics.MetricsManager, route string, err error) {
	var status int
	var errorType string
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		status = http.StatusBadRequest
		errorType = "invalid_input"
	case errors.Is(err, session.ErrInvalidCredentials):
		status = http.StatusUnauthorized
		errorType = "invalid_credentials"
	case errors.Is(err, session.ErrNoSession):
		status = http.StatusUnauthorized
		errorType = "no_session"
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
		errorType = "not_found"
	default:
		status = http.StatusInternalServerError
		errorType = "internal"
	}

	if m != nil {
		m.APIErrorsTotal.WithLabelValues(route, errorType).Inc()
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
