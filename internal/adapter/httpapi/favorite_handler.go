package httpapi

import (
	"net/http"

	"github.com/DKSALL9/StayFlow/internal/catalog/usecase"
	"github.com/DKSALL9/StayFlow/internal/platform/metrics"
	"github.com/DKSALL9/StayFlow/internal/session"
	"github.com/go-chi/chi/v5"
)

// FavoriteHandler exposes the user's saved listings.
type FavoriteHandler struct {
	favorites *usecase.FavoriteUsecase
	sessions  *session.Manager
	metrics   *metrics.MetricsManager
}

func NewFavoriteHandler(favorites *usecase.FavoriteUsecase, sessions *session.Manager, m *metrics.MetricsManager) *FavoriteHandler {
	return &FavoriteHandler{favorites: favorites, sessions: sessions, metrics: m}
}

func (h *FavoriteHandler) Save(w http.ResponseWriter, r *http.Request) {
	user := h.sessions.CurrentUser()
	if user == nil {
		writeError(w, h.metrics, "/api/favorites/{id}", session.ErrNoSession)
		return
	}

	if err := h.favorites.SaveProperty(r.Context(), user, chi.URLParam(r, "id")); err != nil {
		writeError(w, h.metrics, "/api/favorites/{id}", err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *FavoriteHandler) Remove(w http.ResponseWriter, r *http.Request) {
	user := h.sessions.CurrentUser()
	if user == nil {
		writeError(w, h.metrics, "/api/favorites/{id}", session.ErrNoSession)
		return
	}

	if err := h.favorites.RemoveSaved(r.Context(), user, chi.URLParam(r, "id")); err != nil {
		writeError(w, h.metrics, "/api/favorites/{id}", err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *FavoriteHandler) List(w http.ResponseWriter, r *http.Request) {
	user := h.sessions.CurrentUser()
	if user == nil {
		writeError(w, h.metrics, "/api/favorites", session.ErrNoSession)
		return
	}
	writeJSON(w, http.StatusOK, h.favorites.ListSaved(r.Context(), user))
}
