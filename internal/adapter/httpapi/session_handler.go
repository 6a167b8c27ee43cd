package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/DKSALL9/StayFlow/internal/catalog/domain"
	"github.com/DKSALL9/StayFlow/internal/platform/metrics"
	"github.com/DKSALL9/StayFlow/internal/session"
)

// SessionHandler exposes sign-in, sign-up and sign-out.
type SessionHandler struct {
	sessions *session.Manager
	metrics  *metrics.MetricsManager
}

func NewSessionHandler(sessions *session.Manager, m *metrics.MetricsManager) *SessionHandler {
	return &SessionHandler{sessions: sessions, metrics: m}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

type sessionResponse struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.metrics, "/api/auth/login", session.ErrInvalidCredentials)
		return
	}

	user, token, err := h.sessions.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, h.metrics, "/api/auth/login", err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{User: user, Token: token})
}

func (h *SessionHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.metrics, "/api/auth/register", session.ErrInvalidCredentials)
		return
	}

	user, token, err := h.sessions.Register(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		writeError(w, h.metrics, "/api/auth/register", err)
		return
	}
	writeJSON(w, http.StatusCreated, sessionResponse{User: user, Token: token})
}

func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Logout(r.Context()); err != nil {
		writeError(w, h.metrics, "/api/auth/logout", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "signed out"})
}

func (h *SessionHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := h.sessions.CurrentUser()
	if user == nil {
		writeError(w, h.metrics, "/api/auth/me", session.ErrNoSession)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
