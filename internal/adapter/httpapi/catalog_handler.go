package httpapi

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/DKSALL9/StayFlow/internal/catalog/domain"
	"github.com/DKSALL9/StayFlow/internal/catalog/usecase"
	"github.com/DKSALL9/StayFlow/internal/platform/metrics"
	"github.com/DKSALL9/StayFlow/internal/session"
	"github.com/go-chi/chi/v5"
)

// CatalogHandler exposes the listing catalog: browse, search, submit, review
// and media upload.
type CatalogHandler struct {
	catalog  *usecase.CatalogUsecase
	media    *usecase.MediaUsecase
	sessions *session.Manager
	metrics  *metrics.MetricsManager
}

func NewCatalogHandler(catalog *usecase.CatalogUsecase, media *usecase.MediaUsecase, sessions *session.Manager, m *metrics.MetricsManager) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, media: media, sessions: sessions, metrics: m}
}

// List returns the catalog, optionally filtered by the q query parameter.
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	catalog := h.catalog.LoadCatalog(r.Context())

	query := r.URL.Query().Get("q")
	if query != "" {
		if h.metrics != nil {
			h.metrics.CatalogSearchesTotal.Inc()
		}
		catalog = h.catalog.Search(catalog, query)
	}
	writeJSON(w, http.StatusOK, catalog)
}

func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	property, err := h.catalog.GetProperty(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.metrics, "/api/properties/{id}", err)
		return
	}
	writeJSON(w, http.StatusOK, property)
}

type submitPropertyRequest struct {
	Title    string  `json:"title"`
	Location string  `json:"location"`
	Price    float64 `json:"price"`
	Image    string  `json:"image"`
}

func (h *CatalogHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitPropertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.metrics, "/api/properties", fmt.Errorf("%w: malformed request body", domain.ErrInvalidInput))
		return
	}

	property, err := h.catalog.SubmitProperty(r.Context(), usecase.SubmitPropertyInput{
		Title:    req.Title,
		Location: req.Location,
		Price:    req.Price,
		Image:    req.Image,
	})
	if err != nil {
		writeError(w, h.metrics, "/api/properties", err)
		return
	}
	if h.metrics != nil {
		h.metrics.PropertiesCreatedTotal.Inc()
	}
	writeJSON(w, http.StatusCreated, property)
}

type submitReviewRequest struct {
	Rating  int32  `json:"rating"`
	Comment string `json:"comment"`
}

func (h *CatalogHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	reviewer := h.sessions.CurrentUser()
	if reviewer == nil {
		writeError(w, h.metrics, "/api/properties/{id}/reviews", session.ErrNoSession)
		return
	}

	var req submitReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.metrics, "/api/properties/{id}/reviews", fmt.Errorf("%w: malformed request body", domain.ErrInvalidInput))
		return
	}

	property, err := h.catalog.SubmitReview(r.Context(), chi.URLParam(r, "id"), reviewer, req.Rating, req.Comment)
	if err != nil {
		writeError(w, h.metrics, "/api/properties/{id}/reviews", err)
		return
	}
	if h.metrics != nil {
		h.metrics.ReviewsCreatedTotal.Inc()
	}
	writeJSON(w, http.StatusCreated, property)
}

// UploadMedia accepts a multipart upload under the "media" field, stores it
// and attaches the resulting reference to the listing.
func (h *CatalogHandler) UploadMedia(w http.ResponseWriter, r *http.Request) {
	const route = "/api/properties/{id}/media"

	if err := r.ParseMultipartForm(usecase.MaxMediaBytes + 1024); err != nil {
		writeError(w, h.metrics, route, fmt.Errorf("%w: malformed multipart form", domain.ErrInvalidInput))
		return
	}

	file, header, err := r.FormFile("media")
	if err != nil {
		writeError(w, h.metrics, route, fmt.Errorf("%w: missing media file", domain.ErrInvalidInput))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, usecase.MaxMediaBytes+1))
	if err != nil {
		writeError(w, h.metrics, route, err)
		return
	}

	contentType := header.Header.Get("Content-Type")
	ref, kind, err := h.media.StoreMedia(r.Context(), header.Filename, contentType, data)
	if err != nil {
		writeError(w, h.metrics, route, err)
		return
	}

	property, err := h.catalog.AttachMedia(r.Context(), chi.URLParam(r, "id"), ref)
	if err != nil {
		writeError(w, h.metrics, route, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"property":  property,
		"mediaKind": kind,
	})
}
