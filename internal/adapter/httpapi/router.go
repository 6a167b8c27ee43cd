package httpapi

import (
	"net/http"

	"github.com/DKSALL9/StayFlow/internal/platform/logger"
	"github.com/DKSALL9/StayFlow/internal/platform/metrics"
	"github.com/DKSALL9/StayFlow/internal/session"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// RouterDeps collects everything the HTTP surface needs.
type RouterDeps struct {
	Sessions     *SessionHandler
	Catalog      *CatalogHandler
	Reservations *ReservationHandler
	Favorites    *FavoriteHandler
	SessionMgr   *session.Manager
	Metrics      *metrics.MetricsManager
	Logger       *logger.Logger
}

// NewRouter builds the API router. Browsing the catalog is public; reviews,
// reservations and favorites require a session.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(RequestLogger(deps.Logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(Latency(deps.Metrics))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", deps.Sessions.Login)
			r.Post("/register", deps.Sessions.Register)
			r.Post("/logout", deps.Sessions.Logout)
			r.Get("/me", deps.Sessions.Me)
		})

		r.Route("/properties", func(r chi.Router) {
			r.Get("/", deps.Catalog.List)
			r.Get("/{id}", deps.Catalog.Get)
			r.Post("/", deps.Catalog.Submit)

			r.Group(func(r chi.Router) {
				r.Use(Auth(deps.SessionMgr, deps.Metrics))
				r.Post("/{id}/reviews", deps.Catalog.SubmitReview)
				r.Post("/{id}/media", deps.Catalog.UploadMedia)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(Auth(deps.SessionMgr, deps.Metrics))

			r.Route("/reservations", func(r chi.Router) {
				r.Post("/", deps.Reservations.Submit)
				r.Get("/", deps.Reservations.List)
			})

			r.Route("/favorites", func(r chi.Router) {
				r.Get("/", deps.Favorites.List)
				r.Post("/{id}", deps.Favorites.Save)
				r.Delete("/{id}", deps.Favorites.Remove)
			})
		})
	})

	return r
}
