package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/heptiolabs/healthcheck"

	"github.com/forgo/bookshelf/internal/metrics"
	"github.com/forgo/bookshelf/internal/middleware"
	"github.com/forgo/bookshelf/internal/model"
)

// RouterConfig holds the router dependencies. Health and Metrics may be nil.
type RouterConfig struct {
	Users          *UserHandler
	Health         healthcheck.Handler
	Metrics        *metrics.Metrics
	AllowedOrigins []string
}

// NewRouter registers every route and wraps the result in the global middleware
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, model.NewNotFoundError("route"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, model.NewMethodNotAllowedError(r.Method))
	})

	// Health and metrics endpoints (no auth)
	if cfg.Health != nil {
		r.Get("/health/live", cfg.Health.LiveEndpoint)
		r.Get("/health/ready", cfg.Health.ReadyEndpoint)
	}
	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics.Handler())
	}

	// Person with books endpoints
	r.Route("/user", func(r chi.Router) {
		r.Post("/create", cfg.Users.Create)
		r.Put("/update", cfg.Users.Update)
		r.Get("/get/{id}", cfg.Users.Get)
		r.Delete("/delete/{id}", cfg.Users.Delete)
	})

	return middleware.Chain(
		r,
		middleware.RequestID,
		middleware.Logger,
		middleware.Recovery,
		middleware.Metrics(cfg.Metrics),
		middleware.CORS(cfg.AllowedOrigins),
	)
}
