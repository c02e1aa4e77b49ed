// Package httptransport is the thin HTTP layer. Handlers decode requests,
// delegate to domain services and translate errors; business logic stays
// out of this package.
package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"phonebook/internal/platform/metrics"
	"phonebook/internal/platform/middleware"
)

const requestTimeout = 30 * time.Second

// NewRouter wires all endpoints. Auth routes are public; phonebook routes
// require a valid bearer token.
func NewRouter(
	auth *AuthHandler,
	phonebook *PhonebookHandler,
	validator middleware.TokenValidator,
	logger *slog.Logger,
	m *metrics.Metrics,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.Latency(m))

	r.Get("/healthz", handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", auth.handleRegister)
		r.Post("/login", auth.handleLogin)
	})

	r.Route("/phonebook", func(r chi.Router) {
		r.Use(middleware.RequireAuth(validator, logger))
		r.Post("/", phonebook.handleCreate)
		r.Get("/", phonebook.handleList)
		r.Get("/search", phonebook.handleSearch)
		r.Put("/{id}", phonebook.handleUpdate)
		r.Delete("/{id}", phonebook.handleDelete)
	})

	return r
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"healthy"}`))
}
