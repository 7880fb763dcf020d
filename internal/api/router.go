// internal/api/router.go
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"finflow-dashboard/internal/api/handler"
)

// NewRouter sets up and returns a new HTTP router.
// A zero timeout falls back to handler.DefaultTimeout.
func NewRouter(transactionHandler *handler.TransactionHandler, registry *prometheus.Registry, timeout time.Duration, logger *slog.Logger) http.Handler {
	if timeout <= 0 {
		timeout = handler.DefaultTimeout
	}
	metrics := NewMetrics(registry)

	r := chi.NewRouter()

	// Global middlewares
	r.Use(middleware.RequestID)        // Add a request ID to the context
	r.Use(middleware.RealIP)           // Use the real IP address
	r.Use(middleware.Logger)           // Log HTTP requests
	r.Use(middleware.Recoverer)        // Recover from panics and return 500
	r.Use(middleware.Timeout(timeout)) // Bound every request
	r.Use(metrics.Middleware)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	r.Route("/contacts", func(r chi.Router) {
		r.Post("/", transactionHandler.CreateContact)
		r.Get("/{contactID}/transactions", transactionHandler.ListTransactions)
	})

	r.Route("/transactions", func(r chi.Router) {
		r.Post("/", transactionHandler.CreateTransaction)
		r.Post("/status", transactionHandler.SetStatus)
	})

	logger.Debug("Routes registered")
	return r
}
