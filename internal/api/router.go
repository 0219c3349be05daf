// Package api wires the HTTP surface of the transfer orchestration service.
package api

import (
	"context"
	"log/slog"
	"net/http"

	appmiddleware "github.com/PedroCamargo-dev/transfer-orchestration-service/internal/api/middleware"
	"github.com/PedroCamargo-dev/transfer-orchestration-service/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter assembles the route tree. Transfer routes require a valid
// bearer token; the health probe does not. ready reports whether the
// service's storage is reachable and may be nil.
func NewRouter(handler *TransferHandler, jwtSecret string, log *slog.Logger, ready func(ctx context.Context) error) *chi.Mux {
	if log == nil {
		log = slog.Default()
	}

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", idempotencyKeyHeader},
	}))

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		if ready != nil {
			if err := ready(req.Context()); err != nil {
				writeJSON(w, http.StatusServiceUnavailable, errorResponse{Message: "storage unavailable"})
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api/v1/transfers", func(r chi.Router) {
		r.Use(appmiddleware.Authenticate(jwtSecret))
		r.Post("/", handler.Create)
		r.Get("/{id}", handler.GetByID)
	})

	return r
}

// requestLogger attaches a logger scoped to the request id so handlers and
// the usecase below them log with correlation.
func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			scoped := log.With(slog.String("request_id", chimiddleware.GetReqID(r.Context())))
			next.ServeHTTP(w, r.WithContext(logger.WithContext(r.Context(), scoped)))
		})
	}
}
