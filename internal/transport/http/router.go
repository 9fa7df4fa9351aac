// Package httptransport assembles the HTTP surface: the shared middleware
// chain, operational endpoints, and the verification routes.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"taskproof/internal/platform/metrics"
	"taskproof/internal/platform/middleware"
	verificationhandler "taskproof/internal/verification/handler"
)

// requestTimeout bounds a whole verification request. Generous because one
// request may fan out to several oracle calls and link fetches.
const requestTimeout = 60 * time.Second

// healthCheckTimeout bounds backing-store pings during readiness checks.
const healthCheckTimeout = 2 * time.Second

type Deps struct {
	Logger       *slog.Logger
	Metrics      *metrics.Metrics
	JWTValidator middleware.JWTValidator
	Verification *verificationhandler.Handler

	// Health reports backing-store reachability. Nil means no backing
	// stores are configured and the process is always ready.
	Health func(ctx context.Context) error
}

// NewRouter wires middleware and mounts all endpoints.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Metadata)
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.LatencyMiddleware(deps.Metrics))
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		if deps.Health != nil {
			ctx, cancel := context.WithTimeout(req.Context(), healthCheckTimeout)
			defer cancel()
			if err := deps.Health(ctx); err != nil {
				deps.Logger.WarnContext(ctx, "health check failed", "error", err)
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte(`{"status":"unavailable"}`))
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.ContentTypeJSON)
		r.Use(middleware.RequireAuth(deps.JWTValidator, deps.Logger))
		deps.Verification.Register(r)
	})

	return r
}
