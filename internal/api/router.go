package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/satindergrewal/maitreya/internal/metrics"
)

// NewRouter mounts the engine API, health check and metrics endpoint.
func NewRouter(h *Handlers, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(chimw.RequestID)
	r.Use(requestLogger(logger))
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/healthz", h.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/status", h.Status)
		r.Post("/start", h.Start)
		r.Post("/stop", h.Stop)
		r.Get("/sine", h.Sine)
		r.With(chimw.RequestSize(MaxProcessBodyBytes)).Post("/process", h.Process)
	})

	return r
}

// unmatchedRoute labels requests no route pattern matched.
const unmatchedRoute = "unmatched"

// requestLogger logs each request and records its latency by route pattern.
func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			elapsed := time.Since(start)
			route := unmatchedRoute
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			metrics.RequestDuration.WithLabelValues(route, strconv.Itoa(status)).Observe(elapsed.Seconds())

			logger.Debug("request",
				zap.String("method", r.Method),
				zap.String("route", route),
				zap.String("path", r.URL.Path),
				zap.Int("status", status),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("elapsed", elapsed),
				zap.String("request_id", chimw.GetReqID(r.Context())),
			)
		})
	}
}
