package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"calculator-microservice/internal/calculator"
	"calculator-microservice/internal/handlers"
	"calculator-microservice/internal/observability"
)

// Options carries the collaborators the router wires together.
type Options struct {
	Logger      *zap.Logger
	Calculator  *calculator.Handler
	HTTPMetrics *observability.HTTPMetrics
	Gatherer    prometheus.Gatherer
	// CORSOrigins enables CORS for the listed origins. Empty disables it.
	CORSOrigins []string
}

func NewRouter(opts Options) http.Handler {

	r := chi.NewRouter()

	r.Use(observability.RequestIDMiddleware)
	if len(opts.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Options{
			AllowedOrigins: opts.CORSOrigins,
			AllowedMethods: []string{http.MethodGet},
			ExposedHeaders: []string{observability.RequestIDHeader},
		}).Handler)
	}
	r.Use(opts.HTTPMetrics.Middleware)
	r.Use(observability.TracingMiddleware)
	r.Use(observability.LoggingMiddleware(opts.Logger))
	// Innermost, so a recovered panic still reaches the metrics, span and
	// access log as a 500.
	r.Use(observability.RecoverMiddleware(opts.Logger))

	r.NotFound(handlers.NotFound)
	r.MethodNotAllowed(handlers.MethodNotAllowed)

	r.Get("/health", handlers.Health)

	r.Handle("/metrics", observability.PrometheusHandler(opts.Gatherer))

	calculator.RegisterRoutes(r, opts.Calculator)

	return r
}
