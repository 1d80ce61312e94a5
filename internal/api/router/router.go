package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	httpmiddleware "github.com/sanad-ai/triage-backend/internal/http/middleware"
	"github.com/sanad-ai/triage-backend/internal/triage"
	"github.com/sanad-ai/triage-backend/pkg/logging"
)

// Config holds router configuration.
type Config struct {
	Logger             *logging.Logger
	TriageHandler      *triage.Handler
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string
	// RateLimitPerSecond throttles the conversation endpoints per client
	// IP; zero disables rate limiting.
	RateLimitPerSecond float64
	RateLimitBurst     int
}

// New creates a Chi router with all routes configured.
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", cfg.TriageHandler.HealthCheck)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	r.Route("/conversations", func(r chi.Router) {
		if cfg.RateLimitPerSecond > 0 {
			burst := cfg.RateLimitBurst
			if burst <= 0 {
				burst = 1
			}
			r.Use(httpmiddleware.RateLimit(cfg.RateLimitPerSecond, burst))
		}
		r.Post("/message", cfg.TriageHandler.Message)
		r.Get("/{sessionID}/history", cfg.TriageHandler.History)
	})

	return r
}
