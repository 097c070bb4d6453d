// ABOUTME: Huma API server configuration and setup
// ABOUTME: Wires CORS, logging, metrics, rate limiting and auth in front of the OpenAPI routes

package api

import (
	"content-planner-api/api/middleware"
	"content-planner-api/core/interfaces"
	"content-planner-api/pkg/featureflags"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// Title and Version describe the API in the OpenAPI document
const (
	Title   = "Content Planner API"
	Version = "1.0.0"
)

// APIConfig holds configuration for the API
type APIConfig struct {
	Logger interfaces.Logger

	// AllowedOrigins for CORS; empty allows any origin
	AllowedOrigins []string

	// RateLimiter enables per-IP rate limiting when set
	RateLimiter *middleware.RateLimiter

	// Metrics records requests and serves /metrics when set
	Metrics *middleware.Metrics

	// Auth is applied when non-nil
	Auth *middleware.AuthConfig

	// Flags is placed in every request context when set; handlers fall
	// back to featureflags.Defaults without it
	Flags featureflags.Manager
}

func corsOptions(origins []string) cors.Options {
	allowAll := len(origins) == 0
	if allowAll {
		origins = []string{"*"}
	}
	return cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Idempotency-Key", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: !allowAll,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}
}

func humaConfig() huma.Config {
	config := huma.DefaultConfig(Title, Version)
	config.Info.Description = "API for planning content across platforms and workflow stages"
	return config
}

// NewAPI creates and configures a new Huma API instance without auth
func NewAPI() (huma.API, chi.Router) {
	router := chi.NewRouter()
	router.Use(cors.Handler(corsOptions(nil)))

	// The OpenAPI spec is served at /openapi.json and the docs UI at /docs
	return humachi.New(router, humaConfig()), router
}

// NewAPIWithMiddleware creates a new API with middleware configured
func NewAPIWithMiddleware(cfg APIConfig) (huma.API, chi.Router) {
	router := chi.NewRouter()

	// CORS first so preflights never hit auth or the limiter
	router.Use(cors.Handler(corsOptions(cfg.AllowedOrigins)))

	if cfg.Logger != nil {
		router.Use(middleware.RequestLoggingMiddleware(cfg.Logger))
	}
	if cfg.Flags != nil {
		router.Use(middleware.FeatureFlagsMiddleware(cfg.Flags))
	}
	if cfg.Metrics != nil {
		router.Use(cfg.Metrics.Middleware)
	}
	if cfg.RateLimiter != nil {
		router.Use(middleware.RateLimitMiddleware(cfg.RateLimiter))
	}
	if cfg.Auth != nil {
		auth := *cfg.Auth
		if auth.Logger == nil {
			auth.Logger = cfg.Logger
		}
		router.Use(middleware.AuthMiddleware(auth))
	}

	api := humachi.New(router, humaConfig())

	if cfg.Metrics != nil {
		router.Handle(middleware.MetricsPath, cfg.Metrics.Handler())
	}

	return api, router
}
