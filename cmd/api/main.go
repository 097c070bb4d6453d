// ABOUTME: Main entry point for the Content Planner API server
// ABOUTME: Wires together all components and starts the HTTP server

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"content-planner-api/api"
	"content-planner-api/api/handlers"
	"content-planner-api/api/middleware"
	"content-planner-api/core/content"
	"content-planner-api/core/domain"
	"content-planner-api/core/interfaces"
	"content-planner-api/infrastructure/cache/memory"
	"content-planner-api/infrastructure/cache/redis"
	"content-planner-api/infrastructure/logger/structured"
	memorystore "content-planner-api/infrastructure/storage/memory"
	"content-planner-api/infrastructure/storage/sqlite"
	"content-planner-api/pkg/config"
	"content-planner-api/pkg/featureflags"
)

func main() {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := structured.New(structured.Options{
		Level:     cfg.Log.Level,
		Format:    cfg.Log.Format,
		File:      cfg.Log.File,
		MaxSizeMB: cfg.Log.MaxSizeMB,
	})
	defer logger.Close()

	flags := featureflags.NewEnvManager("FEATURE_")
	logger.Info("Starting Content Planner API", map[string]interface{}{
		"port":       cfg.Server.Port,
		"storage":    cfg.Storage.Type,
		"cache_type": cfg.Cache.Type,
		"dev_mode":   cfg.Auth.JWTSecret == "",
		"flags":      flags.GetAllFlags(),
	})

	var repo interfaces.ContentRepository
	switch cfg.Storage.Type {
	case "memory":
		repo = memorystore.NewRepository()
		logger.Warn("Using in-memory storage; data is lost on restart", nil)
	default:
		sqliteRepo, err := sqlite.NewRepository(cfg.Storage.SQLitePath, logger)
		if err != nil {
			log.Fatalf("Failed to open SQLite storage: %v", err)
		}
		defer sqliteRepo.Close()
		repo = sqliteRepo
		logger.Info("Using SQLite storage", map[string]interface{}{
			"path": cfg.Storage.SQLitePath,
		})
	}

	var cache interfaces.Cache
	switch cfg.Cache.Type {
	case "redis":
		redisCache, err := redis.NewRedisCache(cfg.Cache.Redis)
		if err != nil {
			logger.Error("Failed to create Redis cache, falling back to memory", map[string]interface{}{
				"error": err.Error(),
			})
			cache = memory.NewMemoryCache(time.Duration(cfg.Cache.Memory.CleanupInterval) * time.Second)
		} else {
			defer redisCache.Close()
			cache = redisCache
			logger.Info("Using Redis cache", map[string]interface{}{
				"address": cfg.Cache.Redis.Address,
			})
		}
	default:
		cache = memory.NewMemoryCache(time.Duration(cfg.Cache.Memory.CleanupInterval) * time.Second)
		logger.Info("Using memory cache", nil)
	}

	deps := interfaces.Dependencies{
		Cache:      cache,
		Logger:     logger,
		Repository: repo,
	}
	contentService := content.NewContentService(deps)

	apiConfig := api.APIConfig{
		Logger:         logger,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Flags:          flags,
		Auth: &middleware.AuthConfig{
			Secret: cfg.Auth.JWTSecret,
			DevCaller: domain.Caller{
				UserID: cfg.Auth.DevUserID,
				Role:   domain.Role(cfg.Auth.DevRole),
			},
		},
	}

	ctx := context.Background()
	stopSweep := make(chan struct{})
	if flags.IsEnabled(ctx, featureflags.RateLimitEnabled) {
		limiter := middleware.NewRateLimiter(cfg.Server.RateLimitPerSecond, cfg.Server.RateLimitBurst, 3*time.Minute)
		go limiter.Run(time.Minute, stopSweep)
		apiConfig.RateLimiter = limiter
	}
	if flags.IsEnabled(ctx, featureflags.MetricsEnabled) {
		apiConfig.Metrics = middleware.NewMetrics()
		if cfg.Server.PublicMetrics {
			apiConfig.Auth.PublicPrefixes = append(append([]string{}, middleware.DefaultPublicPrefixes...), middleware.MetricsPath)
			logger.Warn("Metrics endpoint is readable without a session", nil)
		}
	}
	humaAPI, router := api.NewAPIWithMiddleware(apiConfig)

	contentHandler := handlers.NewContentHandler(contentService, flags, handlers.WithLogger(logger))
	contentHandler.RegisterRoutes(humaAPI)
	handlers.RegisterHealth(humaAPI, api.Version)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP server starting", map[string]interface{}{
			"address": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", map[string]interface{}{
				"error": err.Error(),
			})
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...", nil)
	close(stopSweep)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", map[string]interface{}{
			"error": err.Error(),
		})
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server stopped", nil)
}

func init() {
	fmt.Println(`
   ____            _             _     ____  _
  / ___|___  _ __ | |_ ___ _ __ | |_  |  _ \| | __ _ _ __  _ __   ___ _ __
 | |   / _ \| '_ \| __/ _ \ '_ \| __| | |_) | |/ _' | '_ \| '_ \ / _ \ '__|
 | |__| (_) | | | | ||  __/ | | | |_  |  __/| | (_| | | | | | | |  __/ |
  \____\___/|_| |_|\__\___|_| |_|\__| |_|   |_|\__,_|_| |_|_| |_|\___|_|
	`)
}
