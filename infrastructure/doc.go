// Package infrastructure provides concrete implementations of the interfaces
// defined in the core package.
//
// The infrastructure package is organized by technical concern:
//
// - cache/memory: In-memory idempotency cache backed by go-cache
// - cache/redis: Redis idempotency cache
// - storage/sqlite: SQLite content repository
// - storage/memory: In-memory content repository for tests and demos
// - http/standard: HTTP client with bearer auth and a circuit breaker
// - logger/structured: logrus logger with optional rotated file output
//
// # Repositories
//
//	repo, err := sqlite.NewRepository("content.db", logger)
//	items, err := repo.List(ctx, "user-1")
//
// # Cache
//
//	cache := memory.NewMemoryCache(10 * time.Minute)
//	err := cache.Set(ctx, "idem:user-1:key", []byte(id), 24*time.Hour)
//
// # HTTP Client
//
// The client never retries; a tripped breaker fails fast until it half-opens:
//
//	client := standard.NewStandardHTTPClientWithOptions(standard.Options{
//	    Timeout:         15 * time.Second,
//	    Token:           token,
//	    BreakerFailures: 5,
//	})
//
// # Logger
//
//	logger := structured.New(structured.Options{Level: "info", Format: "json"})
//	logger.Info("Content created", map[string]interface{}{"id": id})
package infrastructure
