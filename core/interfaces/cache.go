// Package interfaces defines the contracts shared by the core packages.
// Concrete implementations live under infrastructure/ and are injected.
package interfaces

import (
	"context"
	"time"
)

// Cache is a small key/value store with TTLs. The persistence service keeps
// idempotency records in it; memory and Redis implementations exist.
//
//	err := cache.Set(ctx, "idem:user-1:key-9", []byte(itemID), 24*time.Hour)
//	id, err := cache.Get(ctx, "idem:user-1:key-9")
//	won, err := cache.Add(ctx, "idem:user-1:key-9", []byte("pending"), time.Minute)
type Cache interface {
	// Get returns the value stored under key, or an error on a miss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key. A ttl of 0 stores it indefinitely.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Add stores value under key only when key is absent and reports
	// whether it did. The check and the write are one atomic step.
	Add(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error)

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
