package cache

import (
	"context"
	"time"
)

// Cache is a byte-value TTL cache. The catalog loader is the main consumer;
// swapping the memory backend for Redis must not change its behavior.
type Cache interface {
	// Get returns the value for key, or ErrMiss when absent or expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key for the given TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Clear drops every entry owned by this cache.
	Clear(ctx context.Context) error
}

type cacheError string

func (e cacheError) Error() string { return string(e) }

// ErrMiss indicates the key was not found (or had expired).
const ErrMiss cacheError = "cache miss"
