package services

import (
	"context"
	"time"
)

// Cache defines the interface for transient key-value caching. The explain
// flow uses it to keep recently displayed messages addressable by ID.
type Cache interface {
	// Ping tests the cache connection
	Ping(ctx context.Context) error

	// Set stores a key-value pair with optional expiration
	Set(ctx context.Context, key string, value string, expiration time.Duration) error

	// Get retrieves a value by key. Returns "" if the key doesn't exist.
	Get(ctx context.Context, key string) (string, error)

	// Del deletes one or more keys
	Del(ctx context.Context, keys ...string) error

	// Close closes the cache connection
	Close() error
}
