// Package cachex provides a small TTL cache abstraction shared by both
// services. Keys are namespaced as "{purpose}:{identity}" so one cache
// instance can hold tokens, role sets and anything else side by side.
package cachex

import (
	"context"
	"errors"
	"time"
)

// DefaultTTL is the absolute lifetime applied when callers pass ttl <= 0.
const DefaultTTL = 60 * time.Minute

// ErrClosed is returned once a cache has been shut down.
var ErrClosed = errors.New("cachex: cache closed")

// Cache is a TTL key-value store. Entries expire at an absolute deadline
// set when written; reads never extend a lifetime.
type Cache interface {
	// Get returns the value for key. The second return is false when the
	// key is absent or expired.
	Get(ctx context.Context, key string) (string, bool, error)

	// Update writes value under key with the given ttl, replacing any
	// existing entry and resetting its deadline. ttl <= 0 means DefaultTTL.
	Update(ctx context.Context, key, value string, ttl time.Duration) error

	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error

	// Close releases the cache's resources. Operations after Close
	// return ErrClosed.
	Close() error
}

// Key builds the canonical "{purpose}:{identity}" cache key.
func Key(purpose, identity string) string {
	return purpose + ":" + identity
}
