package cache

import (
	"context"
	"time"
)

// IdempotencyStore records keys of work that has already been performed.
// The scheduler uses it so reminder jobs never double-send: a key like
// "absence:<student>:<date>" is marked when the reminder goes out, and a
// re-run within the TTL skips it.
type IdempotencyStore interface {
	// MarkProcessed marks a key as processed with a TTL. Returns true if the
	// key was newly marked, false if it was already processed.
	MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error)
	// IsProcessed checks if a key has already been processed.
	IsProcessed(ctx context.Context, key string) (bool, error)
	// Close releases store resources.
	Close() error
}
