package shared

import (
	"context"
	"time"
)

// IdempotencyStore maps client-supplied idempotency keys to the identifier
// of the resource the first request created. A retry with the same key gets
// the original identifier back instead of creating a duplicate.
type IdempotencyStore interface {
	// Remember stores value under key with a TTL if the key is new.
	// Returns (true, "") when newly stored, or (false, existing) when the
	// key was already present.
	Remember(ctx context.Context, key, value string, ttl time.Duration) (bool, string, error)

	// Lookup returns the stored value for key, or "" when absent.
	Lookup(ctx context.Context, key string) (string, error)

	// Close closes the store and releases resources
	Close() error
}

// IdempotencyConfig holds configuration for idempotency handling
type IdempotencyConfig struct {
	// TTL is the time-to-live for remembered keys. After this duration the
	// same key creates a new resource again.
	// Default: 24 hours
	TTL time.Duration

	// Enabled determines whether idempotency checking is enabled
	// Default: true
	Enabled bool
}

// DefaultIdempotencyConfig returns the default idempotency configuration
func DefaultIdempotencyConfig() IdempotencyConfig {
	return IdempotencyConfig{
		TTL:     24 * time.Hour,
		Enabled: true,
	}
}
