package ports

import (
	"context"
	"time"
)

// CachePort stores compiled documents keyed by the fingerprint of their
// inputs. A miss is reported as ok=false with a nil error.
type CachePort interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
