package adapters

import (
	"context"
	"time"

	"insight-specs/internal/ports"
)

// NullSpecCache never stores anything; every Get is a miss.
type NullSpecCache struct{}

func NewNullSpecCache() NullSpecCache {
	return NullSpecCache{}
}

func (NullSpecCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

func (NullSpecCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return nil
}

func (NullSpecCache) Delete(ctx context.Context, key string) error {
	return nil
}

func (NullSpecCache) Close() error {
	return nil
}

var _ ports.CachePort = NullSpecCache{}
