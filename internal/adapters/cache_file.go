package adapters

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"insight-specs/internal/ports"
)

// FileSpecCache keeps compiled documents under dir, one JSON entry per key
// with an optional expiry.
type FileSpecCache struct {
	dir string
	now func() time.Time
}

type fileCacheEntry struct {
	Data      []byte    `json:"data"`
	ExpiresAt time.Time `json:"expires_at"`
}

func NewFileSpecCache(dir string) (*FileSpecCache, error) {
	if dir == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("cache directory is empty")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create cache directory").
			WithCause(err)
	}
	return &FileSpecCache{dir: dir, now: time.Now}, nil
}

func (c *FileSpecCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read cache entry").
			WithCause(err)
	}
	var entry fileCacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		log.Ctx(ctx).Debug().Str("key", key).Err(err).Msg("dropping corrupt cache entry")
		_ = os.Remove(path)
		return nil, false, nil
	}
	if !entry.ExpiresAt.IsZero() && c.now().After(entry.ExpiresAt) {
		_ = os.Remove(path)
		return nil, false, nil
	}
	return entry.Data, true, nil
}

func (c *FileSpecCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	entry := fileCacheEntry{Data: data}
	if ttl > 0 {
		entry.ExpiresAt = c.now().Add(ttl)
	}
	encoded, err := json.Marshal(entry)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode cache entry").
			WithCause(err)
	}
	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create cache directory").
			WithCause(err)
	}
	if err := os.WriteFile(path, encoded, 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write cache entry").
			WithCause(err)
	}
	return nil
}

func (c *FileSpecCache) Delete(ctx context.Context, key string) error {
	err := os.Remove(c.path(key))
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg("failed to delete cache entry").
		WithCause(err)
}

func (c *FileSpecCache) Close() error {
	return nil
}

// path spreads entries over subdirectories named by the first two hex
// digits of the key hash.
func (c *FileSpecCache) path(key string) string {
	sum := sha256.Sum256([]byte(key))
	hash := hex.EncodeToString(sum[:])
	return filepath.Join(c.dir, hash[:2], hash[2:]+".json")
}

var _ ports.CachePort = (*FileSpecCache)(nil)
