// Package storage provides the key-value stores assessment results are
// persisted to, and the Results repository layered on top of them.
//
// All backends store opaque byte values (JSON in practice) under string keys.
// Get reports a missing key as ErrNotFound.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/harrison/wellnest/internal/config"
)

// ErrNotFound is returned by Get when the key has no value.
var ErrNotFound = errors.New("key not found")

// KV is the persistence capability the assessment needs from its environment.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Open creates the store selected by cfg.Backend.
func Open(ctx context.Context, cfg config.StorageConfig) (KV, error) {
	switch cfg.Backend {
	case config.BackendFile:
		return NewFileStore(cfg.Path)
	case config.BackendSQLite:
		return NewSQLiteStore(cfg.Path)
	case config.BackendRedis:
		return NewRedisStore(ctx, cfg.RedisURL, cfg.Prefix)
	case config.BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
