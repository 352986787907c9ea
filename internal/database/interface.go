package database

import (
	"context"
	"errors"

	"github.com/jesses-code-adventures/ndis-invoice/internal/config"
)

// ErrNotFound is returned by Get when the key has never been set or was deleted.
var ErrNotFound = errors.New("key not found")

// KV is a string key-value store.
type KV interface {
	Close() error

	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Open returns the KV backend selected by cfg.DatabaseDriver.
func Open(ctx context.Context, cfg *config.Config) (KV, error) {
	if cfg.DatabaseDriver == config.DriverMemory {
		return NewMemoryDB(), nil
	}
	db, err := NewDB(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return db, nil
}

// Resetter is implemented by backends that can wipe every stored key.
type Resetter interface {
	Reset(ctx context.Context) error
}
