package kv

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("key not found")

// Store is an opaque key-value byte store. Delete of an absent key
// succeeds.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

type Backend string

const (
	BackendFile   Backend = "file"
	BackendSQLite Backend = "sqlite"
	BackendMemory Backend = "memory"
)
