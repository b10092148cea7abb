package repository

import (
	"context"
	"errors"
)

var (
	ErrKeyNotFound   = errors.New("key not found")
	ErrQuotaExceeded = errors.New("storage quota exceeded")
)

// KeyValueStore is a flat namespace of string keys holding opaque values,
// the server-side counterpart of a browser's local storage.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	// Update reads key and writes the value fn returns in one atomic step.
	// exists is false when the key is absent. If fn fails nothing is written.
	Update(ctx context.Context, key string, fn func(current []byte, exists bool) ([]byte, error)) error
}
