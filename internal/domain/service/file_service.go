package service

import (
	"context"
)

// ObjectStorage stores product photos and returns their public URL.
type ObjectStorage interface {
	Upload(ctx context.Context, key, contentType string, data []byte) (string, error)
	// Owns reports whether fileURL points at an object this storage wrote.
	Owns(fileURL string) bool
	Delete(ctx context.Context, fileURL string) error
	Close() error
}
