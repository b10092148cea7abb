package repository

import (
	"context"
	"errors"

	"oumybeauty/internal/domain/entity"
)

var ErrVersionConflict = errors.New("catalog version conflict")

// CatalogSnapshot is one read of the local catalog. Version identifies the
// stored payload and can be handed back to SaveAll to detect lost updates.
type CatalogSnapshot struct {
	Products []*entity.Product
	Version  string
	// Seeded is true when the read found nothing usable and installed the
	// seed catalog.
	Seeded bool
}

// LocalCatalogStore persists the whole catalog as one ordered list. There is
// no per-record API: callers load, modify and save the full list.
type LocalCatalogStore interface {
	LoadAll(ctx context.Context) (*CatalogSnapshot, error)
	// SaveAll overwrites the list. A non-empty expectedVersion makes the write
	// conditional on the stored payload still matching it.
	SaveAll(ctx context.Context, products []*entity.Product, expectedVersion string) (string, error)
}

// RemoteCatalogBridge mirrors the catalog to a hosted table and object store.
// When not configured every call fails with a REMOTE_UNAVAILABLE error and
// never with a transport error.
type RemoteCatalogBridge interface {
	Configured() bool
	// FetchAll returns remote rows newest first by creation time.
	FetchAll(ctx context.Context) ([]*entity.Product, error)
	// Push uploads inline images, upserts every row by id and returns the
	// remote state after the write.
	Push(ctx context.Context, products []*entity.Product) ([]*entity.Product, error)
}
