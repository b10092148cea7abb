package service

import (
	"context"

	"oumybeauty/internal/domain/entity"
)

// ImageMaterializer turns a pending upload into a durable image URI. It
// fails with ENCODING_ERROR for unreadable or non-image payloads and with
// REMOTE_STORAGE_ERROR when an upload to object storage fails.
type ImageMaterializer interface {
	Materialize(ctx context.Context, productID string, upload *entity.ImageUpload) (string, error)
	// Discard frees the storage behind a URI it produced earlier. URIs it
	// does not own are ignored.
	Discard(ctx context.Context, uri string) error
}
