package imaging

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"oumybeauty/internal/domain/entity"
	"oumybeauty/internal/domain/service"
	"oumybeauty/pkg/errors"
	"oumybeauty/pkg/logger"
)

type Options struct {
	// MaxBytes is the size guidance for uploads.
	MaxBytes int64
	// StrictSize turns MaxBytes into a hard rejection.
	StrictSize bool
}

// InlineMaterializer encodes uploads as base64 data URIs.
type InlineMaterializer struct {
	opts Options
}

func NewInlineMaterializer(opts Options) *InlineMaterializer {
	return &InlineMaterializer{opts: opts}
}

func (m *InlineMaterializer) Materialize(ctx context.Context, productID string, upload *entity.ImageUpload) (string, error) {
	mime, data, err := readImage(upload, m.opts)
	if err != nil {
		return "", err
	}
	return entity.InlineImage(mime, data).URI(), nil
}

// Discard is a no-op: inline images live inside the record itself.
func (m *InlineMaterializer) Discard(ctx context.Context, uri string) error {
	return nil
}

// RemoteMaterializer uploads to object storage and returns the public URL.
type RemoteMaterializer struct {
	storage service.ObjectStorage
	opts    Options
	now     func() time.Time
}

func NewRemoteMaterializer(storage service.ObjectStorage, opts Options) *RemoteMaterializer {
	return &RemoteMaterializer{
		storage: storage,
		opts:    opts,
		now:     time.Now,
	}
}

func (m *RemoteMaterializer) Materialize(ctx context.Context, productID string, upload *entity.ImageUpload) (string, error) {
	mime, data, err := readImage(upload, m.opts)
	if err != nil {
		return "", err
	}

	key := entity.PhotoObjectKey(productID, m.now())
	url, err := m.storage.Upload(ctx, key, mime, data)
	if err != nil {
		return "", errors.RemoteStorage("Failed to upload product photo", err)
	}
	logger.Debug("Uploaded photo for %s as %s", productID, key)
	return url, nil
}

func (m *RemoteMaterializer) Discard(ctx context.Context, uri string) error {
	if !m.storage.Owns(uri) {
		return nil
	}
	if err := m.storage.Delete(ctx, uri); err != nil {
		return errors.RemoteStorage("Failed to delete product photo", err)
	}
	logger.Debug("Deleted photo %s", uri)
	return nil
}

// readImage reads the whole payload and checks it really is an image,
// trusting the bytes rather than the declared content type.
func readImage(upload *entity.ImageUpload, opts Options) (string, []byte, error) {
	if upload == nil || upload.Reader == nil {
		return "", nil, errors.Encoding("No image payload", nil)
	}

	r := upload.Reader
	if opts.StrictSize && opts.MaxBytes > 0 {
		r = io.LimitReader(r, opts.MaxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", nil, errors.Encoding("Unable to read image", err)
	}
	if len(data) == 0 {
		return "", nil, errors.Encoding("Image is empty", nil)
	}

	if opts.MaxBytes > 0 && int64(len(data)) > opts.MaxBytes {
		if opts.StrictSize {
			return "", nil, errors.Encoding(fmt.Sprintf("Image exceeds maximum allowed size (%dMB)", opts.MaxBytes/(1024*1024)), nil)
		}
		logger.Warn("Image %q is %d bytes, above the %d byte guidance", upload.Filename, len(data), opts.MaxBytes)
	}

	mime := mimetype.Detect(data).String()
	if !strings.HasPrefix(mime, "image/") {
		return "", nil, errors.Encoding(fmt.Sprintf("File type %s is not a supported image", mime), nil)
	}

	return mime, data, nil
}
