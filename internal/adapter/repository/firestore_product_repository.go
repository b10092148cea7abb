package repository

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/spf13/cast"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"oumybeauty/internal/domain/entity"
	"oumybeauty/internal/domain/repository"
	"oumybeauty/internal/domain/service"
	"oumybeauty/pkg/errors"
	"oumybeauty/pkg/logger"
)

// productRow is the remote table layout: snake_case timestamps, nullable
// category, stock defaulting to zero. Price may arrive as text or number.
type productRow struct {
	ID          string      `firestore:"id"`
	Name        string      `firestore:"name"`
	Description string      `firestore:"description"`
	Price       interface{} `firestore:"price"`
	Image       string      `firestore:"image"`
	Category    *string     `firestore:"category"`
	Stock       *int64      `firestore:"stock"`
	CreatedAt   time.Time   `firestore:"created_at"`
	UpdatedAt   time.Time   `firestore:"updated_at"`
}

func toRow(p *entity.Product) productRow {
	row := productRow{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Image:       p.Image,
		Stock:       new(int64),
		CreatedAt:   p.CreatedAt.Time,
		UpdatedAt:   p.UpdatedAt.Time,
	}
	if p.Category != "" {
		category := p.Category
		row.Category = &category
	}
	if p.Stock != nil {
		*row.Stock = int64(*p.Stock)
	}
	return row
}

func fromRow(row productRow) (*entity.Product, error) {
	price, err := cast.ToFloat64E(row.Price)
	if err != nil {
		return nil, fmt.Errorf("row %s: price %v is not numeric: %w", row.ID, row.Price, err)
	}

	stock := 0
	if row.Stock != nil {
		stock = int(*row.Stock)
	}

	p := &entity.Product{
		ID:          row.ID,
		Name:        row.Name,
		Price:       price,
		Image:       row.Image,
		Description: row.Description,
		Stock:       &stock,
		CreatedAt:   entity.NewTimestamp(row.CreatedAt),
		UpdatedAt:   entity.NewTimestamp(row.UpdatedAt),
	}
	if row.Category != nil {
		p.Category = *row.Category
	}
	return p, nil
}

type firestoreCatalogBridge struct {
	client  *firestore.Client
	storage service.ObjectStorage
	table   string
	now     func() time.Time
}

// NewFirestoreCatalogBridge mirrors the catalog to the given collection and
// uploads inline photos to storage. A nil client yields a bridge that
// reports itself as not configured.
func NewFirestoreCatalogBridge(client *firestore.Client, storage service.ObjectStorage, table string) repository.RemoteCatalogBridge {
	return &firestoreCatalogBridge{
		client:  client,
		storage: storage,
		table:   table,
		now:     time.Now,
	}
}

func (r *firestoreCatalogBridge) Configured() bool {
	return r.client != nil
}

func (r *firestoreCatalogBridge) FetchAll(ctx context.Context) ([]*entity.Product, error) {
	if !r.Configured() {
		return nil, errors.RemoteUnavailable()
	}

	iter := r.client.Collection(r.table).OrderBy("created_at", firestore.Desc).Documents(ctx)
	defer iter.Stop()

	products := []*entity.Product{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, remoteError("fetch products", err, false)
		}

		var row productRow
		if err := doc.DataTo(&row); err != nil {
			return nil, errors.RemoteRead("Failed to parse remote product", err)
		}
		if row.ID == "" {
			row.ID = doc.Ref.ID
		}

		product, err := fromRow(row)
		if err != nil {
			return nil, errors.RemoteRead("Failed to parse remote product", err)
		}
		products = append(products, product)
	}

	return products, nil
}

func (r *firestoreCatalogBridge) Push(ctx context.Context, products []*entity.Product) ([]*entity.Product, error) {
	if !r.Configured() {
		return nil, errors.RemoteUnavailable()
	}

	if err := checkDistinctIDs(products); err != nil {
		return nil, err
	}

	prepared, err := uploadInlineImages(ctx, r.storage, products, r.now)
	if err != nil {
		return nil, err
	}

	coll := r.client.Collection(r.table)
	bw := r.client.BulkWriter(ctx)
	jobs := make(map[string]*firestore.BulkWriterJob, len(prepared))
	for _, p := range prepared {
		job, err := bw.Set(coll.Doc(p.ID), toRow(p))
		if err != nil {
			bw.End()
			return nil, errors.RemoteWrite(fmt.Sprintf("Failed to queue product %s", p.ID), err)
		}
		jobs[p.ID] = job
	}
	bw.End()

	var firstErr error
	rejected := 0
	for id, job := range jobs {
		if _, err := job.Results(); err != nil {
			rejected++
			logger.Error("Remote upsert rejected product %s: %v", id, err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	if firstErr != nil {
		return nil, remoteError(fmt.Sprintf("upsert products (%d of %d rejected)", rejected, len(jobs)), firstErr, true)
	}

	logger.Info("Upserted %d products to remote table %s", len(prepared), r.table)
	return r.FetchAll(ctx)
}

// checkDistinctIDs rejects a batch that would collapse two records into one
// remote row.
func checkDistinctIDs(products []*entity.Product) error {
	seen := make(map[string]struct{}, len(products))
	for _, p := range products {
		if p.ID == "" {
			return errors.Validation("id is required for every product")
		}
		if _, dup := seen[p.ID]; dup {
			return errors.Conflict(fmt.Sprintf("Duplicate product id %q in catalog", p.ID))
		}
		seen[p.ID] = struct{}{}
	}
	return nil
}

// uploadInlineImages returns copies of products where every inline data URI
// has been replaced by the public URL of its uploaded bytes. Any upload
// failure aborts before a row is written.
func uploadInlineImages(ctx context.Context, storage service.ObjectStorage, products []*entity.Product, now func() time.Time) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(products))
	for _, p := range products {
		cp := p.Clone()

		img, err := entity.ParseImage(cp.Image)
		if err != nil {
			return nil, errors.Encoding(fmt.Sprintf("Product %s has a malformed inline image", cp.ID), err)
		}
		if img.Kind == entity.ImageInline {
			if storage == nil {
				return nil, errors.RemoteStorage("Object storage is not configured", nil)
			}
			key := entity.PhotoObjectKey(cp.ID, now())
			url, err := storage.Upload(ctx, key, img.MIME, img.Data)
			if err != nil {
				return nil, errors.RemoteStorage(fmt.Sprintf("Failed to upload photo for product %s", cp.ID), err)
			}
			logger.Debug("Uploaded inline photo of %s as %s", cp.ID, key)
			cp.Image = url
		}

		out = append(out, cp)
	}
	return out, nil
}

func remoteError(op string, err error, write bool) error {
	code := status.Code(err)
	msg := fmt.Sprintf("Remote %s failed", op)
	if code != codes.Unknown {
		msg = fmt.Sprintf("%s: %s", msg, code)
	}
	if write {
		return errors.RemoteWrite(msg, err)
	}
	return errors.RemoteRead(msg, err)
}
