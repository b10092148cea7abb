package repository

import (
	"context"
	stderrors "errors"
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
	jsoniter "github.com/json-iterator/go"

	"oumybeauty/internal/domain/entity"
	"oumybeauty/internal/domain/repository"
	"oumybeauty/pkg/errors"
	"oumybeauty/pkg/logger"
)

// CatalogKey is the single well-known key holding the serialized catalog.
const CatalogKey = "oumy_beauty_products"

// versionAbsent is the snapshot version of a key that holds nothing.
const versionAbsent = "absent"

// catalogJSON leaves <, > and & unescaped so payloads written by other
// clients re-encode byte for byte.
var catalogJSON = jsoniter.Config{EscapeHTML: false}.Froze()

type localCatalogRepository struct {
	kv          repository.KeyValueStore
	seedOnEmpty bool
}

// NewLocalCatalogRepository stores the catalog under CatalogKey. With
// seedOnEmpty a missing or corrupt payload is replaced by the seed catalog,
// otherwise it reads as an empty catalog.
func NewLocalCatalogRepository(kv repository.KeyValueStore, seedOnEmpty bool) repository.LocalCatalogStore {
	return &localCatalogRepository{
		kv:          kv,
		seedOnEmpty: seedOnEmpty,
	}
}

func (r *localCatalogRepository) LoadAll(ctx context.Context) (*repository.CatalogSnapshot, error) {
	raw, err := r.kv.Get(ctx, CatalogKey)
	if stderrors.Is(err, repository.ErrKeyNotFound) {
		return r.firstRun(ctx)
	}
	if err != nil {
		return nil, errors.Internal("Failed to read local catalog", err)
	}

	products, err := decodeCatalog(raw)
	if err != nil {
		logger.Warn("Local catalog payload is corrupt, clearing key %s: %v", CatalogKey, err)
		if err := r.kv.Delete(ctx, CatalogKey); err != nil {
			return nil, errors.Internal("Failed to clear corrupt local catalog", err)
		}
		return r.firstRun(ctx)
	}
	if products == nil {
		products = []*entity.Product{}
	}

	return &repository.CatalogSnapshot{
		Products: products,
		Version:  payloadVersion(raw),
	}, nil
}

func (r *localCatalogRepository) firstRun(ctx context.Context) (*repository.CatalogSnapshot, error) {
	if !r.seedOnEmpty {
		return &repository.CatalogSnapshot{
			Products: []*entity.Product{},
			Version:  versionAbsent,
		}, nil
	}

	seed := entity.SeedCatalog()
	version, err := r.SaveAll(ctx, seed, "")
	if err != nil {
		return nil, err
	}
	logger.Info("Seeded local catalog with %d default products", len(seed))

	return &repository.CatalogSnapshot{
		Products: seed,
		Version:  version,
		Seeded:   true,
	}, nil
}

func (r *localCatalogRepository) SaveAll(ctx context.Context, products []*entity.Product, expectedVersion string) (string, error) {
	payload, err := encodeCatalog(products)
	if err != nil {
		return "", errors.Internal("Failed to encode local catalog", err)
	}

	if expectedVersion == "" {
		err = r.kv.Set(ctx, CatalogKey, payload)
	} else {
		err = r.kv.Update(ctx, CatalogKey, func(current []byte, exists bool) ([]byte, error) {
			currentVersion := versionAbsent
			if exists {
				currentVersion = payloadVersion(current)
			}
			if currentVersion != expectedVersion {
				return nil, repository.ErrVersionConflict
			}
			return payload, nil
		})
	}

	switch {
	case err == nil:
		return payloadVersion(payload), nil
	case stderrors.Is(err, repository.ErrVersionConflict):
		return "", errors.Conflict("Catalog was modified by another writer, reload and retry")
	case stderrors.Is(err, repository.ErrQuotaExceeded):
		return "", errors.StorageQuota(err)
	default:
		return "", errors.Internal("Failed to write local catalog", err)
	}
}

// decodeCatalog rejects null entries along with malformed JSON; both mean
// the payload was not written by SaveAll.
func decodeCatalog(raw []byte) ([]*entity.Product, error) {
	var products []*entity.Product
	if err := catalogJSON.Unmarshal(raw, &products); err != nil {
		return nil, err
	}
	for i, p := range products {
		if p == nil {
			return nil, fmt.Errorf("entry %d is null", i)
		}
	}
	return products, nil
}

func encodeCatalog(products []*entity.Product) ([]byte, error) {
	if products == nil {
		products = []*entity.Product{}
	}
	return catalogJSON.Marshal(products)
}

func payloadVersion(raw []byte) string {
	return strconv.FormatUint(xxhash.Sum64(raw), 16)
}
