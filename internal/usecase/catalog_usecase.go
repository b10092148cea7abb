package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"oumybeauty/internal/domain/entity"
	"oumybeauty/internal/domain/repository"
	"oumybeauty/internal/domain/service"
	"oumybeauty/pkg/config"
	"oumybeauty/pkg/errors"
	"oumybeauty/pkg/logger"
	"oumybeauty/pkg/utils"
)

// CatalogUseCase composes the local store, the optional remote bridge and
// image materialization. Every mutation is load, modify, save of the whole
// list, with the save conditional on the version that was loaded.
type CatalogUseCase struct {
	local         repository.LocalCatalogStore
	remote        repository.RemoteCatalogBridge
	images        service.ImageMaterializer
	failurePolicy string
	now           func() time.Time
}

func NewCatalogUseCase(
	local repository.LocalCatalogStore,
	remote repository.RemoteCatalogBridge,
	images service.ImageMaterializer,
	failurePolicy string,
) *CatalogUseCase {
	if failurePolicy == "" {
		failurePolicy = config.ImageFailureSkip
	}
	return &CatalogUseCase{
		local:         local,
		remote:        remote,
		images:        images,
		failurePolicy: failurePolicy,
		now:           time.Now,
	}
}

func (uc *CatalogUseCase) RemoteConfigured() bool {
	return uc.remote != nil && uc.remote.Configured()
}

// ListAll is the storefront read. The remote catalog wins when it has rows,
// otherwise the local one is returned with broken images repaired in memory.
func (uc *CatalogUseCase) ListAll(ctx context.Context) ([]*entity.Product, error) {
	if uc.RemoteConfigured() {
		products, err := uc.remote.FetchAll(ctx)
		switch {
		case err != nil:
			logger.Warn("Remote catalog read failed, serving local catalog: %v", err)
		case len(products) > 0:
			return products, nil
		default:
			logger.Debug("Remote catalog is empty, serving local catalog")
		}
	}

	snap, err := uc.local.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	if fixed := entity.RepairImages(snap.Products); fixed > 0 {
		logger.Debug("Replaced %d broken product images with the placeholder", fixed)
	}
	return snap.Products, nil
}

func (uc *CatalogUseCase) Get(ctx context.Context, id string) (*entity.Product, error) {
	products, err := uc.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if i := indexOf(products, id); i >= 0 {
		return products[i], nil
	}
	return nil, errors.NotFound("Product", nil)
}

// AdminList returns the local catalog exactly as stored.
func (uc *CatalogUseCase) AdminList(ctx context.Context) ([]*entity.Product, error) {
	snap, err := uc.local.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Products, nil
}

func (uc *CatalogUseCase) Create(ctx context.Context, draft *entity.ProductDraft) (*entity.Product, error) {
	if ok, reasons := draft.ValidateForCreate(); !ok {
		return nil, errors.Validation(reasons...)
	}
	if err := checkImageURI(draft.Image); err != nil {
		return nil, err
	}

	// Explicit ids get the same normalization as names so they are usable
	// as remote document ids and object keys.
	explicit := strings.TrimSpace(draft.ID) != ""
	baseID := utils.Slugify(draft.ID)
	if explicit && baseID == "" {
		return nil, errors.Validation("id must contain at least one letter or digit")
	}
	if baseID == "" {
		baseID = utils.Slugify(draft.Name)
	}
	if baseID == "" {
		baseID = uc.fallbackID()
	}

	// The id is settled first so the photo is keyed by it.
	pre, err := uc.local.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	id := baseID
	if indexOf(pre.Products, id) >= 0 {
		if explicit {
			return nil, errors.Conflict(fmt.Sprintf("Product with id %q already exists", id))
		}
		id = nextFreeID(pre.Products, baseID)
	}

	// The upload finishes before the catalog is reloaded so that no await
	// sits between load and save.
	uploaded, err := uc.materialize(ctx, id, draft.ImageFile)
	if err != nil {
		return nil, err
	}
	image := uploaded
	if image == "" {
		image = strings.TrimSpace(draft.Image)
	}
	if image == "" {
		image = entity.PlaceholderImageURL
	}

	snap, err := uc.local.LoadAll(ctx)
	if err != nil {
		uc.discard(ctx, uploaded)
		return nil, err
	}
	if indexOf(snap.Products, id) >= 0 {
		uc.discard(ctx, uploaded)
		return nil, errors.Conflict(fmt.Sprintf("Product with id %q was created concurrently, retry", id))
	}

	now := entity.NewTimestamp(uc.now())
	product := &entity.Product{
		ID:          id,
		Name:        strings.TrimSpace(draft.Name),
		Price:       *draft.Price,
		Image:       image,
		Description: draft.Description,
		Category:    draft.Category,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if draft.Stock != nil {
		stock := *draft.Stock
		product.Stock = &stock
	}

	products := append(snap.Products, product)
	if _, err := uc.local.SaveAll(ctx, products, snap.Version); err != nil {
		uc.discard(ctx, uploaded)
		return nil, err
	}

	logger.Info("Created product %s", product.ID)
	return product, nil
}

func (uc *CatalogUseCase) Update(ctx context.Context, id string, patch *entity.ProductPatch) (*entity.Product, error) {
	if ok, reasons := patch.Validate(); !ok {
		return nil, errors.Validation(reasons...)
	}
	if patch.Image != nil {
		if err := checkImageURI(*patch.Image); err != nil {
			return nil, err
		}
	}

	image, err := uc.materialize(ctx, id, patch.ImageFile)
	if err != nil {
		return nil, err
	}

	snap, err := uc.local.LoadAll(ctx)
	if err != nil {
		uc.discard(ctx, image)
		return nil, err
	}
	i := indexOf(snap.Products, id)
	if i < 0 {
		uc.discard(ctx, image)
		return nil, errors.NotFound("Product", nil)
	}

	existing := snap.Products[i]
	updated := existing.Clone()
	patch.Apply(updated)

	switch {
	case image != "":
		updated.Image = image
	case patch.Image != nil:
		updated.Image = strings.TrimSpace(*patch.Image)
		if updated.Image == "" {
			updated.Image = entity.PlaceholderImageURL
		}
	}
	updated.UpdatedAt = uc.bump(existing.UpdatedAt)

	snap.Products[i] = updated
	if _, err := uc.local.SaveAll(ctx, snap.Products, snap.Version); err != nil {
		uc.discard(ctx, image)
		return nil, err
	}
	if updated.Image != existing.Image {
		uc.release(ctx, existing.Image)
	}

	logger.Info("Updated product %s", id)
	return updated, nil
}

// Delete reports false without writing when id is not in the catalog.
func (uc *CatalogUseCase) Delete(ctx context.Context, id string) (bool, error) {
	snap, err := uc.local.LoadAll(ctx)
	if err != nil {
		return false, err
	}

	var removed *entity.Product
	kept := make([]*entity.Product, 0, len(snap.Products))
	for _, p := range snap.Products {
		if p.ID == id {
			removed = p
			continue
		}
		kept = append(kept, p)
	}
	if removed == nil {
		return false, nil
	}

	if _, err := uc.local.SaveAll(ctx, kept, snap.Version); err != nil {
		return false, err
	}
	uc.release(ctx, removed.Image)

	logger.Info("Deleted product %s", id)
	return true, nil
}

func (uc *CatalogUseCase) ResetToDefault(ctx context.Context) ([]*entity.Product, error) {
	seed := entity.SeedCatalog()
	if _, err := uc.local.SaveAll(ctx, seed, ""); err != nil {
		return nil, err
	}
	logger.Info("Local catalog reset to %d default products", len(seed))
	return seed, nil
}

// FixImages persists the repair pass ListAll applies in memory. UpdatedAt is
// not touched.
func (uc *CatalogUseCase) FixImages(ctx context.Context) (int, []*entity.Product, error) {
	snap, err := uc.local.LoadAll(ctx)
	if err != nil {
		return 0, nil, err
	}

	fixed := entity.RepairImages(snap.Products)
	if fixed == 0 {
		return 0, snap.Products, nil
	}
	if _, err := uc.local.SaveAll(ctx, snap.Products, snap.Version); err != nil {
		return 0, nil, err
	}

	logger.Info("Repaired %d product images", fixed)
	return fixed, snap.Products, nil
}

// MigrateToRemote pushes the local catalog and replaces it with what the
// remote reports back. An empty catalog fails before any network call.
func (uc *CatalogUseCase) MigrateToRemote(ctx context.Context) ([]*entity.Product, error) {
	snap, err := uc.local.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(snap.Products) == 0 {
		return nil, errors.EmptyCatalog()
	}
	if !uc.RemoteConfigured() {
		return nil, errors.RemoteUnavailable()
	}

	rows, err := uc.remote.Push(ctx, snap.Products)
	if err != nil {
		logger.Error("Migration of %d products failed: %v", len(snap.Products), err)
		return nil, err
	}

	// The remote already holds the new state, so this write is unconditional.
	if _, err := uc.local.SaveAll(ctx, rows, ""); err != nil {
		return nil, err
	}

	logger.Info("Migrated %d products to the remote catalog", len(rows))
	return rows, nil
}

// ImportFromRemote replaces the local catalog with the remote rows. Local
// state is untouched on any failure.
func (uc *CatalogUseCase) ImportFromRemote(ctx context.Context) ([]*entity.Product, error) {
	if !uc.RemoteConfigured() {
		return nil, errors.RemoteUnavailable()
	}

	rows, err := uc.remote.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.RemoteEmpty()
	}

	if _, err := uc.local.SaveAll(ctx, rows, ""); err != nil {
		return nil, err
	}

	logger.Info("Imported %d products from the remote catalog", len(rows))
	return rows, nil
}

// materialize returns "" when there is nothing to upload, or when the upload
// failed under the skip policy.
func (uc *CatalogUseCase) materialize(ctx context.Context, productID string, upload *entity.ImageUpload) (string, error) {
	if upload == nil {
		return "", nil
	}
	if uc.images == nil {
		return "", errors.Encoding("Image uploads are not enabled", nil)
	}

	uri, err := uc.images.Materialize(ctx, productID, upload)
	if err == nil {
		return uri, nil
	}
	if uc.failurePolicy == config.ImageFailureAbort {
		return "", err
	}

	logger.Warn("Image for product %s dropped: %v", productID, err)
	return "", nil
}

// discard drops a photo uploaded during a write that did not land. Nothing
// else can reference it yet.
func (uc *CatalogUseCase) discard(ctx context.Context, uri string) {
	if uri == "" || uc.images == nil {
		return
	}
	if err := uc.images.Discard(ctx, uri); err != nil {
		logger.Warn("Failed to delete unused photo %s: %v", uri, err)
	}
}

// release drops a photo the local catalog no longer references, unless a
// remote row still points at it. When the remote cannot be read the photo
// is kept.
func (uc *CatalogUseCase) release(ctx context.Context, uri string) {
	if uri == "" || uc.images == nil {
		return
	}
	if uc.RemoteConfigured() {
		rows, err := uc.remote.FetchAll(ctx)
		if err != nil {
			logger.Warn("Keeping photo %s, remote catalog unreadable: %v", uri, err)
			return
		}
		for _, p := range rows {
			if p.Image == uri {
				logger.Debug("Keeping photo %s, still used by remote product %s", uri, p.ID)
				return
			}
		}
	}
	uc.discard(ctx, uri)
}

// bump returns now, or prev + 1ms when the clock has not moved past prev.
func (uc *CatalogUseCase) bump(prev entity.Timestamp) entity.Timestamp {
	next := entity.NewTimestamp(uc.now())
	if !next.After(prev.Time) {
		next = entity.NewTimestamp(prev.Add(time.Millisecond))
	}
	return next
}

func (uc *CatalogUseCase) fallbackID() string {
	return fmt.Sprintf("prod-%d-%s", uc.now().UnixMilli(), uuid.NewString()[:8])
}

// checkImageURI rejects image values that cannot be stored: malformed data
// URIs and process-local references.
func checkImageURI(uri string) error {
	if strings.TrimSpace(uri) == "" {
		return nil
	}
	img, err := entity.ParseImage(uri)
	if err != nil {
		return errors.Encoding("Image data URI is malformed", err)
	}
	if !img.Durable() {
		return errors.Validation("image must be a durable URI, upload the file instead")
	}
	return nil
}

func indexOf(products []*entity.Product, id string) int {
	for i, p := range products {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func nextFreeID(products []*entity.Product, base string) string {
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s-%d", base, n)
		if indexOf(products, candidate) < 0 {
			return candidate
		}
	}
}
