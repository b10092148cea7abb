package usecase

import (
	"bytes"
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapterrepo "oumybeauty/internal/adapter/repository"
	"oumybeauty/internal/domain/entity"
	"oumybeauty/internal/infrastructure/kvstore"
	"oumybeauty/pkg/config"
	"oumybeauty/pkg/errors"
)

type fakeBridge struct {
	configured bool
	rows       []*entity.Product
	fetchErr   error
	pushErr    error
	fetchCalls int
	pushCalls  int
}

func (b *fakeBridge) Configured() bool { return b.configured }

func (b *fakeBridge) FetchAll(ctx context.Context) ([]*entity.Product, error) {
	b.fetchCalls++
	if !b.configured {
		return nil, errors.RemoteUnavailable()
	}
	if b.fetchErr != nil {
		return nil, b.fetchErr
	}
	out := make([]*entity.Product, 0, len(b.rows))
	for _, p := range b.rows {
		out = append(out, p.Clone())
	}
	return out, nil
}

func (b *fakeBridge) Push(ctx context.Context, products []*entity.Product) ([]*entity.Product, error) {
	b.pushCalls++
	if !b.configured {
		return nil, errors.RemoteUnavailable()
	}
	if b.pushErr != nil {
		return nil, b.pushErr
	}
	b.rows = nil
	for _, p := range products {
		cp := p.Clone()
		if cp.Stock == nil {
			cp.Stock = new(int)
		}
		b.rows = append(b.rows, cp)
	}
	return b.FetchAll(ctx)
}

type fakeMaterializer struct {
	uri       string
	err       error
	calls     int
	keys      []string
	discarded []string
}

func (m *fakeMaterializer) Materialize(ctx context.Context, productID string, upload *entity.ImageUpload) (string, error) {
	m.calls++
	m.keys = append(m.keys, productID)
	if m.err != nil {
		return "", m.err
	}
	return m.uri, nil
}

func (m *fakeMaterializer) Discard(ctx context.Context, uri string) error {
	m.discarded = append(m.discarded, uri)
	return nil
}

type catalogFixture struct {
	uc     *CatalogUseCase
	kv     *kvstore.MemoryStore
	bridge *fakeBridge
	images *fakeMaterializer
	clock  time.Time
}

func newCatalogFixture(t *testing.T, seedOnEmpty bool) *catalogFixture {
	t.Helper()
	f := &catalogFixture{
		kv:     kvstore.NewMemoryStore(0),
		bridge: &fakeBridge{},
		images: &fakeMaterializer{uri: "data:image/png;base64,iVBORw0KGgo="},
		clock:  time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC),
	}
	local := adapterrepo.NewLocalCatalogRepository(f.kv, seedOnEmpty)
	f.uc = NewCatalogUseCase(local, f.bridge, f.images, config.ImageFailureSkip)
	f.uc.now = func() time.Time { return f.clock }
	if seedOnEmpty {
		_, err := local.LoadAll(context.Background())
		require.NoError(t, err)
	}
	return f
}

func (f *catalogFixture) stored(t *testing.T) []byte {
	t.Helper()
	raw, err := f.kv.Get(context.Background(), adapterrepo.CatalogKey)
	require.NoError(t, err)
	return raw
}

func price(v float64) *float64 { return &v }

func str(v string) *string { return &v }

func pngUpload() *entity.ImageUpload {
	return &entity.ImageUpload{Filename: "gloss.png", Reader: bytes.NewReader([]byte("png"))}
}

func TestListAllSeedsEmptyStore(t *testing.T) {
	kv := kvstore.NewMemoryStore(0)
	uc := NewCatalogUseCase(adapterrepo.NewLocalCatalogRepository(kv, true), &fakeBridge{}, nil, "")

	products, err := uc.ListAll(context.Background())
	require.NoError(t, err)

	ids := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"serum", "cream", "palette"}, ids)
}

func TestListAllPrefersRemoteRows(t *testing.T) {
	f := newCatalogFixture(t, true)
	f.bridge.configured = true
	f.bridge.rows = []*entity.Product{{ID: "remote-only", Name: "Remote", Description: "x", Image: entity.PlaceholderImageURL}}

	products, err := f.uc.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "remote-only", products[0].ID)
}

func TestListAllFallsBackToLocal(t *testing.T) {
	tests := []struct {
		name   string
		bridge fakeBridge
	}{
		{"unconfigured", fakeBridge{}},
		{"empty remote", fakeBridge{configured: true}},
		{"remote read failure", fakeBridge{configured: true, fetchErr: errors.RemoteRead("boom", nil)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newCatalogFixture(t, true)
			*f.bridge = tt.bridge

			products, err := f.uc.ListAll(context.Background())
			require.NoError(t, err)
			assert.Len(t, products, 3)
		})
	}
}

func TestListAllRepairsLegacyImagesWithoutTouchingUpdatedAt(t *testing.T) {
	f := newCatalogFixture(t, true)
	ctx := context.Background()
	legacy := `[{"id":"serum","name":"Sérum Éclat","price":100,"image":"/src/assets/product-serum.jpg","description":"d","createdAt":"2024-01-01T00:00:00.000Z","updatedAt":"2024-02-01T12:00:00.000Z"}]`
	require.NoError(t, f.kv.Set(ctx, adapterrepo.CatalogKey, []byte(legacy)))

	products, err := f.uc.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, entity.PlaceholderImageURL, products[0].Image)
	assert.Equal(t, "2024-02-01T12:00:00.000Z", products[0].UpdatedAt.String())

	// the storefront repair is not persisted
	assert.Equal(t, legacy, string(f.stored(t)))

	admin, err := f.uc.AdminList(ctx)
	require.NoError(t, err)
	assert.Equal(t, "/src/assets/product-serum.jpg", admin[0].Image)
}

func TestFixImagesPersistsRepair(t *testing.T) {
	f := newCatalogFixture(t, true)
	ctx := context.Background()
	legacy := `[{"id":"a","name":"A","price":1,"image":"blob:http://localhost/123","description":"d","createdAt":"2024-01-01T00:00:00.000Z","updatedAt":"2024-01-01T00:00:00.000Z"},{"id":"b","name":"B","price":2,"image":"https://cdn.example.test/b.jpg","description":"d","createdAt":"2024-01-01T00:00:00.000Z","updatedAt":"2024-01-01T00:00:00.000Z"}]`
	require.NoError(t, f.kv.Set(ctx, adapterrepo.CatalogKey, []byte(legacy)))

	fixed, products, err := f.uc.FixImages(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, fixed)
	assert.Equal(t, entity.PlaceholderImageURL, products[0].Image)
	assert.Equal(t, "https://cdn.example.test/b.jpg", products[1].Image)

	admin, err := f.uc.AdminList(ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.PlaceholderImageURL, admin[0].Image)
	assert.Equal(t, "2024-01-01T00:00:00.000Z", admin[0].UpdatedAt.String())
}

func TestCreateWithoutImageUsesPlaceholder(t *testing.T) {
	f := newCatalogFixture(t, true)
	ctx := context.Background()

	before, err := f.uc.AdminList(ctx)
	require.NoError(t, err)

	product, err := f.uc.Create(ctx, &entity.ProductDraft{Name: "Gloss", Price: price(49), Description: "Brillant"})
	require.NoError(t, err)

	assert.Equal(t, "gloss", product.ID)
	assert.Equal(t, entity.PlaceholderImageURL, product.Image)
	assert.Nil(t, product.Stock)
	assert.Equal(t, product.CreatedAt, product.UpdatedAt)
	assert.Equal(t, 0, f.images.calls)
	for _, p := range before {
		assert.NotEqual(t, p.ID, product.ID)
	}

	after, err := f.uc.AdminList(ctx)
	require.NoError(t, err)
	require.Len(t, after, len(before)+1)
	assert.Equal(t, "gloss", after[len(after)-1].ID)
}

func TestCreateIDs(t *testing.T) {
	ctx := context.Background()

	t.Run("derived id collision gets a suffix", func(t *testing.T) {
		f := newCatalogFixture(t, true)
		for _, want := range []string{"gloss", "gloss-2", "gloss-3"} {
			p, err := f.uc.Create(ctx, &entity.ProductDraft{Name: "Gloss", Price: price(49), Description: "Brillant"})
			require.NoError(t, err)
			assert.Equal(t, want, p.ID)
		}
	})

	t.Run("explicit id collision conflicts", func(t *testing.T) {
		f := newCatalogFixture(t, true)
		_, err := f.uc.Create(ctx, &entity.ProductDraft{ID: "serum", Name: "Autre", Price: price(1), Description: "d"})
		assert.True(t, errors.Is(err, errors.CodeConflict))
	})

	t.Run("explicit id is normalized like a name", func(t *testing.T) {
		f := newCatalogFixture(t, true)
		p, err := f.uc.Create(ctx, &entity.ProductDraft{ID: "My Gloss/Red", Name: "Gloss", Price: price(49), Description: "Brillant"})
		require.NoError(t, err)
		assert.Equal(t, "my-gloss-red", p.ID)

		_, err = f.uc.Create(ctx, &entity.ProductDraft{ID: " Serum ", Name: "Autre", Price: price(1), Description: "d"})
		assert.True(t, errors.Is(err, errors.CodeConflict))
	})

	t.Run("explicit id without letters or digits is rejected", func(t *testing.T) {
		f := newCatalogFixture(t, true)
		before := f.stored(t)

		_, err := f.uc.Create(ctx, &entity.ProductDraft{ID: "///", Name: "Gloss", Price: price(49), Description: "Brillant"})
		assert.True(t, errors.Is(err, errors.CodeValidation))
		assert.Equal(t, before, f.stored(t))
	})

	t.Run("photo is keyed by the final id", func(t *testing.T) {
		f := newCatalogFixture(t, true)
		for _, want := range []string{"gloss", "gloss-2"} {
			p, err := f.uc.Create(ctx, &entity.ProductDraft{Name: "Gloss", Price: price(49), Description: "Brillant", ImageFile: pngUpload()})
			require.NoError(t, err)
			assert.Equal(t, want, p.ID)
		}
		assert.Equal(t, []string{"gloss", "gloss-2"}, f.images.keys)
	})

	t.Run("unsluggable name falls back to generated id", func(t *testing.T) {
		f := newCatalogFixture(t, true)
		p, err := f.uc.Create(ctx, &entity.ProductDraft{Name: "!!!", Price: price(1), Description: "d"})
		require.NoError(t, err)
		assert.Regexp(t, `^prod-\d+-[0-9a-f]{8}$`, p.ID)
	})
}

func TestCreateValidation(t *testing.T) {
	f := newCatalogFixture(t, true)
	ctx := context.Background()
	before := f.stored(t)

	_, err := f.uc.Create(ctx, &entity.ProductDraft{Name: " ", Description: ""})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeValidation))

	var appErr *errors.AppError
	require.True(t, stderrors.As(err, &appErr))
	assert.ElementsMatch(t, []string{"name is required", "price is required", "description is required"}, appErr.Details)

	_, err = f.uc.Create(ctx, &entity.ProductDraft{Name: "A", Price: price(-1), Description: "d"})
	assert.True(t, errors.Is(err, errors.CodeValidation))

	_, err = f.uc.Create(ctx, &entity.ProductDraft{Name: "A", Price: price(1), Description: "d", Image: "blob:http://localhost/1"})
	assert.True(t, errors.Is(err, errors.CodeValidation))

	_, err = f.uc.Create(ctx, &entity.ProductDraft{Name: "A", Price: price(1), Description: "d", Image: "data:image/png;base64,%%%"})
	assert.True(t, errors.Is(err, errors.CodeEncoding))

	assert.Equal(t, before, f.stored(t), "no partial write")
}

func TestCreateImageFailurePolicy(t *testing.T) {
	ctx := context.Background()

	t.Run("materialized", func(t *testing.T) {
		f := newCatalogFixture(t, true)
		p, err := f.uc.Create(ctx, &entity.ProductDraft{Name: "Gloss", Price: price(49), Description: "Brillant", ImageFile: pngUpload()})
		require.NoError(t, err)
		assert.Equal(t, f.images.uri, p.Image)
	})

	t.Run("skip keeps the other fields", func(t *testing.T) {
		f := newCatalogFixture(t, true)
		f.images.err = errors.RemoteStorage("upload failed", nil)
		p, err := f.uc.Create(ctx, &entity.ProductDraft{Name: "Gloss", Price: price(49), Description: "Brillant", ImageFile: pngUpload()})
		require.NoError(t, err)
		assert.Equal(t, entity.PlaceholderImageURL, p.Image)
	})

	t.Run("abort fails the write", func(t *testing.T) {
		f := newCatalogFixture(t, true)
		f.uc.failurePolicy = config.ImageFailureAbort
		f.images.err = errors.Encoding("not an image", nil)
		before := f.stored(t)

		_, err := f.uc.Create(ctx, &entity.ProductDraft{Name: "Gloss", Price: price(49), Description: "Brillant", ImageFile: pngUpload()})
		assert.True(t, errors.Is(err, errors.CodeEncoding))
		assert.Equal(t, before, f.stored(t))
	})
}

func TestUpdatePrice(t *testing.T) {
	f := newCatalogFixture(t, true)
	ctx := context.Background()

	before, err := f.uc.Get(ctx, "serum")
	require.NoError(t, err)

	updated, err := f.uc.Update(ctx, "serum", &entity.ProductPatch{Price: price(120)})
	require.NoError(t, err)

	assert.Equal(t, 120.0, updated.Price)
	assert.Equal(t, before.ID, updated.ID)
	assert.Equal(t, before.Image, updated.Image)
	assert.Equal(t, before.Name, updated.Name)
	assert.Equal(t, before.Description, updated.Description)
	assert.Equal(t, before.Category, updated.Category)
	assert.Equal(t, before.Stock, updated.Stock)
	assert.Equal(t, before.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(before.UpdatedAt.Time))

	stored, err := f.uc.Get(ctx, "serum")
	require.NoError(t, err)
	assert.Equal(t, updated, stored)
}

func TestUpdateAdvancesUpdatedAtWhenClockStalls(t *testing.T) {
	f := newCatalogFixture(t, true)
	ctx := context.Background()

	first, err := f.uc.Update(ctx, "cream", &entity.ProductPatch{Name: str("Crème")})
	require.NoError(t, err)
	second, err := f.uc.Update(ctx, "cream", &entity.ProductPatch{Name: str("Crème Riche")})
	require.NoError(t, err)

	assert.Equal(t, first.UpdatedAt.Add(time.Millisecond), second.UpdatedAt.Time)
}

func TestUpdateImage(t *testing.T) {
	ctx := context.Background()

	t.Run("upload replaces image", func(t *testing.T) {
		f := newCatalogFixture(t, true)
		p, err := f.uc.Update(ctx, "serum", &entity.ProductPatch{ImageFile: pngUpload()})
		require.NoError(t, err)
		assert.Equal(t, f.images.uri, p.Image)
	})

	t.Run("explicit uri replaces image", func(t *testing.T) {
		f := newCatalogFixture(t, true)
		p, err := f.uc.Update(ctx, "serum", &entity.ProductPatch{Image: str("https://cdn.example.test/serum.jpg")})
		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example.test/serum.jpg", p.Image)
		assert.Equal(t, 0, f.images.calls)
	})

	t.Run("failed upload keeps previous image under skip", func(t *testing.T) {
		f := newCatalogFixture(t, true)
		f.images.err = errors.Encoding("not an image", nil)
		p, err := f.uc.Update(ctx, "serum", &entity.ProductPatch{Price: price(101), ImageFile: pngUpload()})
		require.NoError(t, err)
		assert.Equal(t, "/assets/product-serum.jpg", p.Image)
		assert.Equal(t, 101.0, p.Price)
	})
}

func TestUpdateMissingProduct(t *testing.T) {
	f := newCatalogFixture(t, true)

	_, err := f.uc.Update(context.Background(), "nope", &entity.ProductPatch{Price: price(1)})
	assert.True(t, errors.Is(err, errors.CodeNotFound))

	f.images.uri = "https://cdn.example.test/product-photos/nope_1"
	_, err = f.uc.Update(context.Background(), "nope", &entity.ProductPatch{ImageFile: pngUpload()})
	assert.True(t, errors.Is(err, errors.CodeNotFound))
	assert.Equal(t, []string{"https://cdn.example.test/product-photos/nope_1"}, f.images.discarded)

	_, err = f.uc.Update(context.Background(), "serum", &entity.ProductPatch{Name: str("  ")})
	assert.True(t, errors.Is(err, errors.CodeValidation))
}

func TestDelete(t *testing.T) {
	f := newCatalogFixture(t, true)
	ctx := context.Background()
	before := f.stored(t)

	ok, err := f.uc.Delete(ctx, "nope")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, before, f.stored(t))

	ok, err = f.uc.Delete(ctx, "cream")
	require.NoError(t, err)
	assert.True(t, ok)

	products, err := f.uc.AdminList(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 2)

	_, err = f.uc.Get(ctx, "cream")
	assert.True(t, errors.Is(err, errors.CodeNotFound))
}

func TestReplacedAndDeletedPhotosAreReleased(t *testing.T) {
	ctx := context.Background()

	t.Run("update with a new photo releases the old one", func(t *testing.T) {
		f := newCatalogFixture(t, true)
		f.images.uri = "https://cdn.example.test/product-photos/serum_1"

		_, err := f.uc.Update(ctx, "serum", &entity.ProductPatch{ImageFile: pngUpload()})
		require.NoError(t, err)
		assert.Equal(t, []string{"/assets/product-serum.jpg"}, f.images.discarded)
	})

	t.Run("update that keeps the photo releases nothing", func(t *testing.T) {
		f := newCatalogFixture(t, true)

		_, err := f.uc.Update(ctx, "serum", &entity.ProductPatch{Price: price(5)})
		require.NoError(t, err)
		assert.Empty(t, f.images.discarded)
	})

	t.Run("delete releases the photo", func(t *testing.T) {
		f := newCatalogFixture(t, true)

		ok, err := f.uc.Delete(ctx, "cream")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, []string{"/assets/product-cream.jpg"}, f.images.discarded)
	})

	t.Run("photo still used by a remote row is kept", func(t *testing.T) {
		f := newCatalogFixture(t, true)
		f.bridge.configured = true
		f.bridge.rows = []*entity.Product{{ID: "cream", Name: "Crème", Description: "x", Image: "/assets/product-cream.jpg"}}

		_, err := f.uc.Delete(ctx, "cream")
		require.NoError(t, err)
		assert.Empty(t, f.images.discarded)
	})

	t.Run("unreadable remote keeps the photo", func(t *testing.T) {
		f := newCatalogFixture(t, true)
		f.bridge.configured = true
		f.bridge.fetchErr = errors.RemoteRead("timeout", nil)

		_, err := f.uc.Delete(ctx, "cream")
		require.NoError(t, err)
		assert.Empty(t, f.images.discarded)
	})
}

func TestCreateDiscardsPhotoWhenIDIsTakenDuringUpload(t *testing.T) {
	f := newCatalogFixture(t, true)
	ctx := context.Background()

	f.images.uri = "https://cdn.example.test/product-photos/gloss_1"
	racing := &racingMaterializer{inner: f.images, race: func() {
		_, err := f.uc.local.SaveAll(ctx, []*entity.Product{{ID: "gloss", Name: "Gloss", Description: "x", Image: entity.PlaceholderImageURL}}, "")
		require.NoError(t, err)
	}}
	f.uc.images = racing

	_, err := f.uc.Create(ctx, &entity.ProductDraft{Name: "Gloss", Price: price(49), Description: "Brillant", ImageFile: pngUpload()})
	assert.True(t, errors.Is(err, errors.CodeConflict))
	assert.Equal(t, []string{"https://cdn.example.test/product-photos/gloss_1"}, f.images.discarded)
}

func TestResetToDefaultIsIdempotent(t *testing.T) {
	f := newCatalogFixture(t, true)
	ctx := context.Background()

	_, err := f.uc.Delete(ctx, "serum")
	require.NoError(t, err)

	first, err := f.uc.ResetToDefault(ctx)
	require.NoError(t, err)
	firstRaw := f.stored(t)

	second, err := f.uc.ResetToDefault(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, firstRaw, f.stored(t))
	assert.Len(t, second, 3)
}

func TestMigrateToRemote(t *testing.T) {
	ctx := context.Background()

	t.Run("empty catalog makes no network call", func(t *testing.T) {
		f := newCatalogFixture(t, false)
		f.bridge.configured = true

		_, err := f.uc.MigrateToRemote(ctx)
		assert.True(t, errors.Is(err, errors.CodeEmptyCatalog))
		assert.Equal(t, 0, f.bridge.pushCalls)
		assert.Equal(t, 0, f.bridge.fetchCalls)
	})

	t.Run("unconfigured", func(t *testing.T) {
		f := newCatalogFixture(t, true)

		_, err := f.uc.MigrateToRemote(ctx)
		assert.True(t, errors.Is(err, errors.CodeRemoteUnavailable))
		assert.Equal(t, 0, f.bridge.pushCalls)
	})

	t.Run("local catalog is replaced by remote rows", func(t *testing.T) {
		f := newCatalogFixture(t, true)
		f.bridge.configured = true

		rows, err := f.uc.MigrateToRemote(ctx)
		require.NoError(t, err)
		assert.Len(t, rows, 3)

		local, err := f.uc.AdminList(ctx)
		require.NoError(t, err)
		assert.Equal(t, rows, local)
	})

	t.Run("push failure leaves local state unchanged", func(t *testing.T) {
		f := newCatalogFixture(t, true)
		f.bridge.configured = true
		f.bridge.pushErr = errors.RemoteWrite("rejected", nil)
		before := f.stored(t)

		_, err := f.uc.MigrateToRemote(ctx)
		assert.True(t, errors.Is(err, errors.CodeRemoteWrite))
		assert.Equal(t, before, f.stored(t))
	})
}

func TestImportFromRemote(t *testing.T) {
	ctx := context.Background()

	t.Run("unconfigured leaves local untouched", func(t *testing.T) {
		f := newCatalogFixture(t, true)
		before := f.stored(t)

		_, err := f.uc.ImportFromRemote(ctx)
		assert.True(t, errors.Is(err, errors.CodeRemoteUnavailable))
		assert.Equal(t, before, f.stored(t))
	})

	t.Run("remote empty", func(t *testing.T) {
		f := newCatalogFixture(t, true)
		f.bridge.configured = true

		_, err := f.uc.ImportFromRemote(ctx)
		assert.True(t, errors.Is(err, errors.CodeRemoteEmpty))
	})

	t.Run("remote rows replace local catalog", func(t *testing.T) {
		f := newCatalogFixture(t, true)
		f.bridge.configured = true
		f.bridge.rows = []*entity.Product{{ID: "gloss", Name: "Gloss", Price: 49, Description: "Brillant", Image: entity.PlaceholderImageURL}}

		rows, err := f.uc.ImportFromRemote(ctx)
		require.NoError(t, err)
		require.Len(t, rows, 1)

		local, err := f.uc.AdminList(ctx)
		require.NoError(t, err)
		require.Len(t, local, 1)
		assert.Equal(t, "gloss", local[0].ID)
	})
}

func TestCreateLoadsCatalogAfterMaterialization(t *testing.T) {
	f := newCatalogFixture(t, true)
	ctx := context.Background()

	// a write landing during the upload is seen by the load that follows it
	f.images.uri = "https://cdn.example.test/gloss.png"
	racing := &racingMaterializer{inner: f.images, race: func() {
		require.NoError(t, f.kv.Set(ctx, adapterrepo.CatalogKey, []byte("[]")))
	}}
	f.uc.images = racing

	_, err := f.uc.Create(ctx, &entity.ProductDraft{Name: "Gloss", Price: price(49), Description: "Brillant", ImageFile: pngUpload()})
	require.NoError(t, err)

	products, err := f.uc.AdminList(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "gloss", products[0].ID)
}

type racingMaterializer struct {
	inner *fakeMaterializer
	race  func()
}

func (m *racingMaterializer) Materialize(ctx context.Context, productID string, upload *entity.ImageUpload) (string, error) {
	m.race()
	return m.inner.Materialize(ctx, productID, upload)
}

func (m *racingMaterializer) Discard(ctx context.Context, uri string) error {
	return m.inner.Discard(ctx, uri)
}
