package handler

import (
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"

	"oumybeauty/internal/domain/entity"
	"oumybeauty/internal/usecase"
	"oumybeauty/pkg/errors"
	"oumybeauty/pkg/response"
)

// AdminHandler exposes the catalog writes behind the admin flag.
type AdminHandler struct {
	catalogUseCase *usecase.CatalogUseCase
}

func NewAdminHandler(catalogUseCase *usecase.CatalogUseCase) *AdminHandler {
	return &AdminHandler{
		catalogUseCase: catalogUseCase,
	}
}

func (h *AdminHandler) ListProducts(c echo.Context) error {
	products, err := h.catalogUseCase.AdminList(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, products)
}

func (h *AdminHandler) CreateProduct(c echo.Context) error {
	var draft entity.ProductDraft

	if isMultipart(c) {
		if err := draftFromForm(c, &draft); err != nil {
			return response.Error(c, err)
		}
		upload, closer, err := imageFromForm(c)
		if err != nil {
			return response.Error(c, err)
		}
		if closer != nil {
			defer closer.Close()
		}
		draft.ImageFile = upload
	} else if err := c.Bind(&draft); err != nil {
		return response.Error(c, errors.BadRequest("Invalid product payload", err))
	}

	product, err := h.catalogUseCase.Create(c.Request().Context(), &draft)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, product)
}

func (h *AdminHandler) UpdateProduct(c echo.Context) error {
	id := c.Param("id")
	var patch entity.ProductPatch

	if isMultipart(c) {
		if err := patchFromForm(c, &patch); err != nil {
			return response.Error(c, err)
		}
		upload, closer, err := imageFromForm(c)
		if err != nil {
			return response.Error(c, err)
		}
		if closer != nil {
			defer closer.Close()
		}
		patch.ImageFile = upload
	} else if err := c.Bind(&patch); err != nil {
		return response.Error(c, errors.BadRequest("Invalid product payload", err))
	}

	product, err := h.catalogUseCase.Update(c.Request().Context(), id, &patch)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, product)
}

func (h *AdminHandler) DeleteProduct(c echo.Context) error {
	id := c.Param("id")

	deleted, err := h.catalogUseCase.Delete(c.Request().Context(), id)
	if err != nil {
		return response.Error(c, err)
	}
	if !deleted {
		return response.Error(c, errors.NotFound("Product", nil))
	}

	return response.Success(c, map[string]interface{}{
		"id":      id,
		"deleted": true,
	})
}

func (h *AdminHandler) ResetCatalog(c echo.Context) error {
	products, err := h.catalogUseCase.ResetToDefault(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, products)
}

func (h *AdminHandler) FixImages(c echo.Context) error {
	fixed, products, err := h.catalogUseCase.FixImages(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"fixed":    fixed,
		"products": products,
	})
}

func (h *AdminHandler) MigrateToRemote(c echo.Context) error {
	products, err := h.catalogUseCase.MigrateToRemote(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, products)
}

func (h *AdminHandler) ImportFromRemote(c echo.Context) error {
	products, err := h.catalogUseCase.ImportFromRemote(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, products)
}

func isMultipart(c echo.Context) bool {
	return strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm)
}

// formValue reports whether the field was sent at all, so an update can tell
// "unchanged" from "cleared".
func formValue(c echo.Context, name string) (string, bool) {
	form, err := c.MultipartForm()
	if err != nil {
		return "", false
	}
	values, ok := form.Value[name]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[0], true
}

func parsePrice(raw string) (*float64, error) {
	price, err := cast.ToFloat64E(strings.TrimSpace(raw))
	if err != nil {
		return nil, errors.Validation("price must be a finite number")
	}
	return &price, nil
}

func parseStock(raw string) (*int, error) {
	stock, err := cast.ToIntE(strings.TrimSpace(raw))
	if err != nil {
		return nil, errors.Validation("stock must be a whole number")
	}
	return &stock, nil
}

func draftFromForm(c echo.Context, draft *entity.ProductDraft) error {
	draft.ID = c.FormValue("id")
	draft.Name = c.FormValue("name")
	draft.Description = c.FormValue("description")
	draft.Category = c.FormValue("category")
	draft.Image = c.FormValue("image")

	if raw, ok := formValue(c, "price"); ok && strings.TrimSpace(raw) != "" {
		price, err := parsePrice(raw)
		if err != nil {
			return err
		}
		draft.Price = price
	}
	if raw, ok := formValue(c, "stock"); ok && strings.TrimSpace(raw) != "" {
		stock, err := parseStock(raw)
		if err != nil {
			return err
		}
		draft.Stock = stock
	}
	return nil
}

func patchFromForm(c echo.Context, patch *entity.ProductPatch) error {
	if v, ok := formValue(c, "name"); ok {
		patch.Name = &v
	}
	if v, ok := formValue(c, "description"); ok {
		patch.Description = &v
	}
	if v, ok := formValue(c, "category"); ok {
		patch.Category = &v
	}
	if v, ok := formValue(c, "image"); ok {
		patch.Image = &v
	}
	if v, ok := formValue(c, "price"); ok {
		price, err := parsePrice(v)
		if err != nil {
			return err
		}
		patch.Price = price
	}
	if v, ok := formValue(c, "stock"); ok {
		stock, err := parseStock(v)
		if err != nil {
			return err
		}
		patch.Stock = stock
	}
	return nil
}

// imageFromForm returns a nil upload when no "image" file part was sent.
func imageFromForm(c echo.Context) (*entity.ImageUpload, multipart.File, error) {
	fh, err := c.FormFile("image")
	if err == http.ErrMissingFile {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, errors.BadRequest("Invalid image upload", err)
	}

	file, err := fh.Open()
	if err != nil {
		return nil, nil, errors.Encoding("Unable to read image upload", err)
	}

	return &entity.ImageUpload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(echo.HeaderContentType),
		Size:        fh.Size,
		Reader:      file,
	}, file, nil
}
