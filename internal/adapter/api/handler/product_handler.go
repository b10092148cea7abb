package handler

import (
	"strings"

	"github.com/labstack/echo/v4"

	"oumybeauty/internal/domain/entity"
	"oumybeauty/internal/usecase"
	"oumybeauty/pkg/response"
	"oumybeauty/pkg/utils"
)

// ProductHandler serves the storefront reads.
type ProductHandler struct {
	catalogUseCase *usecase.CatalogUseCase
}

func NewProductHandler(catalogUseCase *usecase.CatalogUseCase) *ProductHandler {
	return &ProductHandler{
		catalogUseCase: catalogUseCase,
	}
}

func (h *ProductHandler) ListProducts(c echo.Context) error {
	products, err := h.catalogUseCase.ListAll(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}

	if category := strings.TrimSpace(c.QueryParam("category")); category != "" {
		filtered := make([]*entity.Product, 0, len(products))
		for _, p := range products {
			if strings.EqualFold(p.Category, category) {
				filtered = append(filtered, p)
			}
		}
		products = filtered
	}

	pagination := utils.GetPaginationParams(c)
	start, end := pagination.Bounds(len(products))

	return response.Paginated(c, products[start:end], int64(len(products)), pagination.Page, pagination.PageSize)
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	product, err := h.catalogUseCase.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, product)
}
