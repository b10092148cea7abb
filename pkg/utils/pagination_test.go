package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestGetPaginationParams(t *testing.T) {
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/v1/products?page=3&limit=2", nil)
	p := GetPaginationParams(e.NewContext(req, httptest.NewRecorder()))
	assert.Equal(t, PaginationParams{Page: 3, PageSize: 2, Offset: 4}, p)

	req = httptest.NewRequest(http.MethodGet, "/v1/products?page=-1&limit=1000", nil)
	p = GetPaginationParams(e.NewContext(req, httptest.NewRecorder()))
	assert.Equal(t, PaginationParams{Page: 1, PageSize: 20, Offset: 0}, p)
}

func TestPageBounds(t *testing.T) {
	p := PaginationParams{Page: 2, PageSize: 2, Offset: 2}
	start, end := p.Bounds(3)
	assert.Equal(t, 2, start)
	assert.Equal(t, 3, end)

	p = PaginationParams{Page: 5, PageSize: 2, Offset: 8}
	start, end = p.Bounds(3)
	assert.Equal(t, 3, start)
	assert.Equal(t, 3, end)
}
