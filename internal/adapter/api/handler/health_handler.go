package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"oumybeauty/internal/usecase"
)

type HealthHandler struct {
	catalogUseCase *usecase.CatalogUseCase
}

func NewHealthHandler(catalogUseCase *usecase.CatalogUseCase) *HealthHandler {
	return &HealthHandler{
		catalogUseCase: catalogUseCase,
	}
}

func (h *HealthHandler) CheckHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "Server is running",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// CheckRemoteHealth reports whether the remote catalog is wired. Not being
// configured is a valid local-only mode, not a failure.
func (h *HealthHandler) CheckRemoteHealth(c echo.Context) error {
	if !h.catalogUseCase.RemoteConfigured() {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"configured": false,
			"status":     "Remote catalog not configured, running local-only",
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"configured": true,
		"status":     "Remote catalog configured",
	})
}
