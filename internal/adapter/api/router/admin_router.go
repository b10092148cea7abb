package router

import (
	"github.com/labstack/echo/v4"

	"oumybeauty/internal/adapter/api/handler"
	"oumybeauty/internal/adapter/api/middleware"
)

func SetupAdminRouter(e *echo.Echo, adminMiddleware *middleware.AdminMiddleware) {
	adminHandler := handler.GetAdminHandler()

	admin := e.Group("/v1/admin/products")
	admin.Use(adminMiddleware.AdminOnly)

	admin.GET("", adminHandler.ListProducts)
	admin.POST("", adminHandler.CreateProduct)
	admin.PUT("/:id", adminHandler.UpdateProduct)
	admin.PATCH("/:id", adminHandler.UpdateProduct)
	admin.DELETE("/:id", adminHandler.DeleteProduct)

	admin.POST("/reset", adminHandler.ResetCatalog)
	admin.POST("/fix-images", adminHandler.FixImages)
	admin.POST("/migrate", adminHandler.MigrateToRemote)
	admin.POST("/import", adminHandler.ImportFromRemote)
}
