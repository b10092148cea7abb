package router

import (
	"github.com/labstack/echo/v4"

	"oumybeauty/internal/adapter/api/handler"
)

func SetupCheckoutRouter(e *echo.Echo) {
	e.POST("/v1/checkout", handler.GetCheckoutHandler().Checkout)
}

func SetupSiteRouter(e *echo.Echo) {
	e.GET("/v1/site", handler.GetSiteHandler().GetSite)
}
