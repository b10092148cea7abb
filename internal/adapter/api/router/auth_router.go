package router

import (
	"github.com/labstack/echo/v4"

	"oumybeauty/internal/adapter/api/handler"
	"oumybeauty/internal/adapter/api/middleware"
	"oumybeauty/internal/infrastructure/ratelimit"
)

func SetupAuthRouter(e *echo.Echo, loginLimiter *ratelimit.KeyedLimiter) {
	authHandler := handler.GetAuthHandler()

	e.POST("/v1/admin/login", authHandler.Login, middleware.RateLimit(loginLimiter))
	e.POST("/v1/admin/logout", authHandler.Logout)
	e.GET("/v1/admin/session", authHandler.Session)
}
