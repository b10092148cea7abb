package router

import (
	"github.com/labstack/echo/v4"

	"oumybeauty/internal/adapter/api/middleware"
	"oumybeauty/internal/infrastructure/ratelimit"
)

func Setup(e *echo.Echo, adminMiddleware *middleware.AdminMiddleware, loginLimiter *ratelimit.KeyedLimiter) {
	SetupProductRouter(e)
	SetupAdminRouter(e, adminMiddleware)
	SetupAuthRouter(e, loginLimiter)
	SetupCheckoutRouter(e)
	SetupSiteRouter(e)
	SetupHealthRouter(e)
}
