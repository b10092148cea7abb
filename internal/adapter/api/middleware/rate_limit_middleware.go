package middleware

import (
	"math"
	"strconv"

	"github.com/labstack/echo/v4"

	"oumybeauty/internal/infrastructure/ratelimit"
	"oumybeauty/pkg/errors"
	"oumybeauty/pkg/logger"
	"oumybeauty/pkg/response"
)

// RateLimit throttles requests per client IP.
func RateLimit(limiter *ratelimit.KeyedLimiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()

			allowed, wait := limiter.Allow(ip)
			if !allowed {
				logger.Warn("RATE LIMIT: blocked %s %s from %s (retry in %v)", c.Request().Method, c.Path(), ip, wait)
				c.Response().Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
				return response.Error(c, errors.TooManyRequests("Too many attempts, try again later"))
			}

			return next(c)
		}
	}
}
