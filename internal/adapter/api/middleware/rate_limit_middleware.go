package middleware

import (
	"math"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"bookswap/pkg/errors"
	"bookswap/pkg/logger"
	"bookswap/pkg/response"
)

type Limiter interface {
	Allow(key string) (bool, time.Duration)
}

// RateLimit throttles requests per client IP.
func RateLimit(limiter Limiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()

			allowed, wait := limiter.Allow(ip)
			if !allowed {
				logger.Warn("Rate limit exceeded for %s on %s", ip, c.Path())
				c.Response().Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
				return response.Error(c, errors.TooManyRequests("Too many requests, try again later"))
			}

			return next(c)
		}
	}
}
