package router

import (
	"github.com/labstack/echo/v4"

	"bookswap/internal/adapter/api/handler"
	"bookswap/internal/adapter/api/middleware"
)

func Setup(e *echo.Echo, handlers *handler.Handlers, authMiddleware *middleware.AuthMiddleware, loginLimiter middleware.Limiter) {
	SetupListingRouter(e, handlers.Listing, handlers.Feed, authMiddleware)
	SetupSessionRouter(e, handlers.Session, authMiddleware, loginLimiter)
	SetupAccountRouter(e, handlers.Account, authMiddleware)
	SetupHealthRouter(e, handlers.Health)
}
