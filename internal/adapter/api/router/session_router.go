package router

import (
	"github.com/labstack/echo/v4"

	"bookswap/internal/adapter/api/handler"
	"bookswap/internal/adapter/api/middleware"
)

func SetupSessionRouter(e *echo.Echo, sessionHandler *handler.SessionHandler, authMiddleware *middleware.AuthMiddleware, loginLimiter middleware.Limiter) {
	login := []echo.MiddlewareFunc{}
	if loginLimiter != nil {
		login = append(login, middleware.RateLimit(loginLimiter))
	}

	e.POST("/sessionLogin", sessionHandler.Login, login...)
	e.POST("/sessionLogout", sessionHandler.Logout, authMiddleware.Authenticate)
}
