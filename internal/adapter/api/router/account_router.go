package router

import (
	"github.com/labstack/echo/v4"

	"bookswap/internal/adapter/api/handler"
	"bookswap/internal/adapter/api/middleware"
)

func SetupAccountRouter(e *echo.Echo, accountHandler *handler.AccountHandler, authMiddleware *middleware.AuthMiddleware) {
	protected := e.Group("/protected")
	protected.Use(authMiddleware.Authenticate)
	protected.GET("", accountHandler.GetProfile)
	protected.PATCH("", accountHandler.UpdateAccount)
	protected.DELETE("", accountHandler.DeleteAccount)

	e.GET("/sessionUser", accountHandler.GetSessionUser, authMiddleware.Authenticate)
}
