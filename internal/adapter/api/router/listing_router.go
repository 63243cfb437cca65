package router

import (
	"github.com/labstack/echo/v4"

	"bookswap/internal/adapter/api/handler"
	"bookswap/internal/adapter/api/middleware"
)

func SetupListingRouter(e *echo.Echo, listingHandler *handler.ListingHandler, feedHandler *handler.FeedHandler, authMiddleware *middleware.AuthMiddleware) {
	books := e.Group("/books")
	books.GET("", listingHandler.ListListings)
	books.POST("", listingHandler.CreateListing, authMiddleware.Authenticate)

	// Static segments before /:id.
	books.GET("/user", listingHandler.ListMyListings, authMiddleware.Authenticate)
	if feedHandler != nil {
		books.GET("/live", feedHandler.Live)
	}

	books.GET("/:id", listingHandler.GetListing, authMiddleware.Optional)
	books.PATCH("/:id", listingHandler.UpdateListing, authMiddleware.Authenticate)
	books.DELETE("/:id", listingHandler.DeleteListing, authMiddleware.Authenticate)
}
