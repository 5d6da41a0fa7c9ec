package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/souqna/souqna_backend/controllers"
	"github.com/souqna/souqna_backend/middleware"
	"github.com/souqna/souqna_backend/repositories"
)

// RegisterListingRoutes sets up the public feed and the seller routes
func RegisterListingRoutes(e *echo.Echo, db *mongo.Database, repo *repositories.ListingRepository,
	categoryRepo *repositories.CategoryRepository, locationRepo *repositories.LocationRepository) {
	listingController := controllers.NewListingController(db, repo, categoryRepo, locationRepo)

	// Public routes
	listings := e.Group("/api/listings")
	listings.GET("", listingController.GetListings)
	listings.GET("/:id", listingController.GetListing)
	listings.GET("/:id/qr", listingController.GetShareQR)

	// Seller routes
	protected := e.Group("/api/listings")
	protected.Use(middleware.JWTMiddleware())
	protected.Use(middleware.ActivityTracker(db))
	protected.POST("", listingController.CreateListing)
	protected.GET("/mine", listingController.GetMyListings)
	protected.PUT("/:id", listingController.UpdateListing)
	protected.DELETE("/:id", listingController.DeleteListing)
	protected.POST("/:id/media", listingController.UploadListingMedia)
	protected.POST("/:id/sold", listingController.MarkSold)
	protected.POST("/report", listingController.ReportListing)
}
