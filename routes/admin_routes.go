package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/souqna/souqna_backend/controllers"
	"github.com/souqna/souqna_backend/middleware"
	"github.com/souqna/souqna_backend/repositories"
	"github.com/souqna/souqna_backend/websocket"
)

// RegisterAdminRoutes sets up the moderation routes
func RegisterAdminRoutes(e *echo.Echo, db *mongo.Database, listingRepo *repositories.ListingRepository, hub *websocket.Hub) {
	adminController := controllers.NewAdminController(db, listingRepo, hub)

	admin := e.Group("/api/admin")
	admin.Use(middleware.JWTMiddleware())
	admin.Use(middleware.RequireUserType("admin", "super_admin"))
	admin.Use(middleware.ActivityTracker(db))

	admin.GET("/listings/pending", adminController.GetPendingListings)
	admin.POST("/listings/:id/approve", adminController.ApproveListing)
	admin.POST("/listings/:id/reject", adminController.RejectListing)

	admin.GET("/reports", adminController.GetReports)
	admin.POST("/reports/:id/resolve", adminController.ResolveReport)

	admin.GET("/users", adminController.GetUsers)
	admin.POST("/users/:id/ban", adminController.BanUser)
	admin.POST("/users/:id/unban", adminController.UnbanUser)
}
