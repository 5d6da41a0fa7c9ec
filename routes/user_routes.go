package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/souqna/souqna_backend/controllers"
	"github.com/souqna/souqna_backend/middleware"
)

// RegisterUserRoutes sets up the profile and favorites routes
func RegisterUserRoutes(e *echo.Echo, db *mongo.Database) {
	userController := controllers.NewUserController(db)

	users := e.Group("/api/users")
	users.Use(middleware.JWTMiddleware())
	users.Use(middleware.ActivityTracker(db))

	users.GET("/me", userController.GetProfile)
	users.PUT("/me", userController.UpdateProfile)
	users.POST("/me/profile-picture", userController.UploadProfilePicture)

	users.GET("/me/favorites", userController.GetFavorites)
	users.POST("/me/favorites/:listingId", userController.AddFavorite)
	users.DELETE("/me/favorites/:listingId", userController.RemoveFavorite)
}
