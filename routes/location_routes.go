package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"

	"github.com/souqna/souqna_backend/controllers"
	"github.com/souqna/souqna_backend/middleware"
	"github.com/souqna/souqna_backend/repositories"
)

// RegisterLocationRoutes sets up all location-related routes
func RegisterLocationRoutes(e *echo.Echo, repo *repositories.LocationRepository, redisClient *redis.Client) {
	locationController := controllers.NewLocationController(repo, redisClient)

	// Public routes (no auth required)
	locations := e.Group("/api/locations")
	locations.GET("", locationController.GetLocations)

	// Admin protected routes
	adminLocations := e.Group("/api/admin/locations")
	adminLocations.Use(middleware.JWTMiddleware())
	adminLocations.Use(middleware.RequireUserType("admin", "super_admin"))

	adminLocations.POST("", locationController.CreateCountry)
	adminLocations.POST("/:countryId/governorates", locationController.CreateGovernorate)
	adminLocations.POST("/:countryId/governorates/:governorateId/districts", locationController.CreateDistrict)
	adminLocations.DELETE("/:countryId", locationController.DeleteCountry)
	adminLocations.DELETE("/:countryId/governorates/:governorateId", locationController.DeleteGovernorate)
	adminLocations.DELETE("/:countryId/governorates/:governorateId/districts/:districtId", locationController.DeleteDistrict)
}
