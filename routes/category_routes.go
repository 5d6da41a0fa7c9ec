package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"

	"github.com/souqna/souqna_backend/controllers"
	"github.com/souqna/souqna_backend/middleware"
	"github.com/souqna/souqna_backend/repositories"
)

// RegisterCategoryRoutes sets up all category-related routes
func RegisterCategoryRoutes(e *echo.Echo, repo *repositories.CategoryRepository, redisClient *redis.Client) {
	categoryController := controllers.NewCategoryController(repo, redisClient)

	// Public routes (no auth required)
	categories := e.Group("/api/categories")
	categories.GET("", categoryController.GetCategories)

	// Admin protected routes
	adminCategories := e.Group("/api/admin/categories")
	adminCategories.Use(middleware.JWTMiddleware())
	adminCategories.Use(middleware.RequireUserType("admin", "super_admin"))

	adminCategories.POST("", categoryController.CreateCategory)
	adminCategories.POST("/move", categoryController.MoveCategory)
	adminCategories.POST("/:id/subcategories", categoryController.CreateSubcategory)
	adminCategories.DELETE("/:id", categoryController.DeleteCategory)
	adminCategories.DELETE("/:id/subcategories/:subId", categoryController.DeleteSubcategory)
}
