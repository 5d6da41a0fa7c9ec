package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/souqna/souqna_backend/controllers"
	"github.com/souqna/souqna_backend/middleware"
	"github.com/souqna/souqna_backend/repositories"
	"github.com/souqna/souqna_backend/services"
)

// RegisterAIRoutes sets up the generative helper endpoints
func RegisterAIRoutes(e *echo.Echo, ai *services.AIService, listingRepo *repositories.ListingRepository) {
	aiController := controllers.NewAIController(ai, listingRepo)

	group := e.Group("/api/ai")
	group.Use(middleware.JWTMiddleware())

	group.POST("/analyze-image", aiController.AnalyzeImage)
	group.POST("/recommendations", aiController.GetRecommendations)
}
