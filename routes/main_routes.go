package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/souqna/souqna_backend/config"
	"github.com/souqna/souqna_backend/repositories"
	"github.com/souqna/souqna_backend/services"
	"github.com/souqna/souqna_backend/websocket"
)

// SetupRoutes configures all API routes by calling individual route
// registration functions
func SetupRoutes(e *echo.Echo, db *mongo.Client, redisClient *redis.Client, hub *websocket.Hub, ai *services.AIService,
	categoryRepo *repositories.CategoryRepository, locationRepo *repositories.LocationRepository, listingRepo *repositories.ListingRepository) {

	database := db.Database(config.DatabaseName())

	RegisterAuthRoutes(e, db, redisClient)
	RegisterUserRoutes(e, database)
	RegisterCategoryRoutes(e, categoryRepo, redisClient)
	RegisterLocationRoutes(e, locationRepo, redisClient)
	RegisterListingRoutes(e, database, listingRepo, categoryRepo, locationRepo)
	RegisterMessageRoutes(e, database, listingRepo, hub)
	RegisterAdminRoutes(e, database, listingRepo, hub)
	RegisterAIRoutes(e, ai, listingRepo)

	// Clients connect anonymously and upgrade with an AUTH message
	e.GET("/ws", func(c echo.Context) error {
		return websocket.HandleWebSocket(c, hub, primitive.NilObjectID)
	})
}
