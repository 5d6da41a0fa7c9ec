package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/souqna/souqna_backend/controllers"
	"github.com/souqna/souqna_backend/middleware"
	"github.com/souqna/souqna_backend/repositories"
	"github.com/souqna/souqna_backend/websocket"
)

// RegisterMessageRoutes sets up the buyer-seller messaging routes
func RegisterMessageRoutes(e *echo.Echo, db *mongo.Database, listingRepo *repositories.ListingRepository, hub *websocket.Hub) {
	messageController := controllers.NewMessageController(db, listingRepo, hub)

	messages := e.Group("/api/conversations")
	messages.Use(middleware.JWTMiddleware())
	messages.Use(middleware.ActivityTracker(db))

	messages.GET("", messageController.GetConversations)
	messages.POST("", messageController.SendMessage)
	messages.GET("/:id/messages", messageController.GetMessages)
	messages.POST("/:id/messages", messageController.SendConversationMessage)
}
