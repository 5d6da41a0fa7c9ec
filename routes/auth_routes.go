package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/souqna/souqna_backend/controllers"
	"github.com/souqna/souqna_backend/middleware"
)

// RegisterAuthRoutes sets up all authentication routes
func RegisterAuthRoutes(e *echo.Echo, db *mongo.Client, redisClient *redis.Client) {
	authController := controllers.NewAuthController(db, redisClient)

	auth := e.Group("/api/auth")

	// Public routes
	auth.POST("/signup", authController.Signup)
	auth.POST("/login", authController.Login)
	auth.POST("/login/remember", authController.LoginWithRememberToken)
	auth.POST("/google", authController.GoogleSignIn)
	auth.POST("/refresh", authController.RefreshToken)
	auth.POST("/forgot-password", authController.ForgotPassword)
	auth.POST("/reset-password", authController.ResetPassword)

	// Protected routes
	protected := e.Group("/api/auth")
	protected.Use(middleware.JWTMiddleware())
	protected.POST("/logout", authController.Logout)
	protected.POST("/change-password", authController.ChangePassword)
}
