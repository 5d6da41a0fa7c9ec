package main

import (
	"context"
	"log"
	"mime"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/souqna/souqna_backend/config"
	"github.com/souqna/souqna_backend/middleware"
	"github.com/souqna/souqna_backend/repositories"
	"github.com/souqna/souqna_backend/routes"
	"github.com/souqna/souqna_backend/services"
	"github.com/souqna/souqna_backend/utils"
	"github.com/souqna/souqna_backend/websocket"
)

// CustomValidator is a custom validator for Echo
type CustomValidator struct {
	validator *validator.Validate
}

// Validate validates the request body
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func main() {
	// Load .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found")
	}

	_ = mime.AddExtensionType(".svg", "image/svg+xml")

	// Initialize Firebase (push notifications are skipped when unconfigured)
	config.InitFirebase()

	// Connect to Redis
	redisClient := config.ConnectRedis()

	// Connect to database
	client := config.ConnectDB()
	database := client.Database(config.DatabaseName())

	// Create WebSocket hub
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Repositories share one referential guard over the listings collection
	guard := repositories.NewReferentialGuard(database)
	categoryRepo := repositories.NewCategoryRepository(database, guard)
	locationRepo := repositories.NewLocationRepository(database, guard)
	listingRepo := repositories.NewListingRepository(database)

	// Taxonomy live view: change streams feed full snapshots to the hub
	watcherCtx, stopWatcher := context.WithCancel(context.Background())
	defer stopWatcher()
	watcher := services.NewTaxonomyWatcher(database, categoryRepo, locationRepo, wsHub, redisClient)
	watcher.Start(watcherCtx)

	// Gemini-backed endpoints answer 503 when the key is missing
	aiService, err := services.NewAIService(os.Getenv("GEMINI_API_KEY"), os.Getenv("GEMINI_MODEL"))
	if err != nil {
		log.Printf("Warning: AI features disabled: %v", err)
		aiService = nil
	}

	// Create a new Echo instance
	e := echo.New()

	customValidator := &CustomValidator{validator: validator.New()}
	e.Validator = customValidator

	rateLimiter := middleware.NewRateLimiter()

	// Middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(middleware.GlobalCORS())
	e.Use(rateLimiter.RateLimit())
	e.Use(middleware.SecurityHeadersWithConfig(middleware.SecurityConfig{
		AllowedDomains: []string{"*"},
		AllowInlineJS:  true,
	}))

	e.Match([]string{"GET", "HEAD"}, "/", func(c echo.Context) error {
		return c.JSON(200, map[string]string{
			"status":  "OK",
			"message": "Souqna Backend is running",
			"version": "1.0",
		})
	})

	e.Match([]string{"GET", "HEAD"}, "/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{
			"status":   "healthy",
			"database": "connected",
		})
	})

	e.Use(httpsRedirect())

	routes.SetupRoutes(e, client, redisClient, wsHub, aiService, categoryRepo, locationRepo, listingRepo)

	// Expired blacklist entries and stale sessions get cleaned in the background
	go middleware.CleanupBlacklist()
	go func() {
		for {
			middleware.MarkInactiveUsers(database, 30*time.Minute)
			time.Sleep(5 * time.Minute)
		}
	}()

	// Ensure uploads directories exist
	if err := utils.InitializeStorage(); err != nil {
		log.Printf("Warning: failed to prepare uploads directories: %v", err)
	}
	e.Static("/uploads", "uploads")

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	e.Logger.Fatal(e.Start(":" + port))
}

func httpsRedirect() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Header.Get("X-Forwarded-Proto") == "http" {
				return c.Redirect(301, "https://"+c.Request().Host+c.Request().RequestURI)
			}
			return next(c)
		}
	}
}
