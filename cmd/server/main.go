package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"github.com/wortquiz/progression/data"
	"github.com/wortquiz/progression/internal/catalog"
	"github.com/wortquiz/progression/internal/config"
	"github.com/wortquiz/progression/internal/database"
	"github.com/wortquiz/progression/internal/handlers"
	"github.com/wortquiz/progression/internal/middleware"
	"github.com/wortquiz/progression/internal/types"

	_ "github.com/wortquiz/progression/docs/api" // Swagger docs
)

// @title WortQuiz Progression API
// @version 1.0.0
// @description Progression and ranking engine for the WortQuiz vocabulary game

// @host localhost:3000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name cookie_session

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Load the word catalog once; it is immutable for the process lifetime
	cat, err := loadCatalog(cfg)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}
	log.Printf("Loaded catalog with %d categories", cat.Len())

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("wortquiz_progression")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API routes under /api
	api := app.Group("/api")

	// Version middleware
	api.Use(middleware.VersionMiddleware())

	// Create handlers
	healthHandler := &handlers.HealthHandler{Config: cfg, DB: db, Catalog: cat}
	playerHandler := &handlers.PlayerHandler{DB: db, Catalog: cat}
	submissionHandler := &handlers.SubmissionHandler{DB: db, Catalog: cat}
	leaderboardHandler := &handlers.LeaderboardHandler{DB: db, Catalog: cat}

	api.Get("/health", healthHandler.Check)

	// Player routes
	api.Post("/players", playerHandler.Register)
	api.Get("/players/:id", middleware.AuthUser(cfg), playerHandler.Profile)
	api.Get("/players/:id/rank", playerHandler.Rank)
	api.Delete("/players/:id/scores", middleware.AuthUser(cfg), playerHandler.ClearScores)
	api.Post("/players/:id/failures", middleware.AuthUser(cfg), playerHandler.RecordFailure)
	api.Get("/players/:id/failures", middleware.AuthUser(cfg), playerHandler.ListFailures)
	api.Delete("/players/:id/failures", middleware.AuthUser(cfg), playerHandler.ClearFailures)

	// Progression routes
	api.Post("/submissions", middleware.AuthUser(cfg), submissionHandler.Create)

	// Leaderboard routes
	api.Post("/leaderboard", middleware.AuthUser(cfg), leaderboardHandler.Submit)
	api.Get("/leaderboard/:category", leaderboardHandler.Category)
	api.Get("/ranking", leaderboardHandler.Ranking)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":    fiber.StatusNotFound,
			"message":   "[404] Resource Not Found",
			"ok":        false,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"url":       c.OriginalURL(),
		})
	})

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	port := cfg.Port
	log.Printf("Starting server on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Println("Server stopped")
}

// loadCatalog reads word lists from CATALOG_DIR, falling back to the
// embedded seed catalog.
func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	if cfg.CatalogDir != "" {
		return catalog.Load(os.DirFS(cfg.CatalogDir), ".", cfg.CatalogDefaultLevel)
	}
	return catalog.Load(data.CatalogFS, data.CatalogDir, cfg.CatalogDefaultLevel)
}

// customErrorHandler handles errors globally
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()
	errorType := "unknown"

	// Check if it's a Fiber error
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Middleware errors carry their own status and type
	if e, ok := err.(*types.CustomError); ok {
		code = e.Code
		message = e.Message
		errorType = e.Type
	}

	// Check for conflict errors from the submission workflow
	conflictError := false
	if code == fiber.StatusConflict || (len(message) >= 10 && message[:10] == "E_CONFLICT") {
		conflictError = true
		errorType = "conflict"
		code = fiber.StatusConflict
	}

	return c.Status(code).JSON(fiber.Map{
		"status":        code,
		"message":       message,
		"ok":            false,
		"conflictError": conflictError,
		"timestamp":     time.Now().UTC().Format(time.RFC3339),
		"url":           c.OriginalURL(),
		"type":          errorType,
	})
}
