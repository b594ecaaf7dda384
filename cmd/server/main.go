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
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"github.com/joho/godotenv"

	"recipebook-backend/internal/config"
	"recipebook-backend/internal/database"
	"recipebook-backend/internal/handlers"
	"recipebook-backend/internal/middleware"
	"recipebook-backend/internal/types"
	"recipebook-backend/internal/utils"

	_ "recipebook-backend/docs/api" // Swagger docs
)

// @title Recipebook API
// @version 1.0.0
// @description Recipe management service over a single embedded SQLite database

// @contact.name API Support

// @license.name MIT

// @host localhost:3000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	// Load .env if present; real env vars win
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

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

	// Upload directory must exist before the first request
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.Fatalf("Failed to create upload directory: %v", err)
	}

	utils.InitValidator()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
		BodyLimit:    (cfg.MaxUploadSizeMB + 1) * 1024 * 1024,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	app.Use(cors.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("recipebook")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Uploaded photos are served as static files
	app.Static("/uploads", cfg.UploadDir)

	// Create handlers
	authHandler := &handlers.AuthHandler{DB: db, Cfg: cfg}
	recipeHandler := &handlers.RecipeHandler{DB: db}
	cuisineHandler := &handlers.CuisineHandler{DB: db}
	uploadHandler := &handlers.UploadHandler{DB: db, Cfg: cfg}
	healthHandler := &handlers.HealthHandler{DB: db, Cfg: cfg}

	// API routes under /api
	api := app.Group("/api")

	api.Get("/health", healthHandler.Health)

	// Auth routes; login is rate limited
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Minute,
	}), authHandler.Login)
	auth.Get("/profile", middleware.AuthRequired(cfg), authHandler.Profile)

	// Recipe routes (public reads, authenticated writes)
	recipes := api.Group("/recipes")
	recipes.Get("/grouped-by-cuisine", recipeHandler.GroupedByCuisine)
	recipes.Get("/", recipeHandler.ListRecipes)
	recipes.Get("/:id", recipeHandler.GetRecipe)
	recipes.Get("/:id/photos", uploadHandler.ListPhotos)
	recipes.Post("/", middleware.AuthRequired(cfg), recipeHandler.CreateRecipe)
	recipes.Put("/:id", middleware.AuthRequired(cfg), recipeHandler.UpdateRecipe)
	recipes.Delete("/:id", middleware.AuthRequired(cfg), recipeHandler.DeleteRecipe)
	recipes.Post("/:id/photos", middleware.AuthRequired(cfg), uploadHandler.UploadPhoto)

	// Cuisine routes (public reads, authenticated writes)
	cuisines := api.Group("/cuisines")
	cuisines.Get("/", cuisineHandler.ListCuisines)
	cuisines.Get("/:id", cuisineHandler.GetCuisine)
	cuisines.Get("/:id/recipes", cuisineHandler.RecipesByCuisine)
	cuisines.Post("/", middleware.AuthRequired(cfg), cuisineHandler.CreateCuisine)
	cuisines.Put("/:id", middleware.AuthRequired(cfg), cuisineHandler.UpdateCuisine)
	cuisines.Delete("/:id", middleware.AuthRequired(cfg), cuisineHandler.DeleteCuisine)

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

	// Check for application errors carrying their own status
	if e, ok := err.(*types.CustomError); ok {
		code = e.Code
		message = e.Message
		errorType = e.Type
	}

	return c.Status(code).JSON(fiber.Map{
		"status":    code,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      errorType,
	})
}
