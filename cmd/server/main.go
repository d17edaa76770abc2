package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"customerhub/internal/adapters/http/middleware"
	"customerhub/internal/adapters/http/routes"
	"customerhub/internal/adapters/persistence/models"
	"customerhub/internal/adapters/persistence/repositories"
	"customerhub/internal/config"
	"customerhub/internal/core/services"

	"github.com/gofiber/fiber/v2"

	_ "customerhub/docs" // Swagger docs
)

// @title CustomerHub API
// @version 1.0
// @description Customer account management with JWT bearer authentication.

// @host localhost:3000
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	// Seed role reference data and optional bootstrap admin
	if err := config.SeedRoles(db); err != nil {
		log.Fatalf("❌ Failed to seed roles: %v", err)
	}
	if err := config.SeedAdmin(db); err != nil {
		log.Printf("⚠️ Warning: Failed to seed admin account: %v", err)
	}

	// Start daily stats summary job
	statsService := services.NewStatsService(repositories.NewCustomerRepository(db))
	statsService.Start()
	defer statsService.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "CustomerHub API v1.0",
		ErrorHandler: middleware.ErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes
	routes.Setup(app, db, cfg)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
