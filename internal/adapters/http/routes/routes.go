package routes

import (
	"customerhub/internal/adapters/http/handlers"
	"customerhub/internal/adapters/http/middleware"
	"customerhub/internal/adapters/persistence/repositories"
	"customerhub/internal/config"
	"customerhub/internal/core/services"
	"customerhub/internal/pkg/token"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	customerRepo := repositories.NewCustomerRepository(db)
	roleRepo := repositories.NewRoleRepository(db)

	// Initialize services
	tokens := token.NewService(cfg.JWT.Secret, cfg.JWT.ExpirationMillis)
	customerService := services.NewCustomerService(customerRepo, roleRepo, tokens)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(customerService)
	customerHandler := handlers.NewCustomerHandler(customerService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Bearer-token resolution runs once for every request below,
	// before any role checks.
	app.Use(middleware.Authenticate(tokens, customerRepo))

	// Auth routes (public, stricter rate limit)
	authRoutes := app.Group("/auth", middleware.AuthRateLimiter())
	authRoutes.Post("/register", authHandler.Register)
	authRoutes.Post("/login", authHandler.Login)

	// Customer routes
	customerRoutes := app.Group("/customer")

	// Public aggregate reads
	customerRoutes.Get("/averageAge", customerHandler.AverageAge)
	customerRoutes.Get("/between18And40", customerHandler.Between18And40)

	// Admin-only management
	adminRoutes := customerRoutes.Group("", middleware.AdminOnly())
	adminRoutes.Get("/", customerHandler.List)
	adminRoutes.Put("/", customerHandler.Edit)
	adminRoutes.Get("/:id", customerHandler.GetByID)
	adminRoutes.Delete("/:id", customerHandler.Delete)
}
