package routes

import (
	"garagehub/internal/adapters/http/handlers"
	"garagehub/internal/adapters/http/middleware"
	"garagehub/internal/adapters/persistence/repositories"
	"garagehub/internal/config"
	"garagehub/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	sessionRepo := repositories.NewSessionRepository(db)
	customerRepo := repositories.NewCustomerRepository(db)
	vehicleRepo := repositories.NewVehicleRepository(db)
	jobRepo := repositories.NewJobRepository(db)

	// Initialize services
	sessionService := services.NewSessionService(sessionRepo)
	authService := services.NewAuthService(userRepo, sessionService)
	userService := services.NewUserService(userRepo, sessionService)
	jobService := services.NewJobService(jobRepo, vehicleRepo, customerRepo, userRepo)
	customerService := services.NewCustomerService(customerRepo, vehicleRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, sessionService, cfg)
	userHandler := handlers.NewUserHandler(userService)
	jobHandler := handlers.NewJobHandler(jobService)
	customerHandler := handlers.NewCustomerHandler(customerService)
	mechanicHandler := handlers.NewMechanicHandler(jobService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API group
	api := app.Group("/api")
	api.Get("/", healthHandler.APIInfo)

	requireSession := middleware.SessionMiddleware(sessionService)

	// Auth routes (public, stricter rate limit, never cached)
	authRoutes := api.Group("/auth", middleware.NoCacheHeaders())
	setupAuthRoutes(authRoutes, authHandler, requireSession)

	// Job routes (authenticated)
	jobRoutes := api.Group("/jobs")
	jobRoutes.Use(requireSession)
	setupJobRoutes(jobRoutes, jobHandler)

	// Mechanic routes (authenticated)
	mechanicRoutes := api.Group("/mechanic")
	mechanicRoutes.Use(requireSession)
	mechanicRoutes.Get("/jobs", mechanicHandler.Jobs)

	// Customer routes (authenticated)
	customerRoutes := api.Group("/customer")
	customerRoutes.Use(requireSession)
	setupCustomerRoutes(customerRoutes, customerHandler)

	// User management routes (admin only)
	userRoutes := api.Group("/users")
	userRoutes.Use(requireSession)
	userRoutes.Use(middleware.AdminOnly())
	setupUserRoutes(userRoutes, userHandler)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, requireSession fiber.Handler) {
	// Public routes, rate limited against credential stuffing
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/register", middleware.AuthRateLimiter(), handler.Register)
	router.Post("/logout", handler.Logout)
	router.Get("/session", handler.Session)

	// Protected routes
	router.Get("/sessions", requireSession, handler.Sessions)
	router.Post("/logout-all", requireSession, handler.LogoutAll)
}

// setupJobRoutes configures work order routes
func setupJobRoutes(router fiber.Router, handler *handlers.JobHandler) {
	router.Get("/", handler.List)
	router.Post("/", handler.Create)

	// Bulk archive is an office action
	router.Post("/archive", middleware.AdminOnly(), handler.Archive)

	router.Get("/:id", handler.Get)
	router.Put("/:id", handler.Update)
	router.Delete("/:id", handler.Delete)
}

// setupCustomerRoutes configures customer and vehicle routes
func setupCustomerRoutes(router fiber.Router, handler *handlers.CustomerHandler) {
	router.Get("/", handler.List)
	router.Post("/", handler.Create)
	router.Get("/vehicles", handler.Vehicles)
	router.Post("/vehicles", handler.CreateVehicle)
}

// setupUserRoutes configures user management routes (admin only)
func setupUserRoutes(router fiber.Router, handler *handlers.UserHandler) {
	router.Get("/", handler.List)
	router.Get("/:id", handler.Get)
	router.Put("/:id", handler.Update)
	router.Put("/:id/password", handler.UpdatePassword)
	router.Delete("/:id", handler.Delete)
}
