package routes

import (
	"uni-egresados/internal/adapters/http/handlers"
	"uni-egresados/internal/adapters/http/middleware"
	"uni-egresados/internal/adapters/persistence/repositories"
	"uni-egresados/internal/config"
	"uni-egresados/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	graduateRepo := repositories.NewGraduateRepository(db)
	employmentRepo := repositories.NewEmploymentRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, refreshTokenRepo, graduateRepo, cfg)
	graduateService := services.NewGraduateService(graduateRepo, userRepo)
	employmentService := services.NewEmploymentService(employmentRepo, graduateRepo)
	statsService := services.NewStatsService(db)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	pageHandler := handlers.NewPageHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	graduateHandler := handlers.NewGraduateHandler(graduateService)
	employmentHandler := handlers.NewEmploymentHandler(employmentService)
	statsHandler := handlers.NewStatsHandler(statsService)

	// Route guard runs on every request; API paths pass through and
	// enforce their own authorization below.
	app.Use(middleware.RouteGuard(cfg))

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Page routes (classified by the route guard)
	app.Get(middleware.LoginPath, pageHandler.Login)
	app.Get(middleware.AdminHomePath, pageHandler.Dashboard)
	app.Get("/egresados", pageHandler.Egresados)
	app.Get(middleware.GraduateHomePath, pageHandler.Perfil)
	app.Get(middleware.ChangePasswordPath, pageHandler.CambiarPassword)

	// API group
	api := app.Group("/api")
	setupAuthRoutes(api.Group("/auth"), authHandler, cfg)
	setupGraduateRoutes(api.Group("/egresados"), graduateHandler, cfg)
	setupEmploymentRoutes(api.Group("/empleos"), employmentHandler, cfg)

	// Dashboard stats
	api.Get("/stats", middleware.AuthMiddleware(cfg), statsHandler.GetStats)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, cfg *config.Config) {
	// Public routes, rate limited against brute force
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/refresh", handler.RefreshToken)
	router.Post("/logout", handler.Logout)

	// Protected routes
	router.Get("/me", middleware.AuthMiddleware(cfg), handler.Me)
	router.Post("/cambiar-password", middleware.AuthMiddleware(cfg), handler.CambiarPassword)
}

// setupGraduateRoutes configures graduate record routes. Every route
// requires a session; mutations are admin only.
func setupGraduateRoutes(router fiber.Router, handler *handlers.GraduateHandler, cfg *config.Config) {
	router.Use(middleware.AuthMiddleware(cfg))

	router.Get("/", handler.List)
	router.Get("/:id", handler.GetByID)

	adminRoutes := router.Group("")
	adminRoutes.Use(middleware.AdminOnly())
	adminRoutes.Post("/", handler.Create)
	adminRoutes.Put("/:id", handler.Update)
}

// setupEmploymentRoutes configures employment routes (session required;
// ownership is checked in the handler)
func setupEmploymentRoutes(router fiber.Router, handler *handlers.EmploymentHandler, cfg *config.Config) {
	router.Use(middleware.AuthMiddleware(cfg))
	router.Post("/", handler.Create)
}
