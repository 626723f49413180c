package routes

import (
	"time"

	"vetcare-api/internal/adapters/http/handlers"
	"vetcare-api/internal/adapters/http/middleware"
	"vetcare-api/internal/adapters/persistence/repositories"
	"vetcare-api/internal/config"
	"vetcare-api/internal/core/services"
	"vetcare-api/internal/pkg/jwt"
	"vetcare-api/internal/pkg/password"
	"vetcare-api/internal/pkg/validator"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Deps is everything the router needs from main
type Deps struct {
	DB     *gorm.DB
	Config *config.Config
	Log    zerolog.Logger
	Tokens *jwt.Manager
	Hasher *password.Hasher
	// Storage backs the rate limiters; nil keeps them in memory
	Storage fiber.Storage
}

// Setup configures all routes for the application
func Setup(app *fiber.App, deps Deps) {
	cfg := deps.Config

	// Initialize repositories
	userRepo := repositories.NewUserRepository(deps.DB)
	petRepo := repositories.NewPetRepository(deps.DB)
	apptRepo := repositories.NewAppointmentRepository(deps.DB)
	waitRepo := repositories.NewWaitingListRepository(deps.DB)

	// Initialize services
	authService := services.NewAuthService(userRepo, deps.Hasher, deps.Tokens, deps.Log)
	userService := services.NewUserService(userRepo)
	petService := services.NewPetService(petRepo, deps.Log)
	apptService := services.NewAppointmentService(apptRepo, petRepo, deps.Log)
	waitService := services.NewWaitingListService(waitRepo, petRepo, deps.Log)
	dashboardService := services.NewDashboardService(userRepo, petRepo, apptRepo, waitRepo)

	// Initialize handlers
	validate := validator.New()
	healthHandler := handlers.NewHealthHandler(deps.DB, cfg, deps.Log)
	authHandler := handlers.NewAuthHandler(authService, userService, validate)
	userHandler := handlers.NewUserHandler(userService)
	petHandler := handlers.NewPetHandler(petService, validate)
	apptHandler := handlers.NewAppointmentHandler(apptService, validate)
	waitHandler := handlers.NewWaitingListHandler(waitService, validate)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	receptionHandler := handlers.NewReceptionHandler(apptService, waitService)
	vetHandler := handlers.NewVetHandler(apptService)

	// Root, metrics & docs
	app.Get("/", healthHandler.Root)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Get("/swagger/*", middleware.CacheControl(time.Hour), swagger.HandlerDefault)

	api := app.Group("/api", middleware.NoStore(), middleware.RequestTimeout(cfg.Database.QueryTimeout))

	// Health
	api.Get("/health", healthHandler.HealthCheck)
	api.Get("/health/ready", healthHandler.Ready)

	auth := middleware.AuthMiddleware(deps.Tokens)

	// Auth routes
	authRoutes := api.Group("/auth")
	setupAuthRoutes(authRoutes, authHandler, auth, middleware.AuthRateLimiter(cfg.Security.AuthRateLimitMax, deps.Storage))

	// User management routes (Admin only)
	userRoutes := api.Group("/users", auth, middleware.AdminOnly())
	userRoutes.Get("/", userHandler.ListUsers)

	// Client resources, always scoped to the caller
	petRoutes := api.Group("/pets", auth)
	setupPetRoutes(petRoutes, petHandler)

	apptRoutes := api.Group("/appointments", auth)
	setupAppointmentRoutes(apptRoutes, apptHandler)

	waitRoutes := api.Group("/waiting-list", auth)
	setupWaitingListRoutes(waitRoutes, waitHandler)

	// Dashboard routes
	dashboardRoutes := api.Group("/dashboard", auth)
	dashboardRoutes.Get("/", dashboardHandler.GetDashboard)
	dashboardRoutes.Get("/admin", middleware.AdminOnly(), dashboardHandler.GetAdminDashboard)

	// Staff routes
	receptionRoutes := api.Group("/reception", auth, middleware.StaffOnly())
	setupReceptionRoutes(receptionRoutes, receptionHandler)

	vetRoutes := api.Group("/vet", auth, middleware.VetOrAdmin())
	vetRoutes.Get("/appointments", vetHandler.Upcoming)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, auth, limiter fiber.Handler) {
	// Public routes
	router.Post("/register", limiter, handler.Register)
	router.Post("/login", limiter, handler.Login)
	router.Post("/reset-password", limiter, handler.ResetPassword)

	// Protected routes
	router.Get("/me", auth, handler.Me)
}

// setupPetRoutes configures pet routes
func setupPetRoutes(router fiber.Router, handler *handlers.PetHandler) {
	router.Get("/", handler.List)
	router.Post("/", handler.Create)
	router.Get("/:id", handler.Get)
	router.Put("/:id", handler.Update)
	router.Delete("/:id", handler.Delete)
}

// setupAppointmentRoutes configures appointment routes
func setupAppointmentRoutes(router fiber.Router, handler *handlers.AppointmentHandler) {
	router.Get("/", handler.List)
	router.Post("/", handler.Create)
	router.Get("/pet/:id", handler.ListForPet)
	router.Patch("/:id", handler.Update)
	router.Patch("/:id/cancel", handler.Cancel)
	router.Patch("/:id/complete", handler.Complete)
}

// setupWaitingListRoutes configures waiting list routes
func setupWaitingListRoutes(router fiber.Router, handler *handlers.WaitingListHandler) {
	router.Get("/", handler.List)
	router.Post("/", handler.Create)
	router.Delete("/:id", handler.Delete)
}

// setupReceptionRoutes configures front desk routes (Reception/Admin)
func setupReceptionRoutes(router fiber.Router, handler *handlers.ReceptionHandler) {
	router.Get("/appointments", handler.Agenda)
	router.Patch("/appointments/:id/confirm", handler.Confirm)
	router.Get("/waiting-list", handler.WaitingList)
}
