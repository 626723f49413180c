package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vetcare-api/internal/adapters/cache"
	"vetcare-api/internal/adapters/http/middleware"
	"vetcare-api/internal/adapters/http/routes"
	"vetcare-api/internal/adapters/persistence/models"
	"vetcare-api/internal/config"
	"vetcare-api/internal/pkg/jwt"
	"vetcare-api/internal/pkg/logger"
	"vetcare-api/internal/pkg/password"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	_ "vetcare-api/docs" // Swagger docs
)

// @title VetCare API
// @version 1.0
// @description Veterinary clinic API: accounts, pets, appointments and the waiting list.

// @contact.name API Support

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

const shutdownTimeout = 10 * time.Second

func main() {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load(ctx)
	if err != nil {
		// Logger isn't configured yet
		boot := logger.Init(logger.Options{})
		boot.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})
	for _, w := range cfg.Warnings {
		log.Warn().Msg(w)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer func() {
		if err := config.CloseDatabase(db); err != nil {
			log.Error().Err(err).Msg("failed to close database")
		}
	}()

	if err := models.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to auto migrate")
	}
	log.Info().Msg("database migration completed")

	hasher := password.NewHasher(cfg.Security.BcryptCost)
	tokens, err := jwt.NewManager(cfg.JWT.Secret)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create token manager")
	}

	if err := config.NewSeeder(db, hasher, cfg.Seed, log).Run(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to seed admin account")
	}

	// Rate limiter state is shared through Redis when configured
	var storage fiber.Storage
	if cfg.Redis.Addr != "" {
		client, err := cache.Connect(ctx, cache.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("failed to connect to redis")
		}
		redisStorage := cache.NewRedisStorage(client)
		defer redisStorage.Close()
		storage = redisStorage
		log.Info().Str("addr", cfg.Redis.Addr).Msg("rate limiter backed by redis")
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "VetCare API v1.0",
		ErrorHandler: middleware.NewErrorHandler(log),
	})

	middleware.Setup(app, cfg, log, storage)

	routes.Setup(app, routes.Deps{
		DB:      db,
		Config:  cfg,
		Log:     log,
		Tokens:  tokens,
		Hasher:  hasher,
		Storage: storage,
	})

	go gracefulShutdown(app, log)

	log.Info().Str("port", cfg.Port).Str("mode", cfg.AppMode).Msg("server starting")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}

// gracefulShutdown stops accepting connections on SIGINT/SIGTERM and lets
// in-flight requests finish
func gracefulShutdown(app *fiber.App, log zerolog.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		log.Error().Err(err).Msg("error during shutdown")
	}
	log.Info().Msg("server stopped")
}
