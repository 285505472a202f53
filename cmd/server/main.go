package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/C1oudyBawi/Group2DevOps-AungBawi/internal/config"
	"github.com/C1oudyBawi/Group2DevOps-AungBawi/internal/database"
	"github.com/C1oudyBawi/Group2DevOps-AungBawi/internal/logger"
	"github.com/C1oudyBawi/Group2DevOps-AungBawi/internal/middleware"
	"github.com/C1oudyBawi/Group2DevOps-AungBawi/internal/routes"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer appLogger.Sync()

	// 2. Open the store
	db, err := database.Open(cfg.DatabasePath, appLogger)
	if err != nil {
		if errors.Is(err, database.ErrCorruptStore) {
			appLogger.Fatal("store file is unreadable, refusing to start", zap.String("path", cfg.DatabasePath), zap.Error(err))
		}
		appLogger.Fatal("failed to open store", zap.Error(err))
	}

	// 3. Setup Fiber
	app := fiber.New(fiber.Config{DisableStartupMessage: true})

	// Middleware
	app.Use(cors.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.RequestLogger(appLogger))
	app.Use(recover.New())

	// Routes
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := routes.RegisterRoutes(ctx, app, cfg, db, appLogger); err != nil {
		appLogger.Fatal("failed to register routes", zap.Error(err))
	}

	// 4. Start Server
	go func() {
		appLogger.Info("server starting",
			zap.String("port", cfg.Port),
			zap.String("env", cfg.AppEnv),
			zap.String("store", db.Path()),
		)
		if err := app.Listen(":" + cfg.Port); err != nil {
			appLogger.Fatal("server failed to start", zap.Error(err))
		}
	}()

	<-ctx.Done()

	appLogger.Info("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		appLogger.Error("server shutdown failed", zap.Error(err))
	}
}
