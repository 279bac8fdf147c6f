package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/example/harvest/internal/config"
	"github.com/example/harvest/internal/database"
	"github.com/example/harvest/internal/handlers"
	"github.com/example/harvest/internal/routes"
	"github.com/example/harvest/internal/utils"
)

func main() {
	cfg := config.Load()

	if err := utils.InitLogger(cfg.IsProduction(), cfg.LogFile); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer utils.SyncLogger()

	if cfg.UsesDefaultSecrets() {
		zap.L().Warn("JWT_SECRET or ADMIN_PASSWORD still has its default value")
	}

	db := database.Connect(cfg.DatabaseURL)

	ctx := context.Background()
	if _, err := database.SeedAdmin(ctx, db, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		zap.L().Fatal("admin bootstrap failed", zap.Error(err))
	}

	deps := routes.DefaultDependencies(db, cfg)
	if _, err := deps.Store.SeedFromFile(ctx, cfg.SeedFile); err != nil {
		zap.L().Error("catalog seed failed", zap.String("file", cfg.SeedFile), zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		AppName:      "Harvest",
		ErrorHandler: handlers.ErrorHandler,
		BodyLimit:    16 * 1024 * 1024,
	})

	app.Use(recover.New())

	routes.Register(app, db, cfg, deps)

	go func() {
		zap.L().Info("starting server", zap.String("port", cfg.AppPort), zap.String("env", cfg.AppEnv))
		if err := app.Listen(":" + cfg.AppPort); err != nil {
			zap.L().Fatal("fiber.Listen error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zap.L().Info("shutting down server")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		zap.L().Error("server forced to shutdown", zap.Error(err))
	}

	if err := database.Close(); err != nil {
		zap.L().Error("failed to close database", zap.Error(err))
	}

	zap.L().Info("server exited")
}
