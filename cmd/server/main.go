package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/kennethtrancoding/my-first-day-sub000/internal/config"
	"github.com/kennethtrancoding/my-first-day-sub000/internal/logger"
	"github.com/kennethtrancoding/my-first-day-sub000/internal/routes"
	"github.com/kennethtrancoding/my-first-day-sub000/internal/storage"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zlog, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	store, err := storage.OpenSQLite(cfg.DataPath, cfg.StorageNamespace)
	if err != nil {
		zlog.Fatal("Failed to open blob store", zap.Error(err))
	}
	defer func() { _ = store.Close() }()

	go func() {
		for event := range store.Watch() {
			zlog.Debug("blob changed", zap.String("key", event.Key))
		}
	}()

	app := fiber.New()

	app.Use(cors.New())
	app.Use(fiberlogger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})
	if err := routes.RegisterRoutes(app, cfg, store, zlog); err != nil {
		zlog.Fatal("Failed to register routes", zap.Error(err))
	}

	zlog.Info("Server starting", zap.String("port", cfg.Port))
	if err := app.Listen(":" + cfg.Port); err != nil {
		zlog.Fatal("Server failed to start", zap.Error(err))
	}
}
