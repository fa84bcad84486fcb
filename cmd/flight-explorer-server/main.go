package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/citypairs/flight-explorer/internal/api/http"
	"github.com/citypairs/flight-explorer/internal/config"
	"github.com/citypairs/flight-explorer/internal/dataset"
	"github.com/citypairs/flight-explorer/internal/flights"
	"github.com/citypairs/flight-explorer/internal/scheduler"
	"github.com/citypairs/flight-explorer/internal/store"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// In-memory store with configured retention.
	memStore := store.NewMemoryStore(cfg.StoreMaxHistory)

	// Dataset source: local CSV export, or HTTP download with resilience.
	var source flights.Source
	if cfg.DatasetURL != "" {
		source = dataset.NewHTTPSource(cfg.DatasetURL, cfg.HTTPTimeout)
	} else {
		source = dataset.NewFileSource(cfg.DatasetPath)
	}

	// Core service answering queries over the store.
	service := flights.NewService(memStore, cfg.PairDirection)

	// The dataset must be usable before serving; a missing or malformed
	// file is fatal at startup.
	if err := service.Reload(context.Background(), source); err != nil {
		log.Fatalf("failed to load dataset: %v", err)
	}

	// Optional scheduled reloads.
	sched := scheduler.New(source, cfg.RefreshInterval, service)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "flight-explorer",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          30 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		res := fiber.Map{
			"status":  "ok",
			"service": "flight-explorer",
		}
		if ds, err := service.Dataset(); err == nil {
			res["dataset"] = ds
			res["records"] = len(ds.Records)
			res["cities"] = len(ds.Cities)
		}
		return c.JSON(res)
	})

	// API routes.
	httpapi.RegisterRoutes(app, service)

	// Start server with graceful shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
