package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hiredeck-utils/internal/api/routes"
	"hiredeck-utils/internal/apply"
	"hiredeck-utils/internal/config"
	"hiredeck-utils/internal/diag"
	"hiredeck-utils/internal/logging"
	"hiredeck-utils/internal/scraper"
	"hiredeck-utils/internal/session"
	"hiredeck-utils/pkg/utils"

	"github.com/labstack/echo/v4"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("configs/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logging before anything that logs
	if err := logging.InitializeLogging(cfg); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	defer logging.CloseLogging()

	logger := logging.GetGlobalLogger()
	logger.Info("Starting HireDeck portal automation service")

	// Feed snapshot cache; the service runs without it if Redis is down
	var redisClient *utils.RedisClient
	if cfg.Redis.URL != "" {
		redisClient = utils.NewRedisClient(cfg)
		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(pingCtx); err != nil {
			logger.Warn("Redis unreachable, feed caching disabled", map[string]interface{}{
				"error": err.Error(),
			})
			redisClient = nil
		}
		cancel()
	}

	snapshotter := diag.NewFileSnapshotter(cfg)
	sessions := session.NewManager(cfg, snapshotter)
	engine := scraper.NewEngine(cfg)
	machine := apply.NewMachine(cfg)

	// Initialize Echo
	e := echo.New()
	e.HideBanner = true

	// Setup routes
	routes.SetupRoutes(e, cfg, sessions, engine, machine, redisClient, snapshotter)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		logger.Info("Terminating active sessions...")
		sessions.Shutdown()

		if redisClient != nil {
			if err := redisClient.Close(); err != nil {
				logger.Error("Error closing Redis client", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}

		logger.Info("Stopping HTTP server...")
		if err := e.Shutdown(shutdownCtx); err != nil {
			logger.Error("Error shutting down server", map[string]interface{}{
				"error": err.Error(),
			})
		}

		logger.Info("Server shutdown complete")
	}()

	// Start server
	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", map[string]interface{}{"address": address})

	if err := e.Start(address); err != nil && err != http.ErrServerClosed {
		logger.Fatal("Server failed to start", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
