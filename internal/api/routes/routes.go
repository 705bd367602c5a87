package routes

import (
	"net/http"
	"time"

	"hiredeck-utils/internal/api/handlers"
	"hiredeck-utils/internal/api/middleware"
	"hiredeck-utils/internal/apply"
	"hiredeck-utils/internal/config"
	"hiredeck-utils/internal/diag"
	"hiredeck-utils/internal/scraper"
	"hiredeck-utils/internal/session"
	"hiredeck-utils/pkg/utils"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

// SetupRoutes configures all API routes
func SetupRoutes(e *echo.Echo, cfg *config.Config, sessions *session.Manager, engine *scraper.Engine, machine *apply.Machine, redisClient *utils.RedisClient, snapshotter diag.Snapshotter) {
	// Global middleware
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(middleware.CORSConfig())
	e.Use(middleware.RequestValidation())
	// Automation endpoints drive a real browser through settle delays and
	// pagination; they get a far longer budget than plain routes.
	e.Use(middleware.SelectiveTimeoutConfig(cfg.Server.ReadTimeout, 5*time.Minute))

	// Health check routes
	health := e.Group("/health")
	{
		health.GET("", handlers.HealthHandler)
		health.GET("/ready", handlers.ReadinessHandler(sessions, redisClient))
		health.GET("/live", handlers.LivenessHandler)
	}

	// Status route
	e.GET("/status", handlers.StatusHandler(sessions, redisClient))

	// API v1 routes
	v1 := e.Group("/api/v1")
	{
		v1.POST("/login", handlers.LoginHandler(sessions))
		v1.POST("/logout", handlers.LogoutHandler(sessions, redisClient))

		jobs := v1.Group("/jobs")
		{
			jobs.POST("", handlers.ListJobsHandler(cfg, sessions, engine, redisClient, snapshotter))
			jobs.POST("/cached", handlers.CachedJobsHandler(sessions, redisClient))
			jobs.POST("/details", handlers.JobDetailsHandler(cfg, sessions, engine))
			jobs.POST("/apply", handlers.ApplyJobHandler(sessions, machine))
			jobs.POST("/fill-form", handlers.FillFormHandler(sessions, machine))
			jobs.POST("/save", handlers.SaveJobHandler(sessions, machine))
		}

		v1.POST("/debug/page", handlers.DebugPageHandler(sessions, snapshotter))
	}

	// Root route
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"service": "HireDeck Portal Automation",
			"version": "1.0.0",
			"status":  "running",
		})
	})
}
