package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"hiredeck-utils/internal/logging"
	"hiredeck-utils/internal/session"
	"hiredeck-utils/pkg/models"
	"hiredeck-utils/pkg/utils"

	"github.com/labstack/echo/v4"
)

var startTime = time.Now()

const serviceVersion = "1.0.0"

// HealthHandler handles health check requests
func HealthHandler(c echo.Context) error {
	logger := logging.GetGlobalLogger()
	logger.Debug("Health check requested", map[string]interface{}{"request_id": requestID(c)})

	response := models.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   serviceVersion,
		Uptime:    time.Since(startTime),
		Checks: map[string]string{
			"api": "ok",
		},
	}

	return c.JSON(http.StatusOK, response)
}

// ReadinessHandler reports whether the service can take traffic: the session
// table has headroom and the cache responds.
func ReadinessHandler(sessions *session.Manager, redisClient *utils.RedisClient) echo.HandlerFunc {
	return func(c echo.Context) error {
		checks := map[string]string{
			"api":      "ok",
			"sessions": fmt.Sprintf("%d active", sessions.Count()),
		}

		status := "ready"
		code := http.StatusOK

		if redisClient != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := redisClient.IsHealthy(ctx); err != nil {
				checks["redis"] = "unreachable"
				status = "degraded"
			} else {
				checks["redis"] = "ok"
			}
		}

		return c.JSON(code, models.HealthResponse{
			Status:    status,
			Timestamp: time.Now(),
			Version:   serviceVersion,
			Uptime:    time.Since(startTime),
			Checks:    checks,
		})
	}
}

// LivenessHandler handles liveness probe requests
func LivenessHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, models.HealthResponse{
		Status:    "alive",
		Timestamp: time.Now(),
		Version:   serviceVersion,
		Uptime:    time.Since(startTime),
	})
}

// StatusHandler provides detailed service status
func StatusHandler(sessions *session.Manager, redisClient *utils.RedisClient) echo.HandlerFunc {
	return func(c echo.Context) error {
		checks := map[string]string{
			"api":             "operational",
			"active_sessions": fmt.Sprintf("%d", sessions.Count()),
		}

		if redisClient != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := redisClient.IsHealthy(ctx); err != nil {
				checks["redis"] = "unreachable"
			} else {
				checks["redis"] = "operational"
			}
		}

		return c.JSON(http.StatusOK, models.HealthResponse{
			Status:    "operational",
			Timestamp: time.Now(),
			Version:   serviceVersion,
			Uptime:    time.Since(startTime),
			Checks:    checks,
		})
	}
}
