package handlers

import (
	"context"
	"net/http"

	"hiredeck-utils/internal/logging"
	"hiredeck-utils/internal/session"
	"hiredeck-utils/pkg/models"
	"hiredeck-utils/pkg/utils"

	"github.com/labstack/echo/v4"
)

// LoginHandler opens a fresh browser, drives the portal's login form and
// returns a session id on confirmed authentication.
func LoginHandler(sessions *session.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		logger := logging.GetGlobalLogger()

		var req models.LoginRequest
		if err := bindAndValidate(c, &req); err != nil {
			return err
		}

		logger.Info("Login requested", map[string]interface{}{
			"request_id": requestID(c),
			"identity":   req.Email,
		})

		sess, err := sessions.Login(c.Request().Context(), req.Email, req.Password)
		if err != nil {
			logger.Warn("Login failed", map[string]interface{}{
				"request_id": requestID(c),
				"identity":   req.Email,
				"error":      err.Error(),
			})
			return respondError(c, err)
		}

		return c.JSON(http.StatusOK, models.LoginResponse{
			Message:   "Login successful",
			SessionID: sess.ID,
		})
	}
}

// LogoutHandler destroys a session and drops its cached feed snapshot.
func LogoutHandler(sessions *session.Manager, redisClient *utils.RedisClient) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.LogoutRequest
		if err := bindAndValidate(c, &req); err != nil {
			return err
		}

		if err := sessions.Destroy(req.SessionID); err != nil {
			return respondError(c, err)
		}

		if redisClient != nil {
			// Cache cleanup is best effort; the session itself is gone.
			_ = redisClient.DropSession(context.Background(), req.SessionID)
		}

		return c.JSON(http.StatusOK, models.AckResponse{
			Message: "Logged out successfully",
		})
	}
}
