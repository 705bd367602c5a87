package middleware

import (
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// TimeoutConfig returns timeout middleware configuration
func TimeoutConfig(timeout time.Duration) echo.MiddlewareFunc {
	return middleware.TimeoutWithConfig(middleware.TimeoutConfig{
		Timeout: timeout,
	})
}

// SelectiveTimeoutConfig applies the long timeout to browser automation
// endpoints and the default timeout everywhere else. A paginated feed run
// legitimately spends minutes settling between scrolls.
func SelectiveTimeoutConfig(defaultTimeout, automationTimeout time.Duration) echo.MiddlewareFunc {
	short := middleware.TimeoutWithConfig(middleware.TimeoutConfig{
		Timeout: defaultTimeout,
	})
	long := middleware.TimeoutWithConfig(middleware.TimeoutConfig{
		Timeout: automationTimeout,
	})

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		shortNext := short(next)
		longNext := long(next)
		return func(c echo.Context) error {
			if strings.HasPrefix(c.Path(), "/api/v1/") {
				return longNext(c)
			}
			return shortNext(c)
		}
	}
}
