package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestSelectiveTimeoutAppliesLongTimeoutToAutomationPaths(t *testing.T) {
	e := echo.New()
	e.Use(SelectiveTimeoutConfig(50*time.Millisecond, time.Second))

	slow := func(c echo.Context) error {
		time.Sleep(200 * time.Millisecond)
		return c.String(http.StatusOK, "ok")
	}
	e.GET("/status", slow)
	e.POST("/api/v1/jobs", slow)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/jobs", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
