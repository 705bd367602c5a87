package handlers

import (
	"errors"
	"net/http"
	"time"

	"hiredeck-utils/pkg/models"
	"hiredeck-utils/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

var validate = validator.New()

// requestID returns the id the validation middleware attached, generating
// one for requests that bypassed it.
func requestID(c echo.Context) string {
	if id, ok := c.Get("request_id").(string); ok && id != "" {
		return id
	}
	return utils.GenerateRequestID()
}

// bindAndValidate decodes the request body into req and runs the struct
// validators. A non-nil return has already written the error response.
func bindAndValidate(c echo.Context, req interface{}) error {
	reqID := requestID(c)

	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:     "invalid_request",
			Message:   "Invalid request format",
			RequestID: reqID,
			Timestamp: time.Now(),
		})
	}

	if err := validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:     utils.KindValidation,
			Message:   err.Error(),
			RequestID: reqID,
			Timestamp: time.Now(),
		})
	}

	return nil
}

// respondError maps an error to the wire shape. CustomErrors carry their own
// status code and kind; anything else is a generic automation failure.
func respondError(c echo.Context, err error) error {
	return respondErrorWithDebug(c, err, nil)
}

func respondErrorWithDebug(c echo.Context, err error, debug *models.DebugInfo) error {
	reqID := requestID(c)

	var ce *utils.CustomError
	if errors.As(err, &ce) {
		if debug == nil && ce.CurrentURL != "" {
			debug = &models.DebugInfo{CurrentURL: ce.CurrentURL}
		}
		return c.JSON(ce.Code, models.ErrorResponse{
			Error:     ce.Kind,
			Message:   ce.Message,
			RequestID: reqID,
			Timestamp: time.Now(),
			Debug:     debug,
		})
	}

	return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Error:     utils.KindAutomation,
		Message:   err.Error(),
		RequestID: reqID,
		Timestamp: time.Now(),
		Debug:     debug,
	})
}
