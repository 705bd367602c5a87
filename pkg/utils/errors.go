package utils

import (
	"fmt"
	"net/http"
)

// CustomError represents a custom application error
type CustomError struct {
	Code       int    `json:"code"`
	Kind       string `json:"kind"`
	Message    string `json:"message"`
	Detail     string `json:"detail,omitempty"`
	CurrentURL string `json:"current_url,omitempty"`
}

func (e *CustomError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Detail)
	}
	return e.Message
}

// WithURL attaches the page address the browser was on when the error
// surfaced. Returns the error for chaining.
func (e *CustomError) WithURL(url string) *CustomError {
	e.CurrentURL = url
	return e
}

// Error kinds used by the HTTP facade for the machine-readable error field.
const (
	KindAuth        = "auth_failed"
	KindNotFound    = "not_found"
	KindValidation  = "validation_failed"
	KindAutomation  = "automation_failed"
	KindRateLimited = "rate_limited"
	KindCapacity    = "capacity_exceeded"
)

// NewAuthError reports that the login heuristic did not confirm an
// authenticated state. The browser behind the attempt is always terminated.
func NewAuthError(detail string) *CustomError {
	return &CustomError{
		Code:    http.StatusUnauthorized,
		Kind:    KindAuth,
		Message: "Login failed. Check credentials.",
		Detail:  detail,
	}
}

// NewSessionNotFoundError reports an unknown or already-destroyed session id.
func NewSessionNotFoundError(sessionID string) *CustomError {
	return &CustomError{
		Code:    http.StatusNotFound,
		Kind:    KindNotFound,
		Message: "Session not found",
		Detail:  sessionID,
	}
}

// NewExtractionNotFoundError reports that every fallback strategy was
// exhausted without producing a single result. This means "extraction
// failed", never "zero jobs exist".
func NewExtractionNotFoundError(detail string) *CustomError {
	return &CustomError{
		Code:    http.StatusNotFound,
		Kind:    KindNotFound,
		Message: "No job listings found",
		Detail:  detail,
	}
}

func NewValidationError(detail string) *CustomError {
	return &CustomError{
		Code:    http.StatusBadRequest,
		Kind:    KindValidation,
		Message: "Validation failed",
		Detail:  detail,
	}
}

// NewRateLimitedError reports that login attempts for an identity are being
// throttled.
func NewRateLimitedError(identity string) *CustomError {
	return &CustomError{
		Code:    http.StatusTooManyRequests,
		Kind:    KindRateLimited,
		Message: "Too many login attempts. Try again later.",
		Detail:  identity,
	}
}

// NewCapacityError reports that the session table is full.
func NewCapacityError(detail string) *CustomError {
	return &CustomError{
		Code:    http.StatusServiceUnavailable,
		Kind:    KindCapacity,
		Message: "Session capacity reached",
		Detail:  detail,
	}
}

// NewAutomationError reports an underlying browser control failure: crashed
// instance, stale element, closed handle.
func NewAutomationError(detail string) *CustomError {
	return &CustomError{
		Code:    http.StatusInternalServerError,
		Kind:    KindAutomation,
		Message: "Browser automation failed",
		Detail:  detail,
	}
}
