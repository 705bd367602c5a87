package models

import "time"

// LoginResponse is returned after a confirmed-authenticated login.
type LoginResponse struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

// JobsResponse carries the deduplicated feed extraction result together with
// the ladder step that produced it.
type JobsResponse struct {
	Jobs   []JobSummary `json:"jobs"`
	Count  int          `json:"count"`
	Method string       `json:"method"`
}

// JobDetailsResponse wraps a single extracted JobDetail.
type JobDetailsResponse struct {
	JobDetails *JobDetail `json:"job_details"`
	Status     string     `json:"status"`
	URL        string     `json:"url"`
}

// ApplyResponse is the terminal shape of both the apply and fill-form
// operations. FormQuestions is only present for status form_present,
// ReviewData only when a review screen was reached.
type ApplyResponse struct {
	Status        string          `json:"status"`
	Message       string          `json:"message"`
	CurrentURL    string          `json:"current_url"`
	FormQuestions []string        `json:"form_questions,omitempty"`
	ReviewData    *ReviewSnapshot `json:"review_data,omitempty"`
}

// SaveJobResponse reports the outcome of a save attempt.
type SaveJobResponse struct {
	Status     string `json:"status"`
	Message    string `json:"message"`
	CurrentURL string `json:"current_url"`
}

// AckResponse is a bare acknowledgement message.
type AckResponse struct {
	Message string `json:"message"`
}

// DebugInfo carries the navigation context attached to extraction failures so
// callers can tell "site navigated somewhere unexpected" from "content absent".
type DebugInfo struct {
	CurrentURL string `json:"current_url"`
	PageTitle  string `json:"page_title"`
	Screenshot string `json:"screenshot_saved,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error     string     `json:"error"`
	Message   string     `json:"message"`
	RequestID string     `json:"request_id"`
	Timestamp time.Time  `json:"timestamp"`
	Debug     *DebugInfo `json:"debug_info,omitempty"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Uptime    time.Duration     `json:"uptime"`
	Checks    map[string]string `json:"checks,omitempty"`
}
