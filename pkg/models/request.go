package models

// LoginRequest carries the credentials for opening a new portal session.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ListJobsRequest asks for a bounded feed extraction run.
type ListJobsRequest struct {
	SessionID   string `json:"session_id" validate:"required"`
	MaxJobs     int    `json:"max_jobs" validate:"omitempty,min=1,max=500"`
	ScrollPages int    `json:"scroll_pages" validate:"omitempty,min=1,max=50"`
}

// JobDetailsRequest identifies a single job either by absolute URL or by the
// portal job id (resolved against the configured base origin).
type JobDetailsRequest struct {
	SessionID string `json:"session_id" validate:"required"`
	JobURL    string `json:"job_url" validate:"omitempty,url"`
	JobID     string `json:"job_id,omitempty"`
}

// ApplyRequest starts the application flow for one job.
type ApplyRequest struct {
	SessionID string `json:"session_id" validate:"required"`
	JobURL    string `json:"job_url" validate:"required,url"`
}

// FillFormRequest supplies answers for a pre-submission question form.
type FillFormRequest struct {
	SessionID string   `json:"session_id" validate:"required"`
	JobURL    string   `json:"job_url" validate:"required,url"`
	Answers   []string `json:"form_answers" validate:"required,min=1,dive,required"`
}

// SaveJobRequest asks to bookmark a job for later.
type SaveJobRequest struct {
	SessionID string `json:"session_id" validate:"required"`
	JobURL    string `json:"job_url" validate:"required,url"`
}

// CachedJobsRequest asks for the session's last cached feed run.
type CachedJobsRequest struct {
	SessionID string `json:"session_id" validate:"required"`
}

// LogoutRequest tears down a session.
type LogoutRequest struct {
	SessionID string `json:"session_id" validate:"required"`
}

// DebugPageRequest asks for an inspection of the session's current page.
type DebugPageRequest struct {
	SessionID string `json:"session_id" validate:"required"`
}
