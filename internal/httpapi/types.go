package httpapi

import (
	"time"

	"presentcoach/internal/pipeline"
)

// StartRequest is the body of POST /api/sessions/{sessionID}/analysis.
type StartRequest struct {
	VideoPath string `json:"videoPath"`
	UserID    string `json:"userId"`
}

// StartResponse acknowledges an accepted analysis run.
type StartResponse struct {
	SessionID   string          `json:"session_id"`
	Status      pipeline.Status `json:"status"`
	ProgressURL string          `json:"progress_url"`
	StreamURL   string          `json:"stream_url"`
}

// ProgressResponse describes the current state of a session's run.
type ProgressResponse struct {
	SessionID       string          `json:"session_id"`
	Status          pipeline.Status `json:"status"`
	ProgressPercent int             `json:"progress_percent"`
	Message         string          `json:"message"`
	Error           string          `json:"error,omitempty"`
	TooShort        bool            `json:"too_short,omitempty"`
	UpdatedAt       *time.Time      `json:"updated_at,omitempty"`
	// Source is "live" for mirror reads and "stored" for store fallbacks.
	Source string `json:"source"`
}

// ReportResponse wraps a persisted report with its run status.
type ReportResponse struct {
	SessionID   string           `json:"session_id"`
	Status      pipeline.Status  `json:"status"`
	Error       string           `json:"error,omitempty"`
	TooShort    bool             `json:"too_short,omitempty"`
	CompletedAt *time.Time       `json:"completed_at,omitempty"`
	Report      *pipeline.Report `json:"report,omitempty"`
}

// HealthResponse reports server and database health.
type HealthResponse struct {
	Status    string    `json:"status"`
	Database  string    `json:"database"`
	Timestamp time.Time `json:"timestamp"`
}

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error    string `json:"error"`
	TooShort bool   `json:"too_short,omitempty"`
}
