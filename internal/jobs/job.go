package jobs

import (
	"time"

	"presentcoach/internal/pipeline"
)

// Job is the mirror view of one analysis run.
type Job struct {
	SessionID       string          `json:"session_id"`
	UserID          string          `json:"user_id,omitempty"`
	VideoPath       string          `json:"video_path"`
	Status          pipeline.Status `json:"status"`
	ProgressPercent int             `json:"progress_percent"`
	Message         string          `json:"message"`
	Error           string          `json:"error,omitempty"`
	TooShort        bool            `json:"too_short,omitempty"`
	StartedAt       time.Time       `json:"started_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// Terminal reports whether the run has finished.
func (j Job) Terminal() bool {
	return j.Status.IsTerminal()
}

// MessageQueued is shown while a run waits for a free worker slot.
const MessageQueued = "Waiting for an analysis slot"

// MessageStarted is shown once a run is registered.
const MessageStarted = "Analysis started"
