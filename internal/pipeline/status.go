package pipeline

import "time"

// Status is the lifecycle state of an analysis run.
type Status string

const (
	StatusNotStarted           Status = "not_started"
	StatusProcessing           Status = "processing"
	StatusCompleted            Status = "completed"
	StatusCompletedWithWarning Status = "completed_with_warning"
	StatusFailed               Status = "failed"
)

// IsTerminal reports whether no further transitions follow s within a run.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusCompletedWithWarning, StatusFailed:
		return true
	default:
		return false
	}
}

// Run identifies one analysis request.
type Run struct {
	SessionID string
	UserID    string
	VideoPath string
	StartedAt time.Time
}

// Outcome tags how a stage ended.
type Outcome string

const (
	OutcomeOK      Outcome = "ok"
	OutcomeSkipped Outcome = "skipped"
	OutcomeFailed  Outcome = "failed"
)

// StageResult records one stage's outcome. Reason is empty for OutcomeOK.
type StageResult struct {
	Name    string  `json:"name"`
	Outcome Outcome `json:"outcome"`
	Reason  string  `json:"reason,omitempty"`
}
