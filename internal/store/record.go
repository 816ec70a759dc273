package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"presentcoach/internal/pipeline"
)

// Record is one persisted analysis run.
type Record struct {
	SessionID       string
	UserID          string
	VideoPath       string
	Status          pipeline.Status
	ProgressPercent int
	ProgressMessage string
	ErrorMessage    string
	TooShort        bool
	ReportJSON      json.RawMessage
	StartedAt       time.Time
	UpdatedAt       time.Time
	CompletedAt     *time.Time
}

// HasReport reports whether a report is stored for the run.
func (r *Record) HasReport() bool {
	return r != nil && len(r.ReportJSON) > 0
}

// Report decodes the stored report.
func (r *Record) Report() (pipeline.Report, error) {
	if !r.HasReport() {
		return pipeline.Report{}, errors.New("no report stored")
	}
	var report pipeline.Report
	if err := json.Unmarshal(r.ReportJSON, &report); err != nil {
		return pipeline.Report{}, fmt.Errorf("decode report: %w", err)
	}
	return report, nil
}

const recordColumns = "session_id, user_id, video_path, status, progress_percent, progress_message, error_message, too_short, report_json, started_at, updated_at, completed_at"

func scanRecord(scanner interface{ Scan(dest ...any) error }) (*Record, error) {
	var (
		sessionID       string
		userID          sql.NullString
		videoPath       string
		statusStr       string
		progressPercent sql.NullInt64
		progressMessage sql.NullString
		errorMessage    sql.NullString
		tooShort        sql.NullInt64
		reportJSON      sql.NullString
		startedRaw      sql.NullString
		updatedRaw      sql.NullString
		completedRaw    sql.NullString
	)
	if err := scanner.Scan(
		&sessionID,
		&userID,
		&videoPath,
		&statusStr,
		&progressPercent,
		&progressMessage,
		&errorMessage,
		&tooShort,
		&reportJSON,
		&startedRaw,
		&updatedRaw,
		&completedRaw,
	); err != nil {
		return nil, err
	}

	rec := &Record{
		SessionID:       sessionID,
		UserID:          userID.String,
		VideoPath:       videoPath,
		Status:          pipeline.Status(statusStr),
		ProgressPercent: int(progressPercent.Int64),
		ProgressMessage: progressMessage.String,
		ErrorMessage:    errorMessage.String,
		TooShort:        tooShort.Valid && tooShort.Int64 != 0,
	}
	if reportJSON.Valid && reportJSON.String != "" {
		rec.ReportJSON = json.RawMessage(reportJSON.String)
	}
	if started, err := parseTimeString(startedRaw.String); err == nil {
		rec.StartedAt = started
	}
	if updated, err := parseTimeString(updatedRaw.String); err == nil {
		rec.UpdatedAt = updated
	}
	if completedRaw.Valid {
		if completed, err := parseTimeString(completedRaw.String); err == nil {
			rec.CompletedAt = &completed
		}
	}
	return rec, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}

// timeLayout is fixed width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}
