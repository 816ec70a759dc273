package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"presentcoach/internal/pipeline"
)

// ErrNotFound is returned by writes that target a session with no run.
var ErrNotFound = errors.New("analysis run not found")

// interruptedMessage is recorded for runs left processing by a previous
// process.
const interruptedMessage = "Analysis interrupted before completion; start it again"

// MarkProcessing registers run as processing at 0%, replacing any earlier run
// and report for the session.
func (s *Store) MarkProcessing(ctx context.Context, run pipeline.Run) error {
	if strings.TrimSpace(run.SessionID) == "" {
		return errors.New("mark processing: session id required")
	}
	started := run.StartedAt
	if started.IsZero() {
		started = s.now()
	}
	now := formatTime(s.now())
	_, err := s.execWithRetry(ctx,
		`INSERT INTO analysis_runs (
            session_id, user_id, video_path, status, progress_percent, progress_message,
            error_message, too_short, report_json, started_at, updated_at, completed_at
        ) VALUES (?, ?, ?, ?, 0, NULL, NULL, 0, NULL, ?, ?, NULL)
        ON CONFLICT(session_id) DO UPDATE SET
            user_id = excluded.user_id,
            video_path = excluded.video_path,
            status = excluded.status,
            progress_percent = 0,
            progress_message = NULL,
            error_message = NULL,
            too_short = 0,
            report_json = NULL,
            started_at = excluded.started_at,
            updated_at = excluded.updated_at,
            completed_at = NULL`,
		run.SessionID,
		nullableString(run.UserID),
		run.VideoPath,
		string(pipeline.StatusProcessing),
		formatTime(started),
		now,
	)
	if err != nil {
		return fmt.Errorf("mark processing: %w", err)
	}
	return nil
}

// UpdateProgress records a checkpoint for a processing run. Progress never
// moves backwards and terminal runs are left untouched.
func (s *Store) UpdateProgress(ctx context.Context, sessionID string, percent int, message string) error {
	percent = min(max(percent, 0), 100)
	_, err := s.execWithRetry(ctx,
		`UPDATE analysis_runs
         SET progress_percent = MAX(progress_percent, ?), progress_message = ?, updated_at = ?
         WHERE session_id = ? AND status = ?`,
		percent,
		nullableString(message),
		formatTime(s.now()),
		sessionID,
		string(pipeline.StatusProcessing),
	)
	if err != nil {
		return fmt.Errorf("update progress: %w", err)
	}
	return nil
}

// SaveReport stores the terminal status and report in one statement.
func (s *Store) SaveReport(ctx context.Context, sessionID string, status pipeline.Status, report pipeline.Report) error {
	if status != pipeline.StatusCompleted && status != pipeline.StatusCompletedWithWarning {
		return fmt.Errorf("save report: status %q is not a completed status", status)
	}
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("save report: encode: %w", err)
	}
	now := formatTime(s.now())
	res, err := s.execWithRetry(ctx,
		`UPDATE analysis_runs
         SET status = ?, progress_percent = 100, progress_message = ?, error_message = NULL,
             too_short = 0, report_json = ?, updated_at = ?, completed_at = ?
         WHERE session_id = ?`,
		string(status),
		pipeline.MessageComplete,
		string(payload),
		now,
		now,
		sessionID,
	)
	if err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	return requireRow(res, "save report", sessionID)
}

// MarkFailed records a failed run and discards any stored report.
func (s *Store) MarkFailed(ctx context.Context, sessionID, message string, tooShort bool) error {
	now := formatTime(s.now())
	res, err := s.execWithRetry(ctx,
		`UPDATE analysis_runs
         SET status = ?, progress_percent = 0, progress_message = ?, error_message = ?,
             too_short = ?, report_json = NULL, updated_at = ?, completed_at = ?
         WHERE session_id = ?`,
		string(pipeline.StatusFailed),
		"Analysis failed: "+message,
		message,
		boolToInt(tooShort),
		now,
		now,
		sessionID,
	)
	if err != nil {
		return fmt.Errorf("mark failed: %w", err)
	}
	return requireRow(res, "mark failed", sessionID)
}

// Get fetches the run for sessionID. It returns nil, nil when none exists.
func (s *Store) Get(ctx context.Context, sessionID string) (*Record, error) {
	row := s.db.QueryRowContext(ensureContext(ctx), `SELECT `+recordColumns+` FROM analysis_runs WHERE session_id = ?`, sessionID)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	return rec, nil
}

// ListFilter narrows List results. Zero values match everything.
type ListFilter struct {
	UserID   string
	Statuses []pipeline.Status
	Limit    int
}

// List returns runs ordered by most recent update first.
func (s *Store) List(ctx context.Context, filter ListFilter) ([]*Record, error) {
	query := `SELECT ` + recordColumns + ` FROM analysis_runs`
	var (
		clauses []string
		args    []any
	)
	if filter.UserID != "" {
		clauses = append(clauses, "user_id = ?")
		args = append(args, filter.UserID)
	}
	if len(filter.Statuses) > 0 {
		clauses = append(clauses, "status IN ("+makePlaceholders(len(filter.Statuses))+")")
		for _, status := range filter.Statuses {
			args = append(args, string(status))
		}
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY updated_at DESC, session_id"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ensureContext(ctx), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return records, nil
}

// Delete removes the run for sessionID. Deleting a missing run is not an error.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	if _, err := s.execWithRetry(ctx, `DELETE FROM analysis_runs WHERE session_id = ?`, sessionID); err != nil {
		return fmt.Errorf("delete run: %w", err)
	}
	return nil
}

// ResetStuckProcessing fails runs left processing by a process that exited
// mid-run. It returns the number of runs reset.
func (s *Store) ResetStuckProcessing(ctx context.Context) (int64, error) {
	now := formatTime(s.now())
	res, err := s.execWithRetry(ctx,
		`UPDATE analysis_runs
         SET status = ?, progress_percent = 0, progress_message = ?, error_message = ?,
             report_json = NULL, updated_at = ?, completed_at = ?
         WHERE status = ?`,
		string(pipeline.StatusFailed),
		"Analysis failed: "+interruptedMessage,
		interruptedMessage,
		now,
		now,
		string(pipeline.StatusProcessing),
	)
	if err != nil {
		return 0, fmt.Errorf("reset stuck runs: %w", err)
	}
	return res.RowsAffected()
}

func requireRow(res sql.Result, op, sessionID string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: rows affected: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w: %s", op, ErrNotFound, sessionID)
	}
	return nil
}

func makePlaceholders(count int) string {
	if count <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?,", count), ",")
}
