package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"presentcoach/internal/logging"
	"presentcoach/internal/notifications"
	"presentcoach/internal/pipeline"
	"presentcoach/internal/services"
)

func (m *Manager) work(generation uint64, run pipeline.Run) {
	defer m.wg.Done()
	defer m.sampler.Forget(run.SessionID)

	ctx := services.WithSessionID(m.base, run.SessionID)
	logger := logging.WithContext(ctx, m.logger)

	if m.slots != nil {
		select {
		case m.slots <- struct{}{}:
		default:
			m.update(run.SessionID, generation, func(job *Job) bool {
				job.Message = MessageQueued
				return true
			})
			logger.Info("analysis queued for a worker slot",
				logging.String(logging.FieldEventType, "run_queued"),
				logging.Int("max_concurrent_runs", cap(m.slots)),
			)
			m.slots <- struct{}{}
		}
		defer func() { <-m.slots }()
	}

	if err := m.sink.MarkProcessing(ctx, run); err != nil {
		m.fail(ctx, generation, run, fmt.Errorf("persist run start: %w", err), logger)
		return
	}

	report, err := m.runner.Run(ctx, run, func(percent int, message string) {
		m.progress(ctx, generation, run.SessionID, percent, message, logger)
	})
	if err != nil {
		m.fail(ctx, generation, run, err, logger)
		return
	}
	m.complete(ctx, generation, run, report, logger)
}

func (m *Manager) progress(ctx context.Context, generation uint64, sessionID string, percent int, message string, logger *slog.Logger) {
	percent = min(max(percent, 0), 100)
	m.update(sessionID, generation, func(job *Job) bool {
		if job.Status != pipeline.StatusProcessing || percent < job.ProgressPercent {
			return false
		}
		job.ProgressPercent = percent
		job.Message = message
		return true
	})
	if m.sampler.ShouldLog(sessionID, float64(percent), "") {
		logger.Info("analysis progress",
			logging.String(logging.FieldEventType, "run_progress"),
			logging.Int("progress_percent", percent),
			logging.String("progress_message", message),
		)
	}
	if err := m.sink.UpdateProgress(ctx, sessionID, percent, message); err != nil {
		logging.WarnWithContext(logger, "progress checkpoint not persisted", "progress_persist_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check report database access"),
			logging.String(logging.FieldImpact, "stored progress lags the live mirror"),
		)
	}
}

func (m *Manager) complete(ctx context.Context, generation uint64, run pipeline.Run, report pipeline.Report, logger *slog.Logger) {
	status := report.AnalysisStatus
	if status != pipeline.StatusCompletedWithWarning {
		status = pipeline.StatusCompleted
	}
	if err := m.sink.SaveReport(ctx, run.SessionID, status, report); err != nil {
		m.fail(ctx, generation, run, fmt.Errorf("persist report: %w", err), logger)
		return
	}

	m.finish(run.SessionID, generation, func(job *Job) {
		job.Status = status
		job.ProgressPercent = pipeline.ProgressComplete
		job.Message = pipeline.MessageComplete
		job.Error = ""
	})

	event := notifications.EventAnalysisCompleted
	if status == pipeline.StatusCompletedWithWarning {
		event = notifications.EventAnalysisWarning
	}
	payload := notifications.Payload{"sessionID": run.SessionID, "warning": report.WarningMessage}
	if score := report.FinalScore(); score != nil {
		payload["finalScore"] = *score
	}
	if grade := report.Grade(); grade != nil {
		payload["grade"] = *grade
	}
	m.notify(ctx, event, payload, logger)
}

func (m *Manager) fail(ctx context.Context, generation uint64, run pipeline.Run, runErr error, logger *slog.Logger) {
	tooShort := errors.Is(runErr, pipeline.ErrTooShort)
	message := runErr.Error()

	impact := "no report was produced for this session"
	if tooShort {
		impact = "the video is below the minimum duration and was not analyzed"
	}
	logging.ErrorWithContext(logger, "analysis failed", "run_failed",
		logging.Error(runErr),
		logging.String(logging.FieldErrorHint, services.FailureHint(runErr)),
		logging.String(logging.FieldImpact, impact),
		logging.Bool("too_short", tooShort),
	)

	if err := m.sink.MarkFailed(ctx, run.SessionID, message, tooShort); err != nil {
		logging.ErrorWithContext(logger, "failed run not persisted", "failure_persist_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check report database access"),
			logging.String(logging.FieldImpact, "stored status may still show processing until restart"),
		)
	}

	m.finish(run.SessionID, generation, func(job *Job) {
		job.Status = pipeline.StatusFailed
		job.ProgressPercent = 0
		job.Message = "Analysis failed: " + message
		job.Error = message
		job.TooShort = tooShort
	})

	m.notify(ctx, notifications.EventAnalysisFailed, notifications.Payload{
		"sessionID": run.SessionID,
		"error":     message,
	}, logger)
}

func (m *Manager) notify(ctx context.Context, event notifications.Event, payload notifications.Payload, logger *slog.Logger) {
	if err := m.notifier.Publish(ctx, event, payload); err != nil {
		logger.Debug("run notification failed", logging.Error(err), logging.String("event", string(event)))
	}
}
