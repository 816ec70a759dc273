package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"presentcoach/internal/jobs"
	"presentcoach/internal/logging"
	"presentcoach/internal/pipeline"
	"presentcoach/internal/services"
	"presentcoach/internal/store"
)

const maxStartBodyBytes = 64 << 10

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{Status: "ok", Database: "ok", Timestamp: s.now().UTC()}
	if err := s.reports.Ping(r.Context()); err != nil {
		resp.Status = "degraded"
		resp.Database = err.Error()
		s.writeJSON(w, http.StatusServiceUnavailable, resp)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	sessionID := sessionParam(r)
	if sessionID == "" {
		s.writeError(w, http.StatusBadRequest, "session id is required")
		return
	}

	var req StartRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxStartBodyBytes)).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.VideoPath = strings.TrimSpace(req.VideoPath)
	if req.VideoPath == "" {
		s.writeError(w, http.StatusBadRequest, "videoPath is required")
		return
	}

	if s.jobs.IsRunning(sessionID) {
		s.writeError(w, http.StatusConflict, "analysis already running for this session")
		return
	}

	ctx := services.WithSessionID(services.WithRequestID(r.Context(), middleware.GetReqID(r.Context())), sessionID)
	logger := logging.WithContext(ctx, s.logger)
	if s.preflight != nil {
		if _, err := s.preflight.Preflight(ctx, req.VideoPath); err != nil {
			status := preflightStatus(err)
			logger.Info("analysis rejected by pre-flight",
				logging.String(logging.FieldEventType, "start_rejected"),
				logging.Int("status", status),
				logging.Error(err),
			)
			s.writeJSON(w, status, ErrorResponse{Error: err.Error(), TooShort: errors.Is(err, pipeline.ErrTooShort)})
			return
		}
	}

	if !s.jobs.Start(sessionID, req.VideoPath, strings.TrimSpace(req.UserID)) {
		s.writeError(w, http.StatusConflict, "analysis already running for this session")
		return
	}
	logger.Info("analysis accepted",
		logging.String(logging.FieldEventType, "start_accepted"),
		logging.String("video_path", req.VideoPath),
	)
	base := "/api/sessions/" + sessionID
	s.writeJSON(w, http.StatusAccepted, StartResponse{
		SessionID:   sessionID,
		Status:      pipeline.StatusProcessing,
		ProgressURL: base + "/progress",
		StreamURL:   base + "/stream",
	})
}

func preflightStatus(err error) int {
	switch {
	case errors.Is(err, pipeline.ErrTooShort):
		return http.StatusUnprocessableEntity
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrValidation):
		return http.StatusBadRequest
	default:
		return http.StatusBadGateway
	}
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	sessionID := sessionParam(r)
	if job, ok := s.jobs.Progress(sessionID); ok {
		s.writeJSON(w, http.StatusOK, progressFromJob(job))
		return
	}
	rec, err := s.reports.Get(r.Context(), sessionID)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if rec == nil {
		s.writeJSON(w, http.StatusOK, ProgressResponse{
			SessionID: sessionID,
			Status:    pipeline.StatusNotStarted,
			Source:    "stored",
		})
		return
	}
	s.writeJSON(w, http.StatusOK, progressFromRecord(rec))
}

func (s *Server) handleCleanup(w http.ResponseWriter, r *http.Request) {
	s.jobs.Cleanup(sessionParam(r))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	sessionID := sessionParam(r)
	rec, err := s.reports.Get(r.Context(), sessionID)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if rec == nil {
		s.writeError(w, http.StatusNotFound, "no analysis for this session")
		return
	}
	resp := ReportResponse{
		SessionID:   rec.SessionID,
		Status:      rec.Status,
		Error:       rec.ErrorMessage,
		TooShort:    rec.TooShort,
		CompletedAt: rec.CompletedAt,
	}
	if rec.Status == pipeline.StatusProcessing {
		s.writeJSON(w, http.StatusConflict, resp)
		return
	}
	if rec.HasReport() {
		report, err := rec.Report()
		if err != nil {
			s.writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		resp.Report = &report
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func sessionParam(r *http.Request) string {
	return strings.TrimSpace(chi.URLParam(r, "sessionID"))
}

func progressFromJob(job jobs.Job) ProgressResponse {
	updated := job.UpdatedAt
	return ProgressResponse{
		SessionID:       job.SessionID,
		Status:          job.Status,
		ProgressPercent: job.ProgressPercent,
		Message:         job.Message,
		Error:           job.Error,
		TooShort:        job.TooShort,
		UpdatedAt:       &updated,
		Source:          "live",
	}
}

func progressFromRecord(rec *store.Record) ProgressResponse {
	updated := rec.UpdatedAt
	return ProgressResponse{
		SessionID:       rec.SessionID,
		Status:          rec.Status,
		ProgressPercent: rec.ProgressPercent,
		Message:         rec.ProgressMessage,
		Error:           rec.ErrorMessage,
		TooShort:        rec.TooShort,
		UpdatedAt:       &updated,
		Source:          "stored",
	}
}
