package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"presentcoach/internal/jobs"
	"presentcoach/internal/logging"
	"presentcoach/internal/store"
)

const defaultRequestTimeout = 30 * time.Second

// JobRegistry is the subset of jobs.Manager the API drives.
type JobRegistry interface {
	Start(sessionID, videoPath, userID string) bool
	Progress(sessionID string) (jobs.Job, bool)
	IsRunning(sessionID string) bool
	Cleanup(sessionID string)
	Subscribe(sessionID string) (<-chan jobs.Job, func())
}

// ReportReader reads persisted runs.
type ReportReader interface {
	Get(ctx context.Context, sessionID string) (*store.Record, error)
	Ping(ctx context.Context) error
}

// Preflighter checks a video before a run is registered.
type Preflighter interface {
	Preflight(ctx context.Context, videoPath string) (float64, error)
}

// Options configures a Server.
type Options struct {
	Jobs           JobRegistry
	Reports        ReportReader
	Preflight      Preflighter
	Logger         *slog.Logger
	RequestTimeout time.Duration
	Now            func() time.Time
}

// Server routes analysis API requests.
type Server struct {
	jobs      JobRegistry
	reports   ReportReader
	preflight Preflighter
	logger    *slog.Logger
	now       func() time.Time

	router   *chi.Mux
	upgrader websocket.Upgrader
	timeout  time.Duration
}

// New constructs a Server. Jobs and Reports are required.
func New(opts Options) (*Server, error) {
	if opts.Jobs == nil || opts.Reports == nil {
		return nil, errors.New("httpapi requires a job registry and report reader")
	}
	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	s := &Server{
		jobs:      opts.Jobs,
		reports:   opts.Reports,
		preflight: opts.Preflight,
		logger:    logging.NewComponentLogger(opts.Logger, "http-api"),
		now:       now,
		router:    chi.NewRouter(),
		timeout:   timeout,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
	s.registerRoutes()
	return s, nil
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) registerRoutes() {
	s.router.Use(seedRequestID)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.requestLogger)
	s.router.Use(middleware.Recoverer)

	s.router.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(s.timeout))
			r.Get("/health", s.handleHealth)
			r.Post("/sessions/{sessionID}/analysis", s.handleStart)
			r.Get("/sessions/{sessionID}/progress", s.handleProgress)
			r.Delete("/sessions/{sessionID}/progress", s.handleCleanup)
			r.Get("/sessions/{sessionID}/report", s.handleReport)
		})
		r.Get("/sessions/{sessionID}/stream", s.handleStream)
	})
}

// seedRequestID assigns a UUID request id when the client sent none, so
// middleware.RequestID propagates it instead of its counter format.
func seedRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(middleware.RequestIDHeader) == "" {
			r.Header.Set(middleware.RequestIDHeader, uuid.NewString())
		}
		w.Header().Set(middleware.RequestIDHeader, r.Header.Get(middleware.RequestIDHeader))
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := s.now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("http request",
			logging.String(logging.FieldCorrelationID, middleware.GetReqID(r.Context())),
			logging.String("method", r.Method),
			logging.String("path", r.URL.Path),
			logging.Int("status", ww.Status()),
			logging.Duration("elapsed", s.now().Sub(started)),
		)
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", logging.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, ErrorResponse{Error: message})
}
