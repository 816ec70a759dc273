package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"

	"presentcoach/internal/config"
	"presentcoach/internal/deps"
	"presentcoach/internal/jobs"
	"presentcoach/internal/logging"
	"presentcoach/internal/store"
)

// Daemon owns the HTTP listener and enforces single-instance execution.
type Daemon struct {
	cfg     *config.Config
	logger  *slog.Logger
	store   *store.Store
	jobs    *jobs.Manager
	handler http.Handler

	lockPath string
	lock     *flock.Flock

	mu       sync.Mutex
	server   *http.Server
	listener net.Listener
	running  atomic.Bool
}

// Status represents daemon runtime information.
type Status struct {
	Running      bool          `json:"running"`
	Address      string        `json:"address,omitempty"`
	DatabasePath string        `json:"database_path"`
	LockFilePath string        `json:"lock_file_path"`
	ActiveRuns   int           `json:"active_runs"`
	Dependencies []deps.Status `json:"dependencies"`
}

// New constructs a daemon with initialized dependencies.
func New(cfg *config.Config, st *store.Store, manager *jobs.Manager, handler http.Handler, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil || st == nil || manager == nil || handler == nil {
		return nil, errors.New("daemon requires config, store, job manager, and handler")
	}
	lockPath := cfg.LockPath()
	return &Daemon{
		cfg:      cfg,
		logger:   logging.NewComponentLogger(logger, "daemon"),
		store:    st,
		jobs:     manager,
		handler:  handler,
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}, nil
}

// Start acquires the lock, recovers interrupted runs and begins serving.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another presentcoach server instance is already running")
	}

	reset, err := d.store.ResetStuckProcessing(ctx)
	if err != nil {
		_ = d.lock.Unlock()
		return fmt.Errorf("recover interrupted runs: %w", err)
	}
	if reset > 0 {
		logging.WarnWithContext(d.logger, "failed runs interrupted by a previous shutdown", "runs_interrupted",
			logging.Int64("count", reset),
			logging.String(logging.FieldErrorHint, "start the affected analyses again"),
			logging.String(logging.FieldImpact, "interrupted sessions report failed status"),
		)
	}

	listener, err := net.Listen("tcp", d.cfg.Server.Bind)
	if err != nil {
		_ = d.lock.Unlock()
		return fmt.Errorf("api listen: %w", err)
	}
	server := &http.Server{
		Handler:           d.handler,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	d.mu.Lock()
	d.server = server
	d.listener = listener
	d.mu.Unlock()

	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.ErrorWithContext(d.logger, "api server error", "server_failed",
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check the bind address in [server]"),
			)
		}
	}()

	d.running.Store(true)
	d.logger.Info("presentcoach server started",
		logging.String("address", listener.Addr().String()),
		logging.String("lock", d.lockPath),
	)
	return nil
}

// Addr returns the bound listener address, or "" when stopped.
func (d *Daemon) Addr() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.listener == nil {
		return ""
	}
	return d.listener.Addr().String()
}

// Stop stops accepting requests, waits for in-flight runs until ctx ends,
// and releases the lock.
func (d *Daemon) Stop(ctx context.Context) {
	if !d.running.Load() {
		return
	}

	d.mu.Lock()
	server := d.server
	d.server = nil
	d.listener = nil
	d.mu.Unlock()

	if server != nil {
		if err := server.Shutdown(ctx); err != nil {
			d.logger.Warn("http shutdown incomplete", logging.Error(err))
			_ = server.Close()
		}
	}
	if err := d.jobs.Drain(ctx); err != nil {
		logging.WarnWithContext(d.logger, "analyses still running at shutdown", "drain_timeout",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "restart the server; interrupted runs are failed on startup"),
			logging.String(logging.FieldImpact, "in-flight sessions will need a new analysis"),
		)
	}
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release server lock", logging.Error(err))
	}
	d.running.Store(false)
	d.logger.Info("presentcoach server stopped")
}

// Status returns the current daemon status.
func (d *Daemon) Status() Status {
	active := 0
	for _, job := range d.jobs.List() {
		if !job.Terminal() {
			active++
		}
	}
	return Status{
		Running:      d.running.Load(),
		Address:      d.Addr(),
		DatabasePath: d.store.Path(),
		LockFilePath: d.lockPath,
		ActiveRuns:   active,
		Dependencies: deps.Check(d.cfg),
	}
}
