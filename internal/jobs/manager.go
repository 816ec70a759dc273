package jobs

import (
	"cmp"
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"presentcoach/internal/logging"
	"presentcoach/internal/notifications"
	"presentcoach/internal/pipeline"
)

// ErrNotTracked is returned by Wait for sessions with no mirror entry.
var ErrNotTracked = errors.New("session not tracked")

// Runner executes one analysis run. *pipeline.Orchestrator satisfies it.
type Runner interface {
	Run(ctx context.Context, run pipeline.Run, progress pipeline.ProgressFunc) (pipeline.Report, error)
}

// Options configures a Manager.
type Options struct {
	// MaxConcurrentRuns bounds how many runs execute at once. Zero means
	// unbounded.
	MaxConcurrentRuns int
	Notifier          notifications.Service
	Logger            *slog.Logger
	// Context supplies values (not cancellation) to every run.
	Context context.Context
	Now     func() time.Time
}

// Manager is the process-wide registry of analysis runs.
type Manager struct {
	runner   Runner
	sink     pipeline.ReportSink
	notifier notifications.Service
	logger   *slog.Logger
	sampler  *logging.ProgressSampler
	slots    chan struct{}
	base     context.Context
	now      func() time.Time
	bus      *bus

	mu         sync.Mutex
	jobs       map[string]*entry
	running    map[string]uint64
	generation uint64
	wg         sync.WaitGroup
}

// entry is a mirror slot. generation ties a worker to the Start call that
// launched it so a worker never writes into a newer run's entry.
type entry struct {
	job        Job
	generation uint64
}

// NewManager constructs a Manager that runs analyses with runner and
// persists them through sink.
func NewManager(runner Runner, sink pipeline.ReportSink, opts Options) *Manager {
	notifier := opts.Notifier
	if notifier == nil {
		notifier = notifications.NewService(nil)
	}
	base := opts.Context
	if base == nil {
		base = context.Background()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	m := &Manager{
		runner:   runner,
		sink:     sink,
		notifier: notifier,
		logger:   logging.NewComponentLogger(opts.Logger, "jobs"),
		sampler:  logging.NewProgressSampler(25),
		base:     context.WithoutCancel(base),
		now:      now,
		bus:      newBus(),
		jobs:     make(map[string]*entry),
		running:  make(map[string]uint64),
	}
	if opts.MaxConcurrentRuns > 0 {
		m.slots = make(chan struct{}, opts.MaxConcurrentRuns)
	}
	return m
}

// Start registers a processing run for sessionID and launches its worker.
// It returns false, with no side effects, when the session already has a
// processing run or sessionID is blank.
func (m *Manager) Start(sessionID, videoPath, userID string) bool {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return false
	}

	m.mu.Lock()
	if _, busy := m.running[sessionID]; busy {
		m.mu.Unlock()
		return false
	}
	now := m.now()
	m.generation++
	m.running[sessionID] = m.generation
	e := &entry{
		generation: m.generation,
		job: Job{
			SessionID: sessionID,
			UserID:    userID,
			VideoPath: videoPath,
			Status:    pipeline.StatusProcessing,
			Message:   MessageStarted,
			StartedAt: now,
			UpdatedAt: now,
		},
	}
	m.jobs[sessionID] = e
	m.bus.publish(e.job)
	m.wg.Add(1)
	m.mu.Unlock()

	run := pipeline.Run{SessionID: sessionID, UserID: userID, VideoPath: videoPath, StartedAt: now}
	go m.work(e.generation, run)
	return true
}

// Progress returns the mirror entry for sessionID without blocking on any
// running worker.
func (m *Manager) Progress(sessionID string) (Job, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.jobs[sessionID]
	if !ok {
		return Job{}, false
	}
	return e.job, true
}

// IsRunning reports whether sessionID has a processing run.
func (m *Manager) IsRunning(sessionID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, busy := m.running[sessionID]
	return busy
}

// Cleanup drops the mirror entry for a finished run. Entries of runs still
// processing are kept, as is persisted state.
func (m *Manager) Cleanup(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, busy := m.running[sessionID]; busy {
		return
	}
	delete(m.jobs, sessionID)
}

// List returns a snapshot of every mirror entry, most recently updated first.
func (m *Manager) List() []Job {
	m.mu.Lock()
	out := make([]Job, 0, len(m.jobs))
	for _, e := range m.jobs {
		out = append(out, e.job)
	}
	m.mu.Unlock()

	slices.SortFunc(out, func(a, b Job) int {
		if c := b.UpdatedAt.Compare(a.UpdatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.SessionID, b.SessionID)
	})
	return out
}

// Subscribe returns a channel of snapshots for sessionID, primed with the
// current snapshot when one exists. Call cancel to release the channel.
func (m *Manager) Subscribe(sessionID string) (<-chan Job, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var initial *Job
	if e, ok := m.jobs[sessionID]; ok {
		snapshot := e.job
		initial = &snapshot
	}
	return m.bus.subscribe(sessionID, initial)
}

// Wait blocks until the run for sessionID is terminal or ctx ends.
func (m *Manager) Wait(ctx context.Context, sessionID string) (Job, error) {
	updates, cancel := m.Subscribe(sessionID)
	defer cancel()
	if _, ok := m.Progress(sessionID); !ok {
		return Job{}, ErrNotTracked
	}
	for {
		select {
		case job, ok := <-updates:
			if !ok {
				return Job{}, ErrNotTracked
			}
			if job.Terminal() {
				return job, nil
			}
		case <-ctx.Done():
			return Job{}, ctx.Err()
		}
	}
}

// Drain waits for in-flight workers to finish or ctx to end.
func (m *Manager) Drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// update applies fn to the entry launched by generation and publishes the
// result. It is a no-op once the entry was cleaned up or superseded.
func (m *Manager) update(sessionID string, generation uint64, fn func(*Job) bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.jobs[sessionID]
	if !ok || e.generation != generation {
		return
	}
	if !fn(&e.job) {
		return
	}
	e.job.UpdatedAt = m.now()
	m.bus.publish(e.job)
}

// finish applies the terminal transition for generation and releases the
// session for a new Start in the same critical section.
func (m *Manager) finish(sessionID string, generation uint64, fn func(*Job)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.running[sessionID] == generation {
		delete(m.running, sessionID)
	}
	e, ok := m.jobs[sessionID]
	if !ok || e.generation != generation {
		return
	}
	fn(&e.job)
	e.job.UpdatedAt = m.now()
	m.bus.publish(e.job)
}
