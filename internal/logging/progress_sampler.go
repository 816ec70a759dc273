package logging

import (
	"strings"
	"sync"
)

// ProgressSampler suppresses repetitive progress logs while preserving signal
// when a session's stage or percentage bucket changes. State is tracked per
// session so concurrent runs can share one sampler.
type ProgressSampler struct {
	bucketSize float64

	mu       sync.Mutex
	sessions map[string]sampleState
}

type sampleState struct {
	stage  string
	bucket int
}

// NewProgressSampler constructs a sampler that emits when the percent crosses
// bucket boundaries (default 10%) or when the stage changes.
func NewProgressSampler(bucketSize float64) *ProgressSampler {
	if bucketSize <= 0 {
		bucketSize = 10
	}
	return &ProgressSampler{bucketSize: bucketSize, sessions: make(map[string]sampleState)}
}

// ShouldLog reports whether a progress event for session should be logged.
func (s *ProgressSampler) ShouldLog(session string, percent float64, stage string) bool {
	if s == nil {
		return true
	}
	stage = strings.TrimSpace(stage)

	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.sessions[session]
	if !ok {
		state = sampleState{bucket: -1}
	}
	emit := false
	if stage != "" && stage != state.stage {
		state.stage = stage
		state.bucket = -1
		emit = true
	}
	bucket := int(min(percent, 100) / s.bucketSize)
	if percent >= 0 && bucket > state.bucket {
		state.bucket = bucket
		emit = true
	}
	s.sessions[session] = state
	return emit
}

// Forget drops sampler state for a finished session.
func (s *ProgressSampler) Forget(session string) {
	if s == nil {
		return
	}
	s.mu.Lock()
	delete(s.sessions, session)
	s.mu.Unlock()
}
