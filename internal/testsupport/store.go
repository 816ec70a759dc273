package testsupport

import (
	"context"
	"testing"
	"time"

	"presentcoach/internal/config"
	"presentcoach/internal/pipeline"
	"presentcoach/internal/store"
)

// MustOpenStore opens a store.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *store.Store {
	t.Helper()

	st, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		st.Close()
	})
	return st
}

// MarkProcessing registers a processing run for tests using the provided store.
func MarkProcessing(t testing.TB, st *store.Store, sessionID, videoPath string) {
	t.Helper()

	run := pipeline.Run{SessionID: sessionID, UserID: "user-1", VideoPath: videoPath, StartedAt: time.Now()}
	if err := st.MarkProcessing(context.Background(), run); err != nil {
		t.Fatalf("store.MarkProcessing: %v", err)
	}
}
