package store_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"presentcoach/internal/pipeline"
	"presentcoach/internal/store"
	"presentcoach/internal/testsupport"
)

func sampleReport() pipeline.Report {
	warning := "Face not detected in video. Body language metrics unavailable."
	return pipeline.Report{
		Status:         pipeline.LabelLimitations,
		AnalysisStatus: pipeline.StatusCompletedWithWarning,
		WordCount:      42,
		WarningMessage: &warning,
		Transcription:  pipeline.Transcription{Text: "hello", Language: "en", WordCount: 42},
	}
}

func TestMarkProcessingCreatesRun(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	testsupport.MarkProcessing(t, st, "s1", "/videos/a.mp4")

	rec, err := st.Get(context.Background(), "s1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if rec == nil || rec.Status != pipeline.StatusProcessing || rec.ProgressPercent != 0 {
		t.Fatalf("unexpected record %#v", rec)
	}
	if rec.UserID != "user-1" || rec.VideoPath != "/videos/a.mp4" || rec.HasReport() {
		t.Fatalf("unexpected record fields %#v", rec)
	}
	if rec.StartedAt.IsZero() || rec.CompletedAt != nil {
		t.Fatalf("unexpected timestamps %#v", rec)
	}
}

func TestGetMissingReturnsNil(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	rec, err := st.Get(context.Background(), "nope")
	if err != nil || rec != nil {
		t.Fatalf("expected nil record, got %#v, %v", rec, err)
	}
}

func TestUpdateProgressIsMonotone(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	testsupport.MarkProcessing(t, st, "s1", "/videos/a.mp4")
	ctx := context.Background()

	if err := st.UpdateProgress(ctx, "s1", 45, pipeline.MessageText); err != nil {
		t.Fatalf("UpdateProgress failed: %v", err)
	}
	if err := st.UpdateProgress(ctx, "s1", 30, pipeline.MessageAudio); err != nil {
		t.Fatalf("UpdateProgress failed: %v", err)
	}
	rec, _ := st.Get(ctx, "s1")
	if rec.ProgressPercent != 45 {
		t.Fatalf("expected progress to stay at 45, got %d", rec.ProgressPercent)
	}
}

func TestSaveReportStoresTerminalStateAndReport(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	testsupport.MarkProcessing(t, st, "s1", "/videos/a.mp4")
	ctx := context.Background()

	if err := st.SaveReport(ctx, "s1", pipeline.StatusCompletedWithWarning, sampleReport()); err != nil {
		t.Fatalf("SaveReport failed: %v", err)
	}
	rec, err := st.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if rec.Status != pipeline.StatusCompletedWithWarning || rec.ProgressPercent != 100 || rec.CompletedAt == nil {
		t.Fatalf("unexpected terminal record %#v", rec)
	}
	report, err := rec.Report()
	if err != nil {
		t.Fatalf("Report failed: %v", err)
	}
	if report.WordCount != 42 || report.WarningMessage == nil || report.Transcription.Text != "hello" {
		t.Fatalf("unexpected decoded report %#v", report)
	}

	// Progress updates after completion are ignored.
	if err := st.UpdateProgress(ctx, "s1", 50, "late"); err != nil {
		t.Fatalf("UpdateProgress failed: %v", err)
	}
	rec, _ = st.Get(ctx, "s1")
	if rec.ProgressMessage != pipeline.MessageComplete || rec.Status != pipeline.StatusCompletedWithWarning {
		t.Fatalf("expected terminal run untouched, got %#v", rec)
	}
}

func TestSaveReportRejectsNonCompletedStatus(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	testsupport.MarkProcessing(t, st, "s1", "/videos/a.mp4")
	if err := st.SaveReport(context.Background(), "s1", pipeline.StatusFailed, sampleReport()); err == nil {
		t.Fatal("expected error for failed status")
	}
}

func TestSaveReportUnknownSession(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	err := st.SaveReport(context.Background(), "ghost", pipeline.StatusCompleted, sampleReport())
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMarkFailedClearsReport(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	testsupport.MarkProcessing(t, st, "s1", "/videos/a.mp4")
	ctx := context.Background()
	if err := st.SaveReport(ctx, "s1", pipeline.StatusCompleted, sampleReport()); err != nil {
		t.Fatalf("SaveReport failed: %v", err)
	}

	if err := st.MarkFailed(ctx, "s1", "video too short", true); err != nil {
		t.Fatalf("MarkFailed failed: %v", err)
	}
	rec, _ := st.Get(ctx, "s1")
	if rec.Status != pipeline.StatusFailed || !rec.TooShort || rec.HasReport() {
		t.Fatalf("unexpected failed record %#v", rec)
	}
	if rec.ErrorMessage != "video too short" || rec.ProgressMessage != "Analysis failed: video too short" {
		t.Fatalf("unexpected failure messages %#v", rec)
	}
}

func TestMarkProcessingSupersedesPreviousRun(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	testsupport.MarkProcessing(t, st, "s1", "/videos/a.mp4")
	ctx := context.Background()
	if err := st.MarkFailed(ctx, "s1", "boom", true); err != nil {
		t.Fatalf("MarkFailed failed: %v", err)
	}

	testsupport.MarkProcessing(t, st, "s1", "/videos/b.mp4")
	rec, _ := st.Get(ctx, "s1")
	if rec.Status != pipeline.StatusProcessing || rec.TooShort || rec.ErrorMessage != "" || rec.VideoPath != "/videos/b.mp4" {
		t.Fatalf("expected a fresh processing run, got %#v", rec)
	}
}

func TestListFiltersAndOrders(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()
	testsupport.MarkProcessing(t, st, "a", "/videos/a.mp4")
	testsupport.MarkProcessing(t, st, "b", "/videos/b.mp4")
	if err := st.SaveReport(ctx, "b", pipeline.StatusCompleted, sampleReport()); err != nil {
		t.Fatalf("SaveReport failed: %v", err)
	}

	all, err := st.List(ctx, store.ListFilter{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 2 || all[0].SessionID != "b" {
		t.Fatalf("expected most recently updated first, got %d records", len(all))
	}

	done, err := st.List(ctx, store.ListFilter{Statuses: []pipeline.Status{pipeline.StatusCompleted, pipeline.StatusCompletedWithWarning}})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(done) != 1 || done[0].SessionID != "b" {
		t.Fatalf("unexpected filtered list %#v", done)
	}

	limited, err := st.List(ctx, store.ListFilter{UserID: "user-1", Limit: 1})
	if err != nil || len(limited) != 1 {
		t.Fatalf("expected one record with limit, got %d (%v)", len(limited), err)
	}
}

func TestDeleteAndResetStuck(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()
	testsupport.MarkProcessing(t, st, "a", "/videos/a.mp4")
	testsupport.MarkProcessing(t, st, "b", "/videos/b.mp4")

	count, err := st.ResetStuckProcessing(ctx)
	if err != nil || count != 2 {
		t.Fatalf("expected 2 runs reset, got %d (%v)", count, err)
	}
	rec, _ := st.Get(ctx, "a")
	if rec.Status != pipeline.StatusFailed || rec.ErrorMessage == "" {
		t.Fatalf("expected interrupted run failed, got %#v", rec)
	}

	if err := st.Delete(ctx, "a"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if rec, _ := st.Get(ctx, "a"); rec != nil {
		t.Fatal("expected run deleted")
	}
	if err := st.Delete(ctx, "a"); err != nil {
		t.Fatalf("expected repeated delete to succeed, got %v", err)
	}
}

func TestOpenRejectsSchemaMismatch(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	if err := st.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	db, err := sql.Open("sqlite", cfg.DatabasePath())
	if err != nil {
		t.Fatalf("sql.Open: %v", err)
	}
	if _, err := db.Exec("UPDATE schema_version SET version = 99"); err != nil {
		t.Fatalf("exec: %v", err)
	}
	db.Close()
	if _, err := store.Open(cfg); !errors.Is(err, store.ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}
