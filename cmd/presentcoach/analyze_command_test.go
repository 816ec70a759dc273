package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"presentcoach/internal/feedback"
	"presentcoach/internal/jobs"
	"presentcoach/internal/pipeline"
	"presentcoach/internal/store"
	"presentcoach/internal/testsupport"
)

// probeScript prints ffprobe JSON for a silent video of the given duration.
func probeScript(duration string) string {
	return `cat <<'JSON'
{"streams":[{"index":0,"codec_type":"video","codec_name":"h264","nb_frames":"1800","avg_frame_rate":"30/1"}],` +
		`"format":{"duration":"` + duration + `","nb_streams":1}}
JSON`
}

func TestAnalyzeRejectsMissingVideo(t *testing.T) {
	env := setupCLITestEnv(t)
	missing := filepath.Join(env.baseDir, "nope.mp4")

	_, _, err := runCLI(t, []string{"analyze", missing}, env.configPath)
	if err == nil {
		t.Fatal("expected error for missing video")
	}
	requireContains(t, err.Error(), "video not found")
}

func TestFollowProgressStopsAtTerminal(t *testing.T) {
	updates := make(chan jobs.Job, 4)
	updates <- jobs.Job{SessionID: "s", Status: pipeline.StatusProcessing, ProgressPercent: 5, Message: pipeline.MessageExtracting}
	updates <- jobs.Job{SessionID: "s", Status: pipeline.StatusProcessing, ProgressPercent: 45, Message: pipeline.MessageText}
	updates <- jobs.Job{SessionID: "s", Status: pipeline.StatusCompleted, ProgressPercent: 100, Message: pipeline.MessageComplete}

	var seen []int
	final, err := followProgress(context.Background(), updates, func(job jobs.Job) {
		seen = append(seen, job.ProgressPercent)
	})
	if err != nil {
		t.Fatalf("followProgress: %v", err)
	}
	if final.Status != pipeline.StatusCompleted {
		t.Fatalf("expected completed, got %s", final.Status)
	}
	if len(seen) != 3 || seen[2] != 100 {
		t.Fatalf("unexpected progress sequence %v", seen)
	}
}

func TestFollowProgressClosedStream(t *testing.T) {
	updates := make(chan jobs.Job)
	close(updates)
	if _, err := followProgress(context.Background(), updates, func(jobs.Job) {}); err == nil {
		t.Fatal("expected error for closed stream")
	}
}

func TestFollowProgressHonorsContext(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := followProgress(ctx, make(chan jobs.Job), func(jobs.Job) {}); err == nil {
		t.Fatal("expected context error")
	}
}

func TestProgressPrinterPrintsMessageChanges(t *testing.T) {
	var buf bytes.Buffer
	p := newProgressPrinter(&buf)
	p.render(jobs.Job{ProgressPercent: 5, Message: pipeline.MessageExtracting})
	p.render(jobs.Job{ProgressPercent: 5, Message: pipeline.MessageExtracting})
	p.render(jobs.Job{ProgressPercent: 100, Message: pipeline.MessageComplete})
	p.finish()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", buf.String())
	}
	requireContains(t, lines[1], "[100%] "+pipeline.MessageComplete)
}

func TestAnalyzeRejectsShortVideoBeforeStarting(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithStubbedScript("ffprobe", probeScript("3.0")))
	video := filepath.Join(env.baseDir, "short.mp4")
	testsupport.WriteFile(t, video, 1024)

	_, _, err := runCLI(t, []string{"analyze", "--session", "short", video}, env.configPath)
	if err == nil {
		t.Fatal("expected too-short error")
	}
	requireContains(t, err.Error(), "video too short")

	st := testsupport.MustOpenStore(t, env.cfg)
	rec, err := st.Get(context.Background(), "short")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if rec != nil {
		t.Fatalf("expected no stored run, got status %s", rec.Status)
	}
}

func TestAnalyzeSilentVideoCompletesWithWarning(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithStubbedScript("ffprobe", probeScript("60.0")))
	video := filepath.Join(env.baseDir, "silent.mp4")
	testsupport.WriteFile(t, video, 1024)

	out, stderr, err := runCLI(t, []string{"analyze", "--session", "silent", "--user", "u1", "--json", video}, env.configPath)
	if err != nil {
		t.Fatalf("analyze: %v\n%s", err, stderr)
	}
	requireContains(t, stderr, pipeline.MessageComplete)

	var view reportView
	if err := json.Unmarshal([]byte(out), &view); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if view.Report.AnalysisStatus != pipeline.StatusCompletedWithWarning {
		t.Fatalf("expected completed_with_warning, got %s", view.Report.AnalysisStatus)
	}
	if view.Report.AudioPresent || view.Report.SpeechDetected {
		t.Fatalf("silent video should carry no speech evidence: %+v", view.Report)
	}
	if view.Report.WarningMessage == nil {
		t.Fatal("expected warning message")
	}

	st, err := store.Open(env.cfg)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	defer st.Close()
	rec, err := st.Get(context.Background(), "silent")
	if err != nil || rec == nil {
		t.Fatalf("Get: %v %v", rec, err)
	}
	if rec.Status != pipeline.StatusCompletedWithWarning || rec.ProgressPercent != 100 || rec.UserID != "u1" {
		t.Fatalf("unexpected stored run: %+v", rec)
	}
}

func TestAnalyzeUsesLLMFeedbackWhenConfigured(t *testing.T) {
	content := `{"strengths":["Confident framing"],"improvements":["Add a spoken introduction"],"overall_assessment":"Promising start."}`
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected authorization header %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{{"message": map[string]string{"content": content}}},
		})
	}))
	defer srv.Close()

	env := setupCLITestEnv(t,
		testsupport.WithStubbedScript("ffprobe", probeScript("45.0")),
		testsupport.WithLLM(srv.URL, "test-key"),
		testsupport.WithMaxConcurrentRuns(1),
	)
	video := filepath.Join(env.baseDir, "llm.mp4")
	testsupport.WriteFile(t, video, 512)

	out, stderr, err := runCLI(t, []string{"analyze", "--session", "llm", "--json", video}, env.configPath)
	if err != nil {
		t.Fatalf("analyze: %v\n%s", err, stderr)
	}
	var view reportView
	if err := json.Unmarshal([]byte(out), &view); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	fb := view.Report.Feedback
	if fb.GeneratedBy != feedback.GeneratedByLLM {
		t.Fatalf("expected llm feedback, got %q", fb.GeneratedBy)
	}
	if len(fb.Strengths) != 1 || fb.Strengths[0] != "Confident framing" {
		t.Fatalf("unexpected strengths %v", fb.Strengths)
	}
	if calls != 1 {
		t.Fatalf("expected one llm call, got %d", calls)
	}
}
