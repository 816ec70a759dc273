package vision

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"presentcoach/internal/analysis"
	"presentcoach/internal/services"
)

func TestParseFramesAndSummary(t *testing.T) {
	input := strings.Join([]string{
		`{"face":true,"eye_contact":80,"pose":true,"posture":100}`,
		``,
		`{"type":"frame","face":false,"gesture":true}`,
		`{"type":"summary","frames_read":240,"fps":24}`,
	}, "\n")
	stream, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(stream.Frames) != 2 {
		t.Fatalf("expected 2 frames, got %d", len(stream.Frames))
	}
	if !stream.Frames[0].Face || *stream.Frames[0].EyeContact != 80 || !stream.Frames[1].Gesture {
		t.Fatalf("unexpected frames %+v", stream.Frames)
	}
	if stream.FramesRead != 240 || stream.FPS != 24 {
		t.Fatalf("unexpected summary %+v", stream)
	}
}

func TestParseRejectsBadLines(t *testing.T) {
	if _, err := Parse(strings.NewReader("{\"face\":true}\nnot json\n")); err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Fatalf("expected line 2 error, got %v", err)
	}
	if _, err := Parse(strings.NewReader(`{"type":"mystery"}`)); err == nil {
		t.Fatal("expected unknown record type error")
	}
}

func score(v float64) *float64 { return &v }

func TestAggregateFullEvidence(t *testing.T) {
	// Four frames: three with a face, all with pose, one gesture.
	frames := []Frame{
		{Face: true, EyeContact: score(80), Pose: true, Posture: score(100), Brightness: score(120), Contrast: score(40), LaplacianVar: score(150)},
		{Face: true, EyeContact: score(80), Pose: true, Posture: score(100), Gesture: true, Brightness: score(120), Contrast: score(40), LaplacianVar: score(150)},
		{Face: true, EyeContact: score(40), Pose: true, Posture: score(80), Brightness: score(60), Contrast: score(40), LaplacianVar: score(150)},
		{Face: false, Pose: true, Posture: score(80), Brightness: score(120), Contrast: score(40), LaplacianVar: score(20)},
	}
	video := Aggregate(Stream{Frames: frames}, 12.346)

	if !video.FaceDetected || *video.FacePresence.Percentage != 75 {
		t.Fatalf("unexpected face presence %+v", video.FacePresence)
	}
	if *video.EyeContact.Score != 66.67 || *video.EyeContact.ForwardFacingRatio != 66.67 {
		t.Fatalf("unexpected eye contact %+v", video.EyeContact)
	}
	if video.EyeContact.Assessment != AssessmentGood {
		t.Fatalf("expected good eye contact, got %q", video.EyeContact.Assessment)
	}
	if *video.Posture.Score != 90 || *video.Posture.ConsistencyScore != 80 {
		t.Fatalf("unexpected posture %+v", video.Posture)
	}
	if *video.Gestures.FrequencyPercentage != 25 || video.Gestures.Assessment != AssessmentAppropriate {
		t.Fatalf("unexpected gestures %+v", video.Gestures)
	}
	if !video.PoseLandmarksDetected || *video.PoseLandmarksPercentage != 100 {
		t.Fatalf("unexpected pose flags %+v", video)
	}
	// 75*0.3 + 66.67*0.3 + 90*0.2 + 25*0.2
	if *video.ConfidenceEstimate != 65.5 {
		t.Fatalf("unexpected confidence %v", *video.ConfidenceEstimate)
	}
	if video.DurationSeconds != 12.35 || video.FramesAnalyzed != 4 {
		t.Fatalf("unexpected duration/frames %v/%d", video.DurationSeconds, video.FramesAnalyzed)
	}
	q := video.QualityMetrics
	if *q.LightingQuality != "good" || *q.NoiseLevel != "low" || *q.CameraAngle != "front" {
		t.Fatalf("unexpected quality %s/%s/%s", *q.LightingQuality, *q.NoiseLevel, *q.CameraAngle)
	}
}

func TestAggregateNoFace(t *testing.T) {
	frames := make([]Frame, 20)
	frames[0].Face = true
	video := Aggregate(Stream{Frames: frames, FramesRead: 300}, 10)

	if video.FaceDetected {
		t.Fatal("expected face presence below 10% to count as not detected")
	}
	if video.FacePresence.Percentage != nil || *video.FacePresence.Label != analysis.LabelNotEvaluated {
		t.Fatalf("unexpected face presence %+v", video.FacePresence)
	}
	if video.EyeContact.Score != nil || video.EyeContact.Assessment != analysis.LabelNotEvaluated {
		t.Fatalf("unexpected eye contact %+v", video.EyeContact)
	}
	if video.Posture.Score != nil || video.PoseLandmarksDetected || video.PoseLandmarksPercentage != nil {
		t.Fatalf("unexpected posture %+v", video.Posture)
	}
	if video.ConfidenceEstimate != nil {
		t.Fatalf("expected nil confidence, got %v", *video.ConfidenceEstimate)
	}
	if video.FramesAnalyzed != 300 || video.FacePresence.FramesAnalyzed != 20 {
		t.Fatalf("unexpected frame counts %d/%d", video.FramesAnalyzed, video.FacePresence.FramesAnalyzed)
	}
	if video.QualityMetrics.LightingQuality != nil || video.QualityMetrics.NoiseLevel != nil {
		t.Fatalf("expected nil quality without measurements %+v", video.QualityMetrics)
	}
	if *video.QualityMetrics.CameraAngle != "partial" {
		t.Fatalf("expected partial camera angle, got %q", *video.QualityMetrics.CameraAngle)
	}
}

func TestAggregateNoiseFallsBackToMedium(t *testing.T) {
	got := aggregateNoise([]string{"low", "low", "high", "high", "medium"})
	if *got != "medium" {
		t.Fatalf("expected medium for mixed levels, got %q", *got)
	}
	if got := aggregateNoise([]string{"high", "high", "high", "low"}); *got != "high" {
		t.Fatalf("expected dominant high, got %q", *got)
	}
}

func TestMostCommonPrefersFirstSeenOnTie(t *testing.T) {
	if got := mostCommon([]string{"partial", "front", "front", "partial"}); *got != "partial" {
		t.Fatalf("expected partial, got %q", *got)
	}
}

func TestSampleInterval(t *testing.T) {
	tests := map[float64]int{0: 15, 15: 8, 30: 15, 60: 25, 90: 35, 150: 45, 600: 60}
	for duration, want := range tests {
		if got := SampleInterval(duration); got != want {
			t.Fatalf("SampleInterval(%v) = %d, want %d", duration, got, want)
		}
	}
}

func TestAnalyzeDisabledReturnsPlaceholder(t *testing.T) {
	video, err := NewAnalyzer(Config{}, nil).Analyze(context.Background(), "/missing.mp4", 42.123)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if video.FaceDetected || video.DurationSeconds != 42.12 || *video.FacePresence.Label != analysis.LabelNotAvailable {
		t.Fatalf("unexpected placeholder %+v", video)
	}
}

func TestAnalyzeInvokesSidecar(t *testing.T) {
	videoPath := filepath.Join(t.TempDir(), "talk.mp4")
	if err := os.WriteFile(videoPath, []byte("video"), 0o644); err != nil {
		t.Fatal(err)
	}
	var gotName string
	var gotArgs []string
	analyzer := NewAnalyzer(Config{Command: "coach-vision", Args: []string{"--model", "lite"}}, nil)
	analyzer.WithRunner(func(_ context.Context, name string, args ...string) ([]byte, error) {
		gotName, gotArgs = name, args
		var b strings.Builder
		for range 10 {
			b.WriteString(`{"face":true,"eye_contact":80,"pose":true,"posture":100,"gesture":true}` + "\n")
		}
		return []byte(b.String()), nil
	})

	video, err := analyzer.Analyze(context.Background(), videoPath, 30)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if gotName != "coach-vision" {
		t.Fatalf("unexpected command %q", gotName)
	}
	want := fmt.Sprintf("--model lite --sample-rate 15 %s", videoPath)
	if strings.Join(gotArgs, " ") != want {
		t.Fatalf("unexpected args %q, want %q", strings.Join(gotArgs, " "), want)
	}
	if !video.FaceDetected || video.DurationSeconds != 30 {
		t.Fatalf("unexpected video %+v", video)
	}
}

func TestAnalyzeWrapsSidecarFailure(t *testing.T) {
	videoPath := filepath.Join(t.TempDir(), "talk.mp4")
	if err := os.WriteFile(videoPath, []byte("video"), 0o644); err != nil {
		t.Fatal(err)
	}
	analyzer := NewAnalyzer(Config{Command: "coach-vision", SampleRate: 3}, nil)
	analyzer.WithRunner(func(context.Context, string, ...string) ([]byte, error) {
		return nil, errors.New("model crashed")
	})
	_, err := analyzer.Analyze(context.Background(), videoPath, 30)
	if !errors.Is(err, services.ErrExternalTool) || !strings.Contains(err.Error(), "model crashed") {
		t.Fatalf("expected wrapped external tool error, got %v", err)
	}
}

func TestAnalyzeMissingVideo(t *testing.T) {
	analyzer := NewAnalyzer(Config{Command: "coach-vision"}, nil)
	_, err := analyzer.Analyze(context.Background(), filepath.Join(t.TempDir(), "nope.mp4"), 30)
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
