package main

import (
	"testing"

	"presentcoach/internal/pipeline"
	"presentcoach/internal/scoring"
)

func TestRenderReportShowsWarningAndSkippedLabel(t *testing.T) {
	report := sampleReport("/videos/talk.mp4")
	report.AnalysisStatus = pipeline.StatusCompletedWithWarning
	report.Status = pipeline.LabelLimitations
	report.WarningMessage = stringPtr("Face not detected in video. Body language metrics unavailable.")

	out := renderReport("s1", report, false)
	requireContains(t, out, "[WARN] "+pipeline.LabelLimitations)
	requireContains(t, out, "Face not detected in video")
	requireContains(t, out, "N/A")
	requireContains(t, out, "32.00")
	requireNotContains(t, out, ansiReset)
}

func TestFormatFinalWithoutScore(t *testing.T) {
	final := scoring.FinalScore{Warning: stringPtr(scoring.InsufficientDataWarning)}
	got := formatFinal(final)
	want := "N/A (" + scoring.InsufficientDataWarning + ")"
	if got != want {
		t.Fatalf("formatFinal = %q, want %q", got, want)
	}
}

func TestRenderStatusLineColorizes(t *testing.T) {
	plain := renderStatusLine("FFmpeg", statusOK, "ffmpeg", false)
	if plain != "  FFmpeg:              [OK] ffmpeg" {
		t.Fatalf("unexpected line %q", plain)
	}
	colored := renderStatusLine("FFmpeg", statusError, "", true)
	if colored != ansiRed+"  FFmpeg:              [ERROR]"+ansiReset {
		t.Fatalf("unexpected colored line %q", colored)
	}
}
