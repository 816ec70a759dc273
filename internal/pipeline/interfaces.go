package pipeline

import (
	"context"

	"presentcoach/internal/analysis"
	"presentcoach/internal/feedback"
	"presentcoach/internal/media/ffprobe"
	"presentcoach/internal/services/whisperx"
)

// MediaProber reports container duration, stream presence and frame data.
type MediaProber interface {
	Probe(ctx context.Context, path string) (ffprobe.Summary, error)
}

// AudioExtractor writes the mono 16 kHz WAV for source to dest.
type AudioExtractor interface {
	ExtractAudio(ctx context.Context, source, dest string) error
}

// Transcriber converts the extracted WAV into text.
type Transcriber interface {
	Transcribe(ctx context.Context, source, outputDir string) (whisperx.Transcript, error)
}

// AudioAnalyzer measures speaking rate, fillers, pitch and volume.
type AudioAnalyzer interface {
	Analyze(ctx context.Context, audioPath, text string, durationSeconds float64) (analysis.Audio, error)
}

// TextAnalyzer scores the transcript.
type TextAnalyzer interface {
	Analyze(ctx context.Context, text string) (analysis.Text, error)
}

// VideoAnalyzer measures on-camera delivery.
type VideoAnalyzer interface {
	Analyze(ctx context.Context, videoPath string, knownDuration float64) (analysis.Video, error)
}

// FeedbackGenerator writes coaching feedback. It must not fail.
type FeedbackGenerator interface {
	Generate(ctx context.Context, in feedback.Input) feedback.Feedback
}

// ReportSink persists job state and the final report. SaveReport records the
// terminal status and the report together; MarkFailed clears any earlier
// report for the session.
type ReportSink interface {
	MarkProcessing(ctx context.Context, run Run) error
	UpdateProgress(ctx context.Context, sessionID string, percent int, message string) error
	SaveReport(ctx context.Context, sessionID string, status Status, report Report) error
	MarkFailed(ctx context.Context, sessionID, message string, tooShort bool) error
}
