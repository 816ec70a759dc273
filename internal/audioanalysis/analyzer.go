package audioanalysis

import (
	"context"
	"log/slog"

	"presentcoach/internal/analysis"
	"presentcoach/internal/logging"
	"presentcoach/internal/media/audio"
)

// Analyzer computes delivery metrics for one run.
type Analyzer struct {
	logger *slog.Logger
	load   func(path string) (audio.PCM, error)
}

// NewAnalyzer constructs an analyzer that decodes WAV files from disk.
func NewAnalyzer(logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Analyzer{
		logger: logging.NewComponentLogger(logger, "audio-analysis"),
		load:   audio.LoadWAV,
	}
}

// Analyze measures speaking rate and fillers from text, and pitch and volume
// from the WAV at audioPath. A decode failure is logged and leaves the signal
// metrics nil; only context cancellation is returned as an error.
func (a *Analyzer) Analyze(ctx context.Context, audioPath, text string, durationSeconds float64) (analysis.Audio, error) {
	if err := ctx.Err(); err != nil {
		return analysis.Audio{}, err
	}
	wpm := WordsPerMinute(text, durationSeconds)
	fillers := CountFillers(text)
	result := analysis.Audio{
		SpeakingSpeed: analysis.SpeakingSpeed{
			WPM:        analysis.Float(wpm),
			Assessment: AssessWPM(wpm),
		},
		FillerWords: analysis.FillerWords{
			Total:      fillers.Total,
			Percentage: analysis.Float(fillers.Percentage),
			Breakdown:  fillers.Breakdown,
		},
		DurationSeconds: round2(durationSeconds),
	}

	pcm, err := a.load(audioPath)
	if err != nil {
		logging.WarnWithContext(logging.WithContext(ctx, a.logger), "audio signal unavailable",
			"audio_decode_failed",
			logging.String("audio_path", audioPath),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "verify ffmpeg produced a PCM WAV file"),
			logging.String(logging.FieldImpact, "pitch and volume metrics omitted"),
		)
		na := analysis.LabelNotAvailable
		result.Pitch = analysis.Pitch{Label: &na}
		result.Volume = analysis.Volume{Label: &na}
		return result, nil
	}
	if err := ctx.Err(); err != nil {
		return analysis.Audio{}, err
	}
	result.Pitch = AnalyzePitch(pcm.Samples, pcm.SampleRate)
	result.Volume = AnalyzeVolume(pcm.Samples)

	a.logger.Debug("audio analysis complete",
		logging.Float64("wpm", wpm),
		logging.Int("filler_total", fillers.Total),
		logging.Int("samples", len(pcm.Samples)),
	)
	return result, nil
}
