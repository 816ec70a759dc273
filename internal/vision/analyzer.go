package vision

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"presentcoach/internal/analysis"
	"presentcoach/internal/logging"
	"presentcoach/internal/services"
)

// Config selects the sidecar command and frame sampling.
type Config struct {
	Command string
	Args    []string
	// SampleRate analyzes every Nth frame. Zero derives it from the duration.
	SampleRate int
}

// Runner executes the sidecar and returns its standard output.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// Analyzer runs the vision sidecar for one video at a time.
type Analyzer struct {
	cfg    Config
	logger *slog.Logger
	run    Runner
}

// NewAnalyzer constructs an analyzer. An empty command yields placeholder
// documents with no face evidence.
func NewAnalyzer(cfg Config, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = logging.NewNop()
	}
	cfg.Command = strings.TrimSpace(cfg.Command)
	return &Analyzer{
		cfg:    cfg,
		logger: logging.NewComponentLogger(logger, "vision"),
		run:    runCommand,
	}
}

// WithRunner replaces command execution (for testing).
func (a *Analyzer) WithRunner(run Runner) {
	if run != nil {
		a.run = run
	}
}

// Enabled reports whether a sidecar command is configured.
func (a *Analyzer) Enabled() bool {
	return a != nil && a.cfg.Command != ""
}

// Analyze samples frames from videoPath and aggregates the observations.
// knownDuration is the container duration from ffprobe.
func (a *Analyzer) Analyze(ctx context.Context, videoPath string, knownDuration float64) (analysis.Video, error) {
	if !a.Enabled() {
		a.logger.Debug("vision sidecar not configured; skipping frame analysis")
		return analysis.VideoPlaceholder(round2(knownDuration)), nil
	}
	if _, err := os.Stat(videoPath); err != nil {
		return analysis.Video{}, services.Wrap(services.ErrNotFound, "video", "stat", "video file not found", err)
	}

	interval := a.cfg.SampleRate
	if interval <= 0 {
		interval = SampleInterval(knownDuration)
	}
	args := append([]string{}, a.cfg.Args...)
	args = append(args, "--sample-rate", strconv.Itoa(interval), videoPath)

	a.logger.Info("video analysis started",
		logging.String("video_path", videoPath),
		logging.Int("sample_rate", interval),
		logging.Float64("duration_seconds", knownDuration),
	)
	output, err := a.run(ctx, a.cfg.Command, args...)
	if err != nil {
		return analysis.Video{}, services.Wrap(services.ErrExternalTool, "video", "sidecar", "frame analysis failed", err)
	}
	stream, err := Parse(bytes.NewReader(output))
	if err != nil {
		return analysis.Video{}, services.Wrap(services.ErrValidation, "video", "decode", "invalid sidecar output", err)
	}

	duration := knownDuration
	if duration <= 0 && stream.FPS > 0 {
		duration = float64(stream.FramesRead) / stream.FPS
	}
	video := Aggregate(stream, duration)
	a.logger.Info("video analysis complete",
		logging.Int("frames_sampled", len(stream.Frames)),
		logging.Bool("face_detected", video.FaceDetected),
		logging.Bool("pose_landmarks_detected", video.PoseLandmarksDetected),
	)
	return video, nil
}

// SampleInterval picks a frame stride targeting a few dozen samples per video.
func SampleInterval(duration float64) int {
	switch {
	case duration <= 0:
		return 15
	case duration <= 20:
		return 8
	case duration <= 40:
		return 15
	case duration <= 60:
		return 25
	case duration <= 120:
		return 35
	case duration <= 180:
		return 45
	default:
		return 60
	}
}

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	output, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%s: %w: %s", name, err, msg)
		}
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return output, nil
}
