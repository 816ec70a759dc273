package whisperx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"presentcoach/internal/language"
)

// CommandRunner executes an external command and returns its combined output
// on failure inside the error.
type CommandRunner func(ctx context.Context, name string, args ...string) error

// Service provides audio extraction and WhisperX transcription.
type Service struct {
	cfg           Config
	ffmpegBinary  string
	commandRunner CommandRunner
}

// NewService creates a WhisperX service with the given configuration.
func NewService(cfg Config, ffmpegBinary string) *Service {
	if ffmpegBinary == "" {
		ffmpegBinary = FFmpegCommand
	}
	return &Service{
		cfg:          cfg,
		ffmpegBinary: ffmpegBinary,
	}
}

// WithCommandRunner sets a custom command runner (for testing).
func (s *Service) WithCommandRunner(runner CommandRunner) {
	s.commandRunner = runner
}

// Model returns the configured model name for logging.
func (s *Service) Model() string {
	if s.cfg.Model != "" {
		return s.cfg.Model
	}
	return DefaultModel
}

func (s *Service) run(ctx context.Context, name string, args ...string) error {
	if s.commandRunner != nil {
		return s.commandRunner(ctx, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec

	// Torch 2.6 defaults torch.load to weights_only, which pyannote checkpoints reject.
	if os.Getenv("TORCH_FORCE_NO_WEIGHTS_ONLY_LOAD") == "" {
		cmd.Env = append(os.Environ(), "TORCH_FORCE_NO_WEIGHTS_ONLY_LOAD=1")
	}

	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}

// Segment is one timed span of the transcript.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Transcript is the result of a transcription.
type Transcript struct {
	Text     string    `json:"text"`
	Segments []Segment `json:"segments"`
	Language string    `json:"language"`
}

// WordCount counts whitespace-separated tokens in the transcript text.
func (t Transcript) WordCount() int {
	return len(strings.Fields(t.Text))
}

// Transcribe runs WhisperX on the WAV at source, writing its JSON output under
// outputDir, and returns the parsed transcript.
func (s *Service) Transcribe(ctx context.Context, source, outputDir string) (Transcript, error) {
	if source == "" {
		return Transcript{}, errors.New("transcribe: source path required")
	}
	if outputDir == "" {
		outputDir = filepath.Dir(source)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return Transcript{}, fmt.Errorf("transcribe: ensure output dir: %w", err)
	}

	if err := s.run(ctx, UVXCommand, s.buildArgs(source, outputDir)...); err != nil {
		return Transcript{}, fmt.Errorf("whisperx: %w", err)
	}

	baseName := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	transcript, err := LoadTranscript(filepath.Join(outputDir, baseName+".json"))
	if err != nil {
		return Transcript{}, fmt.Errorf("whisperx: %w", err)
	}
	if transcript.Language == "" {
		transcript.Language = language.ToISO2(s.cfg.Language)
	}
	return transcript, nil
}

func (s *Service) buildArgs(source, outputDir string) []string {
	args := make([]string, 0, 40)

	if s.cfg.CUDAEnabled {
		args = append(args,
			"--index-url", CUDAIndexURL,
			"--extra-index-url", PypiIndexURL,
		)
	} else {
		args = append(args, "--index-url", PypiIndexURL)
	}

	args = append(args,
		"whisperx",
		source,
		"--model", s.Model(),
		"--batch_size", BatchSize,
		"--output_dir", outputDir,
		"--output_format", OutputFormat,
		"--segment_resolution", SegmentResolution,
		"--chunk_size", ChunkSize,
		"--vad_onset", VADOnset,
		"--vad_offset", VADOffset,
		"--beam_size", BeamSize,
		"--temperature", Temperature,
	)

	vadMethod := s.cfg.VADMethod
	if vadMethod == "" {
		vadMethod = VADMethodSilero
	}
	args = append(args, "--vad_method", vadMethod)
	if vadMethod == VADMethodPyannote && s.cfg.HFToken != "" {
		args = append(args, "--hf_token", s.cfg.HFToken)
	}

	if lang := language.ToISO2(s.cfg.Language); lang != "" {
		args = append(args, "--language", lang)
	}
	if s.cfg.CacheDir != "" {
		args = append(args, "--model_dir", s.cfg.CacheDir)
	}

	if s.cfg.CUDAEnabled {
		args = append(args, "--device", CUDADevice)
	} else {
		args = append(args, "--device", CPUDevice, "--compute_type", CPUComputeType)
	}
	return args
}

type whisperXPayload struct {
	Language string    `json:"language"`
	Segments []Segment `json:"segments"`
}

// LoadTranscript parses a WhisperX JSON output file.
func LoadTranscript(jsonPath string) (Transcript, error) {
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return Transcript{}, fmt.Errorf("read whisperx json: %w", err)
	}
	var payload whisperXPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return Transcript{}, fmt.Errorf("parse whisperx json: %w", err)
	}
	parts := make([]string, 0, len(payload.Segments))
	segments := make([]Segment, 0, len(payload.Segments))
	for _, seg := range payload.Segments {
		seg.Text = strings.TrimSpace(seg.Text)
		if seg.Text == "" {
			continue
		}
		parts = append(parts, seg.Text)
		segments = append(segments, seg)
	}
	return Transcript{
		Text:     strings.Join(parts, " "),
		Segments: segments,
		Language: language.ToISO2(payload.Language),
	}, nil
}
