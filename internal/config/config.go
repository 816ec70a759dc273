package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	StateDir string `toml:"state_dir"`
	WorkDir  string `toml:"work_dir"`
	LogDir   string `toml:"log_dir"`
}

// Analysis contains the evidence thresholds and worker settings for analysis runs.
type Analysis struct {
	MinDurationSeconds float64 `toml:"min_duration_seconds"`
	MinWordCount       int     `toml:"min_word_count"`
	MinFrames          int     `toml:"min_frames"`
	// MaxConcurrentRuns bounds how many runs execute at once. Zero keeps the
	// goroutine-per-run model with no upper bound.
	MaxConcurrentRuns int  `toml:"max_concurrent_runs"`
	KeepAudio         bool `toml:"keep_audio"`
}

// Transcription contains configuration for WhisperX speech-to-text.
type Transcription struct {
	Model       string `toml:"model"`
	Language    string `toml:"language"`
	CUDAEnabled bool   `toml:"cuda_enabled"`
	VADMethod   string `toml:"vad_method"`
	HFToken     string `toml:"hf_token"`
	CacheDir    string `toml:"cache_dir"`
}

// Vision contains configuration for the frame analysis sidecar.
type Vision struct {
	// Command is the executable that emits per-frame observations as JSON
	// lines. Empty disables face and pose evidence.
	Command string   `toml:"command"`
	Args    []string `toml:"args"`
	// SampleRate analyzes every Nth frame. Zero picks an interval from the
	// video duration.
	SampleRate int `toml:"sample_rate"`
}

// LLM contains connection settings for the feedback generator.
type LLM struct {
	Enabled        bool   `toml:"enabled"`
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	Model          string `toml:"model"`
	Referer        string `toml:"referer"`
	Title          string `toml:"title"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Server contains configuration for the HTTP API.
type Server struct {
	Bind                  string `toml:"bind"`
	RequestTimeoutSeconds int    `toml:"request_timeout_seconds"`
}

// Notifications contains configuration for ntfy push notifications.
type Notifications struct {
	NtfyTopic      string `toml:"ntfy_topic"`
	RequestTimeout int    `toml:"request_timeout"`
	OnSuccess      bool   `toml:"on_success"`
	OnFailure      bool   `toml:"on_failure"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for presentcoach.
//
// Configuration sections by subsystem:
//   - Paths: state database, scratch audio, and logs
//   - Analysis: eligibility thresholds and worker bounds
//   - Transcription: WhisperX model selection
//   - Vision: frame analysis sidecar command
//   - LLM: feedback generation backend
//   - Server: HTTP API bind address and timeouts
//   - Notifications: ntfy push notification settings
//   - Logging: log format and level
type Config struct {
	Paths         Paths         `toml:"paths"`
	Analysis      Analysis      `toml:"analysis"`
	Transcription Transcription `toml:"transcription"`
	Vision        Vision        `toml:"vision"`
	LLM           LLM           `toml:"llm"`
	Server        Server        `toml:"server"`
	Notifications Notifications `toml:"notifications"`
	Logging       Logging       `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("presentcoach.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the state, scratch, and log directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.StateDir, c.Paths.WorkDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// DatabasePath returns the SQLite report store location.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.Paths.StateDir, "presentcoach.db")
}

// LockPath returns the single-instance server lock location.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.StateDir, "presentcoach.lock")
}

// FFmpegBinary returns the ffmpeg executable name used for audio extraction.
func (c *Config) FFmpegBinary() string {
	return "ffmpeg"
}

// FFprobeBinary returns the ffprobe executable name used for media inspection.
func (c *Config) FFprobeBinary() string {
	return "ffprobe"
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// LLMConfig contains the feedback generator connection settings.
type LLMConfig struct {
	APIKey         string
	BaseURL        string
	Model          string
	Referer        string
	Title          string
	TimeoutSeconds int
}

// GetLLM returns the LLM connection settings.
func (c *Config) GetLLM() LLMConfig {
	return LLMConfig{
		APIKey:         strings.TrimSpace(c.LLM.APIKey),
		BaseURL:        strings.TrimSpace(c.LLM.BaseURL),
		Model:          strings.TrimSpace(c.LLM.Model),
		Referer:        strings.TrimSpace(c.LLM.Referer),
		Title:          strings.TrimSpace(c.LLM.Title),
		TimeoutSeconds: c.LLM.TimeoutSeconds,
	}
}

// LLMReady reports whether feedback generation should attempt the LLM backend.
func (c *Config) LLMReady() bool {
	return c.LLM.Enabled && strings.TrimSpace(c.LLM.APIKey) != ""
}
