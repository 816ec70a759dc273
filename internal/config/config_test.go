package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"presentcoach/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("PRESENTCOACH_LLM_API_KEY", "")
	t.Setenv("OPENROUTER_API_KEY", "")
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantState := filepath.Join(tempHome, ".local", "share", "presentcoach")
	if cfg.Paths.StateDir != wantState {
		t.Fatalf("unexpected state dir: got %q want %q", cfg.Paths.StateDir, wantState)
	}
	if cfg.DatabasePath() != filepath.Join(wantState, "presentcoach.db") {
		t.Fatalf("unexpected database path: %q", cfg.DatabasePath())
	}
	if cfg.Analysis.MinDurationSeconds != 10 || cfg.Analysis.MinWordCount != 10 || cfg.Analysis.MinFrames != 50 {
		t.Fatalf("unexpected analysis defaults: %+v", cfg.Analysis)
	}
	if cfg.Analysis.MaxConcurrentRuns != 0 {
		t.Fatalf("expected unbounded runs by default, got %d", cfg.Analysis.MaxConcurrentRuns)
	}
	if cfg.Server.Bind != "127.0.0.1:7590" {
		t.Fatalf("unexpected server bind: %q", cfg.Server.Bind)
	}
	if cfg.Transcription.VADMethod != "silero" {
		t.Fatalf("expected silero VAD default, got %q", cfg.Transcription.VADMethod)
	}
	if cfg.LLMReady() {
		t.Fatal("expected LLM to be unavailable without an API key")
	}
}

func TestLoadCustomPath(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	configPath := filepath.Join(dir, "custom.toml")
	content := `
[paths]
state_dir = "~/coach-state"

[analysis]
max_concurrent_runs = 4
keep_audio = true

[vision]
command = "  presentcoach-vision  "
args = ["--model", "", "full"]

[logging]
format = "JSON"
level = "Debug"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != configPath {
		t.Fatalf("expected custom path to resolve, got %q exists=%v", resolved, exists)
	}
	home, _ := os.UserHomeDir()
	if cfg.Paths.StateDir != filepath.Join(home, "coach-state") {
		t.Fatalf("unexpected state dir: %q", cfg.Paths.StateDir)
	}
	if cfg.Analysis.MaxConcurrentRuns != 4 || !cfg.Analysis.KeepAudio {
		t.Fatalf("unexpected analysis section: %+v", cfg.Analysis)
	}
	if cfg.Vision.Command != "presentcoach-vision" {
		t.Fatalf("expected trimmed vision command, got %q", cfg.Vision.Command)
	}
	if strings.Join(cfg.Vision.Args, ",") != "--model,full" {
		t.Fatalf("expected blank args removed, got %v", cfg.Vision.Args)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("expected lowercased logging settings, got %+v", cfg.Logging)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	configPath := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(configPath, []byte("[analysis]\nmin_wordcount = 3\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(configPath); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestEnvVarFillsAPIKeys(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	configPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(configPath, []byte("[llm]\nenabled = true\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("PRESENTCOACH_LLM_API_KEY", "env-llm")
	t.Setenv("HF_TOKEN", "env-hf")

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.LLM.APIKey != "env-llm" {
		t.Errorf("expected LLM key from env, got %q", cfg.LLM.APIKey)
	}
	if !cfg.LLMReady() {
		t.Error("expected LLM to be ready with a key")
	}
	if cfg.Transcription.HFToken != "env-hf" {
		t.Errorf("expected HuggingFace token from env, got %q", cfg.Transcription.HFToken)
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}

	var cfg config.Config
	if err := toml.Unmarshal(contents, &cfg); err != nil {
		t.Fatalf("unmarshal sample: %v", err)
	}
	if !strings.Contains(cfg.Paths.StateDir, "presentcoach") {
		t.Fatalf("expected state dir to contain presentcoach, got %q", cfg.Paths.StateDir)
	}
	if cfg.Analysis.MinFrames != 50 {
		t.Fatalf("unexpected sample min frames: %d", cfg.Analysis.MinFrames)
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"zero duration", func(c *config.Config) { c.Analysis.MinDurationSeconds = 0 }},
		{"negative runs", func(c *config.Config) { c.Analysis.MaxConcurrentRuns = -1 }},
		{"bad vad", func(c *config.Config) { c.Transcription.VADMethod = "webrtc" }},
		{"pyannote without token", func(c *config.Config) { c.Transcription.VADMethod = "pyannote" }},
		{"bad llm url", func(c *config.Config) { c.LLM.BaseURL = "openrouter.ai" }},
		{"bare ntfy topic", func(c *config.Config) { c.Notifications.NtfyTopic = "presentcoach" }},
		{"bad log format", func(c *config.Config) { c.Logging.Format = "xml" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}

	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
}
