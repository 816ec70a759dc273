package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"presentcoach/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
	pathSet bool
}

// NewConfig produces a config seeded with unique temp directories per test.
// The LLM backend is disabled so tests never reach the network.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Paths.WorkDir = filepath.Join(base, "work")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Transcription.CacheDir = filepath.Join(base, "cache")
	cfgVal.LLM.Enabled = false
	cfgVal.LLM.APIKey = ""
	cfgVal.Server.Bind = "127.0.0.1:0"

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithLLM enables the LLM backend against baseURL.
func WithLLM(baseURL, apiKey string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.LLM.Enabled = true
		b.cfg.LLM.BaseURL = baseURL
		b.cfg.LLM.APIKey = apiKey
	}
}

// WithMaxConcurrentRuns bounds the number of simultaneous analysis runs.
func WithMaxConcurrentRuns(n int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Analysis.MaxConcurrentRuns = n
	}
}

// WithStubbedBinaries writes stub executables for the provided names and
// prepends them to PATH. If names is empty, the default external binaries are
// stubbed.
func WithStubbedBinaries(names ...string) ConfigOption {
	return func(b *configBuilder) {
		if len(names) == 0 {
			names = []string{"ffmpeg", "ffprobe", "uvx"}
		}
		for _, name := range names {
			b.writeStub(name, "exit 0")
		}
	}
}

// WithStubbedScript installs name on PATH running the given shell body.
func WithStubbedScript(name, body string) ConfigOption {
	return func(b *configBuilder) {
		b.writeStub(name, body)
	}
}

func (b *configBuilder) writeStub(name, body string) {
	binDir := filepath.Join(b.baseDir, "bin")
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		b.t.Fatalf("mkdir bin dir: %v", err)
	}
	script := []byte("#!/bin/sh\n" + body + "\n")
	if err := os.WriteFile(filepath.Join(binDir, name), script, 0o755); err != nil {
		b.t.Fatalf("write stub %s: %v", name, err)
	}
	if b.pathSet {
		return
	}
	b.pathSet = true
	b.t.Setenv("PATH", binDir+string(os.PathListSeparator)+os.Getenv("PATH"))
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.StateDir)
}
