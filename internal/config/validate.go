package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateAnalysis(); err != nil {
		return err
	}
	if err := c.validateTranscription(); err != nil {
		return err
	}
	if err := c.validateLLM(); err != nil {
		return err
	}
	if err := c.validateNotifications(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateAnalysis() error {
	if c.Analysis.MinDurationSeconds <= 0 {
		return errors.New("analysis.min_duration_seconds must be positive")
	}
	if c.Analysis.MinWordCount <= 0 {
		return errors.New("analysis.min_word_count must be positive")
	}
	if c.Analysis.MinFrames <= 0 {
		return errors.New("analysis.min_frames must be positive")
	}
	if c.Analysis.MaxConcurrentRuns < 0 {
		return errors.New("analysis.max_concurrent_runs must be zero (unbounded) or positive")
	}
	return nil
}

func (c *Config) validateTranscription() error {
	switch c.Transcription.VADMethod {
	case "silero", "pyannote":
	default:
		return fmt.Errorf("transcription.vad_method: unsupported value %q (want silero or pyannote)", c.Transcription.VADMethod)
	}
	if c.Transcription.VADMethod == "pyannote" && c.Transcription.HFToken == "" {
		return errors.New("transcription.hf_token is required when transcription.vad_method is pyannote")
	}
	return nil
}

func (c *Config) validateLLM() error {
	if !c.LLM.Enabled {
		return nil
	}
	if !strings.HasPrefix(c.LLM.BaseURL, "http://") && !strings.HasPrefix(c.LLM.BaseURL, "https://") {
		return fmt.Errorf("llm.base_url must be an http(s) URL, got %q", c.LLM.BaseURL)
	}
	return nil
}

func (c *Config) validateNotifications() error {
	topic := c.Notifications.NtfyTopic
	if topic == "" {
		return nil
	}
	if !strings.HasPrefix(topic, "http://") && !strings.HasPrefix(topic, "https://") {
		return fmt.Errorf("notifications.ntfy_topic must be a full URL, got %q", topic)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
