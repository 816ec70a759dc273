package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the OpenRouter chat completions endpoint.
	DefaultBaseURL = "https://openrouter.ai/api/v1/chat/completions"

	jsonResponseType      = "json_object"
	defaultHTTPTimeout    = 30 * time.Second
	defaultRetryMaxDelay  = 10 * time.Second
	defaultRetryBaseDelay = 1 * time.Second
	defaultRetryAttempts  = 5
	defaultTemperature    = 0.7
	defaultMaxTokens      = 500
)

// Config captures the runtime settings required to talk to the LLM.
type Config struct {
	APIKey         string
	BaseURL        string
	Model          string
	Referer        string
	Title          string
	TimeoutSeconds int
}

// Client wraps an OpenRouter-style chat completion API.
type Client struct {
	cfg       Config
	requester *requester

	temperature float64
	maxTokens   int

	retry retryPolicy
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.requester.http = client
		}
	}
}

// WithRetryMaxAttempts overrides the default retry count.
func WithRetryMaxAttempts(attempts int) Option {
	return func(c *Client) {
		c.retry.maxAttempts = attempts
	}
}

// WithRetryBackoff overrides the retry backoff delays.
func WithRetryBackoff(baseDelay, maxDelay time.Duration) Option {
	return func(c *Client) {
		c.retry.baseDelay = baseDelay
		c.retry.maxDelay = maxDelay
	}
}

// WithSleeper replaces the timer used between retries.
func WithSleeper(sleeper func(time.Duration)) Option {
	return func(c *Client) {
		c.retry.sleeper = sleeper
	}
}

// WithSampling sets temperature and the completion token limit.
func WithSampling(temperature float64, maxTokens int) Option {
	return func(c *Client) {
		if temperature >= 0 {
			c.temperature = temperature
		}
		if maxTokens > 0 {
			c.maxTokens = maxTokens
		}
	}
}

// NewClient constructs an LLM client using the supplied configuration.
func NewClient(cfg Config, opts ...Option) *Client {
	cfg = Config{
		APIKey:         strings.TrimSpace(cfg.APIKey),
		BaseURL:        strings.TrimSpace(cfg.BaseURL),
		Model:          strings.TrimSpace(cfg.Model),
		Referer:        strings.TrimSpace(cfg.Referer),
		Title:          strings.TrimSpace(cfg.Title),
		TimeoutSeconds: cfg.TimeoutSeconds,
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	timeout := defaultHTTPTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	client := &Client{
		cfg:         cfg,
		requester:   newRequester(cfg, timeout),
		temperature: defaultTemperature,
		maxTokens:   defaultMaxTokens,
		retry: retryPolicy{
			maxAttempts: defaultRetryAttempts,
			baseDelay:   defaultRetryBaseDelay,
			maxDelay:    defaultRetryMaxDelay,
		},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Model reports the configured model identifier.
func (c *Client) Model() string {
	if c == nil {
		return ""
	}
	return c.cfg.Model
}

// CompleteJSON issues a JSON-only chat completion request and returns the raw
// content produced by the model.
func (c *Client) CompleteJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	systemPrompt = strings.TrimSpace(systemPrompt)
	userPrompt = strings.TrimSpace(userPrompt)
	switch {
	case systemPrompt == "":
		return "", errors.New("llm complete: system prompt required")
	case userPrompt == "":
		return "", errors.New("llm complete: user prompt required")
	case c.cfg.APIKey == "":
		return "", errors.New("llm complete: api key required")
	}
	return c.complete(ctx, "llm complete", chatCompletionRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature:    c.temperature,
		MaxTokens:      c.maxTokens,
		ResponseFormat: map[string]string{"type": jsonResponseType},
	})
}

// HealthCheck issues a fast ping to verify the API key and model are usable.
func (c *Client) HealthCheck(ctx context.Context) error {
	if c.cfg.APIKey == "" {
		return errors.New("llm health: api key required")
	}
	content, err := c.complete(ctx, "llm health", chatCompletionRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: "You must respond with JSON only."},
			{Role: "user", Content: "Respond with {\"ok\":true}"},
		},
		ResponseFormat: map[string]string{"type": jsonResponseType},
	})
	if err != nil {
		return err
	}
	var parsed struct {
		OK bool `json:"ok"`
	}
	if err := DecodeLLMJSON(content, &parsed); err != nil {
		return fmt.Errorf("llm health: parse payload: %w", err)
	}
	if !parsed.OK {
		return errors.New("llm health: unexpected response")
	}
	return nil
}
