// Package llm provides a small OpenRouter-compatible chat client used to
// draft coaching feedback as JSON.
//
// The client only knows how to send a system/user prompt pair and return the
// JSON payload the model produced. Prompt construction and the template
// fallback live in the feedback package, which treats any error from this
// package as a signal to fall back.
//
// # Entry Points
//
// NewClient: construct client from Config.
// Client.CompleteJSON: send system/user prompts, receive raw JSON content.
// Client.HealthCheck: verify API key and model availability.
// DecodeLLMJSON: tolerant decoder for fenced or chatty model output.
//
// # Retry Behaviour
//
// Requests are retried on HTTP 408/429/5xx, empty completions, and network
// timeouts with exponential backoff (base 1s, capped at 10s, 5 attempts by
// default). Retry-After headers are honoured up to the cap. Context
// cancellation aborts immediately.
package llm
