// Package config loads, normalizes, and validates presentcoach configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// PRESENTCOACH_LLM_API_KEY and HF_TOKEN. The Config type centralizes every
// knob the server and CLI need so state directories, analysis thresholds, and
// external service credentials are discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
