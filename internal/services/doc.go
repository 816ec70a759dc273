// Package services defines shared utilities consumed by the pipeline stages
// and external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp session IDs, stage names, and correlation
//     identifiers for logging and tracing.
//   - Structured error markers plus the Wrap helper that tag failures with a
//     category so logs carry a consistent operator hint.
//
// Use these helpers when wiring new stage logic so operational behaviour (error
// handling, observability) stays uniform across the pipeline.
package services
