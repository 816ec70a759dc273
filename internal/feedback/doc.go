// Package feedback turns analysis results and scores into coaching feedback.
//
// Synthesizer first asks an LLM backend for strengths, improvements, and an
// overall assessment. Any backend error, missing key, or unusable payload
// falls back to a deterministic rules generator so every completed run carries
// feedback. Lists are capped at three entries.
package feedback
