// Package pipeline runs one presentation analysis from video file to report.
//
// Stages execute in a fixed order: probe and audio extraction, transcription,
// an advisory eligibility check, audio, text and video analysis, scoring, and
// feedback. Missing evidence never aborts a run. Audio and text analysis are
// skipped when no speech is detected and video failures are recorded as
// warnings; both leave fixed-shape placeholder documents in the report.
//
// Only two conditions end a run without a report: a video shorter than the
// minimum duration (reported as ErrTooShort before any expensive work) and
// an error from a stage that has no recovery path. The orchestrator never
// persists anything itself; callers hand the Report to a ReportSink.
package pipeline
