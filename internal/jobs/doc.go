// Package jobs tracks analysis runs in memory and drives them in the
// background.
//
// A Manager holds one entry per session id and guarantees at most one
// processing run per session: deduplication and registration happen under a
// single mutex, so concurrent Start calls for the same session launch exactly
// one worker. Workers execute the pipeline on a context detached from the
// caller, persist checkpoints and the terminal outcome through a
// pipeline.ReportSink, and only then update the in-memory mirror, which
// makes the store authoritative and lets the mirror converge to it.
//
// Subscribers receive a Job snapshot after every mirror change; the HTTP
// stream endpoint and the CLI progress renderer both consume this bus.
package jobs
