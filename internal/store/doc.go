// Package store persists analysis runs and their reports in SQLite.
//
// Each session owns one row in analysis_runs. A new run overwrites the row;
// terminal status and the report are written in a single statement so a
// reader never observes a completed status without its report, and a failed
// run never leaves a report behind. The store is the authority for job state;
// the in-memory job registry only mirrors it for fast progress polling.
package store
