// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// Key types:
//   - Result: parsed ffprobe output containing streams and format metadata
//   - Stream: individual audio/video stream properties
//   - Summary: the duration, audio presence, and frame figures the
//     analysis pipeline gates on
//
// Primary entry points:
//   - Inspect: executes ffprobe and returns parsed Result
//   - Prober.Probe: inspects a file and reduces it to a Summary
package ffprobe
