// Package whisperx wraps the ffmpeg and WhisperX command lines used to turn a
// presentation video into a transcript.
//
// ExtractAudio writes a mono 16 kHz PCM WAV beside the run's work directory.
// Transcribe runs WhisperX through uvx against that file and loads the JSON
// output into a Transcript with text, timed segments, and the detected
// language. Both go through a swappable command runner so tests can stub the
// external tools.
package whisperx
