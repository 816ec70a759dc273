// Package audio loads the PCM WAV files produced for transcription into
// normalized float samples for signal analysis.
//
// Decoding is done by github.com/go-audio/wav. Multi-channel input is
// downmixed to mono by averaging and integer samples are scaled to [-1, 1].
package audio
