// Package audioanalysis measures speech delivery from the transcript and the
// extracted PCM audio.
//
// Transcript metrics are speaking rate in words per minute and filler word
// usage. Signal metrics are pitch, estimated by normalized autocorrelation on
// voiced frames, and loudness, from frame RMS in decibels with an 80 dB
// floor below the peak. Each metric group is independently nullable: a signal
// that cannot be decoded leaves pitch and volume nil while the transcript
// metrics are still reported.
package audioanalysis
