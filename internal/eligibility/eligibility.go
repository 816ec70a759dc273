// Package eligibility applies the hard evidence thresholds a presentation must
// meet before its analysis is considered fully reliable.
//
// Check is pure: it never fails and never logs. Callers decide whether an
// ineligible result is fatal (pre-flight duration check) or advisory
// (mid-pipeline, where warnings are attached to the report).
package eligibility

import "fmt"

// Thresholds holds the minimum measurements for an eligible presentation.
type Thresholds struct {
	MinDurationSeconds float64
	MinWordCount       int
	MinFrames          int
}

// DefaultThresholds returns the standard limits: 10s of video, 10 spoken
// words, and 50 frames.
func DefaultThresholds() Thresholds {
	return Thresholds{MinDurationSeconds: 10.0, MinWordCount: 10, MinFrames: 50}
}

// Gate evaluates measurements against a fixed set of thresholds.
type Gate struct {
	thresholds Thresholds
}

// NewGate builds a gate. Non-positive threshold fields fall back to defaults.
func NewGate(t Thresholds) Gate {
	def := DefaultThresholds()
	if t.MinDurationSeconds <= 0 {
		t.MinDurationSeconds = def.MinDurationSeconds
	}
	if t.MinWordCount <= 0 {
		t.MinWordCount = def.MinWordCount
	}
	if t.MinFrames <= 0 {
		t.MinFrames = def.MinFrames
	}
	return Gate{thresholds: t}
}

// Thresholds returns the limits the gate enforces.
func (g Gate) Thresholds() Thresholds {
	return g.thresholds
}

// Details records the raw measurements and per-rule outcomes. It is embedded
// in the persisted report as eligibility_details.
type Details struct {
	VideoDurationSeconds     float64 `json:"video_duration_seconds"`
	AudioPresent             bool    `json:"audio_present"`
	WordCount                int     `json:"word_count"`
	TotalFrames              int     `json:"total_frames"`
	MeetsDurationRequirement bool    `json:"meets_duration_requirement"`
	MeetsAudioRequirement    bool    `json:"meets_audio_requirement"`
	MeetsSpeechRequirement   bool    `json:"meets_speech_requirement"`
	MeetsFrameRequirement    bool    `json:"meets_frame_requirement"`
}

// Result is the outcome of a Check.
type Result struct {
	Eligible bool
	Warnings []string
	Details  Details
}

// Check evaluates every rule and returns one warning per failed rule.
func (g Gate) Check(duration float64, audioPresent bool, wordCount, totalFrames int) Result {
	t := g.thresholds
	details := Details{
		VideoDurationSeconds:     duration,
		AudioPresent:             audioPresent,
		WordCount:                wordCount,
		TotalFrames:              totalFrames,
		MeetsDurationRequirement: duration >= t.MinDurationSeconds,
		MeetsAudioRequirement:    audioPresent,
		MeetsSpeechRequirement:   wordCount >= t.MinWordCount,
		MeetsFrameRequirement:    totalFrames >= t.MinFrames,
	}

	var warnings []string
	if !details.MeetsDurationRequirement {
		warnings = append(warnings, fmt.Sprintf("Video duration (%.1fs) is less than minimum required (%.1fs)", duration, t.MinDurationSeconds))
	}
	if !details.MeetsAudioRequirement {
		warnings = append(warnings, "No audio track detected in video")
	}
	if !details.MeetsSpeechRequirement {
		warnings = append(warnings, fmt.Sprintf("Insufficient speech detected (%d words, minimum %d required)", wordCount, t.MinWordCount))
	}
	if !details.MeetsFrameRequirement {
		warnings = append(warnings, fmt.Sprintf("Insufficient video frames (%d frames, minimum %d required)", totalFrames, t.MinFrames))
	}

	return Result{Eligible: len(warnings) == 0, Warnings: warnings, Details: details}
}

// DurationOK reports whether duration alone satisfies the gate. The pipeline
// uses it for the fatal too-short check before any expensive stage runs.
func (g Gate) DurationOK(duration float64) bool {
	return duration >= g.thresholds.MinDurationSeconds
}

// SpeechDetected reports whether wordCount is enough to treat the recording as
// containing speech.
func (g Gate) SpeechDetected(wordCount int) bool {
	return wordCount >= g.thresholds.MinWordCount
}
