package pipeline

import (
	"presentcoach/internal/analysis"
	"presentcoach/internal/eligibility"
	"presentcoach/internal/feedback"
	"presentcoach/internal/scoring"
)

// Report status labels.
const (
	LabelValid       = "Valid Presentation"
	LabelLimitations = "Presentation with Limitations"
)

// Report is the persisted result of a completed run. It is never modified
// after it is saved; a new run replaces it.
type Report struct {
	Status             string              `json:"status"`
	EligibilityDetails eligibility.Details `json:"eligibility_details"`
	Transcription      Transcription       `json:"transcription"`
	AudioAnalysis      analysis.Audio      `json:"audio_analysis"`
	TextAnalysis       analysis.Text       `json:"text_analysis"`
	VideoAnalysis      analysis.Video      `json:"video_analysis"`
	Scores             scoring.Scores      `json:"scores"`
	Feedback           feedback.Feedback   `json:"feedback"`
	Metadata           Metadata            `json:"metadata"`
	AnalysisStatus     Status              `json:"analysis_status"`
	AudioPresent       bool                `json:"audio_present"`
	SpeechDetected     bool                `json:"speech_detected"`
	FaceDetected       bool                `json:"face_detected"`
	WordCount          int                 `json:"word_count"`
	MetricAvailability MetricAvailability  `json:"metric_availability"`
	WarningMessage     *string             `json:"warning_message"`
	Stages             []StageResult       `json:"stages"`
}

// Transcription summarizes the speech-to-text output.
type Transcription struct {
	Text          string `json:"text"`
	Language      string `json:"language"`
	SegmentsCount int    `json:"segments_count"`
	WordCount     int    `json:"word_count"`
}

// Metadata records run-level facts.
type Metadata struct {
	VideoPath             string                  `json:"video_path"`
	DurationSeconds       float64                 `json:"duration_seconds"`
	AnalysisTimestamp     string                  `json:"analysis_timestamp"`
	SpeechDetected        bool                    `json:"speech_detected"`
	AudioPresent          bool                    `json:"audio_present"`
	WordCount             int                     `json:"word_count"`
	FaceDetected          bool                    `json:"face_detected"`
	PoseLandmarksDetected bool                    `json:"pose_landmarks_detected"`
	MinWordsRequired      int                     `json:"min_words_required"`
	QualityMetrics        analysis.QualityMetrics `json:"quality_metrics"`
}

// MetricAvailability tells clients which metric families carry evidence.
type MetricAvailability struct {
	Speech       bool `json:"speech"`
	BodyLanguage bool `json:"body_language"`
}

// FinalScore returns the final score, or nil when there was too little data.
func (r Report) FinalScore() *float64 {
	return r.Scores.Final.FinalScore
}

// Grade returns the letter grade, or nil when unscored.
func (r Report) Grade() *string {
	return r.Scores.Final.Grade
}
