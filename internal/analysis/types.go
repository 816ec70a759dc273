package analysis

// Label values attached to measurements that were not evaluated.
const (
	LabelNotAvailable = "N/A"
	LabelNotEvaluated = "Not Evaluated"
)

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }

// String returns a pointer to v.
func String(v string) *string { return &v }

// Audio is the output of the speech delivery analyzer.
type Audio struct {
	SpeakingSpeed   SpeakingSpeed `json:"speaking_speed"`
	FillerWords     FillerWords   `json:"filler_words"`
	Pitch           Pitch         `json:"pitch"`
	Volume          Volume        `json:"volume"`
	DurationSeconds float64       `json:"duration_seconds"`
}

// SpeakingSpeed holds words-per-minute and its assessment bucket.
type SpeakingSpeed struct {
	WPM        *float64 `json:"wpm"`
	Assessment string   `json:"assessment"`
	Label      *string  `json:"label"`
}

// FillerWords counts filler tokens such as "um" and "you know".
type FillerWords struct {
	Total      int            `json:"total"`
	Percentage *float64       `json:"percentage"`
	Breakdown  map[string]int `json:"breakdown"`
	Label      *string        `json:"label"`
}

// Pitch summarizes fundamental frequency in Hz.
type Pitch struct {
	Mean           *float64 `json:"mean"`
	Std            *float64 `json:"std"`
	StabilityScore *float64 `json:"stability_score"`
	Min            *float64 `json:"min"`
	Max            *float64 `json:"max"`
	Label          *string  `json:"label"`
}

// Volume summarizes RMS loudness in dB.
type Volume struct {
	MeanDB         *float64 `json:"mean_db"`
	StdDB          *float64 `json:"std_db"`
	StabilityScore *float64 `json:"stability_score"`
	LevelScore     *float64 `json:"level_score"`
	Min            *float64 `json:"min"`
	Max            *float64 `json:"max"`
	Label          *string  `json:"label"`
}

// Text is the output of the transcript quality analyzer.
type Text struct {
	Grammar    Grammar    `json:"grammar"`
	Repetition Repetition `json:"repetition"`
	Structure  Structure  `json:"structure"`
	TextLength int        `json:"text_length"`
	WordCount  int        `json:"word_count"`
}

// Grammar holds heuristic grammar findings.
type Grammar struct {
	Score         *float64 `json:"score"`
	Issues        []string `json:"issues"`
	SentenceCount int      `json:"sentence_count"`
	IssueCount    int      `json:"issue_count"`
	Label         *string  `json:"label"`
}

// PhraseCount records a repeated phrase and its frequency.
type PhraseCount struct {
	Phrase string `json:"phrase"`
	Count  int    `json:"count"`
}

// Repetition holds repeated phrases and overused words.
type Repetition struct {
	Score           *float64       `json:"repetition_score"`
	RepeatedPhrases []PhraseCount  `json:"repeated_phrases"`
	RepeatedWords   map[string]int `json:"repeated_words"`
	Label           *string        `json:"label"`
}

// Structure reports whether the talk has an introduction, body, and conclusion.
type Structure struct {
	HasIntro      bool     `json:"has_intro"`
	HasBody       bool     `json:"has_body"`
	HasConclusion bool     `json:"has_conclusion"`
	Score         *float64 `json:"structure_score"`
	WordCount     int      `json:"word_count"`
	SentenceCount int      `json:"sentence_count"`
	Label         *string  `json:"label"`
}

// Video is the output of the visual analyzer.
type Video struct {
	FaceDetected            bool           `json:"face_detected"`
	FacePresence            FacePresence   `json:"face_presence"`
	EyeContact              EyeContact     `json:"eye_contact"`
	Posture                 Posture        `json:"posture"`
	Gestures                Gestures       `json:"gestures"`
	PoseLandmarksDetected   bool           `json:"pose_landmarks_detected"`
	PoseLandmarksPercentage *float64       `json:"pose_landmarks_percentage"`
	ConfidenceEstimate      *float64       `json:"confidence_estimate"`
	DurationSeconds         float64        `json:"duration_seconds"`
	FramesAnalyzed          int            `json:"frames_analyzed"`
	QualityMetrics          QualityMetrics `json:"quality_metrics"`
}

// FacePresence is the share of sampled frames with a detected face.
type FacePresence struct {
	Percentage     *float64 `json:"percentage"`
	FramesAnalyzed int      `json:"frames_analyzed"`
	Label          *string  `json:"label"`
}

// EyeContact holds the mean gaze score and forward-facing frame ratio.
type EyeContact struct {
	Score              *float64 `json:"score"`
	ForwardFacingRatio *float64 `json:"forward_facing_ratio"`
	Assessment         string   `json:"assessment"`
	Label              *string  `json:"label"`
}

// Posture holds the mean shoulder-alignment score.
type Posture struct {
	Score            *float64 `json:"score"`
	ConsistencyScore *float64 `json:"consistency_score"`
	Assessment       string   `json:"assessment"`
	Label            *string  `json:"label"`
}

// Gestures is the share of sampled frames with visible hand movement.
type Gestures struct {
	FrequencyPercentage *float64 `json:"frequency_percentage"`
	Assessment          string   `json:"assessment"`
	Label               *string  `json:"label"`
}

// QualityMetrics summarizes recording conditions.
type QualityMetrics struct {
	LightingQuality *string `json:"lighting_quality"`
	NoiseLevel      *string `json:"noise_level"`
	CameraAngle     *string `json:"camera_angle"`
}
