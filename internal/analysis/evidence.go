package analysis

// Evidence is derived once per run from raw measurements and stays immutable
// afterwards. Its flags decide which stages run and which score categories may
// contribute to the final score.
type Evidence struct {
	DurationSeconds       float64 `json:"duration_seconds"`
	AudioPresent          bool    `json:"audio_present"`
	WordCount             int     `json:"word_count"`
	SpeechDetected        bool    `json:"speech_detected"`
	TotalFrames           int     `json:"total_frames"`
	FaceDetected          bool    `json:"face_detected"`
	PoseLandmarksDetected bool    `json:"pose_landmarks_detected"`
}
