package analysis

// AudioPlaceholder is the audio document recorded when no speech was detected.
func AudioPlaceholder(duration float64) Audio {
	return Audio{
		SpeakingSpeed:   SpeakingSpeed{Assessment: LabelNotAvailable, Label: String(LabelNotAvailable)},
		FillerWords:     FillerWords{Breakdown: map[string]int{}, Label: String(LabelNotAvailable)},
		Pitch:           Pitch{Label: String(LabelNotAvailable)},
		Volume:          Volume{Label: String(LabelNotAvailable)},
		DurationSeconds: duration,
	}
}

// TextPlaceholder is the text document recorded when no speech was detected.
func TextPlaceholder() Text {
	return Text{
		Grammar:    Grammar{Issues: []string{}, Label: String(LabelNotAvailable)},
		Repetition: Repetition{RepeatedPhrases: []PhraseCount{}, RepeatedWords: map[string]int{}, Label: String(LabelNotAvailable)},
		Structure:  Structure{Label: String(LabelNotAvailable)},
	}
}

// VideoPlaceholder is the video document recorded when visual analysis could
// not run or failed. FaceDetected and PoseLandmarksDetected are always false.
func VideoPlaceholder(duration float64) Video {
	return Video{
		FacePresence:    FacePresence{Label: String(LabelNotAvailable)},
		EyeContact:      EyeContact{Assessment: LabelNotAvailable, Label: String(LabelNotAvailable)},
		Posture:         Posture{Assessment: LabelNotAvailable, Label: String(LabelNotAvailable)},
		Gestures:        Gestures{Assessment: LabelNotAvailable, Label: String(LabelNotAvailable)},
		DurationSeconds: duration,
	}
}
