package feedback

import "fmt"

// NoSpeechNote is always part of the improvements for runs without speech.
const NoSpeechNote = "Note: No speech was detected in this video. For complete analysis, ensure your microphone is working and you speak clearly."

// Template builds feedback from fixed rules over the metrics in in.
func Template(in Input) Feedback {
	if !in.SpeechDetected {
		return visualOnly(in)
	}
	return fullTemplate(in)
}

func visualOnly(in Input) Feedback {
	eye := in.Video.EyeContact.Score
	posture := in.Video.Posture.Score
	gestures := in.Video.Gestures.FrequencyPercentage

	strengths := []string{"You completed the video recording successfully."}
	if atLeast(eye, 70) {
		strengths = append(strengths, "You maintained good eye contact throughout the video.")
	}
	if atLeast(posture, 70) {
		strengths = append(strengths, "Your posture demonstrates confidence and professionalism.")
	}
	if within(gestures, 20, 50) {
		strengths = append(strengths, "Your gesture usage is appropriate and engaging.")
	}

	var improvements []string
	if below(eye, 60) {
		improvements = append(improvements, "Improve eye contact by looking directly at the camera more frequently.")
	}
	if below(posture, 70) {
		improvements = append(improvements, "Work on maintaining an upright, confident posture.")
	}
	switch {
	case below(gestures, 20):
		improvements = append(improvements, "Use more hand gestures to emphasize key points.")
	case above(gestures, 60):
		improvements = append(improvements, "Reduce excessive gestures. Use them strategically.")
	}
	// The note takes the last slot so the cap never drops it.
	if len(improvements) > maxItems-1 {
		improvements = improvements[:maxItems-1]
	}
	improvements = append(improvements, NoSpeechNote)

	return Feedback{
		Strengths:    capItems(strengths),
		Improvements: improvements,
		OverallAssessment: fmt.Sprintf("This analysis is based on visual metrics only (posture, gestures, eye contact). "+
			"No speech was detected, so voice and content quality metrics were not evaluated. "+
			"Final score: %s/100 (limited analysis).", num(in.Scores.Final.FinalScore)),
		GeneratedBy: GeneratedByTemplate,
	}
}

func fullTemplate(in Input) Feedback {
	audio, text, video := in.Audio, in.Text, in.Video
	final := in.Scores.Final
	eye := video.EyeContact.Score
	posture := video.Posture.Score
	gestures := video.Gestures.FrequencyPercentage
	filler := audio.FillerWords.Percentage

	var strengths []string
	if atLeast(in.Scores.VoiceDelivery.OverallScore, 75) {
		strengths = append(strengths, "Your voice delivery is strong with good pacing and clarity.")
	}
	if atLeast(in.Scores.ContentQuality.OverallScore, 75) {
		strengths = append(strengths, "Your content is well-structured and grammatically sound.")
	}
	if atLeast(eye, 70) {
		strengths = append(strengths, "You maintained good eye contact throughout the presentation.")
	}
	if atLeast(posture, 70) {
		strengths = append(strengths, "Your posture demonstrates confidence and professionalism.")
	}
	if below(filler, 5) {
		strengths = append(strengths, "You used minimal filler words, showing good speech control.")
	}
	if len(strengths) == 0 {
		strengths = []string{
			"You completed the presentation successfully.",
			"Your effort to improve is commendable.",
		}
	}

	var improvements []string
	if wpm := audio.SpeakingSpeed.WPM; above(wpm, 0) {
		switch {
		case *wpm < 120:
			improvements = append(improvements, fmt.Sprintf("Your speaking speed (%s WPM) is too slow. Aim for 120-160 WPM for better engagement.", num(wpm)))
		case *wpm > 180:
			improvements = append(improvements, fmt.Sprintf("Your speaking speed (%s WPM) is too fast. Slow down to 120-160 WPM for better clarity.", num(wpm)))
		}
	}
	if atLeast(filler, 5) {
		improvements = append(improvements, fmt.Sprintf("Reduce filler words (currently %s%%). Practice pausing instead of using 'um' or 'uh'.", num(filler)))
	}
	if below(text.Grammar.Score, 70) {
		improvements = append(improvements, "Review your grammar and sentence structure. Consider practicing your script beforehand.")
	}
	if !text.Structure.HasIntro {
		improvements = append(improvements, "Add a clear introduction to set context and engage your audience from the start.")
	}
	if !text.Structure.HasConclusion {
		improvements = append(improvements, "Include a conclusion to summarize key points and provide closure.")
	}
	if below(eye, 60) {
		improvements = append(improvements, "Improve eye contact by looking directly at the camera/audience more frequently.")
	}
	if below(posture, 70) {
		improvements = append(improvements, "Work on maintaining an upright, confident posture throughout your presentation.")
	}
	switch {
	case below(gestures, 20):
		improvements = append(improvements, "Use more hand gestures to emphasize key points and make your presentation more engaging.")
	case above(gestures, 60):
		improvements = append(improvements, "Reduce excessive gestures. Use them strategically to emphasize important points.")
	}
	if len(improvements) == 0 {
		improvements = []string{"Continue practicing to refine your presentation skills."}
	}

	return Feedback{
		Strengths:    capItems(strengths),
		Improvements: capItems(improvements),
		OverallAssessment: fmt.Sprintf("Your presentation scored %s/100 (%s). Focus on the suggested improvements to enhance your performance.",
			num(final.FinalScore), label(final.Grade)),
		GeneratedBy: GeneratedByTemplate,
	}
}

func atLeast(v *float64, threshold float64) bool { return v != nil && *v >= threshold }

func below(v *float64, threshold float64) bool { return v != nil && *v < threshold }

func above(v *float64, threshold float64) bool { return v != nil && *v > threshold }

func within(v *float64, lo, hi float64) bool { return v != nil && *v >= lo && *v <= hi }
