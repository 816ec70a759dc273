package feedback

import (
	"fmt"
	"strconv"
	"strings"

	"presentcoach/internal/scoring"
)

// SystemPrompt frames the model as a presentation coach.
const SystemPrompt = "You are a professional presentation coach. Provide constructive, encouraging feedback in JSON format."

const responseInstructions = `Format your response as JSON with keys: "strengths" (array), "improvements" (array), "overall_assessment" (string).
Be encouraging, specific, and actionable.`

// UserPrompt lists the metrics for the model. Runs without speech get a
// visual-only variant.
func UserPrompt(in Input) string {
	var b strings.Builder
	video := in.Video
	if !in.SpeechDetected {
		b.WriteString("This video had NO SPEECH DETECTED (silent video or insufficient audio).\n\n")
		b.WriteString("VISUAL ANALYSIS ONLY:\n")
		fmt.Fprintf(&b, "- Final Score: %s/100 (limited analysis, visual metrics only)\n", num(in.Scores.Final.FinalScore))
		fmt.Fprintf(&b, "- Eye Contact: %s/100\n", num(video.EyeContact.Score))
		fmt.Fprintf(&b, "- Posture: %s/100\n", num(video.Posture.Score))
		fmt.Fprintf(&b, "- Gestures: %s%% frequency\n", num(video.Gestures.FrequencyPercentage))
		fmt.Fprintf(&b, "- Face Presence: %s%%\n\n", num(video.FacePresence.Percentage))
		b.WriteString("Speech-based metrics (speaking speed, grammar, content quality) were NOT evaluated.\n\n")
		b.WriteString("Please provide:\n")
		b.WriteString("1. 2-3 key STRENGTHS (what they did well visually: posture, gestures, presence)\n")
		b.WriteString("2. 2-3 key IMPROVEMENTS (specific, actionable advice for visual presentation)\n")
		b.WriteString("3. A brief OVERALL ASSESSMENT mentioning that speech analysis was not possible\n\n")
		b.WriteString(responseInstructions)
		return b.String()
	}

	audio, text := in.Audio, in.Text
	final := in.Scores.Final
	b.WriteString("Analyze the following presentation metrics and provide constructive feedback.\n\n")
	b.WriteString("PRESENTATION ANALYSIS:\n")
	fmt.Fprintf(&b, "- Final Score: %s/100 (%s)\n", num(final.FinalScore), label(final.Grade))
	fmt.Fprintf(&b, "- Speaking Speed: %s WPM\n", num(audio.SpeakingSpeed.WPM))
	fmt.Fprintf(&b, "- Filler Words: %d occurrences (%s%%)\n", audio.FillerWords.Total, num(audio.FillerWords.Percentage))
	fmt.Fprintf(&b, "- Pitch Stability: %s/100\n", num(audio.Pitch.StabilityScore))
	fmt.Fprintf(&b, "- Volume Stability: %s/100\n", num(audio.Volume.StabilityScore))
	fmt.Fprintf(&b, "- Grammar Quality: %s/100\n", num(text.Grammar.Score))
	fmt.Fprintf(&b, "- Repetition Score: %s/100\n", num(text.Repetition.Score))
	fmt.Fprintf(&b, "- Structure: Intro: %t, Body: %t, Conclusion: %t\n",
		text.Structure.HasIntro, text.Structure.HasBody, text.Structure.HasConclusion)
	fmt.Fprintf(&b, "- Eye Contact: %s/100\n", num(video.EyeContact.Score))
	fmt.Fprintf(&b, "- Posture: %s/100\n", num(video.Posture.Score))
	fmt.Fprintf(&b, "- Gestures: %s%% frequency\n\n", num(video.Gestures.FrequencyPercentage))
	b.WriteString("SCORE BREAKDOWN:\n")
	for _, c := range scoring.Categories {
		fmt.Fprintf(&b, "- %s: %s/100\n", categoryTitle(c), num(final.Breakdown[c].Score))
	}
	b.WriteString("\nPlease provide:\n")
	b.WriteString("1. 2-3 key STRENGTHS (what they did well)\n")
	b.WriteString("2. 2-3 key IMPROVEMENTS (specific, actionable advice)\n")
	b.WriteString("3. A brief OVERALL ASSESSMENT (2-3 sentences)\n\n")
	b.WriteString(responseInstructions)
	return b.String()
}

func categoryTitle(c scoring.Category) string {
	switch c {
	case scoring.VoiceDelivery:
		return "Voice & Delivery"
	case scoring.ContentQuality:
		return "Content Quality"
	case scoring.ConfidenceBodyLanguage:
		return "Confidence & Body Language"
	default:
		return "Engagement"
	}
}

// num renders an optional metric, using N/A when absent.
func num(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func label(v *string) string {
	if v == nil || *v == "" {
		return "N/A"
	}
	return *v
}
