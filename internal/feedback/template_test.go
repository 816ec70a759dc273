package feedback

import (
	"strings"
	"testing"
)

func fp(v float64) *float64 { return &v }

func sp(v string) *string { return &v }

func TestTemplateNoSpeechKeepsNote(t *testing.T) {
	in := Input{SpeechDetected: false}
	in.Video.EyeContact.Score = fp(30)
	in.Video.Posture.Score = fp(40)
	in.Video.Gestures.FrequencyPercentage = fp(5)
	in.Scores.Final.FinalScore = fp(48.5)

	fb := Template(in)
	if len(fb.Improvements) != 3 {
		t.Fatalf("expected 3 improvements, got %v", fb.Improvements)
	}
	if fb.Improvements[2] != NoSpeechNote {
		t.Fatalf("expected note as last improvement, got %q", fb.Improvements[2])
	}
	if fb.Strengths[0] != "You completed the video recording successfully." {
		t.Fatalf("unexpected first strength %q", fb.Strengths[0])
	}
	if !strings.Contains(fb.OverallAssessment, "Final score: 48.5/100 (limited analysis).") {
		t.Fatalf("unexpected assessment %q", fb.OverallAssessment)
	}
}

func TestTemplateNoSpeechNullScore(t *testing.T) {
	fb := Template(Input{})
	if len(fb.Improvements) != 1 || fb.Improvements[0] != NoSpeechNote {
		t.Fatalf("expected only the note, got %v", fb.Improvements)
	}
	if !strings.Contains(fb.OverallAssessment, "Final score: N/A/100") {
		t.Fatalf("expected N/A score, got %q", fb.OverallAssessment)
	}
}

func TestTemplateSpeechRules(t *testing.T) {
	in := Input{SpeechDetected: true}
	in.Audio.SpeakingSpeed.WPM = fp(95.5)
	in.Audio.FillerWords.Percentage = fp(7.25)
	in.Text.Grammar.Score = fp(50)
	in.Scores.Final.FinalScore = fp(61.2)
	in.Scores.Final.Grade = sp("Fair")

	fb := Template(in)
	want := []string{
		"Your speaking speed (95.5 WPM) is too slow. Aim for 120-160 WPM for better engagement.",
		"Reduce filler words (currently 7.25%). Practice pausing instead of using 'um' or 'uh'.",
		"Review your grammar and sentence structure. Consider practicing your script beforehand.",
	}
	if len(fb.Improvements) != len(want) {
		t.Fatalf("expected %d improvements, got %v", len(want), fb.Improvements)
	}
	for i := range want {
		if fb.Improvements[i] != want[i] {
			t.Fatalf("improvement %d: expected %q, got %q", i, want[i], fb.Improvements[i])
		}
	}
	if len(fb.Strengths) != 2 || fb.Strengths[0] != "You completed the presentation successfully." {
		t.Fatalf("expected default strengths, got %v", fb.Strengths)
	}
	if fb.OverallAssessment != "Your presentation scored 61.2/100 (Fair). Focus on the suggested improvements to enhance your performance." {
		t.Fatalf("unexpected assessment %q", fb.OverallAssessment)
	}
}

func TestTemplateSpeechDefaultsWhenNothingToImprove(t *testing.T) {
	in := Input{SpeechDetected: true}
	in.Audio.SpeakingSpeed.WPM = fp(140)
	in.Audio.FillerWords.Percentage = fp(1)
	in.Text.Structure.HasIntro = true
	in.Text.Structure.HasConclusion = true
	in.Video.EyeContact.Score = fp(90)
	in.Video.Posture.Score = fp(90)
	in.Video.Gestures.FrequencyPercentage = fp(35)

	fb := Template(in)
	if len(fb.Improvements) != 1 || fb.Improvements[0] != "Continue practicing to refine your presentation skills." {
		t.Fatalf("expected default improvement, got %v", fb.Improvements)
	}
	if len(fb.Strengths) != 3 {
		t.Fatalf("expected strengths capped at 3, got %v", fb.Strengths)
	}
	if !strings.Contains(fb.OverallAssessment, "N/A/100 (N/A)") {
		t.Fatalf("expected N/A placeholders, got %q", fb.OverallAssessment)
	}
}
