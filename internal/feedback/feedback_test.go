package feedback_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"presentcoach/internal/analysis"
	"presentcoach/internal/feedback"
	"presentcoach/internal/scoring"
)

type fakeCompleter struct {
	content string
	err     error
	calls   int
	system  string
	user    string
}

func (f *fakeCompleter) CompleteJSON(_ context.Context, systemPrompt, userPrompt string) (string, error) {
	f.calls++
	f.system = systemPrompt
	f.user = userPrompt
	return f.content, f.err
}

func ptr(v float64) *float64 { return &v }

func speechInput() feedback.Input {
	in := feedback.Input{SpeechDetected: true}
	in.Audio.SpeakingSpeed.WPM = ptr(140)
	in.Audio.FillerWords.Percentage = ptr(1.5)
	in.Text.Grammar.Score = ptr(90)
	in.Text.Structure.HasIntro = true
	in.Text.Structure.HasConclusion = true
	in.Video.EyeContact.Score = ptr(80)
	in.Video.Posture.Score = ptr(85)
	in.Video.Gestures.FrequencyPercentage = ptr(30)
	in.Scores = scoring.Score(scoring.Inputs{
		Audio: in.Audio,
		Text:  in.Text,
		Video: in.Video,
		Evidence: analysis.Evidence{
			SpeechDetected: true,
			FaceDetected:   true,
		},
	})
	return in
}

func TestGenerateUsesLLMPayload(t *testing.T) {
	completer := &fakeCompleter{content: "```json\n" + `{"strengths":["a","b","c","d"],"improvements":["x"],"overall_assessment":"Solid talk."}` + "\n```"}
	s := feedback.NewSynthesizer(completer, nil)

	fb := s.Generate(context.Background(), speechInput())
	if fb.GeneratedBy != feedback.GeneratedByLLM {
		t.Fatalf("expected llm feedback, got %q", fb.GeneratedBy)
	}
	if len(fb.Strengths) != 3 {
		t.Fatalf("expected strengths capped at 3, got %v", fb.Strengths)
	}
	if fb.OverallAssessment != "Solid talk." {
		t.Fatalf("unexpected assessment %q", fb.OverallAssessment)
	}
	if completer.system != feedback.SystemPrompt {
		t.Fatalf("unexpected system prompt %q", completer.system)
	}
	if !strings.Contains(completer.user, "Speaking Speed: 140 WPM") {
		t.Fatalf("expected metrics in user prompt, got %q", completer.user)
	}
}

func TestGenerateFallsBackOnError(t *testing.T) {
	s := feedback.NewSynthesizer(&fakeCompleter{err: errors.New("boom")}, nil)
	fb := s.Generate(context.Background(), speechInput())
	if fb.GeneratedBy != feedback.GeneratedByTemplate {
		t.Fatalf("expected template fallback, got %q", fb.GeneratedBy)
	}
}

func TestGenerateFallsBackOnIncompletePayload(t *testing.T) {
	payloads := []string{
		`not json`,
		`{"strengths":[],"improvements":["x"],"overall_assessment":"ok"}`,
		`{"strengths":["a"],"improvements":["x"],"overall_assessment":"   "}`,
	}
	for _, payload := range payloads {
		s := feedback.NewSynthesizer(&fakeCompleter{content: payload}, nil)
		fb := s.Generate(context.Background(), speechInput())
		if fb.GeneratedBy != feedback.GeneratedByTemplate {
			t.Fatalf("payload %q: expected template fallback, got %q", payload, fb.GeneratedBy)
		}
	}
}

func TestGenerateWithoutCompleterUsesTemplate(t *testing.T) {
	fb := feedback.NewSynthesizer(nil, nil).Generate(context.Background(), speechInput())
	if fb.GeneratedBy != feedback.GeneratedByTemplate {
		t.Fatalf("expected template, got %q", fb.GeneratedBy)
	}
	if fb.OverallAssessment == "" {
		t.Fatal("expected non-empty assessment")
	}
}

func TestVisualOnlyPromptOmitsSpeechMetrics(t *testing.T) {
	completer := &fakeCompleter{err: errors.New("offline")}
	in := feedback.Input{SpeechDetected: false}
	in.Video.EyeContact.Score = ptr(65)
	feedback.NewSynthesizer(completer, nil).Generate(context.Background(), in)
	if !strings.Contains(completer.user, "NO SPEECH DETECTED") {
		t.Fatalf("expected visual-only prompt, got %q", completer.user)
	}
	if strings.Contains(completer.user, "Speaking Speed") {
		t.Fatalf("visual-only prompt should not mention speaking speed")
	}
}
