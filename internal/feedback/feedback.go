package feedback

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"presentcoach/internal/analysis"
	"presentcoach/internal/logging"
	"presentcoach/internal/scoring"
	"presentcoach/internal/services/llm"
)

// Generator identifiers recorded in Feedback.GeneratedBy.
const (
	GeneratedByLLM      = "llm"
	GeneratedByTemplate = "template"
)

const maxItems = 3

// Feedback is the coaching summary attached to a report.
type Feedback struct {
	Strengths         []string `json:"strengths"`
	Improvements      []string `json:"improvements"`
	OverallAssessment string   `json:"overall_assessment"`
	GeneratedBy       string   `json:"generated_by"`
}

// Input bundles everything feedback is derived from.
type Input struct {
	Audio          analysis.Audio
	Text           analysis.Text
	Video          analysis.Video
	Scores         scoring.Scores
	SpeechDetected bool
}

// Completer is the subset of the LLM client used for feedback.
type Completer interface {
	CompleteJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Synthesizer produces Feedback, preferring the LLM when one is configured.
type Synthesizer struct {
	llm    Completer
	logger *slog.Logger
}

// NewSynthesizer builds a synthesizer. A nil completer always uses templates.
func NewSynthesizer(completer Completer, logger *slog.Logger) *Synthesizer {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Synthesizer{llm: completer, logger: logging.NewComponentLogger(logger, "feedback")}
}

// Generate never fails; LLM problems are logged and the template is used.
func (s *Synthesizer) Generate(ctx context.Context, in Input) Feedback {
	if s == nil || s.llm == nil {
		return Template(in)
	}
	fb, err := s.fromLLM(ctx, in)
	if err != nil {
		logging.WarnWithContext(logging.WithContext(ctx, s.logger), "llm feedback unavailable; using template",
			"feedback_fallback",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check llm.api_key, llm.model, and network reachability"),
			logging.String(logging.FieldImpact, "feedback generated from fixed rules"),
		)
		return Template(in)
	}
	return fb
}

type llmPayload struct {
	Strengths         []string `json:"strengths"`
	Improvements      []string `json:"improvements"`
	OverallAssessment string   `json:"overall_assessment"`
}

func (s *Synthesizer) fromLLM(ctx context.Context, in Input) (Feedback, error) {
	content, err := s.llm.CompleteJSON(ctx, SystemPrompt, UserPrompt(in))
	if err != nil {
		return Feedback{}, err
	}
	var payload llmPayload
	if err := llm.DecodeLLMJSON(content, &payload); err != nil {
		return Feedback{}, err
	}
	fb := Feedback{
		Strengths:         capItems(cleanItems(payload.Strengths)),
		Improvements:      capItems(cleanItems(payload.Improvements)),
		OverallAssessment: strings.TrimSpace(payload.OverallAssessment),
		GeneratedBy:       GeneratedByLLM,
	}
	if len(fb.Strengths) == 0 || len(fb.Improvements) == 0 || fb.OverallAssessment == "" {
		return Feedback{}, errIncompletePayload
	}
	return fb, nil
}

var errIncompletePayload = errors.New("llm feedback: payload missing strengths, improvements, or assessment")

func cleanItems(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func capItems(items []string) []string {
	if len(items) > maxItems {
		return items[:maxItems]
	}
	return items
}
