package scoring

import "math"

// Category identifies one of the four scored aspects of a presentation.
type Category string

const (
	VoiceDelivery          Category = "voice_delivery"
	ContentQuality         Category = "content_quality"
	ConfidenceBodyLanguage Category = "confidence_body_language"
	Engagement             Category = "engagement"
)

// Categories lists every category in report order.
var Categories = []Category{VoiceDelivery, ContentQuality, ConfidenceBodyLanguage, Engagement}

// Base category weights before renormalization.
const (
	WeightVoiceDelivery          = 0.30
	WeightContentQuality         = 0.30
	WeightConfidenceBodyLanguage = 0.25
	WeightEngagement             = 0.15
)

// Labels attached to skipped categories.
const (
	labelNotAvailable     = "N/A"
	labelNotEvaluated     = "Not Evaluated"
	labelInsufficientData = "Insufficient data"
)

// InsufficientDataWarning is attached to a FinalScore with fewer than two
// qualifying categories.
const InsufficientDataWarning = "Not enough data for reliable analysis"

// CategoryScore is the result of one category scorer. OverallScore is nil
// exactly when Skipped is true.
type CategoryScore struct {
	OverallScore *float64            `json:"overall_score"`
	Components   map[string]*float64 `json:"components"`
	Weight       float64             `json:"weight"`
	Skipped      bool                `json:"skipped"`
	Reason       *string             `json:"reason"`
	Label        *string             `json:"label"`
}

// BreakdownEntry describes one category's part in the final score.
// NormalizedWeight and Contribution are nil for categories that did not
// qualify.
type BreakdownEntry struct {
	Score            *float64 `json:"score"`
	Weight           float64  `json:"weight"`
	NormalizedWeight *float64 `json:"normalized_weight"`
	Contribution     *float64 `json:"contribution"`
	Skipped          bool     `json:"skipped"`
	Reason           *string  `json:"reason"`
}

// FinalScore aggregates the category scores.
type FinalScore struct {
	FinalScore *float64                    `json:"final_score"`
	Grade      *string                     `json:"grade"`
	Rating     *string                     `json:"rating"`
	Warning    *string                     `json:"warning"`
	Breakdown  map[Category]BreakdownEntry `json:"breakdown"`
}

// Scores bundles the four category scores with their aggregate.
type Scores struct {
	VoiceDelivery          CategoryScore `json:"voice_delivery"`
	ContentQuality         CategoryScore `json:"content_quality"`
	ConfidenceBodyLanguage CategoryScore `json:"confidence_body_language"`
	Engagement             CategoryScore `json:"engagement"`
	Final                  FinalScore    `json:"final"`
}

// Category returns the score for c.
func (s Scores) Category(c Category) CategoryScore {
	switch c {
	case VoiceDelivery:
		return s.VoiceDelivery
	case ContentQuality:
		return s.ContentQuality
	case ConfidenceBodyLanguage:
		return s.ConfidenceBodyLanguage
	default:
		return s.Engagement
	}
}

func skipped(weight float64, label, reason string, components map[string]*float64) CategoryScore {
	return CategoryScore{
		Components: components,
		Weight:     weight,
		Skipped:    true,
		Reason:     &reason,
		Label:      &label,
	}
}

func scored(weight, overall float64, components map[string]*float64) CategoryScore {
	for key, value := range components {
		if value != nil {
			components[key] = roundPtr(*value)
		}
	}
	return CategoryScore{
		OverallScore: roundPtr(overall),
		Components:   components,
		Weight:       weight,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func roundPtr(v float64) *float64 {
	r := round2(v)
	return &r
}

func ptr(v float64) *float64 { return &v }

func str(v string) *string { return &v }
