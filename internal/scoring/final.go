package scoring

import "presentcoach/internal/analysis"

// Inputs carries everything the scorer reads.
type Inputs struct {
	Audio    analysis.Audio
	Text     analysis.Text
	Video    analysis.Video
	Evidence analysis.Evidence
}

// Score runs every category scorer and aggregates the result.
func Score(in Inputs) Scores {
	s := Scores{
		VoiceDelivery:          ScoreVoiceDelivery(in.Audio, in.Evidence),
		ContentQuality:         ScoreContentQuality(in.Text, in.Evidence),
		ConfidenceBodyLanguage: ScoreConfidence(in.Video, in.Evidence),
		Engagement:             ScoreEngagement(in.Audio, in.Video, in.Evidence),
	}
	s.Final = Aggregate(s, in.Evidence)
	return s
}

// evidenceSatisfied reports whether the category's hard evidence gate holds.
// Engagement has no hard gate.
func evidenceSatisfied(c Category, ev analysis.Evidence) bool {
	switch c {
	case VoiceDelivery, ContentQuality:
		return ev.SpeechDetected
	case ConfidenceBodyLanguage:
		return ev.FaceDetected
	default:
		return true
	}
}

func gateReason(c Category, ev analysis.Evidence) string {
	switch c {
	case VoiceDelivery, ContentQuality:
		if !ev.SpeechDetected {
			return reasonNoSpeech
		}
	case ConfidenceBodyLanguage:
		if !ev.FaceDetected {
			return "No face detected"
		}
	}
	return labelNotAvailable
}

// Aggregate combines the category scores of s into a FinalScore.
func Aggregate(s Scores, ev analysis.Evidence) FinalScore {
	qualifying := make(map[Category]bool, len(Categories))
	var totalWeight float64
	for _, c := range Categories {
		cs := s.Category(c)
		if evidenceSatisfied(c, ev) && cs.OverallScore != nil {
			qualifying[c] = true
			totalWeight += cs.Weight
		}
	}

	breakdown := make(map[Category]BreakdownEntry, len(Categories))
	for _, c := range Categories {
		cs := s.Category(c)
		entry := BreakdownEntry{Score: cs.OverallScore, Weight: cs.Weight, Skipped: !qualifying[c]}
		if entry.Skipped {
			if cs.Reason != nil {
				entry.Reason = str(*cs.Reason)
			} else {
				entry.Reason = str(gateReason(c, ev))
			}
		}
		breakdown[c] = entry
	}

	if len(qualifying) < 2 || totalWeight <= 0 {
		return FinalScore{Warning: str(InsufficientDataWarning), Breakdown: breakdown}
	}

	var final float64
	for _, c := range Categories {
		if !qualifying[c] {
			continue
		}
		cs := s.Category(c)
		normalized := cs.Weight / totalWeight
		contribution := *cs.OverallScore * normalized
		final += contribution

		entry := breakdown[c]
		entry.NormalizedWeight = ptr(normalized)
		entry.Contribution = roundPtr(contribution)
		breakdown[c] = entry
	}

	final = round2(final)
	grade, rating := Grade(final)
	return FinalScore{
		FinalScore: &final,
		Grade:      &grade,
		Rating:     &rating,
		Breakdown:  breakdown,
	}
}
