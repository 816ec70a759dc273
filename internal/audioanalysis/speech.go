package audioanalysis

import (
	"math"
	"regexp"

	"presentcoach/internal/textutil"
)

// FillerWords lists the tokens counted as fillers, in report order.
var FillerWords = []string{
	"um", "uh", "er", "ah", "like", "you know", "so", "well",
	"actually", "basically", "literally", "right", "okay", "ok",
}

var fillerPatterns = func() []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(FillerWords))
	for i, word := range FillerWords {
		out[i] = regexp.MustCompile(`\b` + regexp.QuoteMeta(word) + `\b`)
	}
	return out
}()

// WordsPerMinute is len(words)/duration*60, rounded to two decimals. A
// non-positive duration yields 0.
func WordsPerMinute(text string, durationSeconds float64) float64 {
	if durationSeconds <= 0 {
		return 0
	}
	return round2(float64(len(textutil.Words(text))) / durationSeconds * 60)
}

// AssessWPM buckets a speaking rate.
func AssessWPM(wpm float64) string {
	switch {
	case wpm < 120:
		return "too_slow"
	case wpm <= 160:
		return "optimal"
	case wpm <= 180:
		return "slightly_fast"
	default:
		return "too_fast"
	}
}

// FillerCount is the filler tally for a transcript.
type FillerCount struct {
	Total      int
	Percentage float64
	Breakdown  map[string]int
}

// CountFillers matches each filler on word boundaries. Multi-word fillers
// can overlap single-word ones; both are counted.
func CountFillers(text string) FillerCount {
	folded := textutil.Lower(text)
	count := FillerCount{Breakdown: map[string]int{}}
	for i, pattern := range fillerPatterns {
		if n := len(pattern.FindAllStringIndex(folded, -1)); n > 0 {
			count.Breakdown[FillerWords[i]] = n
			count.Total += n
		}
	}
	words := max(len(textutil.Words(text)), 1)
	count.Percentage = round2(float64(count.Total) / float64(words) * 100)
	return count
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
