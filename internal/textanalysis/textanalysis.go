package textanalysis

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"strings"

	"presentcoach/internal/analysis"
	"presentcoach/internal/logging"
	"presentcoach/internal/textutil"
)

const (
	longSentenceWords  = 50
	fragmentWords      = 3
	fragmentRatioLimit = 0.3
	maxReportedIssues  = 5

	phraseLength        = 3
	maxRepeatedPhrases  = 5
	repeatedWordMinimum = 3
	maxRepeatedWords    = 10

	introWindow      = 200
	conclusionWindow = 300
)

var stopwords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true, "but": true,
	"in": true, "on": true, "at": true, "to": true, "for": true, "of": true,
	"with": true, "is": true, "are": true, "was": true, "were": true,
}

var introKeywords = []string{
	"today", "introduce", "present", "discuss", "talk about",
	"overview", "agenda", "purpose", "goal", "objective",
}

var conclusionKeywords = []string{
	"conclusion", "summary", "summarize", "conclude", "finally",
	"in summary", "to sum up", "in conclusion", "thank you", "questions",
}

// Analyzer scores transcripts.
type Analyzer struct {
	logger *slog.Logger
}

// NewAnalyzer returns a transcript analyzer.
func NewAnalyzer(logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Analyzer{logger: logging.NewComponentLogger(logger, "text-analysis")}
}

// Analyze scores text. It only fails when ctx is done.
func (a *Analyzer) Analyze(ctx context.Context, text string) (analysis.Text, error) {
	if err := ctx.Err(); err != nil {
		return analysis.Text{}, err
	}
	result := Analyze(text)
	a.logger.Debug("text analysis complete",
		logging.Int("word_count", result.WordCount),
		logging.Int("sentence_count", result.Grammar.SentenceCount),
		logging.Int("grammar_issues", result.Grammar.IssueCount),
	)
	return result, nil
}

// Analyze runs every text heuristic over text.
func Analyze(text string) analysis.Text {
	return analysis.Text{
		Grammar:    Grammar(text),
		Repetition: Repetition(text),
		Structure:  Structure(text),
		TextLength: len([]rune(text)),
		WordCount:  len(textutil.Words(text)),
	}
}

// Grammar flags overlong sentences, a word used three times in a row, and
// a high share of fragments. Score is 100 minus half the issue density.
func Grammar(text string) analysis.Grammar {
	if strings.TrimSpace(text) == "" {
		return analysis.Grammar{Score: analysis.Float(0), Issues: []string{}}
	}
	sentences := textutil.Sentences(text)
	var issues []string

	for i, sentence := range sentences {
		if n := len(textutil.Words(sentence)); n > longSentenceWords {
			issues = append(issues, fmt.Sprintf("Sentence %d is too long (%d words)", i+1, n))
		}
	}

	words := textutil.Words(textutil.Lower(text))
	for i := 0; i+2 < len(words); i++ {
		if words[i] == words[i+1] && words[i] == words[i+2] {
			issues = append(issues, fmt.Sprintf("Repeated word '%s' three times in a row", words[i]))
		}
	}

	fragments := 0
	for _, sentence := range sentences {
		if len(textutil.Words(sentence)) < fragmentWords {
			fragments++
		}
	}
	if float64(fragments) > float64(len(sentences))*fragmentRatioLimit {
		issues = append(issues, "Too many sentence fragments")
	}

	score := 0.0
	if len(sentences) > 0 {
		score = math.Max(0, 100-float64(len(issues))/float64(len(sentences))*50)
	}
	return analysis.Grammar{
		Score:         analysis.Float(round2(score)),
		Issues:        issues[:min(len(issues), maxReportedIssues)],
		SentenceCount: len(sentences),
		IssueCount:    len(issues),
	}
}

// Repetition penalizes three-word phrases that recur and content words used
// more than three times. Empty text scores 100.
func Repetition(text string) analysis.Repetition {
	words := textutil.Words(textutil.Lower(text))
	if len(words) == 0 {
		return analysis.Repetition{
			Score:           analysis.Float(100),
			RepeatedPhrases: []analysis.PhraseCount{},
			RepeatedWords:   map[string]int{},
		}
	}

	phrases := countInOrder(ngrams(words, phraseLength))
	var repeatedPhrases []analysis.PhraseCount
	for _, p := range phrases {
		if p.Count > 1 {
			repeatedPhrases = append(repeatedPhrases, p)
		}
	}
	slices.SortStableFunc(repeatedPhrases, func(a, b analysis.PhraseCount) int {
		return b.Count - a.Count
	})

	var overused []analysis.PhraseCount
	for _, w := range countInOrder(words) {
		if w.Count > repeatedWordMinimum && !stopwords[w.Phrase] {
			overused = append(overused, w)
		}
	}

	penalty := float64(len(repeatedPhrases)*5+len(overused)*2) / float64(len(words)) * 100
	repeatedWords := make(map[string]int, min(len(overused), maxRepeatedWords))
	for _, w := range overused[:min(len(overused), maxRepeatedWords)] {
		repeatedWords[w.Phrase] = w.Count
	}
	if repeatedPhrases == nil {
		repeatedPhrases = []analysis.PhraseCount{}
	}
	return analysis.Repetition{
		Score:           analysis.Float(round2(math.Max(0, 100-penalty))),
		RepeatedPhrases: repeatedPhrases[:min(len(repeatedPhrases), maxRepeatedPhrases)],
		RepeatedWords:   repeatedWords,
	}
}

// Structure looks for opening cues in the first 200 characters, closing cues
// in the last 300, and a substantive body. Worth 30, 40, and 30 points.
func Structure(text string) analysis.Structure {
	if text == "" {
		return analysis.Structure{Score: analysis.Float(0)}
	}
	folded := textutil.Lower(text)
	sentences := textutil.Sentences(text)
	wordCount := len(textutil.Words(text))

	s := analysis.Structure{
		HasIntro:      containsAny(textutil.Head(folded, introWindow), introKeywords),
		HasConclusion: containsAny(textutil.Tail(folded, conclusionWindow), conclusionKeywords),
		HasBody:       wordCount > 50 && len(sentences) > 3,
		WordCount:     wordCount,
		SentenceCount: len(sentences),
	}
	score := 0.0
	if s.HasIntro {
		score += 30
	}
	if s.HasBody {
		score += 40
	}
	if s.HasConclusion {
		score += 30
	}
	s.Score = analysis.Float(score)
	return s
}

func ngrams(words []string, n int) []string {
	if len(words) < n {
		return nil
	}
	out := make([]string, 0, len(words)-n+1)
	for i := 0; i+n <= len(words); i++ {
		out = append(out, strings.Join(words[i:i+n], " "))
	}
	return out
}

// countInOrder tallies items, ordered by first appearance.
func countInOrder(items []string) []analysis.PhraseCount {
	index := make(map[string]int, len(items))
	var out []analysis.PhraseCount
	for _, item := range items {
		if i, ok := index[item]; ok {
			out[i].Count++
			continue
		}
		index[item] = len(out)
		out = append(out, analysis.PhraseCount{Phrase: item, Count: 1})
	}
	return out
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
