package textanalysis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestGrammarRepeatedWord(t *testing.T) {
	g := Grammar("This is fine. Go go go now please.")
	if g.SentenceCount != 2 || g.IssueCount != 1 {
		t.Fatalf("unexpected grammar %+v", g)
	}
	if g.Issues[0] != "Repeated word 'go' three times in a row" {
		t.Fatalf("unexpected issue %q", g.Issues[0])
	}
	if *g.Score != 75 {
		t.Fatalf("expected score 75, got %v", *g.Score)
	}
}

func TestGrammarFragments(t *testing.T) {
	g := Grammar("Yes. No. Okay then sure.")
	if g.IssueCount != 1 || g.Issues[0] != "Too many sentence fragments" {
		t.Fatalf("unexpected issues %v", g.Issues)
	}
	if *g.Score != 83.33 {
		t.Fatalf("expected 83.33, got %v", *g.Score)
	}
}

func TestGrammarLongSentence(t *testing.T) {
	words := make([]string, 51)
	for i := range words {
		words[i] = fmt.Sprintf("w%d", i)
	}
	g := Grammar(strings.Join(words, " ") + ".")
	if g.IssueCount != 1 || g.Issues[0] != "Sentence 1 is too long (51 words)" {
		t.Fatalf("unexpected issues %v", g.Issues)
	}
	if *g.Score != 50 {
		t.Fatalf("expected 50, got %v", *g.Score)
	}
}

func TestGrammarCapsReportedIssues(t *testing.T) {
	g := Grammar("a a a a a a a a end.")
	if g.IssueCount != 6 {
		t.Fatalf("expected 6 issues, got %d", g.IssueCount)
	}
	if len(g.Issues) != 5 {
		t.Fatalf("expected 5 reported issues, got %d", len(g.Issues))
	}
	if *g.Score != 0 {
		t.Fatalf("expected score floored at 0, got %v", *g.Score)
	}
}

func TestGrammarEmpty(t *testing.T) {
	g := Grammar("   ")
	if g.Score == nil || *g.Score != 0 || g.SentenceCount != 0 || g.Issues == nil {
		t.Fatalf("unexpected empty grammar %+v", g)
	}
}

func TestRepetitionPhrasesSortedByCount(t *testing.T) {
	r := Repetition("we will win we will win we will win")
	if len(r.RepeatedPhrases) != 3 {
		t.Fatalf("expected 3 phrases, got %v", r.RepeatedPhrases)
	}
	if r.RepeatedPhrases[0].Phrase != "we will win" || r.RepeatedPhrases[0].Count != 3 {
		t.Fatalf("unexpected top phrase %+v", r.RepeatedPhrases[0])
	}
	if r.RepeatedPhrases[1].Phrase != "will win we" || r.RepeatedPhrases[2].Phrase != "win we will" {
		t.Fatalf("expected ties in first-seen order, got %v", r.RepeatedPhrases)
	}
	if *r.Score != 0 {
		t.Fatalf("expected score floored at 0, got %v", *r.Score)
	}
}

func TestRepetitionOverusedWords(t *testing.T) {
	words := []string{}
	for i := 1; i <= 4; i++ {
		words = append(words, "alpha", fmt.Sprintf("b%d", i), fmt.Sprintf("c%d", i))
	}
	for i := range 38 {
		words = append(words, fmt.Sprintf("filler%d", i))
	}
	r := Repetition(strings.Join(words, " "))
	if len(r.RepeatedPhrases) != 0 {
		t.Fatalf("expected no repeated phrases, got %v", r.RepeatedPhrases)
	}
	if len(r.RepeatedWords) != 1 || r.RepeatedWords["alpha"] != 4 {
		t.Fatalf("unexpected repeated words %v", r.RepeatedWords)
	}
	if *r.Score != 96 {
		t.Fatalf("expected 96, got %v", *r.Score)
	}
}

func TestRepetitionIgnoresStopwords(t *testing.T) {
	r := Repetition("the cat and the dog and the bird and the fish")
	if len(r.RepeatedWords) != 0 {
		t.Fatalf("expected stopwords ignored, got %v", r.RepeatedWords)
	}
}

func TestRepetitionEmpty(t *testing.T) {
	r := Repetition("")
	if *r.Score != 100 || r.RepeatedPhrases == nil || r.RepeatedWords == nil {
		t.Fatalf("unexpected empty repetition %+v", r)
	}
}

func TestStructureFull(t *testing.T) {
	var b strings.Builder
	b.WriteString("Today I will introduce our roadmap. ")
	for i := range 5 {
		fmt.Fprintf(&b, "Point %d covers the plan for quarter results and hiring needs. ", i)
	}
	b.WriteString("Thank you, any questions?")
	s := Structure(b.String())
	if !s.HasIntro || !s.HasBody || !s.HasConclusion {
		t.Fatalf("expected all sections, got %+v", s)
	}
	if *s.Score != 100 {
		t.Fatalf("expected 100, got %v", *s.Score)
	}
	if s.SentenceCount != 7 {
		t.Fatalf("expected 7 sentences, got %d", s.SentenceCount)
	}
}

func TestStructureIntroWindow(t *testing.T) {
	s := Structure(strings.Repeat("x ", 150) + "today")
	if s.HasIntro {
		t.Fatal("expected intro keyword beyond the opening window to be ignored")
	}
	if *s.Score != 0 {
		t.Fatalf("expected 0, got %v", *s.Score)
	}
}

func TestAnalyzeCountsRunes(t *testing.T) {
	got := Analyze("héllo wörld")
	if got.TextLength != 11 || got.WordCount != 2 {
		t.Fatalf("unexpected counts %d/%d", got.TextLength, got.WordCount)
	}
}

func TestAnalyzerHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewAnalyzer(nil).Analyze(ctx, "hello"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
