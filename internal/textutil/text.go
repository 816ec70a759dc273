package textutil

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var lowerCaser = cases.Lower(language.English)

// Lower folds s to lower case using English rules.
func Lower(s string) string {
	return lowerCaser.String(s)
}

// Words splits s on whitespace.
func Words(s string) []string {
	return strings.Fields(s)
}

// sentenceEnd matches terminal punctuation runs followed by whitespace or the
// end of input, keeping trailing quotes and brackets with the sentence.
var sentenceEnd = regexp.MustCompile(`[.!?]+["')\]]*(\s+|$)`)

// Sentences splits text into trimmed, non-empty sentences. Text without
// terminal punctuation is a single sentence.
func Sentences(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	var out []string
	start := 0
	for _, loc := range sentenceEnd.FindAllStringIndex(text, -1) {
		if s := strings.TrimSpace(text[start:loc[1]]); s != "" {
			out = append(out, s)
		}
		start = loc[1]
	}
	if rest := strings.TrimSpace(text[start:]); rest != "" {
		out = append(out, rest)
	}
	return out
}

// Head returns the first n runes of s.
func Head(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// Tail returns the last n runes of s.
func Tail(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[len(r)-n:])
}
