package textutil

import (
	"regexp"
	"strings"
	"unicode"
)

var paragraphBreak = regexp.MustCompile(`\n{2,}`)

// SplitSentences splits text into sentences. A boundary is sentence-ending
// punctuation (. ! ?) followed by whitespace and an uppercase or accented
// letter, or a paragraph break (two or more newlines). Segments come back
// trimmed, non-empty, in original order; nothing is dropped.
func SplitSentences(text string) []string {
	var out []string
	for _, para := range paragraphBreak.Split(text, -1) {
		out = append(out, splitParagraph(para)...)
	}
	return out
}

func splitParagraph(para string) []string {
	runes := []rune(para)
	var sentences []string
	start := 0
	for i := 0; i < len(runes); i++ {
		if !isSentenceEnd(runes[i]) {
			continue
		}
		// Consume a punctuation run: "..." or "?!" ends one sentence.
		j := i
		for j+1 < len(runes) && isSentenceEnd(runes[j+1]) {
			j++
		}
		if boundaryFollows(runes, j) {
			if s := strings.TrimSpace(string(runes[start : j+1])); s != "" {
				sentences = append(sentences, s)
			}
			start = j + 1
		}
		i = j
	}
	if s := strings.TrimSpace(string(runes[start:])); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

func isSentenceEnd(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

// boundaryFollows reports whether the rune after position i is whitespace
// followed by an uppercase (or accented uppercase) letter.
func boundaryFollows(runes []rune, i int) bool {
	j := i + 1
	if j >= len(runes) || !unicode.IsSpace(runes[j]) {
		return false
	}
	for j < len(runes) && unicode.IsSpace(runes[j]) {
		j++
	}
	if j >= len(runes) {
		return false
	}
	return unicode.IsUpper(runes[j])
}

// WordCount counts whitespace-separated tokens.
func WordCount(s string) int {
	return len(strings.Fields(s))
}

// NormalizeSpace lower-cases s and collapses all whitespace runs to a
// single space.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
