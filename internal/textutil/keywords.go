package textutil

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// DefaultMaxKeywords is used when the caller passes a non-positive limit.
const DefaultMaxKeywords = 7

// Tokens shorter than this never count as keywords.
const minTokenLen = 3

var wordPattern = regexp.MustCompile(`[\p{Latin}]{3,}`)

// ExtractKeywords returns the most frequent non-stopword tokens of text in
// descending frequency, ties broken alphabetically. Tokens are runs of
// Latin letters (accents included) of length >= 3, lower-cased. Inputs
// shorter than 10 characters yield nothing.
func ExtractKeywords(text string, maxKeywords int, stopwords map[string]bool) []string {
	if utf8.RuneCountInString(strings.TrimSpace(text)) < 10 {
		return nil
	}
	if maxKeywords <= 0 {
		maxKeywords = DefaultMaxKeywords
	}
	if stopwords == nil {
		stopwords = Stopwords
	}

	freq := make(map[string]int)
	for _, tok := range wordPattern.FindAllString(text, -1) {
		tok = strings.ToLower(tok)
		if len([]rune(tok)) < minTokenLen || stopwords[tok] {
			continue
		}
		freq[tok]++
	}
	if len(freq) == 0 {
		return nil
	}

	keywords := make([]string, 0, len(freq))
	for tok := range freq {
		keywords = append(keywords, tok)
	}
	sort.Slice(keywords, func(i, j int) bool {
		if freq[keywords[i]] != freq[keywords[j]] {
			return freq[keywords[i]] > freq[keywords[j]]
		}
		return keywords[i] < keywords[j]
	})
	if len(keywords) > maxKeywords {
		keywords = keywords[:maxKeywords]
	}
	return keywords
}
