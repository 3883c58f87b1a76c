// Package repdoc builds representative documents: the concatenated
// title+abstract text of each paper, its normalized token vector, and
// the per-author concatenation of those vectors.
package repdoc

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/kljensen/snowball/english"
)

// Vectorize normalizes free text into a token vector: lowercased, split
// on non-alphanumeric runs, stopwords and single-character and numeric
// tokens dropped, the survivors Porter2-stemmed. Token order follows
// the input text.
func Vectorize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	var tokens []string
	for _, tok := range fields {
		if len(tok) <= 1 {
			continue
		}
		if _, err := strconv.ParseFloat(tok, 64); err == nil {
			continue
		}
		if english.IsStopWord(tok) {
			continue
		}
		tokens = append(tokens, english.Stem(tok, false))
	}
	return tokens
}
