// Package features turns normalized complaint text into TF-IDF vectors.
package features

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// minTokenRunes is the shortest run of word characters kept as a token.
const minTokenRunes = 2

// Tokenize lowercases text and splits it into runs of word characters
// (letters, digits, marks and underscore) at least two runes long.
func Tokenize(text string) []string {
	text = cases.Lower(language.Und).String(norm.NFKC.String(text))

	var tokens []string
	var current strings.Builder
	flush := func() {
		if utf8.RuneCountInString(current.String()) >= minTokenRunes {
			tokens = append(tokens, current.String())
		}
		current.Reset()
	}
	for _, r := range text {
		if isWordRune(r) {
			current.WriteRune(r)
			continue
		}
		flush()
	}
	flush()
	return tokens
}

// NGrams joins consecutive tokens into space-separated n-grams for every n
// in [lo, hi].
func NGrams(tokens []string, lo, hi int) []string {
	if lo < 1 {
		lo = 1
	}
	var grams []string
	for n := lo; n <= hi; n++ {
		if n == 1 {
			grams = append(grams, tokens...)
			continue
		}
		for i := 0; i+n <= len(tokens); i++ {
			grams = append(grams, strings.Join(tokens[i:i+n], " "))
		}
	}
	return grams
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r)
}
