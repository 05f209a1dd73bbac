// Package normalize cleans complaint narratives into the canonical form used
// for feature extraction. Digits and punctuation are kept.
package normalize

import (
	"regexp"
	"strings"
	"unicode"
)

// urlPattern matches a URL-like run starting anywhere inside a whitespace-free field.
var urlPattern = regexp.MustCompile(`(?:https?://|www\.)\S+`)

// Text normalizes raw. Values that are not text yield "".
func Text(raw any) string {
	switch v := raw.(type) {
	case string:
		return String(v)
	case []byte:
		return String(string(v))
	default:
		return ""
	}
}

// String trims s, turns line breaks into spaces, replaces URL-like
// substrings with a space and collapses whitespace runs to one space.
func String(s string) string {
	fields := strings.FieldsFunc(s, isSpace)
	kept := fields[:0]
	for _, f := range fields {
		if loc := urlPattern.FindStringIndex(f); loc != nil {
			f = f[:loc[0]]
		}
		if f != "" {
			kept = append(kept, f)
		}
	}
	return strings.Join(kept, " ")
}

// All normalizes every element of texts.
func All(texts []string) []string {
	out := make([]string, len(texts))
	for i, t := range texts {
		out[i] = String(t)
	}
	return out
}

// isSpace covers Unicode white space plus the ASCII separator controls.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}
