package clusterer

import (
	"strings"
	"unicode"
)

// minKeywordLength drops normalised keywords shorter than this.
const minKeywordLength = 3

// Normalize cleans and dedupes raw keyword strings. Each keyword is
// lower-cased, trimmed, internal whitespace runs collapse to one space, and
// characters outside word characters, whitespace, and hyphen are removed.
// Results shorter than three characters are dropped. Output preserves the
// order of first appearance of each distinct normalised form.
func Normalize(raw []string) []string {
	out := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, kw := range raw {
		norm := normalizeKeyword(kw)
		if len(norm) < minKeywordLength {
			continue
		}
		if _, dup := seen[norm]; dup {
			continue
		}
		seen[norm] = struct{}{}
		out = append(out, norm)
	}
	return out
}

func normalizeKeyword(kw string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(kw) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// tokenize splits a normalised keyword into lower-case word tokens. Hyphens
// split tokens so "e-commerce" contributes "e" and "commerce".
func tokenize(keyword string) []string {
	return strings.FieldsFunc(keyword, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func isAlphabetic(token string) bool {
	for _, r := range token {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return len(token) > 0
}
