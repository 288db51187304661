package clusterer

import "strings"

// Lemmatizer reduces English tokens to a base form. Equal inputs always yield
// equal lemmas; it is a suffix stripper, not a dictionary lemmatizer, which is
// all the pipeline needs for grouping close keyword variants.
type Lemmatizer struct {
	exceptions map[string]string
}

// NewLemmatizer creates a lemmatizer with a small irregular-form table.
func NewLemmatizer() *Lemmatizer {
	return &Lemmatizer{
		exceptions: map[string]string{
			"analyses": "analysis",
			"children": "child",
			"data":     "data",
			"feet":     "foot",
			"men":      "man",
			"mice":     "mouse",
			"people":   "person",
			"teeth":    "tooth",
			"women":    "woman",
		},
	}
}

// Lemma returns the base form of token. Input is expected lower-cased.
func (l *Lemmatizer) Lemma(token string) string {
	if base, ok := l.exceptions[token]; ok {
		return base
	}
	if len(token) <= 3 {
		return token
	}

	switch {
	case strings.HasSuffix(token, "ies") && len(token) > 4:
		return token[:len(token)-3] + "y"
	case strings.HasSuffix(token, "sses"):
		return token[:len(token)-2]
	case strings.HasSuffix(token, "xes") || strings.HasSuffix(token, "zes") ||
		strings.HasSuffix(token, "ches") || strings.HasSuffix(token, "shes"):
		return token[:len(token)-2]
	case strings.HasSuffix(token, "ing") && len(token) > 5:
		stem := token[:len(token)-3]
		if isDoubledConsonant(stem) {
			stem = stem[:len(stem)-1]
		}
		return stem
	case strings.HasSuffix(token, "ed") && len(token) > 4:
		stem := token[:len(token)-2]
		if isDoubledConsonant(stem) {
			stem = stem[:len(stem)-1]
		}
		return stem
	case strings.HasSuffix(token, "s") && !strings.HasSuffix(token, "ss") &&
		!strings.HasSuffix(token, "us") && !strings.HasSuffix(token, "is"):
		return token[:len(token)-1]
	}
	return token
}

func isDoubledConsonant(stem string) bool {
	if len(stem) < 2 {
		return false
	}
	last := stem[len(stem)-1]
	if stem[len(stem)-2] != last {
		return false
	}
	switch last {
	case 'b', 'd', 'g', 'l', 'm', 'n', 'p', 'r', 't':
		return true
	}
	return false
}
