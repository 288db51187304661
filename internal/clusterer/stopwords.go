// Package clusterer implements the keyword clustering pipeline: text
// normalisation, TF-IDF feature extraction, cluster-count selection, k-means
// partitioning, cluster labelling, and gap/pillar insight derivation. The
// whole pipeline is deterministic for a given input.
package clusterer

import "strings"

// Stopwords is a fixed English stop-word set. It is a dependency of the
// engine, injected at construction rather than read from a global.
type Stopwords struct {
	words map[string]struct{}
}

// NewStopwords builds a stop-word set from the given list, lower-cased.
func NewStopwords(words []string) *Stopwords {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[strings.ToLower(w)] = struct{}{}
	}
	return &Stopwords{words: set}
}

// DefaultStopwords returns the standard English stop-word set used for both
// expanded-text building and TF-IDF vocabulary filtering.
func DefaultStopwords() *Stopwords {
	return NewStopwords(defaultStopwordList)
}

// Contains reports whether w is a stop-word. Comparison is case-insensitive.
func (s *Stopwords) Contains(w string) bool {
	_, ok := s.words[strings.ToLower(w)]
	return ok
}

var defaultStopwordList = []string{
	"a", "about", "above", "after", "again", "against", "all", "am", "an",
	"and", "any", "are", "aren't", "as", "at", "be", "because", "been",
	"before", "being", "below", "between", "both", "but", "by", "can",
	"cannot", "could", "couldn't", "did", "didn't", "do", "does", "doesn't",
	"doing", "don't", "down", "during", "each", "few", "for", "from",
	"further", "had", "hadn't", "has", "hasn't", "have", "haven't", "having",
	"he", "her", "here", "hers", "herself", "him", "himself", "his", "how",
	"i", "if", "in", "into", "is", "isn't", "it", "its", "itself", "just",
	"me", "more", "most", "my", "myself", "no", "nor", "not", "now", "of",
	"off", "on", "once", "only", "or", "other", "our", "ours", "ourselves",
	"out", "over", "own", "same", "she", "should", "shouldn't", "so", "some",
	"such", "than", "that", "the", "their", "theirs", "them", "themselves",
	"then", "there", "these", "they", "this", "those", "through", "to",
	"too", "under", "until", "up", "very", "was", "wasn't", "we", "were",
	"weren't", "what", "when", "where", "which", "while", "who", "whom",
	"why", "will", "with", "won't", "would", "wouldn't", "you", "your",
	"yours", "yourself", "yourselves",
}
