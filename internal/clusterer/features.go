package clusterer

import (
	"math"
	"sort"
	"strings"
)

const (
	minNgram    = 1
	maxNgram    = 3
	maxFeatures = 1000
	maxDocFreq  = 0.95
)

// vectorizer builds TF-IDF weight vectors over a keyword corpus: unigrams
// through trigrams, stop-words removed, smooth IDF, L2-normalised rows.
type vectorizer struct {
	stopwords *Stopwords
}

// expandText concatenates a keyword with the space-joined lemmas of its
// alphabetic non-stop tokens, so close variants share vocabulary.
func expandText(keyword string, stops *Stopwords, lem *Lemmatizer) string {
	var lemmas []string
	for _, tok := range tokenize(keyword) {
		if !isAlphabetic(tok) || stops.Contains(tok) {
			continue
		}
		lemmas = append(lemmas, lem.Lemma(tok))
	}
	if len(lemmas) == 0 {
		return keyword
	}
	return keyword + " " + strings.Join(lemmas, " ")
}

// fitTransform fits the weighting model over docs and returns the dense
// n x f weight matrix plus the ordered vocabulary. Output is deterministic
// for a given corpus.
func (v *vectorizer) fitTransform(docs []string) ([][]float64, []string) {
	n := len(docs)
	if n == 0 {
		return nil, nil
	}

	docTerms := make([]map[string]int, n)
	df := make(map[string]int)
	corpusCount := make(map[string]int)
	for i, doc := range docs {
		counts := make(map[string]int)
		for _, term := range v.ngrams(doc) {
			counts[term]++
		}
		docTerms[i] = counts
		for term, c := range counts {
			df[term]++
			corpusCount[term] += c
		}
	}

	// Drop terms present in more than maxDocFreq of documents, then keep the
	// top maxFeatures by corpus frequency, ties broken alphabetically.
	kept := make([]string, 0, len(df))
	for term := range df {
		if float64(df[term]) > maxDocFreq*float64(n) {
			continue
		}
		kept = append(kept, term)
	}
	sort.Slice(kept, func(i, j int) bool {
		if corpusCount[kept[i]] != corpusCount[kept[j]] {
			return corpusCount[kept[i]] > corpusCount[kept[j]]
		}
		return kept[i] < kept[j]
	})
	if len(kept) > maxFeatures {
		kept = kept[:maxFeatures]
	}
	sort.Strings(kept)

	index := make(map[string]int, len(kept))
	for i, term := range kept {
		index[term] = i
	}

	idf := make([]float64, len(kept))
	for i, term := range kept {
		idf[i] = math.Log(float64(1+n)/float64(1+df[term])) + 1
	}

	matrix := make([][]float64, n)
	for i := range docs {
		row := make([]float64, len(kept))
		for term, tf := range docTerms[i] {
			if j, ok := index[term]; ok {
				row[j] = float64(tf) * idf[j]
			}
		}
		l2Normalize(row)
		matrix[i] = row
	}
	return matrix, kept
}

// ngrams produces 1..3-grams over the stop-word-filtered token stream.
func (v *vectorizer) ngrams(doc string) []string {
	var tokens []string
	for _, tok := range tokenize(strings.ToLower(doc)) {
		if v.stopwords.Contains(tok) {
			continue
		}
		tokens = append(tokens, tok)
	}

	var grams []string
	for size := minNgram; size <= maxNgram; size++ {
		for i := 0; i+size <= len(tokens); i++ {
			grams = append(grams, strings.Join(tokens[i:i+size], " "))
		}
	}
	return grams
}

func l2Normalize(row []float64) {
	var sum float64
	for _, x := range row {
		sum += x * x
	}
	if sum == 0 {
		return
	}
	norm := math.Sqrt(sum)
	for i := range row {
		row[i] /= norm
	}
}
