package clusterer

import (
	"math"
	"reflect"
	"testing"
)

func TestExpandTextAppendsLemmas(t *testing.T) {
	stops := DefaultStopwords()
	lem := NewLemmatizer()
	got := expandText("keyword research tools", stops, lem)
	want := "keyword research tools keyword research tool"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestExpandTextSkipsStopwordsAndNonAlphabetic(t *testing.T) {
	stops := DefaultStopwords()
	lem := NewLemmatizer()
	got := expandText("how to do b2b marketing", stops, lem)
	want := "how to do b2b marketing market"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestExpandTextFallsBackToKeyword(t *testing.T) {
	stops := DefaultStopwords()
	lem := NewLemmatizer()
	got := expandText("b2b 101", stops, lem)
	if got != "b2b 101" {
		t.Errorf("Expected keyword unchanged, got %q", got)
	}
}

func TestNgramsProducesUnigramsThroughTrigrams(t *testing.T) {
	v := &vectorizer{stopwords: DefaultStopwords()}
	got := v.ngrams("content marketing strategy")
	want := []string{
		"content", "marketing", "strategy",
		"content marketing", "marketing strategy",
		"content marketing strategy",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestNgramsFiltersStopwords(t *testing.T) {
	v := &vectorizer{stopwords: DefaultStopwords()}
	got := v.ngrams("the best of seo")
	want := []string{"best", "seo", "best seo"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestFitTransformRowsAreUnitLength(t *testing.T) {
	v := &vectorizer{stopwords: DefaultStopwords()}
	docs := []string{
		"seo tools review",
		"keyword research guide",
		"content marketing tips",
	}
	matrix, vocab := v.fitTransform(docs)
	if len(matrix) != len(docs) {
		t.Fatalf("Expected %d rows, got %d", len(docs), len(matrix))
	}
	if len(vocab) == 0 {
		t.Fatal("Expected non-empty vocabulary")
	}
	for i, row := range matrix {
		var sum float64
		for _, x := range row {
			sum += x * x
		}
		if math.Abs(math.Sqrt(sum)-1) > 1e-9 {
			t.Errorf("Row %d: expected unit L2 norm, got %f", i, math.Sqrt(sum))
		}
	}
}

func TestFitTransformDropsUbiquitousTerms(t *testing.T) {
	v := &vectorizer{stopwords: DefaultStopwords()}
	docs := []string{
		"marketing automation",
		"marketing funnels",
		"marketing channels",
	}
	_, vocab := v.fitTransform(docs)
	for _, term := range vocab {
		if term == "marketing" {
			t.Error("Expected term present in every document to be dropped")
		}
	}
}

func TestFitTransformDeterministic(t *testing.T) {
	v := &vectorizer{stopwords: DefaultStopwords()}
	docs := []string{
		"seo tools review",
		"best seo tools",
		"keyword research guide",
		"keyword difficulty checker",
	}
	m1, v1 := v.fitTransform(docs)
	m2, v2 := v.fitTransform(docs)
	if !reflect.DeepEqual(v1, v2) {
		t.Error("Expected identical vocabulary across runs")
	}
	if !reflect.DeepEqual(m1, m2) {
		t.Error("Expected identical weight matrix across runs")
	}
}

func TestFitTransformVocabularySorted(t *testing.T) {
	v := &vectorizer{stopwords: DefaultStopwords()}
	docs := []string{"zebra crossing", "apple orchard", "mango grove"}
	_, vocab := v.fitTransform(docs)
	for i := 1; i < len(vocab); i++ {
		if vocab[i-1] >= vocab[i] {
			t.Fatalf("Expected sorted vocabulary, found %q before %q", vocab[i-1], vocab[i])
		}
	}
}

func TestFitTransformEmptyCorpus(t *testing.T) {
	v := &vectorizer{stopwords: DefaultStopwords()}
	matrix, vocab := v.fitTransform(nil)
	if matrix != nil || vocab != nil {
		t.Errorf("Expected nil results for empty corpus, got %v %v", matrix, vocab)
	}
}
