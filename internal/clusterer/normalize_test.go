package clusterer

import (
	"reflect"
	"testing"
)

func TestNormalizeLowercasesAndTrims(t *testing.T) {
	got := Normalize([]string{"  Digital Marketing  ", "SEO Tools"})
	want := []string{"digital marketing", "seo tools"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestNormalizeCollapsesWhitespace(t *testing.T) {
	got := Normalize([]string{"content\tmarketing   strategy"})
	if len(got) != 1 || got[0] != "content marketing strategy" {
		t.Errorf("Expected collapsed whitespace, got %v", got)
	}
}

func TestNormalizeStripsPunctuation(t *testing.T) {
	got := Normalize([]string{"what's e-commerce? (guide)"})
	if len(got) != 1 || got[0] != "whats e-commerce guide" {
		t.Errorf("Expected punctuation stripped, got %v", got)
	}
}

func TestNormalizeDropsShortKeywords(t *testing.T) {
	got := Normalize([]string{"ab", "a", "", "seo"})
	want := []string{"seo"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestNormalizeDedupesPreservingFirstOccurrence(t *testing.T) {
	got := Normalize([]string{"SEO Tools", "keyword research", "seo tools", "Keyword  Research"})
	want := []string{"seo tools", "keyword research"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestNormalizeEmptyInput(t *testing.T) {
	got := Normalize(nil)
	if len(got) != 0 {
		t.Errorf("Expected empty result, got %v", got)
	}
}

func TestTokenizeSplitsOnHyphen(t *testing.T) {
	got := tokenize("e-commerce platform")
	want := []string{"e", "commerce", "platform"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestIsAlphabetic(t *testing.T) {
	cases := []struct {
		token string
		want  bool
	}{
		{"marketing", true},
		{"seo2", false},
		{"", false},
		{"b2b", false},
	}
	for _, tc := range cases {
		if got := isAlphabetic(tc.token); got != tc.want {
			t.Errorf("isAlphabetic(%q): expected %v, got %v", tc.token, tc.want, got)
		}
	}
}
