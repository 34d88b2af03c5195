package seo

import (
	"reflect"
	"strings"
	"testing"
)

func longBody() string {
	sentence := "Technology companies announced new gadgets at the innovation conference this week. "
	return strings.Repeat(sentence, 20)
}

func TestEnrichDescriptionBounds(t *testing.T) {
	enricher := NewEnricher()

	meta := enricher.Enrich("Some Title", longBody())

	if len(meta.Description) > 160 {
		t.Errorf("Description exceeds 160 chars: %d", len(meta.Description))
	}
	if len(meta.Description) < 150 {
		t.Errorf("Description below 150 chars for a long body: %d (%q)", len(meta.Description), meta.Description)
	}
	if strings.HasSuffix(meta.Description, " ") {
		t.Error("Description should not end with whitespace")
	}

	// Never mid-word: the description must end exactly at a word boundary
	// of the source text.
	if !strings.HasPrefix(longBody(), meta.Description+" ") && longBody() != meta.Description {
		t.Errorf("Description does not end at a word boundary: %q", meta.Description)
	}
}

func TestEnrichShortBodyBestAvailable(t *testing.T) {
	enricher := NewEnricher()

	body := "A short body under the minimum."
	meta := enricher.Enrich("Title", body)

	if meta.Description != body {
		t.Errorf("Short body should be used whole, got %q", meta.Description)
	}
}

func TestEnrichEmptyBodyFallsBackToTitle(t *testing.T) {
	enricher := NewEnricher()

	meta := enricher.Enrich("Fallback Title", "   ")

	if meta.Description != "Fallback Title" {
		t.Errorf("Expected title fallback, got %q", meta.Description)
	}
	if len(meta.Keywords) != 0 {
		t.Errorf("Expected no keywords for empty body, got %v", meta.Keywords)
	}
	if meta.KeywordDensity != 0 {
		t.Errorf("Expected zero density, got %f", meta.KeywordDensity)
	}
}

func TestEnrichKeywords(t *testing.T) {
	enricher := NewEnricher()

	meta := enricher.Enrich("Title", longBody())

	if len(meta.Keywords) < 3 || len(meta.Keywords) > 5 {
		t.Fatalf("Expected 3-5 keywords, got %d: %v", len(meta.Keywords), meta.Keywords)
	}

	for _, kw := range meta.Keywords {
		if stopwords[kw] {
			t.Errorf("Stopword leaked into keywords: %q", kw)
		}
		if kw != strings.ToLower(kw) {
			t.Errorf("Keywords must be case-folded: %q", kw)
		}
	}

	if meta.KeywordDensity <= 0 || meta.KeywordDensity > 1 {
		t.Errorf("Density out of range: %f", meta.KeywordDensity)
	}
}

func TestEnrichDeterministic(t *testing.T) {
	enricher := NewEnricher()

	a := enricher.Enrich("Title", longBody())
	b := enricher.Enrich("Title", longBody())

	if a.Description != b.Description {
		t.Error("Description must be deterministic")
	}
	if !reflect.DeepEqual(a.Keywords, b.Keywords) {
		t.Errorf("Keywords must be deterministic: %v vs %v", a.Keywords, b.Keywords)
	}
	if a.KeywordDensity != b.KeywordDensity {
		t.Error("Density must be deterministic")
	}
}

func TestEnrichKeywordFrequencyOrder(t *testing.T) {
	enricher := NewEnricher()

	body := strings.Repeat("apple ", 10) + strings.Repeat("banana ", 5) + strings.Repeat("cherry ", 2) + "once"
	meta := enricher.Enrich("Title", body)

	if len(meta.Keywords) == 0 || meta.Keywords[0] != "apple" {
		t.Errorf("Most frequent term should rank first, got %v", meta.Keywords)
	}
	if len(meta.Keywords) > 1 && meta.Keywords[1] != "banana" {
		t.Errorf("Second most frequent term should rank second, got %v", meta.Keywords)
	}
}

func TestTruncateAtWordNeverMidWord(t *testing.T) {
	s := "supercalifragilistic expialidocious words everywhere in this sentence repeated many times to pass the limit easily and then some more text"
	got := truncateAtWord(s, 50)

	if len(got) > 50 {
		t.Errorf("Truncation exceeds limit: %d", len(got))
	}
	for _, w := range strings.Fields(got) {
		if !strings.Contains(s, w) {
			t.Errorf("Truncated output contains partial word %q", w)
		}
	}
}
