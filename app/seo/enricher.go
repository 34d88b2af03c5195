package seo

import (
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	descriptionMin = 150
	descriptionMax = 160
	maxKeywords    = 5
	minKeywordLen  = 3
)

// Metadata is the enricher's output, attached to an article before
// publishing. Deterministic for a given input; never the reason an
// article fails.
type Metadata struct {
	Description    string
	Keywords       []string
	KeywordDensity float64
}

type Enricher struct {
	lower cases.Caser
}

func NewEnricher() *Enricher {
	return &Enricher{
		lower: cases.Lower(language.English),
	}
}

var tokenRe = regexp.MustCompile(`[a-z0-9']+`)

// Enrich derives a meta description, keyword tags, and a keyword-density
// estimate from the rewritten title and body. Any internal anomaly
// degrades to minimal metadata instead of failing the article.
func (e *Enricher) Enrich(title, body string) (meta Metadata) {
	defer func() {
		if r := recover(); r != nil {
			slog.Warn("Enrichment anomaly, falling back to minimal metadata", "panic", r)
			meta = Metadata{Description: truncateAtWord(title, descriptionMax)}
		}
	}()

	if strings.TrimSpace(body) == "" {
		return Metadata{Description: truncateAtWord(title, descriptionMax)}
	}

	tokens := tokenRe.FindAllString(e.lower.String(body), -1)
	keywords := topKeywords(tokens)

	return Metadata{
		Description:    truncateAtWord(body, descriptionMax),
		Keywords:       keywords,
		KeywordDensity: density(tokens, keywords),
	}
}

// truncateAtWord cuts s at a word boundary so the result never exceeds
// limit and never ends mid-word. Inputs shorter than the limit are
// returned whole.
func truncateAtWord(s string, limit int) string {
	s = strings.TrimSpace(s)
	if len(s) <= limit {
		return s
	}

	var b strings.Builder
	for _, word := range strings.Fields(s) {
		next := len(word)
		if b.Len() > 0 {
			next++
		}
		if b.Len()+next > limit {
			break
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(word)
	}

	return b.String()
}

// topKeywords picks the most frequent non-stopword terms, ordered by
// frequency then alphabetically for determinism.
func topKeywords(tokens []string) []string {
	freq := make(map[string]int)
	for _, tok := range tokens {
		if len(tok) < minKeywordLen || stopwords[tok] {
			continue
		}
		freq[tok]++
	}

	if len(freq) == 0 {
		return nil
	}

	candidates := make([]string, 0, len(freq))
	for tok := range freq {
		candidates = append(candidates, tok)
	}

	sort.Slice(candidates, func(i, j int) bool {
		if freq[candidates[i]] != freq[candidates[j]] {
			return freq[candidates[i]] > freq[candidates[j]]
		}
		return candidates[i] < candidates[j]
	})

	if len(candidates) > maxKeywords {
		candidates = candidates[:maxKeywords]
	}

	return candidates
}

// density estimates keyword occurrences over total word count. Used for
// reporting only, never as a gate.
func density(tokens []string, keywords []string) float64 {
	if len(tokens) == 0 || len(keywords) == 0 {
		return 0
	}

	selected := make(map[string]bool, len(keywords))
	for _, kw := range keywords {
		selected[kw] = true
	}

	occurrences := 0
	for _, tok := range tokens {
		if selected[tok] {
			occurrences++
		}
	}

	return float64(occurrences) / float64(len(tokens))
}
