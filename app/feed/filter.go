package feed

import "fmt"

const ReasonTooShort = "below word count"

// Filter applies the word-count quality gate to cleaned article bodies.
type Filter struct {
	minWords int
}

func NewFilter(minWords int) *Filter {
	return &Filter{minWords: minWords}
}

// Evaluate gates an article on its cleaned word count. Rejected articles
// never proceed past the filter.
func (f *Filter) Evaluate(a Article) FilterResult {
	wc := WordCount(a.CleanedBody)
	if wc < f.minWords {
		return FilterResult{
			Accepted:  false,
			Reason:    fmt.Sprintf("%s (%d < %d)", ReasonTooShort, wc, f.minWords),
			WordCount: wc,
		}
	}

	return FilterResult{Accepted: true, WordCount: wc}
}
