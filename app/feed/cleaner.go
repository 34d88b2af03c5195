package feed

import (
	"html"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// Cleaner strips markup from entry bodies so downstream stages operate
// on plain text.
type Cleaner struct{}

func NewCleaner() *Cleaner {
	return &Cleaner{}
}

// Run returns the markup-stripped, entity-decoded, whitespace-collapsed
// text of raw. Input that fails to parse as HTML is returned with tags
// crudely removed rather than dropped.
func (c *Cleaner) Run(raw string) string {
	if raw == "" {
		return ""
	}

	text := raw
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err == nil {
		doc.Find("script, style").Remove()
		text = doc.Text()
	}

	text = html.UnescapeString(text)
	text = whitespaceRe.ReplaceAllString(text, " ")

	return strings.TrimSpace(text)
}

// WordCount counts whitespace-separated words in cleaned text.
func WordCount(cleaned string) int {
	if cleaned == "" {
		return 0
	}
	return len(strings.Fields(cleaned))
}
