package feed

import (
	"strings"
	"time"
)

// Category classifies a feed's topic and drives rewrite prompt selection.
type Category string

const (
	CategoryNews          Category = "news"
	CategoryTech          Category = "tech"
	CategoryBusiness      Category = "business"
	CategoryEntertainment Category = "entertainment"
	CategoryGeneral       Category = "general"
)

// ParseCategory maps a config value to a known category. Unrecognized
// values fall back to CategoryGeneral.
func ParseCategory(s string) Category {
	switch Category(strings.ToLower(strings.TrimSpace(s))) {
	case CategoryNews:
		return CategoryNews
	case CategoryTech:
		return CategoryTech
	case CategoryBusiness:
		return CategoryBusiness
	case CategoryEntertainment:
		return CategoryEntertainment
	default:
		return CategoryGeneral
	}
}

// Article is an immutable record produced by the fetcher. ID is the
// sha256 hex digest of the source URL.
type Article struct {
	ID          string
	Title       string
	RawBody     string // original entry body, markup included
	CleanedBody string // markup-stripped text used for filtering and rewriting
	FeedName    string
	FeedTitle   string
	Category    Category
	SourceURL   string
	ImageURL    string
	FetchedAt   time.Time
}

// FilterResult is the outcome of the content filter gate.
type FilterResult struct {
	Accepted  bool
	Reason    string
	WordCount int
}

// Configuration types

type Config struct {
	Name     string         // Derived from filename (without .yml extension)
	URL      string         `yaml:"url"`
	Category string         `yaml:"category"`
	Settings ConfigSettings `yaml:"settings"`
}

type ConfigSettings struct {
	Enabled        bool `yaml:"enabled"`
	MaxArticles    int  `yaml:"max_articles"` // published-article cap per run
	Timeout        int  `yaml:"timeout"`      // seconds
	ExtractContent bool `yaml:"extract_content"`
}

func (c *Config) ParsedCategory() Category {
	return ParseCategory(c.Category)
}
