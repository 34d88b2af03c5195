package feed

import (
	"cmp"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

// Fetcher pulls a feed over HTTP and turns its entries into Articles.
// Thin entry bodies are optionally backfilled from the source page via
// the content extractor before the filter gate sees them.
type Fetcher struct {
	httpClient   *http.Client
	gofeedParser *gofeed.Parser
	cleaner      *Cleaner
	extractor    *ContentExtractor
	userAgent    string
	minWords     int
}

func NewFetcher(httpClient *http.Client, extractor *ContentExtractor, userAgent string, minWords int) *Fetcher {
	return &Fetcher{
		httpClient:   httpClient,
		gofeedParser: gofeed.NewParser(),
		cleaner:      NewCleaner(),
		extractor:    extractor,
		userAgent:    userAgent,
		minWords:     minWords,
	}
}

// Fetch downloads and parses the configured feed. The returned articles
// are in feed order; the per-feed cap is enforced by the caller.
func (f *Fetcher) Fetch(ctx context.Context, feedConfig *Config) ([]Article, error) {
	data, err := f.fetchFeed(ctx, feedConfig)
	if err != nil {
		return nil, err
	}

	parsed, err := f.gofeedParser.Parse(strings.NewReader(string(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	feedTitle := cmp.Or(parsed.Title, "Unknown Feed")
	fetchedAt := time.Now().UTC()

	articles := make([]Article, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		if item == nil || item.Link == "" {
			continue
		}

		article := Article{
			ID:        ArticleID(item.Link),
			Title:     cmp.Or(item.Title, "No Title"),
			RawBody:   cmp.Or(item.Description, item.Content),
			FeedName:  feedConfig.Name,
			FeedTitle: feedTitle,
			Category:  feedConfig.ParsedCategory(),
			SourceURL: item.Link,
			ImageURL:  extractImage(item),
			FetchedAt: fetchedAt,
		}

		article.CleanedBody = f.cleaner.Run(article.RawBody)

		if WordCount(article.CleanedBody) < f.minWords && feedConfig.Settings.ExtractContent && f.extractor != nil {
			if content, err := f.extractor.Run(ctx, item.Link); err != nil {
				slog.Debug("Content extraction failed, keeping entry body", "feed", feedConfig.Name, "link", item.Link, "error", err)
			} else {
				article.RawBody = content
				article.CleanedBody = f.cleaner.Run(content)
			}
		}

		articles = append(articles, article)
	}

	return articles, nil
}

func (f *Fetcher) fetchFeed(ctx context.Context, feedConfig *Config) ([]byte, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, time.Duration(feedConfig.Settings.Timeout)*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, http.MethodGet, feedConfig.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}

// ArticleID derives the stable article identifier from the source URL.
func ArticleID(sourceURL string) string {
	hash := sha256.Sum256([]byte(sourceURL))
	return hex.EncodeToString(hash[:])
}

var imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

func looksLikeImage(url, mimeType string) bool {
	if strings.HasPrefix(mimeType, "image/") {
		return true
	}
	lower := strings.ToLower(url)
	for _, ext := range imageExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// extractImage checks enclosures, the item image, and media extensions
// for a usable image URL, in that order.
func extractImage(item *gofeed.Item) string {
	for _, enc := range item.Enclosures {
		if enc != nil && enc.URL != "" && looksLikeImage(enc.URL, enc.Type) {
			return enc.URL
		}
	}

	if item.Image != nil && item.Image.URL != "" {
		return item.Image.URL
	}

	if media, ok := item.Extensions["media"]; ok {
		for _, key := range []string{"content", "thumbnail"} {
			for _, ext := range media[key] {
				if url := ext.Attrs["url"]; url != "" {
					return url
				}
			}
		}
	}

	return ""
}
