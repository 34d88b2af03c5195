package rewrite

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/olamidejo/feedscribe/app/feed"
)

const maxSourceChars = 1500

// RewrittenArticle is the rewrite engine's output for one article.
type RewrittenArticle struct {
	ArticleID string
	Title     string
	Body      string
	WordCount int
	Category  feed.Category
}

// Completer abstracts the chat completions client.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

var _ Completer = (*Client)(nil)

// Engine wraps the completions client with prompt selection, response
// parsing, and bounded retry on transient failures.
type Engine struct {
	client     Completer
	blogURL    string
	attempts   int
	retryDelay time.Duration
}

// NewEngine configures the rewrite engine. attempts is the total number
// of calls allowed per article; retryDelay is the enforced minimum wait
// between them.
func NewEngine(client Completer, blogURL string, attempts int, retryDelay time.Duration) *Engine {
	if attempts < 1 {
		attempts = 1
	}
	return &Engine{
		client:     client,
		blogURL:    blogURL,
		attempts:   attempts,
		retryDelay: retryDelay,
	}
}

// Rewrite sends the article through the model using its category's
// prompt. Transient failures are retried up to the configured attempt
// bound; permanent failures return immediately.
func (e *Engine) Rewrite(ctx context.Context, a feed.Article) (*RewrittenArticle, error) {
	user := buildUserPrompt(a, e.blogURL)

	var lastErr error
	for attempt := 1; attempt <= e.attempts; attempt++ {
		if attempt > 1 {
			slog.Debug("Retrying rewrite", "article", a.ID, "attempt", attempt, "delay", e.retryDelay.String())
			select {
			case <-ctx.Done():
				return nil, &Error{Transient: true, Msg: ctx.Err().Error()}
			case <-time.After(e.retryDelay):
			}
		}

		response, err := e.client.Complete(ctx, systemPrompt, user)
		if err != nil {
			lastErr = err
			if IsTransient(err) {
				continue
			}
			return nil, err
		}

		return e.parseResponse(a, response)
	}

	return nil, lastErr
}

var (
	titleRe   = regexp.MustCompile(`(?m)^\s*Title:\s*(.+)$`)
	contentRe = regexp.MustCompile(`(?s)Content:\s*(.*)$`)
)

// parseResponse extracts the rewritten title and body from the model's
// labelled output. The model's own meta description and keyword
// suggestions are discarded; the SEO enricher is authoritative.
func (e *Engine) parseResponse(a feed.Article, response string) (*RewrittenArticle, error) {
	title := a.Title
	if m := titleRe.FindStringSubmatch(response); m != nil {
		title = strings.TrimSpace(m[1])
	}

	body := response
	if m := contentRe.FindStringSubmatch(response); m != nil {
		body = m[1]
	}
	body = strings.TrimSpace(body)

	if body == "" {
		return nil, &Error{Msg: "empty rewritten content"}
	}

	return &RewrittenArticle{
		ArticleID: a.ID,
		Title:     title,
		Body:      body,
		WordCount: feed.WordCount(body),
		Category:  a.Category,
	}, nil
}

func buildUserPrompt(a feed.Article, blogURL string) string {
	content := a.CleanedBody
	truncated := ""
	if len(content) > maxSourceChars {
		content = content[:maxSourceChars]
		truncated = "... (full content is longer)"
	}

	return fmt.Sprintf(`%s

Original Title: %s
Original Content: %s%s
Source URL: %s

Output format:
Title: [Rewritten Title]
Meta Description: [SEO-friendly meta description]
Keywords: [3-5 SEO keywords]
Content: [Rewritten article content]`,
		PromptFor(a.Category, blogURL), a.Title, content, truncated, a.SourceURL)
}
