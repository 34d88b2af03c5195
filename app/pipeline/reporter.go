package pipeline

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/olamidejo/feedscribe/app/feed"
)

const timestampLayout = "2006-01-02 15:04:05"

// Reporter writes the operator-facing artifacts: an append-only skip
// log, an append-only failure log, and a per-run summary file. These
// are consumed by humans, never read back by the pipeline.
type Reporter struct {
	mu         sync.Mutex
	skipPath   string
	failPath   string
	reportsDir string
}

func NewReporter(reportsDir string) (*Reporter, error) {
	if err := os.MkdirAll(reportsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create reports directory: %w", err)
	}

	return &Reporter{
		skipPath:   filepath.Join(reportsDir, "skipped_articles.txt"),
		failPath:   filepath.Join(reportsDir, "failed_articles.txt"),
		reportsDir: reportsDir,
	}, nil
}

// LogSkip appends a skipped article (filtered out or already seen) to
// the skip log.
func (r *Reporter) LogSkip(a feed.Article, reason string, wordCount int) {
	line := fmt.Sprintf("[%s] Skipped article: '%s' (%s) from %s (Reason: %s", time.Now().Format(timestampLayout), a.Title, a.ID, a.FeedName, reason)
	if wordCount >= 0 {
		line += fmt.Sprintf(", Word count: %d", wordCount)
	}
	line += ")\n"

	r.appendLine(r.skipPath, line)
}

// LogFailure appends a failed article to the failure log with the stage
// that caused it.
func (r *Reporter) LogFailure(articleID, title, feedName string, stage Stage, cause string) {
	line := fmt.Sprintf("[%s] Failed article: '%s' (%s) from %s (Stage: %s, Cause: %s)\n",
		time.Now().Format(timestampLayout), title, articleID, feedName, stage, cause)

	r.appendLine(r.failPath, line)
}

// WriteSummary writes the run summary file and returns its path.
func (r *Reporter) WriteSummary(s *Summary) (string, error) {
	timestamp := s.FinishedAt
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Article Processing Summary - %s\n", timestamp.Format(timestampLayout))
	b.WriteString("=====================================\n")
	fmt.Fprintf(&b, "Total Feeds Processed: %d\n", s.FeedsProcessed)
	fmt.Fprintf(&b, "Feeds Failed to Fetch: %d\n", s.FeedsFailed)
	fmt.Fprintf(&b, "Total Articles Fetched: %d\n", s.Fetched)
	fmt.Fprintf(&b, "Total Articles Published: %d\n", s.Published)
	fmt.Fprintf(&b, "Duplicates Skipped: %d\n", s.AlreadySeen)
	fmt.Fprintf(&b, "Articles Skipped (Short): %d\n", s.FilteredOut)
	for _, stage := range []Stage{StageRewrite, StagePublish} {
		if n := s.FailedByStage[stage]; n > 0 {
			fmt.Fprintf(&b, "Articles Failed (%s): %d\n", stage, n)
		}
	}
	fmt.Fprintf(&b, "Articles with Images: %d\n", s.ImagesIncluded)

	if len(s.Results) > 0 {
		b.WriteString("\nOutcomes:\n")
		for _, result := range s.Results {
			fmt.Fprintf(&b, "[%s] %s '%s'", result.Outcome, result.ArticleID, result.Title)
			if result.DraftID != "" {
				fmt.Fprintf(&b, " (draft %s)", result.DraftID)
			}
			if result.Reason != "" {
				fmt.Fprintf(&b, " - %s", result.Reason)
			}
			b.WriteByte('\n')
		}
	}

	name := fmt.Sprintf("summary_%s.txt", timestamp.Format("2006-01-02_15-04-05"))
	path := filepath.Join(r.reportsDir, name)

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return "", fmt.Errorf("failed to write summary: %w", err)
	}

	return path, nil
}

func (r *Reporter) appendLine(path, line string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		slog.Warn("Failed to open report log", "path", path, "error", err)
		return
	}
	defer f.Close()

	if _, err := f.WriteString(line); err != nil {
		slog.Warn("Failed to append report line", "path", path, "error", err)
	}
}
