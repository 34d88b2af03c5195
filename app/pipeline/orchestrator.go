// Package pipeline drives articles through fetch, filter, dedup,
// rewrite, enrich, and publish, isolating failures per article and
// aggregating one summary per run.
package pipeline

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/olamidejo/feedscribe/app/feed"
	"github.com/olamidejo/feedscribe/app/ledger"
	"github.com/olamidejo/feedscribe/app/publish"
	"github.com/olamidejo/feedscribe/app/rewrite"
	"github.com/olamidejo/feedscribe/app/seo"
)

// Collaborator interfaces. Concrete adapters live in their own
// packages; the orchestrator only needs these operations.

type Fetcher interface {
	Fetch(ctx context.Context, feedConfig *feed.Config) ([]feed.Article, error)
}

type Rewriter interface {
	Rewrite(ctx context.Context, a feed.Article) (*rewrite.RewrittenArticle, error)
}

type Enricher interface {
	Enrich(title, body string) seo.Metadata
}

type Publisher interface {
	Publish(ctx context.Context, d publish.Draft) (*publish.Result, error)
}

type Ledger interface {
	Contains(ctx context.Context, id string) (bool, error)
	Add(ctx context.Context, entry ledger.Entry) error
}

var (
	_ Fetcher   = (*feed.Fetcher)(nil)
	_ Rewriter  = (*rewrite.Engine)(nil)
	_ Enricher  = (*seo.Enricher)(nil)
	_ Publisher = (*publish.Publisher)(nil)
	_ Ledger    = (*ledger.Store)(nil)
)

type Deps struct {
	Fetcher   Fetcher
	Filter    *feed.Filter
	Rewriter  Rewriter
	Enricher  Enricher
	Publisher Publisher
	Ledger    Ledger
	Reporter  *Reporter
}

type Options struct {
	WorkerCount  int
	RewriteDelay time.Duration
}

// Orchestrator runs a bounded pool of feed workers. Feeds are processed
// in parallel; articles within a feed sequentially, in fetch order.
type Orchestrator struct {
	fetcher   Fetcher
	filter    *feed.Filter
	rewriter  Rewriter
	enricher  Enricher
	publisher Publisher
	ledger    Ledger
	reporter  *Reporter

	workerCount  int
	rewriteDelay time.Duration
}

func NewOrchestrator(deps Deps, opts Options) *Orchestrator {
	if opts.WorkerCount < 1 {
		opts.WorkerCount = 3
	}
	if opts.RewriteDelay <= 0 {
		opts.RewriteDelay = 3 * time.Second
	}

	return &Orchestrator{
		fetcher:      deps.Fetcher,
		filter:       deps.Filter,
		rewriter:     deps.Rewriter,
		enricher:     deps.Enricher,
		publisher:    deps.Publisher,
		ledger:       deps.Ledger,
		reporter:     deps.Reporter,
		workerCount:  opts.WorkerCount,
		rewriteDelay: opts.RewriteDelay,
	}
}

// Run processes all enabled feeds and returns the merged summary. The
// run always completes; article and feed failures surface only in the
// summary and logs.
func (o *Orchestrator) Run(ctx context.Context, configs map[string]*feed.Config) *Summary {
	summary := NewSummary()
	summary.StartedAt = time.Now().UTC()

	names := make([]string, 0, len(configs))
	for name, feedConfig := range configs {
		if feedConfig.Settings.Enabled {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	queue := make(chan *feed.Config)
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < o.workerCount; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()

			// Pacing is per worker: each worker spaces its own rewrite
			// calls, so total call rate scales with worker count.
			limiter := rate.NewLimiter(rate.Every(o.rewriteDelay), 1)

			for feedConfig := range queue {
				local := o.processFeed(ctx, feedConfig, limiter)

				mu.Lock()
				summary.merge(local)
				mu.Unlock()

				slog.Info("Feed processed",
					"worker_id", workerID,
					"feed", feedConfig.Name,
					"fetched", local.Fetched,
					"published", local.Published,
					"duplicates", local.AlreadySeen,
					"filtered", local.FilteredOut,
					"failed", local.Failed())
			}
		}(i)
	}

	for _, name := range names {
		select {
		case <-ctx.Done():
		case queue <- configs[name]:
			continue
		}
		break
	}
	close(queue)

	wg.Wait()
	summary.FinishedAt = time.Now().UTC()

	return summary
}

// processFeed pulls one feed and walks its articles in order until the
// feed is exhausted or the published-article cap is reached.
func (o *Orchestrator) processFeed(ctx context.Context, feedConfig *feed.Config, limiter *rate.Limiter) *Summary {
	local := NewSummary()
	local.FeedsProcessed = 1

	articles, err := o.fetcher.Fetch(ctx, feedConfig)
	if err != nil {
		// A failed fetch degrades this feed to zero articles; other
		// feeds continue.
		slog.Warn("Feed fetch failed", "feed", feedConfig.Name, "error", err)
		if o.reporter != nil {
			o.reporter.LogFailure("", "", feedConfig.Name, StageFetch, err.Error())
		}
		local.FeedsFailed = 1
		return local
	}

	published := 0
	for _, article := range articles {
		if ctx.Err() != nil {
			break
		}
		if feedConfig.Settings.MaxArticles > 0 && published >= feedConfig.Settings.MaxArticles {
			break
		}

		result := o.processArticle(ctx, article, limiter)
		local.record(result)

		if result.Outcome == OutcomePublished {
			published++
		}
	}

	return local
}

// processArticle runs one article through the stage machine and returns
// its terminal result.
func (o *Orchestrator) processArticle(ctx context.Context, a feed.Article, limiter *rate.Limiter) Result {
	result := Result{
		ArticleID: a.ID,
		Title:     a.Title,
		FeedName:  a.FeedName,
	}

	filterResult := o.filter.Evaluate(a)
	if !filterResult.Accepted {
		slog.Debug("Article filtered out", "article", a.ID, "reason", filterResult.Reason)
		if o.reporter != nil {
			o.reporter.LogSkip(a, filterResult.Reason, filterResult.WordCount)
		}
		result.Outcome = OutcomeFilteredOut
		result.Reason = filterResult.Reason
		return result
	}

	seen, err := o.ledger.Contains(ctx, a.ID)
	if err != nil {
		// A ledger read error must not sink the article; worst case is
		// a duplicate draft.
		slog.Warn("Ledger check failed, treating article as unseen", "article", a.ID, "error", err)
	}
	if seen {
		slog.Debug("Skipping duplicate article", "article", a.ID, "title", a.Title)
		if o.reporter != nil {
			o.reporter.LogSkip(a, "duplicate article", -1)
		}
		result.Outcome = OutcomeAlreadySeen
		result.Reason = "duplicate article"
		return result
	}

	if err := limiter.Wait(ctx); err != nil {
		result.Outcome = OutcomeRewriteFailed
		result.Stage = StageRewrite
		result.Reason = err.Error()
		return result
	}

	rewritten, err := o.rewriter.Rewrite(ctx, a)
	if err != nil {
		slog.Warn("Rewrite failed", "article", a.ID, "error", err)
		if o.reporter != nil {
			o.reporter.LogFailure(a.ID, a.Title, a.FeedName, StageRewrite, err.Error())
		}
		result.Outcome = OutcomeRewriteFailed
		result.Stage = StageRewrite
		result.Reason = err.Error()
		return result
	}

	meta := o.enricher.Enrich(rewritten.Title, rewritten.Body)

	labels := meta.Keywords
	if len(labels) == 0 {
		labels = []string{string(a.Category)}
	}

	publishResult, err := o.publisher.Publish(ctx, publish.Draft{
		Title:           rewritten.Title,
		Body:            rewritten.Body,
		MetaDescription: meta.Description,
		Labels:          labels,
		SourceURL:       a.SourceURL,
		SourceTitle:     a.FeedTitle,
		ImageURL:        a.ImageURL,
	})
	if err != nil {
		slog.Warn("Publish failed", "article", a.ID, "error", err)
		if o.reporter != nil {
			o.reporter.LogFailure(a.ID, a.Title, a.FeedName, StagePublish, err.Error())
		}
		result.Outcome = OutcomePublishFailed
		result.Stage = StagePublish
		result.Reason = err.Error()
		return result
	}

	// The ledger is written only after the publisher confirms the
	// draft exists.
	if err := o.ledger.Add(ctx, ledger.Entry{
		ID:        a.ID,
		Title:     rewritten.Title,
		SourceURL: a.SourceURL,
		DraftID:   publishResult.DraftID,
	}); err != nil {
		slog.Warn("Failed to record published article in ledger", "article", a.ID, "error", err)
	}

	slog.Info("Draft published", "article", a.ID, "title", rewritten.Title, "draft_id", publishResult.DraftID, "keyword_density", meta.KeywordDensity)

	result.Outcome = OutcomePublished
	result.DraftID = publishResult.DraftID
	result.ImageIncluded = publishResult.ImageIncluded
	return result
}
