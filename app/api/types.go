package api

import (
	"context"
	"time"

	"github.com/olamidejo/feedscribe/app/feed"
	"github.com/olamidejo/feedscribe/app/ledger"
	"github.com/olamidejo/feedscribe/app/pipeline"
)

type RunnerInterface interface {
	Run(ctx context.Context) (*pipeline.Summary, error)
	Running() bool
	LastSummary() *pipeline.Summary
	LastRunAt() time.Time
}

var _ RunnerInterface = (*pipeline.Runner)(nil)

type LedgerInterface interface {
	Count(ctx context.Context) (int, error)
}

var _ LedgerInterface = (*ledger.Store)(nil)

type Handler struct {
	runner      RunnerInterface
	ledger      LedgerInterface
	configCache *feed.ConfigCache
}
