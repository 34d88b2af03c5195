package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/olamidejo/feedscribe/app/feed"
)

// ErrRunActive is returned when a run is requested while a previous run
// is still in progress.
var ErrRunActive = errors.New("a pipeline run is already active")

// Runner serializes pipeline runs: at most one run is active at a time,
// whether triggered by the scheduler or the API. It also persists the
// summary file after each run.
type Runner struct {
	orchestrator *Orchestrator
	reporter     *Reporter
	configs      func() map[string]*feed.Config

	mu          sync.Mutex
	active      bool
	lastSummary *Summary
	lastRunAt   time.Time
}

func NewRunner(orchestrator *Orchestrator, reporter *Reporter, configs func() map[string]*feed.Config) *Runner {
	return &Runner{
		orchestrator: orchestrator,
		reporter:     reporter,
		configs:      configs,
	}
}

// Run executes one full pipeline pass. Returns ErrRunActive if another
// run is in progress.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	r.mu.Lock()
	if r.active {
		r.mu.Unlock()
		return nil, ErrRunActive
	}
	r.active = true
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		r.active = false
		r.mu.Unlock()
	}()

	configs := r.configs()
	slog.Info("Pipeline run started", "feeds", len(configs))

	summary := r.orchestrator.Run(ctx, configs)

	if r.reporter != nil {
		path, err := r.reporter.WriteSummary(summary)
		if err != nil {
			slog.Warn("Failed to write run summary", "error", err)
		} else {
			slog.Info("Run summary written", "path", path)
		}
	}

	r.mu.Lock()
	r.lastSummary = summary
	r.lastRunAt = summary.FinishedAt
	r.mu.Unlock()

	slog.Info("Pipeline run finished",
		"feeds_processed", summary.FeedsProcessed,
		"feeds_failed", summary.FeedsFailed,
		"fetched", summary.Fetched,
		"published", summary.Published,
		"skipped", summary.Skipped(),
		"failed", summary.Failed(),
		"duration", summary.FinishedAt.Sub(summary.StartedAt).Round(time.Millisecond))

	return summary, nil
}

// Running reports whether a run is currently in progress.
func (r *Runner) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}

// LastSummary returns the most recent completed run's summary, or nil
// if no run has completed yet.
func (r *Runner) LastSummary() *Summary {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastSummary
}

// LastRunAt returns the finish time of the most recent completed run.
func (r *Runner) LastRunAt() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastRunAt
}
