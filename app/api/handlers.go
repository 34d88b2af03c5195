package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/olamidejo/feedscribe/app/feed"
)

func NewHandler(runner RunnerInterface, store LedgerInterface, configCache *feed.ConfigCache) *Handler {
	return &Handler{
		runner:      runner,
		ledger:      store,
		configCache: configCache,
	}
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	}

	if count, err := h.ledger.Count(c.Request.Context()); err == nil {
		health["published_articles"] = count
	}

	health["loaded_configurations"] = h.configCache.GetConfigCount()
	health["run_active"] = h.runner.Running()

	c.JSON(http.StatusOK, health)
}

func (h *Handler) GetStats(c *gin.Context) {
	stats := map[string]interface{}{
		"run_active": h.runner.Running(),
	}

	if count, err := h.ledger.Count(c.Request.Context()); err == nil {
		stats["published_articles"] = count
	}

	if lastRunAt := h.runner.LastRunAt(); !lastRunAt.IsZero() {
		stats["last_run_at"] = lastRunAt.Format(time.RFC3339)
	}

	if summary := h.runner.LastSummary(); summary != nil {
		stats["last_run"] = map[string]interface{}{
			"started_at":      summary.StartedAt.Format(time.RFC3339),
			"finished_at":     summary.FinishedAt.Format(time.RFC3339),
			"feeds_processed": summary.FeedsProcessed,
			"feeds_failed":    summary.FeedsFailed,
			"fetched":         summary.Fetched,
			"published":       summary.Published,
			"skipped":         summary.Skipped(),
			"failed":          summary.Failed(),
			"with_images":     summary.ImagesIncluded,
		}
	}

	c.JSON(http.StatusOK, stats)
}

func (h *Handler) APIListFeeds(c *gin.Context) {
	configs := h.configCache.GetConfigs()

	feeds := make([]map[string]interface{}, 0, len(configs))

	for _, feedConfig := range configs {
		feeds = append(feeds, map[string]interface{}{
			"name":            feedConfig.Name,
			"url":             feedConfig.URL,
			"category":        string(feedConfig.ParsedCategory()),
			"enabled":         feedConfig.Settings.Enabled,
			"max_articles":    feedConfig.Settings.MaxArticles,
			"extract_content": feedConfig.Settings.ExtractContent,
		})
	}

	c.JSON(http.StatusOK, map[string]interface{}{
		"feeds": feeds,
		"total": len(feeds),
	})
}

func (h *Handler) APITriggerRun(c *gin.Context) {
	if h.runner.Running() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "A pipeline run is already active",
		})
		return
	}

	go func() {
		if _, err := h.runner.Run(context.Background()); err != nil {
			slog.Error("Triggered run failed", "error", err)
		}
	}()

	c.JSON(http.StatusAccepted, gin.H{
		"success": true,
		"message": "Pipeline run started",
	})
}
