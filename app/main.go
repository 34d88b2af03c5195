package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/olamidejo/feedscribe/app/api"
	"github.com/olamidejo/feedscribe/app/cfg"
	"github.com/olamidejo/feedscribe/app/feed"
	"github.com/olamidejo/feedscribe/app/ledger"
	"github.com/olamidejo/feedscribe/app/pipeline"
	"github.com/olamidejo/feedscribe/app/publish"
	"github.com/olamidejo/feedscribe/app/rewrite"
	"github.com/olamidejo/feedscribe/app/seo"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting Feedscribe", "version", appCfg.Version)

	store, err := ledger.Open(appCfg.LedgerPath)
	if err != nil {
		slog.Error("Failed to open ledger", "path", appCfg.LedgerPath, "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Ledger opened", "path", appCfg.LedgerPath)

	configCache := feed.NewConfigCache(appCfg.FeedsDir)
	if err := configCache.Run(); err != nil {
		slog.Error("Failed to load feed configurations", "dir", appCfg.FeedsDir, "error", err)
		os.Exit(1)
	}
	slog.Info("Feed configurations loaded", "dir", appCfg.FeedsDir, "count", configCache.GetConfigCount())

	reporter, err := pipeline.NewReporter(appCfg.ReportsDir)
	if err != nil {
		slog.Error("Failed to prepare reports directory", "dir", appCfg.ReportsDir, "error", err)
		os.Exit(1)
	}

	fetchClient := &http.Client{Timeout: time.Duration(appCfg.FetchTimeout) * time.Second}
	extractor := feed.NewContentExtractor(fetchClient, appCfg.UserAgent)
	fetcher := feed.NewFetcher(fetchClient, extractor, appCfg.UserAgent, appCfg.MinWordCount)

	rewriteClient := rewrite.NewClient(appCfg.RewriteEndpoint, appCfg.RewriteModel, appCfg.RewriteAPIKey,
		time.Duration(appCfg.RewriteTimeout)*time.Second)
	engine := rewrite.NewEngine(rewriteClient, appCfg.BlogURL, appCfg.RewriteRetries,
		time.Duration(appCfg.RewriteDelay)*time.Second)

	publisher := publish.NewPublisher(appCfg.PublishEndpoint, appCfg.BlogID, appCfg.PublishToken,
		appCfg.UserAgent, time.Duration(appCfg.PublishTimeout)*time.Second)

	orchestrator := pipeline.NewOrchestrator(pipeline.Deps{
		Fetcher:   fetcher,
		Filter:    feed.NewFilter(appCfg.MinWordCount),
		Rewriter:  engine,
		Enricher:  seo.NewEnricher(),
		Publisher: publisher,
		Ledger:    store,
		Reporter:  reporter,
	}, pipeline.Options{
		WorkerCount:  appCfg.WorkerCount,
		RewriteDelay: time.Duration(appCfg.RewriteDelay) * time.Second,
	})

	runner := pipeline.NewRunner(orchestrator, reporter, configCache.GetEnabledConfigs)

	if !appCfg.Serve {
		runOnce(runner)
		return
	}

	serve(appCfg, runner, store, configCache)
}

// runOnce executes a single pipeline pass and exits. This is the default
// mode, suitable for cron.
func runOnce(runner *pipeline.Runner) {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	summary, err := runner.Run(ctx)
	if err != nil {
		slog.Error("Pipeline run failed", "error", err)
		os.Exit(1)
	}

	if summary.FeedsFailed > 0 && summary.FeedsFailed == summary.FeedsProcessed {
		slog.Error("All feeds failed to fetch")
		os.Exit(1)
	}
}

// serve runs the HTTP server and triggers pipeline runs on an interval
// until interrupted.
func serve(appCfg *cfg.Cfg, runner *pipeline.Runner, store *ledger.Store, configCache *feed.ConfigCache) {
	apiHandler := api.NewHandler(runner, store, configCache)
	server := api.NewServer(apiHandler, appCfg.APIAccessKey, appCfg.Version)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server starting", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	runCtx, cancelRuns := context.WithCancel(context.Background())
	defer cancelRuns()

	interval := time.Duration(appCfg.RunInterval) * time.Second
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		// First run starts immediately; subsequent runs follow the
		// interval.
		for {
			if _, err := runner.Run(runCtx); err != nil && err != pipeline.ErrRunActive {
				slog.Error("Scheduled run failed", "error", err)
			}

			select {
			case <-runCtx.Done():
				return
			case <-ticker.C:
			}
		}
	}()

	slog.Info("Feedscribe started", "run_interval", interval.String())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error, shutting down", "error", err)
	}

	cancelRuns()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	slog.Info("Shutdown complete")
}
