package cfg

import (
	"cmp"
	"fmt"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Pipeline inputs
	FeedsDir   string `long:"feeds-dir" env:"FEEDS_DIR" default:"./feeds" description:"Directory containing feed configuration files"`
	LedgerPath string `long:"ledger-path" env:"LEDGER_PATH" default:"./feedscribe.db" description:"Path to the dedup ledger database file"`
	ReportsDir string `long:"reports-dir" env:"REPORTS_DIR" default:"./reports" description:"Directory for run summaries and skip/failure logs"`

	// Rewrite service
	RewriteEndpoint string `long:"rewrite-endpoint" env:"REWRITE_ENDPOINT" default:"https://api.groq.com/openai/v1/chat/completions" description:"Chat completions endpoint for article rewriting"`
	RewriteModel    string `long:"rewrite-model" env:"REWRITE_MODEL" default:"llama3-70b-8192" description:"Model used for article rewriting"`
	RewriteAPIKey   string `long:"rewrite-api-key" env:"REWRITE_API_KEY" description:"API key for the rewrite service (required)" required:"true"`

	// Publish target
	BlogID          string `long:"blog-id" env:"BLOG_ID" description:"Target blog identifier (required)" required:"true"`
	BlogURL         string `long:"blog-url" env:"BLOG_URL" description:"Public blog URL, substituted into rewrite prompts"`
	PublishEndpoint string `long:"publish-endpoint" env:"PUBLISH_ENDPOINT" default:"https://www.googleapis.com/blogger/v3" description:"Blogging platform API base URL"`
	PublishToken    string `long:"publish-token" env:"PUBLISH_TOKEN" description:"OAuth bearer token for the blogging platform (required)" required:"true"`

	// Pipeline tuning
	WorkerCount    int `long:"worker-count" env:"WORKER_COUNT" default:"3" description:"Number of parallel feed workers"`
	MinWordCount   int `long:"min-word-count" env:"MIN_WORD_COUNT" default:"15" description:"Minimum cleaned word count for an article to qualify"`
	RewriteDelay   int `long:"rewrite-delay" env:"REWRITE_DELAY" default:"3" description:"Delay in seconds between rewrite calls, per worker"`
	RewriteRetries int `long:"rewrite-retries" env:"REWRITE_RETRIES" default:"2" description:"Total attempts for transient rewrite failures"`
	FetchTimeout   int `long:"fetch-timeout" env:"FETCH_TIMEOUT" default:"30" description:"Feed fetch timeout in seconds"`
	RewriteTimeout int `long:"rewrite-timeout" env:"REWRITE_TIMEOUT" default:"60" description:"Rewrite call timeout in seconds"`
	PublishTimeout int `long:"publish-timeout" env:"PUBLISH_TIMEOUT" default:"30" description:"Publish call timeout in seconds"`

	// Serve mode
	Serve        bool   `long:"serve" env:"SERVE" description:"Run as a server with scheduled runs instead of a single run"`
	Port         string `long:"port" env:"PORT" default:"8080" description:"HTTP server port (serve mode)"`
	APIAccessKey string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for the run trigger endpoint (optional)"`
	RunInterval  int    `long:"run-interval" env:"RUN_INTERVAL" default:"3600" description:"Interval between scheduled runs in seconds (serve mode)"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"Feedscribe/1.0" description:"User agent string for HTTP requests"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		FeedsDir:        raw.FeedsDir,
		LedgerPath:      raw.LedgerPath,
		ReportsDir:      raw.ReportsDir,
		RewriteEndpoint: raw.RewriteEndpoint,
		RewriteModel:    raw.RewriteModel,
		RewriteAPIKey:   raw.RewriteAPIKey,
		BlogID:          raw.BlogID,
		BlogURL:         raw.BlogURL,
		PublishEndpoint: raw.PublishEndpoint,
		PublishToken:    raw.PublishToken,
		WorkerCount:     raw.WorkerCount,
		MinWordCount:    raw.MinWordCount,
		RewriteDelay:    raw.RewriteDelay,
		RewriteRetries:  raw.RewriteRetries,
		FetchTimeout:    raw.FetchTimeout,
		RewriteTimeout:  raw.RewriteTimeout,
		PublishTimeout:  raw.PublishTimeout,
		Serve:           raw.Serve,
		Port:            raw.Port,
		APIAccessKey:    raw.APIAccessKey,
		RunInterval:     raw.RunInterval,
		UserAgent:       raw.UserAgent,
		Debug:           raw.Debug,
		Version:         GetVersion(),
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}
