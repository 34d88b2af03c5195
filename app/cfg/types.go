package cfg

type Cfg struct {
	// Pipeline inputs
	FeedsDir   string
	LedgerPath string
	ReportsDir string

	// Rewrite service (Groq / OpenAI-compatible chat completions)
	RewriteEndpoint string
	RewriteModel    string
	RewriteAPIKey   string

	// Publish target
	BlogID          string
	BlogURL         string
	PublishEndpoint string
	PublishToken    string

	// Pipeline tuning
	WorkerCount    int
	MinWordCount   int
	RewriteDelay   int // seconds between rewrite calls, per worker
	RewriteRetries int
	FetchTimeout   int // seconds
	RewriteTimeout int // seconds
	PublishTimeout int // seconds

	// Serve mode
	Serve        bool
	Port         string
	APIAccessKey string
	RunInterval  int // seconds

	// Application metadata
	UserAgent string
	Debug     bool
	Version   string
}
