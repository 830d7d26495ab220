package app

import "time"

// Default identities: pages are fetched with a browser identity to reduce
// trivial blocking, while API backends get an honest service identity.
const (
	DefaultBrowserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"
	DefaultServiceUserAgent = "omnisearch/1.0 (+https://github.com/omnisearch/omnisearch)"
)

// Config holds runtime configuration for the pipeline.
type Config struct {
	// Search
	SearchBaseURL   string // optional DuckDuckGo endpoint override
	SearchFile      string // offline file provider; overrides the live backend
	SearchUserAgent string

	// Encyclopedic fallback
	WikiAPIURL     string // optional MediaWiki endpoint override
	WikiArticleURL string

	// Budgets
	MaxResults       int // candidates requested per query
	MaxFetches       int // candidates fetched per query
	MaxExcerptChars  int // per-source content cap
	SummarySentences int // lead-summary sentence cap

	// Fetch
	FetchTimeout   time.Duration
	FetchUserAgent string

	// Batch
	Concurrency int

	// Optional LLM summarizer; disabled unless Model is set.
	LLMBaseURL string
	LLMModel   string
	LLMAPIKey  string

	// Behavior
	Verbose bool
}

// withDefaults fills unset fields with the baseline budgets.
func (c Config) withDefaults() Config {
	if c.SearchUserAgent == "" {
		c.SearchUserAgent = DefaultServiceUserAgent
	}
	if c.FetchUserAgent == "" {
		c.FetchUserAgent = DefaultBrowserUserAgent
	}
	if c.MaxResults <= 0 {
		c.MaxResults = 5
	}
	if c.MaxFetches <= 0 {
		c.MaxFetches = 3
	}
	if c.MaxExcerptChars <= 0 {
		c.MaxExcerptChars = 800
	}
	if c.SummarySentences <= 0 {
		c.SummarySentences = 5
	}
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = 10 * time.Second
	}
	return c
}
