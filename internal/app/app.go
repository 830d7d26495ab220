// Package app wires configuration into a runnable retrieval pipeline:
// providers, fetcher, summarizer, resolver, and the batch orchestrator.
package app

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"

	"github.com/omnisearch/omnisearch/internal/batch"
	"github.com/omnisearch/omnisearch/internal/extract"
	"github.com/omnisearch/omnisearch/internal/fetch"
	"github.com/omnisearch/omnisearch/internal/resolve"
	"github.com/omnisearch/omnisearch/internal/search"
	"github.com/omnisearch/omnisearch/internal/summarize"
	"github.com/omnisearch/omnisearch/internal/wiki"
)

// App owns the assembled pipeline for one process lifetime.
type App struct {
	cfg          Config
	httpClient   *http.Client
	orchestrator *batch.Orchestrator
}

// New builds the pipeline from cfg. All components share one pooled HTTP
// client; nothing here touches the network yet.
func New(cfg Config) *App {
	cfg = cfg.withDefaults()
	httpClient := newHighThroughputHTTPClient()

	var provider search.Provider
	if cfg.SearchFile != "" {
		provider = &search.FileProvider{Path: cfg.SearchFile}
		log.Info().Str("path", cfg.SearchFile).Msg("using offline file search provider")
	} else {
		provider = &search.DuckDuckGo{
			BaseURL:    cfg.SearchBaseURL,
			HTTPClient: httpClient,
			UserAgent:  cfg.SearchUserAgent,
		}
	}

	fallback := &wiki.Provider{
		APIURL:     cfg.WikiAPIURL,
		ArticleURL: cfg.WikiArticleURL,
		HTTPClient: httpClient,
		UserAgent:  cfg.SearchUserAgent,
	}

	fetcher := &fetch.Client{
		HTTPClient:        httpClient,
		UserAgent:         cfg.FetchUserAgent,
		PerRequestTimeout: cfg.FetchTimeout,
	}

	var summarizer summarize.Summarizer = summarize.LeadSummarizer{MaxSentences: cfg.SummarySentences}
	if cfg.LLMModel != "" {
		clientCfg := openai.DefaultConfig(cfg.LLMAPIKey)
		if cfg.LLMBaseURL != "" {
			clientCfg.BaseURL = cfg.LLMBaseURL
		}
		clientCfg.HTTPClient = httpClient
		summarizer = &summarize.LLMSummarizer{
			Client:   openai.NewClientWithConfig(clientCfg),
			Model:    cfg.LLMModel,
			Fallback: summarizer,
		}
		log.Info().Str("model", cfg.LLMModel).Msg("LLM summarizer enabled")
	}

	resolver := &resolve.Resolver{
		Search:          provider,
		Fallback:        fallback,
		Fetcher:         fetcher,
		Extractor:       extract.HeuristicExtractor{},
		Summarizer:      summarizer,
		MaxResults:      cfg.MaxResults,
		MaxFetches:      cfg.MaxFetches,
		MaxExcerptChars: cfg.MaxExcerptChars,
	}

	return &App{
		cfg:        cfg,
		httpClient: httpClient,
		orchestrator: &batch.Orchestrator{
			Resolver:    resolver,
			Concurrency: cfg.Concurrency,
		},
	}
}

// Run resolves a batch of queries. Validation errors are the only errors;
// upstream failures surface as empty source lists per record.
func (a *App) Run(ctx context.Context, queries []string) (batch.ResultBatch, error) {
	return a.orchestrator.Run(ctx, queries)
}

// Close releases pooled connections.
func (a *App) Close() {
	a.httpClient.CloseIdleConnections()
}
