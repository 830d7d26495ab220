package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/omnisearch/omnisearch/internal/app"
	"github.com/omnisearch/omnisearch/internal/report"
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	var (
		configPath   string
		searchURL    string
		searchFile   string
		searchUA     string
		wikiAPI      string
		maxResults   int
		maxFetches   int
		excerptChars int
		sentences    int
		fetchTimeout time.Duration
		fetchUA      string
		concurrency  int
		llmBaseURL   string
		llmModel     string
		llmKey       string
		outputMD     string
		outputPDF    string
		verbose      bool
	)

	flag.StringVar(&configPath, "config", os.Getenv("OMNISEARCH_CONFIG"), "Path to YAML/JSON config file")
	flag.StringVar(&searchURL, "search.url", os.Getenv("SEARCH_URL"), "Override search backend endpoint")
	flag.StringVar(&searchFile, "search.file", os.Getenv("SEARCH_FILE"), "Path to JSON file for offline file-based search provider")
	flag.StringVar(&searchUA, "search.ua", "", "Custom User-Agent for search and wiki API requests")
	flag.StringVar(&wikiAPI, "wiki.api", os.Getenv("WIKI_API"), "Override MediaWiki API endpoint for the encyclopedic fallback")
	flag.IntVar(&maxResults, "max.results", 5, "Candidates requested from the search backend per query")
	flag.IntVar(&maxFetches, "max.fetches", 3, "Candidates fetched and summarized per query")
	flag.IntVar(&excerptChars, "max.excerptChars", 800, "Maximum characters per source excerpt")
	flag.IntVar(&sentences, "max.sentences", 5, "Sentences kept by the lead summarizer")
	flag.DurationVar(&fetchTimeout, "fetch.timeout", 10*time.Second, "Per-page fetch timeout")
	flag.StringVar(&fetchUA, "fetch.ua", "", "User-Agent for page fetches (defaults to a browser identity)")
	flag.IntVar(&concurrency, "concurrency", 8, "Maximum simultaneous query resolutions")
	flag.StringVar(&llmBaseURL, "llm.base", os.Getenv("LLM_BASE_URL"), "OpenAI-compatible base URL for the optional LLM summarizer")
	flag.StringVar(&llmModel, "llm.model", os.Getenv("LLM_MODEL"), "Model name; empty disables the LLM summarizer")
	flag.StringVar(&llmKey, "llm.key", os.Getenv("LLM_API_KEY"), "API key for the OpenAI-compatible server")
	flag.StringVar(&outputMD, "output", "", "Optional path for a Markdown report of the batch")
	flag.StringVar(&outputPDF, "output.pdf", "", "Optional path for a PDF report of the batch")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.Parse()

	queries := flag.Args()
	if len(queries) == 0 {
		fmt.Fprintln(os.Stderr, "usage: omnisearch [flags] \"query1\" [\"query2\" ...]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	var cfg app.Config
	if configPath != "" {
		fc, err := app.LoadConfigFile(configPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", configPath).Msg("load config file")
		}
		fc.Apply(&cfg)
	}
	// Explicit flags win over file values.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "search.url":
			cfg.SearchBaseURL = searchURL
		case "search.file":
			cfg.SearchFile = searchFile
		case "search.ua":
			cfg.SearchUserAgent = searchUA
		case "wiki.api":
			cfg.WikiAPIURL = wikiAPI
		case "max.results":
			cfg.MaxResults = maxResults
		case "max.fetches":
			cfg.MaxFetches = maxFetches
		case "max.excerptChars":
			cfg.MaxExcerptChars = excerptChars
		case "max.sentences":
			cfg.SummarySentences = sentences
		case "fetch.timeout":
			cfg.FetchTimeout = fetchTimeout
		case "fetch.ua":
			cfg.FetchUserAgent = fetchUA
		case "concurrency":
			cfg.Concurrency = concurrency
		case "llm.base":
			cfg.LLMBaseURL = llmBaseURL
		case "llm.model":
			cfg.LLMModel = llmModel
		case "llm.key":
			cfg.LLMAPIKey = llmKey
		case "v":
			cfg.Verbose = verbose
		}
	})
	// Env-backed flags also apply when unset but present in the environment.
	if cfg.SearchFile == "" && searchFile != "" {
		cfg.SearchFile = searchFile
	}
	if cfg.SearchBaseURL == "" && searchURL != "" {
		cfg.SearchBaseURL = searchURL
	}
	if cfg.WikiAPIURL == "" && wikiAPI != "" {
		cfg.WikiAPIURL = wikiAPI
	}
	if cfg.LLMModel == "" && llmModel != "" {
		cfg.LLMBaseURL, cfg.LLMModel, cfg.LLMAPIKey = llmBaseURL, llmModel, llmKey
	}

	if cfg.Verbose || verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := app.New(cfg)
	defer a.Close()

	results, err := a.Run(ctx, queries)
	if err != nil {
		log.Fatal().Err(err).Msg("batch failed")
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		log.Fatal().Err(err).Msg("encode results")
	}

	if outputMD != "" {
		if err := report.WriteMarkdown(results, outputMD); err != nil {
			log.Fatal().Err(err).Msg("write markdown report")
		}
		log.Info().Str("out", outputMD).Msg("wrote Markdown report")
	}
	if outputPDF != "" {
		if err := report.WritePDF(results, outputPDF); err != nil {
			log.Fatal().Err(err).Msg("write pdf report")
		}
		log.Info().Str("out", outputPDF).Msg("wrote PDF report")
	}
}
