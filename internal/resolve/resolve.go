// Package resolve turns one query into one summary record. It owns the
// fallback chain: broad web search first, an encyclopedic lookup when the
// search yields nothing, and a well-formed empty record when both fail.
package resolve

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/omnisearch/omnisearch/internal/extract"
	"github.com/omnisearch/omnisearch/internal/search"
	"github.com/omnisearch/omnisearch/internal/summarize"
)

// TypeSummary tags a QueryResult as a summary record. The field is kept
// extensible for future record variants.
const TypeSummary = "summary"

var errNoFetcher = errors.New("no fetcher configured")

// SourceResult is one successfully summarized page.
type SourceResult struct {
	URL     string `json:"url"`
	Content string `json:"content"`
}

// QueryResult is the output record for one input query. Sources is empty,
// never nil, when every discovery and fetch attempt failed; the record is
// still emitted so output stays 1:1 with input.
type QueryResult struct {
	Type    string         `json:"type"`
	Query   string         `json:"query"`
	Sources []SourceResult `json:"sources"`
}

// Fetcher retrieves raw page bytes for a URL.
type Fetcher interface {
	Get(ctx context.Context, url string) ([]byte, string, error)
}

// FallbackProvider returns at most one authoritative candidate for a query.
type FallbackProvider interface {
	Lookup(ctx context.Context, query string) (*search.Result, error)
	Name() string
}

// state names the resolver's phases; transitions are linear and failures
// only ever move forward, toward a (possibly empty) record.
type state int

const (
	stateSearch state = iota
	stateFallback
	stateFetch
	stateDone
)

// Resolver runs the per-query pipeline. All collaborators are injected;
// zero limits fall back to the service defaults (ask for 5 results,
// fetch the top 3, 800-char excerpts).
type Resolver struct {
	Search     search.Provider
	Fallback   FallbackProvider
	Fetcher    Fetcher
	Extractor  extract.Extractor
	Summarizer summarize.Summarizer

	// MaxResults is how many candidates to request from the search backend.
	MaxResults int
	// MaxFetches caps how many candidates are fetched per query.
	MaxFetches int
	// MaxExcerptChars bounds each source's content.
	MaxExcerptChars int
}

func (r *Resolver) maxResults() int {
	if r.MaxResults <= 0 {
		return 5
	}
	return r.MaxResults
}

func (r *Resolver) maxFetches() int {
	if r.MaxFetches <= 0 {
		return 3
	}
	return r.MaxFetches
}

func (r *Resolver) maxExcerptChars() int {
	if r.MaxExcerptChars <= 0 {
		return 800
	}
	return r.MaxExcerptChars
}

// Resolve produces exactly one QueryResult. No sub-step failure escapes:
// provider errors, fetch errors, and empty extractions all degrade to
// fewer or zero sources.
func (r *Resolver) Resolve(ctx context.Context, query string) QueryResult {
	result := QueryResult{Type: TypeSummary, Query: query, Sources: []SourceResult{}}

	var candidates []search.Result
	var fromFallback bool
	for st := stateSearch; st != stateDone; {
		switch st {
		case stateSearch:
			candidates = r.webSearch(ctx, query)
			if len(candidates) > 0 {
				st = stateFetch
			} else {
				st = stateFallback
			}
		case stateFallback:
			if c := r.fallbackLookup(ctx, query); c != nil {
				candidates = []search.Result{*c}
				fromFallback = true
				st = stateFetch
			} else {
				st = stateDone
			}
		case stateFetch:
			result.Sources = r.fetchAndSummarize(ctx, candidates, fromFallback)
			st = stateDone
		}
	}

	log.Debug().Str("query", query).Int("sources", len(result.Sources)).Msg("query resolved")
	return result
}

// webSearch collapses every provider failure to an empty candidate list so
// the fallback decision is a plain emptiness check.
func (r *Resolver) webSearch(ctx context.Context, query string) []search.Result {
	if r.Search == nil {
		return nil
	}
	results, err := r.Search.Search(ctx, query, r.maxResults())
	if err != nil {
		log.Warn().Err(err).Str("query", query).Str("provider", r.Search.Name()).Msg("web search failed; trying fallback")
		return nil
	}
	return results
}

// fallbackLookup collapses lookup errors to "no match".
func (r *Resolver) fallbackLookup(ctx context.Context, query string) *search.Result {
	if r.Fallback == nil {
		return nil
	}
	c, err := r.Fallback.Lookup(ctx, query)
	if err != nil {
		log.Warn().Err(err).Str("query", query).Str("provider", r.Fallback.Name()).Msg("fallback lookup failed")
		return nil
	}
	return c
}

// fetchAndSummarize processes candidates independently and concurrently.
// A failed candidate is omitted; assembly order follows candidate ranking,
// not completion order. snippetOK marks candidates whose snippet is an
// authoritative extract (the encyclopedic fallback) rather than a results-page
// teaser; only those may fall back to snippet content.
func (r *Resolver) fetchAndSummarize(ctx context.Context, candidates []search.Result, snippetOK bool) []SourceResult {
	if len(candidates) > r.maxFetches() {
		candidates = candidates[:r.maxFetches()]
	}
	slots := make([]*SourceResult, len(candidates))
	var wg sync.WaitGroup
	for i, c := range candidates {
		wg.Add(1)
		go func(i int, c search.Result) {
			defer wg.Done()
			slots[i] = r.summarizeCandidate(ctx, c, snippetOK)
		}(i, c)
	}
	wg.Wait()

	out := make([]SourceResult, 0, len(candidates))
	for _, s := range slots {
		if s != nil {
			out = append(out, *s)
		}
	}
	return out
}

// summarizeCandidate fetches, extracts, and condenses one candidate.
// A web-search candidate that cannot be fetched, or whose page yields no
// text, is dropped. A fallback candidate (snippetOK) may degrade to its
// snippet instead, since that snippet is the article's own intro extract.
func (r *Resolver) summarizeCandidate(ctx context.Context, c search.Result, snippetOK bool) *SourceResult {
	var text string
	body, _, err := r.fetch(ctx, c.URL)
	if err != nil {
		log.Warn().Err(err).Str("url", c.URL).Msg("candidate fetch failed")
	} else {
		extractor := r.Extractor
		if extractor == nil {
			extractor = extract.HeuristicExtractor{}
		}
		text = extractor.Extract(body).Text
	}
	if strings.TrimSpace(text) == "" && snippetOK {
		text = strings.TrimSpace(c.Snippet)
	}
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if r.Summarizer != nil {
		text = r.Summarizer.Summarize(ctx, text)
	}
	content := extract.Excerpt(text, r.maxExcerptChars())
	if content == "" {
		return nil
	}
	return &SourceResult{URL: c.URL, Content: content}
}

func (r *Resolver) fetch(ctx context.Context, url string) ([]byte, string, error) {
	if r.Fetcher == nil {
		return nil, "", errNoFetcher
	}
	return r.Fetcher.Get(ctx, url)
}
