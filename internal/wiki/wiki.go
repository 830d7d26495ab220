// Package wiki looks up a single authoritative page for a query term via
// the MediaWiki API. It is the narrow fallback behind the broad web search:
// one best-match article or nothing.
package wiki

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/omnisearch/omnisearch/internal/search"
)

const (
	defaultAPIURL     = "https://en.wikipedia.org/w/api.php"
	defaultArticleURL = "https://en.wikipedia.org/wiki/"
)

// Provider resolves a query to at most one article via the MediaWiki
// search and extracts endpoints.
type Provider struct {
	APIURL     string // optional override, defaults to English Wikipedia
	ArticleURL string // base for canonical article links
	HTTPClient *http.Client
	UserAgent  string
}

func (p *Provider) Name() string { return "wikipedia" }

// Lookup returns the best-matching article as a candidate, or nil when no
// usable match exists. Missing articles and empty extracts are a nil result,
// not an error; callers are expected to treat errors as "no match" too.
func (p *Provider) Lookup(ctx context.Context, query string) (*search.Result, error) {
	title, err := p.searchTitle(ctx, query)
	if err != nil {
		return nil, err
	}
	if title == "" {
		return nil, nil
	}
	extract, missing, err := p.fetchExtract(ctx, title)
	if err != nil {
		return nil, err
	}
	if missing {
		return nil, nil
	}
	articleBase := p.ArticleURL
	if articleBase == "" {
		articleBase = defaultArticleURL
	}
	return &search.Result{
		Title:   title,
		URL:     articleBase + url.PathEscape(strings.ReplaceAll(title, " ", "_")),
		Snippet: extract,
		Source:  p.Name(),
	}, nil
}

// searchTitle asks list=search for the single best-matching page title.
func (p *Provider) searchTitle(ctx context.Context, query string) (string, error) {
	params := url.Values{
		"action":   {"query"},
		"format":   {"json"},
		"list":     {"search"},
		"srsearch": {query},
		"srlimit":  {"1"},
	}
	var body struct {
		Query struct {
			Search []struct {
				Title string `json:"title"`
			} `json:"search"`
		} `json:"query"`
	}
	if err := p.get(ctx, params, &body); err != nil {
		return "", err
	}
	if len(body.Query.Search) == 0 {
		return "", nil
	}
	return strings.TrimSpace(body.Query.Search[0].Title), nil
}

// fetchExtract pulls the plain-text introduction of the titled page.
// missing is true for deleted or never-existing pages and for pages whose
// extract is empty after trimming.
func (p *Provider) fetchExtract(ctx context.Context, title string) (extract string, missing bool, err error) {
	params := url.Values{
		"action":      {"query"},
		"format":      {"json"},
		"prop":        {"extracts"},
		"explaintext": {"1"},
		"exintro":     {"1"},
		"titles":      {title},
	}
	var body struct {
		Query struct {
			Pages map[string]struct {
				Missing *json.RawMessage `json:"missing"`
				Extract string           `json:"extract"`
			} `json:"pages"`
		} `json:"query"`
	}
	if err := p.get(ctx, params, &body); err != nil {
		return "", false, err
	}
	for _, page := range body.Query.Pages {
		if page.Missing != nil {
			return "", true, nil
		}
		text := strings.TrimSpace(page.Extract)
		if text == "" {
			return "", true, nil
		}
		return text, false, nil
	}
	return "", true, nil
}

func (p *Provider) get(ctx context.Context, params url.Values, out any) error {
	api := p.APIURL
	if api == "" {
		api = defaultAPIURL
	}
	u, err := url.Parse(api)
	if err != nil {
		return err
	}
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return err
	}
	if p.UserAgent != "" {
		req.Header.Set("User-Agent", p.UserAgent)
	}
	hc := p.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}
	resp, err := hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("wikipedia status: %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
