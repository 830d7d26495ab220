package search

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// defaultDuckDuckGoURL is the no-JS HTML results endpoint.
const defaultDuckDuckGoURL = "https://html.duckduckgo.com/html/"

// maxResultPageBytes bounds how much of the results page is read.
const maxResultPageBytes = 2 << 20

// DuckDuckGo implements Provider against the DuckDuckGo HTML endpoint.
// The HTML endpoint needs no API key; results are parsed out of the
// rendered page, so an empty result set and an anti-automation block
// page look the same to callers (both yield zero results).
type DuckDuckGo struct {
	BaseURL    string // optional override, defaults to the public endpoint
	HTTPClient *http.Client
	UserAgent  string
}

func (d *DuckDuckGo) Name() string { return "duckduckgo" }

func (d *DuckDuckGo) Search(ctx context.Context, query string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 5
	}
	base := d.BaseURL
	if base == "" {
		base = defaultDuckDuckGoURL
	}
	u, err := url.Parse(base)
	if err != nil {
		return nil, err
	}
	q := u.Query()
	q.Set("q", query)
	q.Set("kl", "us-en")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	if d.UserAgent != "" {
		req.Header.Set("User-Agent", d.UserAgent)
	}
	hc := d.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}
	resp, err := hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("duckduckgo status: %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResultPageBytes))
	if err != nil {
		return nil, err
	}

	results := parseResultPage(body)
	out := make([]Result, 0, limit)
	for _, r := range results {
		if r.URL == "" || r.Title == "" {
			continue
		}
		r.Source = d.Name()
		out = append(out, r)
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

// parseResultPage walks the results markup and collects one Result per
// anchor with the result__a class, pairing it with the nearest
// result__snippet text that follows within the same result block.
func parseResultPage(page []byte) []Result {
	root, err := html.Parse(bytes.NewReader(page))
	if err != nil || root == nil {
		return nil
	}
	var out []Result
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && hasClass(n, "result") {
			r := parseResultNode(n)
			if r.URL != "" {
				out = append(out, r)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return out
}

func parseResultNode(block *html.Node) Result {
	var r Result
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && strings.EqualFold(n.Data, "a") && hasClass(n, "result__a") {
			if r.URL == "" {
				r.URL = resolveRedirect(attr(n, "href"))
				r.Title = strings.TrimSpace(nodeText(n))
			}
		}
		if n.Type == html.ElementNode && hasClass(n, "result__snippet") {
			if r.Snippet == "" {
				r.Snippet = strings.TrimSpace(nodeText(n))
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(block)
	return r
}

// resolveRedirect unwraps DuckDuckGo's /l/?uddg=<url> indirection so the
// fetcher sees the destination page, not the redirect hop.
func resolveRedirect(href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if strings.HasSuffix(u.Path, "/l/") {
		if dest := u.Query().Get("uddg"); dest != "" {
			return dest
		}
	}
	if u.Scheme == "" {
		// Protocol-relative redirect links
		u.Scheme = "https"
		return u.String()
	}
	return href
}

func hasClass(n *html.Node, class string) bool {
	for _, a := range n.Attr {
		if !strings.EqualFold(a.Key, "class") {
			continue
		}
		for _, c := range strings.Fields(a.Val) {
			if c == class {
				return true
			}
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val
		}
	}
	return ""
}

func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(cur *html.Node) {
		if cur.Type == html.TextNode {
			b.WriteString(cur.Data)
		}
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
