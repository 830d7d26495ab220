package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const resultPage = `<!doctype html>
<html><body>
<div id="links">
  <div class="result results_links web-result">
    <h2 class="result__title">
      <a class="result__a" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fexample.com%2Fquantum&amp;rut=abc">Quantum computing - Example</a>
    </h2>
    <a class="result__snippet" href="https://example.com/quantum">Quantum computing uses qubits.</a>
  </div>
  <div class="result results_links web-result">
    <h2 class="result__title">
      <a class="result__a" href="https://example.org/intro">Intro article</a>
    </h2>
    <div class="result__snippet">A second result.</div>
  </div>
  <div class="result results_links web-result">
    <h2 class="result__title">
      <a class="result__a" href="https://example.net/third">Third result</a>
    </h2>
  </div>
</div>
</body></html>`

func TestDuckDuckGo_ParsesResultsInOrder(t *testing.T) {
	var gotQuery, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(resultPage))
	}))
	defer srv.Close()

	p := &DuckDuckGo{BaseURL: srv.URL, HTTPClient: srv.Client(), UserAgent: "omnisearch-test"}
	results, err := p.Search(context.Background(), "quantum computing", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotQuery != "quantum computing" {
		t.Fatalf("query not forwarded, got %q", gotQuery)
	}
	if gotUA != "omnisearch-test" {
		t.Fatalf("user agent not set, got %q", gotUA)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[0].URL != "https://example.com/quantum" {
		t.Fatalf("redirect link not unwrapped: %q", results[0].URL)
	}
	if results[0].Title != "Quantum computing - Example" {
		t.Fatalf("unexpected title: %q", results[0].Title)
	}
	if results[0].Snippet != "Quantum computing uses qubits." {
		t.Fatalf("unexpected snippet: %q", results[0].Snippet)
	}
	if results[1].URL != "https://example.org/intro" || results[2].URL != "https://example.net/third" {
		t.Fatalf("ranking order not preserved: %q, %q", results[1].URL, results[2].URL)
	}
	for _, r := range results {
		if r.Source != "duckduckgo" {
			t.Fatalf("expected provider name on result, got %q", r.Source)
		}
	}
}

func TestDuckDuckGo_LimitCapsResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(resultPage))
	}))
	defer srv.Close()

	p := &DuckDuckGo{BaseURL: srv.URL, HTTPClient: srv.Client()}
	results, err := p.Search(context.Background(), "quantum", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected limit to cap results at 2, got %d", len(results))
	}
}

func TestDuckDuckGo_NonOKStatusIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	p := &DuckDuckGo{BaseURL: srv.URL, HTTPClient: srv.Client()}
	if _, err := p.Search(context.Background(), "blocked", 5); err == nil {
		t.Fatalf("expected error for 403 status")
	}
}

func TestDuckDuckGo_EmptyPageYieldsNoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(`<html><body><div id="links"></div></body></html>`))
	}))
	defer srv.Close()

	p := &DuckDuckGo{BaseURL: srv.URL, HTTPClient: srv.Client()}
	results, err := p.Search(context.Background(), "anything", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected no results, got %d", len(results))
	}
}
