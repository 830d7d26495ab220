package app

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/omnisearch/omnisearch/internal/batch"
)

// newPipelineFixture stands up a page server, a search fixture pointing at
// it, and a MediaWiki fake, returning a ready-to-run config.
func newPipelineFixture(t *testing.T) (Config, *httptest.Server) {
	t.Helper()
	pages := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprintf(w, "<html><head><title>Page</title></head><body><p>Article about %s. It has facts. More detail follows.</p></body></html>", r.URL.Path)
	}))
	t.Cleanup(pages.Close)

	fixture := filepath.Join(t.TempDir(), "results.json")
	results := fmt.Sprintf(`[
		{"title": "Quantum computing overview", "url": "%s/quantum", "snippet": "intro"},
		{"title": "Quantum hardware", "url": "%s/hardware", "snippet": "qubits"}
	]`, pages.URL, pages.URL)
	if err := os.WriteFile(fixture, []byte(results), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	wikiSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("list") == "search" {
			_, _ = w.Write([]byte(`{"query":{"search":[]}}`))
			return
		}
		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(wikiSrv.Close)

	return Config{
		SearchFile:   fixture,
		WikiAPIURL:   wikiSrv.URL,
		FetchTimeout: 2 * time.Second,
	}, pages
}

func TestApp_RunEndToEnd(t *testing.T) {
	cfg, _ := newPipelineFixture(t)
	a := New(cfg)
	defer a.Close()

	got, err := a.Run(context.Background(), []string{"quantum"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 record, got %d", len(got))
	}
	rec := got[0]
	if rec.Type != "summary" || rec.Query != "quantum" {
		t.Fatalf("malformed record: %+v", rec)
	}
	if len(rec.Sources) != 2 {
		t.Fatalf("expected 2 sources, got %d", len(rec.Sources))
	}
	for _, s := range rec.Sources {
		if s.URL == "" || s.Content == "" {
			t.Fatalf("incomplete source: %+v", s)
		}
	}
}

func TestApp_NonsenseQueryYieldsEmptySourcesJSON(t *testing.T) {
	cfg, _ := newPipelineFixture(t)
	a := New(cfg)
	defer a.Close()

	got, err := a.Run(context.Background(), []string{"asdkjqwporjqwpoadk12903"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := json.Marshal(got)
	if err != nil {
		t.Fatalf("marshal batch: %v", err)
	}
	want := `[{"type":"summary","query":"asdkjqwporjqwpoadk12903","sources":[]}]`
	if string(b) != want {
		t.Fatalf("unexpected wire shape:\n got %s\nwant %s", b, want)
	}
}

func TestApp_ValidationErrorBeforeNetwork(t *testing.T) {
	cfg, _ := newPipelineFixture(t)
	a := New(cfg)
	defer a.Close()

	if _, err := a.Run(context.Background(), nil); err != batch.ErrNoQueries {
		t.Fatalf("expected ErrNoQueries, got %v", err)
	}
}
