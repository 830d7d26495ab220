package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// FileProvider serves canned results from a local JSON fixture, standing in
// for the live backend in tests and air-gapped runs. The fixture is an array
// of {"title", "url", "snippet"} objects; a query matches an entry when it
// appears, case-insensitively, in the title or snippet.
type FileProvider struct {
	Path string
}

type fileEntry struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

func (f *FileProvider) Name() string { return "file" }

func (f *FileProvider) Search(_ context.Context, query string, limit int) ([]Result, error) {
	entries, err := f.load()
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(strings.TrimSpace(query))
	out := make([]Result, 0, len(entries))
	for _, e := range entries {
		if e.URL == "" || e.Title == "" || !e.matches(needle) {
			continue
		}
		out = append(out, Result{
			Title:   e.Title,
			URL:     e.URL,
			Snippet: e.Snippet,
			Source:  f.Name(),
		})
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (f *FileProvider) load() ([]fileEntry, error) {
	if strings.TrimSpace(f.Path) == "" {
		return nil, errors.New("file provider path is empty")
	}
	b, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, err
	}
	var entries []fileEntry
	if err := json.Unmarshal(b, &entries); err != nil {
		return nil, fmt.Errorf("parse results fixture: %w", err)
	}
	return entries, nil
}

func (e fileEntry) matches(needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(e.Title), needle) ||
		strings.Contains(strings.ToLower(e.Snippet), needle)
}
