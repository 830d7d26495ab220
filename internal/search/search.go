package search

import (
	"context"
)

// Result is a single discovered candidate page from any provider.
type Result struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet,omitempty"`
	Source  string `json:"-"` // provider name for observability
}

// Provider is a minimal interface for discovery backends. Implementations
// preserve the backend's ranking order and return at most limit results.
// Callers treat any error the same as an empty result list, so providers
// should not retry internally.
type Provider interface {
	Search(ctx context.Context, query string, limit int) ([]Result, error)
	Name() string
}
