// Package summarize condenses extracted page text into a short digest.
// The default strategy keeps the leading sentences; an optional
// LLM-backed strategy can be swapped in behind the same interface.
package summarize

import (
	"context"
	"strings"
)

// Summarizer condenses text. Implementations must never fail: a degraded
// or empty summary is returned instead of an error so the pipeline's
// availability contract holds.
type Summarizer interface {
	Summarize(ctx context.Context, text string) string
}

// LeadSummarizer keeps the first MaxSentences sentences of the text and
// appends an ellipsis marker when sentences were dropped.
type LeadSummarizer struct {
	// MaxSentences caps the summary. Zero means default (5).
	MaxSentences int
}

func (s LeadSummarizer) Summarize(_ context.Context, text string) string {
	max := s.MaxSentences
	if max <= 0 {
		max = 5
	}
	sentences := splitSentences(text)
	if len(sentences) == 0 {
		return ""
	}
	n := max
	if len(sentences) < n {
		n = len(sentences)
	}
	summary := strings.Join(sentences[:n], " ")
	if len(sentences) > n {
		summary += "…"
	}
	return summary
}

// splitSentences breaks prose on terminal punctuation followed by
// whitespace. Single-letter "sentences" such as initials are glued to
// their successor to avoid splitting abbreviations like "J. Smith".
func splitSentences(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	var out []string
	runes := []rune(text)
	start := 0
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r != '.' && r != '?' && r != '!' {
			continue
		}
		if i+1 < len(runes) && runes[i+1] != ' ' && runes[i+1] != '\n' {
			continue
		}
		sentence := strings.TrimSpace(string(runes[start : i+1]))
		if sentence == "" {
			start = i + 1
			continue
		}
		if isAbbreviation(sentence) {
			// glue to the next sentence instead of emitting a fragment
			continue
		}
		out = append(out, sentence)
		start = i + 1
	}
	if rest := strings.TrimSpace(string(runes[start:])); rest != "" {
		out = append(out, rest)
	}
	return out
}

// isAbbreviation reports whether a candidate sentence ends in a
// single-letter token like "J." or a known shorthand.
func isAbbreviation(s string) bool {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return false
	}
	last := fields[len(fields)-1]
	if len(last) == 2 && last[1] == '.' {
		return true
	}
	switch strings.ToLower(last) {
	case "mr.", "mrs.", "dr.", "vs.", "etc.", "e.g.", "i.e.":
		return true
	}
	return false
}
