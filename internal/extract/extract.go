package extract

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
)

// Ellipsis marks a truncated excerpt.
const Ellipsis = "…"

// Document is a simplified representation of extracted page content.
type Document struct {
	Title string
	Text  string
}

// Extractor converts raw HTML bytes into a simplified Document.
// Implementations should be deterministic and avoid side effects.
type Extractor interface {
	Extract(input []byte) Document
}

// HeuristicExtractor prefers <main>/<article> content and applies light
// boilerplate reduction and whitespace normalization.
type HeuristicExtractor struct{}

func (HeuristicExtractor) Extract(input []byte) Document {
	return FromHTML(input)
}

// FromHTML extracts readable text from HTML, preferring <main> or <article>
// and falling back to <body>. Scripts, styles, and navigational containers
// are skipped. An empty Document is a valid result for markup with no
// meaningful text nodes.
func FromHTML(input []byte) Document {
	node, err := html.Parse(bytes.NewReader(input))
	if err != nil || node == nil {
		return Document{}
	}

	title := strings.TrimSpace(findTitle(node))
	content := findFirst(node, "main")
	if content == nil {
		content = findFirst(node, "article")
	}
	if content == nil {
		content = findFirst(node, "body")
	}
	var b strings.Builder
	if content != nil {
		collectText(&b, content)
	}
	return Document{Title: title, Text: normalizeWhitespace(b.String())}
}

// Excerpt bounds text to at most maxChars runes, truncating at a word
// boundary and appending an ellipsis marker. The returned string, marker
// included, never exceeds maxChars.
func Excerpt(text string, maxChars int) string {
	text = strings.TrimSpace(text)
	if maxChars <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= maxChars {
		return text
	}
	// Reserve room for the marker, then back up to the preceding word break.
	cut := maxChars - len([]rune(Ellipsis))
	if cut <= 0 {
		return Ellipsis
	}
	head := runes[:cut]
	boundary := -1
	for i := len(head) - 1; i >= 0; i-- {
		if head[i] == ' ' || head[i] == '\n' {
			boundary = i
			break
		}
	}
	if boundary > 0 {
		head = head[:boundary]
	}
	return strings.TrimRight(string(head), " \n") + Ellipsis
}

func findTitle(n *html.Node) string {
	head := findFirst(n, "head")
	if head == nil {
		return ""
	}
	t := findFirst(head, "title")
	if t == nil || t.FirstChild == nil {
		return ""
	}
	return t.FirstChild.Data
}

func findFirst(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && strings.EqualFold(n.Data, tag) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// skippedContainers are elements whose subtrees carry no article content.
var skippedContainers = map[string]struct{}{
	"script": {}, "style": {}, "noscript": {}, "nav": {},
	"footer": {}, "aside": {}, "iframe": {}, "form": {},
}

func collectText(b *strings.Builder, n *html.Node) {
	if n.Type == html.ElementNode {
		name := strings.ToLower(n.Data)
		if _, skip := skippedContainers[name]; skip {
			return
		}
		switch name {
		case "br", "hr", "p", "h1", "h2", "h3", "h4", "h5", "h6", "li", "ul", "ol", "tr", "div":
			b.WriteString("\n")
		}
	}
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(b, c)
	}
	if n.Type == html.ElementNode {
		switch strings.ToLower(n.Data) {
		case "p", "h1", "h2", "h3", "h4", "h5", "h6", "li":
			b.WriteString("\n")
		}
	}
}

// normalizeWhitespace collapses runs of spaces and folds the multi-line
// extraction into single-space-separated prose, the shape summarizers and
// excerpt truncation expect.
func normalizeWhitespace(s string) string {
	var b strings.Builder
	lastSpace := true
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			if !lastSpace {
				b.WriteByte(' ')
				lastSpace = true
			}
			continue
		}
		b.WriteRune(r)
		lastSpace = false
	}
	return strings.TrimSpace(b.String())
}
