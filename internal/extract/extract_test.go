package extract

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestFromHTML_PrefersMainOverBody(t *testing.T) {
	html := `<!doctype html>
	<html>
	  <head><title>Test Page</title></head>
	  <body>
	    <nav>Nav should be ignored</nav>
	    <main>
	      <h1>Main Heading</h1>
	      <p>This is the main content paragraph.</p>
	    </main>
	    <footer>Footer text</footer>
	  </body>
	</html>`

	doc := FromHTML([]byte(html))
	if doc.Title != "Test Page" {
		t.Fatalf("expected title 'Test Page', got %q", doc.Title)
	}
	if !strings.Contains(doc.Text, "Main Heading") {
		t.Fatalf("expected to contain main heading")
	}
	if !strings.Contains(doc.Text, "This is the main content paragraph.") {
		t.Fatalf("expected to contain main paragraph")
	}
	if strings.Contains(doc.Text, "Nav should be ignored") {
		t.Fatalf("did not expect nav text in extracted content")
	}
}

func TestFromHTML_SkipsScriptsAndStyles(t *testing.T) {
	html := `<html><body>
	  <script>var hidden = "nope";</script>
	  <style>.x { color: red }</style>
	  <p>Visible text</p>
	</body></html>`

	doc := FromHTML([]byte(html))
	if strings.Contains(doc.Text, "hidden") || strings.Contains(doc.Text, "color") {
		t.Fatalf("expected script/style content to be skipped, got %q", doc.Text)
	}
	if doc.Text != "Visible text" {
		t.Fatalf("expected clean single-line text, got %q", doc.Text)
	}
}

func TestFromHTML_CollapsesWhitespace(t *testing.T) {
	html := "<html><body><p>one\n\n  two</p><p>three</p></body></html>"
	doc := FromHTML([]byte(html))
	if doc.Text != "one two three" {
		t.Fatalf("expected collapsed whitespace, got %q", doc.Text)
	}
}

func TestFromHTML_NoTextNodesIsEmptyNotError(t *testing.T) {
	doc := FromHTML([]byte(`<html><body><script>x()</script></body></html>`))
	if doc.Text != "" {
		t.Fatalf("expected empty text, got %q", doc.Text)
	}
}

func TestExcerpt_ShortTextUnchanged(t *testing.T) {
	if got := Excerpt("short text", 100); got != "short text" {
		t.Fatalf("expected unchanged text, got %q", got)
	}
}

func TestExcerpt_TruncatesAtWordBoundary(t *testing.T) {
	text := strings.Repeat("word ", 100) // 500 chars
	got := Excerpt(text, 50)
	if utf8.RuneCountInString(got) > 50 {
		t.Fatalf("excerpt exceeds max length: %d", utf8.RuneCountInString(got))
	}
	if !strings.HasSuffix(got, Ellipsis) {
		t.Fatalf("expected trailing ellipsis, got %q", got)
	}
	trimmed := strings.TrimSuffix(got, Ellipsis)
	if strings.HasSuffix(trimmed, "wor") || strings.HasSuffix(trimmed, "w") || strings.HasSuffix(trimmed, "wo") {
		t.Fatalf("truncated mid-word: %q", got)
	}
}

func TestExcerpt_NeverExceedsMax(t *testing.T) {
	text := "averyveryverylongsinglewordwithoutanyspacesatall and then more"
	for _, max := range []int{1, 5, 10, 25, 60} {
		got := Excerpt(text, max)
		if n := utf8.RuneCountInString(got); n > max {
			t.Fatalf("max %d exceeded: got %d runes (%q)", max, n, got)
		}
	}
}

func TestExcerpt_ZeroMaxDisablesTruncation(t *testing.T) {
	text := strings.Repeat("word ", 50)
	if got := Excerpt(text, 0); got != strings.TrimSpace(text) {
		t.Fatalf("expected untruncated text, got %q", got)
	}
}
