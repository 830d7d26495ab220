// Package report renders a result batch as human-readable artifacts:
// Markdown for terminals and docs, PDF for distribution.
package report

import (
	"fmt"
	"os"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/omnisearch/omnisearch/internal/batch"
)

// Markdown renders one section per query with its sources as a list.
// Queries with no sources state that explicitly rather than vanishing.
func Markdown(results batch.ResultBatch) string {
	var b strings.Builder
	b.WriteString("# Search summaries\n")
	for _, r := range results {
		fmt.Fprintf(&b, "\n## %s\n\n", r.Query)
		if len(r.Sources) == 0 {
			b.WriteString("No sources found.\n")
			continue
		}
		for _, s := range r.Sources {
			fmt.Fprintf(&b, "- <%s>\n\n  %s\n", s.URL, s.Content)
		}
	}
	return b.String()
}

// WriteMarkdown writes the Markdown rendering to path.
func WriteMarkdown(results batch.ResultBatch, path string) error {
	if err := os.WriteFile(path, []byte(Markdown(results)), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// WritePDF renders the batch as a simple PDF: one heading per query, a
// clickable link plus excerpt per source. Layout is intentionally minimal.
func WritePDF(results batch.ResultBatch, path string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, "Search summaries", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)

	for _, r := range results {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.MultiCell(0, 6, r.Query, "", "L", false)
		pdf.SetFont("Helvetica", "", 11)
		if len(r.Sources) == 0 {
			pdf.MultiCell(0, 5, "No sources found.", "", "L", false)
			continue
		}
		for _, s := range r.Sources {
			pdf.WriteLinkString(5, s.URL, s.URL)
			pdf.Ln(6)
			pdf.MultiCell(0, 5, s.Content, "", "L", false)
			pdf.Ln(2)
		}
	}

	return pdf.OutputFileAndClose(path)
}
