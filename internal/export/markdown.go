package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/paylens/payreport/internal/report"
)

// MarkdownExporter exports reports in Markdown format
type MarkdownExporter struct{}

// Export exports a report to Markdown format
func (e *MarkdownExporter) Export(r *report.Report, w io.Writer) error {
	// Header
	_, _ = fmt.Fprintf(w, "# %s\n\n", r.Title)

	_, _ = fmt.Fprintf(w, "**Status:** %s  \n", r.Status)
	_, _ = fmt.Fprintf(w, "**Type:** %s  \n", r.Type)
	if !r.CreatedAt.IsZero() {
		_, _ = fmt.Fprintf(w, "**Created:** %s\n", r.CreatedAt.Format("2006-01-02"))
	}
	_, _ = fmt.Fprintf(w, "\n%s\n\n", r.Description)

	if r.Summary != "" {
		_, _ = fmt.Fprintf(w, "## Summary\n\n%s\n\n", r.Summary)
	}
	if r.ComprehensiveInfo != "" {
		_, _ = fmt.Fprintf(w, "## Details\n\n%s\n\n", r.ComprehensiveInfo)
	}

	if len(r.KeyInsights) > 0 {
		_, _ = fmt.Fprintf(w, "## Key Insights\n\n")
		for _, insight := range r.KeyInsights {
			_, _ = fmt.Fprintf(w, "- %s\n", insight)
		}
		_, _ = fmt.Fprintf(w, "\n")
	}

	if r.APIData != nil && len(r.APIData.Data.Grid) > 0 {
		writeMarkdownTable(w, r.APIData.Data.Grid)
	}

	if len(r.SuggestedPrompts) > 0 {
		_, _ = fmt.Fprintf(w, "## Suggested Follow-ups\n\n")
		for _, prompt := range r.SuggestedPrompts {
			_, _ = fmt.Fprintf(w, "- %s\n", prompt)
		}
	}

	return nil
}

// writeMarkdownTable renders a grid as a Markdown table; the first row is
// the header row.
func writeMarkdownTable(w io.Writer, grid [][]string) {
	_, _ = fmt.Fprintf(w, "## Data\n\n")

	header := grid[0]
	_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(header, " | "))

	separators := make([]string, len(header))
	for i := range separators {
		separators[i] = "---"
	}
	_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(separators, " | "))

	for _, row := range grid[1:] {
		_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(row, " | "))
	}
	_, _ = fmt.Fprintf(w, "\n")
}

// Extension returns the file extension for this format
func (e *MarkdownExporter) Extension() string {
	return "md"
}
