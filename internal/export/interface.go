// Package export renders normalized reports as downloadable documents.
package export

import (
	"fmt"
	"io"

	"github.com/paylens/payreport/internal/report"
)

// Exporter defines the interface for all export formats
type Exporter interface {
	Export(r *report.Report, w io.Writer) error
	Extension() string
}

// NewExporter creates a new exporter based on format
func NewExporter(format string) (Exporter, error) {
	switch format {
	case "csv":
		return &CSVExporter{}, nil
	case "json":
		return &JSONExporter{}, nil
	case "md", "markdown":
		return &MarkdownExporter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (supported: csv, json, md)", format)
	}
}

// ExportError represents errors during export
type ExportError struct {
	Format string
	Path   string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export error [%s] %s: %v", e.Format, e.Path, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

// Filename derives the output filename for a report in the given format:
// the CSV sanitization rule with the exporter's extension.
func Filename(r *report.Report, e Exporter) string {
	base := report.CSVFilename(r.Title)
	return base[:len(base)-len(".csv")] + "." + e.Extension()
}
