package export

import (
	"io"

	"github.com/paylens/payreport/internal/report"
)

// CSVExporter exports reports in CSV format
type CSVExporter struct{}

// Export writes the report's CSV rendering: tabular payload when one
// exists, else the Field,Value metadata table.
func (e *CSVExporter) Export(r *report.Report, w io.Writer) error {
	_, err := io.WriteString(w, report.BuildCSV(r))
	return err
}

// Extension returns the file extension for this format
func (e *CSVExporter) Extension() string {
	return "csv"
}
