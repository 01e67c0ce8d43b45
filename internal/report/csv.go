package report

import (
	"fmt"
	"strings"
)

// BuildCSV renders a report as CSV text. Grid payloads emit the grid
// verbatim with the first row as header; record-list payloads take the
// header order from the first record; a report with no tabular payload
// falls back to a two-column Field,Value metadata table. Building is pure:
// the same report always yields byte-identical output.
func BuildCSV(r *Report) string {
	if r.APIData != nil && !r.APIData.Data.IsEmpty() {
		if len(r.APIData.Data.Grid) > 0 {
			return gridCSV(r.APIData.Data.Grid)
		}
		return recordsCSV(r.APIData.Data.Records)
	}
	return metadataCSV(r)
}

func gridCSV(grid [][]string) string {
	var b strings.Builder
	for _, row := range grid {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = escapeCSV(cell)
		}
		b.WriteString(strings.Join(cells, ","))
		b.WriteString("\n")
	}
	return b.String()
}

func recordsCSV(records []Record) string {
	if len(records) == 0 {
		return ""
	}

	headers := make([]string, 0, len(records[0].Fields))
	for _, f := range records[0].Fields {
		headers = append(headers, f.Key)
	}

	var b strings.Builder
	b.WriteString(strings.Join(headers, ","))
	b.WriteString("\n")

	for _, record := range records {
		cells := make([]string, 0, len(headers))
		for _, key := range headers {
			value := record.Get(key)
			if s, ok := value.(string); ok {
				cells = append(cells, escapeCSV(s))
			} else if value == nil {
				cells = append(cells, "")
			} else {
				cells = append(cells, fmt.Sprint(value))
			}
		}
		b.WriteString(strings.Join(cells, ","))
		b.WriteString("\n")
	}
	return b.String()
}

func metadataCSV(r *Report) string {
	var b strings.Builder
	b.WriteString("Field,Value\n")
	fmt.Fprintf(&b, "Title,\"%s\"\n", r.Title)
	fmt.Fprintf(&b, "Type,\"%s\"\n", r.Type)
	fmt.Fprintf(&b, "Created At,\"%s\"\n", r.CreatedAt.Format("1/2/2006"))
	fmt.Fprintf(&b, "Description,\"%s\"\n", r.Description)
	return b.String()
}

// escapeCSV applies standard CSV escaping: a value containing a comma or a
// double quote is wrapped in double quotes with internal quotes doubled.
func escapeCSV(value string) string {
	if strings.Contains(value, ",") || strings.Contains(value, "\"") {
		return "\"" + strings.ReplaceAll(value, "\"", "\"\"") + "\""
	}
	return value
}

// CSVFilename derives a download filename from a report title: every
// non-alphanumeric character becomes an underscore, lowercased, with a
// .csv suffix.
func CSVFilename(title string) string {
	var b strings.Builder
	for _, c := range title {
		switch {
		case c >= 'a' && c <= 'z' || c >= '0' && c <= '9':
			b.WriteRune(c)
		case c >= 'A' && c <= 'Z':
			b.WriteRune(c - 'A' + 'a')
		default:
			b.WriteRune('_')
		}
	}
	return b.String() + ".csv"
}
