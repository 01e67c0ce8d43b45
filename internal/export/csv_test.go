package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/paylens/payreport/internal/report"
)

func TestCSVExporter_Grid(t *testing.T) {
	r := testReport()

	var buf bytes.Buffer
	if err := (&CSVExporter{}).Export(r, &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	want := "Dept,Hours\nOps,120\n"
	if buf.String() != want {
		t.Errorf("Export() = %q, want %q", buf.String(), want)
	}
}

func TestCSVExporter_MetadataFallback(t *testing.T) {
	r := testReport()
	r.APIData = nil

	var buf bytes.Buffer
	if err := (&CSVExporter{}).Export(r, &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "Field,Value\n") {
		t.Errorf("fallback output should start with the metadata header, got %q", out)
	}
	if !strings.Contains(out, `"Overtime by Department"`) {
		t.Error("fallback output missing quoted title")
	}
}

func TestCSVExporter_Records(t *testing.T) {
	r := testReport()
	r.APIData.Data = report.TableData{Records: []report.Record{
		{Fields: []report.Field{{Key: "Name", Value: "Ann"}, {Key: "Pay", Value: "100"}}},
	}}

	var buf bytes.Buffer
	if err := (&CSVExporter{}).Export(r, &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	want := "Name,Pay\nAnn,100\n"
	if buf.String() != want {
		t.Errorf("Export() = %q, want %q", buf.String(), want)
	}
}
