package export

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/paylens/payreport/internal/report"
)

func TestJSONExporter_Export(t *testing.T) {
	r := testReport()

	var buf bytes.Buffer
	if err := (&JSONExporter{}).Export(r, &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	var decoded report.Report
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Title != r.Title {
		t.Errorf("Title = %q, want %q", decoded.Title, r.Title)
	}
	if decoded.Status != report.StatusDraft {
		t.Errorf("Status = %q, want %q", decoded.Status, report.StatusDraft)
	}
	if decoded.APIData == nil || len(decoded.APIData.Data.Grid) != 2 {
		t.Error("APIData grid did not survive the round trip")
	}
}

func TestJSONExporter_Indented(t *testing.T) {
	var buf bytes.Buffer
	if err := (&JSONExporter{}).Export(testReport(), &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte("\n  ")) {
		t.Error("output should be indented")
	}
}
