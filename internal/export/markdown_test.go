package export

import (
	"bytes"
	"strings"
	"testing"
)

func TestMarkdownExporter_Export(t *testing.T) {
	r := testReport()

	var buf bytes.Buffer
	exporter := &MarkdownExporter{}
	if err := exporter.Export(r, &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	out := buf.String()

	wantContains := []string{
		"# Overtime by Department",
		"**Status:** draft",
		"**Type:** General",
		"**Created:** 2026-08-01",
		"## Summary",
		"Ops leads overtime hours.",
		"## Key Insights",
		"- Ops is 40% above average",
		"## Data",
		"| Dept | Hours |",
		"| --- | --- |",
		"| Ops | 120 |",
	}
	for _, want := range wantContains {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\ngot:\n%s", want, out)
		}
	}
}

func TestMarkdownExporter_OmitsEmptySections(t *testing.T) {
	r := testReport()
	r.Summary = ""
	r.KeyInsights = nil
	r.APIData = nil

	var buf bytes.Buffer
	if err := (&MarkdownExporter{}).Export(r, &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	out := buf.String()

	for _, section := range []string{"## Summary", "## Key Insights", "## Data"} {
		if strings.Contains(out, section) {
			t.Errorf("output should not contain %q when the section is empty", section)
		}
	}
}

func TestMarkdownExporter_SuggestedPrompts(t *testing.T) {
	r := testReport()
	r.SuggestedPrompts = []string{"Break this down by month"}

	var buf bytes.Buffer
	if err := (&MarkdownExporter{}).Export(r, &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if !strings.Contains(buf.String(), "## Suggested Follow-ups") {
		t.Error("output missing suggested follow-ups section")
	}
	if !strings.Contains(buf.String(), "- Break this down by month") {
		t.Error("output missing suggested prompt entry")
	}
}
