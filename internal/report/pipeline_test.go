package report

import (
	"strings"
	"testing"

	"github.com/paylens/payreport/internal/api"
	"github.com/paylens/payreport/testutil"
)

// End-to-end over canned API payloads: normalize, synthesize a report,
// render CSV.
func TestPipeline_GridConversation(t *testing.T) {
	resp := testutil.SampleConversation("conv-1")

	messages := TransformMessages(resp.Messages)
	if len(messages) != 2 {
		t.Fatalf("got %d messages, want 2", len(messages))
	}
	if messages[0].Sender != SenderUser || messages[1].Sender != SenderAssistant {
		t.Errorf("senders = %s, %s", messages[0].Sender, messages[1].Sender)
	}

	last := resp.Messages[len(resp.Messages)-1]
	table := ExtractTableData(&last)
	if len(table) != 3 {
		t.Fatalf("got %d table rows, want 3", len(table))
	}

	r := NewReportFromMessage(last.Prompt, &last, resp.ReportID, table)
	if r.Title != "overtime hours by department" {
		t.Errorf("Title = %q", r.Title)
	}
	if r.APIData == nil {
		t.Fatal("report should carry the tabular payload")
	}

	csv := BuildCSV(r)
	if !strings.HasPrefix(csv, "Dept,Hours\n") {
		t.Errorf("CSV = %q", csv)
	}
	if !strings.HasSuffix(csv, "Sales,88\n") {
		t.Errorf("CSV = %q", csv)
	}
}

func TestPipeline_PipeConversation(t *testing.T) {
	resp := testutil.SamplePipeConversation("conv-2")

	last := resp.Messages[len(resp.Messages)-1]
	table := ExtractTableData(&last)
	want := [][]string{
		{"Region", "Headcount"},
		{"East", "240"},
		{"West", "180"},
	}
	if len(table) != len(want) {
		t.Fatalf("got %d rows, want %d", len(table), len(want))
	}
	for i := range want {
		for j := range want[i] {
			if table[i][j] != want[i][j] {
				t.Errorf("table[%d][%d] = %q, want %q", i, j, table[i][j], want[i][j])
			}
		}
	}
}

// Same pipeline over a wire-format payload file, decoding through the
// real JSON tags.
func TestPipeline_WirePayload(t *testing.T) {
	var resp api.ConversationResponse
	testutil.JSONUnmarshal(t, testutil.LoadFixture(t, "conversation_response.json"), &resp)

	if resp.ReportID != "conv-42" {
		t.Errorf("ReportID = %q", resp.ReportID)
	}
	messages := TransformMessages(resp.Messages)
	if len(messages) != 2 {
		t.Fatalf("got %d messages, want 2", len(messages))
	}
	if messages[0].Sender != SenderUser {
		t.Errorf("first sender = %s, want user", messages[0].Sender)
	}
	if messages[1].AttachmentID != "att-7" {
		t.Errorf("attachment = %q, want att-7", messages[1].AttachmentID)
	}

	last := resp.Messages[len(resp.Messages)-1]
	table := ExtractTableData(&last)
	if len(table) != 3 || table[2][0] != "Engineering" {
		t.Errorf("table = %v", table)
	}

	r := NewReportFromMessage(last.Prompt, &last, resp.ReportID, table)
	if r.Title != "vacation balances by team" {
		t.Errorf("Title = %q", r.Title)
	}
	if len(r.KeyInsights) != 1 || len(r.SuggestedPrompts) != 1 {
		t.Errorf("narrative fields not carried: %+v", r)
	}
}

func TestPipeline_DashboardProjection(t *testing.T) {
	reports := DashboardReports(testutil.SampleReports())
	if len(reports) != 2 {
		t.Fatalf("got %d reports, want 2", len(reports))
	}
	// Newest first.
	if reports[0].ConversationID != "conv-2" {
		t.Errorf("first = %s, want conv-2", reports[0].ConversationID)
	}
	if !reports[1].Mapped || reports[1].ReportName != "Q3 Payroll Summary" {
		t.Errorf("saved report not mapped: %+v", reports[1])
	}
	if reports[0].Mapped {
		t.Error("unsaved report should not be mapped")
	}
}
