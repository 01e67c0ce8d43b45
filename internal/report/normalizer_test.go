package report

import (
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/paylens/payreport/internal/api"
)

func TestExtractTableData(t *testing.T) {
	tests := []struct {
		name string
		msg  *api.ConversationMessage
		want [][]string
	}{
		{
			name: "nil message",
			msg:  nil,
			want: nil,
		},
		{
			name: "native grid wins over content",
			msg: &api.ConversationMessage{
				Response: [][]string{{"Name", "Pay"}, {"Ann", "100"}},
				Content:  []string{"x|y", "z|w"},
			},
			want: [][]string{{"Name", "Pay"}, {"Ann", "100"}},
		},
		{
			name: "single pipe line is not a table",
			msg:  &api.ConversationMessage{Content: []string{"a|b"}},
			want: nil,
		},
		{
			name: "two pipe lines parse",
			msg:  &api.ConversationMessage{Content: []string{"a|b", "c|d"}},
			want: [][]string{{"a", "b"}, {"c", "d"}},
		},
		{
			name: "cells trimmed and empties dropped",
			msg:  &api.ConversationMessage{Content: []string{"| Name | Pay |", "| Ann | 100 |"}},
			want: [][]string{{"Name", "Pay"}, {"Ann", "100"}},
		},
		{
			name: "prose lines filtered out",
			msg: &api.ConversationMessage{Content: []string{
				"Here is your table:",
				"Dept|Hours",
				"Ops|120",
				"Let me know if you need more.",
			}},
			want: [][]string{{"Dept", "Hours"}, {"Ops", "120"}},
		},
		{
			name: "no table at all",
			msg:  &api.ConversationMessage{Summary: "just a summary"},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractTableData(tt.msg)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractTableData() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTransformMessages_SenderDefaults(t *testing.T) {
	msgs := []api.ConversationMessage{
		{MessageID: "m1", Prompt: "show payroll", Role: "user"},
		{MessageID: "m2", Summary: "Payroll summary", Role: "assistant"},
		// Absent role with a prompt still defaults to assistant: the check
		// is strictly role == "user".
		{MessageID: "m3", Prompt: "orphaned prompt"},
	}

	got := TransformMessages(msgs)
	if len(got) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(got))
	}
	if got[0].Sender != SenderUser {
		t.Errorf("m1 sender = %q, want user", got[0].Sender)
	}
	if got[1].Sender != SenderAssistant {
		t.Errorf("m2 sender = %q, want assistant", got[1].Sender)
	}
	if got[2].Sender != SenderAssistant {
		t.Errorf("m3 sender = %q, want assistant (role absent)", got[2].Sender)
	}
}

func TestTransformMessages_ContentFallback(t *testing.T) {
	msgs := []api.ConversationMessage{
		{MessageID: "m1", Summary: "the summary", Prompt: "the prompt"},
		{MessageID: "m2", Prompt: "only prompt"},
		{MessageID: "m3"},
	}

	got := TransformMessages(msgs)
	if got[0].Content != "the summary" {
		t.Errorf("content = %q, want summary to win", got[0].Content)
	}
	if got[1].Content != "only prompt" {
		t.Errorf("content = %q, want prompt fallback", got[1].Content)
	}
	if got[2].Content != "" {
		t.Errorf("content = %q, want empty", got[2].Content)
	}
}

func TestTransformMessages_IDFallback(t *testing.T) {
	got := TransformMessages([]api.ConversationMessage{{}, {MessageID: "real"}})
	if got[0].ID != "msg-0" {
		t.Errorf("ID = %q, want msg-0", got[0].ID)
	}
	if got[1].ID != "real" {
		t.Errorf("ID = %q, want real", got[1].ID)
	}
}

func TestTransformMessages_AttachmentResolution(t *testing.T) {
	msgs := []api.ConversationMessage{
		{MessageID: "m1", AttachmentID: "direct"},
		{MessageID: "m2", Attachments: []api.Attachment{{AttachmentID: "listed"}}},
		{MessageID: "m3", AttachmentID: "direct-wins", Attachments: []api.Attachment{{AttachmentID: "listed"}}},
	}

	got := TransformMessages(msgs)
	if got[0].AttachmentID != "direct" {
		t.Errorf("m1 attachment = %q", got[0].AttachmentID)
	}
	if got[1].AttachmentID != "listed" {
		t.Errorf("m2 attachment = %q", got[1].AttachmentID)
	}
	if got[2].AttachmentID != "direct-wins" {
		t.Errorf("m3 attachment = %q", got[2].AttachmentID)
	}
}

func TestTruncateWithEllipsis(t *testing.T) {
	tests := []struct {
		name  string
		input string
		max   int
		want  string
	}{
		{"short stays", "hello", 50, "hello"},
		{"exact stays", strings.Repeat("x", 50), 50, strings.Repeat("x", 50)},
		{"long truncated", strings.Repeat("x", 60), 50, strings.Repeat("x", 50) + "..."},
		{"multibyte boundary kept whole", strings.Repeat("x", 49) + "éé", 50, strings.Repeat("x", 49) + "é..."},
		{"counts runes not bytes", strings.Repeat("é", 50), 50, strings.Repeat("é", 50)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateWithEllipsis(tt.input, tt.max)
			if got != tt.want {
				t.Errorf("TruncateWithEllipsis() = %q, want %q", got, tt.want)
			}
			if !utf8.ValidString(got) {
				t.Errorf("TruncateWithEllipsis() produced invalid UTF-8: %q", got)
			}
		})
	}
}

func TestNewReportFromMessage(t *testing.T) {
	prompt := strings.Repeat("x", 60)
	msg := &api.ConversationMessage{
		Summary:          "sum",
		KeyInsights:      []string{"i1"},
		SuggestedPrompts: []string{"p1"},
	}

	r := NewReportFromMessage(prompt, msg, "conv-1", [][]string{{"A"}, {"1"}})

	if len(r.Title) != 53 {
		t.Errorf("title length = %d, want 53 (50 + ellipsis)", len(r.Title))
	}
	if r.Status != StatusDraft {
		t.Errorf("status = %q, want draft", r.Status)
	}
	if r.Type != TypeGeneral {
		t.Errorf("type = %q, want General", r.Type)
	}
	if r.APIData == nil || len(r.APIData.Data.Grid) != 2 {
		t.Fatalf("expected grid apiData, got %+v", r.APIData)
	}
	if r.Summary != "sum" || len(r.KeyInsights) != 1 {
		t.Errorf("message fields not carried: %+v", r)
	}
}

func TestNewReportFromMessage_Description(t *testing.T) {
	r := NewReportFromMessage(`show "overtime" by dept`, nil, "conv-1", nil)
	want := `Report generated from prompt: "show "overtime" by dept"`
	if r.Description != want {
		t.Errorf("Description = %q, want %q", r.Description, want)
	}
}

func TestNewReportFromMessage_NoTable(t *testing.T) {
	r := NewReportFromMessage("prompt", &api.ConversationMessage{Summary: "text only"}, "conv-1", nil)
	if r.APIData != nil {
		t.Errorf("expected no apiData, got %+v", r.APIData)
	}
	if r.Content != "" {
		t.Errorf("content = %q, want empty", r.Content)
	}
}

func TestDashboardReports(t *testing.T) {
	responses := []api.ReportResponse{
		{ReportID: "a", Description: "older", CreatedAt: "2026-01-01T00:00:00Z"},
		{ReportID: "b", Name: "Named", Description: "newer", CreatedAt: "2026-06-01T00:00:00Z"},
		{ReportID: "c"},
	}

	got := DashboardReports(responses)
	if len(got) != 3 {
		t.Fatalf("expected 3 reports, got %d", len(got))
	}
	// c has no created_at so it gets "now" and sorts first.
	if got[0].ConversationID != "c" {
		t.Errorf("first = %q, want c (no timestamp sorts newest)", got[0].ConversationID)
	}
	if got[1].ConversationID != "b" || got[2].ConversationID != "a" {
		t.Errorf("order = %q, %q; want b, a", got[1].ConversationID, got[2].ConversationID)
	}
	if got[0].DefaultTitle != "Untitled Report" {
		t.Errorf("default title = %q, want Untitled Report", got[0].DefaultTitle)
	}
	if got[0].Mapped {
		t.Error("c should be unmapped")
	}
	if !got[1].Mapped {
		t.Error("b should be mapped")
	}
}
