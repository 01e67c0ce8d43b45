package testutil

import (
	"github.com/paylens/payreport/internal/api"
)

// SampleConversation returns a two-turn conversation in oldest-first order,
// as the start and messages endpoints deliver it. The assistant reply
// carries both a native grid and narrative fields.
func SampleConversation(conversationID string) *api.ConversationResponse {
	return &api.ConversationResponse{
		ReportID: conversationID,
		Messages: []api.ConversationMessage{
			{
				MessageID: "m-user-1",
				Role:      "user",
				Prompt:    "overtime hours by department",
			},
			{
				MessageID: "m-assistant-1",
				Prompt:    "overtime hours by department",
				Summary:   "Overtime leaders for the period.",
				Response: [][]string{
					{"Dept", "Hours"},
					{"Ops", "120"},
					{"Sales", "88"},
				},
				KeyInsights:      []string{"Ops is 40% above the company average"},
				SuggestedPrompts: []string{"Break this down by month"},
			},
		},
	}
}

// SamplePipeConversation returns an assistant reply whose table arrives as
// pipe-delimited content lines instead of a native grid.
func SamplePipeConversation(conversationID string) *api.ConversationResponse {
	return &api.ConversationResponse{
		ReportID: conversationID,
		Messages: []api.ConversationMessage{
			{
				MessageID: "m-user-1",
				Role:      "user",
				Prompt:    "headcount by region",
			},
			{
				MessageID: "m-assistant-1",
				Prompt:    "headcount by region",
				Content: []string{
					"Region | Headcount",
					"East | 240",
					"West | 180",
				},
			},
		},
	}
}

// SampleReports returns saved-report records as GET /reports delivers them.
func SampleReports() []api.ReportResponse {
	return []api.ReportResponse{
		{ReportID: "conv-1", Name: "Q3 Payroll Summary", CreatedAt: "2026-07-01T10:00:00Z"},
		{ReportID: "conv-2", CreatedAt: "2026-08-15T09:30:00Z"},
	}
}
