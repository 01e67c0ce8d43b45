package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/paylens/payreport/internal/api"
)

// TransformMessages converts raw API messages into transcript entries. A
// message is a user turn only when its role is exactly "user"; an absent
// role means assistant, which several call sites rely on.
func TransformMessages(msgs []api.ConversationMessage) []ChatMessage {
	out := make([]ChatMessage, 0, len(msgs))
	for i, msg := range msgs {
		out = append(out, transformMessage(msg, i))
	}
	return out
}

func transformMessage(msg api.ConversationMessage, index int) ChatMessage {
	sender := SenderAssistant
	if msg.Role == "user" {
		sender = SenderUser
	}

	id := msg.MessageID
	if id == "" {
		id = fmt.Sprintf("msg-%d", index)
	}

	content := msg.Summary
	if content == "" {
		content = msg.Prompt
	}

	return ChatMessage{
		ID:                id,
		MessageID:         msg.MessageID,
		Content:           content,
		Sender:            sender,
		Role:              msg.Role,
		Prompt:            msg.Prompt,
		Timestamp:         time.Now(),
		TableData:         ExtractTableData(&msg),
		Summary:           msg.Summary,
		ComprehensiveInfo: msg.ComprehensiveInformation,
		KeyInsights:       msg.KeyInsights,
		SuggestedPrompts:  msg.SuggestedPrompts,
		AttachmentID:      attachmentID(msg),
	}
}

// attachmentID resolves the message's attachment reference: the direct field
// wins, else the first element of the attachments list.
func attachmentID(msg api.ConversationMessage) string {
	if msg.AttachmentID != "" {
		return msg.AttachmentID
	}
	if len(msg.Attachments) > 0 {
		return msg.Attachments[0].AttachmentID
	}
	return ""
}

// ExtractTableData returns the message's tabular payload. The native 2-D
// grid always wins; content lines are only consulted when no grid exists.
func ExtractTableData(msg *api.ConversationMessage) [][]string {
	if msg == nil {
		return nil
	}
	if msg.Response != nil {
		return msg.Response
	}
	if len(msg.Content) > 0 {
		return parsePipeDelimited(msg.Content)
	}
	return nil
}

// parsePipeDelimited parses the legacy pipe-delimited table format: keep
// only lines containing a pipe, and require at least two of them. Each kept
// line is split on pipes with cells trimmed and empty cells dropped.
func parsePipeDelimited(content []string) [][]string {
	var tableLines []string
	for _, line := range content {
		if strings.Contains(line, "|") {
			tableLines = append(tableLines, line)
		}
	}
	if len(tableLines) < 2 {
		return nil
	}

	table := make([][]string, 0, len(tableLines))
	for _, line := range tableLines {
		var row []string
		for _, cell := range strings.Split(line, "|") {
			cell = strings.TrimSpace(cell)
			if cell != "" {
				row = append(row, cell)
			}
		}
		table = append(table, row)
	}
	return table
}

// NewReportFromMessage synthesizes a Report from a prompt and the message
// that answered it. APIData is attached only when a non-empty table exists.
func NewReportFromMessage(prompt string, msg *api.ConversationMessage, reportID string, table [][]string) *Report {
	now := time.Now()
	r := &Report{
		ID:          reportID,
		Title:       TruncateWithEllipsis(prompt, 50),
		Description: fmt.Sprintf("Report generated from prompt: \"%s\"", TruncateWithEllipsis(prompt, 100)),
		Content:     "",
		Status:      StatusDraft,
		Type:        TypeGeneral,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if msg != nil {
		r.Summary = msg.Summary
		r.ComprehensiveInfo = msg.ComprehensiveInformation
		r.KeyInsights = msg.KeyInsights
		r.SuggestedPrompts = msg.SuggestedPrompts
	}
	if len(table) > 0 {
		r.APIData = &APIData{
			Title: TruncateWithEllipsis(prompt, 50),
			Type:  "tabular",
			Data:  TableData{Grid: table},
		}
	}
	return r
}

// TruncateWithEllipsis shortens s to max characters, appending "..." only
// when something was cut. Counting is by rune so multibyte text is never
// split mid-character.
func TruncateWithEllipsis(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

// DashboardReports projects saved-report records into the list view shape,
// newest first. A report with no user-assigned name is unmapped.
func DashboardReports(responses []api.ReportResponse) []DashboardReport {
	out := make([]DashboardReport, 0, len(responses))
	for _, r := range responses {
		title := r.Description
		if title == "" {
			title = "Untitled Report"
		}
		created := time.Now()
		if r.CreatedAt != "" {
			if t, err := time.Parse(time.RFC3339, r.CreatedAt); err == nil {
				created = t
			}
		}
		out = append(out, DashboardReport{
			ConversationID: r.ReportID,
			DefaultTitle:   title,
			ReportName:     r.Name,
			CreatedAt:      created,
			Mapped:         r.Name != "",
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
