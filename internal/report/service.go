package report

import (
	"context"

	"github.com/paylens/payreport/internal/api"
)

// Service is the business layer over the report API client: it normalizes
// conversation payloads into transcript entries and synthesized reports.
// All methods propagate client errors unchanged.
type Service struct {
	client *api.Client
}

// NewService creates a Service over the given client.
func NewService(client *api.Client) *Service {
	return &Service{client: client}
}

// StartResult is the outcome of starting a new report conversation.
type StartResult struct {
	ReportID  string
	MessageID string
	Report    *Report
	Messages  []ChatMessage
}

// StartNewReport begins a conversation from a prompt. The conversation id
// comes from the response and the message id from the last returned message
// (this endpoint is oldest first), which also seeds the synthesized report.
func (s *Service) StartNewReport(ctx context.Context, prompt string) (*StartResult, error) {
	resp, err := s.client.StartConversation(ctx, api.ConversationRequest{Prompt: prompt})
	if err != nil {
		return nil, err
	}

	var lastMessage *api.ConversationMessage
	if len(resp.Messages) > 0 {
		lastMessage = &resp.Messages[len(resp.Messages)-1]
	}

	messageID := ""
	if lastMessage != nil {
		messageID = lastMessage.MessageID
	}

	table := ExtractTableData(lastMessage)
	return &StartResult{
		ReportID:  resp.ReportID,
		MessageID: messageID,
		Report:    NewReportFromMessage(prompt, lastMessage, resp.ReportID, table),
		Messages:  TransformMessages(resp.Messages),
	}, nil
}

// ContinueResult is the outcome of continuing a conversation. Report is nil
// when the newest turn carried no tabular data; callers keep their previous
// report in that case.
type ContinueResult struct {
	Messages []ChatMessage
	Report   *Report
}

// ContinueReport sends a follow-up prompt. The continue endpoint returns
// newest first, so index 0 is the latest assistant turn.
func (s *Service) ContinueReport(ctx context.Context, conversationID, prompt string) (*ContinueResult, error) {
	resp, err := s.client.ContinueConversation(ctx, conversationID, api.ConversationRequest{Prompt: prompt})
	if err != nil {
		return nil, err
	}

	result := &ContinueResult{Messages: TransformMessages(resp.Messages)}
	if len(resp.Messages) > 0 {
		latest := &resp.Messages[0]
		if table := ExtractTableData(latest); len(table) > 0 {
			result.Report = NewReportFromMessage(prompt, latest, conversationID, table)
		}
	}
	return result, nil
}

// LoadReportHistory fetches and normalizes the full message list for a
// conversation. No report is synthesized.
func (s *Service) LoadReportHistory(ctx context.Context, conversationID string) ([]ChatMessage, error) {
	resp, err := s.client.GetConversationMessages(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	return TransformMessages(resp.Messages), nil
}

// SaveReportMetadata names or renames a report. Fire-and-confirm: the
// response body is ignored.
func (s *Service) SaveReportMetadata(ctx context.Context, reportID, name, description string) error {
	_, err := s.client.SaveReport(ctx, api.SaveReportRequest{
		ReportID:    reportID,
		Name:        name,
		Description: description,
	})
	return err
}

// FetchMessageData fetches the tabular data stored for one message.
func (s *Service) FetchMessageData(ctx context.Context, reportID, messageID string) ([][]string, error) {
	resp, err := s.client.GetReportData(ctx, reportID, messageID)
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// ListDashboardReports fetches saved reports projected for the list view.
func (s *Service) ListDashboardReports(ctx context.Context) ([]DashboardReport, error) {
	reports, err := s.client.GetReports(ctx)
	if err != nil {
		return nil, err
	}
	return DashboardReports(reports), nil
}

// ListTemplates fetches the predefined report templates.
func (s *Service) ListTemplates(ctx context.Context) ([]api.ReportTemplate, error) {
	resp, err := s.client.GetReportTemplates(ctx)
	if err != nil {
		return nil, err
	}
	return resp.ReportTemplates, nil
}
