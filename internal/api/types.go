package api

// Wire types for the PowerPay Reports API (OpenAPI 3.1). Every field is
// optional on the wire; the report normalizer tolerates any of them being
// absent.

// SaveReportRequest is the body for POST /reports.
type SaveReportRequest struct {
	ReportID    string `json:"report_id,omitempty"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

// ReportResponse is a saved report record as returned by GET /reports.
type ReportResponse struct {
	ReportID    string `json:"report_id,omitempty"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
}

// ConversationRequest is the body for starting or continuing a conversation.
type ConversationRequest struct {
	Prompt string `json:"prompt,omitempty"`
}

// Attachment references tabular data stored separately from a message.
type Attachment struct {
	AttachmentID string `json:"attachment_id"`
}

// ConversationMessage is a single turn as received from the API. The shape
// varies by endpoint and message type: user turns carry Prompt, tabular
// assistant turns carry Response, and the enhanced format carries Content
// lines plus Summary/KeyInsights/SuggestedPrompts.
type ConversationMessage struct {
	MessageID                string       `json:"message_id,omitempty"`
	Prompt                   string       `json:"prompt,omitempty"`
	Response                 [][]string   `json:"response,omitempty"`
	Role                     string       `json:"role,omitempty"`
	Content                  []string     `json:"content,omitempty"`
	Summary                  string       `json:"summary,omitempty"`
	ComprehensiveInformation string       `json:"comprehensive_information,omitempty"`
	KeyInsights              []string     `json:"key_insights,omitempty"`
	SuggestedPrompts         []string     `json:"suggested_prompts,omitempty"`
	AttachmentID             string       `json:"attachment_id,omitempty"`
	Attachments              []Attachment `json:"attachments,omitempty"`
}

// ConversationResponse is the payload for conversation endpoints.
//
// Ordering contract: /conversations/start and /conversations/{id}/messages
// return messages oldest first; /conversations/{id}/continue returns them
// newest first.
type ConversationResponse struct {
	ReportID string                `json:"report_id,omitempty"`
	Messages []ConversationMessage `json:"messages,omitempty"`
}

// ReportDataResponse is the tabular payload for a single message.
type ReportDataResponse struct {
	Data [][]string `json:"data,omitempty"`
}

// ReportTemplate is a predefined report prompt.
type ReportTemplate struct {
	ReportTemplateID          string `json:"report_template_id"`
	ReportTemplateName        string `json:"report_template_name"`
	ReportTemplateDescription string `json:"report_template_description"`
}

// ReportTemplatesResponse is the payload for GET /reports/templates.
type ReportTemplatesResponse struct {
	ReportTemplates []ReportTemplate `json:"report_templates"`
}
