// Package session owns the live conversation state for one payreport
// invocation: the active conversation and message ids, the current report,
// and the chat transcript. It also implements the cross-invocation handoff
// channel that carries a loaded transcript from the dashboard flow into the
// chat flow.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/paylens/payreport/internal/report"
)

// WelcomeMessage opens every chat transcript.
const WelcomeMessage = "Hello! I'm your AI HR report assistant. Tell me what kind of payroll or HR report you'd like to create - such as payroll summaries, benefits analysis, time tracking, or workforce demographics."

// ThinkingMessage is the transient placeholder shown while a report is
// being generated.
const ThinkingMessage = "I'm analyzing your requirements and generating a comprehensive report..."

// ApologyMessage replaces the placeholder when generation fails.
const ApologyMessage = "I apologize, but there was an error generating your report. Please try again."

// ErrNoConversation is returned when SendChatMessage is called before any
// conversation exists.
var ErrNoConversation = errors.New("no active conversation")

// Session is the single source of truth for the active conversation during
// one invocation. It is constructed explicitly and never shared between
// invocations; persistence across invocations happens only through the
// handoff channel.
type Session struct {
	service *report.Service

	conversationID string
	messageID      string
	attachmentID   string
	currentReport  *report.Report
	messages       []report.ChatMessage
}

// New creates a session seeded with the welcome message.
func New(service *report.Service) *Session {
	return &Session{
		service:  service,
		messages: []report.ChatMessage{welcomeChatMessage()},
	}
}

func welcomeChatMessage() report.ChatMessage {
	return report.ChatMessage{
		ID:        "1",
		Content:   WelcomeMessage,
		Sender:    report.SenderAssistant,
		Timestamp: time.Now(),
	}
}

// Service returns the report service the session talks through.
func (s *Session) Service() *report.Service { return s.service }

// ConversationID returns the active conversation id, empty when none.
func (s *Session) ConversationID() string { return s.conversationID }

// MessageID returns the latest message id, empty when none.
func (s *Session) MessageID() string { return s.messageID }

// AttachmentID returns the active attachment id, empty when none.
func (s *Session) AttachmentID() string { return s.attachmentID }

// CurrentReport returns the current report, nil when none.
func (s *Session) CurrentReport() *report.Report { return s.currentReport }

// Messages returns the chat transcript.
func (s *Session) Messages() []report.ChatMessage { return s.messages }

// SetCurrentReport installs a report directly, used when restoring state.
func (s *Session) SetCurrentReport(r *report.Report) { s.currentReport = r }

// SetMessageID installs a message id directly.
func (s *Session) SetMessageID(id string) { s.messageID = id }

// SetAttachmentID installs an attachment id directly.
func (s *Session) SetAttachmentID(id string) { s.attachmentID = id }

// SetSessionData installs the conversation bookkeeping ids directly.
func (s *Session) SetSessionData(messageID, conversationID string) {
	s.messageID = messageID
	s.conversationID = conversationID
}

// AppendMessage adds a transcript entry without any API interaction. The
// chat surface uses it for local turns such as the failure apology.
func (s *Session) AppendMessage(msg report.ChatMessage) {
	s.messages = append(s.messages, msg)
}

// StartNewChat begins a brand-new conversation, replacing any existing
// state. Errors propagate unchanged and leave the session untouched.
func (s *Session) StartNewChat(ctx context.Context, prompt string) (*report.StartResult, error) {
	result, err := s.service.StartNewReport(ctx, prompt)
	if err != nil {
		return nil, err
	}

	s.conversationID = result.ReportID
	s.messageID = result.MessageID
	s.attachmentID = ""
	s.currentReport = result.Report
	s.messages = append([]report.ChatMessage{welcomeChatMessage()}, result.Messages...)
	return result, nil
}

// SendChatMessage continues the active conversation, appending to (not
// replacing) the transcript. The user turn is recorded before the API call;
// on failure it stays and the error propagates to the caller.
func (s *Session) SendChatMessage(ctx context.Context, prompt string) (*report.ContinueResult, error) {
	if s.conversationID == "" {
		return nil, ErrNoConversation
	}

	s.messages = append(s.messages, report.ChatMessage{
		ID:        uuid.NewString(),
		Content:   prompt,
		Sender:    report.SenderUser,
		Role:      "user",
		Prompt:    prompt,
		Timestamp: time.Now(),
	})

	result, err := s.service.ContinueReport(ctx, s.conversationID, prompt)
	if err != nil {
		return nil, err
	}

	// The continue endpoint is newest first; the first assistant entry is
	// the reply to this prompt.
	for i := range result.Messages {
		if result.Messages[i].Sender == report.SenderAssistant {
			reply := result.Messages[i]
			if reply.Content == "" {
				reply.Content = "Here are your results:"
			}
			s.messages = append(s.messages, reply)
			if reply.MessageID != "" {
				s.messageID = reply.MessageID
			}
			break
		}
	}

	if result.Report != nil {
		s.currentReport = result.Report
	}
	return result, nil
}

// FetchAttachmentResult fetches message-specific tabular data and merges it
// into the current report's apiData, leaving every other report field
// untouched. With no current report there is nothing to merge into.
func (s *Session) FetchAttachmentResult(ctx context.Context, reportID, messageID, attachmentID string) error {
	data, err := s.service.FetchMessageData(ctx, reportID, messageID)
	if err != nil {
		return err
	}

	s.attachmentID = attachmentID
	if s.currentReport == nil || len(data) == 0 {
		return nil
	}

	apiData := APIDataFor(s.currentReport.Title, data)
	s.currentReport.APIData = &apiData
	return nil
}

// APIDataFor builds an apiData block for fetched tabular data.
func APIDataFor(title string, data [][]string) report.APIData {
	return report.APIData{
		Title: title,
		Type:  "tabular",
		Data:  report.TableData{Grid: data},
	}
}
