package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/paylens/payreport/internal/logging"
	"github.com/paylens/payreport/internal/report"
	"github.com/paylens/payreport/internal/store"
)

// Fixed handoff keys. The dashboard flow writes them, the chat flow is the
// single designated reader and deletes them after a successful read.
const (
	keyLoadedChatHistory    = "loadedChatHistory"
	keyLoadedConversationID = "loadedConversationId"
	keyFromTemplate         = "fromTemplate"
	keyPendingPrompt        = "pendingPrompt"
)

// HandoffError represents a failure reading or writing the handoff store.
type HandoffError struct {
	Key string
	Err error
}

func (e *HandoffError) Error() string {
	return fmt.Sprintf("handoff error [%s]: %v", e.Key, e.Err)
}

func (e *HandoffError) Unwrap() error {
	return e.Err
}

// Payload is a transferred transcript: an ordered message list (newest at
// index 0) plus its conversation id.
type Payload struct {
	ConversationID string
	Messages       []report.ChatMessage
}

// Handoff is the one-shot mailbox between independently run commands. It is
// not a durable store and not safe for concurrent readers.
type Handoff struct {
	store *store.Store
}

// NewHandoff creates a handoff channel over the KV store.
func NewHandoff(st *store.Store) *Handoff {
	return &Handoff{store: st}
}

// Write serializes the transcript and conversation id under the fixed keys.
func (h *Handoff) Write(conversationID string, messages []report.ChatMessage) error {
	data, err := json.Marshal(messages)
	if err != nil {
		return &HandoffError{Key: keyLoadedChatHistory, Err: err}
	}
	if err := h.store.Put(keyLoadedChatHistory, string(data)); err != nil {
		return &HandoffError{Key: keyLoadedChatHistory, Err: err}
	}
	if err := h.store.Put(keyLoadedConversationID, conversationID); err != nil {
		return &HandoffError{Key: keyLoadedConversationID, Err: err}
	}
	return nil
}

// Consume reads and deletes the pending handoff. It returns ok=false when
// no handoff is pending; malformed stored JSON is logged and treated the
// same way, never as a failure.
func (h *Handoff) Consume() (*Payload, bool, error) {
	history, okHistory, err := h.store.Get(keyLoadedChatHistory)
	if err != nil {
		return nil, false, &HandoffError{Key: keyLoadedChatHistory, Err: err}
	}
	convID, okConv, err := h.store.Get(keyLoadedConversationID)
	if err != nil {
		return nil, false, &HandoffError{Key: keyLoadedConversationID, Err: err}
	}
	if !okHistory || !okConv {
		return nil, false, nil
	}

	var messages []report.ChatMessage
	if err := json.Unmarshal([]byte(history), &messages); err != nil {
		logging.Error("Error loading chat history: %v", err)
		return nil, false, nil
	}

	// Delete immediately after reading so a later unrelated run does not
	// replay stale data.
	if err := h.store.Delete(keyLoadedChatHistory); err != nil {
		return nil, false, &HandoffError{Key: keyLoadedChatHistory, Err: err}
	}
	if err := h.store.Delete(keyLoadedConversationID); err != nil {
		return nil, false, &HandoffError{Key: keyLoadedConversationID, Err: err}
	}

	return &Payload{ConversationID: convID, Messages: messages}, true, nil
}

// WritePendingPrompt stores a prompt for the alternate dashboard flow that
// defers starting the conversation until the chat surface comes up.
func (h *Handoff) WritePendingPrompt(prompt string, fromTemplate bool) error {
	if err := h.store.Put(keyPendingPrompt, prompt); err != nil {
		return &HandoffError{Key: keyPendingPrompt, Err: err}
	}
	flag := "false"
	if fromTemplate {
		flag = "true"
	}
	if err := h.store.Put(keyFromTemplate, flag); err != nil {
		return &HandoffError{Key: keyFromTemplate, Err: err}
	}
	return nil
}

// ConsumePendingPrompt reads and deletes the pending prompt, if any.
func (h *Handoff) ConsumePendingPrompt() (prompt string, fromTemplate bool, ok bool, err error) {
	prompt, okPrompt, err := h.store.Get(keyPendingPrompt)
	if err != nil {
		return "", false, false, &HandoffError{Key: keyPendingPrompt, Err: err}
	}
	if !okPrompt || prompt == "" {
		return "", false, false, nil
	}
	flag, _, err := h.store.Get(keyFromTemplate)
	if err != nil {
		return "", false, false, &HandoffError{Key: keyFromTemplate, Err: err}
	}
	if err := h.store.Delete(keyPendingPrompt); err != nil {
		return "", false, false, &HandoffError{Key: keyPendingPrompt, Err: err}
	}
	if err := h.store.Delete(keyFromTemplate); err != nil {
		return "", false, false, &HandoffError{Key: keyFromTemplate, Err: err}
	}
	return prompt, flag == "true", true, nil
}

// RestoreFromHandoff installs a transferred transcript into the session:
// adopt the newest message's id (index 0 of the stored list), synthesize a
// report from the last table-bearing message, fetch any referenced
// attachment best effort, and install the transformed transcript behind the
// welcome message. The conversation id comes from the payload.
func (s *Session) RestoreFromHandoff(ctx context.Context, p *Payload) {
	if p == nil || len(p.Messages) == 0 {
		return
	}

	latest := p.Messages[0]
	latestID := latest.MessageID
	if latestID == "" {
		latestID = latest.ID
	}
	s.SetSessionData(latestID, p.ConversationID)

	if withData := lastMessageWithData(p.Messages); withData != nil {
		s.currentReport = queryResultsReport(p.ConversationID, withData)
	}

	// Best effort: a referenced attachment may carry fresher tabular data.
	// Failures are logged, never surfaced.
	if msg := firstMessageWithAttachment(p.Messages); msg != nil && msg.MessageID != "" {
		if err := s.FetchAttachmentResult(ctx, p.ConversationID, msg.MessageID, msg.AttachmentID); err != nil {
			logging.Warn("Failed to fetch attachment data: %v", err)
		}
	}

	transcript := make([]report.ChatMessage, 0, len(p.Messages)+1)
	transcript = append(transcript, welcomeChatMessage())
	for i, msg := range p.Messages {
		transcript = append(transcript, restoreMessage(msg, i))
	}
	s.messages = transcript
}

// lastMessageWithData returns the last message (by list order) carrying a
// non-empty tabular payload, falling back to the last assistant message
// with a summary or comprehensive info when no tables exist.
func lastMessageWithData(messages []report.ChatMessage) *report.ChatMessage {
	var found *report.ChatMessage
	for i := range messages {
		if len(messages[i].TableData) > 0 {
			found = &messages[i]
		}
	}
	if found != nil {
		return found
	}
	for i := range messages {
		msg := &messages[i]
		if msg.Role == "assistant" && (msg.Summary != "" || msg.ComprehensiveInfo != "") {
			found = msg
		}
	}
	return found
}

func firstMessageWithAttachment(messages []report.ChatMessage) *report.ChatMessage {
	for i := range messages {
		if messages[i].AttachmentID != "" {
			return &messages[i]
		}
	}
	return nil
}

// queryResultsReport synthesizes the fixed-placeholder report used when
// replaying a loaded transcript.
func queryResultsReport(conversationID string, msg *report.ChatMessage) *report.Report {
	now := time.Now()
	r := &report.Report{
		ID:                conversationID,
		Title:             "Query Results",
		Description:       "Report generated from chat history",
		Content:           "",
		Status:            report.StatusPublished,
		Type:              report.TypeDataReport,
		CreatedAt:         now,
		UpdatedAt:         now,
		Summary:           msg.Summary,
		ComprehensiveInfo: msg.ComprehensiveInfo,
		KeyInsights:       msg.KeyInsights,
		SuggestedPrompts:  msg.SuggestedPrompts,
	}
	if len(msg.TableData) > 0 {
		r.APIData = &report.APIData{
			Title: "Query Results",
			Type:  "Query Results",
			Data:  report.TableData{Grid: msg.TableData},
		}
	}
	return r
}

// restoreMessage re-derives a transcript entry from a stored handoff
// message. Sender keys strictly off role == "user".
func restoreMessage(msg report.ChatMessage, index int) report.ChatMessage {
	sender := report.SenderAssistant
	if msg.Role == "user" {
		sender = report.SenderUser
	}

	id := msg.ID
	if id == "" {
		id = fmt.Sprintf("loaded-%d", index)
	}

	content := msg.Summary
	if content == "" {
		content = msg.Prompt
	}
	if content == "" {
		content = msg.Content
	}
	if content == "" {
		content = "Response generated"
	}

	timestamp := msg.Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	return report.ChatMessage{
		ID:                id,
		MessageID:         msg.MessageID,
		Content:           content,
		Sender:            sender,
		Role:              msg.Role,
		Prompt:            msg.Prompt,
		Timestamp:         timestamp,
		TableData:         msg.TableData,
		Summary:           msg.Summary,
		ComprehensiveInfo: msg.ComprehensiveInfo,
		KeyInsights:       msg.KeyInsights,
		SuggestedPrompts:  msg.SuggestedPrompts,
		AttachmentID:      msg.AttachmentID,
	}
}
