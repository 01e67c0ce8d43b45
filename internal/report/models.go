package report

import "time"

// Status is the lifecycle state of a report.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
)

// Well-known report type tags. Type is free-form on the wire; these are the
// values this client produces.
const (
	TypePayroll      = "Payroll"
	TypeBenefits     = "Benefits"
	TypeAttendance   = "Attendance"
	TypeDemographics = "Demographics"
	TypePerformance  = "Performance"
	TypeGeneral      = "General"
	TypeDataReport   = "data-report"
)

// Input validation limits.
const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 1000
	MaxPromptLength      = 2000
)

// Sender identifies who produced a chat message.
type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// Field is one key/value cell of a record-list payload.
type Field struct {
	Key   string      `json:"key"`
	Value interface{} `json:"value"`
}

// Record is a flat row of a record-list payload. Field order is significant:
// CSV export takes the header order from the first record.
type Record struct {
	Fields []Field `json:"fields"`
}

// Get returns the value for a key, or nil when the record has no such key.
func (r Record) Get(key string) interface{} {
	for _, f := range r.Fields {
		if f.Key == key {
			return f.Value
		}
	}
	return nil
}

// TableData is the tabular payload of a report: either a 2-D string grid
// (first row is the header row) or an ordered list of flat records.
type TableData struct {
	Grid    [][]string `json:"grid,omitempty"`
	Records []Record   `json:"records,omitempty"`
}

// IsEmpty reports whether the payload carries no rows in either shape.
func (d TableData) IsEmpty() bool {
	return len(d.Grid) == 0 && len(d.Records) == 0
}

// APIData is the tabular block attached to a report.
type APIData struct {
	Title string    `json:"title"`
	Type  string    `json:"type"`
	Data  TableData `json:"data"`
}

// Report is the normalized, presentation-facing report model.
type Report struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	Content           string    `json:"content"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
	Status            Status    `json:"status"`
	Type              string    `json:"type"`
	AttachmentID      string    `json:"attachmentId,omitempty"`
	Summary           string    `json:"summary,omitempty"`
	ComprehensiveInfo string    `json:"comprehensiveInfo,omitempty"`
	KeyInsights       []string  `json:"keyInsights,omitempty"`
	SuggestedPrompts  []string  `json:"suggestedPrompts,omitempty"`
	APIData           *APIData  `json:"apiData,omitempty"`
}

// ChatMessage is a normalized transcript entry. Sender is derived once at
// the API boundary; Role keeps the raw discriminator for replay.
type ChatMessage struct {
	ID                string     `json:"id"`
	MessageID         string     `json:"message_id,omitempty"`
	Content           string     `json:"content"`
	Sender            Sender     `json:"sender"`
	Role              string     `json:"role,omitempty"`
	Prompt            string     `json:"prompt,omitempty"`
	Timestamp         time.Time  `json:"timestamp"`
	TableData         [][]string `json:"tableData,omitempty"`
	Summary           string     `json:"summary,omitempty"`
	ComprehensiveInfo string     `json:"comprehensiveInfo,omitempty"`
	KeyInsights       []string   `json:"keyInsights,omitempty"`
	SuggestedPrompts  []string   `json:"suggestedPrompts,omitempty"`
	AttachmentID      string     `json:"attachment_id,omitempty"`
}

// DashboardReport is the list-view projection of a saved report. It is
// recomputed on every fetch and never persisted.
type DashboardReport struct {
	ConversationID string
	DefaultTitle   string
	ReportName     string
	CreatedAt      time.Time
	Mapped         bool
}
