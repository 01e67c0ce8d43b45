package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/paylens/payreport/internal/report"
)

var (
	// Styles shared across commands
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	idStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true)

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	userMessageStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("39")).
				Bold(true).
				Padding(0, 1)

	assistantMessageStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("135")).
				Bold(true).
				Padding(0, 1)

	messageContentStyle = lipgloss.NewStyle().
				Padding(0, 2).
				MarginBottom(1)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true).
			Underline(true)
)

// renderReport prints a normalized report: header, narrative sections, and
// the tabular payload when one exists.
func renderReport(w io.Writer, r *report.Report) {
	_, _ = fmt.Fprintln(w, titleStyle.Render(r.Title))
	meta := fmt.Sprintf("%s · %s", r.Status, r.Type)
	if !r.CreatedAt.IsZero() {
		meta += " · " + r.CreatedAt.Format("2006-01-02 15:04")
	}
	_, _ = fmt.Fprintln(w, dateStyle.Render(meta))
	_, _ = fmt.Fprintln(w)

	if r.Summary != "" {
		_, _ = fmt.Fprintln(w, r.Summary)
		_, _ = fmt.Fprintln(w)
	}

	if r.APIData != nil && len(r.APIData.Data.Grid) > 0 {
		renderGrid(w, r.APIData.Data.Grid)
		_, _ = fmt.Fprintln(w)
	}

	if len(r.KeyInsights) > 0 {
		_, _ = fmt.Fprintln(w, sectionStyle.Render("Key Insights"))
		for _, insight := range r.KeyInsights {
			_, _ = fmt.Fprintf(w, "  • %s\n", insight)
		}
		_, _ = fmt.Fprintln(w)
	}
}

// renderGrid prints a grid with aligned columns; the first row is the header.
func renderGrid(w io.Writer, grid [][]string) {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	for i, row := range grid {
		line := strings.Join(row, "\t")
		if i == 0 {
			line = titleStyle.Render(line)
		}
		_, _ = fmt.Fprintln(tw, line+"\t")
		if i == 0 {
			_, _ = fmt.Fprintln(tw, strings.Repeat("─", 60))
		}
	}
	_ = tw.Flush()
}

// renderTranscript prints normalized chat messages in order.
func renderTranscript(w io.Writer, messages []report.ChatMessage) {
	for _, msg := range messages {
		renderChatMessage(w, msg)
	}
}

func renderChatMessage(w io.Writer, msg report.ChatMessage) {
	label := assistantMessageStyle.Render("Assistant")
	if msg.Sender == report.SenderUser {
		label = userMessageStyle.Render("You")
	}
	stamp := ""
	if !msg.Timestamp.IsZero() {
		stamp = " " + dateStyle.Render(msg.Timestamp.Format("15:04"))
	}
	_, _ = fmt.Fprintln(w, label+stamp)
	_, _ = fmt.Fprintln(w, messageContentStyle.Render(msg.Content))

	if len(msg.TableData) > 0 {
		renderGrid(w, msg.TableData)
		_, _ = fmt.Fprintln(w)
	}
}

// renderSuggestedPrompts prints numbered follow-up prompts.
func renderSuggestedPrompts(w io.Writer, prompts []string) {
	if len(prompts) == 0 {
		return
	}
	_, _ = fmt.Fprintln(w, sectionStyle.Render("Suggested follow-ups"))
	for i, p := range prompts {
		_, _ = fmt.Fprintf(w, "  [%d] %s\n", i+1, p)
	}
	_, _ = fmt.Fprintln(w)
}

// relativeDate formats a timestamp the way the dashboard shows it: recent
// entries get a short relative form, older ones the full date.
func relativeDate(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	diff := time.Since(t)
	switch {
	case diff < 24*time.Hour:
		return t.Format("Today 15:04")
	case diff < 7*24*time.Hour:
		return t.Format("Mon 15:04")
	case diff < 365*24*time.Hour:
		return t.Format("Jan 02 15:04")
	default:
		return t.Format("2006-01-02")
	}
}
