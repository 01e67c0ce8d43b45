package cmd

import (
	"fmt"
	"strings"

	"github.com/paylens/payreport/internal/logging"
	"github.com/paylens/payreport/internal/progress"
	"github.com/paylens/payreport/internal/report"
	"github.com/paylens/payreport/internal/session"
	"github.com/paylens/payreport/internal/store"
	"github.com/spf13/cobra"
)

var (
	askSaveAs string
)

// askCmd represents the ask command
var askCmd = &cobra.Command{
	Use:   "ask <prompt>",
	Short: "Generate a report from a single prompt",
	Long: `Start a new conversation with the given prompt and print the generated
report. The conversation ID is printed so you can continue it later with
'payreport open' or export it with 'payreport export'.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		prompt := strings.Join(args, " ")
		out := cmd.OutOrStdout()

		sess := session.New(newService())

		var result *report.StartResult
		err := progress.Show(cmd.Context(), session.ThinkingMessage, func() error {
			var startErr error
			result, startErr = sess.StartNewChat(cmd.Context(), prompt)
			return startErr
		})
		if err != nil {
			fmt.Fprintln(out, errorStyle.Render(session.ApologyMessage))
			return err
		}

		fmt.Fprintln(out)
		if result.Report != nil {
			renderReport(out, result.Report)
		} else if last := lastAssistantMessage(sess.Messages()); last != nil {
			fmt.Fprintln(out, messageContentStyle.Render(last.Content))
		}

		if last := lastAssistantMessage(sess.Messages()); last != nil {
			renderSuggestedPrompts(out, last.SuggestedPrompts)
		}

		if askSaveAs != "" {
			if err := sess.Service().SaveReportMetadata(cmd.Context(), result.ReportID, askSaveAs, ""); err != nil {
				return fmt.Errorf("report generated but save failed: %w", err)
			}
			fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("✅ Saved to dashboard as %q", askSaveAs)))
		}

		touchIndex(result.ReportID, askSaveAs, prompt, len(sess.Messages()))

		fmt.Fprintln(out, idStyle.Render("Conversation ID: "+result.ReportID))
		return nil
	},
}

// lastAssistantMessage returns the most recent assistant entry, or nil.
func lastAssistantMessage(messages []report.ChatMessage) *report.ChatMessage {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Sender == report.SenderAssistant {
			return &messages[i]
		}
	}
	return nil
}

// touchIndex records the conversation in the local YAML index. Index
// failures never fail the command.
func touchIndex(conversationID, name, lastPrompt string, messageCount int) {
	if conversationID == "" {
		return
	}
	manager := store.NewIndexManager(cfg.StateDir)
	err := manager.Touch(store.IndexEntry{
		ConversationID: conversationID,
		Name:           name,
		LastPrompt:     lastPrompt,
		MessageCount:   messageCount,
	})
	if err != nil {
		logging.Warn("Failed to update conversation index: %v", err)
	}
}

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().StringVar(&askSaveAs, "save-as", "", "Save the report to the dashboard under this name")
}
