package cmd

import (
	"fmt"

	"github.com/paylens/payreport/internal/session"
	"github.com/spf13/cobra"
)

// openCmd represents the open command
var openCmd = &cobra.Command{
	Use:   "open <conversation-id>",
	Short: "Load a saved report into the next chat session",
	Long: `Fetch a conversation's history and stage it for the next
'payreport chat' invocation, which restores the transcript and the most
recent report result.

The staged state is consumed exactly once: the next chat picks it up and
clears it.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		conversationID := args[0]
		service := newService()

		messages, err := service.LoadReportHistory(cmd.Context(), conversationID)
		if err != nil {
			return fmt.Errorf("failed to load conversation %s: %w", conversationID, err)
		}
		if len(messages) == 0 {
			return fmt.Errorf("conversation %s has no messages", conversationID)
		}

		st, err := openStore()
		if err != nil {
			return err
		}
		defer func() { _ = st.Close() }()

		if err := session.NewHandoff(st).Write(conversationID, messages); err != nil {
			return fmt.Errorf("failed to stage conversation: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("✅ Staged %d message(s) from %s", len(messages), conversationID)))
		fmt.Fprintln(out, infoStyle.Render("Run `payreport chat` to continue the conversation"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(openCmd)
}
