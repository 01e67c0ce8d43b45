package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	showLimit int
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show <conversation-id>",
	Short: "Show the transcript of a conversation",
	Long: `Display a conversation's messages without staging anything for chat.
Messages are shown oldest first.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		conversationID := args[0]
		service := newService()

		messages, err := service.LoadReportHistory(cmd.Context(), conversationID)
		if err != nil {
			return fmt.Errorf("failed to load conversation %s: %w", conversationID, err)
		}

		out := cmd.OutOrStdout()
		if len(messages) == 0 {
			fmt.Fprintln(out, headerStyle.Render("📋 No messages in this conversation"))
			return nil
		}

		if showLimit > 0 && len(messages) > showLimit {
			fmt.Fprintln(out, dateStyle.Render(fmt.Sprintf("(showing last %d of %d messages)", showLimit, len(messages))))
			messages = messages[len(messages)-showLimit:]
		}

		fmt.Fprintln(out, headerStyle.Render("💬 Conversation "+conversationID))
		fmt.Fprintln(out)
		renderTranscript(out, messages)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().IntVar(&showLimit, "limit", 0, "Show only the last N messages (0 = all)")
}
