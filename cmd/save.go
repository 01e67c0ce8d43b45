package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	saveDescription string
)

// saveCmd represents the save command
var saveCmd = &cobra.Command{
	Use:   "save <conversation-id> <name>",
	Short: "Save a report to the dashboard",
	Long: `Attach a name (and optional description) to a conversation so it
appears as a saved report on the dashboard.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		conversationID, name := args[0], args[1]
		service := newService()

		if err := service.SaveReportMetadata(cmd.Context(), conversationID, name, saveDescription); err != nil {
			return fmt.Errorf("failed to save report: %w", err)
		}

		touchIndex(conversationID, name, "", 0)
		fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render(fmt.Sprintf("✅ Saved %s as %q", conversationID, name)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(saveCmd)
	saveCmd.Flags().StringVarP(&saveDescription, "description", "d", "", "Report description")
}
