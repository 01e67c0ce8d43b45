package cmd

import (
	"fmt"

	"github.com/paylens/payreport/internal/session"
	"github.com/spf13/cobra"
)

var (
	exportFormat string
	exportOut    string
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export <conversation-id>",
	Short: "Export a report to a file",
	Long: `Fetch a conversation and write its most recent report result to a
file (csv, json, or md).

CSV output contains the report's tabular data when it has any, otherwise
a Field,Value table of the report metadata. The filename is derived from
the report title unless --out is given.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		conversationID := args[0]

		sess := session.New(newService())
		messages, err := sess.Service().LoadReportHistory(cmd.Context(), conversationID)
		if err != nil {
			return fmt.Errorf("failed to load conversation %s: %w", conversationID, err)
		}
		if len(messages) == 0 {
			return fmt.Errorf("conversation %s has no messages", conversationID)
		}

		// Reuse the restore path so the exported report is exactly what
		// a resumed chat would show.
		sess.RestoreFromHandoff(cmd.Context(), &session.Payload{
			ConversationID: conversationID,
			Messages:       messages,
		})
		if sess.CurrentReport() == nil {
			return fmt.Errorf("conversation %s has no report result to export", conversationID)
		}

		path, err := exportReport(sess, exportFormat, exportOut)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render("✅ Exported to "+path))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "csv", "Export format (csv, json, md)")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file path (default: derived from the report title)")
}
