package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/paylens/payreport/internal/report"
	"github.com/spf13/cobra"
)

var (
	listSearch string
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved reports",
	Long: `List the reports saved on the dashboard, newest first.

Reports saved with a name show it; unsaved conversations fall back to
"Untitled Report".`,
	RunE: func(cmd *cobra.Command, args []string) error {
		service := newService()

		reports, err := service.ListDashboardReports(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to load reports: %w", err)
		}

		if listSearch != "" {
			reports = filterReports(reports, listSearch)
		}

		displayReports(cmd, reports)
		return nil
	},
}

// filterReports keeps reports whose display name contains the query,
// case-insensitively.
func filterReports(reports []report.DashboardReport, query string) []report.DashboardReport {
	query = strings.ToLower(query)
	filtered := make([]report.DashboardReport, 0, len(reports))
	for _, r := range reports {
		if strings.Contains(strings.ToLower(displayName(r)), query) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// displayName resolves the dashboard label for a report entry.
func displayName(r report.DashboardReport) string {
	if r.Mapped && r.ReportName != "" {
		return r.ReportName
	}
	return r.DefaultTitle
}

func displayReports(cmd *cobra.Command, reports []report.DashboardReport) {
	out := cmd.OutOrStdout()
	if len(reports) == 0 {
		fmt.Fprintln(out, headerStyle.Render("📋 No reports found"))
		return
	}

	fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("📋 Found %d report(s)", len(reports))))
	fmt.Fprintln(out)

	nameStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	for _, r := range reports {
		name := report.TruncateWithEllipsis(displayName(r), 57)

		status := dateStyle.Render("unsaved")
		if r.Mapped {
			status = countStyle.Render("saved")
		}

		shortID := r.ConversationID
		if runes := []rune(shortID); len(runes) > 8 {
			shortID = string(runes[:8])
		}

		fmt.Fprintf(out, "%s  %s  %s  %s\n",
			idStyle.Render(shortID),
			nameStyle.Render(name),
			status,
			dateStyle.Render(relativeDate(r.CreatedAt)))
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, idStyle.Render("💡 Tip: Use the full conversation ID (e.g., ")+
		lipgloss.NewStyle().Foreground(lipgloss.Color("62")).Render(reports[0].ConversationID)+
		idStyle.Render(") with `payreport show <id>` or `payreport open <id>`"))
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVar(&listSearch, "search", "", "Filter reports by name")
}
