package cmd

import (
	"fmt"
	"strconv"

	"github.com/paylens/payreport/internal/api"
	"github.com/paylens/payreport/internal/session"
	"github.com/spf13/cobra"
)

// templatesCmd represents the templates command
var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List available report templates",
	Long: `List the report templates offered by the backend. Use
'payreport templates run <n>' to stage a template's prompt for the next
chat session.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		templates, err := newService().ListTemplates(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to load templates: %w", err)
		}
		displayTemplates(cmd, templates)
		return nil
	},
}

// templatesRunCmd represents the templates run subcommand
var templatesRunCmd = &cobra.Command{
	Use:   "run <n>",
	Short: "Stage a template's prompt for the next chat session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid template number: %s", args[0])
		}

		templates, err := newService().ListTemplates(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to load templates: %w", err)
		}
		if n < 1 || n > len(templates) {
			return fmt.Errorf("template %d not found (have %d)", n, len(templates))
		}
		tmpl := templates[n-1]

		st, err := openStore()
		if err != nil {
			return err
		}
		defer func() { _ = st.Close() }()

		prompt := tmpl.ReportTemplateDescription
		if prompt == "" {
			prompt = tmpl.ReportTemplateName
		}
		if err := session.NewHandoff(st).WritePendingPrompt(prompt, true); err != nil {
			return fmt.Errorf("failed to stage template prompt: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("✅ Staged template %q", tmpl.ReportTemplateName)))
		fmt.Fprintln(out, infoStyle.Render("Run `payreport chat` to generate the report"))
		return nil
	},
}

func displayTemplates(cmd *cobra.Command, templates []api.ReportTemplate) {
	out := cmd.OutOrStdout()
	if len(templates) == 0 {
		fmt.Fprintln(out, headerStyle.Render("📋 No templates available"))
		return
	}

	fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("📋 %d template(s)", len(templates))))
	fmt.Fprintln(out)
	for i, tmpl := range templates {
		fmt.Fprintf(out, "  [%d] %s\n", i+1, titleStyle.Render(tmpl.ReportTemplateName))
		if tmpl.ReportTemplateDescription != "" {
			fmt.Fprintf(out, "      %s\n", dateStyle.Render(tmpl.ReportTemplateDescription))
		}
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, idStyle.Render("💡 Tip: `payreport templates run <n>` stages a template for the next chat"))
}

func init() {
	rootCmd.AddCommand(templatesCmd)
	templatesCmd.AddCommand(templatesRunCmd)
}
