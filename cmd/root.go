package cmd

import (
	"fmt"
	"os"

	"github.com/paylens/payreport/internal/api"
	"github.com/paylens/payreport/internal/config"
	"github.com/paylens/payreport/internal/logging"
	"github.com/paylens/payreport/internal/report"
	"github.com/paylens/payreport/internal/store"
	"github.com/spf13/cobra"
)

var (
	verbose  bool
	baseURL  string
	token    string
	stateDir string
	version  string = "dev"
	commit   string = "unknown"
	date     string = "unknown"

	cfg config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "payreport",
	Short: "Generate payroll and HR reports through conversation",
	Long: `A CLI for the PowerPay conversational report API.

Describe the payroll or HR report you need in plain language and the
backend generates it: payroll summaries, benefits analysis, time
tracking, workforce demographics, and more.

Quick Start:
  payreport ask "overtime hours by department"   # One-shot report
  payreport chat                                 # Interactive session
  payreport list                                 # Saved reports
  payreport export <conversation-id>             # Download as CSV

Configuration comes from PAYREPORT_* environment variables (or a .env
file); flags override both.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = config.Load()
		if baseURL != "" {
			cfg.BaseURL = baseURL
		}
		if token != "" {
			cfg.Token = token
		}
		if stateDir != "" {
			cfg.StateDir = stateDir
		}
		logging.SetLevel(cfg.LogLevel)
		logging.SetVerbose(verbose)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newService builds the report service from the resolved configuration.
func newService() *report.Service {
	client := api.NewClient(api.Options{
		BaseURL: cfg.BaseURL,
		Token:   cfg.Token,
		OnUnauthorized: func() {
			logging.Warn("Received 401 from the report API; set PAYREPORT_TOKEN or pass --token")
		},
	})
	return report.NewService(client)
}

// openStore opens the handoff store under the state directory.
func openStore() (*store.Store, error) {
	st, err := store.Open(cfg.StateDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open state store: %w", err)
	}
	return st, nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "Report API base URL (overrides PAYREPORT_BASE_URL)")
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "Bearer token for the report API (overrides PAYREPORT_TOKEN)")
	rootCmd.PersistentFlags().StringVar(&stateDir, "state-dir", "", "Directory for local state (overrides PAYREPORT_STATE_DIR)")

	// Set version template to ensure --version flag works
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}
