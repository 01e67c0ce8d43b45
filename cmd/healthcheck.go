package cmd

import (
	"errors"
	"fmt"

	"github.com/paylens/payreport/internal/api"
	"github.com/paylens/payreport/internal/config"
	"github.com/spf13/cobra"
)

var (
	healthcheckVerbose bool
)

// healthcheckCmd represents the healthcheck command
var healthcheckCmd = &cobra.Command{
	Use:   "healthcheck",
	Short: "Check connectivity to the report API and local state",
	Long: `Check the health of payreport by verifying:
  • Configuration (base URL, token presence)
  • Report API reachability (JWKS endpoint)
  • Authenticated access (report listing)
  • Local state store access

This command is useful for debugging connectivity and credential issues.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		ctx := cmd.Context()

		fmt.Fprintln(out, sectionStyle.Render("🔍 Payreport Health Check"))
		fmt.Fprintln(out)

		// Step 1: Configuration
		fmt.Fprintln(out, infoStyle.Render("Step 1: Checking configuration..."))
		fmt.Fprintln(out, successStyle.Render("✅ Configuration loaded"))
		if healthcheckVerbose {
			fmt.Fprintf(out, "   Base URL: %s\n", cfg.BaseURL)
			fmt.Fprintf(out, "   State dir: %s\n", cfg.StateDir)
		}
		hasToken := cfg.Token != ""
		if hasToken {
			fmt.Fprintln(out, successStyle.Render("✅ Bearer token configured"))
		} else {
			fmt.Fprintln(out, warningStyle.Render("⚠️  No bearer token set; requests go out unauthenticated"))
		}
		if cfg.BaseURL == config.DefaultBaseURL && healthcheckVerbose {
			fmt.Fprintln(out, "   Using the default production endpoint")
		}
		fmt.Fprintln(out)

		// Step 2: API reachability via the unauthenticated JWKS endpoint
		fmt.Fprintln(out, infoStyle.Render("Step 2: Checking API reachability..."))
		client := api.NewClient(api.Options{BaseURL: cfg.BaseURL, Token: cfg.Token})
		reachable := true
		if _, err := client.GetJWKS(ctx); err != nil {
			reachable = false
			fmt.Fprintln(out, errorStyle.Render("❌ API unreachable:"), err)
		} else {
			fmt.Fprintln(out, successStyle.Render("✅ API reachable"))
		}
		fmt.Fprintln(out)

		// Step 3: Authenticated access
		fmt.Fprintln(out, infoStyle.Render("Step 3: Checking report access..."))
		reportCount := -1
		if reports, err := client.GetReports(ctx); err != nil {
			var httpErr *api.HTTPError
			if errors.As(err, &httpErr) && httpErr.IsUnauthorized() {
				fmt.Fprintln(out, warningStyle.Render("⚠️  Report listing rejected (401); check PAYREPORT_TOKEN"))
			} else {
				fmt.Fprintln(out, errorStyle.Render("❌ Failed to list reports:"), err)
			}
		} else {
			reportCount = len(reports)
			fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("✅ Listed %d saved report(s)", reportCount)))
		}
		fmt.Fprintln(out)

		// Step 4: Local state store
		fmt.Fprintln(out, infoStyle.Render("Step 4: Checking local state store..."))
		storeOK := true
		if st, err := openStore(); err != nil {
			storeOK = false
			fmt.Fprintln(out, errorStyle.Render("❌ State store unavailable:"), err)
		} else {
			_ = st.Close()
			fmt.Fprintln(out, successStyle.Render("✅ State store accessible"))
			if healthcheckVerbose {
				fmt.Fprintf(out, "   Location: %s\n", cfg.StateDir)
			}
		}
		fmt.Fprintln(out)

		// Summary
		fmt.Fprintln(out, sectionStyle.Render("📊 Summary"))
		fmt.Fprintln(out)
		if reachable && storeOK && reportCount >= 0 {
			fmt.Fprintln(out, successStyle.Render("✅ Health check passed!"))
			return nil
		}
		if reachable && storeOK {
			fmt.Fprintln(out, warningStyle.Render("⚠️  API reachable but report access failed; chat may still work"))
			return nil
		}
		fmt.Fprintln(out, errorStyle.Render("❌ Health check failed"))
		return fmt.Errorf("health check failed")
	},
}

func init() {
	rootCmd.AddCommand(healthcheckCmd)
	healthcheckCmd.Flags().BoolVar(&healthcheckVerbose, "details", false, "Show detailed diagnostic information")
}
