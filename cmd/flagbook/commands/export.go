// ABOUTME: CLI command to export the journal as a shareable report
// ABOUTME: Supports YAML, JSON, and Markdown; gated by the export entitlement
package commands

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/flagbook/flagbook/internal/billing"
	"github.com/flagbook/flagbook/internal/stats"
)

var (
	exportOutput string
	exportFormat string
)

// NewExportCmd creates the export command
func NewExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the journal as a report",
		Long: `Export the journal as a report with per-person toxicity scores,
health status, and the full flag history.

The report carries computed data only; rendering (PDF etc.) is up to
whatever consumes it.

Examples:
  flagbook export
  flagbook export --format json
  flagbook export --format markdown --output report.md`,
		RunE: runExport,
	}

	cmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write to file instead of stdout")
	cmd.Flags().StringVar(&exportFormat, "format", "yaml", "Report format (yaml, json, markdown)")

	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	_, store, entitlements, err := loadEnvironment()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	decision, err := entitlements.CanPerform(billing.ActionExport, 0)
	if err != nil {
		return fmt.Errorf("checking entitlements: %w", err)
	}
	if !decision.Allowed {
		return fmt.Errorf("%s", decision.Reason)
	}

	report, err := stats.BuildReport(store)
	if err != nil {
		return fmt.Errorf("building report: %w", err)
	}

	var data []byte
	switch exportFormat {
	case "yaml":
		data, err = report.ToYAML()
	case "json":
		data, err = report.ToJSON()
	case "markdown":
		data = report.ToMarkdown()
	default:
		return fmt.Errorf("unknown format %q: must be yaml, json, or markdown", exportFormat)
	}
	if err != nil {
		return fmt.Errorf("serializing report: %w", err)
	}

	if exportOutput == "" {
		fmt.Fprintf(cmd.OutOrStdout(), "%s", data)
		return nil
	}

	if err := os.WriteFile(exportOutput, data, 0644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", exportOutput)
	}
	return nil
}
