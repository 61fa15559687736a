// ABOUTME: Root CLI command with global flags and subcommand registration
// ABOUTME: Defines verbose/quiet/format flags shared by all commands
package commands

import (
	"github.com/spf13/cobra"
)

var (
	verbose      bool
	quiet        bool
	outputFormat string
)

const banner = `
███████╗██╗      █████╗  ██████╗ ██████╗  ██████╗  ██████╗ ██╗  ██╗
██╔════╝██║     ██╔══██╗██╔════╝ ██╔══██╗██╔═══██╗██╔═══██╗██║ ██╔╝
█████╗  ██║     ███████║██║  ███╗██████╔╝██║   ██║██║   ██║█████╔╝
██╔══╝  ██║     ██╔══██║██║   ██║██╔══██╗██║   ██║██║   ██║██╔═██╗
██║     ███████╗██║  ██║╚██████╔╝██████╔╝╚██████╔╝╚██████╔╝██║  ██╗
╚═╝     ╚══════╝╚═╝  ╚═╝ ╚═════╝ ╚═════╝  ╚═════╝  ╚═════╝ ╚═╝  ╚═╝
`

// NewRootCmd creates the root command with all subcommands
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flagbook",
		Short: "Relationship-behavior journal with toxicity scoring",
		Long: banner + `
Flagbook is a local-first journal for relationship behavior. Record
green, yellow, and red flag events about people in your life, track a
toxicity score per person, and spot patterns over time.

All data stays in a local SQLite database.

Examples:
  flagbook add "Alex" --type red --severity 7 --category respect
  flagbook list --limit 10
  flagbook stats "Alex"
  flagbook export --format yaml`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	cmd.PersistentFlags().StringVar(&outputFormat, "format", "auto", "Output format (auto, table, json)")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.AddCommand(NewAddCmd())
	cmd.AddCommand(NewListCmd())
	cmd.AddCommand(NewProfileCmd())
	cmd.AddCommand(NewStatsCmd())
	cmd.AddCommand(NewEditCmd())
	cmd.AddCommand(NewDeleteCmd())
	cmd.AddCommand(NewExportCmd())
	cmd.AddCommand(NewInsightsCmd())
	cmd.AddCommand(NewMCPCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
