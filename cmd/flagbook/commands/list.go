// ABOUTME: CLI command to list flag events
// ABOUTME: Shows recent flags, optionally filtered to one person
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/flagbook/flagbook/internal/models"
)

var (
	listAll    bool
	listLimit  int
	listPerson string
)

// NewListCmd creates the list command
func NewListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List flag events, newest first",
		Long: `List flag events, newest first.

By default the 20 most recent flags are shown. Use --all for the full
history or --person to restrict to one tracked person.

Examples:
  flagbook list
  flagbook list --all
  flagbook list --limit 5
  flagbook list --person "Alex"
  flagbook list --format json`,
		RunE: runList,
	}

	cmd.Flags().BoolVar(&listAll, "all", false, "Show the full history")
	cmd.Flags().IntVar(&listLimit, "limit", 20, "Maximum number of flags to show")
	cmd.Flags().StringVar(&listPerson, "person", "", "Only show flags for this person")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	if !listAll {
		if err := validatePositiveInt(listLimit, "limit"); err != nil {
			return err
		}
	}

	_, store, _, err := loadEnvironment()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	var logs []models.LogEntry
	switch {
	case listPerson != "":
		profile, err := store.GetProfileByName(listPerson)
		if err != nil {
			return fmt.Errorf("looking up profile: %w", err)
		}
		if profile == nil {
			if !quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "No profile named %q\n", listPerson)
			}
			return nil
		}
		logs, err = store.ListLogsForProfile(profile.ProfileID)
		if err != nil {
			return fmt.Errorf("listing flags: %w", err)
		}
		if !listAll && len(logs) > listLimit {
			logs = logs[:listLimit]
		}
	case listAll:
		logs, err = store.ListLogs()
		if err != nil {
			return fmt.Errorf("listing flags: %w", err)
		}
	default:
		logs, err = store.ListRecentLogs(listLimit)
		if err != nil {
			return fmt.Errorf("listing flags: %w", err)
		}
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(logs, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	if len(logs) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No flags recorded yet. File one with: flagbook add\n")
		}
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "WHEN\tPERSON\tTYPE\tSEV\tCATEGORY\tNOTES\tID\n")
	for _, entry := range logs {
		fmt.Fprintf(w, "%s\t%s\t%s %s\t%d\t%s\t%s\t%s\n",
			formatTime(entry.Timestamp), entry.Person,
			flagGlyph(string(entry.Type)), entry.Type, entry.Severity,
			entry.Category, truncate(entry.Notes, 40), entry.LogID)
	}
	return w.Flush()
}
