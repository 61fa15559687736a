// ABOUTME: CLI command to delete a single flag event
// ABOUTME: Hard delete with no cascading effects
package commands

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// NewDeleteCmd creates the delete command
func NewDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <log-id>",
		Short: "Delete a flag event",
		Long: `Delete a single flag event by id. This only removes the one flag;
profiles and other flags are untouched.

Examples:
  flagbook delete log_20260830_101500_ab12cd34`,
		Args: cobra.ExactArgs(1),
		RunE: runDelete,
	}
}

func runDelete(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	_, store, _, err := loadEnvironment()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	entry, err := store.GetLog(args[0])
	if err != nil {
		return fmt.Errorf("looking up flag: %w", err)
	}
	if entry == nil {
		return fmt.Errorf("no flag with id %q", args[0])
	}

	if err := store.DeleteLog(entry.LogID); err != nil {
		return fmt.Errorf("deleting flag: %w", err)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", entry.LogID)
	}
	return nil
}
