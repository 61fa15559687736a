// ABOUTME: CLI command to edit a flag's notes
// ABOUTME: Notes are the only log field that may change after creation
package commands

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var editNotes string

// NewEditCmd creates the edit command
func NewEditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <log-id>",
		Short: "Edit a flag's notes",
		Long: `Edit a flag's notes. The flag's type, severity, category, person,
and timestamp are immutable once filed; only the notes may change.

Examples:
  flagbook edit log_20260830_101500_ab12cd34 --notes "turned out to be a misunderstanding"
  flagbook edit log_20260830_101500_ab12cd34 --notes ""`,
		Args: cobra.ExactArgs(1),
		RunE: runEdit,
	}

	cmd.Flags().StringVar(&editNotes, "notes", "", "New notes text (empty clears the notes)")
	_ = cmd.MarkFlagRequired("notes")

	return cmd
}

func runEdit(cmd *cobra.Command, args []string) error {
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

	if err := store.UpdateLogNotes(entry.LogID, editNotes); err != nil {
		return fmt.Errorf("updating notes: %w", err)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Updated notes on %s\n", entry.LogID)
	}
	return nil
}
