// ABOUTME: CLI command to file a new flag event
// ABOUTME: Creates the profile implicitly on first flag against a new name
package commands

import (
	"encoding/json"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/flagbook/flagbook/internal/billing"
	"github.com/flagbook/flagbook/internal/models"
)

var (
	addType     string
	addSeverity int
	addCategory string
	addNotes    string
)

// NewAddCmd creates the add command
func NewAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <person>",
		Short: "File a flag event against a person",
		Long: `File a flag event against a person.

The flag type is green (positive), yellow (caution), or red (negative),
with a severity from 1 to 10. If no profile exists for the person yet,
one is created automatically.

Examples:
  flagbook add "Alex" --type red --severity 7 --category respect
  flagbook add "Sam" --type green --severity 4 --notes "helped me move"
  flagbook add "Jordan" --type yellow --severity 5 --category communication`,
		Args: cobra.ExactArgs(1),
		RunE: runAdd,
	}

	cmd.Flags().StringVar(&addType, "type", "", "Flag type: green, yellow, or red (required)")
	cmd.Flags().IntVar(&addSeverity, "severity", 0, "Severity 1-10 (required)")
	cmd.Flags().StringVar(&addCategory, "category", "other", "Behavior category")
	cmd.Flags().StringVar(&addNotes, "notes", "", "Free-text notes about the event")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("severity")

	return cmd
}

func runAdd(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	flagType, err := models.ParseFlagType(addType)
	if err != nil {
		return err
	}

	_, store, entitlements, err := loadEnvironment()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	logCount, err := store.CountLogs()
	if err != nil {
		return fmt.Errorf("counting logs: %w", err)
	}
	decision, err := entitlements.CanPerform(billing.ActionAddLog, logCount)
	if err != nil {
		return fmt.Errorf("checking entitlements: %w", err)
	}
	if !decision.Allowed {
		return fmt.Errorf("%s", decision.Reason)
	}

	entry, err := models.NewLogEntry(args[0], flagType, addSeverity, addCategory, addNotes)
	if err != nil {
		return err
	}

	// Implicit profile creation for a new name is also gated
	existing, err := store.GetProfileByName(entry.Person)
	if err != nil {
		return fmt.Errorf("looking up profile: %w", err)
	}
	if existing == nil {
		profileCount, err := store.CountProfiles()
		if err != nil {
			return fmt.Errorf("counting profiles: %w", err)
		}
		decision, err := entitlements.CanPerform(billing.ActionAddProfile, profileCount)
		if err != nil {
			return fmt.Errorf("checking entitlements: %w", err)
		}
		if !decision.Allowed {
			return fmt.Errorf("%s", decision.Reason)
		}
	}

	profile, err := store.EnsureProfile(entry.Person)
	if err != nil {
		return fmt.Errorf("resolving profile: %w", err)
	}
	entry.ProfileID = profile.ProfileID

	if err := store.CreateLog(entry); err != nil {
		return fmt.Errorf("storing flag: %w", err)
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(entry, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s flag filed against %s (severity %d)\n",
			flagGlyph(string(entry.Type)), entry.Type, entry.Person, entry.Severity)
		if verbose {
			fmt.Fprintf(cmd.OutOrStdout(), "  id: %s\n  profile: %s\n", entry.LogID, profile.ProfileID)
		}
	}
	return nil
}
