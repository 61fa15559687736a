// ABOUTME: CLI command to manage tracked people
// ABOUTME: List, add, edit, and delete profiles; deletion detaches logs
package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/flagbook/flagbook/internal/billing"
	"github.com/flagbook/flagbook/internal/storage/sqlite"
)

var (
	profileRelationship string
	profileNewName      string
)

// NewProfileCmd creates the profile command
func NewProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage tracked people",
		Long: `Manage the people you track.

Without a subcommand, lists all profiles ordered by name.

Examples:
  flagbook profile
  flagbook profile add "Alex" --relationship friend
  flagbook profile set "Alex" --relationship partner
  flagbook profile set "Alex" --rename "Alexandra"
  flagbook profile delete "Alex"`,
		RunE: runProfileList,
	}

	addCmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a profile",
		Args:  cobra.ExactArgs(1),
		RunE:  runProfileAdd,
	}
	addCmd.Flags().StringVar(&profileRelationship, "relationship", "", "Relationship category (partner, friend, family, coworker, other, or free text)")

	setCmd := &cobra.Command{
		Use:   "set <name>",
		Short: "Update profile fields",
		Long: `Update profile fields. Only the flags you supply are changed;
supplying none is a no-op.`,
		Args: cobra.ExactArgs(1),
		RunE: runProfileSet,
	}
	setCmd.Flags().StringVar(&profileNewName, "rename", "", "New name for the profile")
	setCmd.Flags().StringVar(&profileRelationship, "relationship", "", "New relationship category")

	deleteCmd := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a profile, keeping its flag history",
		Long: `Delete a profile. The profile's flags are kept but detached:
they no longer reference the profile, only the person's name.`,
		Args: cobra.ExactArgs(1),
		RunE: runProfileDelete,
	}

	cmd.AddCommand(addCmd)
	cmd.AddCommand(setCmd)
	cmd.AddCommand(deleteCmd)

	return cmd
}

func runProfileList(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	_, store, _, err := loadEnvironment()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	profiles, err := store.ListProfiles()
	if err != nil {
		return fmt.Errorf("listing profiles: %w", err)
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(profiles, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	if len(profiles) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No profiles yet. Create one with: flagbook profile add \"Name\"\n")
		}
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "NAME\tRELATIONSHIP\tCREATED\tID\n")
	for _, p := range profiles {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.Name, p.Relationship, formatTime(p.CreatedAt), p.ProfileID)
	}
	return w.Flush()
}

func runProfileAdd(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	_, store, entitlements, err := loadEnvironment()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

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

	profile, err := store.CreateProfile(args[0], profileRelationship)
	if err != nil {
		if errors.Is(err, sqlite.ErrDuplicateName) {
			return fmt.Errorf("a profile named %q already exists", args[0])
		}
		return fmt.Errorf("creating profile: %w", err)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Created profile %s (%s)\n", profile.Name, profile.Relationship)
	}
	return nil
}

func runProfileSet(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	_, store, _, err := loadEnvironment()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	profile, err := store.GetProfileByName(args[0])
	if err != nil {
		return fmt.Errorf("looking up profile: %w", err)
	}
	if profile == nil {
		return fmt.Errorf("no profile named %q", args[0])
	}

	var upd sqlite.ProfileUpdate
	if profileNewName != "" {
		upd.Name = &profileNewName
	}
	if profileRelationship != "" {
		upd.Relationship = &profileRelationship
	}

	if err := store.UpdateProfile(profile.ProfileID, upd); err != nil {
		if errors.Is(err, sqlite.ErrDuplicateName) {
			return fmt.Errorf("a profile named %q already exists", profileNewName)
		}
		return fmt.Errorf("updating profile: %w", err)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Updated profile %s\n", args[0])
	}
	return nil
}

func runProfileDelete(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	_, store, _, err := loadEnvironment()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	profile, err := store.GetProfileByName(args[0])
	if err != nil {
		return fmt.Errorf("looking up profile: %w", err)
	}
	if profile == nil {
		return fmt.Errorf("no profile named %q", args[0])
	}

	if err := store.DeleteProfile(profile.ProfileID); err != nil {
		return fmt.Errorf("deleting profile: %w", err)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted profile %s (flag history kept)\n", profile.Name)
	}
	return nil
}
