// ABOUTME: CLI command for toxicity stats per person or journal-wide
// ABOUTME: Composes the storage layer with the scoring engine
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/flagbook/flagbook/internal/stats"
	"github.com/flagbook/flagbook/internal/storage"
)

var statsTop int

// NewStatsCmd creates the stats command
func NewStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats [person]",
		Short: "Show toxicity scores and health status",
		Long: `Show toxicity scores and health status.

With a person's name, shows that person's stats. Without arguments,
shows the journal-wide summary plus a per-person breakdown.

Examples:
  flagbook stats
  flagbook stats "Alex"
  flagbook stats --top 3
  flagbook stats --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: runStats,
	}

	cmd.Flags().IntVar(&statsTop, "top", 0, "Only show the N most-flagged people")

	return cmd
}

func runStats(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	_, store, _, err := loadEnvironment()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if len(args) == 1 {
		return showProfileStats(cmd, store, args[0])
	}
	if statsTop > 0 {
		return showTopProfiles(cmd, store, statsTop)
	}
	return showOverallStats(cmd, store)
}

func showProfileStats(cmd *cobra.Command, store *storage.Storage, name string) error {
	profile, err := store.GetProfileByName(name)
	if err != nil {
		return fmt.Errorf("looking up profile: %w", err)
	}
	if profile == nil {
		return fmt.Errorf("no profile named %q", name)
	}

	st, err := stats.ComputeProfileStats(store, profile.ProfileID)
	if err != nil {
		return fmt.Errorf("computing stats: %w", err)
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(st, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", st.Profile.Name, st.Profile.Relationship)
	fmt.Fprintf(cmd.OutOrStdout(), "Toxicity score: %d/100 (%s)\n", st.Score, st.Health)
	fmt.Fprintf(cmd.OutOrStdout(), "Flags: 🟢 %d  🟡 %d  🔴 %d\n", st.GreenCount, st.YellowCount, st.RedCount)
	if st.LastLogAt != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "Last flag: %s\n", formatTime(*st.LastLogAt))
	}
	return nil
}

func showTopProfiles(cmd *cobra.Command, store *storage.Storage, limit int) error {
	counts, err := stats.TopProfilesByLogCount(store, limit)
	if err != nil {
		return fmt.Errorf("computing top profiles: %w", err)
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(counts, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	if len(counts) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No flags recorded yet.\n")
		}
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "NAME\tFLAGS\tID\n")
	for _, c := range counts {
		fmt.Fprintf(w, "%s\t%d\t%s\n", c.Name, c.FlagCount, c.ProfileID)
	}
	return w.Flush()
}

func showOverallStats(cmd *cobra.Command, store *storage.Storage) error {
	overall, err := stats.ComputeOverallStats(store)
	if err != nil {
		return fmt.Errorf("computing overall stats: %w", err)
	}
	perProfile, err := stats.ComputeAllProfileStats(store)
	if err != nil {
		return fmt.Errorf("computing profile stats: %w", err)
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(map[string]interface{}{
			"overall":  overall,
			"profiles": perProfile,
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Journal: %d flags across %d people\n", overall.LogCount, overall.ProfileCount)
	fmt.Fprintf(cmd.OutOrStdout(), "Overall toxicity: %d/100 (%s)\n\n", overall.Score, overall.Health)

	if len(perProfile) == 0 {
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "NAME\tSCORE\tHEALTH\t🟢\t🟡\t🔴\n")
	for _, st := range perProfile {
		fmt.Fprintf(w, "%s\t%d\t%s\t%d\t%d\t%d\n",
			st.Profile.Name, st.Score, st.Health, st.GreenCount, st.YellowCount, st.RedCount)
	}
	return w.Flush()
}
