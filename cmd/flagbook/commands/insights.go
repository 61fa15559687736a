// ABOUTME: CLI command for AI pattern analysis over a person's flag history
// ABOUTME: Requires 5+ flags and the insights entitlement; delegates to OpenAI
package commands

import (
	"encoding/json"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/flagbook/flagbook/internal/billing"
	"github.com/flagbook/flagbook/internal/llm"
)

var insightsAsk string

// NewInsightsCmd creates the insights command
func NewInsightsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "insights <person>",
		Short: "AI pattern analysis of a person's flag history",
		Long: `Run AI pattern analysis over a person's flag history.

Requires at least 5 logged flags for the person, an OPENAI_API_KEY, and
a subscription tier that includes AI insights. Use --ask to ask a
free-form question instead of the structured analysis.

Examples:
  flagbook insights "Alex"
  flagbook insights "Alex" --ask "Is communication getting better or worse?"`,
		Args: cobra.ExactArgs(1),
		RunE: runInsights,
	}

	cmd.Flags().StringVar(&insightsAsk, "ask", "", "Ask a free-form question about the history")

	return cmd
}

func runInsights(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	cfg, store, entitlements, err := loadEnvironment()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	decision, err := entitlements.CanPerform(billing.ActionInsights, 0)
	if err != nil {
		return fmt.Errorf("checking entitlements: %w", err)
	}
	if !decision.Allowed {
		return fmt.Errorf("%s", decision.Reason)
	}

	if cfg.OpenAIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is not set")
	}

	profile, err := store.GetProfileByName(args[0])
	if err != nil {
		return fmt.Errorf("looking up profile: %w", err)
	}
	if profile == nil {
		return fmt.Errorf("no profile named %q", args[0])
	}

	logs, err := store.ListLogsForProfile(profile.ProfileID)
	if err != nil {
		return fmt.Errorf("listing flags: %w", err)
	}
	if len(logs) < cfg.MinLogsForInsights {
		return fmt.Errorf("at least %d flags are required for insights; %s has %d",
			cfg.MinLogsForInsights, profile.Name, len(logs))
	}

	client, err := llm.NewInsightsClientWithConfig(&llm.ClientConfig{
		APIKey:     cfg.OpenAIKey,
		ChatModel:  cfg.ChatModel,
		Timeout:    cfg.Timeout,
		MaxRetries: cfg.MaxRetries,
		RetryDelay: cfg.RetryDelay,
		MinLogs:    cfg.MinLogsForInsights,
	})
	if err != nil {
		return fmt.Errorf("initializing AI client: %w", err)
	}

	if insightsAsk != "" {
		reply, err := client.Chat(insightsAsk, logs)
		if err != nil {
			return fmt.Errorf("asking question: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", reply)
		return nil
	}

	insights, err := client.AnalyzeLogs(profile.Name, logs)
	if err != nil {
		return fmt.Errorf("analyzing history: %w", err)
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(insights, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	printSection := func(title string, items []string) {
		if len(items) == 0 {
			return
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s:\n", title)
		for _, item := range items {
			fmt.Fprintf(cmd.OutOrStdout(), "  • %s\n", item)
		}
		fmt.Fprintln(cmd.OutOrStdout())
	}

	printSection("Patterns", insights.Patterns)
	printSection("Risks", insights.Risks)
	printSection("Recommendations", insights.Recommendations)
	return nil
}
