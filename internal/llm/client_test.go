// ABOUTME: Tests for insights client construction and preconditions
// ABOUTME: No network calls; precondition paths return before any request
package llm

import (
	"testing"
	"time"

	"github.com/flagbook/flagbook/internal/config"
	"github.com/flagbook/flagbook/internal/models"
)

func TestNewInsightsClient_RequiresKey(t *testing.T) {
	if _, err := NewInsightsClient(""); err == nil {
		t.Error("NewInsightsClient(\"\") should fail")
	}

	client, err := NewInsightsClient("sk-test")
	if err != nil {
		t.Fatalf("NewInsightsClient() error = %v", err)
	}
	if client == nil {
		t.Fatal("NewInsightsClient() returned nil client")
	}
}

func TestNewInsightsClientWithConfig_Defaults(t *testing.T) {
	client, err := NewInsightsClientWithConfig(&ClientConfig{APIKey: "sk-test"})
	if err != nil {
		t.Fatalf("NewInsightsClientWithConfig() error = %v", err)
	}
	if client.timeout != 30*time.Second {
		t.Errorf("timeout = %v, want 30s default for zero value", client.timeout)
	}
}

func TestNewInsightsClientWithConfig_MinLogsOverride(t *testing.T) {
	client, err := NewInsightsClientWithConfig(&ClientConfig{APIKey: "sk-test", MinLogs: 10})
	if err != nil {
		t.Fatalf("NewInsightsClientWithConfig() error = %v", err)
	}

	// 6 logs pass the default threshold of 5 but not the configured 10,
	// so both calls fail before any network request
	logs := make([]models.LogEntry, 6)
	if _, err := client.AnalyzeLogs("Alex", logs); err == nil {
		t.Error("AnalyzeLogs() below the configured minimum should fail")
	}
	if _, err := client.Chat("any trend?", logs); err == nil {
		t.Error("Chat() below the configured minimum should fail")
	}

	// Zero falls back to the package default
	client, err = NewInsightsClientWithConfig(&ClientConfig{APIKey: "sk-test"})
	if err != nil {
		t.Fatalf("NewInsightsClientWithConfig() error = %v", err)
	}
	if client.minLogs != MinLogsForInsights {
		t.Errorf("minLogs = %d, want default %d", client.minLogs, MinLogsForInsights)
	}
}

func TestMinLogsThreshold_FromEnvironment(t *testing.T) {
	t.Setenv("FLAGBOOK_MIN_INSIGHT_LOGS", "8")
	t.Setenv("FLAGBOOK_TIER", "")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("config.Load() error = %v", err)
	}

	client, err := NewInsightsClientWithConfig(&ClientConfig{
		APIKey:  "sk-test",
		MinLogs: cfg.MinLogsForInsights,
	})
	if err != nil {
		t.Fatalf("NewInsightsClientWithConfig() error = %v", err)
	}
	if client.minLogs != 8 {
		t.Errorf("minLogs = %d, want 8 from environment", client.minLogs)
	}

	logs := make([]models.LogEntry, 7)
	if _, err := client.AnalyzeLogs("Alex", logs); err == nil {
		t.Error("AnalyzeLogs() with 7 logs should fail under an 8-log threshold")
	}
}

func TestAnalyzeLogs_MinimumPrecondition(t *testing.T) {
	client, err := NewInsightsClient("sk-test")
	if err != nil {
		t.Fatalf("NewInsightsClient() error = %v", err)
	}

	// Fewer than the minimum fails before any network call
	logs := make([]models.LogEntry, MinLogsForInsights-1)
	if _, err := client.AnalyzeLogs("Alex", logs); err == nil {
		t.Error("AnalyzeLogs() with too few logs should fail")
	}

	if _, err := client.Chat("any trend?", logs); err == nil {
		t.Error("Chat() with too few logs should fail")
	}
}
