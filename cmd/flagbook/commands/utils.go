// ABOUTME: Shared utility functions for CLI commands
// ABOUTME: Storage/entitlements wiring plus small formatting helpers
package commands

import (
	"fmt"
	"time"

	"github.com/flagbook/flagbook/internal/billing"
	"github.com/flagbook/flagbook/internal/config"
	"github.com/flagbook/flagbook/internal/storage"
)

// openStorage opens the journal database honoring FLAGBOOK_DB
func openStorage(cfg *config.Config) (*storage.Storage, error) {
	if cfg.DBPath != "" {
		return storage.NewStorageWithPath(cfg.DBPath)
	}
	return storage.NewStorage()
}

// loadEnvironment loads config and opens storage plus entitlements,
// the common preamble of every command
func loadEnvironment() (*config.Config, *storage.Storage, billing.Entitlements, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading config: %w", err)
	}

	store, err := openStorage(cfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("initializing storage: %w", err)
	}

	return cfg, store, billing.NewStaticEntitlements(cfg.Tier), nil
}

// truncate shortens a string to maxLen, adding "..." if truncated
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return string(runes[:maxLen-3]) + "..."
}

// formatTime formats a time for display
func formatTime(t time.Time) string {
	now := time.Now()
	diff := now.Sub(t)

	if diff < time.Minute {
		return "just now"
	} else if diff < time.Hour {
		mins := int(diff.Minutes())
		return fmt.Sprintf("%dm ago", mins)
	} else if diff < 24*time.Hour {
		hours := int(diff.Hours())
		return fmt.Sprintf("%dh ago", hours)
	} else if diff < 7*24*time.Hour {
		days := int(diff.Hours() / 24)
		return fmt.Sprintf("%dd ago", days)
	}
	return t.Format("2006-01-02")
}

// flagGlyph renders a flag type as a colored marker
func flagGlyph(flagType string) string {
	switch flagType {
	case "GREEN":
		return "🟢"
	case "YELLOW":
		return "🟡"
	case "RED":
		return "🔴"
	}
	return "?"
}

// validatePositiveInt returns error if n is not positive
func validatePositiveInt(n int, name string) error {
	if n <= 0 {
		return fmt.Errorf("%s must be positive, got %d", name, n)
	}
	return nil
}
