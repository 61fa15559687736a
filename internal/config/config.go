// ABOUTME: Centralized configuration for the flagbook journal
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/flagbook/flagbook/internal/billing"
)

// Config holds all configuration for the journal
type Config struct {
	// Storage settings
	DBPath string

	// Subscription settings
	Tier billing.Tier

	// OpenAI settings
	OpenAIKey  string
	ChatModel  string
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration

	// Insights settings
	MinLogsForInsights int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		// Defaults
		DBPath:             os.Getenv("FLAGBOOK_DB"),
		Tier:               billing.Tier(getEnv("FLAGBOOK_TIER", string(billing.TierFree))),
		OpenAIKey:          os.Getenv("OPENAI_API_KEY"),
		ChatModel:          getEnv("FLAGBOOK_OPENAI_MODEL", "gpt-4o-mini"),
		Timeout:            getEnvDuration("OPENAI_TIMEOUT", 30*time.Second),
		MaxRetries:         getEnvInt("OPENAI_MAX_RETRIES", 3),
		RetryDelay:         getEnvDuration("OPENAI_RETRY_DELAY", 2*time.Second),
		MinLogsForInsights: getEnvInt("FLAGBOOK_MIN_INSIGHT_LOGS", 5),
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	switch c.Tier {
	case billing.TierFree, billing.TierPro, billing.TierPremium:
	default:
		return fmt.Errorf("FLAGBOOK_TIER must be free, pro, or premium, got %q", c.Tier)
	}
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("OPENAI_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	if c.MinLogsForInsights < 1 {
		return fmt.Errorf("FLAGBOOK_MIN_INSIGHT_LOGS must be positive, got %d", c.MinLogsForInsights)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
