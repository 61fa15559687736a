// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Enables LLM agents like Claude to use the journal via stdio
package commands

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/flagbook/flagbook/internal/llm"
	"github.com/flagbook/flagbook/internal/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs flagbook as an MCP (Model Context Protocol) server, enabling
LLM agents like Claude to file and query flags via stdio.`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically called by an MCP client)
  flagbook mcp

  # Configure in claude_desktop_config.json:
  # {
  #   "mcpServers": {
  #     "flagbook": {
  #       "command": "flagbook",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}
}

// runMCP starts the MCP server
func runMCP(cmd *cobra.Command, args []string) error {
	// Load .env file if it exists (for API keys)
	if err := godotenv.Load(); err != nil && verbose {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	cfg, store, entitlements, err := loadEnvironment()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	// Insights are optional: tools degrade gracefully without a key
	var insights *llm.InsightsClient
	if cfg.OpenAIKey != "" {
		insights, err = llm.NewInsightsClientWithConfig(&llm.ClientConfig{
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
	} else if !quiet {
		log.Println("Warning: OPENAI_API_KEY not set - analyze_relationship will be unavailable")
	}

	server := mcpserver.NewMCPServer(
		"Flagbook Journal",
		"0.1.0",
	)

	mcp.RegisterTools(server, store, entitlements, insights)

	if !quiet {
		log.Println("Flagbook MCP server starting on stdio...")
	}
	if err := mcpserver.ServeStdio(server); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
