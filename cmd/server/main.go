// ABOUTME: Main entry point for the flagbook MCP server with stdio transport
// ABOUTME: Initializes storage, entitlements, and MCP server with all tools
package main

import (
	"log"

	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/flagbook/flagbook/internal/billing"
	"github.com/flagbook/flagbook/internal/config"
	"github.com/flagbook/flagbook/internal/llm"
	"github.com/flagbook/flagbook/internal/mcp"
	"github.com/flagbook/flagbook/internal/storage"
)

func main() {
	// Load .env file if it exists (for API keys)
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize storage with XDG-compliant paths
	var store *storage.Storage
	if cfg.DBPath != "" {
		store, err = storage.NewStorageWithPath(cfg.DBPath)
	} else {
		store, err = storage.NewStorage()
	}
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	defer func() { _ = store.Close() }()

	entitlements := billing.NewStaticEntitlements(cfg.Tier)

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
			log.Fatalf("Failed to initialize AI client: %v", err)
		}
	} else {
		log.Println("Warning: OPENAI_API_KEY not set - analyze_relationship will be unavailable")
	}

	// Create MCP server
	server := mcpserver.NewMCPServer(
		"Flagbook Journal",
		"0.1.0",
	)

	// Register MCP tools
	mcp.RegisterTools(server, store, entitlements, insights)

	// Start server with stdio transport
	log.Println("Flagbook MCP server starting on stdio...")
	if err := mcpserver.ServeStdio(server); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
