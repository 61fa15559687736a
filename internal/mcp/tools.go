// ABOUTME: MCP tool definitions and registration for the flagbook server
// ABOUTME: Exposes journal operations to LLM agents over stdio
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/flagbook/flagbook/internal/billing"
	"github.com/flagbook/flagbook/internal/llm"
	"github.com/flagbook/flagbook/internal/storage"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, store *storage.Storage, entitlements billing.Entitlements, insights *llm.InsightsClient) *Handlers {
	handlers := &Handlers{
		storage:      store,
		entitlements: entitlements,
		insights:     insights,
	}

	// 1. log_flag - File a flag event against a person
	server.AddTool(mcp.Tool{
		Name:        "log_flag",
		Description: "File a flag event (GREEN/YELLOW/RED with 1-10 severity) against a person. Creates the person's profile if it does not exist yet.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"person": map[string]interface{}{
					"type":        "string",
					"description": "Name of the person the flag is about",
				},
				"type": map[string]interface{}{
					"type":        "string",
					"description": "Flag type: green, yellow, or red",
				},
				"severity": map[string]interface{}{
					"type":        "number",
					"description": "Severity from 1 (mild) to 10 (severe)",
				},
				"category": map[string]interface{}{
					"type":        "string",
					"description": "Behavior category (communication, respect, honesty, reliability, boundaries, support, other)",
					"default":     "other",
				},
				"notes": map[string]interface{}{
					"type":        "string",
					"description": "Optional free-text notes about the event",
				},
			},
			Required: []string{"person", "type", "severity"},
		},
	}, handlers.LogFlag)

	// 2. list_recent_flags - List the most recent flag events
	server.AddTool(mcp.Tool{
		Name:        "list_recent_flags",
		Description: "List the most recent flag events across all people, newest first.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"limit": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of flags to return (default: 10)",
					"default":     10,
				},
			},
		},
	}, handlers.ListRecentFlags)

	// 3. list_profiles - List all tracked people
	server.AddTool(mcp.Tool{
		Name:        "list_profiles",
		Description: "List all tracked people with their relationship categories, ordered by name.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.ListProfiles)

	// 4. get_profile_stats - Toxicity score and health for one person
	server.AddTool(mcp.Tool{
		Name:        "get_profile_stats",
		Description: "Get the toxicity score (0-100), health status, and flag tallies for a tracked person.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"name": map[string]interface{}{
					"type":        "string",
					"description": "Name of the tracked person",
				},
			},
			Required: []string{"name"},
		},
	}, handlers.GetProfileStats)

	// 5. analyze_relationship - LLM pattern analysis over a person's history
	server.AddTool(mcp.Tool{
		Name:        "analyze_relationship",
		Description: "Run AI pattern analysis over a person's flag history. Requires at least 5 logged flags and a premium subscription.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"name": map[string]interface{}{
					"type":        "string",
					"description": "Name of the tracked person",
				},
			},
			Required: []string{"name"},
		},
	}, handlers.AnalyzeRelationship)

	return handlers
}
