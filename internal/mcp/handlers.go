// ABOUTME: MCP tool handler implementations for the flagbook server
// ABOUTME: Applies the same validation and entitlement gates as the CLI
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/flagbook/flagbook/internal/billing"
	"github.com/flagbook/flagbook/internal/llm"
	"github.com/flagbook/flagbook/internal/models"
	"github.com/flagbook/flagbook/internal/stats"
	"github.com/flagbook/flagbook/internal/storage"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	storage      *storage.Storage
	entitlements billing.Entitlements
	insights     *llm.InsightsClient // nil when no API key is configured
}

// LogFlag handles the log_flag tool
func (h *Handlers) LogFlag(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	person, err := request.RequireString("person")
	if err != nil {
		return mcp.NewToolResultError("person argument is required and must be a string"), nil
	}

	typeArg, err := request.RequireString("type")
	if err != nil {
		return mcp.NewToolResultError("type argument is required and must be a string"), nil
	}
	flagType, err := models.ParseFlagType(typeArg)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	severity := request.GetInt("severity", 0)
	category := request.GetString("category", "other")
	notes := request.GetString("notes", "")

	logCount, err := h.storage.CountLogs()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to count logs: %v", err)), nil
	}
	decision, err := h.entitlements.CanPerform(billing.ActionAddLog, logCount)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("entitlement check failed: %v", err)), nil
	}
	if !decision.Allowed {
		return mcp.NewToolResultError(decision.Reason), nil
	}

	entry, err := models.NewLogEntry(person, flagType, severity, category, notes)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	// Implicit profile creation for a new name is also gated
	existing, err := h.storage.GetProfileByName(entry.Person)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to look up profile: %v", err)), nil
	}
	if existing == nil {
		profileCount, err := h.storage.CountProfiles()
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to count profiles: %v", err)), nil
		}
		decision, err := h.entitlements.CanPerform(billing.ActionAddProfile, profileCount)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("entitlement check failed: %v", err)), nil
		}
		if !decision.Allowed {
			return mcp.NewToolResultError(decision.Reason), nil
		}
	}

	profile, err := h.storage.EnsureProfile(entry.Person)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to resolve profile: %v", err)), nil
	}
	entry.ProfileID = profile.ProfileID

	if err := h.storage.CreateLog(entry); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to store flag: %v", err)), nil
	}

	response := map[string]interface{}{
		"log_id":     entry.LogID,
		"profile_id": profile.ProfileID,
		"person":     entry.Person,
		"type":       entry.Type,
		"severity":   entry.Severity,
	}
	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}

// ListRecentFlags handles the list_recent_flags tool
func (h *Handlers) ListRecentFlags(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := request.GetInt("limit", 10)
	if limit <= 0 {
		limit = 10
	}

	logs, err := h.storage.ListRecentLogs(limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list flags: %v", err)), nil
	}

	responseJSON, err := json.Marshal(map[string]interface{}{
		"count": len(logs),
		"flags": logs,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}

// ListProfiles handles the list_profiles tool
func (h *Handlers) ListProfiles(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	profiles, err := h.storage.ListProfiles()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list profiles: %v", err)), nil
	}

	responseJSON, err := json.Marshal(map[string]interface{}{
		"count":    len(profiles),
		"profiles": profiles,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}

// GetProfileStats handles the get_profile_stats tool
func (h *Handlers) GetProfileStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name argument is required and must be a string"), nil
	}

	profile, err := h.storage.GetProfileByName(name)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to look up profile: %v", err)), nil
	}
	if profile == nil {
		return mcp.NewToolResultError(fmt.Sprintf("no profile named %q", name)), nil
	}

	profileStats, err := stats.ComputeProfileStats(h.storage, profile.ProfileID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to compute stats: %v", err)), nil
	}

	responseJSON, err := json.Marshal(profileStats)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}

// AnalyzeRelationship handles the analyze_relationship tool
func (h *Handlers) AnalyzeRelationship(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name argument is required and must be a string"), nil
	}

	decision, err := h.entitlements.CanPerform(billing.ActionInsights, 0)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("entitlement check failed: %v", err)), nil
	}
	if !decision.Allowed {
		return mcp.NewToolResultError(decision.Reason), nil
	}

	if h.insights == nil {
		return mcp.NewToolResultError("AI insights are unavailable: OPENAI_API_KEY is not set"), nil
	}

	profile, err := h.storage.GetProfileByName(name)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to look up profile: %v", err)), nil
	}
	if profile == nil {
		return mcp.NewToolResultError(fmt.Sprintf("no profile named %q", name)), nil
	}

	logs, err := h.storage.ListLogsForProfile(profile.ProfileID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list logs: %v", err)), nil
	}

	insights, err := h.insights.AnalyzeLogs(profile.Name, logs)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	responseJSON, err := json.Marshal(insights)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}
