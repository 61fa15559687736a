// ABOUTME: Tests for MCP tool registration
// ABOUTME: Verifies handlers are wired with their collaborators
package mcp

import (
	"testing"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/flagbook/flagbook/internal/billing"
	"github.com/flagbook/flagbook/internal/storage"
)

func TestRegisterTools(t *testing.T) {
	store, err := storage.NewStorageInMemory()
	if err != nil {
		t.Fatalf("NewStorageInMemory() error = %v", err)
	}
	defer func() { _ = store.Close() }()

	server := mcpserver.NewMCPServer("test", "0.0.1")
	entitlements := billing.NewStaticEntitlements(billing.TierFree)

	handlers := RegisterTools(server, store, entitlements, nil)
	if handlers == nil {
		t.Fatal("RegisterTools() returned nil")
	}
	if handlers.storage != store {
		t.Error("handlers should hold the storage instance")
	}
	if handlers.entitlements != entitlements {
		t.Error("handlers should hold the entitlements instance")
	}
	if handlers.insights != nil {
		t.Error("insights should stay nil without a client")
	}
}
