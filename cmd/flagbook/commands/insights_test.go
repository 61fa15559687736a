// ABOUTME: Tests for the insights command structure
// ABOUTME: Verifies the ask flag and argument validation

package commands

import (
	"testing"
)

func TestNewInsightsCmd(t *testing.T) {
	cmd := NewInsightsCmd()

	if cmd.Use != "insights <person>" {
		t.Errorf("Use = %q, want %q", cmd.Use, "insights <person>")
	}

	if cmd.Short == "" {
		t.Error("Short description should not be empty")
	}

	if cmd.Long == "" {
		t.Error("Long description should not be empty")
	}
}

func TestInsightsCmd_Flags(t *testing.T) {
	cmd := NewInsightsCmd()

	flag := cmd.Flags().Lookup("ask")
	if flag == nil {
		t.Fatal("--ask flag not found")
	}
	if flag.DefValue != "" {
		t.Errorf("--ask default = %q, want empty", flag.DefValue)
	}
}

func TestInsightsCmd_ArgsValidation(t *testing.T) {
	cmd := NewInsightsCmd()

	if cmd.Args == nil {
		t.Fatal("Args validator should be set")
	}
	if err := cmd.Args(cmd, []string{"Alex"}); err != nil {
		t.Errorf("one arg should be accepted: %v", err)
	}
	if err := cmd.Args(cmd, []string{}); err == nil {
		t.Error("zero args should be rejected")
	}
}
