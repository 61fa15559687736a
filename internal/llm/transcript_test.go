// ABOUTME: Tests for transcript formatting supplied to the model
// ABOUTME: Verifies chronological ordering and line structure
package llm

import (
	"strings"
	"testing"
	"time"

	"github.com/flagbook/flagbook/internal/models"
)

func TestFormatTranscript(t *testing.T) {
	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	// Storage order is most recent first; the transcript reverses it
	logs := []models.LogEntry{
		{LogID: "log_2", Timestamp: base.AddDate(0, 0, 1), Person: "Alex", Type: models.FlagRed, Severity: 8, Category: "respect", Notes: "dismissed my concern"},
		{LogID: "log_1", Timestamp: base, Person: "Alex", Type: models.FlagGreen, Severity: 5, Category: "support"},
	}

	got := FormatTranscript(logs)
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("transcript has %d lines, want 2", len(lines))
	}

	// Oldest first
	if !strings.HasPrefix(lines[0], "[2026-03-10] GREEN flag, severity 5/10, category support") {
		t.Errorf("lines[0] = %q", lines[0])
	}
	if lines[1] != "[2026-03-11] RED flag, severity 8/10, category respect: dismissed my concern" {
		t.Errorf("lines[1] = %q", lines[1])
	}

	// Notes are omitted, not rendered empty
	if strings.Contains(lines[0], ":") && strings.Contains(lines[0], "support:") {
		t.Errorf("empty notes should not render a trailing colon: %q", lines[0])
	}
}

func TestFormatTranscript_Empty(t *testing.T) {
	if got := FormatTranscript(nil); got != "" {
		t.Errorf("FormatTranscript(nil) = %q, want empty", got)
	}
}

func TestMinLogsForInsights(t *testing.T) {
	if MinLogsForInsights != 5 {
		t.Errorf("MinLogsForInsights = %d, want 5", MinLogsForInsights)
	}
}
