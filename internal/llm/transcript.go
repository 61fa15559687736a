// ABOUTME: Deterministic log transcript formatting for LLM prompts
// ABOUTME: Pure string building; testable without a network
package llm

import (
	"fmt"
	"strings"

	"github.com/flagbook/flagbook/internal/models"
)

// MinLogsForInsights is the minimum log history required before any
// analysis call is made
const MinLogsForInsights = 5

// FormatTranscript renders a log history as the plain-text transcript
// supplied to the model, oldest entry first.
func FormatTranscript(logs []models.LogEntry) string {
	var b strings.Builder

	for i := len(logs) - 1; i >= 0; i-- {
		entry := logs[i]
		b.WriteString(fmt.Sprintf("[%s] %s flag, severity %d/10, category %s",
			entry.Timestamp.Format("2006-01-02"), entry.Type, entry.Severity, entry.Category))
		if entry.Notes != "" {
			b.WriteString(fmt.Sprintf(": %s", entry.Notes))
		}
		b.WriteString("\n")
	}

	return b.String()
}
