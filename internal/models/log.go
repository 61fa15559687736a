// ABOUTME: LogEntry represents a single observed behavior event
// ABOUTME: Core data structure for the flagbook journal
package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FlagType is the polarity of a logged behavior
type FlagType string

const (
	FlagGreen  FlagType = "GREEN"
	FlagYellow FlagType = "YELLOW"
	FlagRed    FlagType = "RED"
)

// Severity bounds for a log entry
const (
	MinSeverity = 1
	MaxSeverity = 10
)

// Categories offered by the CLI. Free-text categories are accepted at
// the storage layer; this list is the curated default set.
var Categories = []string{
	"communication",
	"respect",
	"honesty",
	"reliability",
	"boundaries",
	"support",
	"other",
}

// LogEntry represents a single flag event filed against a person.
// ProfileID is empty for rows written before profiles existed or after
// the owning profile was deleted; Person is always present.
type LogEntry struct {
	LogID     string    `json:"log_id"`
	Timestamp time.Time `json:"timestamp"`
	Person    string    `json:"person"`
	ProfileID string    `json:"profile_id,omitempty"`
	Type      FlagType  `json:"type"`
	Severity  int       `json:"severity"`
	Category  string    `json:"category"`
	Notes     string    `json:"notes,omitempty"`
}

// NewLogEntry creates a new LogEntry with validation
func NewLogEntry(person string, flagType FlagType, severity int, category, notes string) (*LogEntry, error) {
	entry := &LogEntry{
		LogID:     generateLogID(),
		Timestamp: time.Now().UTC(),
		Person:    strings.TrimSpace(person),
		Type:      flagType,
		Severity:  severity,
		Category:  category,
		Notes:     notes,
	}
	if err := entry.Validate(); err != nil {
		return nil, err
	}
	return entry, nil
}

// Validate checks the log entry invariants
func (e *LogEntry) Validate() error {
	if strings.TrimSpace(e.Person) == "" {
		return errors.New("person name cannot be empty")
	}
	if !ValidFlagType(e.Type) {
		return fmt.Errorf("invalid flag type %q: must be GREEN, YELLOW, or RED", e.Type)
	}
	if e.Severity < MinSeverity || e.Severity > MaxSeverity {
		return fmt.Errorf("severity must be %d-%d, got %d", MinSeverity, MaxSeverity, e.Severity)
	}
	return nil
}

// ValidFlagType reports whether t is one of the three flag types
func ValidFlagType(t FlagType) bool {
	switch t {
	case FlagGreen, FlagYellow, FlagRed:
		return true
	}
	return false
}

// ParseFlagType converts user input like "red" or "YELLOW" to a FlagType
func ParseFlagType(s string) (FlagType, error) {
	t := FlagType(strings.ToUpper(strings.TrimSpace(s)))
	if !ValidFlagType(t) {
		return "", fmt.Errorf("invalid flag type %q: must be green, yellow, or red", s)
	}
	return t, nil
}

// generateLogID generates a unique log identifier
func generateLogID() string {
	return fmt.Sprintf("log_%s_%s", time.Now().Format("20060102_150405"), uuid.New().String()[:8])
}
