// ABOUTME: Profile represents a tracked person in the journal
// ABOUTME: Names are unique across all profiles; logs reference profiles by id
package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Relationship categories offered by the CLI. Free text is also accepted.
var Relationships = []string{
	"partner",
	"friend",
	"family",
	"coworker",
	"other",
}

// DefaultRelationship is assigned to profiles synthesized during the
// orphan-log migration, where no relationship was ever recorded.
const DefaultRelationship = "Unknown"

// Profile represents a tracked person
type Profile struct {
	ProfileID    string    `json:"profile_id"`
	Name         string    `json:"name"`
	Relationship string    `json:"relationship"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewProfile creates a new Profile with validation
func NewProfile(name, relationship string) (*Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("profile name cannot be empty")
	}
	if relationship == "" {
		relationship = DefaultRelationship
	}
	return &Profile{
		ProfileID:    generateProfileID(),
		Name:         name,
		Relationship: relationship,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// generateProfileID generates a unique profile identifier
func generateProfileID() string {
	return fmt.Sprintf("profile_%s", uuid.New().String()[:8])
}
