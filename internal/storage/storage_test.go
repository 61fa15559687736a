// ABOUTME: Tests for the storage facade
// ABOUTME: Verifies delegation, implicit profile creation, and lifecycle
package storage

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/flagbook/flagbook/internal/models"
	"github.com/flagbook/flagbook/internal/storage/sqlite"
)

func TestStorageLifecycle(t *testing.T) {
	store, err := NewStorageInMemory()
	if err != nil {
		t.Fatalf("NewStorageInMemory() error = %v", err)
	}

	profile, err := store.CreateProfile("Alex", "partner")
	if err != nil {
		t.Fatalf("CreateProfile() error = %v", err)
	}

	entry, err := models.NewLogEntry("Alex", models.FlagRed, 8, "respect", "raised voice")
	if err != nil {
		t.Fatalf("NewLogEntry() error = %v", err)
	}
	entry.ProfileID = profile.ProfileID
	if err := store.CreateLog(entry); err != nil {
		t.Fatalf("CreateLog() error = %v", err)
	}

	logs, err := store.ListLogsForProfile(profile.ProfileID)
	if err != nil {
		t.Fatalf("ListLogsForProfile() error = %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("ListLogsForProfile() returned %d entries, want 1", len(logs))
	}

	if err := store.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestStorageCreateProfile_Duplicate(t *testing.T) {
	store, err := NewStorageInMemory()
	if err != nil {
		t.Fatalf("NewStorageInMemory() error = %v", err)
	}
	defer func() { _ = store.Close() }()

	if _, err := store.CreateProfile("Alex", "partner"); err != nil {
		t.Fatalf("CreateProfile() error = %v", err)
	}
	_, err = store.CreateProfile("Alex", "friend")
	if !errors.Is(err, sqlite.ErrDuplicateName) {
		t.Errorf("duplicate CreateProfile() error = %v, want ErrDuplicateName", err)
	}
}

func TestStorageEnsureProfile(t *testing.T) {
	store, err := NewStorageInMemory()
	if err != nil {
		t.Fatalf("NewStorageInMemory() error = %v", err)
	}
	defer func() { _ = store.Close() }()

	// First call creates with the default relationship
	created, err := store.EnsureProfile("Alex")
	if err != nil {
		t.Fatalf("EnsureProfile() error = %v", err)
	}
	if created.Relationship != models.DefaultRelationship {
		t.Errorf("Relationship = %q, want %q", created.Relationship, models.DefaultRelationship)
	}

	// Second call returns the same profile
	again, err := store.EnsureProfile("Alex")
	if err != nil {
		t.Fatalf("EnsureProfile() second call error = %v", err)
	}
	if again.ProfileID != created.ProfileID {
		t.Errorf("EnsureProfile() created a duplicate: %q vs %q", again.ProfileID, created.ProfileID)
	}

	n, _ := store.CountProfiles()
	if n != 1 {
		t.Errorf("CountProfiles() = %d, want 1", n)
	}
}

func TestNewStorageWithPath_RunsMigration(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "flagbook.db")

	// Seed a database with an orphan row, then reopen through the facade
	db, err := sqlite.Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	logs := sqlite.NewLogStore(db)
	entry := &models.LogEntry{
		LogID:     "log_old",
		Timestamp: time.Now().UTC(),
		Person:    "Alex",
		Type:      models.FlagYellow,
		Severity:  5,
		Category:  "communication",
	}
	if err := logs.Create(entry); err != nil {
		t.Fatalf("Create log error = %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	store, err := NewStorageWithPath(path)
	if err != nil {
		t.Fatalf("NewStorageWithPath() error = %v", err)
	}
	defer func() { _ = store.Close() }()

	// The orphan was linked to a synthesized profile on open
	profile, err := store.GetProfileByName("Alex")
	if err != nil {
		t.Fatalf("GetProfileByName() error = %v", err)
	}
	if profile == nil {
		t.Fatal("migration did not create a profile for the orphan row")
	}
	migrated, err := store.GetLog("log_old")
	if err != nil {
		t.Fatalf("GetLog() error = %v", err)
	}
	if migrated.ProfileID != profile.ProfileID {
		t.Errorf("ProfileID = %q, want %q", migrated.ProfileID, profile.ProfileID)
	}
}

func TestStorageDeleteProfile_KeepsLogs(t *testing.T) {
	store, err := NewStorageInMemory()
	if err != nil {
		t.Fatalf("NewStorageInMemory() error = %v", err)
	}
	defer func() { _ = store.Close() }()

	profile, err := store.CreateProfile("Alex", "partner")
	if err != nil {
		t.Fatalf("CreateProfile() error = %v", err)
	}

	entry, _ := models.NewLogEntry("Alex", models.FlagGreen, 6, "support", "")
	entry.ProfileID = profile.ProfileID
	if err := store.CreateLog(entry); err != nil {
		t.Fatalf("CreateLog() error = %v", err)
	}

	if err := store.DeleteProfile(profile.ProfileID); err != nil {
		t.Fatalf("DeleteProfile() error = %v", err)
	}

	n, _ := store.CountLogs()
	if n != 1 {
		t.Errorf("CountLogs() = %d after profile delete, want 1", n)
	}
	kept, _ := store.GetLog(entry.LogID)
	if kept.ProfileID != "" {
		t.Errorf("ProfileID = %q, want detached", kept.ProfileID)
	}
}
