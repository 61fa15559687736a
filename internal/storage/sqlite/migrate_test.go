// ABOUTME: Tests for the orphan-log migration
// ABOUTME: Verifies linking, profile synthesis, and idempotence
package sqlite

import (
	"fmt"
	"testing"
	"time"

	"github.com/flagbook/flagbook/internal/models"
)

func TestLinkOrphanLogs_EmptyDatabase(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	linked, err := LinkOrphanLogs(db)
	if err != nil {
		t.Fatalf("LinkOrphanLogs() error = %v", err)
	}
	if linked != 0 {
		t.Errorf("linked = %d, want 0", linked)
	}
}

func TestLinkOrphanLogs_CreatesProfiles(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	logs := NewLogStore(db)
	profiles := NewProfileStore(db)

	now := time.Now().UTC()
	orphans := []struct {
		id     string
		person string
	}{
		{"log_1", "Alex"},
		{"log_2", "Alex"},
		{"log_3", "Blake"},
	}
	for _, o := range orphans {
		if err := logs.Create(testEntry(o.id, o.person, "", models.FlagRed, 6, now)); err != nil {
			t.Fatalf("Create log error = %v", err)
		}
	}

	linked, err := LinkOrphanLogs(db)
	if err != nil {
		t.Fatalf("LinkOrphanLogs() error = %v", err)
	}
	if linked != 3 {
		t.Errorf("linked = %d, want 3", linked)
	}

	// One profile per distinct name, relationship Unknown
	for _, name := range []string{"Alex", "Blake"} {
		profile, err := profiles.GetByName(name)
		if err != nil {
			t.Fatalf("GetByName(%s) error = %v", name, err)
		}
		if profile == nil {
			t.Fatalf("profile %q was not created", name)
		}
		if profile.Relationship != models.DefaultRelationship {
			t.Errorf("Relationship = %q, want %q", profile.Relationship, models.DefaultRelationship)
		}
	}

	// Every row now carries its profile's id
	all, err := logs.ListAll()
	if err != nil {
		t.Fatalf("ListAll() error = %v", err)
	}
	for _, e := range all {
		if e.ProfileID == "" {
			t.Errorf("log %s still orphaned after migration", e.LogID)
		}
	}

	alex, _ := profiles.GetByName("Alex")
	alexLogs, err := logs.ListForProfileExact(alex.ProfileID)
	if err != nil {
		t.Fatalf("ListForProfileExact() error = %v", err)
	}
	if len(alexLogs) != 2 {
		t.Errorf("Alex has %d linked logs, want 2", len(alexLogs))
	}
}

func TestLinkOrphanLogs_ReusesExistingProfile(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	logs := NewLogStore(db)
	profiles := NewProfileStore(db)

	existing := &models.Profile{ProfileID: "profile_1", Name: "Alex", Relationship: "partner"}
	if err := profiles.Create(existing); err != nil {
		t.Fatalf("Create profile error = %v", err)
	}

	if err := logs.Create(testEntry("log_1", "Alex", "", models.FlagYellow, 4, time.Now().UTC())); err != nil {
		t.Fatalf("Create log error = %v", err)
	}

	linked, err := LinkOrphanLogs(db)
	if err != nil {
		t.Fatalf("LinkOrphanLogs() error = %v", err)
	}
	if linked != 1 {
		t.Errorf("linked = %d, want 1", linked)
	}

	// No second profile; the relationship stays as recorded
	n, _ := profiles.Count()
	if n != 1 {
		t.Errorf("profile count = %d, want 1", n)
	}
	profile, _ := profiles.GetByName("Alex")
	if profile.Relationship != "partner" {
		t.Errorf("Relationship = %q, want partner", profile.Relationship)
	}

	entry, _ := logs.GetByID("log_1")
	if entry.ProfileID != "profile_1" {
		t.Errorf("ProfileID = %q, want profile_1", entry.ProfileID)
	}
}

func TestLinkOrphanLogs_Idempotent(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	logs := NewLogStore(db)
	profiles := NewProfileStore(db)

	now := time.Now().UTC()
	for i := 0; i < 4; i++ {
		if err := logs.Create(testEntry(fmt.Sprintf("log_%d", i), "Alex", "", models.FlagRed, 5, now)); err != nil {
			t.Fatalf("Create log error = %v", err)
		}
	}

	first, err := LinkOrphanLogs(db)
	if err != nil {
		t.Fatalf("first LinkOrphanLogs() error = %v", err)
	}
	if first != 4 {
		t.Errorf("first run linked = %d, want 4", first)
	}

	profilesAfterFirst, _ := profiles.Count()
	alex, _ := profiles.GetByName("Alex")

	// Running twice is equivalent to running once
	second, err := LinkOrphanLogs(db)
	if err != nil {
		t.Fatalf("second LinkOrphanLogs() error = %v", err)
	}
	if second != 0 {
		t.Errorf("second run linked = %d, want 0", second)
	}

	profilesAfterSecond, _ := profiles.Count()
	if profilesAfterSecond != profilesAfterFirst {
		t.Errorf("profile count changed on re-run: %d -> %d", profilesAfterFirst, profilesAfterSecond)
	}
	alexAgain, _ := profiles.GetByName("Alex")
	if alexAgain.ProfileID != alex.ProfileID {
		t.Error("re-run replaced the synthesized profile")
	}
}

func TestLinkOrphanLogs_MixedLinkedAndOrphan(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	logs := NewLogStore(db)
	profiles := NewProfileStore(db)

	if err := profiles.Create(&models.Profile{ProfileID: "profile_1", Name: "Alex", Relationship: "partner"}); err != nil {
		t.Fatalf("Create profile error = %v", err)
	}

	now := time.Now().UTC()
	if err := logs.Create(testEntry("log_linked", "Alex", "profile_1", models.FlagGreen, 3, now)); err != nil {
		t.Fatalf("Create log error = %v", err)
	}
	if err := logs.Create(testEntry("log_orphan", "Blake", "", models.FlagRed, 7, now)); err != nil {
		t.Fatalf("Create log error = %v", err)
	}

	linked, err := LinkOrphanLogs(db)
	if err != nil {
		t.Fatalf("LinkOrphanLogs() error = %v", err)
	}
	if linked != 1 {
		t.Errorf("linked = %d, want 1 (only the orphan)", linked)
	}

	// The already-linked row keeps its reference
	entry, _ := logs.GetByID("log_linked")
	if entry.ProfileID != "profile_1" {
		t.Errorf("linked row ProfileID = %q, want profile_1", entry.ProfileID)
	}
}
