// ABOUTME: Tests for database connection and schema initialization
// ABOUTME: Verifies table creation and CHECK constraint enforcement
package sqlite

import (
	"path/filepath"
	"testing"
)

func TestOpenInMemory(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	if db.Path() != ":memory:" {
		t.Errorf("Path() = %q, want :memory:", db.Path())
	}

	// Schema tables exist
	for _, table := range []string{"profiles", "logs"} {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&name)
		if err != nil {
			t.Errorf("table %q not created: %v", table, err)
		}
	}
}

func TestOpen_CreatesDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "data", "flagbook.db")

	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	if db.Path() != path {
		t.Errorf("Path() = %q, want %q", db.Path(), path)
	}
}

func TestSchema_CheckConstraints(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	// Raw inserts bypass model validation; the schema is the backstop
	_, err = db.Exec(`
		INSERT INTO logs (id, timestamp, person, type, severity, category)
		VALUES ('log_bad_type', CURRENT_TIMESTAMP, 'Alex', 'BLUE', 5, 'other')
	`)
	if err == nil {
		t.Error("insert with invalid flag type should violate CHECK constraint")
	}

	_, err = db.Exec(`
		INSERT INTO logs (id, timestamp, person, type, severity, category)
		VALUES ('log_bad_sev', CURRENT_TIMESTAMP, 'Alex', 'RED', 11, 'other')
	`)
	if err == nil {
		t.Error("insert with severity 11 should violate CHECK constraint")
	}
}

func TestSchema_UniqueProfileName(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	_, err = db.Exec(`INSERT INTO profiles (id, name, relationship) VALUES ('profile_1', 'Alex', 'partner')`)
	if err != nil {
		t.Fatalf("first insert error = %v", err)
	}

	_, err = db.Exec(`INSERT INTO profiles (id, name, relationship) VALUES ('profile_2', 'Alex', 'friend')`)
	if err == nil {
		t.Error("duplicate name should violate UNIQUE constraint")
	}
	if !isUniqueViolation(err) {
		t.Errorf("isUniqueViolation() = false for %v", err)
	}
}
