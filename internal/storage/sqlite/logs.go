// ABOUTME: Log entry storage operations for SQLite
// ABOUTME: Validates entries before persisting; CHECK constraints are a backstop
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/flagbook/flagbook/internal/models"
)

// LogStore handles log entry persistence
type LogStore struct {
	db *DB
}

// NewLogStore creates a new LogStore
func NewLogStore(db *DB) *LogStore {
	return &LogStore{db: db}
}

// ProfileLogCount is a per-profile flag tally
type ProfileLogCount struct {
	ProfileID string `json:"profile_id"`
	Name      string `json:"name"`
	FlagCount int    `json:"flag_count"`
}

// Create validates and persists a log entry. Invalid severity, flag type
// or empty person name fail the write before anything touches the database.
func (s *LogStore) Create(entry *models.LogEntry) error {
	if err := entry.Validate(); err != nil {
		return fmt.Errorf("invalid log entry: %w", err)
	}

	timestamp := entry.Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now().UTC()
	}

	_, err := s.db.Exec(`
		INSERT INTO logs (id, timestamp, person, profile_id, type, severity, category, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, entry.LogID, timestamp, entry.Person, nullString(entry.ProfileID),
		string(entry.Type), entry.Severity, entry.Category, nullString(entry.Notes))

	return err
}

// GetByID retrieves a log entry by its ID, returning nil if not found
func (s *LogStore) GetByID(logID string) (*models.LogEntry, error) {
	rows, err := s.db.Query(`
		SELECT id, timestamp, person, profile_id, type, severity, category, notes
		FROM logs
		WHERE id = ?
	`, logID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	entries, err := s.scanLogs(rows)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}
	return &entries[0], nil
}

// ListAll retrieves all log entries, most recent first
func (s *LogStore) ListAll() ([]models.LogEntry, error) {
	rows, err := s.db.Query(`
		SELECT id, timestamp, person, profile_id, type, severity, category, notes
		FROM logs
		ORDER BY timestamp DESC
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	return s.scanLogs(rows)
}

// ListRecent retrieves the most recent log entries, bounded to limit
func (s *LogStore) ListRecent(limit int) ([]models.LogEntry, error) {
	rows, err := s.db.Query(`
		SELECT id, timestamp, person, profile_id, type, severity, category, notes
		FROM logs
		ORDER BY timestamp DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	return s.scanLogs(rows)
}

// ListForProfile retrieves a profile's logs, most recent first.
//
// Legacy shim: the primary lookup is by profile id. If and only if that
// yields zero rows, it falls back to an exact person-name match to serve
// rows written before profiles existed. This is a migration-era
// compatibility path, not a dual-indexing strategy; it can surface
// another profile's history when a fully-migrated, genuinely log-less
// profile shares a person name with old rows (see ListForProfileExact).
func (s *LogStore) ListForProfile(profileID string) ([]models.LogEntry, error) {
	entries, err := s.ListForProfileExact(profileID)
	if err != nil {
		return nil, err
	}
	if len(entries) > 0 {
		return entries, nil
	}

	// Zero rows by id: fall back to the profile's current name.
	var name string
	err = s.db.QueryRow("SELECT name FROM profiles WHERE id = ?", profileID).Scan(&name)
	if err == sql.ErrNoRows {
		return entries, nil
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(`
		SELECT id, timestamp, person, profile_id, type, severity, category, notes
		FROM logs
		WHERE person = ?
		ORDER BY timestamp DESC
	`, name)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	return s.scanLogs(rows)
}

// ListForProfileExact retrieves a profile's logs by profile id only,
// without the legacy name fallback.
func (s *LogStore) ListForProfileExact(profileID string) ([]models.LogEntry, error) {
	rows, err := s.db.Query(`
		SELECT id, timestamp, person, profile_id, type, severity, category, notes
		FROM logs
		WHERE profile_id = ?
		ORDER BY timestamp DESC
	`, profileID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	return s.scanLogs(rows)
}

// UpdateNotes replaces a log entry's notes. Notes are the only field
// that may change after creation.
func (s *LogStore) UpdateNotes(logID, notes string) error {
	_, err := s.db.Exec("UPDATE logs SET notes = ? WHERE id = ?", nullString(notes), logID)
	return err
}

// Delete removes a log entry. No cascading effects.
func (s *LogStore) Delete(logID string) error {
	_, err := s.db.Exec("DELETE FROM logs WHERE id = ?", logID)
	return err
}

// Count returns the number of log entries
func (s *LogStore) Count() (int, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM logs").Scan(&n)
	return n, err
}

// ListPersonNames retrieves all distinct person names, alphabetically
func (s *LogStore) ListPersonNames() ([]string, error) {
	rows, err := s.db.Query("SELECT DISTINCT person FROM logs ORDER BY person ASC")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// CountByProfile tallies linked logs per profile, descending by count
// with ties broken by profile id. Profiles with zero logs are excluded;
// orphan rows (profile_id NULL) are not counted.
func (s *LogStore) CountByProfile() ([]ProfileLogCount, error) {
	rows, err := s.db.Query(`
		SELECT p.id, p.name, COUNT(l.id) AS flag_count
		FROM profiles p
		JOIN logs l ON l.profile_id = p.id
		GROUP BY p.id, p.name
		ORDER BY flag_count DESC, p.id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var counts []ProfileLogCount
	for rows.Next() {
		var c ProfileLogCount
		if err := rows.Scan(&c.ProfileID, &c.Name, &c.FlagCount); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// scanLogs scans rows into a slice of LogEntry
func (s *LogStore) scanLogs(rows *sql.Rows) ([]models.LogEntry, error) {
	var entries []models.LogEntry

	for rows.Next() {
		var (
			entry     models.LogEntry
			flagType  string
			profileID sql.NullString
			notes     sql.NullString
		)

		err := rows.Scan(&entry.LogID, &entry.Timestamp, &entry.Person, &profileID,
			&flagType, &entry.Severity, &entry.Category, &notes)
		if err != nil {
			return nil, err
		}

		entry.Type = models.FlagType(flagType)
		if profileID.Valid {
			entry.ProfileID = profileID.String
		}
		if notes.Valid {
			entry.Notes = notes.String
		}

		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// nullString converts an empty string to sql.NullString
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}
