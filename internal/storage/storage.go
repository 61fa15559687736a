// ABOUTME: Storage facade owning the journal's single SQLite handle
// ABOUTME: Opens once per process, runs the orphan-log migration, delegates to stores
package storage

import (
	"fmt"

	"github.com/flagbook/flagbook/internal/models"
	"github.com/flagbook/flagbook/internal/storage/sqlite"
)

// Storage manages all persistent data for the flagbook journal. It is
// the explicitly owned database resource: opened at startup, passed by
// reference to everything that needs persistence, closed at shutdown.
type Storage struct {
	db       *sqlite.DB
	profiles *sqlite.ProfileStore
	logs     *sqlite.LogStore
}

// NewStorage initializes storage at the default XDG path
func NewStorage() (*Storage, error) {
	return NewStorageWithPath(sqlite.DefaultDBPath())
}

// NewStorageWithPath initializes storage with a custom database path.
// The orphan-log migration runs here, before any user action is served;
// it is idempotent and a no-op on fully-migrated databases.
func NewStorageWithPath(dbPath string) (*Storage, error) {
	db, err := sqlite.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := sqlite.LinkOrphanLogs(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate orphan logs: %w", err)
	}

	return &Storage{
		db:       db,
		profiles: sqlite.NewProfileStore(db),
		logs:     sqlite.NewLogStore(db),
	}, nil
}

// NewStorageInMemory creates an in-memory storage (for testing)
func NewStorageInMemory() (*Storage, error) {
	db, err := sqlite.OpenInMemory()
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory database: %w", err)
	}

	return &Storage{
		db:       db,
		profiles: sqlite.NewProfileStore(db),
		logs:     sqlite.NewLogStore(db),
	}, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Path returns the database file path
func (s *Storage) Path() string {
	return s.db.Path()
}

// CreateProfile creates a new profile. Fails with sqlite.ErrDuplicateName
// if the name is already taken.
func (s *Storage) CreateProfile(name, relationship string) (*models.Profile, error) {
	profile, err := models.NewProfile(name, relationship)
	if err != nil {
		return nil, err
	}
	if err := s.profiles.Create(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// EnsureProfile returns the profile with the given name, creating it
// with the default relationship if it does not exist yet. Filing a flag
// against a new name creates the profile implicitly through this path.
func (s *Storage) EnsureProfile(name string) (*models.Profile, error) {
	profile, err := s.profiles.GetByName(name)
	if err != nil {
		return nil, err
	}
	if profile != nil {
		return profile, nil
	}
	return s.CreateProfile(name, models.DefaultRelationship)
}

// GetProfile retrieves a profile by ID, returning nil if not found
func (s *Storage) GetProfile(profileID string) (*models.Profile, error) {
	return s.profiles.GetByID(profileID)
}

// GetProfileByName retrieves a profile by name, returning nil if not found
func (s *Storage) GetProfileByName(name string) (*models.Profile, error) {
	return s.profiles.GetByName(name)
}

// ListProfiles retrieves all profiles ordered by name
func (s *Storage) ListProfiles() ([]models.Profile, error) {
	return s.profiles.List()
}

// UpdateProfile applies a partial profile update
func (s *Storage) UpdateProfile(profileID string, upd sqlite.ProfileUpdate) error {
	return s.profiles.Update(profileID, upd)
}

// DeleteProfile removes a profile and detaches its logs
func (s *Storage) DeleteProfile(profileID string) error {
	return s.profiles.Delete(profileID)
}

// CountProfiles returns the number of profiles
func (s *Storage) CountProfiles() (int, error) {
	return s.profiles.Count()
}

// CreateLog validates and persists a log entry
func (s *Storage) CreateLog(entry *models.LogEntry) error {
	return s.logs.Create(entry)
}

// GetLog retrieves a log entry by ID, returning nil if not found
func (s *Storage) GetLog(logID string) (*models.LogEntry, error) {
	return s.logs.GetByID(logID)
}

// ListLogs retrieves all log entries, most recent first
func (s *Storage) ListLogs() ([]models.LogEntry, error) {
	return s.logs.ListAll()
}

// ListRecentLogs retrieves the most recent log entries, bounded to limit
func (s *Storage) ListRecentLogs(limit int) ([]models.LogEntry, error) {
	return s.logs.ListRecent(limit)
}

// ListLogsForProfile retrieves a profile's logs, most recent first,
// including the legacy name-fallback path for pre-migration rows
func (s *Storage) ListLogsForProfile(profileID string) ([]models.LogEntry, error) {
	return s.logs.ListForProfile(profileID)
}

// UpdateLogNotes replaces a log entry's notes
func (s *Storage) UpdateLogNotes(logID, notes string) error {
	return s.logs.UpdateNotes(logID, notes)
}

// DeleteLog removes a log entry
func (s *Storage) DeleteLog(logID string) error {
	return s.logs.Delete(logID)
}

// CountLogs returns the number of log entries
func (s *Storage) CountLogs() (int, error) {
	return s.logs.Count()
}

// ListPersonNames retrieves all distinct person names, alphabetically
func (s *Storage) ListPersonNames() ([]string, error) {
	return s.logs.ListPersonNames()
}

// CountLogsByProfile tallies linked logs per profile
func (s *Storage) CountLogsByProfile() ([]sqlite.ProfileLogCount, error) {
	return s.logs.CountByProfile()
}
