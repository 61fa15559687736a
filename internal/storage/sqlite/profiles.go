// ABOUTME: Profile storage operations for SQLite
// ABOUTME: Enforces name uniqueness and transactional detach-on-delete
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/flagbook/flagbook/internal/models"
)

// ProfileStore handles profile persistence
type ProfileStore struct {
	db *DB
}

// NewProfileStore creates a new ProfileStore
func NewProfileStore(db *DB) *ProfileStore {
	return &ProfileStore{db: db}
}

// ProfileUpdate describes a partial update; nil fields are left untouched
type ProfileUpdate struct {
	Name         *string
	Relationship *string
}

// Create persists a new profile. Returns ErrDuplicateName if a profile
// with the same name already exists.
func (s *ProfileStore) Create(profile *models.Profile) error {
	createdAt := profile.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.db.Exec(`
		INSERT INTO profiles (id, name, relationship, created_at)
		VALUES (?, ?, ?, ?)
	`, profile.ProfileID, profile.Name, profile.Relationship, createdAt)

	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %q", ErrDuplicateName, profile.Name)
	}
	return err
}

// GetByID retrieves a profile by its ID, returning nil if not found
func (s *ProfileStore) GetByID(profileID string) (*models.Profile, error) {
	return s.getOne(`
		SELECT id, name, relationship, created_at
		FROM profiles
		WHERE id = ?
	`, profileID)
}

// GetByName retrieves a profile by its exact name, returning nil if not found
func (s *ProfileStore) GetByName(name string) (*models.Profile, error) {
	return s.getOne(`
		SELECT id, name, relationship, created_at
		FROM profiles
		WHERE name = ?
	`, name)
}

// List retrieves all profiles ordered by name ascending
func (s *ProfileStore) List() ([]models.Profile, error) {
	rows, err := s.db.Query(`
		SELECT id, name, relationship, created_at
		FROM profiles
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var profiles []models.Profile
	for rows.Next() {
		var p models.Profile
		if err := rows.Scan(&p.ProfileID, &p.Name, &p.Relationship, &p.CreatedAt); err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

// Update applies a partial update. Supplying no fields is a successful
// no-op. A rename that collides with another profile's name returns
// ErrDuplicateName and leaves the row unchanged.
func (s *ProfileStore) Update(profileID string, upd ProfileUpdate) error {
	set := ""
	var args []interface{}

	if upd.Name != nil {
		set += "name = ?"
		args = append(args, *upd.Name)
	}
	if upd.Relationship != nil {
		if set != "" {
			set += ", "
		}
		set += "relationship = ?"
		args = append(args, *upd.Relationship)
	}
	if set == "" {
		return nil
	}

	args = append(args, profileID)
	_, err := s.db.Exec("UPDATE profiles SET "+set+" WHERE id = ?", args...)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %q", ErrDuplicateName, *upd.Name)
	}
	return err
}

// Delete removes a profile and detaches its logs. The log rows survive
// with profile_id cleared; both steps happen in one transaction so no
// log can end up pointing at a dangling profile id.
func (s *ProfileStore) Delete(profileID string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("UPDATE logs SET profile_id = NULL WHERE profile_id = ?", profileID); err != nil {
		return fmt.Errorf("failed to detach logs: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM profiles WHERE id = ?", profileID); err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}

	return tx.Commit()
}

// Count returns the number of profiles
func (s *ProfileStore) Count() (int, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM profiles").Scan(&n)
	return n, err
}

// getOne runs a single-row profile query, mapping no-rows to nil
func (s *ProfileStore) getOne(query string, arg interface{}) (*models.Profile, error) {
	var p models.Profile
	err := s.db.QueryRow(query, arg).Scan(&p.ProfileID, &p.Name, &p.Relationship, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
