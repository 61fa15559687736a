// ABOUTME: One-time migration linking pre-profile log rows to profiles
// ABOUTME: Idempotent; runs on every startup and no-ops once data is linked
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/flagbook/flagbook/internal/models"
)

// LinkOrphanLogs attaches log rows that predate the profile schema.
// For every distinct person name among rows with no profile reference it
// finds or creates a profile (relationship "Unknown" when created fresh)
// and links the rows by exact name match. Safe to run on every startup:
// when no orphan rows exist it returns immediately, and re-runs never
// duplicate profiles or re-touch linked rows. Returns the number of log
// rows linked.
func LinkOrphanLogs(db *DB) (int64, error) {
	var orphans int64
	err := db.QueryRow("SELECT COUNT(*) FROM logs WHERE profile_id IS NULL").Scan(&orphans)
	if err != nil {
		return 0, fmt.Errorf("failed to count orphan logs: %w", err)
	}
	if orphans == 0 {
		return 0, nil
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	rows, err := tx.Query("SELECT DISTINCT person FROM logs WHERE profile_id IS NULL")
	if err != nil {
		return 0, fmt.Errorf("failed to list orphan names: %w", err)
	}

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			_ = rows.Close()
			return 0, err
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return 0, err
	}
	_ = rows.Close()

	var linked int64
	for _, name := range names {
		var profileID string
		err := tx.QueryRow("SELECT id FROM profiles WHERE name = ?", name).Scan(&profileID)
		if err != nil && err != sql.ErrNoRows {
			return 0, fmt.Errorf("failed to look up profile %q: %w", name, err)
		}

		if err == sql.ErrNoRows {
			profile, err := models.NewProfile(name, models.DefaultRelationship)
			if err != nil {
				return 0, fmt.Errorf("failed to build profile for %q: %w", name, err)
			}
			if _, err := tx.Exec(`
				INSERT INTO profiles (id, name, relationship, created_at)
				VALUES (?, ?, ?, ?)
			`, profile.ProfileID, profile.Name, profile.Relationship, time.Now().UTC()); err != nil {
				return 0, fmt.Errorf("failed to create profile for %q: %w", name, err)
			}
			profileID = profile.ProfileID
		}

		result, err := tx.Exec(`
			UPDATE logs SET profile_id = ?
			WHERE profile_id IS NULL AND person = ?
		`, profileID, name)
		if err != nil {
			return 0, fmt.Errorf("failed to link logs for %q: %w", name, err)
		}
		n, err := result.RowsAffected()
		if err != nil {
			return 0, err
		}
		linked += n
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit migration: %w", err)
	}
	return linked, nil
}
