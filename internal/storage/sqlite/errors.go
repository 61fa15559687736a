// ABOUTME: Typed errors surfaced by the sqlite stores
// ABOUTME: Not-found is represented as (nil, nil), never as an error
package sqlite

import (
	"errors"
	"strings"
)

// ErrDuplicateName is returned when a profile write collides with an
// existing profile's name. Callers test with errors.Is.
var ErrDuplicateName = errors.New("profile name already exists")

// isUniqueViolation reports whether err is SQLite's unique-constraint
// failure. modernc.org/sqlite surfaces it as a generic error with the
// SQLITE_CONSTRAINT_UNIQUE message text.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
