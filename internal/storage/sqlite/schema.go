// ABOUTME: SQLite database schema for the flagbook journal
// ABOUTME: Creates profiles and logs tables with indexes and CHECK backstops
package sqlite

// Schema contains all SQL statements for database initialization.
// CHECK constraints are a backstop; validation happens in the stores
// before any row is written.
const Schema = `
-- Tracked people
CREATE TABLE IF NOT EXISTS profiles (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    relationship TEXT NOT NULL DEFAULT 'Unknown',
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Flag events. profile_id is nullable: rows written before profiles
-- existed, and rows detached by profile deletion, keep only the
-- denormalized person name.
CREATE TABLE IF NOT EXISTS logs (
    id TEXT PRIMARY KEY,
    timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
    person TEXT NOT NULL,
    profile_id TEXT REFERENCES profiles(id) ON DELETE SET NULL,
    type TEXT NOT NULL CHECK (type IN ('GREEN','YELLOW','RED')),
    severity INTEGER NOT NULL CHECK (severity BETWEEN 1 AND 10),
    category TEXT NOT NULL DEFAULT 'other',
    notes TEXT
);

-- Indexes for efficient querying
CREATE INDEX IF NOT EXISTS idx_profiles_name ON profiles(name);
CREATE INDEX IF NOT EXISTS idx_logs_profile ON logs(profile_id);
CREATE INDEX IF NOT EXISTS idx_logs_person ON logs(person);
CREATE INDEX IF NOT EXISTS idx_logs_timestamp ON logs(timestamp);
`

// SchemaVersion is the current schema version for migrations
const SchemaVersion = 2
