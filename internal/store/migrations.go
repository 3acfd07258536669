package store

import (
	"database/sql"
	"fmt"
	"time"
)

type migration struct {
	Version     int
	Description string
	SQL         string
}

var migrations = []migration{
	{
		Version:     1,
		Description: "Initial schema",
		SQL: `
CREATE TABLE IF NOT EXISTS accounts (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT NOT NULL UNIQUE,
    license TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    joined_at DATETIME NOT NULL,
    total_jumps INTEGER NOT NULL DEFAULT 0,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS sessions (
    token TEXT PRIMARY KEY,
    account_id TEXT NOT NULL REFERENCES accounts(id),
    created_at DATETIME NOT NULL,
    expires_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS jumps (
    id TEXT PRIMARY KEY,
    account_id TEXT NOT NULL REFERENCES accounts(id),
    jump_number INTEGER NOT NULL,
    jump_date DATE NOT NULL,
    location TEXT NOT NULL,
    aircraft TEXT NOT NULL,
    altitude_m INTEGER NOT NULL,
    canopy_size INTEGER,
    weather TEXT,
    wind TEXT,
    freefall_notes TEXT,
    canopy_notes TEXT,
    created_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS favorites (
    account_id TEXT NOT NULL REFERENCES accounts(id),
    dropzone_id TEXT NOT NULL,
    created_at DATETIME NOT NULL,
    PRIMARY KEY (account_id, dropzone_id)
);

CREATE INDEX IF NOT EXISTS idx_jumps_account ON jumps(account_id, jump_date);
CREATE INDEX IF NOT EXISTS idx_sessions_account ON sessions(account_id);
`,
	},
	{
		Version:     2,
		Description: "Enforce unique jump numbers per account",
		SQL: `
CREATE UNIQUE INDEX IF NOT EXISTS idx_jumps_account_number ON jumps(account_id, jump_number);
CREATE INDEX IF NOT EXISTS idx_sessions_expiry ON sessions(expires_at);
`,
	},
	{
		Version:     3,
		Description: "Audit drop zone weather refreshes",
		SQL: `
CREATE TABLE IF NOT EXISTS refresh_runs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    started_at DATETIME NOT NULL,
    finished_at DATETIME,
    reason TEXT NOT NULL,
    zones INTEGER NOT NULL,
    live INTEGER NOT NULL DEFAULT 0,
    synthetic INTEGER NOT NULL DEFAULT 0,
    failed INTEGER NOT NULL DEFAULT 0,
    success BOOLEAN NOT NULL DEFAULT FALSE,
    error_message TEXT
);

CREATE INDEX IF NOT EXISTS idx_refresh_runs_started ON refresh_runs(started_at);
`,
	},
	{
		Version:     4,
		Description: "Store uploaded logbook scans",
		SQL: `
CREATE TABLE IF NOT EXISTS scan_images (
    id TEXT PRIMARY KEY,
    account_id TEXT NOT NULL REFERENCES accounts(id),
    uploaded_at DATETIME NOT NULL,
    filename TEXT NOT NULL,
    content_type TEXT NOT NULL,
    size_bytes INTEGER NOT NULL,
    image BLOB NOT NULL,
    image_hash TEXT NOT NULL,
    UNIQUE (account_id, image_hash)
);
`,
	},
}

func (s *Store) Migrate() error {
	if err := s.ensureMigrationsTable(); err != nil {
		return fmt.Errorf("ensure migrations table: %w", err)
	}

	applied, err := s.getAppliedMigrations()
	if err != nil {
		return fmt.Errorf("get applied migrations: %w", err)
	}

	for _, m := range migrations {
		if applied[m.Version] {
			continue
		}

		s.logger.Infow("applying migration", "version", m.Version, "description", m.Description)

		tx, err := s.db.Begin()
		if err != nil {
			return fmt.Errorf("begin tx for migration %d: %w", m.Version, err)
		}

		if _, err := tx.Exec(m.SQL); err != nil {
			tx.Rollback()
			return fmt.Errorf("execute migration %d: %w", m.Version, err)
		}

		if _, err := tx.Exec(
			"INSERT INTO schema_migrations (version, description, applied_at) VALUES (?, ?, ?)",
			m.Version, m.Description, time.Now().UTC(),
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("record migration %d: %w", m.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %d: %w", m.Version, err)
		}
	}

	return nil
}

func (s *Store) ensureMigrationsTable() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			description TEXT,
			applied_at DATETIME
		)
	`)
	return err
}

func (s *Store) getAppliedMigrations() (map[int]bool, error) {
	rows, err := s.db.Query("SELECT version FROM schema_migrations")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		applied[version] = true
	}
	return applied, rows.Err()
}

func (s *Store) MigrationVersion() (int, error) {
	var version sql.NullInt64
	err := s.db.QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&version)
	if err != nil {
		return 0, err
	}
	if !version.Valid {
		return 0, nil
	}
	return int(version.Int64), nil
}
