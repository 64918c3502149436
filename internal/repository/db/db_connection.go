package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// InitDB opens/creates the SQLite file holding accounts, sweep history and
// cached simulations, and ensures tables exist.
func InitDB(path string) (*sql.DB, error) {
	db, err := sql.Open(sqliteDriverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite at %q: %w", path, err)
	}

	// Conservative pool settings for SQLite
	db.SetMaxOpenConns(1) // SQLite is not great with many writers
	db.SetMaxIdleConns(1)

	for _, p := range pragmas {
		if _, err := db.Exec("PRAGMA " + p + ";"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("set PRAGMA %s: %w", p, err)
		}
	}

	if err := ensureSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	// Fail fast if the DB cannot be reached
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return db, nil
}

const sqliteDriverName = "sqlite"

var pragmas = []string{
	"journal_mode = WAL",
	"foreign_keys = ON",
	"busy_timeout = 5000",
}

const schemaUsers = `
CREATE TABLE IF NOT EXISTS users (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    username TEXT UNIQUE NOT NULL,
    password_hash TEXT NOT NULL
);
`

const schemaSweepRuns = `
CREATE TABLE IF NOT EXISTS sweep_runs (
    id TEXT PRIMARY KEY,
    owner_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    variable TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL,
    best_index INTEGER NOT NULL,
    best_value REAL,
    best_profit REAL,
    failed INTEGER NOT NULL DEFAULT 0,
    points_json TEXT NOT NULL,
    request_json TEXT
);
`

const indexSweepRunsOwnerCreated = `
CREATE INDEX IF NOT EXISTS idx_sweep_runs_owner_created ON sweep_runs (owner_id, created_at);
`

const schemaSimulationCache = `
CREATE TABLE IF NOT EXISTS simulation_cache (
    key TEXT PRIMARY KEY,
    result_json TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL
);
`

func ensureSchema(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin schema transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback() // no-op after Commit
	}()

	for i, stmt := range []string{
		schemaUsers,
		schemaSweepRuns,
		indexSweepRunsOwnerCreated,
		schemaSimulationCache,
	} {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("apply schema statement %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema transaction: %w", err)
	}
	return nil
}
