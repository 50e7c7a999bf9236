package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/binderkit/binder/internal/logging"
)

// Schema DDL. Creation is idempotent so Open is safe against both fresh
// and pre-existing stores.
const (
	createUsers = `CREATE TABLE IF NOT EXISTS users (
    username TEXT PRIMARY KEY,
    password_hash TEXT NOT NULL
);`

	createFolders = `CREATE TABLE IF NOT EXISTS folders (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    owner TEXT NOT NULL,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);`

	createRecords = `CREATE TABLE IF NOT EXISTS records (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_seq INTEGER,
    uid TEXT,
    content TEXT NOT NULL,
    category TEXT DEFAULT 'uncategorized',
    deadline TEXT,
    owner TEXT,
    status INTEGER DEFAULT 0,
    priority TEXT DEFAULT 'medium',
    folder_id INTEGER DEFAULT 0,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);`

	createMigrations = `CREATE TABLE IF NOT EXISTS schema_migrations (
    name TEXT PRIMARY KEY,
    applied_at TEXT NOT NULL
);`
)

// schemaDDL lists all CREATE TABLE statements.
var schemaDDL = []string{
	createUsers,
	createFolders,
	createRecords,
	createMigrations,
}

// recordColumn describes one additively migrated column of the records
// table. Stores created by older schema versions may lack any subset of
// these; each is appended with its stated default when absent.
type recordColumn struct {
	name string
	ddl  string
}

// recordColumns lists the columns appended by additive migration, in the
// order they were introduced. Migration never drops or renames a column.
var recordColumns = []recordColumn{
	{"folder_id", "ALTER TABLE records ADD COLUMN folder_id INTEGER DEFAULT 0"},
	{"owner", "ALTER TABLE records ADD COLUMN owner TEXT"},
	{"user_seq", "ALTER TABLE records ADD COLUMN user_seq INTEGER"},
	{"category", "ALTER TABLE records ADD COLUMN category TEXT DEFAULT 'uncategorized'"},
	{"deadline", "ALTER TABLE records ADD COLUMN deadline TEXT"},
	{"status", "ALTER TABLE records ADD COLUMN status INTEGER DEFAULT 0"},
	{"priority", "ALTER TABLE records ADD COLUMN priority TEXT DEFAULT 'medium'"},
}

// migrationUserSeqBackfill names the one-time backfill that assigns
// sequence numbers to rows that predate the user_seq column.
const migrationUserSeqBackfill = "user_seq_backfill"

// initSchema creates the tables with IF-NOT-EXISTS semantics.
func initSchema(db *sql.DB) error {
	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			return fmt.Errorf("creating table: %w", err)
		}
	}
	return nil
}

// migrateRecords inspects the records table and appends any missing
// columns. Each addition is its own statement; additions are independent
// and idempotent, so a failure never leaves a single column half-added.
// When the user_seq column is introduced on existing data, the backfill
// step runs exactly once and is recorded in schema_migrations.
func migrateRecords(db *sql.DB, log logging.Logger) error {
	existing, err := recordColumnSet(db)
	if err != nil {
		return err
	}

	userSeqAdded := false
	for _, col := range recordColumns {
		if existing[col.name] {
			continue
		}
		if _, err := db.Exec(col.ddl); err != nil {
			return fmt.Errorf("adding column %s: %w", col.name, err)
		}
		log.Info(context.Background(), "schema column added", "column", col.name)
		if col.name == "user_seq" {
			userSeqAdded = true
		}
	}

	applied, err := migrationApplied(db, migrationUserSeqBackfill)
	if err != nil {
		return err
	}
	if applied {
		return nil
	}
	// Rows that existed before the column did hold NULL sequences; give
	// them a valid ordering. A fresh store has nothing to renumber, so
	// the step is only executed when the column was just added here.
	if userSeqAdded {
		if err := rebuildSequences(db); err != nil {
			return fmt.Errorf("backfilling user_seq: %w", err)
		}
		log.Info(context.Background(), "user_seq backfill complete")
	}
	return markMigrationApplied(db, migrationUserSeqBackfill)
}

// recordColumnSet returns the names of the columns currently present on
// the records table.
func recordColumnSet(db *sql.DB) (map[string]bool, error) {
	rows, err := db.Query("PRAGMA table_info(records)")
	if err != nil {
		return nil, fmt.Errorf("inspecting records table: %w", err)
	}
	defer rows.Close()

	cols := make(map[string]bool)
	for rows.Next() {
		var (
			cid, notNull, pk int
			name, colType    string
			dflt             sql.NullString
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dflt, &pk); err != nil {
			return nil, fmt.Errorf("scanning column info: %w", err)
		}
		cols[name] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating column info: %w", err)
	}
	return cols, nil
}

// migrationApplied reports whether the named migration step has run.
func migrationApplied(db *sql.DB, name string) (bool, error) {
	var one int
	err := db.QueryRow("SELECT 1 FROM schema_migrations WHERE name = ?", name).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking migration %s: %w", name, err)
	}
	return true, nil
}

// markMigrationApplied records the named migration step so it never runs
// again.
func markMigrationApplied(db *sql.DB, name string) error {
	_, err := db.Exec(
		"INSERT OR IGNORE INTO schema_migrations (name, applied_at) VALUES (?, ?)",
		name, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("recording migration %s: %w", name, err)
	}
	return nil
}
