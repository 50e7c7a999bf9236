// Package sqlite implements the SQLite persistence layer for Binder:
// schema lifecycle, per-owner sequence numbers, identity, folder and
// record stores.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/binderkit/binder/internal/logging"
	"github.com/binderkit/binder/pkg/types"
)

// Store owns the database handle and exposes all persistence operations.
// It is designed for one interactive session per storage file at a time;
// the mutex serializes operations within the process, the engine's own
// file locking is the only cross-process guard.
type Store struct {
	mu     sync.RWMutex
	opened bool
	config types.Config
	db     *sql.DB
	log    logging.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger wires a structured logger into the store. Without it the
// store stays silent.
func WithLogger(l logging.Logger) Option {
	return func(s *Store) { s.log = l }
}

// NewStore creates an unopened Store; call Open with a Config to use it.
func NewStore(opts ...Option) *Store {
	s := &Store{log: logging.NopLogger{}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open initializes the store against a fresh or pre-existing database
// file. It creates the data directory, ensures the schema exists, and
// additively migrates record columns created by older schema versions.
// Returns ErrAlreadyOpen if called while already open. Any I/O or
// permission failure is fatal and surfaces to the caller.
func (s *Store) Open(config types.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.opened {
		return types.ErrAlreadyOpen
	}
	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dataDir, dbFileName(config)))
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("opening database: %w", err)
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return fmt.Errorf("initializing schema: %w", err)
	}
	if err := migrateRecords(db, s.log); err != nil {
		db.Close()
		return fmt.Errorf("migrating schema: %w", err)
	}

	s.db = db
	s.config = config
	s.opened = true

	s.log.Info(context.Background(), "store opened", "data_dir", dataDir)
	return nil
}

// Close releases the database handle. Idempotent; after Close all
// operations return ErrStoreClosed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.opened {
		return nil
	}
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("closing database: %w", err)
	}
	s.db = nil
	s.opened = false
	return nil
}

// DBPath returns the path of the database file described by config.
func DBPath(config types.Config) string {
	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	return filepath.Join(dataDir, dbFileName(config))
}

func dbFileName(config types.Config) string {
	if config.DBFile != "" {
		return config.DBFile
	}
	return types.DefaultDBFile
}

// checkOpen returns ErrStoreClosed when the store has no live handle.
// The caller must hold s.mu (read or write).
func (s *Store) checkOpen() error {
	if !s.opened {
		return types.ErrStoreClosed
	}
	return nil
}

// withTx runs fn inside a transaction, committing on success and rolling
// back on error. The caller must hold s.mu and have checked open state.
func (s *Store) withTx(fn func(tx *sql.Tx) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}
