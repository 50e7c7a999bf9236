package sqlite

import (
	"database/sql"
	"fmt"
)

// nextSequence computes the next per-owner display sequence: one greater
// than the owner's current maximum across all folders, 1 for a first
// record. It must run inside the same transaction as the insert that
// consumes it so two inserts cannot race to the same value.
func nextSequence(tx *sql.Tx, owner string) (int64, error) {
	var seq int64
	err := tx.QueryRow(
		"SELECT COALESCE(MAX(user_seq), 0) + 1 FROM records WHERE owner = ?",
		owner,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("computing next sequence for %s: %w", owner, err)
	}
	return seq, nil
}

// RebuildSequences renumbers every owner's records from 1 with no gaps,
// in ascending system-id order. This is the only operation that may
// renumber existing sequences; ordinary inserts and deletes never do.
func (s *Store) RebuildSequences() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(); err != nil {
		return err
	}
	return rebuildSequences(s.db)
}

// rebuildSequences is the shared implementation, also invoked by the
// user_seq backfill migration before the store is marked open.
func rebuildSequences(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	owners, err := distinctOwners(tx)
	if err != nil {
		return err
	}

	for _, owner := range owners {
		ids, err := recordIDsAscending(tx, owner)
		if err != nil {
			return err
		}
		for i, id := range ids {
			if _, err := tx.Exec(
				"UPDATE records SET user_seq = ? WHERE id = ?",
				int64(i+1), id,
			); err != nil {
				return fmt.Errorf("renumbering record %d: %w", id, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing sequence rebuild: %w", err)
	}
	return nil
}

func distinctOwners(tx *sql.Tx) ([]string, error) {
	rows, err := tx.Query("SELECT DISTINCT owner FROM records WHERE owner IS NOT NULL")
	if err != nil {
		return nil, fmt.Errorf("querying owners: %w", err)
	}
	defer rows.Close()

	var owners []string
	for rows.Next() {
		var owner string
		if err := rows.Scan(&owner); err != nil {
			return nil, fmt.Errorf("scanning owner: %w", err)
		}
		owners = append(owners, owner)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating owners: %w", err)
	}
	return owners, nil
}

func recordIDsAscending(tx *sql.Tx, owner string) ([]int64, error) {
	rows, err := tx.Query("SELECT id FROM records WHERE owner = ? ORDER BY id ASC", owner)
	if err != nil {
		return nil, fmt.Errorf("querying record ids for %s: %w", owner, err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning record id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating record ids: %w", err)
	}
	return ids, nil
}
