package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/binderkit/binder/pkg/types"
)

// Folders lists the owner's folders ordered by id ascending. Pure read:
// default-folder creation happens in EnsureDefaultFolder, not here.
func (s *Store) Folders(owner string) ([]types.Folder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.checkOpen(); err != nil {
		return nil, err
	}

	query, args, err := sq.Select("id", "name", "owner", "created_at").
		From("folders").
		Where(sq.Eq{"owner": owner}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building folder query: %w", err)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying folders: %w", err)
	}
	defer rows.Close()

	folders := []types.Folder{}
	for rows.Next() {
		var (
			f         types.Folder
			createdAt sql.NullString
		)
		if err := rows.Scan(&f.ID, &f.Name, &f.Owner, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning folder: %w", err)
		}
		f.CreatedAt = parseTimestamp(createdAt)
		folders = append(folders, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating folders: %w", err)
	}
	return folders, nil
}

// CreateFolder inserts a named folder for the owner and returns its id.
func (s *Store) CreateFolder(name, owner string) (int64, error) {
	if name == "" || owner == "" {
		return 0, fmt.Errorf("%w: folder name and owner are required", types.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(); err != nil {
		return 0, err
	}

	res, err := s.db.Exec("INSERT INTO folders (name, owner) VALUES (?, ?)", name, owner)
	if err != nil {
		return 0, fmt.Errorf("inserting folder: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading folder id: %w", err)
	}

	s.log.Info(context.Background(), "folder created", "owner", owner, "folder_id", id)
	return id, nil
}

// RenameFolder changes a folder's display name. A folder id not owned by
// owner is a silent no-op.
func (s *Store) RenameFolder(id int64, newName, owner string) error {
	if newName == "" {
		return fmt.Errorf("%w: folder name is required", types.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(); err != nil {
		return err
	}

	if _, err := s.db.Exec(
		"UPDATE folders SET name = ? WHERE id = ? AND owner = ?",
		newName, id, owner,
	); err != nil {
		return fmt.Errorf("renaming folder %d: %w", id, err)
	}
	return nil
}

// DeleteFolder removes a folder and every record it owns in one
// transaction, so a crash mid-cascade never leaves orphaned records.
// Both deletes are owner-scoped; cross-owner ids are inert.
func (s *Store) DeleteFolder(id int64, owner string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(); err != nil {
		return err
	}

	err := s.withTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec(
			"DELETE FROM records WHERE folder_id = ? AND owner = ?", id, owner,
		); err != nil {
			return fmt.Errorf("deleting folder records: %w", err)
		}
		if _, err := tx.Exec(
			"DELETE FROM folders WHERE id = ? AND owner = ?", id, owner,
		); err != nil {
			return fmt.Errorf("deleting folder: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Info(context.Background(), "folder deleted", "owner", owner, "folder_id", id)
	return nil
}
