package sqlite

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/binderkit/binder/pkg/types"
)

// ImportResult summarizes a bulk insert.
type ImportResult struct {
	Imported int // rows inserted
	Skipped  int // rows rejected by validation (empty content, duplicate uid)
}

// ImportRows bulk-inserts tabular rows into one concrete folder, reusing
// the exact insert validation: blank cells take the per-field defaults,
// rows with empty content or a uid already taken in the folder are
// counted as skipped rather than aborting the import. The folder must be
// specific; the all-folders sentinel is rejected.
func (s *Store) ImportRows(rows []types.RecordInput, owner string, folderID int64) (ImportResult, error) {
	var result ImportResult
	if folderID == types.AllFolders {
		return result, fmt.Errorf("%w: import requires a specific folder", types.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(); err != nil {
		return result, err
	}

	for _, row := range rows {
		row.Owner = owner
		row.FolderID = folderID
		if _, _, err := s.insertLocked(row); err != nil {
			if errors.Is(err, types.ErrEmptyContent) || errors.Is(err, types.ErrDuplicateUID) {
				result.Skipped++
				continue
			}
			return result, err
		}
		result.Imported++
	}

	s.log.Info(context.Background(), "rows imported",
		"owner", owner, "folder_id", folderID,
		"imported", result.Imported, "skipped", result.Skipped)
	return result, nil
}

// ExportRows reads the same tabular shape back out, including the display
// sequence as a read-only column. Scoped like SearchRecords; ordered by
// sequence ascending for a stable export.
func (s *Store) ExportRows(owner string, folderID int64) ([]types.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.checkOpen(); err != nil {
		return nil, err
	}

	b := sq.Select(recordCols...).
		From("records").
		Where(sq.Eq{"owner": owner}).
		OrderBy("user_seq ASC")
	if folderID != types.AllFolders {
		b = b.Where(sq.Eq{"folder_id": folderID})
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building export query: %w", err)
	}
	return s.queryRecords(query, args...)
}
