package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/binderkit/binder/pkg/types"
)

// recordCols is the canonical column order for record hydration.
var recordCols = []string{
	"id", "user_seq", "uid", "content", "category", "deadline",
	"owner", "status", "priority", "folder_id", "created_at",
}

// priorityRankSQL mirrors types.PriorityRank for in-engine ordering.
const priorityRankSQL = "CASE priority" +
	" WHEN 'high' THEN 1 WHEN 'medium' THEN 2 WHEN 'low' THEN 3 ELSE 4 END ASC"

// InsertRecord validates the input, allocates the owner's next display
// sequence, and inserts the record — all inside one transaction so two
// concurrent inserts cannot race to the same sequence value. Fails with
// ErrEmptyContent before any write when content is blank, and with
// ErrDuplicateUid when a non-sentinel uid already exists in the folder.
func (s *Store) InsertRecord(in types.RecordInput) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(); err != nil {
		return 0, err
	}

	id, seq, err := s.insertLocked(in)
	if err != nil {
		return 0, err
	}

	s.log.Info(context.Background(), "record inserted",
		"owner", in.Owner, "folder_id", in.FolderID, "seq", seq)
	return id, nil
}

// insertLocked is the shared insert path for InsertRecord and ImportRows.
// The caller must hold s.mu and have checked open state.
func (s *Store) insertLocked(in types.RecordInput) (int64, int64, error) {
	in = normalizeInput(in)
	if strings.TrimSpace(in.Content) == "" {
		return 0, 0, types.ErrEmptyContent
	}
	if in.Owner == "" || in.FolderID <= 0 {
		return 0, 0, fmt.Errorf("%w: owner and folder are required", types.ErrInvalidInput)
	}

	var id, seq int64
	err := s.withTx(func(tx *sql.Tx) error {
		dup, err := uidExists(tx, in.UID, in.Owner, in.FolderID, 0)
		if err != nil {
			return err
		}
		if dup {
			return types.ErrDuplicateUID
		}

		seq, err = nextSequence(tx, in.Owner)
		if err != nil {
			return err
		}

		res, err := tx.Exec(
			`INSERT INTO records
                (uid, category, content, deadline, priority, status, owner, folder_id, user_seq, created_at)
             VALUES (?, ?, ?, ?, ?, 0, ?, ?, ?, ?)`,
			in.UID, in.Category, in.Content, in.Deadline, in.Priority,
			in.Owner, in.FolderID, seq, time.Now().UTC().Format(time.RFC3339),
		)
		if err != nil {
			return fmt.Errorf("inserting record: %w", err)
		}
		id, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("reading record id: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	return id, seq, nil
}

// UpdateRecord rewrites the caller-editable fields of one record. The uid
// uniqueness check excludes the record's own id; the display sequence is
// never altered. ErrNotFound when no such record exists for the owner.
func (s *Store) UpdateRecord(id int64, in types.RecordInput) error {
	in = normalizeInput(in)
	if strings.TrimSpace(in.Content) == "" {
		return types.ErrEmptyContent
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(); err != nil {
		return err
	}

	return s.withTx(func(tx *sql.Tx) error {
		if err := recordOwned(tx, id, in.Owner); err != nil {
			return err
		}
		dup, err := uidExists(tx, in.UID, in.Owner, in.FolderID, id)
		if err != nil {
			return err
		}
		if dup {
			return types.ErrDuplicateUID
		}
		if _, err := tx.Exec(
			`UPDATE records SET uid = ?, category = ?, content = ?, deadline = ?, priority = ?
             WHERE id = ? AND owner = ?`,
			in.UID, in.Category, in.Content, in.Deadline, in.Priority, id, in.Owner,
		); err != nil {
			return fmt.Errorf("updating record %d: %w", id, err)
		}
		return nil
	})
}

// UpdateUID changes only the user-supplied identifier, with the same
// folder-scoped uniqueness re-check. The narrow mutation exists for
// duplicate resolution flows.
func (s *Store) UpdateUID(id int64, uid, owner string, folderID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(); err != nil {
		return err
	}

	return s.withTx(func(tx *sql.Tx) error {
		if err := recordOwned(tx, id, owner); err != nil {
			return err
		}
		dup, err := uidExists(tx, uid, owner, folderID, id)
		if err != nil {
			return err
		}
		if dup {
			return types.ErrDuplicateUID
		}
		if _, err := tx.Exec(
			"UPDATE records SET uid = ? WHERE id = ? AND owner = ?", uid, id, owner,
		); err != nil {
			return fmt.Errorf("updating uid on record %d: %w", id, err)
		}
		return nil
	})
}

// ToggleStatus flips a record between pending and done. ErrNotFound when
// the record does not exist for the owner. Toggling twice restores the
// original state.
func (s *Store) ToggleStatus(id int64, owner string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(); err != nil {
		return err
	}

	return s.withTx(func(tx *sql.Tx) error {
		var status int
		err := tx.QueryRow(
			"SELECT status FROM records WHERE id = ? AND owner = ?", id, owner,
		).Scan(&status)
		if err == sql.ErrNoRows {
			return types.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("loading record %d: %w", id, err)
		}
		if _, err := tx.Exec(
			"UPDATE records SET status = ? WHERE id = ? AND owner = ?",
			1-status, id, owner,
		); err != nil {
			return fmt.Errorf("toggling record %d: %w", id, err)
		}
		return nil
	})
}

// DeleteRecord removes one record. Deleting an absent or cross-owner id
// is an idempotent no-op. Sequences are not renumbered on delete.
func (s *Store) DeleteRecord(id int64, owner string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(); err != nil {
		return err
	}

	if _, err := s.db.Exec(
		"DELETE FROM records WHERE id = ? AND owner = ?", id, owner,
	); err != nil {
		return fmt.Errorf("deleting record %d: %w", id, err)
	}
	return nil
}

// SearchRecords runs a parameterized multi-criteria search. FolderID
// types.AllFolders widens to every folder of the owner; an empty category
// disables category narrowing. The keyword is matched case-insensitively
// as a substring against the fields selected by q.Field (SQLite LIKE is
// case-insensitive for ASCII). Result ordering is a presentation
// contract, recomputed on every query: pending before done, then priority
// rank ascending, then user sequence descending.
func (s *Store) SearchRecords(q types.SearchQuery) ([]types.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.checkOpen(); err != nil {
		return nil, err
	}

	b := sq.Select(recordCols...).
		From("records").
		Where(sq.Eq{"owner": q.Owner})

	if q.FolderID != types.AllFolders {
		b = b.Where(sq.Eq{"folder_id": q.FolderID})
	}
	if q.Category != types.AllCategories {
		b = b.Where(sq.Eq{"category": q.Category})
	}
	switch q.Status {
	case types.StatusPending:
		b = b.Where(sq.Eq{"status": 0})
	case types.StatusDone:
		b = b.Where(sq.Eq{"status": 1})
	}

	if q.Keyword != "" {
		pattern := "%" + q.Keyword + "%"
		switch q.Field {
		case types.FieldUID:
			b = b.Where(sq.Like{"uid": pattern})
		case types.FieldContent:
			b = b.Where(sq.Like{"content": pattern})
		case types.FieldSequence:
			b = b.Where(sq.Expr("CAST(user_seq AS TEXT) LIKE ?", pattern))
		default:
			b = b.Where(sq.Or{
				sq.Like{"content": pattern},
				sq.Like{"uid": pattern},
				sq.Expr("CAST(user_seq AS TEXT) LIKE ?", pattern),
			})
		}
	}

	b = b.OrderBy("status ASC", priorityRankSQL, "user_seq DESC")

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building search query: %w", err)
	}
	return s.queryRecords(query, args...)
}

// FindDuplicates returns the records whose non-sentinel uid appears at
// least twice within its uniqueness scope, for manual resolution. With
// folderID types.AllFolders the scope is (folder, uid) across every
// folder of the owner; otherwise uid within the one folder. Ordered by
// folder, uid, then system id ascending so the oldest row leads each
// group.
func (s *Store) FindDuplicates(owner string, folderID int64) ([]types.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.checkOpen(); err != nil {
		return nil, err
	}

	b := sq.Select(recordCols...).
		From("records").
		Where(sq.Eq{"owner": owner})

	if folderID == types.AllFolders {
		b = b.Where(sq.Expr(
			`(folder_id, uid) IN (
                SELECT folder_id, uid FROM records
                WHERE owner = ? AND uid != ? AND uid != ''
                GROUP BY folder_id, uid HAVING COUNT(*) > 1
            )`, owner, types.UIDNone))
	} else {
		b = b.Where(sq.Eq{"folder_id": folderID}).
			Where(sq.Expr(
				`uid IN (
                    SELECT uid FROM records
                    WHERE owner = ? AND folder_id = ? AND uid != ? AND uid != ''
                    GROUP BY uid HAVING COUNT(*) > 1
                )`, owner, folderID, types.UIDNone))
	}

	b = b.OrderBy("folder_id ASC", "uid ASC", "id ASC")

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building duplicates query: %w", err)
	}
	return s.queryRecords(query, args...)
}

// Stats aggregates record counts by category and by priority, scoped the
// same way as SearchRecords.
func (s *Store) Stats(owner string, folderID int64) (types.Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := types.Stats{
		ByCategory: make(map[string]int),
		ByPriority: make(map[string]int),
	}
	if err := s.checkOpen(); err != nil {
		return stats, err
	}

	for _, group := range []struct {
		column string
		into   map[string]int
	}{
		{"category", stats.ByCategory},
		{"priority", stats.ByPriority},
	} {
		b := sq.Select(group.column, "COUNT(*)").
			From("records").
			Where(sq.Eq{"owner": owner}).
			GroupBy(group.column)
		if folderID != types.AllFolders {
			b = b.Where(sq.Eq{"folder_id": folderID})
		}
		query, args, err := b.ToSql()
		if err != nil {
			return stats, fmt.Errorf("building stats query: %w", err)
		}
		rows, err := s.db.Query(query, args...)
		if err != nil {
			return stats, fmt.Errorf("querying %s stats: %w", group.column, err)
		}
		for rows.Next() {
			var (
				key   sql.NullString
				count int
			)
			if err := rows.Scan(&key, &count); err != nil {
				rows.Close()
				return stats, fmt.Errorf("scanning %s stats: %w", group.column, err)
			}
			group.into[key.String] = count
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return stats, fmt.Errorf("iterating %s stats: %w", group.column, err)
		}
		rows.Close()
	}
	return stats, nil
}

// normalizeInput applies the per-field defaults for missing cells.
func normalizeInput(in types.RecordInput) types.RecordInput {
	if in.UID == "" {
		in.UID = types.UIDNone
	}
	if in.Category == "" {
		in.Category = types.DefaultCategory
	}
	if in.Priority == "" {
		in.Priority = types.DefaultPriority
	}
	return in
}

// uidExists reports whether a non-sentinel uid is already taken within
// (owner, folder), excluding excludeID when non-zero. Sentinel uids are
// exempt from uniqueness and always report false.
func uidExists(tx *sql.Tx, uid, owner string, folderID, excludeID int64) (bool, error) {
	if types.IsSentinelUID(uid) {
		return false, nil
	}
	var one int
	err := tx.QueryRow(
		"SELECT 1 FROM records WHERE uid = ? AND owner = ? AND folder_id = ? AND id != ? LIMIT 1",
		uid, owner, folderID, excludeID,
	).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking uid %q: %w", uid, err)
	}
	return true, nil
}

// recordOwned returns ErrNotFound unless the record exists and belongs to
// owner.
func recordOwned(tx *sql.Tx, id int64, owner string) error {
	var one int
	err := tx.QueryRow(
		"SELECT 1 FROM records WHERE id = ? AND owner = ?", id, owner,
	).Scan(&one)
	if err == sql.ErrNoRows {
		return types.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("checking record %d: %w", id, err)
	}
	return nil
}

// queryRecords runs a hydrating select over the canonical column list.
// The caller must hold s.mu.
func (s *Store) queryRecords(query string, args ...any) ([]types.Record, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	records := []types.Record{}
	for rows.Next() {
		r, err := hydrateRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("hydrating record: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating records: %w", err)
	}
	return records, nil
}

// hydrateRecord converts one row into a types.Record. Columns introduced
// by additive migration may be NULL on rows that predate them.
func hydrateRecord(rows *sql.Rows) (types.Record, error) {
	var (
		r         types.Record
		userSeq   sql.NullInt64
		uid       sql.NullString
		category  sql.NullString
		deadline  sql.NullString
		owner     sql.NullString
		status    sql.NullInt64
		priority  sql.NullString
		folderID  sql.NullInt64
		createdAt sql.NullString
	)
	if err := rows.Scan(
		&r.ID, &userSeq, &uid, &r.Content, &category, &deadline,
		&owner, &status, &priority, &folderID, &createdAt,
	); err != nil {
		return r, err
	}
	r.UserSeq = userSeq.Int64
	r.UID = uid.String
	r.Category = category.String
	r.Deadline = deadline.String
	r.Owner = owner.String
	r.Done = status.Int64 == 1
	r.Priority = priority.String
	r.FolderID = folderID.Int64
	r.CreatedAt = parseTimestamp(createdAt)
	return r, nil
}

// parseTimestamp accepts both RFC3339 (rows written by this code) and the
// "2006-01-02 15:04:05" form SQLite's CURRENT_TIMESTAMP default produces
// on legacy rows. Unparseable values hydrate as the zero time rather than
// failing the read.
func parseTimestamp(v sql.NullString) time.Time {
	if !v.Valid || v.String == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339, v.String); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02 15:04:05", v.String); err == nil {
		return t.UTC()
	}
	return time.Time{}
}
