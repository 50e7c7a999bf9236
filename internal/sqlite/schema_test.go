// Unit tests for schema creation and additive migration of stores
// created by older schema versions.
package sqlite

import (
	"database/sql"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/binderkit/binder/pkg/types"
)

// createLegacyDB writes a database whose records table predates the
// owner-scoped columns, the way early releases shaped it.
func createLegacyDB(t *testing.T, dir string, ddl string, inserts ...string) {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(dir, types.DefaultDBFile))
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(ddl)
	require.NoError(t, err)
	for _, stmt := range inserts {
		_, err = db.Exec(stmt)
		require.NoError(t, err)
	}
}

func TestMigrateAddsMissingColumns(t *testing.T) {
	tmpDir := t.TempDir()
	createLegacyDB(t, tmpDir,
		`CREATE TABLE records (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            content TEXT NOT NULL,
            uid TEXT,
            created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
        )`,
		`INSERT INTO records (content, uid) VALUES ('legacy row', 'A1')`,
	)

	s := NewStore()
	require.NoError(t, s.Open(types.Config{DataDir: tmpDir}))
	defer s.Close()

	// All owner-scoped columns must now exist; the legacy row hydrates
	// with zero values for them.
	records, err := s.queryRecords("SELECT " + strings.Join(recordCols, ", ") + " FROM records")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "legacy row", records[0].Content)
	assert.Equal(t, "A1", records[0].UID)
	assert.Empty(t, records[0].Owner)
	assert.False(t, records[0].Done)
	assert.Zero(t, records[0].UserSeq, "ownerless rows are not backfilled")
}

func TestMigrateBackfillsSequences(t *testing.T) {
	tmpDir := t.TempDir()
	createLegacyDB(t, tmpDir,
		`CREATE TABLE records (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            content TEXT NOT NULL,
            uid TEXT,
            owner TEXT,
            folder_id INTEGER DEFAULT 0
        )`,
		`INSERT INTO records (content, uid, owner, folder_id) VALUES ('first', 'none', 'alice', 1)`,
		`INSERT INTO records (content, uid, owner, folder_id) VALUES ('second', 'none', 'alice', 1)`,
		`INSERT INTO records (content, uid, owner, folder_id) VALUES ('other', 'none', 'bob', 2)`,
		`INSERT INTO records (content, uid, owner, folder_id) VALUES ('third', 'none', 'alice', 1)`,
	)

	s := NewStore()
	require.NoError(t, s.Open(types.Config{DataDir: tmpDir}))
	defer s.Close()

	alice, err := s.ExportRows("alice", types.AllFolders)
	require.NoError(t, err)
	require.Len(t, alice, 3)
	for i, r := range alice {
		assert.Equal(t, int64(i+1), r.UserSeq, "sequences run 1..N in insertion order")
	}

	bob, err := s.ExportRows("bob", types.AllFolders)
	require.NoError(t, err)
	require.Len(t, bob, 1)
	assert.Equal(t, int64(1), bob[0].UserSeq, "each owner is numbered independently")
}

func TestBackfillRunsExactlyOnce(t *testing.T) {
	tmpDir := t.TempDir()
	config := types.Config{DataDir: tmpDir}
	createLegacyDB(t, tmpDir,
		`CREATE TABLE records (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            content TEXT NOT NULL,
            uid TEXT,
            owner TEXT,
            folder_id INTEGER DEFAULT 0
        )`,
		`INSERT INTO records (content, uid, owner, folder_id) VALUES ('a', 'none', 'alice', 1)`,
		`INSERT INTO records (content, uid, owner, folder_id) VALUES ('b', 'none', 'alice', 1)`,
		`INSERT INTO records (content, uid, owner, folder_id) VALUES ('c', 'none', 'alice', 1)`,
	)

	s := NewStore()
	require.NoError(t, s.Open(config))

	// Delete the middle record so a second backfill would visibly
	// renumber the survivors.
	records, err := s.ExportRows("alice", types.AllFolders)
	require.NoError(t, err)
	require.Len(t, records, 3)
	require.NoError(t, s.DeleteRecord(records[1].ID, "alice"))
	require.NoError(t, s.Close())

	s2 := NewStore()
	require.NoError(t, s2.Open(config))
	defer s2.Close()

	after, err := s2.ExportRows("alice", types.AllFolders)
	require.NoError(t, err)
	require.Len(t, after, 2)
	assert.Equal(t, int64(1), after[0].UserSeq)
	assert.Equal(t, int64(3), after[1].UserSeq, "reopen must not renumber; the gap stays")
}

func TestFreshStoreSkipsBackfill(t *testing.T) {
	s := newTestStore(t)
	folderID := registerUser(t, s, "alice")

	id := mustInsert(t, s, types.RecordInput{Content: "fresh", Owner: "alice", FolderID: folderID})
	assert.Positive(t, id)

	records, err := s.ExportRows("alice", types.AllFolders)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, int64(1), records[0].UserSeq)
}
