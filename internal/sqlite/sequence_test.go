// Unit tests for per-owner display sequence allocation and rebuild.
package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/binderkit/binder/pkg/types"
)

func TestSequencesAreMonotonicPerOwner(t *testing.T) {
	s := newTestStore(t)
	aliceFolder := registerUser(t, s, "alice")
	bobFolder := registerUser(t, s, "bob")
	aliceSecond, err := s.CreateFolder("work", "alice")
	require.NoError(t, err)

	// Sequences span all of an owner's folders.
	mustInsert(t, s, types.RecordInput{Content: "a1", Owner: "alice", FolderID: aliceFolder})
	mustInsert(t, s, types.RecordInput{Content: "a2", Owner: "alice", FolderID: aliceSecond})
	mustInsert(t, s, types.RecordInput{Content: "b1", Owner: "bob", FolderID: bobFolder})
	mustInsert(t, s, types.RecordInput{Content: "a3", Owner: "alice", FolderID: aliceFolder})

	alice, err := s.ExportRows("alice", types.AllFolders)
	require.NoError(t, err)
	require.Len(t, alice, 3)
	assert.Equal(t, []int64{1, 2, 3}, []int64{alice[0].UserSeq, alice[1].UserSeq, alice[2].UserSeq})

	bob, err := s.ExportRows("bob", types.AllFolders)
	require.NoError(t, err)
	require.Len(t, bob, 1)
	assert.Equal(t, int64(1), bob[0].UserSeq, "owners never share a sequence")
}

func TestDeleteLeavesSequenceGap(t *testing.T) {
	s := newTestStore(t)
	folderID := registerUser(t, s, "alice")

	mustInsert(t, s, types.RecordInput{Content: "one", Owner: "alice", FolderID: folderID})
	second := mustInsert(t, s, types.RecordInput{Content: "two", Owner: "alice", FolderID: folderID})
	mustInsert(t, s, types.RecordInput{Content: "three", Owner: "alice", FolderID: folderID})

	require.NoError(t, s.DeleteRecord(second, "alice"))

	// The next insert continues past the max; the gap is not reused.
	mustInsert(t, s, types.RecordInput{Content: "four", Owner: "alice", FolderID: folderID})

	records, err := s.ExportRows("alice", types.AllFolders)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []int64{1, 3, 4},
		[]int64{records[0].UserSeq, records[1].UserSeq, records[2].UserSeq})
}

func TestRebuildSequences(t *testing.T) {
	s := newTestStore(t)
	folderID := registerUser(t, s, "alice")
	bobFolder := registerUser(t, s, "bob")

	var ids []int64
	for _, content := range []string{"one", "two", "three", "four"} {
		ids = append(ids, mustInsert(t, s,
			types.RecordInput{Content: content, Owner: "alice", FolderID: folderID}))
	}
	mustInsert(t, s, types.RecordInput{Content: "bob keeps his", Owner: "bob", FolderID: bobFolder})

	require.NoError(t, s.DeleteRecord(ids[0], "alice"))
	require.NoError(t, s.DeleteRecord(ids[2], "alice"))

	require.NoError(t, s.RebuildSequences())

	alice, err := s.ExportRows("alice", types.AllFolders)
	require.NoError(t, err)
	require.Len(t, alice, 2)
	assert.Equal(t, int64(1), alice[0].UserSeq)
	assert.Equal(t, int64(2), alice[1].UserSeq)
	assert.Equal(t, "two", alice[0].Content, "rebuild numbers in system-id order")
	assert.Equal(t, "four", alice[1].Content)

	bob, err := s.ExportRows("bob", types.AllFolders)
	require.NoError(t, err)
	require.Len(t, bob, 1)
	assert.Equal(t, int64(1), bob[0].UserSeq)
}
