// Unit tests for accounts: registration, verification, and the rename
// cascade.
package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/binderkit/binder/pkg/types"
)

func TestRegister(t *testing.T) {
	s := newTestStore(t)

	hasUsers, err := s.HasAnyUser()
	require.NoError(t, err)
	assert.False(t, hasUsers)

	require.NoError(t, s.Register("alice", "secret"))

	hasUsers, err = s.HasAnyUser()
	require.NoError(t, err)
	assert.True(t, hasUsers)

	// Registration creates the default folder in the same transaction.
	folders, err := s.Folders("alice")
	require.NoError(t, err)
	require.Len(t, folders, 1)
	assert.Equal(t, types.DefaultFolderName, folders[0].Name)

	assert.ErrorIs(t, s.Register("alice", "other"), types.ErrDuplicateUser)
	assert.ErrorIs(t, s.Register("", "secret"), types.ErrInvalidInput)
	assert.ErrorIs(t, s.Register("bob", ""), types.ErrInvalidInput)
}

func TestVerify(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Register("alice", "secret"))

	tests := []struct {
		name     string
		username string
		password string
		want     bool
	}{
		{"correct password", "alice", "secret", true},
		{"wrong password", "alice", "wrong", false},
		{"unknown user", "nobody", "secret", false},
		{"empty password", "alice", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := s.Verify(tt.username, tt.password)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestUpdateCredentialsCascade(t *testing.T) {
	s := newTestStore(t)
	folderID := registerUser(t, s, "alice")
	mustInsert(t, s, types.RecordInput{Content: "mine", Owner: "alice", FolderID: folderID})

	require.NoError(t, s.UpdateCredentials("alice", "alicia", "newsecret"))

	// Old identity is gone.
	ok, err := s.Verify("alice", "secret")
	require.NoError(t, err)
	assert.False(t, ok)

	// New identity owns everything.
	ok, err = s.Verify("alicia", "newsecret")
	require.NoError(t, err)
	assert.True(t, ok)

	folders, err := s.Folders("alicia")
	require.NoError(t, err)
	assert.Len(t, folders, 1)

	records, err := s.ExportRows("alicia", types.AllFolders)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "alicia", records[0].Owner)

	orphans, err := s.ExportRows("alice", types.AllFolders)
	require.NoError(t, err)
	assert.Empty(t, orphans, "no row may remain under the old identity")
}

func TestUpdateCredentialsPasswordOnly(t *testing.T) {
	s := newTestStore(t)
	registerUser(t, s, "alice")

	// Same username on both sides changes only the password.
	require.NoError(t, s.UpdateCredentials("alice", "alice", "rotated"))

	ok, err := s.Verify("alice", "rotated")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestUpdateCredentialsConflict(t *testing.T) {
	s := newTestStore(t)
	registerUser(t, s, "alice")
	registerUser(t, s, "bob")

	assert.ErrorIs(t, s.UpdateCredentials("alice", "bob", "x"), types.ErrConflict)
	assert.ErrorIs(t, s.UpdateCredentials("nobody", "somebody", "x"), types.ErrNotFound)
	assert.ErrorIs(t, s.UpdateCredentials("alice", "", "x"), types.ErrInvalidInput)
}

func TestEnsureDefaultFolder(t *testing.T) {
	s := newTestStore(t)
	folderID := registerUser(t, s, "alice")

	// Idempotent when a folder already exists, even a renamed one.
	require.NoError(t, s.RenameFolder(folderID, "projects", "alice"))
	require.NoError(t, s.EnsureDefaultFolder("alice"))

	folders, err := s.Folders("alice")
	require.NoError(t, err)
	require.Len(t, folders, 1)
	assert.Equal(t, "projects", folders[0].Name)

	// An owner with zero folders gets one.
	require.NoError(t, s.DeleteFolder(folderID, "alice"))
	require.NoError(t, s.EnsureDefaultFolder("alice"))

	folders, err = s.Folders("alice")
	require.NoError(t, err)
	require.Len(t, folders, 1)
	assert.Equal(t, types.DefaultFolderName, folders[0].Name)
}
