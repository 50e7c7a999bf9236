package types

import "time"

// DefaultFolderName is the folder created for every owner on first access.
const DefaultFolderName = "default"

// AllFolders is the folder id sentinel that widens record queries to every
// folder owned by the caller.
const AllFolders int64 = -1

// Folder is a named container for records, owned by exactly one user.
// Names are display values and need not be unique.
type Folder struct {
	ID        int64
	Name      string
	Owner     string
	CreatedAt time.Time
}
