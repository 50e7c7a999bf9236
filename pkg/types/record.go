package types

import "time"

// Record priorities. Unrecognized values sort after low.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Record field defaults.
const (
	DefaultCategory = "uncategorized"
	DefaultPriority = PriorityMedium
)

// UIDNone is the sentinel uid meaning "no user-supplied identifier".
// Sentinel uids are exempt from folder-scoped uniqueness.
const UIDNone = "none"

// IsSentinelUID reports whether uid carries no user-supplied identifier.
func IsSentinelUID(uid string) bool {
	return uid == "" || uid == UIDNone
}

// PriorityRank returns the sort rank for a priority value: high=1,
// medium=2, low=3, anything else 4. Used by the search ordering contract.
func PriorityRank(priority string) int {
	switch priority {
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	default:
		return 4
	}
}

// Record is a single task or note owned by one user inside one folder.
type Record struct {
	ID        int64     // System id, autoincrement, immutable.
	UserSeq   int64     // Per-owner display sequence, assigned at insert.
	UID       string    // User-supplied label; UIDNone or "" when absent.
	Content   string    // Required, never empty.
	Category  string    // Free text, DefaultCategory when unset.
	Deadline  string    // Optional date, YYYY-MM-DD or empty.
	Owner     string    // Username that owns the record.
	Done      bool      // false = pending, true = done.
	Priority  string    // One of the Priority constants.
	FolderID  int64     // Folder owned by the same owner.
	CreatedAt time.Time // Immutable creation timestamp.
}

// RecordInput carries the caller-supplied fields for insert, update, and
// bulk import. Missing cells default per field at insertion time.
type RecordInput struct {
	UID      string
	Category string
	Content  string
	Deadline string
	Priority string
	Owner    string
	FolderID int64
}

// Stats aggregates record counts for dashboard rendering.
type Stats struct {
	ByCategory map[string]int
	ByPriority map[string]int
}
