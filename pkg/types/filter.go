package types

import "fmt"

// StatusFilter narrows a search by completion status.
type StatusFilter string

const (
	StatusAll     StatusFilter = "all"
	StatusPending StatusFilter = "pending"
	StatusDone    StatusFilter = "done"
)

// ParseStatusFilter maps a user-facing string to a StatusFilter.
// The empty string means StatusAll.
func ParseStatusFilter(s string) (StatusFilter, error) {
	switch StatusFilter(s) {
	case "", StatusAll:
		return StatusAll, nil
	case StatusPending:
		return StatusPending, nil
	case StatusDone:
		return StatusDone, nil
	default:
		return "", fmt.Errorf("%w: unknown status filter %q", ErrInvalidInput, s)
	}
}

// SearchField selects which field(s) a search keyword is matched against.
// Matching is case-insensitive substring ("contains") in every mode;
// FieldSequence matches the decimal text of the user sequence, so "1"
// matches 1, 10, 12 and so on.
type SearchField string

const (
	FieldAll      SearchField = "all"
	FieldUID      SearchField = "uid"
	FieldContent  SearchField = "content"
	FieldSequence SearchField = "seq"
)

// ParseSearchField maps a user-facing string to a SearchField.
// The empty string means FieldAll.
func ParseSearchField(s string) (SearchField, error) {
	switch SearchField(s) {
	case "", FieldAll:
		return FieldAll, nil
	case FieldUID:
		return FieldUID, nil
	case FieldContent:
		return FieldContent, nil
	case FieldSequence:
		return FieldSequence, nil
	default:
		return "", fmt.Errorf("%w: unknown search field %q", ErrInvalidInput, s)
	}
}

// AllCategories is the category filter sentinel that disables category
// narrowing.
const AllCategories = ""

// SearchQuery bundles the parameters of a record search. The zero value
// scoped to an owner and AllFolders matches every record the owner has.
type SearchQuery struct {
	Owner    string
	FolderID int64
	Category string
	Status   StatusFilter
	Field    SearchField
	Keyword  string
}
