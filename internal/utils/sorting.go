package utils

import "strings"

// SortField is a task list ordering key.
type SortField string

const (
	SortByCreatedAt SortField = "created_at"
	SortByDueDate   SortField = "due_date"
	SortByPriority  SortField = "priority"
)

// SortSpec is a parsed sort query parameter.
type SortSpec struct {
	Field      SortField
	Descending bool
}

// DefaultTaskSort orders by creation time, newest first.
var DefaultTaskSort = SortSpec{Field: SortByCreatedAt, Descending: true}

// ParseTaskSort parses a sort parameter of the form "[-]key". A leading "-"
// requests descending order. Unrecognized keys silently fall back to the
// default ordering.
func ParseTaskSort(raw string) SortSpec {
	if raw == "" {
		return DefaultTaskSort
	}

	desc := false
	key := raw
	if strings.HasPrefix(raw, "-") {
		desc = true
		key = raw[1:]
	}

	switch SortField(key) {
	case SortByCreatedAt, SortByDueDate, SortByPriority:
		return SortSpec{Field: SortField(key), Descending: desc}
	default:
		return DefaultTaskSort
	}
}
