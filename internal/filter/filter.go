// Package filter implements the free-text and status filtering shared by all
// list screens.
package filter

import (
	"strings"

	"docdesk/internal/domain"
)

// Searchable is implemented by records that can be listed and filtered.
type Searchable interface {
	// SearchFields returns identifying fields in match priority order.
	SearchFields() []string
	StatusTag() string
}

// Apply returns the items whose search fields contain query (case-insensitive)
// and whose status equals status exactly. An empty query matches everything and
// a status of "" or "all" disables the status check. Order is preserved.
func Apply[T Searchable](items []T, query, status string) []T {
	q := strings.ToLower(strings.TrimSpace(query))
	matchAllStatuses := status == "" || status == domain.StatusAll

	out := make([]T, 0, len(items))
	for _, item := range items {
		if !matchAllStatuses && item.StatusTag() != status {
			continue
		}
		if q != "" && !matchesText(item, q) {
			continue
		}
		out = append(out, item)
	}
	return out
}

// Documents filters canonical documents.
func Documents(docs []domain.DocumentData, query, status string) []domain.DocumentData {
	return Apply(docs, query, status)
}

func matchesText(item Searchable, q string) bool {
	for _, f := range item.SearchFields() {
		if f != "" && strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
