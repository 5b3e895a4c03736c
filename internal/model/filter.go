package model

// SortField selects the bookmark field to sort the view by.
type SortField string

const (
	SortByTitle     SortField = "title"
	SortByCreatedAt SortField = "createdAt"
	SortByUpdatedAt SortField = "updatedAt"
	SortByURL       SortField = "url"
)

// SortOrder selects ascending or descending view order.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// FilterOptions describes the current view query. It is transient
// state and never persisted.
type FilterOptions struct {
	Search        string    // case-insensitive substring over title/url/description
	Category      string    // category ID, empty = all
	Tags          []string  // OR semantics: any shared tag matches
	FavoritesOnly bool
	SortBy        SortField
	SortOrder     SortOrder
}

// DefaultFilters returns the initial view query: everything,
// newest first.
func DefaultFilters() FilterOptions {
	return FilterOptions{
		Search:        "",
		Category:      "",
		Tags:          []string{},
		FavoritesOnly: false,
		SortBy:        SortByCreatedAt,
		SortOrder:     SortDesc,
	}
}

// SortFields lists the sortable fields in cycle order for UIs.
func SortFields() []SortField {
	return []SortField{SortByCreatedAt, SortByUpdatedAt, SortByTitle, SortByURL}
}
