// Package view derives the displayed bookmark list from the full
// collection and the current filter options. The derivation is a pure
// function: it never mutates its inputs and is safe to re-run on every
// keystroke.
package view

import (
	"sort"
	"strings"

	"github.com/marklib/marks/internal/model"
)

// Apply filters and sorts the given bookmarks according to filters.
// Stages run in a fixed order: text search, category, tags (OR),
// favorites, then a stable sort. The returned slice is freshly
// allocated; the input is left untouched.
func Apply(bookmarks []model.Bookmark, filters model.FilterOptions) []model.Bookmark {
	result := make([]model.Bookmark, 0, len(bookmarks))

	search := strings.ToLower(filters.Search)
	for _, b := range bookmarks {
		if search != "" && !matchesSearch(b, search) {
			continue
		}
		if filters.Category != "" && b.Category != filters.Category {
			continue
		}
		if len(filters.Tags) > 0 && !matchesAnyTag(b, filters.Tags) {
			continue
		}
		if filters.FavoritesOnly && !b.Favorite {
			continue
		}
		result = append(result, b)
	}

	sortBookmarks(result, filters.SortBy, filters.SortOrder)
	return result
}

// matchesSearch reports whether the lower-cased search term occurs in
// the bookmark's title, URL, or description.
func matchesSearch(b model.Bookmark, search string) bool {
	return strings.Contains(strings.ToLower(b.Title), search) ||
		strings.Contains(strings.ToLower(b.URL), search) ||
		(b.Description != "" && strings.Contains(strings.ToLower(b.Description), search))
}

// matchesAnyTag reports whether the bookmark shares at least one tag
// with the filter set.
func matchesAnyTag(b model.Bookmark, tags []string) bool {
	for _, tag := range tags {
		if b.HasTag(tag) {
			return true
		}
	}
	return false
}

// sortBookmarks orders the slice in place. The sort is stable so that
// bookmarks with equal keys keep their collection order.
func sortBookmarks(bookmarks []model.Bookmark, field model.SortField, order model.SortOrder) {
	sort.SliceStable(bookmarks, func(i, j int) bool {
		if order == model.SortDesc {
			i, j = j, i
		}
		return compare(bookmarks[i], bookmarks[j], field)
	})
}

// compare reports whether a orders strictly before b on the given
// field. Timestamps compare as instants, strings case-insensitively.
func compare(a, b model.Bookmark, field model.SortField) bool {
	switch field {
	case model.SortByTitle:
		return strings.ToLower(a.Title) < strings.ToLower(b.Title)
	case model.SortByURL:
		return strings.ToLower(a.URL) < strings.ToLower(b.URL)
	case model.SortByUpdatedAt:
		return a.UpdatedAt.Before(b.UpdatedAt)
	default: // createdAt
		return a.CreatedAt.Before(b.CreatedAt)
	}
}
