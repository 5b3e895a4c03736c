// Package store owns the authoritative bookmark and category
// collections. Every successful mutation is written through to the
// storage backend before it becomes visible in memory, so the two
// never diverge; a failed write leaves the collection untouched.
package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/marklib/marks/internal/model"
	"github.com/marklib/marks/internal/storage"
	"github.com/marklib/marks/internal/view"
)

// ErrPersistence wraps storage write failures surfaced by mutations.
var ErrPersistence = errors.New("persistence unavailable")

// BookmarkStore holds the ordered bookmark collection and the
// transient filter options driving the derived view.
type BookmarkStore struct {
	storage   storage.Storage
	bookmarks []model.Bookmark
	filters   model.FilterOptions
}

// NewBookmarkStore loads the collection from storage. Missing or
// corrupt data comes back as an empty collection, so this only fails
// on real I/O errors.
func NewBookmarkStore(st storage.Storage) (*BookmarkStore, error) {
	bookmarks, err := st.LoadBookmarks()
	if err != nil {
		return nil, err
	}
	return &BookmarkStore{
		storage:   st,
		bookmarks: bookmarks,
		filters:   model.DefaultFilters(),
	}, nil
}

// Add validates the params, appends a freshly created bookmark and
// persists the collection. The stored bookmark is returned.
func (s *BookmarkStore) Add(params model.NewBookmarkParams) (model.Bookmark, error) {
	b, err := model.NewBookmark(params)
	if err != nil {
		return model.Bookmark{}, err
	}

	next := append(s.snapshot(), b)
	if err := s.persist(next); err != nil {
		return model.Bookmark{}, err
	}
	s.bookmarks = next
	return b, nil
}

// UpdateBookmarkParams describes a partial bookmark update. Nil fields
// are left unchanged.
type UpdateBookmarkParams struct {
	Title       *string
	URL         *string
	Description *string
	Category    *string
	Tags        []string
	Favorite    *bool
}

// Update merges the given fields into the bookmark with the given ID
// and refreshes its UpdatedAt. An unknown ID is a silent no-op
// reported via the boolean.
func (s *BookmarkStore) Update(id string, params UpdateBookmarkParams) (bool, error) {
	idx := s.indexOf(id)
	if idx < 0 {
		return false, nil
	}

	next := s.snapshot()
	b := &next[idx]
	if params.Title != nil {
		b.Title = *params.Title
	}
	if params.URL != nil {
		b.URL = *params.URL
	}
	if params.Description != nil {
		b.Description = *params.Description
	}
	if params.Category != nil {
		b.Category = *params.Category
	}
	if params.Tags != nil {
		b.Tags = params.Tags
	}
	if params.Favorite != nil {
		b.Favorite = *params.Favorite
	}
	b.UpdatedAt = time.Now()

	if err := s.persist(next); err != nil {
		return false, err
	}
	s.bookmarks = next
	return true, nil
}

// Delete removes the bookmark with the given ID and persists the
// collection, including the transition to empty. An unknown ID is a
// silent no-op.
func (s *BookmarkStore) Delete(id string) (bool, error) {
	idx := s.indexOf(id)
	if idx < 0 {
		return false, nil
	}

	next := append(s.snapshot()[:idx], s.bookmarks[idx+1:]...)
	if err := s.persist(next); err != nil {
		return false, err
	}
	s.bookmarks = next
	return true, nil
}

// ToggleFavorite flips the favorite flag of the bookmark with the
// given ID, refreshing UpdatedAt like any other mutation.
func (s *BookmarkStore) ToggleFavorite(id string) (bool, error) {
	idx := s.indexOf(id)
	if idx < 0 {
		return false, nil
	}
	favorite := !s.bookmarks[idx].Favorite
	return s.Update(id, UpdateBookmarkParams{Favorite: &favorite})
}

// SetFilters replaces the filter options wholesale.
func (s *BookmarkStore) SetFilters(filters model.FilterOptions) {
	s.filters = filters
}

// Filters returns the current filter options.
func (s *BookmarkStore) Filters() model.FilterOptions {
	return s.filters
}

// View derives the filtered, sorted bookmark list for display.
func (s *BookmarkStore) View() []model.Bookmark {
	return view.Apply(s.bookmarks, s.filters)
}

// All returns a copy of the full collection in insertion order.
func (s *BookmarkStore) All() []model.Bookmark {
	return s.snapshot()
}

// Get returns the bookmark with the given ID.
func (s *BookmarkStore) Get(id string) (model.Bookmark, bool) {
	idx := s.indexOf(id)
	if idx < 0 {
		return model.Bookmark{}, false
	}
	return s.bookmarks[idx], true
}

// Len returns the collection size.
func (s *BookmarkStore) Len() int {
	return len(s.bookmarks)
}

// Tags returns every tag in use across the collection, first-seen
// order, deduplicated.
func (s *BookmarkStore) Tags() []string {
	all := []string{}
	for _, b := range s.bookmarks {
		all = append(all, b.Tags...)
	}
	return model.NormalizeTags(all)
}

// indexOf returns the position of the bookmark with the given ID,
// or -1 if absent.
func (s *BookmarkStore) indexOf(id string) int {
	for i := range s.bookmarks {
		if s.bookmarks[i].ID == id {
			return i
		}
	}
	return -1
}

// snapshot copies the collection so mutations can be staged and only
// committed after a successful persist.
func (s *BookmarkStore) snapshot() []model.Bookmark {
	next := make([]model.Bookmark, len(s.bookmarks))
	copy(next, s.bookmarks)
	return next
}

func (s *BookmarkStore) persist(bookmarks []model.Bookmark) error {
	if err := s.storage.SaveBookmarks(bookmarks); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}
