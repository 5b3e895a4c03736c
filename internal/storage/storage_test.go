package storage_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"gotest.tools/v3/assert"

	"github.com/marklib/marks/internal/model"
	"github.com/marklib/marks/internal/storage"
)

func sampleBookmarks() []model.Bookmark {
	created := time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)
	return []model.Bookmark{
		{
			ID:          "b1",
			Title:       "TanStack Router",
			URL:         "https://tanstack.com/router",
			Description: "typesafe routing",
			Category:    "1",
			Tags:        []string{"react", "routing"},
			CreatedAt:   created,
			UpdatedAt:   created.Add(time.Hour),
			Favorite:    true,
		},
		{
			ID:        "b2",
			Title:     "Hacker News",
			URL:       "https://news.ycombinator.com",
			Category:  "",
			Tags:      []string{},
			CreatedAt: created,
			UpdatedAt: created,
		},
	}
}

func TestJSONStorage_RoundTrip(t *testing.T) {
	s := storage.NewJSONStorage(t.TempDir())
	original := sampleBookmarks()

	assert.NilError(t, s.SaveBookmarks(original))

	loaded, err := s.LoadBookmarks()
	assert.NilError(t, err)
	assert.DeepEqual(t, loaded, original)
}

func TestJSONStorage_CategoriesRoundTrip(t *testing.T) {
	s := storage.NewJSONStorage(t.TempDir())
	original := []model.Category{
		{ID: "1", Name: "Technology", Color: "#3B82F6", Icon: "💻"},
		{ID: "c2", Name: "Gaming", Color: "#123456", Icon: "🎮"},
	}

	assert.NilError(t, s.SaveCategories(original))

	loaded, err := s.LoadCategories()
	assert.NilError(t, err)
	assert.DeepEqual(t, loaded, original)
}

func TestJSONStorage_MissingSlotsYieldDefaults(t *testing.T) {
	s := storage.NewJSONStorage(filepath.Join(t.TempDir(), "does-not-exist"))

	bookmarks, err := s.LoadBookmarks()
	assert.NilError(t, err)
	assert.Equal(t, len(bookmarks), 0)
	assert.Assert(t, bookmarks != nil)

	categories, err := s.LoadCategories()
	assert.NilError(t, err)
	assert.DeepEqual(t, categories, model.DefaultCategories())
}

func TestJSONStorage_CorruptSlotsRecoverWithDefaults(t *testing.T) {
	dir := t.TempDir()
	s := storage.NewJSONStorage(dir)

	garbage := []byte("{not json")
	assert.NilError(t, os.WriteFile(filepath.Join(dir, storage.BookmarksKey+".json"), garbage, 0644))
	assert.NilError(t, os.WriteFile(filepath.Join(dir, storage.CategoriesKey+".json"), garbage, 0644))

	bookmarks, err := s.LoadBookmarks()
	assert.NilError(t, err)
	assert.Equal(t, len(bookmarks), 0)

	categories, err := s.LoadCategories()
	assert.NilError(t, err)
	assert.DeepEqual(t, categories, model.DefaultCategories())
}

func TestJSONStorage_SaveOverwritesWholesale(t *testing.T) {
	s := storage.NewJSONStorage(t.TempDir())
	original := sampleBookmarks()

	assert.NilError(t, s.SaveBookmarks(original))
	assert.NilError(t, s.SaveBookmarks(original[:1]))

	loaded, err := s.LoadBookmarks()
	assert.NilError(t, err)
	assert.Equal(t, len(loaded), 1)
	assert.Equal(t, loaded[0].ID, "b1")
}

func TestJSONStorage_PersistedEmptyCollectionStaysEmpty(t *testing.T) {
	s := storage.NewJSONStorage(t.TempDir())

	// An explicitly persisted empty collection must not be confused
	// with a missing one on reload.
	assert.NilError(t, s.SaveBookmarks([]model.Bookmark{}))
	bookmarks, err := s.LoadBookmarks()
	assert.NilError(t, err)
	assert.Equal(t, len(bookmarks), 0)

	assert.NilError(t, s.SaveCategories([]model.Category{}))
	categories, err := s.LoadCategories()
	assert.NilError(t, err)
	assert.Equal(t, len(categories), 0)
}

func TestJSONStorage_SlotsAreIndependent(t *testing.T) {
	s := storage.NewJSONStorage(t.TempDir())

	assert.NilError(t, s.SaveBookmarks(sampleBookmarks()))

	// Writing bookmarks must not touch the category slot
	categories, err := s.LoadCategories()
	assert.NilError(t, err)
	assert.DeepEqual(t, categories, model.DefaultCategories())
}
