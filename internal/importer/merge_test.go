package importer_test

import (
	"testing"

	"github.com/marklib/marks/internal/importer"
	"github.com/marklib/marks/internal/model"
	"github.com/marklib/marks/internal/storage"
	"github.com/marklib/marks/internal/store"
)

func newStores(t *testing.T) (*store.BookmarkStore, *store.CategoryStore) {
	t.Helper()
	st := storage.NewJSONStorage(t.TempDir())
	bookmarks, err := store.NewBookmarkStore(st)
	if err != nil {
		t.Fatal(err)
	}
	categories, err := store.NewCategoryStore(st)
	if err != nil {
		t.Fatal(err)
	}
	return bookmarks, categories
}

func TestMerge_SkipsDuplicateURLs(t *testing.T) {
	bookmarks, categories := newStores(t)
	if _, err := bookmarks.Add(model.NewBookmarkParams{Title: "Existing", URL: "https://example.com"}); err != nil {
		t.Fatal(err)
	}

	entries := []importer.Entry{
		{Title: "Duplicate", URL: "https://example.com"},
		{Title: "New Site", URL: "https://newsite.com"},
	}

	added, skipped, err := importer.Merge(entries, bookmarks, categories)
	if err != nil {
		t.Fatalf("merge failed: %v", err)
	}

	if added != 1 {
		t.Errorf("expected 1 added, got %d", added)
	}
	if skipped != 1 {
		t.Errorf("expected 1 skipped, got %d", skipped)
	}
	if bookmarks.Len() != 2 {
		t.Errorf("expected 2 bookmarks, got %d", bookmarks.Len())
	}
}

func TestMerge_ReusesCategoryByName(t *testing.T) {
	bookmarks, categories := newStores(t)

	// "Technology" exists in the default set and must be reused
	entries := []importer.Entry{
		{Title: "Go", URL: "https://go.dev", Category: "Technology"},
	}

	if _, _, err := importer.Merge(entries, bookmarks, categories); err != nil {
		t.Fatalf("merge failed: %v", err)
	}

	if categories.Len() != 10 {
		t.Errorf("expected 10 categories (reused), got %d", categories.Len())
	}

	all := bookmarks.All()
	if len(all) != 1 {
		t.Fatalf("expected 1 bookmark, got %d", len(all))
	}
	tech, _ := categories.GetByName("Technology")
	if all[0].Category != tech.ID {
		t.Errorf("expected category %s, got %s", tech.ID, all[0].Category)
	}
}

func TestMerge_CreatesUnknownCategories(t *testing.T) {
	bookmarks, categories := newStores(t)

	entries := []importer.Entry{
		{Title: "A", URL: "https://a.com", Category: "Imported Stuff"},
		{Title: "B", URL: "https://b.com", Category: "Imported Stuff"},
	}

	if _, _, err := importer.Merge(entries, bookmarks, categories); err != nil {
		t.Fatalf("merge failed: %v", err)
	}

	if categories.Len() != 11 {
		t.Errorf("expected 11 categories (one created), got %d", categories.Len())
	}

	created, ok := categories.GetByName("Imported Stuff")
	if !ok {
		t.Fatal("expected Imported Stuff category")
	}
	for _, b := range bookmarks.All() {
		if b.Category != created.ID {
			t.Errorf("bookmark %s not in created category", b.Title)
		}
	}
}

func TestMerge_DuplicateURLsWithinImport(t *testing.T) {
	bookmarks, categories := newStores(t)

	entries := []importer.Entry{
		{Title: "First", URL: "https://same.com"},
		{Title: "Second", URL: "https://same.com"},
	}

	added, skipped, err := importer.Merge(entries, bookmarks, categories)
	if err != nil {
		t.Fatalf("merge failed: %v", err)
	}
	if added != 1 || skipped != 1 {
		t.Errorf("expected 1 added 1 skipped, got %d/%d", added, skipped)
	}
}
