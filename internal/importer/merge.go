package importer

import (
	"github.com/marklib/marks/internal/model"
	"github.com/marklib/marks/internal/store"
)

// Styling for categories created on the fly during import.
const (
	importedCategoryColor = "#6B7280"
	importedCategoryIcon  = "📁"
)

// Merge adds the parsed entries to the stores. Entries whose URL is
// already present are skipped. Folder names are mapped onto categories
// by display name, creating the category when no match exists.
func Merge(entries []Entry, bookmarks *store.BookmarkStore, categories *store.CategoryStore) (added, skipped int, err error) {
	existing := make(map[string]bool)
	for _, b := range bookmarks.All() {
		existing[b.URL] = true
	}

	for _, entry := range entries {
		if existing[entry.URL] {
			skipped++
			continue
		}

		categoryID := ""
		if entry.Category != "" {
			c, ok := categories.GetByName(entry.Category)
			if !ok {
				c, err = categories.Add(model.NewCategoryParams{
					Name:  entry.Category,
					Color: importedCategoryColor,
					Icon:  importedCategoryIcon,
				})
				if err != nil {
					return added, skipped, err
				}
			}
			categoryID = c.ID
		}

		if _, err = bookmarks.Add(model.NewBookmarkParams{
			Title:       entry.Title,
			URL:         entry.URL,
			Description: entry.Description,
			Category:    categoryID,
			Tags:        entry.Tags,
		}); err != nil {
			return added, skipped, err
		}
		existing[entry.URL] = true
		added++
	}

	return added, skipped, nil
}
