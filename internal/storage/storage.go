package storage

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/marklib/marks/internal/model"
)

// Slot keys for the two persisted collections. The JSON backend uses
// them as file names.
const (
	BookmarksKey  = "bookmark-manager-bookmarks"
	CategoriesKey = "bookmark-manager-categories"
)

// Storage defines the interface for persisting the bookmark and
// category collections. Both slots are independent and each Save
// overwrites the slot wholesale.
type Storage interface {
	LoadBookmarks() ([]model.Bookmark, error)
	SaveBookmarks(bookmarks []model.Bookmark) error
	LoadCategories() ([]model.Category, error)
	SaveCategories(categories []model.Category) error
}

// JSONStorage implements Storage using one JSON file per slot inside
// a data directory.
type JSONStorage struct {
	dir string
}

// NewJSONStorage creates a JSONStorage rooted at the given directory.
func NewJSONStorage(dir string) *JSONStorage {
	return &JSONStorage{dir: dir}
}

// Dir returns the storage directory.
func (s *JSONStorage) Dir() string {
	return s.dir
}

// LoadBookmarks reads the bookmark collection. A missing file or
// malformed JSON yields an empty collection, not an error.
func (s *JSONStorage) LoadBookmarks() ([]model.Bookmark, error) {
	var bookmarks []model.Bookmark
	ok, err := s.loadSlot(BookmarksKey, &bookmarks)
	if err != nil {
		return nil, err
	}
	if !ok || bookmarks == nil {
		return []model.Bookmark{}, nil
	}
	return bookmarks, nil
}

// SaveBookmarks writes the bookmark collection, replacing prior content.
func (s *JSONStorage) SaveBookmarks(bookmarks []model.Bookmark) error {
	return s.saveSlot(BookmarksKey, bookmarks)
}

// LoadCategories reads the category collection. A missing file or
// malformed JSON yields the built-in default set.
func (s *JSONStorage) LoadCategories() ([]model.Category, error) {
	var categories []model.Category
	ok, err := s.loadSlot(CategoriesKey, &categories)
	if err != nil {
		return nil, err
	}
	if !ok || categories == nil {
		return model.DefaultCategories(), nil
	}
	return categories, nil
}

// SaveCategories writes the category collection, replacing prior content.
func (s *JSONStorage) SaveCategories(categories []model.Category) error {
	return s.saveSlot(CategoriesKey, categories)
}

// loadSlot decodes one slot file into v. It reports ok=false for a
// missing file or undecodable content so callers can substitute their
// default collection.
func (s *JSONStorage) loadSlot(key string, v any) (ok bool, err error) {
	data, err := os.ReadFile(s.slotPath(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		// Corrupt slot: recover with the caller's default.
		return false, nil
	}
	return true, nil
}

// saveSlot writes one slot file, creating the directory if needed.
func (s *JSONStorage) saveSlot(key string, v any) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.slotPath(key), data, 0644)
}

func (s *JSONStorage) slotPath(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// DefaultDataDir returns the default data directory: ~/.config/marks
func DefaultDataDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "marks"), nil
}

// OpenStorage opens the appropriate storage backend.
// Prefers SQLite if the database file exists, otherwise falls back to JSON.
func OpenStorage() (Storage, error) {
	sqlitePath, err := DefaultSQLitePath()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(sqlitePath); err == nil {
		return NewSQLiteStorage(sqlitePath)
	}

	dir, err := DefaultDataDir()
	if err != nil {
		return nil, err
	}
	return NewJSONStorage(dir), nil
}
