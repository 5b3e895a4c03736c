package storage

import (
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/marklib/marks/internal/model"
)

const currentSchemaVersion = 1

// SQLiteStorage implements Storage using a SQLite database.
type SQLiteStorage struct {
	db   *sql.DB
	path string
}

// NewSQLiteStorage creates a new SQLiteStorage with the given database path.
func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, err
		}
	}

	s := &SQLiteStorage{db: db, path: path}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// Path returns the database file path.
func (s *SQLiteStorage) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// migrate runs database migrations.
func (s *SQLiteStorage) migrate() error {
	var version int
	err := s.db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err != nil {
		// Table doesn't exist or is empty, start fresh
		version = 0
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	return nil
}

// migrateV1 creates the initial schema.
func (s *SQLiteStorage) migrateV1() error {
	schema := `
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS bookmarks (
			id TEXT PRIMARY KEY NOT NULL,
			position INTEGER NOT NULL,
			title TEXT NOT NULL,
			url TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL DEFAULT '',
			tags TEXT NOT NULL DEFAULT '[]',
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL,
			favorite INTEGER NOT NULL DEFAULT 0
		);

		CREATE INDEX IF NOT EXISTS idx_bookmarks_category ON bookmarks(category);
		CREATE INDEX IF NOT EXISTS idx_bookmarks_favorite ON bookmarks(favorite) WHERE favorite = 1;

		CREATE TABLE IF NOT EXISTS categories (
			id TEXT PRIMARY KEY NOT NULL,
			position INTEGER NOT NULL,
			name TEXT NOT NULL,
			color TEXT NOT NULL,
			icon TEXT NOT NULL
		);

		INSERT OR REPLACE INTO schema_version (version) VALUES (1);
	`
	_, err := s.db.Exec(schema)
	return err
}

// LoadBookmarks reads the bookmark collection in insertion order.
func (s *SQLiteStorage) LoadBookmarks() ([]model.Bookmark, error) {
	bookmarks := []model.Bookmark{}

	rows, err := s.db.Query(`
		SELECT id, title, url, description, category, tags, created_at, updated_at, favorite
		FROM bookmarks
		ORDER BY position
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var b model.Bookmark
		var tagsJSON string
		var createdAtStr, updatedAtStr string
		var favorite int

		if err := rows.Scan(
			&b.ID, &b.Title, &b.URL, &b.Description, &b.Category,
			&tagsJSON, &createdAtStr, &updatedAtStr, &favorite,
		); err != nil {
			return nil, err
		}

		if err := json.Unmarshal([]byte(tagsJSON), &b.Tags); err != nil {
			b.Tags = []string{}
		}
		if b.Tags == nil {
			b.Tags = []string{}
		}

		b.CreatedAt, _ = time.Parse(time.RFC3339, createdAtStr)
		b.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAtStr)
		b.Favorite = favorite == 1

		bookmarks = append(bookmarks, b)
	}

	return bookmarks, rows.Err()
}

// SaveBookmarks replaces the bookmark collection atomically.
func (s *SQLiteStorage) SaveBookmarks(bookmarks []model.Bookmark) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM bookmarks"); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO bookmarks (id, position, title, url, description, category, tags, created_at, updated_at, favorite)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, b := range bookmarks {
		tagsJSON, _ := json.Marshal(b.Tags)
		if b.Tags == nil {
			tagsJSON = []byte("[]")
		}

		favorite := 0
		if b.Favorite {
			favorite = 1
		}

		if _, err := stmt.Exec(
			b.ID, i, b.Title, b.URL, b.Description, b.Category,
			string(tagsJSON),
			b.CreatedAt.Format(time.RFC3339),
			b.UpdatedAt.Format(time.RFC3339),
			favorite,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// LoadCategories reads the category collection in insertion order.
// An empty table yields the built-in default set.
func (s *SQLiteStorage) LoadCategories() ([]model.Category, error) {
	categories := []model.Category{}

	rows, err := s.db.Query(`
		SELECT id, name, color, icon
		FROM categories
		ORDER BY position
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Color, &c.Icon); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(categories) == 0 {
		return model.DefaultCategories(), nil
	}
	return categories, nil
}

// SaveCategories replaces the category collection atomically.
func (s *SQLiteStorage) SaveCategories(categories []model.Category) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM categories"); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO categories (id, position, name, color, icon)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, c := range categories {
		if _, err := stmt.Exec(c.ID, i, c.Name, c.Color, c.Icon); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// DefaultSQLitePath returns the default SQLite database path: ~/.config/marks/marks.db
func DefaultSQLitePath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "marks", "marks.db"), nil
}
