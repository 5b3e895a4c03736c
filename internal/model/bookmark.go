package model

import (
	"errors"
	"strings"
	"time"
)

// Validation errors returned by NewBookmark.
var (
	ErrEmptyTitle = errors.New("bookmark title must not be empty")
	ErrEmptyURL   = errors.New("bookmark url must not be empty")
)

// Bookmark represents a saved URL with metadata.
type Bookmark struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category"` // category ID, may dangle
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Favorite    bool      `json:"favorite"`
}

// NewBookmarkParams holds parameters for creating a new Bookmark.
// ID and timestamps are always assigned by NewBookmark, never by callers.
type NewBookmarkParams struct {
	Title       string
	URL         string
	Description string
	Category    string
	Tags        []string
	Favorite    bool
}

// NewBookmark creates a Bookmark with generated UUID and timestamps.
// Title and URL are required; whitespace-only values count as empty.
func NewBookmark(params NewBookmarkParams) (Bookmark, error) {
	if strings.TrimSpace(params.Title) == "" {
		return Bookmark{}, ErrEmptyTitle
	}
	if strings.TrimSpace(params.URL) == "" {
		return Bookmark{}, ErrEmptyURL
	}

	tags := params.Tags
	if tags == nil {
		tags = []string{}
	}

	now := time.Now()
	return Bookmark{
		ID:          GenerateUUID(),
		Title:       params.Title,
		URL:         params.URL,
		Description: params.Description,
		Category:    params.Category,
		Tags:        tags,
		CreatedAt:   now,
		UpdatedAt:   now,
		Favorite:    params.Favorite,
	}, nil
}

// NormalizeTags trims whitespace and drops empty and duplicate tags,
// preserving first-seen order. Input edges (forms, CLI flags) should run
// tags through this before handing them to the store.
func NormalizeTags(tags []string) []string {
	result := []string{}
	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		result = append(result, tag)
	}
	return result
}

// HasTag reports whether the bookmark carries the given tag.
func (b Bookmark) HasTag(tag string) bool {
	for _, t := range b.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
