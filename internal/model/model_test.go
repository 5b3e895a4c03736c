package model_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/marklib/marks/internal/model"
)

func TestNewBookmark_AssignsIDAndTimestamps(t *testing.T) {
	b, err := model.NewBookmark(model.NewBookmarkParams{
		Title: "TanStack Router",
		URL:   "https://tanstack.com/router",
		Tags:  []string{"react", "routing"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if b.ID == "" {
		t.Error("expected generated ID")
	}
	if b.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
	if !b.UpdatedAt.Equal(b.CreatedAt) {
		t.Errorf("expected UpdatedAt == CreatedAt at creation, got %v vs %v", b.UpdatedAt, b.CreatedAt)
	}
	if b.Favorite {
		t.Error("expected favorite to default to false")
	}

	other, err := model.NewBookmark(model.NewBookmarkParams{Title: "x", URL: "y"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if other.ID == b.ID {
		t.Error("expected unique IDs")
	}
}

func TestNewBookmark_RejectsEmptyFields(t *testing.T) {
	tests := []struct {
		name    string
		params  model.NewBookmarkParams
		wantErr error
	}{
		{
			name:    "empty title",
			params:  model.NewBookmarkParams{Title: "", URL: "https://x.com"},
			wantErr: model.ErrEmptyTitle,
		},
		{
			name:    "whitespace title",
			params:  model.NewBookmarkParams{Title: "   ", URL: "https://x.com"},
			wantErr: model.ErrEmptyTitle,
		},
		{
			name:    "empty url",
			params:  model.NewBookmarkParams{Title: "X", URL: ""},
			wantErr: model.ErrEmptyURL,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := model.NewBookmark(tt.params)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestNewBookmark_NilTagsBecomeEmptySlice(t *testing.T) {
	b, err := model.NewBookmark(model.NewBookmarkParams{Title: "X", URL: "https://x.com"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Tags == nil {
		t.Error("expected non-nil tags slice")
	}
	if len(b.Tags) != 0 {
		t.Errorf("expected empty tags, got %v", b.Tags)
	}
}

func TestBookmark_JSONRoundTrip(t *testing.T) {
	b, err := model.NewBookmark(model.NewBookmarkParams{
		Title:       "Hacker News",
		URL:         "https://news.ycombinator.com",
		Description: "orange site",
		Category:    "4",
		Tags:        []string{"news"},
		Favorite:    true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := json.Marshal(b)
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}

	var got model.Bookmark
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}

	if got.ID != b.ID || got.Title != b.Title || got.URL != b.URL {
		t.Errorf("identity fields mismatch: got %+v", got)
	}
	if got.Description != b.Description || got.Category != b.Category {
		t.Errorf("metadata mismatch: got %+v", got)
	}
	if !got.Favorite {
		t.Error("favorite flag lost in round trip")
	}
	if !got.CreatedAt.Equal(b.CreatedAt) || !got.UpdatedAt.Equal(b.UpdatedAt) {
		t.Error("timestamps changed in round trip")
	}
}

func TestNormalizeTags(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"dedupes", []string{"go", "go", "web"}, []string{"go", "web"}},
		{"trims", []string{" go ", "web"}, []string{"go", "web"}},
		{"drops empty", []string{"", "  ", "go"}, []string{"go"}},
		{"keeps order", []string{"b", "a", "b"}, []string{"b", "a"}},
		{"nil input", nil, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := model.NormalizeTags(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("expected %v, got %v", tt.want, got)
					break
				}
			}
		})
	}
}

func TestDefaultCategories(t *testing.T) {
	categories := model.DefaultCategories()

	if len(categories) != 10 {
		t.Fatalf("expected 10 default categories, got %d", len(categories))
	}

	ids := make(map[string]bool)
	for _, c := range categories {
		if ids[c.ID] {
			t.Errorf("duplicate category id %q", c.ID)
		}
		ids[c.ID] = true
		if c.Name == "" || c.Color == "" || c.Icon == "" {
			t.Errorf("category %q has empty fields: %+v", c.ID, c)
		}
	}
}

func TestNewCategory_AssignsID(t *testing.T) {
	c := model.NewCategory(model.NewCategoryParams{Name: "Gaming", Color: "#000000", Icon: "🎮"})
	if c.ID == "" {
		t.Error("expected generated ID")
	}
	if c.Name != "Gaming" {
		t.Errorf("expected name Gaming, got %q", c.Name)
	}
}
