package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marklib/marks/internal/model"
	"github.com/marklib/marks/internal/storage"
	"github.com/marklib/marks/internal/store"
)

func newTestApp(t *testing.T) (App, *store.BookmarkStore) {
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

	titles := []string{"Alpha Docs", "Beta Blog", "Gamma Wiki"}
	for _, title := range titles {
		if _, err := bookmarks.Add(model.NewBookmarkParams{
			Title: title,
			URL:   "https://" + strings.Fields(title)[0] + ".example.com",
		}); err != nil {
			t.Fatal(err)
		}
		time.Sleep(time.Millisecond)
	}

	app := NewApp(AppParams{Bookmarks: bookmarks, Categories: categories})
	return app, bookmarks
}

func press(t *testing.T, app App, keys ...string) App {
	t.Helper()
	for _, k := range keys {
		var msg tea.Msg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		updated, _ := app.Update(msg)
		app = updated.(App)
	}
	return app
}

func TestNewApp_RunsPipelineNewestFirst(t *testing.T) {
	app, _ := newTestApp(t)

	visible := app.Visible()
	if len(visible) != 3 {
		t.Fatalf("expected 3 visible bookmarks, got %d", len(visible))
	}
	if visible[0].Title != "Gamma Wiki" {
		t.Errorf("expected newest bookmark first, got %s", visible[0].Title)
	}
	if app.Cursor() != 0 {
		t.Errorf("expected cursor at 0, got %d", app.Cursor())
	}
}

func TestApp_Navigation(t *testing.T) {
	app, _ := newTestApp(t)

	app = press(t, app, "j", "j")
	if app.Cursor() != 2 {
		t.Errorf("expected cursor 2 after jj, got %d", app.Cursor())
	}

	// Clamped at the bottom
	app = press(t, app, "j")
	if app.Cursor() != 2 {
		t.Errorf("expected cursor clamped at 2, got %d", app.Cursor())
	}

	app = press(t, app, "k")
	if app.Cursor() != 1 {
		t.Errorf("expected cursor 1 after k, got %d", app.Cursor())
	}

	app = press(t, app, "G")
	if app.Cursor() != 2 {
		t.Errorf("expected cursor 2 after G, got %d", app.Cursor())
	}

	app = press(t, app, "g", "g")
	if app.Cursor() != 0 {
		t.Errorf("expected cursor 0 after gg, got %d", app.Cursor())
	}
}

func TestApp_SearchFiltersOnEveryKeystroke(t *testing.T) {
	app, _ := newTestApp(t)

	app = press(t, app, "/")
	if app.mode != modeSearch {
		t.Fatal("expected search mode after /")
	}

	app = press(t, app, "b", "e", "t", "a")
	visible := app.Visible()
	if len(visible) != 1 || visible[0].Title != "Beta Blog" {
		t.Fatalf("expected only Beta Blog visible, got %v", visible)
	}

	// Enter keeps the filter, Esc clears it
	app = press(t, app, "enter")
	if app.mode != modeBrowse {
		t.Error("expected browse mode after enter")
	}
	if len(app.Visible()) != 1 {
		t.Error("expected filter kept after enter")
	}

	app = press(t, app, "/", "esc")
	if len(app.Visible()) != 3 {
		t.Errorf("expected all bookmarks after esc, got %d", len(app.Visible()))
	}
}

func TestApp_ToggleFavorite(t *testing.T) {
	app, bookmarks := newTestApp(t)

	selected := app.Visible()[0]
	app = press(t, app, "f")

	b, ok := bookmarks.Get(selected.ID)
	if !ok || !b.Favorite {
		t.Error("expected selected bookmark to be favorited")
	}

	app = press(t, app, "f")
	b, _ = bookmarks.Get(selected.ID)
	if b.Favorite {
		t.Error("expected favorite toggled back off")
	}
}

func TestApp_FavoritesOnlyFilter(t *testing.T) {
	app, bookmarks := newTestApp(t)

	target := app.Visible()[1]
	if _, err := bookmarks.ToggleFavorite(target.ID); err != nil {
		t.Fatal(err)
	}

	app = press(t, app, "F")
	visible := app.Visible()
	if len(visible) != 1 || visible[0].ID != target.ID {
		t.Fatalf("expected only the favorite visible, got %v", visible)
	}

	app = press(t, app, "F")
	if len(app.Visible()) != 3 {
		t.Errorf("expected all bookmarks after toggling off, got %d", len(app.Visible()))
	}
}

func TestApp_SortCycling(t *testing.T) {
	app, bookmarks := newTestApp(t)

	app = press(t, app, "s")
	if got := bookmarks.Filters().SortBy; got != model.SortByUpdatedAt {
		t.Errorf("expected sort by updatedAt, got %s", got)
	}

	app = press(t, app, "s")
	if got := bookmarks.Filters().SortBy; got != model.SortByTitle {
		t.Errorf("expected sort by title, got %s", got)
	}
	// Order is still descending, so Gamma sorts first by title
	if app.Visible()[0].Title != "Gamma Wiki" {
		t.Errorf("expected Gamma Wiki first under descending title sort, got %s", app.Visible()[0].Title)
	}
}

func TestApp_OrderFlip(t *testing.T) {
	app, bookmarks := newTestApp(t)

	app = press(t, app, "S")
	if got := bookmarks.Filters().SortOrder; got != model.SortAsc {
		t.Errorf("expected ascending order, got %s", got)
	}
	if app.Visible()[0].Title != "Alpha Docs" {
		t.Errorf("expected oldest first under createdAt asc, got %s", app.Visible()[0].Title)
	}

	app = press(t, app, "S")
	if got := bookmarks.Filters().SortOrder; got != model.SortDesc {
		t.Errorf("expected descending order, got %s", got)
	}
}

func TestApp_DeleteRequiresConfirmation(t *testing.T) {
	app, bookmarks := newTestApp(t)

	app = press(t, app, "d")
	if app.mode != modeConfirmDelete {
		t.Fatal("expected confirm mode after d")
	}

	// Anything but y/enter cancels
	app = press(t, app, "n")
	if app.mode != modeBrowse {
		t.Error("expected browse mode after cancel")
	}
	if bookmarks.Len() != 3 {
		t.Errorf("expected 3 bookmarks after cancel, got %d", bookmarks.Len())
	}

	target := app.Visible()[0]
	app = press(t, app, "d", "y")
	if bookmarks.Len() != 2 {
		t.Errorf("expected 2 bookmarks after confirmed delete, got %d", bookmarks.Len())
	}
	if _, ok := bookmarks.Get(target.ID); ok {
		t.Error("expected selected bookmark deleted")
	}
	if len(app.Visible()) != 2 {
		t.Errorf("expected 2 visible after delete, got %d", len(app.Visible()))
	}
}

func TestApp_OpenInvokesCallback(t *testing.T) {
	st := storage.NewJSONStorage(t.TempDir())
	bookmarks, err := store.NewBookmarkStore(st)
	if err != nil {
		t.Fatal(err)
	}
	categories, err := store.NewCategoryStore(st)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := bookmarks.Add(model.NewBookmarkParams{Title: "Go", URL: "https://go.dev"}); err != nil {
		t.Fatal(err)
	}

	var opened string
	app := NewApp(AppParams{
		Bookmarks:  bookmarks,
		Categories: categories,
		OpenURL:    func(url string) { opened = url },
	})

	press(t, app, "o")
	if opened != "https://go.dev" {
		t.Errorf("expected open callback with https://go.dev, got %q", opened)
	}
}

func TestApp_ViewRendersVisibleBookmarks(t *testing.T) {
	app, _ := newTestApp(t)

	out := app.View()
	for _, title := range []string{"Alpha Docs", "Beta Blog", "Gamma Wiki"} {
		if !strings.Contains(out, title) {
			t.Errorf("expected view to contain %q", title)
		}
	}
	if !strings.Contains(out, "3/3") {
		t.Error("expected view to show the visible/total count")
	}
}
