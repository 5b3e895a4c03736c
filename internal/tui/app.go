package tui

import (
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marklib/marks/internal/model"
	"github.com/marklib/marks/internal/store"
)

// mode is the current input mode of the application.
type mode int

const (
	modeBrowse mode = iota
	modeSearch
	modeConfirmDelete
)

// App is the main bubbletea model for the bookmark manager.
type App struct {
	bookmarks  *store.BookmarkStore
	categories *store.CategoryStore
	keys       KeyMap
	styles     Styles

	mode        mode
	cursor      int
	visible     []model.Bookmark // current output of the view pipeline
	searchInput textinput.Model
	status      string

	// For gg command
	lastKeyWasG bool

	// Opens a URL in the browser; nil disables the binding.
	openURL func(url string)

	width  int
	height int
}

// AppParams holds parameters for creating a new App.
type AppParams struct {
	Bookmarks  *store.BookmarkStore
	Categories *store.CategoryStore
	OpenURL    func(url string) // optional
	Keys       *KeyMap          // optional, uses default if nil
	Styles     *Styles          // optional, uses default if nil
}

// NewApp creates a new App with the given parameters.
func NewApp(params AppParams) App {
	keys := DefaultKeyMap()
	if params.Keys != nil {
		keys = *params.Keys
	}

	styles := DefaultStyles()
	if params.Styles != nil {
		styles = *params.Styles
	}

	input := textinput.New()
	input.Placeholder = "search title, url, description"
	input.Prompt = "/"

	app := App{
		bookmarks:   params.Bookmarks,
		categories:  params.Categories,
		keys:        keys,
		styles:      styles,
		searchInput: input,
		openURL:     params.OpenURL,
		width:       80,
		height:      24,
	}

	app.refresh()
	return app
}

// refresh re-runs the view pipeline and clamps the cursor.
func (a *App) refresh() {
	a.visible = a.bookmarks.View()
	if a.cursor >= len(a.visible) {
		a.cursor = len(a.visible) - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

// Cursor returns the current cursor position.
func (a App) Cursor() int {
	return a.cursor
}

// Visible returns the currently displayed bookmarks.
func (a App) Visible() []model.Bookmark {
	return a.visible
}

// selected returns the bookmark under the cursor.
func (a App) selected() (model.Bookmark, bool) {
	if len(a.visible) == 0 || a.cursor >= len(a.visible) {
		return model.Bookmark{}, false
	}
	return a.visible[a.cursor], true
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		switch a.mode {
		case modeSearch:
			return a.updateSearch(msg)
		case modeConfirmDelete:
			return a.updateConfirmDelete(msg)
		default:
			return a.updateBrowse(msg)
		}
	}

	return a, nil
}

// updateSearch handles keys while the search input is focused. The
// pipeline re-runs on every keystroke.
func (a App) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		a.mode = modeBrowse
		a.searchInput.Blur()
		return a, nil

	case tea.KeyEsc:
		a.mode = modeBrowse
		a.searchInput.Blur()
		a.searchInput.SetValue("")
		a.setSearch("")
		return a, nil
	}

	var cmd tea.Cmd
	a.searchInput, cmd = a.searchInput.Update(msg)
	a.setSearch(a.searchInput.Value())
	return a, cmd
}

// updateConfirmDelete handles the delete confirmation gate.
func (a App) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		if b, ok := a.selected(); ok {
			if _, err := a.bookmarks.Delete(b.ID); err != nil {
				a.status = err.Error()
			} else {
				a.status = "deleted " + b.Title
			}
			a.refresh()
		}
	}
	a.mode = modeBrowse
	return a, nil
}

// updateBrowse handles keys in the default browse mode.
func (a App) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Handle gg sequence
	if key.Matches(msg, a.keys.Top) {
		if a.lastKeyWasG {
			a.cursor = 0
			a.lastKeyWasG = false
			return a, nil
		}
		a.lastKeyWasG = true
		return a, nil
	}
	a.lastKeyWasG = false

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Down):
		if len(a.visible) > 0 && a.cursor < len(a.visible)-1 {
			a.cursor++
		}

	case key.Matches(msg, a.keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}

	case key.Matches(msg, a.keys.Bottom):
		if len(a.visible) > 0 {
			a.cursor = len(a.visible) - 1
		}

	case key.Matches(msg, a.keys.Search):
		a.mode = modeSearch
		a.searchInput.Focus()
		return a, textinput.Blink

	case key.Matches(msg, a.keys.Favorite):
		if b, ok := a.selected(); ok {
			if _, err := a.bookmarks.ToggleFavorite(b.ID); err != nil {
				a.status = err.Error()
			}
			a.refresh()
		}

	case key.Matches(msg, a.keys.FavoritesOnly):
		filters := a.bookmarks.Filters()
		filters.FavoritesOnly = !filters.FavoritesOnly
		a.bookmarks.SetFilters(filters)
		a.refresh()

	case key.Matches(msg, a.keys.Sort):
		filters := a.bookmarks.Filters()
		filters.SortBy = nextSortField(filters.SortBy)
		a.bookmarks.SetFilters(filters)
		a.refresh()

	case key.Matches(msg, a.keys.Order):
		filters := a.bookmarks.Filters()
		if filters.SortOrder == model.SortAsc {
			filters.SortOrder = model.SortDesc
		} else {
			filters.SortOrder = model.SortAsc
		}
		a.bookmarks.SetFilters(filters)
		a.refresh()

	case key.Matches(msg, a.keys.Delete):
		if _, ok := a.selected(); ok {
			a.mode = modeConfirmDelete
		}

	case key.Matches(msg, a.keys.YankURL):
		if b, ok := a.selected(); ok {
			if err := clipboard.WriteAll(b.URL); err != nil {
				a.status = "clipboard unavailable"
			} else {
				a.status = "yanked " + b.URL
			}
		}

	case key.Matches(msg, a.keys.Open):
		if b, ok := a.selected(); ok && a.openURL != nil {
			a.openURL(b.URL)
		}
	}

	return a, nil
}

// setSearch replaces the search term, keeping the rest of the filters.
func (a *App) setSearch(term string) {
	filters := a.bookmarks.Filters()
	filters.Search = term
	a.bookmarks.SetFilters(filters)
	a.refresh()
}

// nextSortField cycles through the sortable fields.
func nextSortField(current model.SortField) model.SortField {
	fields := model.SortFields()
	for i, f := range fields {
		if f == current {
			return fields[(i+1)%len(fields)]
		}
	}
	return fields[0]
}

// View implements tea.Model.
func (a App) View() string {
	return a.renderView()
}
