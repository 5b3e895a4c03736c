package tui

import (
	"fmt"
	"strings"

	"github.com/marklib/marks/internal/model"
)

// renderView draws the full screen: header, search line, bookmark
// list, status and help lines.
func (a App) renderView() string {
	var b strings.Builder

	filters := a.bookmarks.Filters()

	header := fmt.Sprintf("marks — %d/%d", len(a.visible), a.bookmarks.Len())
	header += fmt.Sprintf("  [%s %s]", filters.SortBy, filters.SortOrder)
	if filters.FavoritesOnly {
		header += "  ★ only"
	}
	b.WriteString(a.styles.Title.Render(header))
	b.WriteString("\n")

	if a.mode == modeSearch || a.searchInput.Value() != "" {
		b.WriteString(a.searchInput.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if len(a.visible) == 0 {
		b.WriteString(a.styles.Empty.Render("no bookmarks match"))
		b.WriteString("\n")
	}

	for i, bm := range a.visible {
		b.WriteString(a.renderItem(bm, i == a.cursor))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if a.mode == modeConfirmDelete {
		if bm, ok := a.selected(); ok {
			b.WriteString(a.styles.Status.Render(fmt.Sprintf("delete %q? (y/n)", bm.Title)))
		}
	} else if a.status != "" {
		b.WriteString(a.styles.Status.Render(a.status))
	}
	b.WriteString("\n")

	b.WriteString(a.styles.Help.Render("j/k: move  /: search  f: fav  F: favs only  s/S: sort  d: delete  Y: yank  o: open  q: quit"))

	return a.styles.App.Render(b.String())
}

// renderItem draws one bookmark line plus its URL detail line.
func (a App) renderItem(bm model.Bookmark, selected bool) string {
	style := a.styles.Item
	if selected {
		style = a.styles.ItemSelected
	}

	line := bm.Title
	if bm.Favorite {
		line = a.styles.Favorite.Render("★") + " " + line
	} else {
		line = "  " + line
	}

	if c, ok := a.categories.Get(bm.Category); ok {
		line += " " + a.styles.Category.Render(c.Icon+" "+c.Name)
	}
	if len(bm.Tags) > 0 {
		line += " " + a.styles.Tag.Render("#"+strings.Join(bm.Tags, " #"))
	}

	detail := a.styles.URL.Render("   " + bm.URL)

	return style.Render(line) + "\n" + detail
}
