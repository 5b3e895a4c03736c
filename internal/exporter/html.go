package exporter

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/marklib/marks/internal/model"
)

// DefaultExportPath returns the default export file path.
// Format: ~/Downloads/bookmarks-export-YYYY-MM-DD.html
func DefaultExportPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("bookmarks-export-%s.html", time.Now().Format("2006-01-02"))
	return filepath.Join(home, "Downloads", filename), nil
}

// ExportHTML renders the collection as Netscape bookmark HTML.
// Bookmarks are grouped under one folder heading per category, in
// category order; uncategorized and dangling references come first at
// the top level.
func ExportHTML(bookmarks []model.Bookmark, categories []model.Category) string {
	var b strings.Builder

	b.WriteString("<!DOCTYPE NETSCAPE-Bookmark-file-1>\n")
	b.WriteString("<META HTTP-EQUIV=\"Content-Type\" CONTENT=\"text/html; charset=UTF-8\">\n")
	b.WriteString("<TITLE>Bookmarks</TITLE>\n")
	b.WriteString("<H1>Bookmarks</H1>\n")
	b.WriteString("<DL><p>\n")

	known := make(map[string]bool, len(categories))
	for _, c := range categories {
		known[c.ID] = true
	}

	// Top level: no category, or a reference to a deleted one
	for _, bm := range bookmarks {
		if bm.Category == "" || !known[bm.Category] {
			writeBookmark(&b, bm, 1)
		}
	}

	for _, c := range categories {
		group := []model.Bookmark{}
		for _, bm := range bookmarks {
			if bm.Category == c.ID {
				group = append(group, bm)
			}
		}
		if len(group) == 0 {
			continue
		}

		prefix := strings.Repeat("    ", 1)
		fmt.Fprintf(&b, "%s<DT><H3>%s</H3>\n", prefix, html.EscapeString(c.Name))
		fmt.Fprintf(&b, "%s<DL><p>\n", prefix)
		for _, bm := range group {
			writeBookmark(&b, bm, 2)
		}
		fmt.Fprintf(&b, "%s</DL><p>\n", prefix)
	}

	b.WriteString("</DL><p>\n")

	return b.String()
}

// writeBookmark writes a single DT/A line with creation timestamp and
// tags.
func writeBookmark(b *strings.Builder, bm model.Bookmark, indent int) {
	prefix := strings.Repeat("    ", indent)
	fmt.Fprintf(b, "%s<DT><A HREF=\"%s\" ADD_DATE=\"%d\"", prefix, html.EscapeString(bm.URL), bm.CreatedAt.Unix())
	if len(bm.Tags) > 0 {
		fmt.Fprintf(b, " TAGS=\"%s\"", html.EscapeString(strings.Join(bm.Tags, ",")))
	}
	fmt.Fprintf(b, ">%s</A>\n", html.EscapeString(bm.Title))
}
