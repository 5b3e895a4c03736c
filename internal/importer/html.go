package importer

import (
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/marklib/marks/internal/model"
)

// Entry is one link parsed from a bookmark export file. Category is
// the name of the enclosing folder, empty for top-level links. IDs and
// timestamps are assigned by the store when the entry is merged in.
type Entry struct {
	Title       string
	URL         string
	Description string
	Category    string
	Tags        []string
}

// ParseHTMLBookmarks parses Netscape bookmark HTML into entries.
// Nested folders flatten onto the innermost folder name.
func ParseHTMLBookmarks(r io.Reader) ([]Entry, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	var entries []Entry

	// Track the current folder stack; innermost name wins
	var folderStack []string
	var pendingFolder string

	var parse func(*html.Node)
	parse = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch strings.ToLower(n.Data) {
			case "h3":
				// Folder definition - becomes a category name
				if name := getTextContent(n); name != "" {
					// Pushed when we see the folder's DL
					pendingFolder = name
				}
				return // Don't recurse into H3

			case "a":
				href := getAttr(n, "href")
				if href == "" {
					// Skip bookmarks without URL
					return
				}

				title := getTextContent(n)
				if title == "" {
					title = href // fallback to URL as title
				}

				var category string
				if len(folderStack) > 0 {
					category = folderStack[len(folderStack)-1]
				}

				tags := []string{}
				if raw := getAttr(n, "tags"); raw != "" {
					tags = model.NormalizeTags(strings.Split(raw, ","))
				}

				entries = append(entries, Entry{
					Title:    title,
					URL:      href,
					Category: category,
					Tags:     tags,
				})
				return // Don't recurse into A

			case "dl":
				// Definition list marks folder contents
				pushedFolder := false
				if pendingFolder != "" {
					folderStack = append(folderStack, pendingFolder)
					pendingFolder = ""
					pushedFolder = true
				}

				for c := n.FirstChild; c != nil; c = c.NextSibling {
					parse(c)
				}

				if pushedFolder {
					folderStack = folderStack[:len(folderStack)-1]
				}
				return // Children already handled
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			parse(c)
		}
	}

	parse(doc)
	return entries, nil
}

// getTextContent returns the text content of a node.
func getTextContent(n *html.Node) string {
	var text strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			text.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(text.String())
}

// getAttr returns the value of an attribute, case-insensitive.
func getAttr(n *html.Node, key string) string {
	key = strings.ToLower(key)
	for _, attr := range n.Attr {
		if strings.ToLower(attr.Key) == key {
			return attr.Val
		}
	}
	return ""
}
