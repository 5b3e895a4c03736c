package search

import (
	"github.com/marklib/marks/internal/model"
	"github.com/sahilm/fuzzy"
)

// Result represents a fuzzy search match.
type Result struct {
	Bookmark       model.Bookmark
	MatchedIndexes []int
	Score          int
}

// bookmarkTitles implements fuzzy.Source for a bookmark slice.
type bookmarkTitles []model.Bookmark

func (bt bookmarkTitles) String(i int) string {
	return bt[i].Title
}

func (bt bookmarkTitles) Len() int {
	return len(bt)
}

// Bookmarks searches the collection by title using fuzzy matching.
// Results come back sorted by match score, best first.
func Bookmarks(bookmarks []model.Bookmark, query string) []Result {
	if query == "" {
		return nil
	}

	matches := fuzzy.FindFrom(query, bookmarkTitles(bookmarks))

	results := make([]Result, len(matches))
	for i, m := range matches {
		results[i] = Result{
			Bookmark:       bookmarks[m.Index],
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}

	return results
}
