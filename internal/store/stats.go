package store

import (
	"sort"

	"github.com/marklib/marks/internal/model"
)

// recentCount bounds the "most recent" list in Stats.
const recentCount = 5

// CategoryCount pairs a category with the number of bookmarks
// referencing it.
type CategoryCount struct {
	Category model.Category
	Count    int
}

// Stats summarizes a bookmark collection for display.
type Stats struct {
	Total      int
	Favorites  int
	UniqueTags int
	Categories []CategoryCount
	Recent     []model.Bookmark // newest first, at most recentCount
}

// CollectStats derives aggregate statistics from the full collection.
// Bookmarks with dangling category references count toward Total but
// toward no category.
func CollectStats(bookmarks []model.Bookmark, categories []model.Category) Stats {
	stats := Stats{Total: len(bookmarks)}

	tags := make(map[string]bool)
	byCategory := make(map[string]int)
	for _, b := range bookmarks {
		if b.Favorite {
			stats.Favorites++
		}
		for _, tag := range b.Tags {
			tags[tag] = true
		}
		byCategory[b.Category]++
	}
	stats.UniqueTags = len(tags)

	for _, c := range categories {
		stats.Categories = append(stats.Categories, CategoryCount{
			Category: c,
			Count:    byCategory[c.ID],
		})
	}

	recent := make([]model.Bookmark, len(bookmarks))
	copy(recent, bookmarks)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[j].CreatedAt.Before(recent[i].CreatedAt)
	})
	if len(recent) > recentCount {
		recent = recent[:recentCount]
	}
	stats.Recent = recent

	return stats
}
