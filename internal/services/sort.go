package services

import (
	"sort"
	"strings"

	"burrow/internal/models"
)

type SortKey string

const (
	SortNewest SortKey = "newest"
	SortOldest SortKey = "oldest"
	SortTop    SortKey = "top"
)

// DefaultSort applies when the caller supplied no sort key at all. A key
// that was supplied but is not recognized falls back to newest instead;
// NormalizeSort handles that case.
const DefaultSort = SortTop

func NormalizeSort(raw string) SortKey {
	switch key := SortKey(strings.ToLower(raw)); key {
	case SortNewest, SortOldest, SortTop:
		return key
	default:
		return SortNewest
	}
}

func commentLess(key SortKey) func(a, b *models.Comment) bool {
	switch key {
	case SortOldest:
		return func(a, b *models.Comment) bool { return a.CreatedAt.Before(b.CreatedAt) }
	case SortNewest:
		return func(a, b *models.Comment) bool { return a.CreatedAt.After(b.CreatedAt) }
	default: // top, votes descending
		return func(a, b *models.Comment) bool { return a.Votes > b.Votes }
	}
}

// sortSiblings orders one level of a comment tree in place. SliceStable
// keeps tie order deterministic within an invocation.
func sortSiblings(nodes []*CommentNode, key SortKey) {
	less := commentLess(key)
	sort.SliceStable(nodes, func(i, j int) bool {
		return less(&nodes[i].Comment, &nodes[j].Comment)
	})
}
