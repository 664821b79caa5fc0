package services

import (
	"burrow/internal/models"
)

// CommentNode is the view-model wrapped around one comment row. Built fresh
// on every read, never persisted. Replies stays nil when the node has no
// children, which serializes as null rather than an empty list.
type CommentNode struct {
	models.Comment
	IsOwner bool           `json:"isOwner"`
	Level   int            `json:"level"`
	Replies []*CommentNode `json:"subComments"`
}

// BuildCommentTree nests flat comment rows into ordered roots. With focus
// empty the roots are the null-parent rows; with focus set the single row
// with that id is the only root and its ancestors are ignored. Rows whose
// parent is absent from the set are unreachable and silently dropped.
func BuildCommentTree(rows []models.Comment, requesterID, focus string, key SortKey) []*CommentNode {
	// One pass to index children by parent id; cheaper than scanning the
	// whole set per node.
	byParent := make(map[string][]models.Comment)
	for _, row := range rows {
		if row.ParentID == nil {
			continue
		}
		byParent[*row.ParentID] = append(byParent[*row.ParentID], row)
	}

	var expand func(row models.Comment, level int) *CommentNode
	expand = func(row models.Comment, level int) *CommentNode {
		node := &CommentNode{
			Comment: row,
			Level:   level,
			IsOwner: requesterID != "" && requesterID == row.OwnerID,
		}
		if children, ok := byParent[row.ID]; ok {
			node.Replies = make([]*CommentNode, 0, len(children))
			for _, child := range children {
				node.Replies = append(node.Replies, expand(child, level+1))
			}
			sortSiblings(node.Replies, key)
		}
		return node
	}

	roots := make([]*CommentNode, 0)
	for _, row := range rows {
		if focus == "" {
			if row.ParentID != nil {
				continue
			}
		} else if row.ID != focus {
			continue
		}
		roots = append(roots, expand(row, 0))
	}
	sortSiblings(roots, key)
	return roots
}
