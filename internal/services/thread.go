package services

import (
	"burrow/internal/apperr"
	"burrow/internal/db"
	"burrow/internal/models"
	"burrow/internal/utils"

	"github.com/google/uuid"
)

// ThreadService assembles stored comment rows into discussion trees.
type ThreadService struct{}

func NewThreadService() *ThreadService {
	return &ThreadService{}
}

// Discussion returns the full nested comment tree of a post. requesterID is
// empty for anonymous readers; they just never own anything.
func (s *ThreadService) Discussion(postID, requesterID string, key SortKey) ([]*CommentNode, error) {
	if uuid.Validate(postID) != nil {
		return nil, apperr.InvalidInput("Invalid postid!")
	}
	var count int64
	if err := db.DB.Model(&models.Post{}).Where("id = ?", postID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, apperr.NotFound("Post does not exist!")
	}

	var rows []models.Comment
	if err := db.DB.Where("post_id = ?", postID).Find(&rows).Error; err != nil {
		return nil, err
	}
	if err := fillCommentAuthors(rows); err != nil {
		return nil, err
	}
	return BuildCommentTree(rows, requesterID, "", key), nil
}

// FocusedSubtree returns the tree rooted at one comment: the row itself plus
// its transitive descendants, ancestors omitted.
func (s *ThreadService) FocusedSubtree(commentID, requesterID string, key SortKey) ([]*CommentNode, error) {
	if uuid.Validate(commentID) != nil {
		return nil, apperr.InvalidInput("Invalid commentid!")
	}
	var count int64
	if err := db.DB.Model(&models.Comment{}).Where("id = ?", commentID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, apperr.NotFound("Comment does not exist!")
	}

	var rows []models.Comment
	err := db.DB.Raw(`WITH RECURSIVE thread AS (
		SELECT * FROM comments WHERE id = ?
		UNION ALL
		SELECT c.* FROM comments c JOIN thread t ON c.parent_id = t.id
	) SELECT * FROM thread`, commentID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if err := fillCommentAuthors(rows); err != nil {
		return nil, err
	}
	return BuildCommentTree(rows, requesterID, commentID, key), nil
}

// fillCommentAuthors batch-resolves usernames and avatars onto comment rows
// and renders their markdown. Tombstones keep empty content and no HTML.
func fillCommentAuthors(rows []models.Comment) error {
	if len(rows) == 0 {
		return nil
	}

	ownerIDs := make([]string, 0, len(rows))
	seen := make(map[string]bool, len(rows))
	for _, row := range rows {
		if !seen[row.OwnerID] {
			seen[row.OwnerID] = true
			ownerIDs = append(ownerIDs, row.OwnerID)
		}
	}

	var users []models.User
	if err := db.DB.Select("id, username, have_avatar").Where("id IN ?", ownerIDs).Find(&users).Error; err != nil {
		return err
	}
	byID := make(map[string]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	for i := range rows {
		if u, ok := byID[rows[i].OwnerID]; ok {
			rows[i].Username = u.Username
			rows[i].HaveAvatar = u.HaveAvatar
		}
		if rows[i].Content != "" {
			rows[i].ContentHTML = utils.RenderMarkdown(rows[i].Content)
		}
	}
	return nil
}
