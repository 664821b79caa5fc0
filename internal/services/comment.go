package services

import (
	"errors"
	"strings"
	"time"

	"burrow/internal/apperr"
	"burrow/internal/db"
	"burrow/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CommentService struct{}

func NewCommentService() *CommentService {
	return &CommentService{}
}

// Create inserts a comment row. A nil parentID makes it top-level. The
// parent must already exist, which keeps parent links a forest: children
// are only ever attached under inserted rows and links are never
// reassigned.
func (s *CommentService) Create(ownerID, postID string, parentID *string, content string) (string, error) {
	if strings.TrimSpace(content) == "" || postID == "" {
		return "", apperr.InvalidInput("Not enough comment data!")
	}
	if uuid.Validate(postID) != nil {
		return "", apperr.InvalidInput("Invalid postid!")
	}
	var count int64
	if err := db.DB.Model(&models.Post{}).Where("id = ?", postID).Count(&count).Error; err != nil {
		return "", err
	}
	if count == 0 {
		return "", apperr.NotFound("Post does not exist!")
	}

	if parentID != nil {
		if uuid.Validate(*parentID) != nil {
			return "", apperr.InvalidInput("Invalid parentid!")
		}
		if err := db.DB.Model(&models.Comment{}).Where("id = ?", *parentID).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return "", apperr.NotFound("Parent comment does not exist!")
		}
	}

	comment := models.Comment{
		ID:        uuid.NewString(),
		ParentID:  parentID,
		PostID:    postID,
		OwnerID:   ownerID,
		Content:   content,
		Votes:     0,
		CreatedAt: time.Now(),
	}
	if err := db.DB.Create(&comment).Error; err != nil {
		return "", err
	}
	return comment.ID, nil
}

// Edit replaces the content of the requester's own comment. Tombstoned
// comments read as missing here, so they cannot be revived.
func (s *CommentService) Edit(requesterID, commentID, content string) error {
	if commentID == "" {
		return apperr.NoAction("No action")
	}
	if uuid.Validate(commentID) != nil {
		return apperr.InvalidInput("Invalid commentId!")
	}
	if strings.TrimSpace(content) == "" {
		return apperr.InvalidInput("Content cannot be empty!")
	}

	var comment models.Comment
	err := db.DB.Where("id = ? AND content != ''", commentID).First(&comment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("That comment does not exist!")
	}
	if err != nil {
		return err
	}
	if comment.OwnerID != requesterID {
		return apperr.Unauthorized("Not authorized!")
	}

	return db.DB.Model(&models.Comment{}).Where("id = ?", commentID).
		Update("content", content).Error
}

// Delete hard-deletes a leaf comment. A comment with descendants is
// tombstoned instead: content cleared, row kept so the subtree stays
// reachable.
func (s *CommentService) Delete(requesterID, commentID string) error {
	if commentID == "" {
		return apperr.NoAction("No action")
	}
	if uuid.Validate(commentID) != nil {
		return apperr.InvalidInput("Invalid comment id!")
	}

	var comment models.Comment
	err := db.DB.Where("id = ?", commentID).First(&comment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("That comment does not exist!")
	}
	if err != nil {
		return err
	}
	if comment.OwnerID != requesterID {
		return apperr.Unauthorized("Not authorized!")
	}

	var children int64
	if err := db.DB.Model(&models.Comment{}).Where("parent_id = ?", commentID).Count(&children).Error; err != nil {
		return err
	}
	if children == 0 {
		return db.DB.Delete(&models.Comment{}, "id = ?", commentID).Error
	}
	return db.DB.Model(&models.Comment{}).Where("id = ?", commentID).
		Update("content", "").Error
}
