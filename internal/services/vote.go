package services

import (
	"burrow/internal/apperr"
	"burrow/internal/db"
	"burrow/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ItemKind string

const (
	KindPost    ItemKind = "post"
	KindComment ItemKind = "comment"
)

type VoteAction string

const (
	ActionUpvote   VoteAction = "upvote"
	ActionDownvote VoteAction = "downvote"
	ActionRemove   VoteAction = "remove"
)

type VoteService struct{}

func NewVoteService() *VoteService {
	return &VoteService{}
}

// Apply adjusts the item tally by weight and upserts or deletes the voter's
// record, as one transaction. Upvote and downvote overwrite any prior
// record; remove deletes it, and removing a record that is not there is a
// no-op on the record side while the weight still lands on the tally.
// Re-sending the identical action re-applies the weight; clients negate
// their own prior weight when switching or removing.
func (s *VoteService) Apply(userID, itemID string, kind ItemKind, action VoteAction, weight int) error {
	if uuid.Validate(itemID) != nil {
		return apperr.InvalidInput("Invalid id!")
	}
	if weight != 1 && weight != 2 && weight != -1 && weight != -2 {
		return apperr.InvalidInput("Amount can be -1,-2,1,2 !")
	}
	switch action {
	case ActionUpvote:
		if weight < 0 {
			return apperr.InvalidInput("Upvote amount must be positive!")
		}
	case ActionDownvote:
		if weight > 0 {
			return apperr.InvalidInput("Downvote amount must be negative!")
		}
	case ActionRemove:
		// weight sign unconstrained, it undoes whatever was cast
	default:
		return apperr.InvalidInput("Wrong vote type!")
	}

	return db.DB.Transaction(func(tx *gorm.DB) error {
		switch kind {
		case KindPost:
			res := tx.Model(&models.Post{}).Where("id = ?", itemID).
				UpdateColumn("votes", gorm.Expr("votes + ?", weight))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return apperr.NotFound("Post does not exist!")
			}
			if action == ActionRemove {
				return tx.Where("user_id = ? AND post_id = ?", userID, itemID).
					Delete(&models.PostVote{}).Error
			}
			vote := models.PostVote{UserID: userID, PostID: itemID, Voted: action == ActionUpvote}
			return tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}, {Name: "post_id"}},
				DoUpdates: clause.Assignments(map[string]interface{}{"voted": vote.Voted}),
			}).Create(&vote).Error

		case KindComment:
			res := tx.Model(&models.Comment{}).Where("id = ?", itemID).
				UpdateColumn("votes", gorm.Expr("votes + ?", weight))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return apperr.NotFound("Comment does not exist!")
			}
			if action == ActionRemove {
				return tx.Where("user_id = ? AND comment_id = ?", userID, itemID).
					Delete(&models.CommentVote{}).Error
			}
			vote := models.CommentVote{UserID: userID, CommentID: itemID, Voted: action == ActionUpvote}
			return tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}, {Name: "comment_id"}},
				DoUpdates: clause.Assignments(map[string]interface{}{"voted": vote.Voted}),
			}).Create(&vote).Error

		default:
			return apperr.InvalidInput("Unknown item kind!")
		}
	})
}

// Votes reads the denormalized tally off the item itself, never off the
// vote records.
func (s *VoteService) Votes(itemID string, kind ItemKind) (int, error) {
	if uuid.Validate(itemID) != nil {
		return 0, apperr.InvalidInput("Invalid id!")
	}
	var votes int
	var res *gorm.DB
	switch kind {
	case KindPost:
		res = db.DB.Model(&models.Post{}).Select("votes").Where("id = ?", itemID).Scan(&votes)
	case KindComment:
		res = db.DB.Model(&models.Comment{}).Select("votes").Where("id = ?", itemID).Scan(&votes)
	default:
		return 0, apperr.InvalidInput("Unknown item kind!")
	}
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		if kind == KindPost {
			return 0, apperr.NotFound("Post does not exist!")
		}
		return 0, apperr.NotFound("Comment does not exist!")
	}
	return votes, nil
}

// VotedItems hydrates a client's prior-votes view: item id to direction.
func (s *VoteService) VotedItems(userID string, kind ItemKind) (map[string]bool, error) {
	voted := make(map[string]bool)
	switch kind {
	case KindPost:
		var records []models.PostVote
		if err := db.DB.Where("user_id = ?", userID).Find(&records).Error; err != nil {
			return nil, err
		}
		for _, r := range records {
			voted[r.PostID] = r.Voted
		}
	case KindComment:
		var records []models.CommentVote
		if err := db.DB.Where("user_id = ?", userID).Find(&records).Error; err != nil {
			return nil, err
		}
		for _, r := range records {
			voted[r.CommentID] = r.Voted
		}
	default:
		return nil, apperr.InvalidInput("Unknown item kind!")
	}
	return voted, nil
}
