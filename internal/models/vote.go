package models

import (
	"time"
)

// PostVote and CommentVote carry the durable fact that a voter cast a
// direction on an item. At most one row per (voter, item); removing a vote
// deletes the row, there is no neutral state.

type PostVote struct {
	UserID    string    `gorm:"type:uuid;primaryKey" json:"user_id"`
	PostID    string    `gorm:"type:uuid;primaryKey" json:"post_id"`
	Voted     bool      `gorm:"not null" json:"voted"` // true = up
	CreatedAt time.Time `json:"created_at"`
}

type CommentVote struct {
	UserID    string    `gorm:"type:uuid;primaryKey" json:"user_id"`
	CommentID string    `gorm:"type:uuid;primaryKey" json:"comment_id"`
	Voted     bool      `gorm:"not null" json:"voted"`
	CreatedAt time.Time `json:"created_at"`
}
