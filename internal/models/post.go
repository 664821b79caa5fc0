package models

import (
	"html/template"
	"time"
)

type Post struct {
	ID            string    `gorm:"type:uuid;primaryKey" json:"id"`
	CommunityName string    `gorm:"size:64;not null;index" json:"community_id"`
	OwnerID       string    `gorm:"type:uuid;not null;index" json:"-"`
	Title         string    `gorm:"not null" json:"title"`
	Content       string    `gorm:"type:text;not null" json:"content"`
	Votes         int       `gorm:"default:0" json:"votes"`
	CreatedAt     time.Time `json:"createdAt"`

	// 非数据库字段，用于查询时填充
	Username     string        `gorm:"-" json:"username,omitempty"`
	CommentCount int64         `gorm:"-" json:"numOfComments"`
	ContentHTML  template.HTML `gorm:"-" json:"content_html,omitempty"`
}
