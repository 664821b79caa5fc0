package models

import (
	"html/template"
	"time"
)

// Comment rows are stored flat; the nested view is assembled on read. A
// comment whose content is the empty string is a tombstone: deleted, but the
// row is kept because descendants still hang off it.
type Comment struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	ParentID  *string   `gorm:"type:uuid;index" json:"parent_id"` // null = top-level
	PostID    string    `gorm:"type:uuid;not null;index" json:"post_id"`
	OwnerID   string    `gorm:"type:uuid;not null;index" json:"-"`
	Content   string    `gorm:"type:text" json:"content"`
	Votes     int       `gorm:"default:0" json:"votes"`
	CreatedAt time.Time `json:"createdAt"`

	// 非数据库字段，用于查询时填充
	Username    string        `gorm:"-" json:"username"`
	HaveAvatar  bool          `gorm:"-" json:"have_avatar"`
	ContentHTML template.HTML `gorm:"-" json:"content_html,omitempty"`
}
