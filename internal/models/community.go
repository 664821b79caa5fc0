package models

import (
	"time"
)

type Community struct {
	Name            string    `gorm:"primaryKey;size:64" json:"name"`
	OwnerID         string    `gorm:"type:uuid;not null;index" json:"-"`
	Members         int       `gorm:"default:0" json:"members"`
	Visibility      bool      `gorm:"not null" json:"visibility"` // true = public
	Description     string    `gorm:"size:500" json:"description"`
	BannerHeight    string    `gorm:"size:10;default:'medium'" json:"bannerHeight"`
	BannerPositionY int       `gorm:"default:50" json:"bannerPositionY"`
	CreatedAt       time.Time `json:"created_at"`
}

// Membership records one user joined one community. The members counter on
// Community must move in the same transaction as rows here.
type Membership struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        string    `gorm:"type:uuid;not null;uniqueIndex:idx_member" json:"user_id"`
	CommunityName string    `gorm:"size:64;not null;uniqueIndex:idx_member" json:"community_name"`
	CreatedAt     time.Time `json:"created_at"`
}

// CommunitySummary is the anonymous home view side list entry.
type CommunitySummary struct {
	Name    string `json:"name"`
	Members int    `json:"members"`
}
