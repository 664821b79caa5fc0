package models

import (
	"time"
)

type User struct {
	ID         string    `gorm:"type:uuid;primaryKey" json:"id"`
	Username   string    `gorm:"uniqueIndex;not null" json:"username"`
	Email      string    `gorm:"uniqueIndex;not null" json:"email"`
	Password   string    `gorm:"not null" json:"-"` // bcrypt hash
	HaveAvatar bool      `gorm:"default:false" json:"have_avatar"`
	CreatedAt  time.Time `json:"created_at"`
}
