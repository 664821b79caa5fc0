package services

import (
	"testing"
	"time"

	"burrow/internal/db"
	"burrow/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupDB points the package-level handle at a fresh in-memory store.
// Max one open connection, otherwise the pool hands out new empty
// in-memory databases.
func setupDB(t *testing.T) {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	db.DB = gdb
}

func seedUser(t *testing.T, username string) models.User {
	t.Helper()
	user := models.User{
		ID:       uuid.NewString(),
		Username: username,
		Email:    username + "@example.com",
		Password: "x",
	}
	if err := db.DB.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func seedCommunity(t *testing.T, name, ownerID string, public bool) models.Community {
	t.Helper()
	community := models.Community{
		Name:       name,
		OwnerID:    ownerID,
		Visibility: public,
		CreatedAt:  time.Now(),
	}
	if err := db.DB.Create(&community).Error; err != nil {
		t.Fatalf("seed community: %v", err)
	}
	return community
}

func seedPost(t *testing.T, communityName, ownerID string) models.Post {
	t.Helper()
	post := models.Post{
		ID:            uuid.NewString(),
		CommunityName: communityName,
		OwnerID:       ownerID,
		Title:         "a post",
		Content:       "some content",
		CreatedAt:     time.Now(),
	}
	if err := db.DB.Create(&post).Error; err != nil {
		t.Fatalf("seed post: %v", err)
	}
	return post
}

func seedComment(t *testing.T, postID, ownerID string, parentID *string, content string, at time.Time) models.Comment {
	t.Helper()
	comment := models.Comment{
		ID:        uuid.NewString(),
		ParentID:  parentID,
		PostID:    postID,
		OwnerID:   ownerID,
		Content:   content,
		CreatedAt: at,
	}
	if err := db.DB.Create(&comment).Error; err != nil {
		t.Fatalf("seed comment: %v", err)
	}
	return comment
}
