package services

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"burrow/internal/apperr"
	"burrow/internal/db"
	"burrow/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CommunityService struct{}

func NewCommunityService() *CommunityService {
	return &CommunityService{}
}

// CanView resolves read access: public communities are open to everyone,
// private ones only to their owner.
func (s *CommunityService) CanView(name, requesterID string) error {
	var community models.Community
	err := db.DB.Where("name = ?", name).First(&community).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("Community does not exist!")
	}
	if err != nil {
		return err
	}
	if !community.Visibility && community.OwnerID != requesterID {
		return apperr.Unauthorized("Community is private!")
	}
	return nil
}

// Get returns one community with the requester's relation to it.
func (s *CommunityService) Get(name, requesterID string) (*models.Community, bool, bool, error) {
	if name == "" {
		return nil, false, false, apperr.NoAction("No action")
	}
	var community models.Community
	err := db.DB.Where("name = ?", name).First(&community).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, false, apperr.NotFound("Community does not exist!")
	}
	if err != nil {
		return nil, false, false, err
	}
	if !community.Visibility && community.OwnerID != requesterID {
		return nil, false, false, apperr.Unauthorized("Community is private!")
	}

	isOwner := requesterID != "" && community.OwnerID == requesterID
	isJoined := false
	if requesterID != "" {
		var count int64
		if err := db.DB.Model(&models.Membership{}).
			Where("user_id = ? AND community_name = ?", requesterID, name).
			Count(&count).Error; err != nil {
			return nil, false, false, err
		}
		isJoined = count > 0
	}
	return &community, isOwner, isJoined, nil
}

// Search matches community names by substring. Anonymous callers see public
// communities only; authenticated callers also see their own private ones.
func (s *CommunityService) Search(term, requesterID string) ([]models.Community, error) {
	if term == "" {
		return nil, apperr.NoAction("No action")
	}
	pattern := "%" + strings.ToLower(term) + "%"
	var communities []models.Community
	q := db.DB.Where("lower(name) LIKE ? AND visibility = ?", pattern, true)
	if requesterID != "" {
		q = q.Or("lower(name) LIKE ? AND visibility = ? AND owner_id = ?", pattern, false, requesterID)
	}
	if err := q.Find(&communities).Error; err != nil {
		return nil, err
	}
	return communities, nil
}

func (s *CommunityService) Create(ownerID, name, description string, visibility bool) error {
	if name == "" {
		return apperr.InvalidInput("Name missing!")
	}
	var count int64
	if err := db.DB.Model(&models.Community{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return apperr.Conflict("Community already exists!")
	}
	return db.DB.Create(&models.Community{
		Name:        name,
		OwnerID:     ownerID,
		Members:     0,
		Visibility:  visibility,
		Description: description,
		CreatedAt:   time.Now(),
	}).Error
}

// Join adds a membership and bumps the member counter in one transaction.
// Joining twice is benign: the insert is skipped and the counter untouched.
func (s *CommunityService) Join(userID, name string) error {
	if name == "" {
		return apperr.NoAction("No action")
	}
	var community models.Community
	err := db.DB.Where("name = ?", name).First(&community).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("Community does not exist!")
	}
	if err != nil {
		return err
	}
	if !community.Visibility && community.OwnerID != userID {
		return apperr.Unauthorized("Community is private!")
	}

	return db.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&models.Membership{
			UserID:        userID,
			CommunityName: name,
			CreatedAt:     time.Now(),
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil // already a member
		}
		return tx.Model(&models.Community{}).Where("name = ?", name).
			UpdateColumn("members", gorm.Expr("members + ?", 1)).Error
	})
}

// Leave removes the membership and decrements the counter in one
// transaction; leaving a community never joined is a no-op.
func (s *CommunityService) Leave(userID, name string) error {
	if name == "" {
		return apperr.NoAction("No action")
	}
	return db.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND community_name = ?", userID, name).
			Delete(&models.Membership{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		return tx.Model(&models.Community{}).Where("name = ?", name).
			UpdateColumn("members", gorm.Expr("members - ?", 1)).Error
	})
}

func (s *CommunityService) Joined(userID string) ([]string, error) {
	var names []string
	err := db.DB.Model(&models.Membership{}).Where("user_id = ?", userID).
		Pluck("community_name", &names).Error
	return names, err
}

// CommunitySettings carries the owner-editable fields. Visibility and
// Description travel together; banner fields are applied independently.
type CommunitySettings struct {
	Visibility     *bool   `json:"visibility"`
	Description    *string `json:"description"`
	BannerHeight   string  `json:"bannerHeight"`
	BannerPosition string  `json:"bannerPosition"`
}

func (s *CommunityService) UpdateSettings(requesterID, name string, settings CommunitySettings) error {
	if name == "" {
		return apperr.NoAction("No action")
	}
	var community models.Community
	err := db.DB.Where("name = ?", name).First(&community).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("Community does not exist!")
	}
	if err != nil {
		return err
	}
	if community.OwnerID != requesterID {
		return apperr.Unauthorized("Not authorized!")
	}

	if settings.Visibility != nil && settings.Description != nil {
		if err := db.DB.Model(&models.Community{}).Where("name = ?", name).
			Updates(map[string]interface{}{
				"visibility":  *settings.Visibility,
				"description": *settings.Description,
			}).Error; err != nil {
			return err
		}
	}
	if settings.BannerHeight != "" {
		switch settings.BannerHeight {
		case "small", "medium", "large":
		default:
			return apperr.InvalidInput("Incorrect banner size (small/medium/large)!")
		}
		if err := db.DB.Model(&models.Community{}).Where("name = ?", name).
			UpdateColumn("banner_height", settings.BannerHeight).Error; err != nil {
			return err
		}
	}
	if settings.BannerPosition != "" {
		pos, err := strconv.Atoi(settings.BannerPosition)
		if err != nil || pos < 0 || pos > 100 {
			return apperr.InvalidInput("Banner position must be number between 0-100!")
		}
		if err := db.DB.Model(&models.Community{}).Where("name = ?", name).
			UpdateColumn("banner_position_y", pos).Error; err != nil {
			return err
		}
	}
	return nil
}
