package services

import (
	"errors"

	"burrow/internal/apperr"
	"burrow/internal/db"
	"burrow/internal/models"
	"burrow/internal/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// topCommunityCount is how many public communities feed the anonymous home
// view, ordered by member count.
const topCommunityCount = 5

// FeedService composes stored posts with derived comment counts. Counts are
// computed at read time, never stored.
type FeedService struct {
	communities *CommunityService
}

func NewFeedService() *FeedService {
	return &FeedService{communities: NewCommunityService()}
}

// CommunityPosts lists a community's posts newest first, after the access
// check.
func (s *FeedService) CommunityPosts(name, requesterID string) ([]models.Post, error) {
	if name == "" {
		return nil, apperr.NoAction("No action")
	}
	if err := s.communities.CanView(name, requesterID); err != nil {
		return nil, err
	}

	var posts []models.Post
	if err := db.DB.Where("community_name = ?", name).
		Order("created_at DESC").Find(&posts).Error; err != nil {
		return nil, err
	}
	if err := fillPostMeta(posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// Home builds the home feed. Authenticated: posts across the requester's
// joined communities, newest first. Anonymous: posts from the largest
// public communities ordered by tally, plus the side list of those
// communities with member counts.
func (s *FeedService) Home(requesterID string) ([]models.Post, []models.CommunitySummary, error) {
	var posts []models.Post

	if requesterID != "" {
		joined := db.DB.Model(&models.Membership{}).
			Select("community_name").Where("user_id = ?", requesterID)
		if err := db.DB.Where("community_name IN (?)", joined).
			Order("created_at DESC").Find(&posts).Error; err != nil {
			return nil, nil, err
		}
		if err := fillPostMeta(posts); err != nil {
			return nil, nil, err
		}
		return posts, nil, nil
	}

	var top []models.CommunitySummary
	if err := db.DB.Model(&models.Community{}).
		Select("name, members").Where("visibility = ?", true).
		Order("members DESC").Limit(topCommunityCount).
		Scan(&top).Error; err != nil {
		return nil, nil, err
	}
	names := make([]string, len(top))
	for i, c := range top {
		names[i] = c.Name
	}
	if err := db.DB.Where("community_name IN ?", names).
		Order("votes DESC").Find(&posts).Error; err != nil {
		return nil, nil, err
	}
	if err := fillPostMeta(posts); err != nil {
		return nil, nil, err
	}
	return posts, top, nil
}

// GetPost returns one post with its derived comment count. Posts in private
// communities are visible to the community owner only. The isOwner flag is
// about the post, not the community.
func (s *FeedService) GetPost(postID, requesterID string) (*models.Post, bool, error) {
	if postID == "" {
		return nil, false, apperr.NoAction("No action!")
	}
	if uuid.Validate(postID) != nil {
		return nil, false, apperr.InvalidInput("Invalid postId!")
	}

	var post models.Post
	err := db.DB.Where("id = ?", postID).First(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, apperr.NotFound("Post does not exist!")
	}
	if err != nil {
		return nil, false, err
	}
	if err := s.communities.CanView(post.CommunityName, requesterID); err != nil {
		return nil, false, err
	}

	single := []models.Post{post}
	if err := fillPostMeta(single); err != nil {
		return nil, false, err
	}
	single[0].ContentHTML = utils.RenderMarkdown(single[0].Content)
	isOwner := requesterID != "" && requesterID == post.OwnerID
	return &single[0], isOwner, nil
}

// CreatePost inserts a post into a community the requester can view.
func (s *FeedService) CreatePost(ownerID, communityName, title, content string) (string, error) {
	if communityName == "" {
		return "", apperr.NoAction("No action")
	}
	if title == "" || content == "" {
		return "", apperr.InvalidInput("Title or content missing!")
	}
	if err := s.communities.CanView(communityName, ownerID); err != nil {
		return "", err
	}

	post := models.Post{
		ID:            uuid.NewString(),
		CommunityName: communityName,
		OwnerID:       ownerID,
		Title:         title,
		Content:       content,
		Votes:         0,
	}
	if err := db.DB.Create(&post).Error; err != nil {
		return "", err
	}
	return post.ID, nil
}

// fillPostMeta batch-fills usernames and per-post comment counts onto a
// page of posts: one grouped count query and one user query, mapped back.
func fillPostMeta(posts []models.Post) error {
	if len(posts) == 0 {
		return nil
	}

	postIDs := make([]string, len(posts))
	ownerIDs := make([]string, 0, len(posts))
	seen := make(map[string]bool, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
		if !seen[p.OwnerID] {
			seen[p.OwnerID] = true
			ownerIDs = append(ownerIDs, p.OwnerID)
		}
	}

	type countResult struct {
		PostID string
		Count  int64
	}
	var counts []countResult
	if err := db.DB.Model(&models.Comment{}).
		Select("post_id, COUNT(*) as count").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&counts).Error; err != nil {
		return err
	}
	countMap := make(map[string]int64, len(counts))
	for _, r := range counts {
		countMap[r.PostID] = r.Count
	}

	var users []models.User
	if err := db.DB.Select("id, username").Where("id IN ?", ownerIDs).Find(&users).Error; err != nil {
		return err
	}
	nameMap := make(map[string]string, len(users))
	for _, u := range users {
		nameMap[u.ID] = u.Username
	}

	for i := range posts {
		posts[i].CommentCount = countMap[posts[i].ID]
		posts[i].Username = nameMap[posts[i].OwnerID]
	}
	return nil
}
