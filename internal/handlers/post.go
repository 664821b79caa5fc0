package handlers

import (
	"net/http"

	"burrow/internal/apperr"
	"burrow/internal/middleware"
	"burrow/internal/services"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	feed *services.FeedService
}

func NewPostHandler() *PostHandler {
	return &PostHandler{feed: services.NewFeedService()}
}

func (h *PostHandler) GetCommunityPost(c *gin.Context) {
	post, isOwner, err := h.feed.GetPost(c.Query("postId"), requesterID(c))
	if err != nil {
		Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": post, "isOwner": isOwner})
}

func (h *PostHandler) GetCommunityPosts(c *gin.Context) {
	posts, err := h.feed.CommunityPosts(c.Query("term"), requesterID(c))
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, posts)
}

func (h *PostHandler) CreateCommunityPost(c *gin.Context) {
	user := middleware.CurrentUser(c)
	var req struct {
		PostData struct {
			Title   string `json:"title"`
			Content string `json:"content"`
		} `json:"postData"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, apperr.NoAction("No action"))
		return
	}
	id, err := h.feed.CreatePost(user.UserID, c.Query("term"), req.PostData.Title, req.PostData.Content)
	if err != nil {
		Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"id": id}, "message": "Success!"})
}

// GetAllPosts serves the home page. The top-communities side list is only
// present for anonymous requests.
func (h *PostHandler) GetAllPosts(c *gin.Context) {
	posts, topCommunities, err := h.feed.Home(requesterID(c))
	if err != nil {
		Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": posts, "topCommunities": topCommunities})
}
