package handlers

import (
	"burrow/internal/apperr"
	"burrow/internal/middleware"
	"burrow/internal/services"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	comments *services.CommentService
	threads  *services.ThreadService
}

func NewCommentHandler() *CommentHandler {
	return &CommentHandler{
		comments: services.NewCommentService(),
		threads:  services.NewThreadService(),
	}
}

type commentRequest struct {
	CommentData struct {
		ParentID *string `json:"parentId"` // null or omitted = top-level
		PostID   string  `json:"postId"`
		Content  string  `json:"content"`
	} `json:"commentData"`
}

func (h *CommentHandler) PostComment(c *gin.Context) {
	user := middleware.CurrentUser(c)
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, apperr.InvalidInput("Not enough comment data!"))
		return
	}
	id, err := h.comments.Create(user.UserID, req.CommentData.PostID, req.CommentData.ParentID, req.CommentData.Content)
	if err != nil {
		Fail(c, err)
		return
	}
	c.JSON(200, gin.H{"data": gin.H{"id": id}, "message": "Success comment!"})
}

func (h *CommentHandler) GetPostComments(c *gin.Context) {
	postID := c.Query("postId")
	if postID == "" || postID == "undefined" {
		Fail(c, apperr.NoAction("No action!"))
		return
	}
	tree, err := h.threads.Discussion(postID, requesterID(c), sortKey(c))
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, tree)
}

func (h *CommentHandler) GetComment(c *gin.Context) {
	commentID := c.Query("commentId")
	if commentID == "" || commentID == "undefined" {
		Fail(c, apperr.NoAction("No action!"))
		return
	}
	tree, err := h.threads.FocusedSubtree(commentID, requesterID(c), sortKey(c))
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, tree)
}

func (h *CommentHandler) EditComment(c *gin.Context) {
	user := middleware.CurrentUser(c)
	var req struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, apperr.InvalidInput("Content cannot be empty!"))
		return
	}
	if err := h.comments.Edit(user.UserID, c.Query("commentId"), req.Content); err != nil {
		Fail(c, err)
		return
	}
	Message(c, "Success!")
}

func (h *CommentHandler) DeleteComment(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if err := h.comments.Delete(user.UserID, c.Query("commentId")); err != nil {
		Fail(c, err)
		return
	}
	Message(c, "Success!")
}
