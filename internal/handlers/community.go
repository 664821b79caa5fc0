package handlers

import (
	"net/http"

	"burrow/internal/apperr"
	"burrow/internal/middleware"
	"burrow/internal/services"

	"github.com/gin-gonic/gin"
)

type CommunityHandler struct {
	communities *services.CommunityService
}

func NewCommunityHandler() *CommunityHandler {
	return &CommunityHandler{communities: services.NewCommunityService()}
}

func (h *CommunityHandler) GetJoinedCommunities(c *gin.Context) {
	user := middleware.CurrentUser(c)
	names, err := h.communities.Joined(user.UserID)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, names)
}

func (h *CommunityHandler) Search(c *gin.Context) {
	communities, err := h.communities.Search(c.Query("term"), requesterID(c))
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, communities)
}

func (h *CommunityHandler) GetCommunity(c *gin.Context) {
	community, isOwner, isJoined, err := h.communities.Get(c.Query("term"), requesterID(c))
	if err != nil {
		Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": community, "isOwner": isOwner, "isJoined": isJoined})
}

func (h *CommunityHandler) CreateCommunity(c *gin.Context) {
	user := middleware.CurrentUser(c)
	var req struct {
		CommunityData struct {
			Name        string `json:"name"`
			Description string `json:"description"`
			Visibility  bool   `json:"visibility"`
		} `json:"communityData"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, apperr.InvalidInput("Name or visibility missing!"))
		return
	}
	data := req.CommunityData
	if err := h.communities.Create(user.UserID, data.Name, data.Description, data.Visibility); err != nil {
		Fail(c, err)
		return
	}
	Message(c, "Success!")
}

func (h *CommunityHandler) Join(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if err := h.communities.Join(user.UserID, c.Query("term")); err != nil {
		Fail(c, err)
		return
	}
	Message(c, "Success join!")
}

func (h *CommunityHandler) Leave(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if err := h.communities.Leave(user.UserID, c.Query("term")); err != nil {
		Fail(c, err)
		return
	}
	Message(c, "Success leave!")
}

func (h *CommunityHandler) ChangeSettings(c *gin.Context) {
	user := middleware.CurrentUser(c)
	var req struct {
		Settings *services.CommunitySettings `json:"settings"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Settings == nil {
		Fail(c, apperr.NoAction("No action"))
		return
	}
	if err := h.communities.UpdateSettings(user.UserID, c.Query("term"), *req.Settings); err != nil {
		Fail(c, err)
		return
	}
	Message(c, "Success!")
}
