package handlers

import (
	"strconv"

	"burrow/internal/apperr"
	"burrow/internal/middleware"
	"burrow/internal/services"

	"github.com/gin-gonic/gin"
)

type VoteHandler struct {
	votes *services.VoteService
}

func NewVoteHandler() *VoteHandler {
	return &VoteHandler{votes: services.NewVoteService()}
}

func (h *VoteHandler) SetPostVote(c *gin.Context) {
	h.setVote(c, services.KindPost)
}

func (h *VoteHandler) SetCommentVote(c *gin.Context) {
	h.setVote(c, services.KindComment)
}

func (h *VoteHandler) setVote(c *gin.Context, kind services.ItemKind) {
	user := middleware.CurrentUser(c)
	term := c.Query("term")
	action := c.Query("type")
	amount := c.Query("amount")
	if term == "" || action == "" || amount == "" {
		Fail(c, apperr.NoAction("No action"))
		return
	}
	weight, err := strconv.Atoi(amount)
	if err != nil {
		Fail(c, apperr.InvalidInput("Amount can be -1,-2,1,2 !"))
		return
	}
	if err := h.votes.Apply(user.UserID, term, kind, services.VoteAction(action), weight); err != nil {
		Fail(c, err)
		return
	}
	Message(c, "Success!")
}

func (h *VoteHandler) GetPostVotes(c *gin.Context) {
	h.getVotes(c, services.KindPost)
}

func (h *VoteHandler) GetCommentVotes(c *gin.Context) {
	h.getVotes(c, services.KindComment)
}

func (h *VoteHandler) getVotes(c *gin.Context, kind services.ItemKind) {
	term := c.Query("term")
	if term == "" {
		Fail(c, apperr.NoAction("No action"))
		return
	}
	votes, err := h.votes.Votes(term, kind)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, gin.H{"votes": votes})
}

func (h *VoteHandler) GetVotedPosts(c *gin.Context) {
	h.getVoted(c, services.KindPost)
}

func (h *VoteHandler) GetVotedComments(c *gin.Context) {
	h.getVoted(c, services.KindComment)
}

func (h *VoteHandler) getVoted(c *gin.Context, kind services.ItemKind) {
	user := middleware.CurrentUser(c)
	voted, err := h.votes.VotedItems(user.UserID, kind)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, voted)
}
