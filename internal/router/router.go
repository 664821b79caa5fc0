package router

import (
	"burrow/internal/handlers"
	"burrow/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	authHandler := handlers.NewAuthHandler()
	communityHandler := handlers.NewCommunityHandler()
	postHandler := handlers.NewPostHandler()
	commentHandler := handlers.NewCommentHandler()
	voteHandler := handlers.NewVoteHandler()

	// Public routes. Reads resolve an optional bearer token via LoadUser;
	// anonymous requests just see less.
	r.POST("/signup", authHandler.Signup)
	r.POST("/login", authHandler.Login)
	r.POST("/requestResetPassword", authHandler.RequestResetPassword)

	r.GET("/communities", communityHandler.Search)
	r.GET("/getCommunity", communityHandler.GetCommunity)

	r.GET("/getAllPosts", postHandler.GetAllPosts)
	r.GET("/getCommunityPosts", postHandler.GetCommunityPosts)
	r.GET("/getCommunityPost", postHandler.GetCommunityPost)
	r.GET("/getPostVotes", voteHandler.GetPostVotes)
	r.GET("/getCommentVotes", voteHandler.GetCommentVotes)

	r.GET("/getPostComments", commentHandler.GetPostComments)
	r.GET("/getComment", commentHandler.GetComment)

	// Protected routes
	authorized := r.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.POST("/finishSignup", authHandler.FinishSignup)
		authorized.POST("/changePassword", authHandler.ChangePassword)

		authorized.GET("/getJoinedCommunities", communityHandler.GetJoinedCommunities)
		authorized.POST("/createCommunity", communityHandler.CreateCommunity)
		authorized.POST("/joinCommunity", communityHandler.Join)
		authorized.POST("/leaveCommunity", communityHandler.Leave)
		authorized.POST("/changeSettingsCommunity", communityHandler.ChangeSettings)

		authorized.POST("/createCommunityPost", postHandler.CreateCommunityPost)
		authorized.POST("/setPostVote", voteHandler.SetPostVote)
		authorized.POST("/setCommentVote", voteHandler.SetCommentVote)
		authorized.GET("/getVotedPosts", voteHandler.GetVotedPosts)
		authorized.GET("/getVotedComments", voteHandler.GetVotedComments)

		authorized.POST("/postComment", commentHandler.PostComment)
		authorized.POST("/editComment", commentHandler.EditComment)
		authorized.DELETE("/deleteComment", commentHandler.DeleteComment)
	}
}
