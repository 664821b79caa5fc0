package handlers

import (
	"net/http"

	"burrow/internal/apperr"
	"burrow/internal/middleware"
	"burrow/internal/services"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	auth *services.AuthService
}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{auth: services.NewAuthService()}
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, apperr.InvalidInput("Username or email missing!"))
		return
	}
	if err := h.auth.Signup(req.Username, req.Email); err != nil {
		Fail(c, err)
		return
	}
	Message(c, "Success!")
}

// FinishSignup activates the account behind the emailed token, which
// arrives as the bearer credential of this request.
func (h *AuthHandler) FinishSignup(c *gin.Context) {
	claims := middleware.CurrentUser(c)
	var req struct {
		Password   string `json:"password"`
		RememberMe bool   `json:"rememberMe"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, apperr.InvalidInput("Password missing!"))
		return
	}
	session, err := h.auth.FinishSignup(claims, req.Password, req.RememberMe)
	if err != nil {
		Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// Login authenticates with credentials, or refreshes the session when a
// still-valid token accompanies the request.
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Username   string `json:"username"`
		Password   string `json:"password"`
		RememberMe bool   `json:"rememberMe"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, apperr.InvalidInput("Username or password missing!"))
		return
	}

	var session *services.Session
	var err error
	if claims := middleware.CurrentUser(c); claims != nil {
		session, err = h.auth.Refresh(claims, req.RememberMe)
	} else {
		session, err = h.auth.Login(req.Username, req.Password, req.RememberMe)
	}
	if err != nil {
		Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	user := middleware.CurrentUser(c)
	var req struct {
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, apperr.InvalidInput("Password missing!"))
		return
	}
	if err := h.auth.ChangePassword(user.UserID, req.Password); err != nil {
		Fail(c, err)
		return
	}
	Message(c, "Success change password")
}

func (h *AuthHandler) RequestResetPassword(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, apperr.InvalidInput("Email missing!"))
		return
	}
	if err := h.auth.RequestPasswordReset(req.Email); err != nil {
		Fail(c, err)
		return
	}
	Message(c, "Success!")
}
