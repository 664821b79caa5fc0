package services

import (
	"errors"
	"fmt"
	"os"

	"burrow/internal/apperr"
	"burrow/internal/db"
	"burrow/internal/models"
	"burrow/internal/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuthService implements the identity collaborator: signup over an emailed
// activation link, login, token refresh, password maintenance.
type AuthService struct {
	mail  *MailService
	votes *VoteService
}

func NewAuthService() *AuthService {
	return &AuthService{
		mail:  NewMailService(),
		votes: NewVoteService(),
	}
}

// Session is what a successful login or activation hands back to the
// client. ExpiresIn is a unix timestamp in milliseconds, and the voted maps
// hydrate the client's prior-votes view.
type Session struct {
	Token         string          `json:"token"`
	ExpiresIn     int64           `json:"expiresIn"`
	UserID        string          `json:"id,omitempty"`
	Username      string          `json:"username"`
	HaveAvatar    bool            `json:"have_avatar"`
	VotedPosts    map[string]bool `json:"votedPosts,omitempty"`
	VotedComments map[string]bool `json:"votedComments,omitempty"`
}

func websiteAddress() string {
	addr := os.Getenv("WEBSITE_ADDRESS")
	if addr == "" {
		addr = "http://localhost:3000"
	}
	return addr
}

func usernameExists(username string) (bool, error) {
	var count int64
	err := db.DB.Model(&models.User{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

func emailExists(email string) (bool, error) {
	var count int64
	err := db.DB.Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

// Signup reserves nothing: it only mails an activation link carrying a
// short-lived token. The account row is created by FinishSignup.
func (s *AuthService) Signup(username, email string) error {
	if username == "" || email == "" {
		return apperr.InvalidInput("Username or email missing!")
	}
	exists, err := usernameExists(username)
	if err != nil {
		return err
	}
	if exists {
		return apperr.Conflict("User already exists!")
	}
	exists, err = emailExists(email)
	if err != nil {
		return err
	}
	if exists {
		return apperr.Conflict("This email is already in use!")
	}

	token, _, err := SignToken(uuid.NewString(), email, username, false)
	if err != nil {
		return err
	}
	link := fmt.Sprintf("%s/auth/finishSignup?authtoken=%s", websiteAddress(), token)
	s.mail.SendActivationMail(email, username, link)
	return nil
}

// FinishSignup creates the account behind a valid activation token and
// returns a fresh session.
func (s *AuthService) FinishSignup(claims *Claims, password string, remember bool) (*Session, error) {
	if len(password) < 6 {
		return nil, apperr.InvalidInput("Password must be at least 6 characters!")
	}
	exists, err := usernameExists(claims.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Conflict("Account is activated!")
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := models.User{
		ID:       claims.UserID,
		Username: claims.Username,
		Email:    claims.Email,
		Password: hash,
	}
	if err := db.DB.Create(&user).Error; err != nil {
		return nil, err
	}
	return s.newSession(&user, remember)
}

// Login authenticates with username and password.
func (s *AuthService) Login(username, password string, remember bool) (*Session, error) {
	var user models.User
	err := db.DB.Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("User does not exist!")
	}
	if err != nil {
		return nil, err
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		return nil, apperr.Unauthorized("Invalid password!")
	}
	return s.newSession(&user, remember)
}

// Refresh reissues a session off a still-valid token without touching the
// password.
func (s *AuthService) Refresh(claims *Claims, remember bool) (*Session, error) {
	var user models.User
	err := db.DB.Where("id = ?", claims.UserID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("User does not exist!")
	}
	if err != nil {
		return nil, err
	}
	return s.newSession(&user, remember)
}

func (s *AuthService) ChangePassword(userID, password string) error {
	if len(password) < 6 {
		return apperr.InvalidInput("Password must be at least 6 characters!")
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}
	return db.DB.Model(&models.User{}).Where("id = ?", userID).
		Update("password", hash).Error
}

// RequestPasswordReset mails a reset link. An unknown email still reports
// success so callers cannot probe which addresses exist.
func (s *AuthService) RequestPasswordReset(email string) error {
	var user models.User
	err := db.DB.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	token, _, err := SignToken(user.ID, user.Email, user.Username, false)
	if err != nil {
		return err
	}
	link := fmt.Sprintf("%s/auth/finishResetPassword?authtoken=%s&username=%s",
		websiteAddress(), token, user.Username)
	s.mail.SendPasswordResetMail(email, user.Username, link)
	return nil
}

func (s *AuthService) newSession(user *models.User, remember bool) (*Session, error) {
	token, expiresAt, err := SignToken(user.ID, user.Email, user.Username, remember)
	if err != nil {
		return nil, err
	}
	votedPosts, err := s.votes.VotedItems(user.ID, KindPost)
	if err != nil {
		return nil, err
	}
	votedComments, err := s.votes.VotedItems(user.ID, KindComment)
	if err != nil {
		return nil, err
	}
	return &Session{
		Token:         token,
		ExpiresIn:     expiresAt.UnixMilli(),
		UserID:        user.ID,
		Username:      user.Username,
		HaveAvatar:    user.HaveAvatar,
		VotedPosts:    votedPosts,
		VotedComments: votedComments,
	}, nil
}
