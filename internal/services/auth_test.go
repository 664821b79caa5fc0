package services

import (
	"strings"
	"testing"
	"time"

	"burrow/internal/apperr"
	"burrow/internal/db"
	"burrow/internal/models"
	"burrow/internal/utils"

	"github.com/google/uuid"
)

func TestTokenRoundtrip(t *testing.T) {
	token, expiresAt, err := SignToken("user-1", "a@example.com", "alice", false)
	if err != nil {
		t.Fatal(err)
	}
	if until := time.Until(expiresAt); until > tokenExpireShort || until < tokenExpireShort-time.Minute {
		t.Errorf("short expiry off: %v", until)
	}

	claims, err := VerifyToken(token)
	if err != nil {
		t.Fatal(err)
	}
	if claims.UserID != "user-1" || claims.Email != "a@example.com" || claims.Username != "alice" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestTokenRememberStretchesExpiry(t *testing.T) {
	_, short, err := SignToken("u", "e", "n", false)
	if err != nil {
		t.Fatal(err)
	}
	_, long, err := SignToken("u", "e", "n", true)
	if err != nil {
		t.Fatal(err)
	}
	if !long.After(short.Add(24 * time.Hour)) {
		t.Errorf("remember expiry %v not past short %v", long, short)
	}
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	for _, raw := range []string{"", "garbage", "a.b.c"} {
		_, err := VerifyToken(raw)
		if e, ok := apperr.As(err); !ok || e.Code != apperr.CodeUnauthorized {
			t.Errorf("VerifyToken(%q) = %v, want unauthorized", raw, err)
		}
	}
}

func TestVerifyTokenRejectsTampering(t *testing.T) {
	token, _, err := SignToken("u", "e", "n", false)
	if err != nil {
		t.Fatal(err)
	}
	parts := strings.Split(token, ".")
	tampered := parts[0] + "." + parts[1] + ".AAAA"
	if _, err := VerifyToken(tampered); err == nil {
		t.Fatal("tampered signature must be rejected")
	}
}

func TestSignupConflicts(t *testing.T) {
	setupDB(t)
	auth := NewAuthService()
	seedUser(t, "taken")

	err := auth.Signup("taken", "new@example.com")
	if e, ok := apperr.As(err); !ok || e.Code != apperr.CodeConflict {
		t.Fatalf("got %v, want conflict on username", err)
	}
	err = auth.Signup("fresh", "taken@example.com")
	if e, ok := apperr.As(err); !ok || e.Code != apperr.CodeConflict {
		t.Fatalf("got %v, want conflict on email", err)
	}
	err = auth.Signup("", "x@example.com")
	if e, ok := apperr.As(err); !ok || e.Code != apperr.CodeInvalidInput {
		t.Fatalf("got %v, want invalid input", err)
	}
	// Mail delivery is disabled in tests, so a clean signup just succeeds.
	if err := auth.Signup("fresh", "fresh@example.com"); err != nil {
		t.Fatalf("signup: %v", err)
	}
}

func TestFinishSignup(t *testing.T) {
	setupDB(t)
	auth := NewAuthService()

	claims := &Claims{UserID: uuid.NewString(), Email: "bob@example.com", Username: "bob"}
	session, err := auth.FinishSignup(claims, "hunter22", false)
	if err != nil {
		t.Fatalf("finish signup: %v", err)
	}
	if session.Token == "" || session.Username != "bob" {
		t.Errorf("session = %+v", session)
	}

	var user models.User
	if err := db.DB.Where("id = ?", claims.UserID).First(&user).Error; err != nil {
		t.Fatalf("user row missing: %v", err)
	}
	if !utils.CheckPasswordHash("hunter22", user.Password) {
		t.Error("stored password hash does not verify")
	}

	_, err = auth.FinishSignup(claims, "hunter22", false)
	if e, ok := apperr.As(err); !ok || e.Code != apperr.CodeConflict {
		t.Fatalf("got %v, want conflict on second activation", err)
	}
	_, err = auth.FinishSignup(&Claims{Username: "short"}, "12345", false)
	if e, ok := apperr.As(err); !ok || e.Code != apperr.CodeInvalidInput {
		t.Fatalf("got %v, want invalid input for short password", err)
	}
}

func TestLogin(t *testing.T) {
	setupDB(t)
	auth := NewAuthService()

	claims := &Claims{UserID: uuid.NewString(), Email: "carol@example.com", Username: "carol"}
	if _, err := auth.FinishSignup(claims, "letmein", false); err != nil {
		t.Fatal(err)
	}

	session, err := auth.Login("carol", "letmein", false)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if session.UserID != claims.UserID {
		t.Errorf("session user = %q, want %q", session.UserID, claims.UserID)
	}
	if session.ExpiresIn <= time.Now().UnixMilli() {
		t.Error("expiry must be in the future, in unix milliseconds")
	}

	_, err = auth.Login("carol", "wrong", false)
	if e, ok := apperr.As(err); !ok || e.Code != apperr.CodeUnauthorized {
		t.Fatalf("got %v, want unauthorized", err)
	}
	_, err = auth.Login("nobody", "letmein", false)
	if e, ok := apperr.As(err); !ok || e.Code != apperr.CodeNotFound {
		t.Fatalf("got %v, want not found", err)
	}
}

func TestLoginSessionCarriesVotedMaps(t *testing.T) {
	setupDB(t)
	auth := NewAuthService()
	votes := NewVoteService()

	claims := &Claims{UserID: uuid.NewString(), Email: "dave@example.com", Username: "dave"}
	if _, err := auth.FinishSignup(claims, "letmein", false); err != nil {
		t.Fatal(err)
	}
	seedCommunity(t, "golang", claims.UserID, true)
	post := seedPost(t, "golang", claims.UserID)
	if err := votes.Apply(claims.UserID, post.ID, KindPost, ActionUpvote, 1); err != nil {
		t.Fatal(err)
	}

	session, err := auth.Login("dave", "letmein", false)
	if err != nil {
		t.Fatal(err)
	}
	if direction, ok := session.VotedPosts[post.ID]; !ok || !direction {
		t.Errorf("voted posts = %v, want %s -> true", session.VotedPosts, post.ID)
	}
}

func TestRefresh(t *testing.T) {
	setupDB(t)
	auth := NewAuthService()

	claims := &Claims{UserID: uuid.NewString(), Email: "erin@example.com", Username: "erin"}
	if _, err := auth.FinishSignup(claims, "letmein", false); err != nil {
		t.Fatal(err)
	}

	session, err := auth.Refresh(claims, true)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if session.Username != "erin" {
		t.Errorf("session = %+v", session)
	}

	_, err = auth.Refresh(&Claims{UserID: uuid.NewString()}, false)
	if e, ok := apperr.As(err); !ok || e.Code != apperr.CodeNotFound {
		t.Fatalf("got %v, want not found", err)
	}
}

func TestChangePassword(t *testing.T) {
	setupDB(t)
	auth := NewAuthService()

	claims := &Claims{UserID: uuid.NewString(), Email: "faye@example.com", Username: "faye"}
	if _, err := auth.FinishSignup(claims, "oldpass", false); err != nil {
		t.Fatal(err)
	}

	if err := auth.ChangePassword(claims.UserID, "newpass"); err != nil {
		t.Fatalf("change password: %v", err)
	}
	if _, err := auth.Login("faye", "newpass", false); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
	_, err := auth.Login("faye", "oldpass", false)
	if e, ok := apperr.As(err); !ok || e.Code != apperr.CodeUnauthorized {
		t.Fatalf("old password must stop working, got %v", err)
	}

	err = auth.ChangePassword(claims.UserID, "123")
	if e, ok := apperr.As(err); !ok || e.Code != apperr.CodeInvalidInput {
		t.Fatalf("got %v, want invalid input", err)
	}
}

func TestRequestPasswordResetUnknownEmail(t *testing.T) {
	setupDB(t)
	auth := NewAuthService()

	// Unknown addresses report success so the endpoint cannot be used to
	// probe which emails are registered.
	if err := auth.RequestPasswordReset("ghost@example.com"); err != nil {
		t.Fatalf("got %v, want silent success", err)
	}
}
