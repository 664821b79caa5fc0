package services

import (
	"os"
	"time"

	"burrow/internal/apperr"

	"github.com/golang-jwt/jwt/v5"
)

const (
	tokenExpireShort = 2 * time.Hour
	tokenExpireLong  = 7 * 24 * time.Hour
)

// Claims is the identity a bearer credential resolves to.
type Claims struct {
	UserID   string `json:"userId"`
	Email    string `json:"email"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

func jwtSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "secret_key_change_me"
	}
	return []byte(secret)
}

// SignToken mints a bearer token; remember stretches the expiry from two
// hours to seven days.
func SignToken(userID, email, username string, remember bool) (string, time.Time, error) {
	ttl := tokenExpireShort
	if remember {
		ttl = tokenExpireLong
	}
	expiresAt := time.Now().Add(ttl)
	claims := Claims{
		UserID:   userID,
		Email:    email,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtSecret())
	return token, expiresAt, err
}

// VerifyToken resolves a raw bearer token to its claims. Any parse,
// signature, or expiry failure is Unauthorized.
func VerifyToken(raw string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return jwtSecret(), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, apperr.Unauthorized("Invalid token!")
	}
	return claims, nil
}
