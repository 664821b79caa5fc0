package middleware

import (
	"net/http"
	"strings"

	"burrow/internal/services"

	"github.com/gin-gonic/gin"
)

const CurrentUserKey = "currentUser"

// extractToken pulls the raw token out of the Authorization header. Some
// clients send the literal string "undefined"; treat that as absent.
func extractToken(header string) string {
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	token := strings.TrimPrefix(header, "Bearer ")
	if token == "undefined" {
		return ""
	}
	return token
}

// LoadUser resolves an optional bearer credential. No header means an
// anonymous request and is not an error; a present but invalid or expired
// token is rejected here.
func LoadUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c.GetHeader("Authorization"))
		if token == "" {
			c.Next()
			return
		}
		claims, err := services.VerifyToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid token!"})
			return
		}
		c.Set(CurrentUserKey, claims)
		c.Next()
	}
}

// AuthRequired guards write endpoints: LoadUser must have resolved a user.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(CurrentUserKey); !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authorized!"})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the resolved claims, or nil for anonymous requests.
func CurrentUser(c *gin.Context) *services.Claims {
	if v, exists := c.Get(CurrentUserKey); exists {
		return v.(*services.Claims)
	}
	return nil
}
