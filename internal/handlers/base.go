package handlers

import (
	"log"
	"net/http"

	"burrow/internal/apperr"
	"burrow/internal/middleware"
	"burrow/internal/services"

	"github.com/gin-gonic/gin"
)

// Fail translates a service error into a response. The taxonomy code is the
// HTTP status; NoAction is answered as an empty success. Anything outside
// the taxonomy is an internal error and its details stay out of the body.
func Fail(c *gin.Context, err error) {
	if e, ok := apperr.As(err); ok {
		if e.Code == apperr.CodeNoAction {
			c.JSON(http.StatusOK, gin.H{"data": nil, "message": e.Message})
			return
		}
		c.JSON(e.Code, gin.H{"message": e.Message})
		return
	}
	log.Printf("unexpected error: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal error"})
}

func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"data": data})
}

func Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"message": message})
}

// requesterID is the resolved user id, or "" for anonymous readers.
func requesterID(c *gin.Context) string {
	if claims := middleware.CurrentUser(c); claims != nil {
		return claims.UserID
	}
	return ""
}

// sortKey reads the sortType parameter. Absent defaults to top; a supplied
// but unknown value normalizes to newest. The asymmetry is deliberate and
// matched by clients.
func sortKey(c *gin.Context) services.SortKey {
	raw := c.Query("sortType")
	if raw == "" {
		return services.DefaultSort
	}
	return services.NormalizeSort(raw)
}
