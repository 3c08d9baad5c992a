package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"summarizer-backend/internal/shared/server/respond"
)

const userIDKey = "userId"

// Auth resolves the caller identity from request headers.
//
// Token issuance and session management live in an upstream identity
// collaborator; by the time a request reaches this service it carries either
// an X-User-Id header (set by the gateway after verification) or an
// X-Guest-Id header for anonymous use.
func Auth(env string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Preflights carry no identity headers; stop the chain here so this
		// holds regardless of where Auth sits relative to CORS.
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		if userID := strings.TrimSpace(c.GetHeader("X-User-Id")); userID != "" {
			c.Set(userIDKey, userID)
			c.Set("isGuest", false)
			c.Next()
			return
		}

		guestID := strings.TrimSpace(c.GetHeader("X-Guest-Id"))
		if guestID == "" {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "Missing identity", nil)
			return
		}

		c.Set(userIDKey, "guest:"+guestID)
		c.Set("isGuest", true)
		c.Next()
	}
}

// UserIDFromContext fetches the user ID set by the auth middleware.
func UserIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(userIDKey)
	if id, ok := val.(string); ok {
		return id
	}
	return ""
}
