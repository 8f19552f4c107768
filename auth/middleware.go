package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// UserIdKey is where the middleware stores the authenticated user id in
// the request context.
const UserIdKey = "user_id"

// Required rejects requests without a valid Bearer session token.
func Required(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || len(token) == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No access token"})
			return
		}

		userId, err := VerifySessionToken(token, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Access token is invalid"})
			return
		}

		c.Set(UserIdKey, userId)
		c.Next()
	}
}

// UserId returns the authenticated user id set by Required.
func UserId(c *gin.Context) string {
	return c.GetString(UserIdKey)
}
