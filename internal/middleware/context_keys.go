package middleware

import "github.com/gin-gonic/gin"

// userIDKey carries the authenticated user's ID. The auth middleware stores
// it on the request context; the typed key keeps it from colliding with
// other context values.
const userIDKey = contextKey("userID")

// GetUserIDFromContext returns the authenticated user ID for the current
// request, looking first in the Gin context map and then in the request
// context where the auth middleware places it. The second return is false
// when no authenticated user is present.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	if v, exists := c.Get(string(userIDKey)); exists {
		if userID, ok := v.(string); ok {
			return userID, true
		}
		return "", false
	}
	if v := c.Request.Context().Value(userIDKey); v != nil {
		if userID, ok := v.(string); ok {
			return userID, true
		}
	}
	return "", false
}
