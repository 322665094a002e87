package middlewares

import (
	"net/http"
	"strings"

	"github.com/Tzeak/yumlog/services"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware accepts the identity provider's opaque bearer token,
// "<userId>:<phoneNumber>". The token is trusted as-is; verification is the
// provider's job, not ours. A valid token upserts the user row and stashes
// the identity in the request context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No authorization token provided"})
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		parts := strings.SplitN(token, ":", 2)
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token format"})
			return
		}
		userID, phoneNumber := parts[0], parts[1]

		if err := services.UpsertUser(userID, phoneNumber); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication failed"})
			return
		}

		c.Set("userID", userID)
		c.Set("phoneNumber", phoneNumber)
		c.Next()
	}
}
