package auth

import (
	"strings"

	"github.com/brad50916/Board-Game-Recommendation/pkg/jwt"

	"github.com/gin-gonic/gin"
)

// OptionalAuthMiddleware sets the userID if a valid token is present,
// but does not fail if the token is missing or invalid. Used on catalog
// routes so anonymous visitors can browse games while signed-in users
// also see their own ratings.
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) == 2 && parts[0] == "Bearer" {
				if userID, err := jwt.ValidateToken(parts[1]); err == nil {
					c.Set("userID", userID)
				}
			}
		}
		c.Next()
	}
}
