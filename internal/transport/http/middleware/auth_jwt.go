package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"toodoo/internal/core/auth"
)

// KeyUserID is where the verified subject id lives in the request context.
const KeyUserID = "userId"

// AuthJWT rejects requests without a valid bearer token and stores the
// extracted subject id for handlers.
func AuthJWT(j *auth.JWTer) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}
		claims, err := j.Parse(strings.TrimPrefix(ah, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set(KeyUserID, claims.UID)
		c.Next()
	}
}
