package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireRole guards an endpoint so only callers whose token carries one of
// the given roles get through. It must run after AuthMiddleware.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
		c.Abort()
	}
}
