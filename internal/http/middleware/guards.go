package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Kenc01/MediChain-PH/domain"
)

// Guards compose after Authenticate: a route may stack authentication, a
// role requirement and an active-status requirement, evaluated in that
// order and short-circuiting on the first failure. Authorization failures
// are 403, distinct from the uniform 401 of authentication.

// RequireRole fails unless the resolved user holds the given role.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			unauthenticated(c)
			return
		}
		if user.Role != role {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireActiveStatus fails unless the resolved user's status is active.
// Pending accounts may authenticate but may not act on gated routes.
func RequireActiveStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			unauthenticated(c)
			return
		}
		if user.Status != domain.StatusActive {
			c.JSON(http.StatusForbidden, gin.H{"error": "Account is not active"})
			c.Abort()
			return
		}
		c.Next()
	}
}
