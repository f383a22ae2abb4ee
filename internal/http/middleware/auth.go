package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Kenc01/MediChain-PH/domain"
)

// Context keys set by the authentication middleware.
const (
	CtxUser         = "user"
	CtxUserID       = "user_id"
	CtxUserRole     = "user_role"
	CtxSessionToken = "session_token"
)

// AuthMW resolves bearer tokens into users for downstream guards.
type AuthMW struct {
	sessionSvc domain.SessionService
}

// NewAuthMW creates new auth middleware wrapper.
func NewAuthMW(sessionSvc domain.SessionService) *AuthMW {
	return &AuthMW{sessionSvc: sessionSvc}
}

// Authenticate returns the session-resolving middleware. Every failure is
// the same 401: a missing header, an unknown token and an expired session
// are indistinguishable to the caller.
func (mw *AuthMW) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			unauthenticated(c)
			return
		}

		tokenParts := strings.SplitN(authHeader, " ", 2)
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			unauthenticated(c)
			return
		}

		user, session, err := mw.sessionSvc.Resolve(c.Request.Context(), tokenParts[1])
		if err != nil {
			unauthenticated(c)
			return
		}

		c.Set(CtxUser, user)
		c.Set(CtxUserID, user.ID)
		c.Set(CtxUserRole, user.Role)
		c.Set(CtxSessionToken, session.Token)
		c.Next()
	}
}

func unauthenticated(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
	c.Abort()
}

// CurrentUser returns the authenticated user placed in the context by
// Authenticate.
func CurrentUser(c *gin.Context) (*domain.User, bool) {
	v, ok := c.Get(CtxUser)
	if !ok {
		return nil, false
	}
	user, ok := v.(*domain.User)
	return user, ok
}
