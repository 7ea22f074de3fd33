package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Nikhil-Govula/ProgrammingProject-2024-SP3-Team4/domain"
)

// SessionCookieName is the cookie carrying the opaque session token.
const SessionCookieName = "session_id"

// Context keys set by RequireKind for downstream handlers.
const (
	ContextIdentityID   = "identity_id"
	ContextIdentityKind = "identity_kind"
	ContextSessionID    = "session_id"
)

// RequireKind creates session authentication middleware. The request must
// carry a valid session cookie and the session's identity kind must be one
// of the allowed kinds; anything else is rejected as unauthorized without
// distinguishing the reason.
func RequireKind(sessions domain.SessionStore, kinds ...domain.IdentityKind) gin.HandlerFunc {
	allowed := make(map[domain.IdentityKind]struct{}, len(kinds))
	for _, k := range kinds {
		allowed[k] = struct{}{}
	}

	return gin.HandlerFunc(func(c *gin.Context) {
		token, err := c.Cookie(SessionCookieName)
		if err != nil || token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}

		session, err := sessions.Validate(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}

		if _, ok := allowed[session.IdentityKind]; !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}

		c.Set(ContextIdentityID, session.IdentityID)
		c.Set(ContextIdentityKind, string(session.IdentityKind))
		c.Set(ContextSessionID, session.ID)

		c.Next()
	})
}

// IdentityFromContext reads the authenticated identity placed by
// RequireKind. ok is false on an unauthenticated request.
func IdentityFromContext(c *gin.Context) (identityID string, kind domain.IdentityKind, ok bool) {
	id, exists := c.Get(ContextIdentityID)
	if !exists {
		return "", "", false
	}
	rawKind, exists := c.Get(ContextIdentityKind)
	if !exists {
		return "", "", false
	}
	return id.(string), domain.IdentityKind(rawKind.(string)), true
}
