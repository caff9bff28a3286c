package middleware

import (
	"net/http" // HTTP status codes

	"storefront/internal/session" // CSRF token store

	"github.com/gin-gonic/gin" // Gin web framework
)

// CSRFHeader is the request header carrying the anti-forgery token
const CSRFHeader = "X-CSRF-Token"

// CSRFMiddleware rejects state-mutating requests that do not present the
// session's anti-forgery token. Safe methods pass through unchecked.
// The rejection body carries code "csrf" so the client can re-fetch a
// token and retry once.
func CSRFMiddleware(store *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next() // Read-only methods bypass the guard
			return
		}
		sessionID := c.GetString("sessionID") // Set by SessionAuthMiddleware
		if sessionID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authentication required"})
			return
		}
		supplied := c.GetHeader(CSRFHeader) // Token echoed by the client
		if !store.VerifyToken(c.Request.Context(), sessionID, supplied) {
			// Distinguished failure so the client can recover silently
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": "Invalid CSRF token", "code": "csrf"})
			return
		}
		c.Next() // Token matches, proceed
	}
}
