package middleware

import (
	"net/http" // HTTP status codes

	"storefront/internal/domain"  // Importing domain models
	"storefront/internal/session" // Session store

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// SessionAuthMiddleware resolves the session cookie to a user and aborts
// with 401 when the session is missing, expired, or the account is disabled
func SessionAuthMiddleware(store *session.Store, db *gorm.DB, isProd bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(session.CookieName) // Read the session cookie
		if err != nil || cookie == "" {
			// No cookie presented, reject before any handler logic
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authentication required"})
			return
		}
		userID, err := store.Resolve(c.Request.Context(), cookie) // Resolve and refresh the session
		if err != nil {
			// Unknown or expired session
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authentication required"})
			return
		}
		var user domain.User // Fetch the account from the database
		if err := db.First(&user, userID).Error; err != nil {
			// Account deleted while the session was still live
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authentication required"})
			return
		}
		// Disabled accounts are indistinguishable from missing sessions
		if !user.Active {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authentication required"})
			return
		}
		// Resolve extended the server-side window; re-send the cookie so
		// the client's Max-Age rolls with it
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(session.CookieName, cookie, int(session.IdleTimeout.Seconds()), "/", "", isProd, true)
		c.Set("sessionID", cookie) // Store session id in context
		c.Set("userID", user.ID)   // Store userID in context
		c.Set("user", user)        // Store the loaded user for role checks
		c.Next()                   // Proceed to the next handler
	}
}

// AdminOnlyMiddleware rejects callers whose role is not administrator
func AdminOnlyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		val, exists := c.Get("user") // Set by SessionAuthMiddleware
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authentication required"})
			return
		}
		user, ok := val.(domain.User) // Loaded account
		if !ok || !user.IsAdmin() {
			// Not an administrator, forbid
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": "Admin access required"})
			return
		}
		c.Next() // Proceed to the next handler
	}
}
