package api

import (
	"net/http" // HTTP status codes

	"storefront/internal/domain"  // Importing domain models
	"storefront/internal/session" // Session store
	"storefront/internal/utils"   // Utility functions

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// RegisterRequest is the registration payload
type RegisterRequest struct {
	Email     string `json:"email" binding:"required"`     // Email must be provided
	Password  string `json:"password" binding:"required"`  // Password must be provided
	FirstName string `json:"firstName" binding:"required"` // First name must be provided
	LastName  string `json:"lastName" binding:"required"`  // Last name must be provided
}

// LoginRequest is the login payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`    // Email must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// invalidCredentials is the one generic message for every login failure.
// Not-found, wrong password, and disabled accounts are indistinguishable
// to prevent account enumeration.
const invalidCredentials = "Invalid email or password"

// setSessionCookie attaches the session cookie to the response
func setSessionCookie(c *gin.Context, sessionID string, isProd bool) {
	c.SetSameSite(http.SameSiteLaxMode) // Same-site restricted
	// HTTP-only; secure transport only in production
	c.SetCookie(session.CookieName, sessionID, int(session.IdleTimeout.Seconds()), "/", "", isProd, true)
}

// clearSessionCookie tells the client to drop its session cookie
func clearSessionCookie(c *gin.Context, isProd bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(session.CookieName, "", -1, "/", "", isProd, true)
}

// RegisterHandler validates the payload, creates the account, and
// auto-logs the new user in
func RegisterHandler(db *gorm.DB, store *session.Store, isProd bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request"})
			return
		}
		// Validate email format
		if !utils.IsValidEmail(req.Email) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid email address"})
			return
		}
		// Validate minimum password length
		if !utils.IsValidPassword(req.Password) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Password must be at least 8 characters"})
			return
		}
		// Validate name length bounds
		if !utils.IsValidName(req.FirstName) || !utils.IsValidName(req.LastName) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Names must be between 2 and 50 characters"})
			return
		}
		email := utils.NormalizeEmail(req.Email) // Case-insensitive uniqueness
		var existing domain.User
		if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
			// Duplicate email, reject before hashing
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Account already exists"})
			return
		}
		// Hash the password, never store the plaintext
		hash, err := utils.HashPassword(req.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Registration failed"})
			return
		}
		user := domain.User{
			Email:     email,           // Normalized email
			Password:  hash,            // Bcrypt hash
			FirstName: req.FirstName,   // First name
			LastName:  req.LastName,    // Last name
			Role:      domain.RoleUser, // New accounts are regular users
			Active:    true,            // Enabled
		}
		// Attempt to create the user in the database
		if err := db.Create(&user).Error; err != nil {
			// Unique index lost the race, report the duplicate
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Account already exists"})
			return
		}
		// Auto-login: establish a session immediately
		sessionID, err := store.Create(c.Request.Context(), user.ID)
		if err != nil {
			logrus.WithFields(logrus.Fields{"user_id": user.ID, "error": err.Error()}).Error("Session creation failed after registration")
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Registration failed"})
			return
		}
		setSessionCookie(c, sessionID, isProd) // Hand the cookie to the client
		logrus.WithFields(logrus.Fields{"user_id": user.ID, "email": email}).Info("User registered")
		c.JSON(http.StatusCreated, gin.H{"success": true, "user": user})
	}
}

// LoginHandler authenticates a user and establishes a session
func LoginHandler(db *gorm.DB, store *session.Store, isProd bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request"})
			return
		}
		var user domain.User // Fetch user from database
		if err := db.Where("email = ?", utils.NormalizeEmail(req.Email)).First(&user).Error; err != nil {
			// Unknown email, same generic message as a wrong password
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": invalidCredentials})
			return
		}
		// Compare provided password with stored hash
		if !utils.CheckPassword(user.Password, req.Password) {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": invalidCredentials})
			return
		}
		// Disabled accounts get the same generic message
		if !user.Active {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": invalidCredentials})
			return
		}
		// Establish the session
		sessionID, err := store.Create(c.Request.Context(), user.ID)
		if err != nil {
			logrus.WithFields(logrus.Fields{"user_id": user.ID, "error": err.Error()}).Error("Session creation failed")
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Login failed"})
			return
		}
		setSessionCookie(c, sessionID, isProd) // Hand the cookie to the client
		logrus.WithFields(logrus.Fields{"user_id": user.ID}).Info("User logged in")
		c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
	}
}

// VerifyHandler returns the authenticated caller's account
func VerifyHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(domain.User) // Set by SessionAuthMiddleware
		c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
	}
}

// LogoutHandler destroys the session and clears the cookie
func LogoutHandler(store *session.Store, isProd bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetString("sessionID") // Set by SessionAuthMiddleware
		if sessionID != "" {
			// Invalidate server-side immediately
			if err := store.Destroy(c.Request.Context(), sessionID); err != nil {
				logrus.WithField("error", err.Error()).Warn("Session destroy failed")
			}
		}
		clearSessionCookie(c, isProd) // Client drops its cookie either way
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// CSRFTokenHandler issues the session-bound anti-forgery token
func CSRFTokenHandler(store *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetString("sessionID") // Set by SessionAuthMiddleware
		token, err := store.IssueToken(c.Request.Context(), sessionID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to issue token"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "csrfToken": token})
	}
}
