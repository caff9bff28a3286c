package api

import (
	"net/http" // HTTP status codes
	"strconv"  // Path parameter parsing
	"strings"  // Name validation

	"storefront/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// UpdateUserRequest carries the only two fields an admin may change.
// Anything else in the payload is silently ignored.
type UpdateUserRequest struct {
	Role   *string `json:"role"`   // Optional: "user" or "admin"
	Active *bool   `json:"active"` // Optional: enable/disable the account
}

// AddProductRequest is the admin product creation payload
type AddProductRequest struct {
	Name        string  `json:"name" binding:"required"`           // Product name, unique lookup key
	Brand       string  `json:"brand"`                             // Brand label
	Description string  `json:"description"`                       // Free-form description
	Price       float64 `json:"price" binding:"required,gt=0"`     // Unit price, must be positive
	Emoji       string  `json:"emoji"`                             // Display glyph
	SizeRange   string  `json:"sizeRange"`                         // Human-readable size range
}

// parseUserID reads the :userId path parameter
func parseUserID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid user id"})
		return 0, false
	}
	return uint(id), true
}

// ListUsersHandler returns every account for the admin panel
func ListUsersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var users []domain.User // Slice to hold users
		if err := db.Order("created_at asc").Find(&users).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch users"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "users": users})
	}
}

// StatsHandler returns the admin dashboard counters
func StatsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var totalUsers, totalAdmins, activeUsers, totalProducts int64
		// Plain COUNT queries, one per counter
		if err := db.Model(&domain.User{}).Count(&totalUsers).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch stats"})
			return
		}
		if err := db.Model(&domain.User{}).Where("role = ?", domain.RoleAdmin).Count(&totalAdmins).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch stats"})
			return
		}
		if err := db.Model(&domain.User{}).Where("active = ?", true).Count(&activeUsers).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch stats"})
			return
		}
		if err := db.Model(&domain.Product{}).Count(&totalProducts).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch stats"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"stats": gin.H{
				"totalUsers":    totalUsers,               // All accounts
				"totalAdmins":   totalAdmins,              // Administrator accounts
				"regularUsers":  totalUsers - totalAdmins, // Derived by arithmetic
				"activeUsers":   activeUsers,              // Enabled accounts
				"totalProducts": totalProducts,            // Catalog size
			},
		})
	}
}

// UpdateUserHandler mutates the role and/or active flag of another account.
// Admins may not modify their own account here.
func UpdateUserHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		callerID := c.MustGet("userID").(uint) // Set by SessionAuthMiddleware
		targetID, ok := parseUserID(c)
		if !ok {
			return // Response already written
		}
		// Self-modification guard, checked before any lookup or write
		if targetID == callerID {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Cannot modify your own account"})
			return
		}
		var req UpdateUserRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request"})
			return
		}
		// Whitelist: only role and active survive into the update map
		changes := map[string]any{}
		if req.Role != nil {
			if *req.Role != domain.RoleUser && *req.Role != domain.RoleAdmin {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid role"})
				return
			}
			changes["role"] = *req.Role
		}
		if req.Active != nil {
			changes["active"] = *req.Active
		}
		if len(changes) == 0 {
			// Neither whitelisted field was present
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "No valid changes"})
			return
		}
		var user domain.User // Fetch the target account
		if err := db.First(&user, targetID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
			return
		}
		if err := db.Model(&user).Updates(changes).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update user"})
			return
		}
		logrus.WithFields(logrus.Fields{"admin_id": callerID, "user_id": targetID, "changes": changes}).Info("Admin updated user")
		c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
	}
}

// DeleteUserHandler removes an account; favorites and cart lines cascade.
// Admins may not delete their own account.
func DeleteUserHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		callerID := c.MustGet("userID").(uint) // Set by SessionAuthMiddleware
		targetID, ok := parseUserID(c)
		if !ok {
			return // Response already written
		}
		// Self-deletion guard, checked before any lookup or write
		if targetID == callerID {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Cannot delete your own account"})
			return
		}
		var user domain.User // Fetch the target account
		if err := db.First(&user, targetID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
			return
		}
		if err := db.Delete(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete user"})
			return
		}
		logrus.WithFields(logrus.Fields{"admin_id": callerID, "user_id": targetID}).Info("Admin deleted user")
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// AddProductHandler inserts a new catalog entry. Names are unique because
// favorites and cart look products up by name.
func AddProductHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AddProductRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request"})
			return
		}
		name := strings.TrimSpace(req.Name) // Lookup key, trimmed
		if name == "" || len(name) > 100 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Product name must be between 1 and 100 characters"})
			return
		}
		var existing domain.Product // Reject duplicates up front
		if err := db.Where("name = ?", name).First(&existing).Error; err == nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Product name already exists"})
			return
		}
		product := domain.Product{
			Name:        name,            // Unique lookup key
			Brand:       req.Brand,       // Brand label
			Description: req.Description, // Free-form description
			Price:       req.Price,       // Unit price
			Emoji:       req.Emoji,       // Display glyph
			SizeRange:   req.SizeRange,   // Size range
		}
		if err := db.Create(&product).Error; err != nil {
			// Unique index lost the race, report the duplicate
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Product name already exists"})
			return
		}
		logrus.WithFields(logrus.Fields{"product_id": product.ID, "name": name}).Info("Admin added product")
		c.JSON(http.StatusCreated, gin.H{"success": true, "product": product})
	}
}
