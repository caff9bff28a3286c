package api

import (
	"errors"   // Sentinel error comparison
	"net/http" // HTTP status codes

	"storefront/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// ListFavoritesHandler returns the caller's favorited products
func ListFavoritesHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.MustGet("userID").(uint) // Set by SessionAuthMiddleware
		var favorites []domain.Favorite      // Slice to hold favorites
		// Preload the product so the client gets full details in one call
		if err := db.Preload("Product").Where("user_id = ?", userID).Order("created_at desc").Find(&favorites).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch favorites"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "favorites": favorites})
	}
}

// ToggleFavoriteHandler flips the favorite state for (caller, product).
// Present -> removed, absent -> added; calling it twice restores the
// original state.
func ToggleFavoriteHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.MustGet("userID").(uint) // Set by SessionAuthMiddleware
		product, err := findProductByName(db, c.Param("productName"))
		if err != nil {
			// Unknown lookup key
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
			return
		}
		var existing domain.Favorite // Probe for an existing row
		err = db.Where("user_id = ? AND product_id = ?", userID, product.ID).First(&existing).Error
		if err == nil {
			// Row exists: toggle off
			if err := db.Delete(&existing).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update favorites"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"success": true, "isFavorite": false})
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update favorites"})
			return
		}
		// Row absent: toggle on. A concurrent duplicate insert is stopped
		// by the (user, product) unique index.
		favorite := domain.Favorite{UserID: userID, ProductID: product.ID}
		if err := db.Create(&favorite).Error; err != nil {
			logrus.WithFields(logrus.Fields{"user_id": userID, "product_id": product.ID, "error": err.Error()}).Error("Favorite insert failed")
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update favorites"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "isFavorite": true})
	}
}
