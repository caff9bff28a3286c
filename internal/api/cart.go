package api

import (
	"errors"   // Sentinel error comparison
	"net/http" // HTTP status codes

	"storefront/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// GetCartHandler returns the caller's cart lines with product details
// and a running total
func GetCartHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.MustGet("userID").(uint) // Set by SessionAuthMiddleware
		var items []domain.CartItem          // Slice to hold cart lines
		if err := db.Preload("Product").Where("user_id = ?", userID).Order("created_at asc").Find(&items).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch cart"})
			return
		}
		var total float64 // Sum of line prices
		for _, item := range items {
			total += item.Product.Price * float64(item.Quantity)
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "cart": items, "total": total})
	}
}

// AddToCartHandler adds one unit of the product to the caller's cart.
// First add creates the line with quantity 1; repeat adds increment it.
func AddToCartHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.MustGet("userID").(uint) // Set by SessionAuthMiddleware
		product, err := findProductByName(db, c.Param("productName"))
		if err != nil {
			// Unknown lookup key
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
			return
		}
		var item domain.CartItem // Probe for an existing line
		err = db.Where("user_id = ? AND product_id = ?", userID, product.ID).First(&item).Error
		if err == nil {
			// Line exists: bump the quantity, no upper bound
			if err := db.Model(&item).Update("quantity", gorm.Expr("quantity + 1")).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update cart"})
				return
			}
			// Re-read the row: a concurrent add may have moved the counter
			// past our pre-update snapshot
			if err := db.First(&item, item.ID).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update cart"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"success": true, "quantity": item.Quantity})
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update cart"})
			return
		}
		// No line yet: create with quantity 1. The (user, product) unique
		// index absorbs concurrent duplicate adds.
		item = domain.CartItem{UserID: userID, ProductID: product.ID, Quantity: 1}
		if err := db.Create(&item).Error; err != nil {
			logrus.WithFields(logrus.Fields{"user_id": userID, "product_id": product.ID, "error": err.Error()}).Error("Cart insert failed")
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "quantity": 1})
	}
}

// RemoveFromCartHandler deletes the whole cart line regardless of quantity
func RemoveFromCartHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.MustGet("userID").(uint) // Set by SessionAuthMiddleware
		product, err := findProductByName(db, c.Param("productName"))
		if err != nil {
			// Unknown lookup key
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
			return
		}
		// Removal clears the entire line, never a single unit
		if err := db.Where("user_id = ? AND product_id = ?", userID, product.ID).Delete(&domain.CartItem{}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
