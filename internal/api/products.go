package api

import (
	"net/http" // HTTP status codes

	"storefront/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// ListProductsHandler returns the whole catalog, no authentication required
func ListProductsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var products []domain.Product // Slice to hold products
		if err := db.Order("created_at desc").Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch products"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "products": products})
	}
}

// findProductByName resolves the URL lookup key to a product row.
// Names carry a uniqueness constraint, so the lookup is unambiguous.
func findProductByName(db *gorm.DB, name string) (*domain.Product, error) {
	var product domain.Product
	if err := db.Where("name = ?", name).First(&product).Error; err != nil {
		return nil, err // Not found or storage error
	}
	return &product, nil
}
