package db

import (
	"errors" // Sentinel error comparison
	"strings"

	"storefront/internal/domain" // Importing domain models
	"storefront/internal/utils"  // Password hashing

	"github.com/sirupsen/logrus"
	"gorm.io/gorm" // GORM ORM library
)

// SeedAdmin creates the default administrator account if it does not exist yet
func SeedAdmin(db *gorm.DB, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email)) // Normalize like registration does
	var existing domain.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil // Admin already seeded
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err // Unexpected lookup failure
	}
	hash, err := utils.HashPassword(password) // Never store the plaintext
	if err != nil {
		return err
	}
	admin := domain.User{
		Email:     email,            // Admin email
		Password:  hash,             // Bcrypt hash
		FirstName: "Store",          // Placeholder name
		LastName:  "Admin",          // Placeholder name
		Role:      domain.RoleAdmin, // Administrator role
		Active:    true,             // Enabled
	}
	if err := db.Create(&admin).Error; err != nil {
		return err // Creation failed
	}
	logrus.WithField("email", email).Info("Seeded default admin account")
	return nil
}

// SeedProducts inserts a small sample catalog when the products table is empty
func SeedProducts(db *gorm.DB) error {
	var count int64
	if err := db.Model(&domain.Product{}).Count(&count).Error; err != nil {
		return err // Count failed
	}
	if count > 0 {
		return nil // Catalog already populated
	}
	samples := []domain.Product{
		{Name: "Classic Runner", Brand: "Stride", Description: "Everyday running shoe", Price: 89.99, Emoji: "👟", SizeRange: "36-46"},
		{Name: "Trail Blazer", Brand: "Stride", Description: "Grippy trail shoe", Price: 119.50, Emoji: "🥾", SizeRange: "38-47"},
		{Name: "Court Ace", Brand: "Baseline", Description: "Tennis court shoe", Price: 99.00, Emoji: "🎾", SizeRange: "36-45"},
		{Name: "City Loafer", Brand: "Urbane", Description: "Casual leather loafer", Price: 74.25, Emoji: "🥿", SizeRange: "37-44"},
	}
	if err := db.Create(&samples).Error; err != nil {
		return err // Insert failed
	}
	logrus.WithField("count", len(samples)).Info("Seeded sample catalog")
	return nil
}
