package db

import (
	"storefront/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus"

	"gorm.io/driver/mysql" // MySQL driver for GORM
	"gorm.io/gorm"         // GORM ORM library
)

// Migrate performs automatic migration for the database schema
func Migrate(dsn string) *gorm.DB {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{}) // Open a connection to the database
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err) // Log fatal error if connection fails
	}
	// AutoMigrate will create tables, missing foreign keys, constraints, columns and indexes
	if err := AutoMigrate(db); err != nil {
		logrus.Fatalf("migration failed: %v", err) // Log fatal error if migration fails
	}
	logrus.Info("Migration completed.") // Log successful migration
	return db
}

// AutoMigrate migrates all storefront models on an existing connection
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},     // Accounts
		&domain.Product{},  // Catalog
		&domain.Favorite{}, // (user, product) favorites
		&domain.CartItem{}, // (user, product) cart lines
	)
}
