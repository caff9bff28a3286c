package main

import (
	"storefront/internal/config" // Custom import path (Config)
	"storefront/internal/db"     // Custom import path (Database)

	"github.com/sirupsen/logrus" // Logging library
)

// Main entry point for migration and seeding
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Database Source Name (DSN) for MySQL connection
	dsn := cfg.DBUser + ":" + cfg.DBPassword + "@tcp(" + cfg.DBHost + ":" + cfg.DBPort + ")/" + cfg.DBName + "?parseTime=true"
	conn := db.Migrate(dsn) // Create tables, indexes, and constraints

	// Seed the default admin and a starter catalog
	if err := db.SeedAdmin(conn, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		logrus.Fatalf("admin seed failed: %v", err)
	}
	if err := db.SeedProducts(conn); err != nil {
		logrus.Fatalf("catalog seed failed: %v", err)
	}
}
