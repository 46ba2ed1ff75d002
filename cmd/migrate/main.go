package main

import (
	"civic_reports/internal/config" // Custom import path (Config)
	"civic_reports/internal/db"     // Custom import path (Database)
	"civic_reports/internal/store"  // Admin seeding
	"context"                       // Seeding context

	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// Main entry point for migration
func main() {
	cfg := config.LoadConfig() // Load configuration

	database, err := db.Open(cfg) // Open a connection to the database
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err) // Log fatal error if connection fails
	}
	if err := db.Migrate(database); err != nil {
		logrus.Fatalf("migration failed: %v", err) // Log fatal error if migration fails
	}
	// Seed the default administrator, a no-op when it already exists
	if err := store.New(database, nil).SeedAdmin(context.Background(), cfg.AdminEmail, cfg.AdminPassword, cfg.AdminName); err != nil {
		logrus.Fatalf("seeding admin failed: %v", err)
	}
	logrus.WithField("email", cfg.AdminEmail).Info("Default admin ready.")
}
