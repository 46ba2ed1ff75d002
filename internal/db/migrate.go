package db

import (
	"civic_reports/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus" // Logrus for structured logging
	"gorm.io/gorm"               // GORM ORM library
)

// Models lists every table managed by the service
var Models = []any{
	&domain.User{},
	&domain.Admin{},
	&domain.Issue{},
	&domain.Vote{},
	&domain.Comment{},
}

// Migrate performs automatic migration for the database schema
func Migrate(db *gorm.DB) error {
	// AutoMigrate will create tables, missing columns and indexes, including the unique vote index
	if err := db.AutoMigrate(Models...); err != nil {
		logrus.WithError(err).Error("migration failed") // Log migration failure
		return err
	}
	logrus.Info("Migration completed.") // Log successful migration
	return nil
}
