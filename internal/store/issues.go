package store

import (
	"civic_reports/internal/domain" // Importing domain models
	"context"                       // Request scoped operations
	"errors"                        // Error inspection
	"strings"                       // String manipulation
	"time"                          // Status timestamps

	"gorm.io/gorm" // GORM ORM library
)

// CreateIssueInput is a citizen's report
type CreateIssueInput struct {
	Title       string // Short summary
	Description string // Full description
	Category    string // Matched case-insensitively
	Location    string // Free text location
	ImagePath   string // Empty when no image was uploaded
}

// CreateIssue stores a new report. reporterID is nil for anonymous reports.
func (s *Store) CreateIssue(ctx context.Context, reporterID *uint, in CreateIssueInput) (*domain.Issue, error) {
	title := s.plainText(in.Title)             // Strip markup
	description := s.plainText(in.Description) // Strip markup
	if title == "" || description == "" || strings.TrimSpace(in.Category) == "" {
		return nil, validationError("Title, description, and category are required")
	}
	category, ok := domain.NormalizeCategory(in.Category) // Canonical spelling
	if !ok {
		return nil, validationError("Category must be one of " + strings.Join(domain.Categories, ", "))
	}

	issue := domain.Issue{
		Title:       title,
		Description: description,
		Category:    category,
		Status:      domain.StatusPending,     // Every report starts pending
		Location:    s.plainText(in.Location), // Optional
		ReporterID:  reporterID,               // Nil for anonymous reports
	}
	if in.ImagePath != "" {
		path := in.ImagePath
		issue.ImagePath = &path
	}
	if err := s.db.WithContext(ctx).Create(&issue).Error; err != nil {
		return nil, storageError(err)
	}
	s.invalidateIssues(ctx) // New issue changes every listing
	return &issue, nil
}

// GetIssue loads a bare issue record
func (s *Store) GetIssue(ctx context.Context, id uint) (*domain.Issue, error) {
	var issue domain.Issue                               // Issue record
	err := s.db.WithContext(ctx).First(&issue, id).Error // Look up by primary key
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrIssueNotFound
	}
	if err != nil {
		return nil, storageError(err)
	}
	return &issue, nil
}

// UpdateStatus sets status and assigned officer and stamps updated_at.
// Callers are responsible for checking the admin role.
func (s *Store) UpdateStatus(ctx context.Context, id uint, status string, assignedOfficer *string) error {
	status = strings.TrimSpace(status) // Free text, admins may use their own labels
	if status == "" {
		return validationError("Status is required")
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var issue domain.Issue
		if err := tx.Select("id").First(&issue, id).Error; err != nil {
			return err
		}
		return tx.Model(&domain.Issue{}).Where("id = ?", id).Updates(map[string]any{
			"status":           status,          // New status
			"assigned_officer": assignedOfficer, // Nil clears the assignment
			"updated_at":       time.Now(),      // Stamp the status change
		}).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrIssueNotFound
	}
	if err != nil {
		return storageError(err)
	}
	s.invalidateIssues(ctx) // Status filters depend on it
	return nil
}
