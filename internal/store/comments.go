package store

import (
	"civic_reports/internal/domain" // Importing domain models
	"context"                       // Request scoped operations
	"errors"                        // Error inspection

	"gorm.io/gorm" // GORM ORM library
)

// CommentView is a comment joined with its author's username
type CommentView struct {
	domain.Comment `gorm:"embedded"`
	Username       *string `json:"username"` // Nil when the author row is gone
}

// AddComment appends a comment to an issue
func (s *Store) AddComment(ctx context.Context, userID, issueID uint, text string) (*domain.Comment, error) {
	text = s.plainText(text) // Strip markup
	if text == "" {
		return nil, validationError("Comment is required")
	}
	var issue domain.Issue                                                 // Existence check only
	err := s.db.WithContext(ctx).Select("id").First(&issue, issueID).Error // Comments need an issue
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrIssueNotFound
	}
	if err != nil {
		return nil, storageError(err)
	}
	comment := domain.Comment{UserID: userID, IssueID: issueID, Text: text} // Append only
	if err := s.db.WithContext(ctx).Create(&comment).Error; err != nil {
		return nil, storageError(err)
	}
	return &comment, nil
}

// ListComments returns every comment on an issue in creation order.
// Rows created in the same instant keep insertion order through the id.
func (s *Store) ListComments(ctx context.Context, issueID uint) ([]CommentView, error) {
	views := []CommentView{} // Never nil, encodes as []
	err := s.db.WithContext(ctx).
		Table("comments").
		Select("comments.*, users.username AS username").
		Joins("LEFT JOIN users ON users.id = comments.user_id"). // Keep comments of deleted users
		Where("comments.issue_id = ?", issueID).
		Order("comments.created_at ASC").
		Order("comments.id ASC").
		Scan(&views).Error
	if err != nil {
		return nil, storageError(err)
	}
	if views == nil {
		views = []CommentView{}
	}
	return views, nil
}
