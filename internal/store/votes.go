package store

import (
	"civic_reports/internal/domain" // Importing domain models
	"context"                       // Request scoped operations
	"errors"                        // Error inspection

	"gorm.io/gorm" // GORM ORM library
)

// CastVote records one vote of userID on issueID.
//
// The ledger insert and the counter increment share one transaction. The
// unique (user_id, issue_id) index decides between concurrent duplicates:
// the loser gets ErrAlreadyVoted and its transaction rolls back.
func (s *Store) CastVote(ctx context.Context, userID, issueID uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var issue domain.Issue                                               // Existence check only
		if err := tx.Select("id").First(&issue, issueID).Error; err != nil { // Lock in the issue first
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrIssueNotFound
			}
			return err
		}
		vote := domain.Vote{UserID: userID, IssueID: issueID} // Ledger row
		if err := tx.Create(&vote).Error; err != nil {
			if isDuplicateKey(err) {
				return ErrAlreadyVoted
			}
			return err
		}
		// UpdateColumn leaves updated_at alone, it tracks status changes only
		return tx.Model(&domain.Issue{}).Where("id = ?", issueID).
			UpdateColumn("votes", gorm.Expr("votes + ?", 1)).Error
	})
	switch {
	case err == nil:
		s.invalidateIssues(ctx) // Cached listings carry vote counts
		return nil
	case errors.Is(err, ErrIssueNotFound), errors.Is(err, ErrAlreadyVoted):
		return err
	default:
		return storageError(err)
	}
}

// HasVoted reports whether userID already voted on issueID
func (s *Store) HasVoted(ctx context.Context, userID, issueID uint) (bool, error) {
	var n int64 // Matching ledger rows
	err := s.db.WithContext(ctx).Model(&domain.Vote{}).
		Where("user_id = ? AND issue_id = ?", userID, issueID).
		Count(&n).Error
	if err != nil {
		return false, storageError(err)
	}
	return n > 0, nil
}

// VotedIssueIDs lists the issues userID has voted on, oldest vote first
func (s *Store) VotedIssueIDs(ctx context.Context, userID uint) ([]uint, error) {
	ids := []uint{} // Never nil, encodes as []
	err := s.db.WithContext(ctx).Model(&domain.Vote{}).
		Where("user_id = ?", userID).
		Order("id ASC").
		Pluck("issue_id", &ids).Error
	if err != nil {
		return nil, storageError(err)
	}
	return ids, nil
}
