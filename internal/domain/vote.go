package domain

import "time"

// Vote Model
//
// The composite unique index is what keeps a user to one vote per issue,
// concurrent duplicates fail at insert time.
type Vote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`                                            // Primary key
	UserID    uint      `gorm:"not null;uniqueIndex:idx_votes_user_issue" json:"user_id"`        // Voter
	IssueID   uint      `gorm:"not null;uniqueIndex:idx_votes_user_issue;index" json:"issue_id"` // Voted issue
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`                                // Vote time
}
