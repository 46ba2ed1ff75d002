package domain

import "time"

// Comment Model
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`                             // Primary key
	UserID    uint      `gorm:"not null" json:"user_id"`                          // Author
	IssueID   uint      `gorm:"not null;index" json:"issue_id"`                   // Commented issue
	Text      string    `gorm:"column:comment;type:text;not null" json:"comment"` // Comment body
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`           // Append time
}
