package domain

import "time"

// Admin Model
//
// Admins live in their own table; a token issued from this table carries
// the admin role claim.
type Admin struct {
	ID        uint      `gorm:"primaryKey" json:"id"`                       // Primary key
	Email     string    `gorm:"size:191;uniqueIndex;not null" json:"email"` // Unique login email
	Password  string    `gorm:"not null" json:"-"`                          // Hashed password
	Name      string    `gorm:"not null" json:"name"`                       // Display name
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`           // Creation time
}
