package domain

import "time"

// User Model
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`                         // Primary key
	Username     string    `gorm:"size:64;uniqueIndex;not null" json:"username"` // Unique username
	Email        string    `gorm:"size:191;uniqueIndex;not null" json:"email"`   // Unique email
	Password     string    `gorm:"not null" json:"-"`                            // Hashed password, never serialized
	FullName     string    `json:"full_name"`                                    // Display name
	Phone        string    `json:"phone"`                                        // Contact phone
	Address      string    `json:"address"`                                      // Postal address
	Pincode      string    `gorm:"size:6" json:"pincode"`                        // Six digit postal code
	GovtIDType   string    `gorm:"size:16" json:"govt_id_type"`                  // aadhaar, pan or voter
	GovtIDNumber string    `gorm:"size:32" json:"-"`                             // Raw government id, exposed only masked
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`             // Registration time
}
