package domain

import (
	"strings"
	"time"
)

// Issue categories
const (
	CategoryRoads          = "Roads"
	CategoryInfrastructure = "Infrastructure"
	CategorySanitation     = "Sanitation"
	CategoryGarbage        = "Garbage"
	CategoryElectricity    = "Electricity"
	CategoryWater          = "Water"
	CategoryOther          = "Other"
)

// Canonical issue statuses. Status is free text, these are the ones the
// analytics totals count.
const (
	StatusPending    = "Pending"
	StatusInProgress = "In Progress"
	StatusResolved   = "Resolved"
)

// Categories lists every accepted category in display order
var Categories = []string{
	CategoryRoads,
	CategoryInfrastructure,
	CategorySanitation,
	CategoryGarbage,
	CategoryElectricity,
	CategoryWater,
	CategoryOther,
}

// NormalizeCategory returns the canonical spelling of a category, matched case-insensitively
func NormalizeCategory(category string) (string, bool) {
	category = strings.TrimSpace(category)
	for _, c := range Categories {
		if strings.EqualFold(c, category) {
			return c, true
		}
	}
	return "", false
}

// Issue Model
type Issue struct {
	ID              uint      `gorm:"primaryKey" json:"id"`                                 // Primary key
	Title           string    `gorm:"size:255;not null" json:"title"`                       // Short summary
	Description     string    `gorm:"type:text;not null" json:"description"`                // Full description
	Category        string    `gorm:"size:32;not null;index" json:"category"`               // One of Categories
	Status          string    `gorm:"size:32;not null;default:Pending;index" json:"status"` // Triage status
	Location        string    `gorm:"size:255" json:"location"`                             // Free text location
	ImagePath       *string   `gorm:"size:255" json:"image_path"`                           // Optional image reference
	ReporterID      *uint     `gorm:"index" json:"reporter_id"`                             // Weak reference to User, nil if anonymous
	Votes           int64     `gorm:"not null;default:0" json:"votes"`                      // Denormalized counter, ledger is authoritative
	AssignedOfficer *string   `gorm:"size:255" json:"assigned_officer"`                     // Set by admins
	CreatedAt       time.Time `gorm:"autoCreateTime;index" json:"created_at"`               // Report time
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`                     // Last status change
}
