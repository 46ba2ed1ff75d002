package store

import (
	"civic_reports/internal/domain" // Importing domain models
	"context"                       // Request scoped operations
)

// CategoryCount is one row of the per-category breakdown
type CategoryCount struct {
	Category string `json:"category"` // Canonical category
	Count    int64  `json:"count"`    // Issues in the category
}

// StatusCount is one row of the per-status breakdown
type StatusCount struct {
	Status string `json:"status"` // Status label as stored
	Count  int64  `json:"count"`  // Issues with the status
}

// TotalStats counts issues overall and per canonical status
type TotalStats struct {
	TotalIssues      int64 `json:"total_issues"`       // Every issue
	ResolvedIssues   int64 `json:"resolved_issues"`    // Status Resolved
	InProgressIssues int64 `json:"in_progress_issues"` // Status In Progress
	PendingIssues    int64 `json:"pending_issues"`     // Status Pending
}

// Analytics is the admin dashboard summary
type Analytics struct {
	CategoryStats []CategoryCount `json:"categoryStats"` // Ordered by category
	StatusStats   []StatusCount   `json:"statusStats"`   // Ordered by status
	TotalStats    TotalStats      `json:"totalStats"`    // Overall counts
}

// Analytics aggregates the issue table with three independent group-by queries
func (s *Store) Analytics(ctx context.Context) (*Analytics, error) {
	db := s.db.WithContext(ctx)                                                       // Shared session
	out := &Analytics{CategoryStats: []CategoryCount{}, StatusStats: []StatusCount{}} // Empty lists, never null

	if err := db.Model(&domain.Issue{}).
		Select("category, COUNT(*) AS count").
		Group("category").
		Order("category").
		Scan(&out.CategoryStats).Error; err != nil {
		return nil, storageError(err)
	}

	if err := db.Model(&domain.Issue{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Order("status").
		Scan(&out.StatusStats).Error; err != nil {
		return nil, storageError(err)
	}

	if err := db.Model(&domain.Issue{}).
		Select(`COUNT(*) AS total_issues,
			COUNT(CASE WHEN status = ? THEN 1 END) AS resolved_issues,
			COUNT(CASE WHEN status = ? THEN 1 END) AS in_progress_issues,
			COUNT(CASE WHEN status = ? THEN 1 END) AS pending_issues`,
			domain.StatusResolved, domain.StatusInProgress, domain.StatusPending).
		Scan(&out.TotalStats).Error; err != nil {
		return nil, storageError(err)
	}
	return out, nil
}
