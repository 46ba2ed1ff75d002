package api

import (
	"civic_reports/internal/middleware" // Claims accessors
	"civic_reports/internal/store"      // Issue store
	"net/http"                          // HTTP status codes
	"strings"                           // String manipulation

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// StatusUpdateRequest is the admin triage payload
type StatusUpdateRequest struct {
	Status               string  `json:"status"`           // New status
	AssignedOfficer      *string `json:"assignedOfficer"`  // Officer in charge
	AssignedOfficerSnake *string `json:"assigned_officer"` // Same field, snake case spelling
}

// officer returns the assigned officer, nil when absent or blank
func (r StatusUpdateRequest) officer() *string {
	for _, v := range []*string{r.AssignedOfficer, r.AssignedOfficerSnake} {
		if v != nil && strings.TrimSpace(*v) != "" {
			trimmed := strings.TrimSpace(*v)
			return &trimmed
		}
	}
	return nil
}

// UpdateStatusHandler changes an issue's status and assigned officer
func UpdateStatusHandler(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		adminID := c.GetUint(middleware.UserIDKey) // Get adminID from context
		issueID, ok := parseID(c, "id")            // Parse issue id
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
			return
		}
		var req StatusUpdateRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Status is required"})
			return
		}
		if err := s.UpdateStatus(c.Request.Context(), issueID, req.Status, req.officer()); err != nil {
			respondError(c, err, logrus.Fields{"admin_id": adminID, "issue_id": issueID})
			return
		}
		// Log the triage decision
		logrus.WithFields(logrus.Fields{
			"admin_id": adminID,    // Acting admin
			"issue_id": issueID,    // Updated issue
			"status":   req.Status, // New status
		}).Info("Issue status updated")
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Issue status updated successfully"})
	}
}

// AnalyticsHandler returns category, status and total counts
func AnalyticsHandler(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := s.Analytics(c.Request.Context())
		if err != nil {
			respondError(c, err, logrus.Fields{"admin_id": c.GetUint(middleware.UserIDKey)})
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}
