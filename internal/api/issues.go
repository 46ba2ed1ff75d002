package api

import (
	"civic_reports/internal/middleware" // Claims accessors
	"civic_reports/internal/store"      // Issue store and query engine
	"civic_reports/internal/uploads"    // Image storage
	"errors"                            // Error inspection
	"net/http"                          // HTTP status codes
	"strconv"                           // String conversion
	"strings"                           // String manipulation

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// CreateIssueRequest is accepted as multipart form or JSON
type CreateIssueRequest struct {
	Title       string `form:"title" json:"title"`             // Short summary
	Description string `form:"description" json:"description"` // Full description
	Category    string `form:"category" json:"category"`       // One of the categories
	Location    string `form:"location" json:"location"`       // Free text location
}

// CommentRequest is the payload of a new comment
type CommentRequest struct {
	Comment string `json:"comment"` // Comment body
}

// ListIssuesHandler returns issue views filtered and sorted by the query string
func ListIssuesHandler(s *store.Store, admin bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		spec := parseQuerySpec(c, admin) // Read filters and sort options
		issues, err := s.QueryIssues(c.Request.Context(), spec)
		if err != nil {
			respondError(c, err, logrus.Fields{"category": spec.Category, "status": spec.Status, "sort_by": spec.SortBy})
			return
		}
		// Expose the total when the caller paginates
		if spec.PageSize > 0 {
			total, err := s.CountIssues(c.Request.Context(), spec)
			if err != nil {
				respondError(c, err, logrus.Fields{"category": spec.Category, "status": spec.Status})
				return
			}
			c.Header("X-Total-Count", strconv.FormatInt(total, 10)) // Total before pagination
		}
		c.JSON(http.StatusOK, issues) // Return the issue views
	}
}

// GetIssueHandler returns a single issue view
func GetIssueHandler(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id") // Parse issue id
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
			return
		}
		issue, err := s.GetIssueView(c.Request.Context(), id)
		if err != nil {
			respondError(c, err, logrus.Fields{"issue_id": id})
			return
		}
		c.JSON(http.StatusOK, issue)
	}
}

// CreateIssueHandler stores a new report with an optional image
func CreateIssueHandler(s *store.Store, images *uploads.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint(middleware.UserIDKey) // Get userID from context
		var req CreateIssueRequest                // Bind form or JSON request to struct
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Save the image first so the issue never points at a missing file
		var imagePath string
		if strings.HasPrefix(c.ContentType(), "multipart/") {
			fh, err := c.FormFile("image")
			switch {
			case errors.Is(err, http.ErrMissingFile):
				// No image attached
			case err != nil:
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image upload"})
				return
			default:
				imagePath, err = images.Save(fh)
				if err != nil {
					if uploads.IsClientError(err) {
						c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
						return
					}
					logrus.WithFields(logrus.Fields{
						"user_id": userID,      // Reporter
						"error":   err.Error(), // Error message
					}).Error("Failed to store image")
					c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store image"})
					return
				}
			}
		}
		issue, err := s.CreateIssue(c.Request.Context(), &userID, store.CreateIssueInput{
			Title:       req.Title,
			Description: req.Description,
			Category:    req.Category,
			Location:    req.Location,
			ImagePath:   imagePath,
		})
		if err != nil {
			// Rejected reports must not leave their image behind
			if imagePath != "" {
				if rmErr := images.Remove(imagePath); rmErr != nil {
					logrus.WithFields(logrus.Fields{
						"image": imagePath,     // Orphaned file
						"error": rmErr.Error(), // Error message
					}).Warn("Failed to remove image")
				}
			}
			respondError(c, err, logrus.Fields{"user_id": userID})
			return
		}
		// Log successful report
		logrus.WithFields(logrus.Fields{
			"user_id":  userID,         // Reporter
			"issue_id": issue.ID,       // New issue
			"category": issue.Category, // Category
		}).Info("Issue created")
		c.JSON(http.StatusCreated, gin.H{"success": true, "issue": issue})
	}
}

// VoteHandler records the caller's vote on an issue
func VoteHandler(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint(middleware.UserIDKey) // Get userID from context
		issueID, ok := parseID(c, "id")           // Parse issue id
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
			return
		}
		if err := s.CastVote(c.Request.Context(), userID, issueID); err != nil {
			respondError(c, err, logrus.Fields{"user_id": userID, "issue_id": issueID}) // Already voted, missing issue or storage error
			return
		}
		// Log successful vote
		logrus.WithFields(logrus.Fields{
			"user_id":  userID,  // Voter
			"issue_id": issueID, // Voted issue
		}).Info("Vote added")
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Vote added successfully"})
	}
}

// MyVotesHandler lists the ids of issues the caller has voted on
func MyVotesHandler(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint(middleware.UserIDKey) // Get userID from context
		ids, err := s.VotedIssueIDs(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err, logrus.Fields{"user_id": userID})
			return
		}
		c.JSON(http.StatusOK, gin.H{"issue_ids": ids})
	}
}

// AddCommentHandler appends a comment to an issue
func AddCommentHandler(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint(middleware.UserIDKey) // Get userID from context
		issueID, ok := parseID(c, "id")           // Parse issue id
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
			return
		}
		var req CommentRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Comment is required"})
			return
		}
		comment, err := s.AddComment(c.Request.Context(), userID, issueID, req.Comment)
		if err != nil {
			respondError(c, err, logrus.Fields{"user_id": userID, "issue_id": issueID})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Comment added successfully", "comment": comment})
	}
}

// ListCommentsHandler returns an issue's comments, oldest first
func ListCommentsHandler(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		issueID, ok := parseID(c, "id") // Parse issue id
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
			return
		}
		comments, err := s.ListComments(c.Request.Context(), issueID)
		if err != nil {
			respondError(c, err, logrus.Fields{"issue_id": issueID})
			return
		}
		c.JSON(http.StatusOK, comments)
	}
}
