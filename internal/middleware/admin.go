package middleware

import (
	"civic_reports/internal/store" // Identity lookups
	"errors"                       // Error inspection
	"net/http"                     // HTTP status codes

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// AdminOnlyMiddleware requires an admin token whose admin still exists
func AdminOnlyMiddleware(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, exists := GetClaims(c) // Get claims from context
		// Check if claims exist in context
		if !exists {
			// If not, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		// Check the role claim first, user tokens never reach the database
		if !claims.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		// Re-read the admin on each request so removed admins lose access
		if _, err := s.GetAdmin(c.Request.Context(), claims.ID); err != nil {
			if !errors.Is(err, store.ErrNotFound) {
				logrus.WithFields(logrus.Fields{
					"admin_id": claims.ID,   // Admin ID from token
					"error":    err.Error(), // Error message
				}).Error("Admin lookup failed") // Log lookup failure
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
				return
			}
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		// If admin, proceed to the next handler
		c.Next()
	}
}
