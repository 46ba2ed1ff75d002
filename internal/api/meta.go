package api

import (
	"civic_reports/internal/classifier" // Category suggestions
	"civic_reports/internal/store"      // Health checks
	"context"                           // Health check timeout
	"net/http"                          // HTTP status codes
	"time"                              // Time durations

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// ClassifyRequest names the image to classify
type ClassifyRequest struct {
	Filename string `form:"filename" json:"filename"` // Image file name
}

// CategoriesHandler lists the accepted issue categories
func CategoriesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"categories": classifier.Categories()})
	}
}

// ClassifyHandler suggests a category for an image file name.
// Classification is advisory, a bad request still gets the low confidence default.
func ClassifyHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ClassifyRequest
		if err := c.ShouldBind(&req); err != nil {
			logrus.WithError(err).Debug("classify request unreadable, using default")
		}
		c.JSON(http.StatusOK, classifier.Classify(req.Filename))
	}
}

// HealthHandler pings the database and cache
func HealthHandler(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second) // Bound the ping
		defer cancel()
		if err := s.Ping(ctx); err != nil {
			logrus.WithError(err).Warn("health check failed") // Log failed dependency
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
