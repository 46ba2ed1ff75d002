package api

import (
	"civic_reports/internal/store" // Store error kinds
	"errors"                       // Error inspection
	"net/http"                     // HTTP status codes

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// statusFor maps a store error to an HTTP status
func statusFor(err error) int {
	switch {
	case errors.Is(err, store.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrAlreadyVoted):
		return http.StatusBadRequest // Duplicate votes keep the 400 clients already handle
	case errors.Is(err, store.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrInvalidCredentials):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as {"error": message}; server side failures are logged with fields
func respondError(c *gin.Context, err error, fields logrus.Fields) {
	status := statusFor(err)       // Pick status code
	msg := "Internal server error" // Default message hides internals
	var se *store.Error
	if errors.As(err, &se) {
		msg = se.Msg // Store errors carry a client safe message
	}
	if status >= http.StatusInternalServerError {
		logrus.WithFields(fields).WithError(err).Error(msg) // Log server side failure
	}
	c.JSON(status, gin.H{"error": msg})
}
