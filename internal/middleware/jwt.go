package middleware

import (
	"civic_reports/internal/utils" // JWT utility functions
	"net/http"                     // HTTP status codes
	"strings"                      // String manipulation

	"github.com/gin-gonic/gin" // Gin web framework
)

// Context keys set by JWTAuthMiddleware
const (
	ClaimsKey = "claims" // *utils.Claims of the caller
	UserIDKey = "userID" // uint id of the caller
)

// JWTAuthMiddleware validates JWT tokens and extracts identity information
func JWTAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization") // Get Authorization header
		// Check if the Authorization header is present and properly formatted
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			// If not, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Access token required"})
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ") // Extract the token string
		claims, err := utils.ParseJWT(tokenStr, secret)       // Parse the JWT token
		if err != nil {
			// If parsing fails, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}
		c.Set(ClaimsKey, claims)    // Store claims in context
		c.Set(UserIDKey, claims.ID) // Store identity id in context
		c.Next()                    // Proceed to the next handler
	}
}

// UserOnlyMiddleware rejects admin tokens on citizen routes, admin ids live in another table
func UserOnlyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := GetClaims(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		if claims.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "User account required"})
			return
		}
		c.Next()
	}
}

// GetClaims returns the claims stored by JWTAuthMiddleware
func GetClaims(c *gin.Context) (*utils.Claims, bool) {
	v, exists := c.Get(ClaimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*utils.Claims)
	return claims, ok
}
