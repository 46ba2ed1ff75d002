package utils

import (
	"time" // Time for the issued-at claim

	"github.com/golang-jwt/jwt/v5" // JWT library
)

// RoleAdmin marks tokens issued from the admins table
const RoleAdmin = "admin"

// JWT Claims
//
// Tokens carry no expiry; they stay valid until the secret rotates.
type Claims struct {
	ID                   uint   `json:"id"`                 // User or admin ID
	Username             string `json:"username,omitempty"` // Username for user tokens
	Email                string `json:"email"`              // Email of the identity
	Role                 string `json:"role,omitempty"`     // "admin" for admin tokens
	jwt.RegisteredClaims        // Standard JWT claims
}

// IsAdmin reports whether the token was issued to an administrator
func (c *Claims) IsAdmin() bool {
	return c.Role == RoleAdmin
}

// GenerateJWT creates a signed token for the given identity claims
func GenerateJWT(claims Claims, secret string) (string, error) {
	claims.RegisteredClaims = jwt.RegisteredClaims{
		IssuedAt: jwt.NewNumericDate(time.Now()), // Issued at current time
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims) // Create token with claims
	return token.SignedString([]byte(secret))                  // Sign the token with the secret
}

// ParseJWT parses and validates a JWT token string
func ParseJWT(tokenStr, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		return []byte(secret), nil // Return the secret key for validation
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	// Check for parsing errors
	if err != nil {
		return nil, err // Return error if parsing fails
	}
	// Validate token and extract claims
	if claims, ok := token.Claims.(*Claims); ok && token.Valid && claims.ID != 0 {
		return claims, nil // Return claims if valid
	}
	// Return error if token is invalid
	return nil, jwt.ErrTokenInvalidClaims
}
