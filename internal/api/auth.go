package api

import (
	"civic_reports/internal/domain"     // Importing domain models
	"civic_reports/internal/middleware" // Claims accessors
	"civic_reports/internal/store"      // Identity store
	"civic_reports/internal/utils"      // Utility functions
	"net/http"                          // HTTP status codes

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// RegisterRequest is the sign up payload
type RegisterRequest struct {
	Username     string `json:"username"`     // Unique username
	Email        string `json:"email"`        // Unique email
	Password     string `json:"password"`     // Plain password, hashed before storage
	FullName     string `json:"fullName"`     // Display name
	Phone        string `json:"phone"`        // Contact phone
	Address      string `json:"address"`      // Postal address
	Pincode      string `json:"pincode"`      // Six digit postal code
	GovtIDType   string `json:"govtIdType"`   // aadhaar, pan or voter
	GovtIDNumber string `json:"govtIdNumber"` // Government id number
}

// Request struct for login
type LoginRequest struct {
	Username string `json:"username" binding:"required"` // Username or email
	Password string `json:"password" binding:"required"` // Password must be provided
}

// Request struct for admin login
type AdminLoginRequest struct {
	Email    string `json:"email" binding:"required"`    // Admin email
	Password string `json:"password" binding:"required"` // Password must be provided
}

// ProfileRequest replaces the mutable profile fields
type ProfileRequest struct {
	FullName     string `json:"fullName"`     // Display name
	Phone        string `json:"phone"`        // Contact phone
	Address      string `json:"address"`      // Postal address
	Pincode      string `json:"pincode"`      // Six digit postal code
	GovtIDType   string `json:"govtIdType"`   // aadhaar, pan or voter
	GovtIDNumber string `json:"govtIdNumber"` // Government id number
}

// UserResponse is the public shape of a user, the government id is masked
type UserResponse struct {
	*domain.User
	GovtIDNumber string `json:"govt_id_number,omitempty"` // Masked government id
}

// AuthResponse is returned by every login flow
type AuthResponse struct {
	Success bool          `json:"success"`         // Always true on 2xx
	Token   string        `json:"token"`           // JWT token
	User    *UserResponse `json:"user,omitempty"`  // Set for citizen logins
	Admin   *domain.Admin `json:"admin,omitempty"` // Set for admin logins
}

func newUserResponse(u *domain.User) *UserResponse {
	return &UserResponse{User: u, GovtIDNumber: store.MaskGovtID(u.GovtIDNumber)}
}

// userToken issues the identity token of a citizen
func userToken(u *domain.User, secret string) (string, error) {
	return utils.GenerateJWT(utils.Claims{ID: u.ID, Username: u.Username, Email: u.Email}, secret)
}

// RegisterHandler creates a user account and logs it in
func RegisterHandler(s *store.Store, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Create the user, the store validates and hashes the password
		user, err := s.Register(c.Request.Context(), store.RegisterInput{
			Username:     req.Username,
			Email:        req.Email,
			Password:     req.Password,
			FullName:     req.FullName,
			Phone:        req.Phone,
			Address:      req.Address,
			Pincode:      req.Pincode,
			GovtIDType:   req.GovtIDType,
			GovtIDNumber: req.GovtIDNumber,
		})
		if err != nil {
			respondError(c, err, logrus.Fields{"username": req.Username}) // Duplicate, invalid or storage error
			return
		}
		// Generate JWT token
		token, err := userToken(user, jwtSecret)
		if err != nil {
			// If token generation fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		// Log successful registration
		logrus.WithFields(logrus.Fields{
			"user_id":  user.ID,       // User ID
			"username": user.Username, // Username
		}).Info("User registered")
		c.JSON(http.StatusCreated, AuthResponse{Success: true, Token: token, User: newUserResponse(user)})
	}
}

// LoginHandler authenticates a user by username or email and returns a JWT token
func LoginHandler(s *store.Store, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password are required"})
			return
		}
		user, err := s.Authenticate(c.Request.Context(), req.Username, req.Password)
		if err != nil {
			respondError(c, err, logrus.Fields{"login": req.Username}) // Invalid credentials or storage error
			return
		}
		// Generate JWT token
		token, err := userToken(user, jwtSecret)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		// Return the token in the response
		c.JSON(http.StatusOK, AuthResponse{Success: true, Token: token, User: newUserResponse(user)})
	}
}

// AdminLoginHandler authenticates an administrator and returns an admin token
func AdminLoginHandler(s *store.Store, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AdminLoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
			return
		}
		admin, err := s.AuthenticateAdmin(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			respondError(c, err, logrus.Fields{"email": req.Email})
			return
		}
		// Admin tokens carry the role claim checked by AdminOnlyMiddleware
		token, err := utils.GenerateJWT(utils.Claims{ID: admin.ID, Email: admin.Email, Role: utils.RoleAdmin}, jwtSecret)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		logrus.WithField("admin_id", admin.ID).Info("Admin logged in") // Audit admin logins
		c.JSON(http.StatusOK, AuthResponse{Success: true, Token: token, Admin: admin})
	}
}

// GetProfileHandler returns the caller's profile
func GetProfileHandler(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint(middleware.UserIDKey) // Get userID from context
		user, err := s.GetUser(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err, logrus.Fields{"user_id": userID})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": newUserResponse(user)})
	}
}

// UpdateProfileHandler replaces the caller's profile fields
func UpdateProfileHandler(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint(middleware.UserIDKey) // Get userID from context
		var req ProfileRequest                    // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		user, err := s.UpdateProfile(c.Request.Context(), userID, store.ProfileInput{
			FullName:     req.FullName,
			Phone:        req.Phone,
			Address:      req.Address,
			Pincode:      req.Pincode,
			GovtIDType:   req.GovtIDType,
			GovtIDNumber: req.GovtIDNumber,
		})
		if err != nil {
			respondError(c, err, logrus.Fields{"user_id": userID})
			return
		}
		logrus.WithField("user_id", userID).Info("Profile updated") // Log profile change
		c.JSON(http.StatusOK, gin.H{"success": true, "user": newUserResponse(user)})
	}
}
