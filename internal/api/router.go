package api

import (
	"civic_reports/internal/middleware" // Custom package for middleware
	"civic_reports/internal/store"      // Persistence
	"civic_reports/internal/uploads"    // Image storage
	"slices"                            // Slice helpers
	"time"                              // CORS cache age

	"github.com/gin-contrib/cors" // CORS middleware
	"github.com/gin-gonic/gin"    // Gin web framework
)

// Deps are the collaborators the HTTP layer needs
type Deps struct {
	Store       *store.Store   // Persistence and queries
	Images      *uploads.Store // Uploaded images
	JWTSecret   string         // JWT secret key
	CORSOrigins []string       // Allowed browser origins, "*" for any
}

// corsConfig allows the browser client to call the API with a bearer token
func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length", "X-Total-Count", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true // Open API, tokens are not cookies
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

// NewRouter wires every route onto a new gin engine
func NewRouter(d Deps) *gin.Engine {
	r := gin.New()                                                                         // Gin router instance
	r.Use(gin.Recovery(), middleware.RequestLogger(), cors.New(corsConfig(d.CORSOrigins))) // Shared middleware

	r.GET("/healthz", HealthHandler(d.Store))    // Liveness and dependency check
	r.Static(uploads.PublicPrefix, d.Images.Dir) // Uploaded images

	api := r.Group("/api")
	// Auth routes
	api.POST("/register", RegisterHandler(d.Store, d.JWTSecret))      // Registration endpoint
	api.POST("/login", LoginHandler(d.Store, d.JWTSecret))            // Login endpoint
	api.POST("/admin/login", AdminLoginHandler(d.Store, d.JWTSecret)) // Admin login endpoint
	api.GET("/categories", CategoriesHandler())                       // Category list
	api.POST("/classify", ClassifyHandler())                          // Category suggestion

	// Public issue reads
	api.GET("/issues", ListIssuesHandler(d.Store, false))         // Public listing, latest first
	api.GET("/issues/:id", GetIssueHandler(d.Store))              // Single issue
	api.GET("/issues/:id/comments", ListCommentsHandler(d.Store)) // Issue comments

	// Citizen routes (protected by JWT)
	citizen := api.Group("")
	citizen.Use(middleware.JWTAuthMiddleware(d.JWTSecret), middleware.UserOnlyMiddleware())
	citizen.POST("/issues", CreateIssueHandler(d.Store, d.Images))   // Report an issue
	citizen.POST("/issues/:id/vote", VoteHandler(d.Store))           // Vote on an issue
	citizen.POST("/issues/:id/comments", AddCommentHandler(d.Store)) // Comment on an issue
	citizen.GET("/me/votes", MyVotesHandler(d.Store))                // Issues the caller voted on
	citizen.GET("/profile", GetProfileHandler(d.Store))              // Read profile
	citizen.PUT("/profile", UpdateProfileHandler(d.Store))           // Update profile

	// Admin routes (protected, admin only)
	adminGroup := api.Group("/admin")
	adminGroup.Use(middleware.JWTAuthMiddleware(d.JWTSecret), middleware.AdminOnlyMiddleware(d.Store))
	adminGroup.GET("/issues", ListIssuesHandler(d.Store, true))        // Admin listing, most voted first
	adminGroup.PUT("/issues/:id/status", UpdateStatusHandler(d.Store)) // Triage an issue
	adminGroup.GET("/analytics", AnalyticsHandler(d.Store))            // Dashboard counts

	return r
}
