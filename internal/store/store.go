// Package store owns the persistent records of the service: identities,
// issues, the vote ledger and the comment log, plus the query engine that
// joins them into issue views.
package store

import (
	"civic_reports/internal/utils" // Cache helpers
	"context"                      // Request scoped operations
	"html"                         // Entity decoding after sanitizing
	"strings"                      // Whitespace trimming
	"time"                         // Cache TTLs

	"github.com/microcosm-cc/bluemonday" // Sanitizer for user supplied text
	"github.com/redis/go-redis/v9"       // Redis client
	"github.com/sirupsen/logrus"         // Logrus for structured logging
	"gorm.io/gorm"                       // GORM ORM library
)

const (
	issuesGenerationKey = "issues:gen"     // Bumped on every issue, vote or status write
	issuesQueryPrefix   = "issues:q:"      // Prefix of cached query results
	defaultQueryTTL     = 60 * time.Second // Same TTL as the admin listings
)

// Store is the single entry point for persistence
type Store struct {
	db        *gorm.DB           // Database handle
	rdb       *redis.Client      // Optional, nil disables query caching
	sanitizer *bluemonday.Policy // Markup stripper for user text
	queryTTL  time.Duration      // Lifetime of cached listings
}

// New builds a Store. rdb may be nil.
func New(db *gorm.DB, rdb *redis.Client) *Store {
	return &Store{
		db:        db,                        // Database handle
		rdb:       rdb,                       // May be nil
		sanitizer: bluemonday.StrictPolicy(), // Strip every tag from plain text fields
		queryTTL:  defaultQueryTTL,           // Default cache lifetime
	}
}

// DB exposes the underlying handle for health checks
func (s *Store) DB() *gorm.DB { return s.db }

// Ping checks the database and, when configured, Redis
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return storageError(err)
	}
	if err := sqlDB.PingContext(ctx); err != nil { // Round trip to the database
		return storageError(err)
	}
	if s.rdb != nil {
		if err := s.rdb.Ping(ctx).Err(); err != nil { // Round trip to Redis
			return &Error{Kind: ErrStorage, Msg: "Cache unavailable", Cause: err}
		}
	}
	return nil
}

// invalidateIssues makes every cached issue listing stale
func (s *Store) invalidateIssues(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := utils.BumpGeneration(ctx, s.rdb, issuesGenerationKey); err != nil {
		logrus.WithError(err).Warn("failed to invalidate issue cache") // Entries expire on their own
	}
}

// plainText strips markup from user input and trims it.
// The sanitizer escapes entities, they are decoded back since values are stored as plain text.
func (s *Store) plainText(v string) string {
	return strings.TrimSpace(html.UnescapeString(s.sanitizer.Sanitize(v)))
}
