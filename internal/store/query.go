package store

import (
	"civic_reports/internal/domain" // Importing domain models
	"civic_reports/internal/utils"  // Cache helpers
	"context"                       // Request scoped operations
	"strconv"                       // String conversion
	"strings"                       // Sort option normalization

	"github.com/sirupsen/logrus" // Logrus for structured logging
	"gorm.io/gorm"               // GORM ORM library
)

// MaxPageSize caps page_size on paginated listings
const MaxPageSize = 100

// QuerySpec selects and orders issues.
// Category and Status are exact matches; "" and "all" disable the filter.
type QuerySpec struct {
	Category string // Exact category name
	Status   string // Exact status label
	SortBy   string // Any key of sortColumns, defaults depend on Admin
	Order    string // ASC or DESC, case-insensitive
	Page     int    // 1-based, ignored when PageSize is 0
	PageSize int    // 0 returns the full result set
	Admin    bool   // Admin listings default to votes DESC
}

// IssueView is an issue joined with its reporter's name and live vote count
type IssueView struct {
	domain.Issue `gorm:"embedded"`
	ReporterName *string `json:"reporter_name"` // Nil for anonymous reports
	VoteCount    int64   `json:"vote_count"`    // Number of ledger rows for the issue
}

// sortColumns whitelists sortable keys. Values are ORDER BY expressions.
var sortColumns = map[string]string{
	"id":               "issues.id",
	"title":            "issues.title",
	"description":      "issues.description",
	"category":         "issues.category",
	"status":           "issues.status",
	"location":         "issues.location",
	"created_at":       "issues.created_at",
	"updated_at":       "issues.updated_at",
	"assigned_officer": "issues.assigned_officer",
	"reporter_name":    "reporter_name",
	"votes":            "vote_count",
	"vote_count":       "vote_count",
}

// normalize fills defaults and validates sort options
func (q QuerySpec) normalize() (QuerySpec, error) {
	q.Category = strings.TrimSpace(q.Category)
	q.Status = strings.TrimSpace(q.Status)
	if strings.EqualFold(q.Category, "all") {
		q.Category = ""
	}
	if strings.EqualFold(q.Status, "all") {
		q.Status = ""
	}

	q.SortBy = strings.ToLower(strings.TrimSpace(q.SortBy))
	if q.SortBy == "" {
		q.SortBy = "created_at"
		if q.Admin {
			q.SortBy = "votes"
		}
	}
	if _, ok := sortColumns[q.SortBy]; !ok {
		return q, validationError("Unsupported sortBy: " + q.SortBy)
	}

	q.Order = strings.ToUpper(strings.TrimSpace(q.Order))
	if q.Order == "" {
		q.Order = "DESC"
	}
	if q.Order != "ASC" && q.Order != "DESC" {
		return q, validationError("Order must be ASC or DESC")
	}

	if q.PageSize < 0 {
		q.PageSize = 0
	}
	if q.PageSize > MaxPageSize {
		q.PageSize = MaxPageSize
	}
	if q.Page < 1 {
		q.Page = 1
	}
	return q, nil
}

// cacheKey identifies a normalized spec within a cache generation
func (q QuerySpec) cacheKey(generation int64) string {
	return issuesQueryPrefix + strconv.FormatInt(generation, 10) + ":" + utils.HashKey(
		q.Category, q.Status, q.SortBy, q.Order,
		strconv.Itoa(q.Page), strconv.Itoa(q.PageSize),
	)
}

// issueViews is the shared join: issues, their reporter and their vote counts.
// Counts come from the ledger, never from the denormalized counter.
func (s *Store) issueViews(ctx context.Context) *gorm.DB {
	db := s.db.WithContext(ctx)
	counts := db.Model(&domain.Vote{}).
		Select("issue_id, COUNT(*) AS vote_count").
		Group("issue_id")
	return db.Table("issues").
		Select("issues.*, users.username AS reporter_name, COALESCE(vc.vote_count, 0) AS vote_count").
		Joins("LEFT JOIN users ON users.id = issues.reporter_id").
		Joins("LEFT JOIN (?) AS vc ON vc.issue_id = issues.id", counts)
}

func applyFilters(db *gorm.DB, q QuerySpec) *gorm.DB {
	if q.Category != "" {
		db = db.Where("issues.category = ?", q.Category)
	}
	if q.Status != "" {
		db = db.Where("issues.status = ?", q.Status)
	}
	return db
}

// QueryIssues returns the filtered, sorted issue views for spec.
// Ties are broken by ascending issue id so results are reproducible.
func (s *Store) QueryIssues(ctx context.Context, spec QuerySpec) ([]IssueView, error) {
	q, err := spec.normalize()
	if err != nil {
		return nil, err
	}

	key, cacheable := s.queryCacheKey(ctx, q) // Cache key for this generation
	if cacheable {
		var cached []IssueView                                 // Cached listing
		found, err := utils.GetCache(ctx, s.rdb, key, &cached) // Try the cache first
		if err != nil {
			logrus.WithError(err).WithField("key", key).Warn("issue cache read failed")
			if found {
				// Unreadable entry, drop it so the next read refills it
				_ = utils.DeleteCache(ctx, s.rdb, key)
			}
		} else if found {
			return cached, nil
		}
	}

	views := []IssueView{} // Never nil, encodes as []
	db := applyFilters(s.issueViews(ctx), q).
		Order(sortColumns[q.SortBy] + " " + q.Order).
		Order("issues.id ASC") // Reproducible ties
	if q.PageSize > 0 {
		db = db.Offset((q.Page - 1) * q.PageSize).Limit(q.PageSize)
	}
	if err := db.Scan(&views).Error; err != nil {
		return nil, storageError(err)
	}
	if views == nil {
		views = []IssueView{}
	}

	if cacheable {
		if err := utils.SetCache(ctx, s.rdb, key, views, s.queryTTL); err != nil { // Fill the cache
			logrus.WithError(err).WithField("key", key).Warn("issue cache write failed")
		}
	}
	return views, nil
}

// queryCacheKey returns the cache key for q, or false when caching is off or
// the generation counter cannot be read
func (s *Store) queryCacheKey(ctx context.Context, q QuerySpec) (string, bool) {
	if s.rdb == nil {
		return "", false
	}
	gen, err := utils.Generation(ctx, s.rdb, issuesGenerationKey) // Current cache generation
	if err != nil {
		logrus.WithError(err).Warn("issue cache generation unavailable")
		return "", false
	}
	return q.cacheKey(gen), true
}

// CountIssues counts the issues matching the filters of spec
func (s *Store) CountIssues(ctx context.Context, spec QuerySpec) (int64, error) {
	q, err := spec.normalize()
	if err != nil {
		return 0, err
	}
	var total int64 // Matching issues
	if err := applyFilters(s.db.WithContext(ctx).Model(&domain.Issue{}), q).Count(&total).Error; err != nil {
		return 0, storageError(err)
	}
	return total, nil
}

// GetIssueView loads one issue view
func (s *Store) GetIssueView(ctx context.Context, id uint) (*IssueView, error) {
	var views []IssueView                                                           // At most one row
	err := s.issueViews(ctx).Where("issues.id = ?", id).Limit(1).Scan(&views).Error // Same join as the listings
	if err != nil {
		return nil, storageError(err)
	}
	if len(views) == 0 {
		return nil, ErrIssueNotFound
	}
	return &views[0], nil
}
