package store_test

import (
	"civic_reports/internal/db"
	"civic_reports/internal/domain"
	"civic_reports/internal/store"
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a migrated SQLite database in a temp dir.
// One connection serializes writers the way a single SQLite file needs.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "civic.db") + "?_pragma=busy_timeout(5000)"
	database, err := db.OpenDialector(sqlite.Open(dsn), logger.Silent)
	require.NoError(t, err)
	sqlDB, err := database.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.Migrate(database))
	return database
}

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	return store.New(newTestDB(t), nil)
}

// newCachedStore returns a store backed by an in-memory Redis
func newCachedStore(t *testing.T) (*store.Store, *gorm.DB, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	database := newTestDB(t)
	return store.New(database, rdb), database, mr
}

func mustRegister(t *testing.T, s *store.Store, username string) *domain.User {
	t.Helper()
	u, err := s.Register(context.Background(), store.RegisterInput{
		Username: username,
		Email:    username + "@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	return u
}

func mustCreateIssue(t *testing.T, s *store.Store, reporter *uint, title, category string) *domain.Issue {
	t.Helper()
	issue, err := s.CreateIssue(context.Background(), reporter, store.CreateIssueInput{
		Title:       title,
		Description: "Description of " + title,
		Category:    category,
		Location:    "Ward 7",
	})
	require.NoError(t, err)
	return issue
}

func TestPingWithoutCache(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Ping(context.Background()))
}

func TestPingReportsCacheOutage(t *testing.T) {
	s, _, mr := newCachedStore(t)
	require.NoError(t, s.Ping(context.Background()))

	mr.Close()
	err := s.Ping(context.Background())
	require.ErrorIs(t, err, store.ErrStorage)
}
