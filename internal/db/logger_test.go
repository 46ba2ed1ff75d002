package db_test

import (
	"civic_reports/internal/db"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// lineRecorder collects what the SQL logger prints
type lineRecorder struct {
	lines []string
}

func (r *lineRecorder) Printf(format string, args ...any) {
	r.lines = append(r.lines, fmt.Sprintf(format, args...))
}

type ballot struct {
	ID      uint `gorm:"primaryKey"`
	UserID  uint `gorm:"uniqueIndex:idx_ballot"`
	IssueID uint `gorm:"uniqueIndex:idx_ballot"`
}

func openRecorded(t *testing.T) (*gorm.DB, *lineRecorder) {
	t.Helper()
	rec := &lineRecorder{}
	dsn := filepath.Join(t.TempDir(), "log.db") + "?_pragma=busy_timeout(5000)"
	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: db.NewLogger(rec, logger.Warn)})
	require.NoError(t, err)
	sqlDB, err := database.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, database.AutoMigrate(&ballot{}))
	rec.lines = nil
	return database, rec
}

func TestLoggerSkipsUniqueViolations(t *testing.T) {
	// Arrange
	database, rec := openRecorded(t)
	require.NoError(t, database.Create(&ballot{UserID: 1, IssueID: 1}).Error)

	// Act
	err := database.Create(&ballot{UserID: 1, IssueID: 1}).Error

	// Assert
	require.Error(t, err)
	assert.True(t, db.IsDuplicateKey(err))
	assert.Empty(t, rec.lines, "a repeated ballot is not a database failure")
}

func TestLoggerKeepsOtherErrors(t *testing.T) {
	database, rec := openRecorded(t)

	var rows []ballot
	err := database.Table("missing").Find(&rows).Error

	require.Error(t, err)
	require.NotEmpty(t, rec.lines)
	assert.Contains(t, strings.ToLower(strings.Join(rec.lines, "\n")), "no such table")
}

func TestLoggerKeepsFilterInSessions(t *testing.T) {
	database, rec := openRecorded(t)
	require.NoError(t, database.Create(&ballot{UserID: 2, IssueID: 3}).Error)

	// Debug derives a new logger through LogMode
	err := database.Debug().Create(&ballot{UserID: 2, IssueID: 3}).Error

	require.Error(t, err)
	for _, line := range rec.lines {
		assert.NotContains(t, strings.ToLower(line), "unique constraint")
	}
}

func TestIsDuplicateKey(t *testing.T) {
	assert.False(t, db.IsDuplicateKey(nil))
	assert.True(t, db.IsDuplicateKey(gorm.ErrDuplicatedKey))
	assert.True(t, db.IsDuplicateKey(fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey)))
	assert.True(t, db.IsDuplicateKey(errors.New("Error 1062: Duplicate entry 'a' for key 'email'")))
	assert.True(t, db.IsDuplicateKey(errors.New("UNIQUE constraint failed: votes.user_id, votes.issue_id")))
	assert.False(t, db.IsDuplicateKey(gorm.ErrRecordNotFound))
}
