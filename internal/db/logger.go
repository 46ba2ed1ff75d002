package db

import (
	"context" // Request context
	"errors"  // Error inspection
	"strings" // Driver message matching
	"time"    // Slow query threshold

	"gorm.io/gorm"        // GORM error values
	"gorm.io/gorm/logger" // GORM logger interface
)

// SlowQueryThreshold marks a statement as slow in the SQL log
const SlowQueryThreshold = 200 * time.Millisecond

// queryLogger is GORM's logger minus unique index violations.
// A repeated vote or a taken username is answered with 409, not a failure.
type queryLogger struct {
	logger.Interface
}

// NewLogger builds the SQL logger writing to w at the given level
func NewLogger(w logger.Writer, level logger.LogLevel) logger.Interface {
	return queryLogger{logger.New(w, logger.Config{
		SlowThreshold:             SlowQueryThreshold, // Warn about slow statements
		LogLevel:                  level,              // SQL logging level
		IgnoreRecordNotFoundError: true,               // Lookups miss all the time
		Colorful:                  false,              // Plain text for log collectors
	})}
}

// LogMode keeps the filter when GORM derives a session logger
func (l queryLogger) LogMode(level logger.LogLevel) logger.Interface {
	return queryLogger{l.Interface.LogMode(level)}
}

// Trace logs the statement, reporting a unique index violation as a plain statement
func (l queryLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if IsDuplicateKey(err) {
		err = nil // Handled by the caller
	}
	l.Interface.Trace(ctx, begin, fc, err)
}

// IsDuplicateKey reports whether err is a unique index violation.
// TranslateError covers most drivers; the message checks catch the rest.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, fragment := range duplicateKeyMessages {
		if strings.Contains(msg, fragment) {
			return true
		}
	}
	return false
}

// Driver messages of unique index violations
var duplicateKeyMessages = []string{
	"unique constraint", // SQLite, PostgreSQL
	"duplicate entry",   // MySQL
	"duplicate key",     // PostgreSQL
}
