// Package testutil provides an in-memory datastore and fixtures for tests.
package testutil

import (
	"testing"
	"time"

	"github.com/amchigale/konkani-dictionary/internal/domain"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a fresh in-memory SQLite database with every model migrated.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	db := OpenDB(t)
	require.NoError(t, db.AutoMigrate(domain.AllModels()...))
	return db
}

// OpenDB opens an empty in-memory SQLite database.
// The pool is pinned to one connection so all statements see the same database.
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:  logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

// Str returns a pointer to s
func Str(s string) *string { return &s }

// CreateEntry inserts a dictionary entry with the given number and fields
func CreateEntry(t *testing.T, db *gorm.DB, number int, devanagari, roman, meaning, context *string) *domain.DictionaryEntry {
	t.Helper()
	e := &domain.DictionaryEntry{
		EntryNumber:                number,
		WordKonkaniDevanagari:      devanagari,
		WordKonkaniEnglishAlphabet: roman,
		EnglishMeaning:             meaning,
		ContextUsageSentence:       context,
	}
	require.NoError(t, db.Create(e).Error)
	return e
}

// CreateContributor inserts a plain contributor
func CreateContributor(t *testing.T, db *gorm.DB, email, name string) *domain.Contributor {
	t.Helper()
	c := &domain.Contributor{Email: email, Name: name, IsActive: true}
	require.NoError(t, db.Create(c).Error)
	return c
}

// CreateExpert inserts an active expert with the given bcrypt hash (may be empty)
func CreateExpert(t *testing.T, db *gorm.DB, email, name, passwordHash string) *domain.Contributor {
	t.Helper()
	c := &domain.Contributor{Email: email, Name: name, IsExpert: true, IsActive: true}
	if passwordHash != "" {
		c.PasswordHash = &passwordHash
	}
	require.NoError(t, db.Create(c).Error)
	return c
}

// CreateSuggestion inserts a pending suggestion
func CreateSuggestion(t *testing.T, db *gorm.DB, s *domain.Suggestion) *domain.Suggestion {
	t.Helper()
	require.NoError(t, db.Create(s).Error)
	return s
}
