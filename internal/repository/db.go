package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// forUpdate adds a row lock on dialects that support SELECT ... FOR UPDATE.
// SQLite serializes writers and has no row locks.
func forUpdate(db *gorm.DB) *gorm.DB {
	if db.Dialector.Name() == "sqlite" {
		return db
	}
	return db.Clauses(clause.Locking{Strength: "UPDATE"})
}

// entryNumberLockKey names the advisory lock that serializes entry number allocation
const entryNumberLockKey = 0x6b6f6e6b // "konk"

// entryNumberLock returns the statement to run before reading MAX(entry_number)
// and whether the read itself must lock rows. Postgres rejects FOR UPDATE on
// aggregates, so it takes a transaction-scoped advisory lock instead.
func entryNumberLock(dialect string) (pre string, lockRead bool) {
	switch dialect {
	case "postgres":
		return "SELECT pg_advisory_xact_lock(?)", false
	case "mysql":
		return "", true
	default:
		return "", false
	}
}

// likePattern builds a case-insensitive, unanchored LIKE argument
func likePattern(q string) string {
	return "%" + strings.ToLower(q) + "%"
}

// notFound maps gorm.ErrRecordNotFound to target and passes other errors through
func notFound(err, target error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return target
	}
	return err
}
