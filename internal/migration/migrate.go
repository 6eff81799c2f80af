package migration

import (
	"context"
	"fmt"

	"github.com/amchigale/konkani-dictionary/internal/domain"
	"github.com/amchigale/konkani-dictionary/internal/repository"
	pkglogger "github.com/amchigale/konkani-dictionary/pkg/logger"
	"gorm.io/gorm"
)

// Expert is a default reviewer account created on first migration
type Expert struct {
	Email string
	Name  string
}

// DefaultExperts are seeded without a password; an operator sets one with
// `dictctl expert set-password`.
var DefaultExperts = []Expert{
	{Email: "expert@konkani.org", Name: "Dr. Konkani Expert"},
	{Email: "admin@konkani.org", Name: "Dictionary Admin"},
}

// Run executes AutoMigrate for every dictionary table and seeds the default experts.
// Safe to run repeatedly.
func Run(ctx context.Context, db *gorm.DB) error {
	// 1. AutoMigrate creates missing tables and indexes
	if err := db.WithContext(ctx).AutoMigrate(domain.AllModels()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	// 2. Seed experts; existing accounts are left untouched
	return SeedExperts(ctx, repository.NewContributorRepository(db), DefaultExperts)
}

// SeedExperts creates missing expert accounts
func SeedExperts(ctx context.Context, contributors repository.ContributorRepository, experts []Expert) error {
	for _, e := range experts {
		created, err := contributors.EnsureExpert(ctx, e.Email, e.Name)
		if err != nil {
			return fmt.Errorf("seed expert %s: %w", e.Email, err)
		}
		if created {
			pkglogger.Info("Seeded expert account %s (no password set)", e.Email)
		}
	}
	return nil
}
