package repository

import (
	"context"

	"github.com/amchigale/konkani-dictionary/internal/domain"
	"gorm.io/gorm"
)

// ChangeLogRepository append-only audit trail access
type ChangeLogRepository interface {
	WithTx(tx *gorm.DB) ChangeLogRepository
	Create(ctx context.Context, entry *domain.ChangeLogEntry) error
	ListByEntry(ctx context.Context, entryID string) ([]domain.ChangeLogEntry, error)
	ListBySuggestion(ctx context.Context, suggestionID string) ([]domain.ChangeLogEntry, error)
}

type changeLogRepository struct {
	db *gorm.DB
}

// NewChangeLogRepository creates a new ChangeLogRepository
func NewChangeLogRepository(db *gorm.DB) ChangeLogRepository {
	return &changeLogRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *changeLogRepository) WithTx(tx *gorm.DB) ChangeLogRepository {
	return &changeLogRepository{db: tx}
}

func (r *changeLogRepository) Create(ctx context.Context, entry *domain.ChangeLogEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *changeLogRepository) ListByEntry(ctx context.Context, entryID string) ([]domain.ChangeLogEntry, error) {
	rows := make([]domain.ChangeLogEntry, 0)
	err := r.db.WithContext(ctx).Where("entry_id = ?", entryID).Order("created_at DESC").Find(&rows).Error
	return rows, err
}

func (r *changeLogRepository) ListBySuggestion(ctx context.Context, suggestionID string) ([]domain.ChangeLogEntry, error) {
	rows := make([]domain.ChangeLogEntry, 0)
	err := r.db.WithContext(ctx).Where("suggestion_id = ?", suggestionID).Order("created_at").Find(&rows).Error
	return rows, err
}
