package repository

import (
	"context"
	"time"

	"github.com/amchigale/konkani-dictionary/internal/common"
	"github.com/amchigale/konkani-dictionary/internal/domain"
	"gorm.io/gorm"
)

var suggestionSorts = map[string]string{
	"created_at":     "s.created_at DESC",
	"created_at_asc": "s.created_at ASC",
	"contributor":    "c.name ASC",
}

// SuggestionRepository suggestion ledger data access
type SuggestionRepository interface {
	WithTx(tx *gorm.DB) SuggestionRepository
	Create(ctx context.Context, s *domain.Suggestion) error
	FindByID(ctx context.Context, id string) (*domain.Suggestion, error)
	FindByIDForUpdate(ctx context.Context, id string) (*domain.Suggestion, error)
	FindDetail(ctx context.Context, id string) (*domain.SuggestionListItem, error)
	List(ctx context.Context, params domain.SuggestionListParams) ([]domain.SuggestionListItem, error)
	Transition(ctx context.Context, id string, from []string, update StatusUpdate) (int64, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
	CountReviewedBetween(ctx context.Context, status string, from, to time.Time) (int64, error)
	CountActiveContributorsSince(ctx context.Context, since time.Time) (int64, error)
}

// StatusUpdate is the reviewer-side change applied on a status transition
type StatusUpdate struct {
	Status        string
	ReviewedBy    string
	ReviewedAt    *time.Time
	ReviewerNotes *string
}

type suggestionRepository struct {
	db *gorm.DB
}

// NewSuggestionRepository creates a new SuggestionRepository
func NewSuggestionRepository(db *gorm.DB) SuggestionRepository {
	return &suggestionRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *suggestionRepository) WithTx(tx *gorm.DB) SuggestionRepository {
	return &suggestionRepository{db: tx}
}

func (r *suggestionRepository) Create(ctx context.Context, s *domain.Suggestion) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *suggestionRepository) FindByID(ctx context.Context, id string) (*domain.Suggestion, error) {
	var s domain.Suggestion
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error; err != nil {
		return nil, notFound(err, common.ErrSuggestionNotFound)
	}
	return &s, nil
}

func (r *suggestionRepository) FindByIDForUpdate(ctx context.Context, id string) (*domain.Suggestion, error) {
	var s domain.Suggestion
	if err := forUpdate(r.db.WithContext(ctx)).Where("id = ?", id).First(&s).Error; err != nil {
		return nil, notFound(err, common.ErrSuggestionNotFound)
	}
	return &s, nil
}

func (r *suggestionRepository) joined(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("dictionary_suggestions AS s").
		Select("s.*, c.name AS contributor_name, c.email AS contributor_email, rv.name AS reviewer_name").
		Joins("JOIN contributors c ON s.contributor_id = c.id").
		Joins("LEFT JOIN contributors rv ON s.reviewed_by = rv.id")
}

func (r *suggestionRepository) FindDetail(ctx context.Context, id string) (*domain.SuggestionListItem, error) {
	var items []domain.SuggestionListItem
	if err := r.joined(ctx).Where("s.id = ?", id).Limit(1).Find(&items).Error; err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, common.ErrSuggestionNotFound
	}
	return &items[0], nil
}

// List filters by status (required) and optional type, sorted and paginated
func (r *suggestionRepository) List(ctx context.Context, params domain.SuggestionListParams) ([]domain.SuggestionListItem, error) {
	query := r.joined(ctx).Where("s.status = ?", params.Status)
	if params.Type != "" {
		query = query.Where("s.suggestion_type = ?", params.Type)
	}
	order, ok := suggestionSorts[params.Sort]
	if !ok {
		order = suggestionSorts["created_at"]
	}

	items := make([]domain.SuggestionListItem, 0)
	err := query.Order(order).Limit(params.Limit).Offset(params.Offset).Find(&items).Error
	return items, err
}

// Transition moves a suggestion whose status is one of from.
// Returns the number of rows changed; 0 means the status had already moved on.
func (r *suggestionRepository) Transition(ctx context.Context, id string, from []string, update StatusUpdate) (int64, error) {
	fields := map[string]interface{}{
		"status":      update.Status,
		"reviewed_by": update.ReviewedBy,
	}
	if update.ReviewedAt != nil {
		fields["reviewed_at"] = *update.ReviewedAt
	}
	if update.ReviewerNotes != nil {
		fields["reviewer_notes"] = *update.ReviewerNotes
	}
	res := r.db.WithContext(ctx).Model(&domain.Suggestion{}).
		Where("id = ? AND status IN ?", id, from).
		Updates(fields)
	return res.RowsAffected, res.Error
}

func (r *suggestionRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Suggestion{}).Where("status = ?", status).Count(&n).Error
	return n, err
}

// CountReviewedBetween counts suggestions in status reviewed within [from, to)
func (r *suggestionRepository) CountReviewedBetween(ctx context.Context, status string, from, to time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Suggestion{}).
		Where("status = ? AND reviewed_at >= ? AND reviewed_at < ?", status, from, to).
		Count(&n).Error
	return n, err
}

func (r *suggestionRepository) CountActiveContributorsSince(ctx context.Context, since time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Suggestion{}).
		Where("created_at >= ?", since).
		Distinct("contributor_id").
		Count(&n).Error
	return n, err
}
