package repository

import (
	"context"
	"time"

	"github.com/amchigale/konkani-dictionary/internal/common"
	"github.com/amchigale/konkani-dictionary/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ContributorRepository contributor data access
type ContributorRepository interface {
	WithTx(tx *gorm.DB) ContributorRepository
	FindByID(ctx context.Context, id string) (*domain.Contributor, error)
	FindByEmail(ctx context.Context, email string) (*domain.Contributor, error)
	UpsertForSubmission(ctx context.Context, email, name string) (*domain.Contributor, error)
	IncrementApproved(ctx context.Context, id string) error
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
	EnsureExpert(ctx context.Context, email, name string) (bool, error)
	SetPasswordHash(ctx context.Context, email, hash string) error
	SetActive(ctx context.Context, email string, active bool) error
	Promote(ctx context.Context, email string) error
}

type contributorRepository struct {
	db *gorm.DB
}

// NewContributorRepository creates a new ContributorRepository
func NewContributorRepository(db *gorm.DB) ContributorRepository {
	return &contributorRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *contributorRepository) WithTx(tx *gorm.DB) ContributorRepository {
	return &contributorRepository{db: tx}
}

func (r *contributorRepository) FindByID(ctx context.Context, id string) (*domain.Contributor, error) {
	var c domain.Contributor
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, notFound(err, common.ErrNotFound)
	}
	return &c, nil
}

func (r *contributorRepository) FindByEmail(ctx context.Context, email string) (*domain.Contributor, error) {
	var c domain.Contributor
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&c).Error; err != nil {
		return nil, notFound(err, common.ErrNotFound)
	}
	return &c, nil
}

// UpsertForSubmission inserts the contributor with contributions_count=1, or
// increments the existing row's count, in one statement keyed on email.
func (r *contributorRepository) UpsertForSubmission(ctx context.Context, email, name string) (*domain.Contributor, error) {
	c := &domain.Contributor{
		Email:              email,
		Name:               name,
		IsActive:           true,
		ContributionsCount: 1,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "email"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"contributions_count": gorm.Expr("contributors.contributions_count + 1"),
		}),
	}).Create(c).Error
	if err != nil {
		return nil, err
	}
	// on conflict the generated id is not the stored one
	return r.FindByEmail(ctx, email)
}

func (r *contributorRepository) IncrementApproved(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Model(&domain.Contributor{}).
		Where("id = ?", id).
		Update("approved_contributions", gorm.Expr("approved_contributions + ?", 1))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *contributorRepository) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	return r.db.WithContext(ctx).Model(&domain.Contributor{}).
		Where("id = ?", id).
		Update("last_login", at).Error
}

// EnsureExpert creates an active expert if the email is unknown.
// Reports whether a row was inserted; existing rows are left untouched.
func (r *contributorRepository) EnsureExpert(ctx context.Context, email, name string) (bool, error) {
	c := &domain.Contributor{
		Email:    email,
		Name:     name,
		IsExpert: true,
		IsActive: true,
	}
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoNothing: true,
	}).Create(c)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *contributorRepository) SetPasswordHash(ctx context.Context, email, hash string) error {
	return r.updateByEmail(ctx, email, map[string]interface{}{"password_hash": hash})
}

func (r *contributorRepository) SetActive(ctx context.Context, email string, active bool) error {
	return r.updateByEmail(ctx, email, map[string]interface{}{"is_active": active})
}

// Promote grants expert rights to an existing contributor and activates the account
func (r *contributorRepository) Promote(ctx context.Context, email string) error {
	return r.updateByEmail(ctx, email, map[string]interface{}{"is_expert": true, "is_active": true})
}

// updateByEmail looks the row up first: MySQL reports zero affected rows
// when the new values equal the stored ones.
func (r *contributorRepository) updateByEmail(ctx context.Context, email string, fields map[string]interface{}) error {
	db := r.db.WithContext(ctx)
	var c domain.Contributor
	if err := db.Select("id").Where("email = ?", email).First(&c).Error; err != nil {
		return notFound(err, common.ErrNotFound)
	}
	return db.Model(&domain.Contributor{}).Where("id = ?", c.ID).Updates(fields).Error
}
