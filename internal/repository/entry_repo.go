package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/amchigale/konkani-dictionary/internal/common"
	"github.com/amchigale/konkani-dictionary/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Searchable entry fields, keyed by the public search type
var searchColumns = map[string][]string{
	"english_word": {"word_konkani_english_alphabet"},
	"devanagari":   {"word_konkani_devanagari"},
	"meaning":      {"english_meaning"},
	"context":      {"context_usage_sentence"},
	"all": {
		"word_konkani_english_alphabet",
		"word_konkani_devanagari",
		"english_meaning",
		"context_usage_sentence",
	},
	// agent lookups skip the usage sentence
	"headword": {
		"word_konkani_devanagari",
		"word_konkani_english_alphabet",
		"english_meaning",
	},
}

// IsSearchType reports whether t names a column set Search understands
func IsSearchType(t string) bool {
	_, ok := searchColumns[t]
	return ok
}

// EntryRepository dictionary entry data access
type EntryRepository interface {
	WithTx(tx *gorm.DB) EntryRepository
	FindByID(ctx context.Context, id string) (*domain.DictionaryEntry, error)
	FindByIDForUpdate(ctx context.Context, id string) (*domain.DictionaryEntry, error)
	FindByEntryNumber(ctx context.Context, n int) (*domain.DictionaryEntry, error)
	FindByIDs(ctx context.Context, ids []string) ([]domain.DictionaryEntry, error)
	List(ctx context.Context, page, limit int) ([]domain.DictionaryEntry, int64, error)
	Search(ctx context.Context, q, searchType string, limit int) ([]domain.DictionaryEntry, error)
	NextEntryNumber(ctx context.Context) (int, error)
	Create(ctx context.Context, entry *domain.DictionaryEntry) error
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	Stats(ctx context.Context) (*domain.DictionaryStats, error)
	FindInBatches(ctx context.Context, batchSize int, fn func([]domain.DictionaryEntry) error) error
}

type entryRepository struct {
	db *gorm.DB
}

// NewEntryRepository creates a new EntryRepository
func NewEntryRepository(db *gorm.DB) EntryRepository {
	return &entryRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *entryRepository) WithTx(tx *gorm.DB) EntryRepository {
	return &entryRepository{db: tx}
}

func (r *entryRepository) FindByID(ctx context.Context, id string) (*domain.DictionaryEntry, error) {
	var entry domain.DictionaryEntry
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&entry).Error; err != nil {
		return nil, notFound(err, common.ErrEntryNotFound)
	}
	return &entry, nil
}

func (r *entryRepository) FindByIDForUpdate(ctx context.Context, id string) (*domain.DictionaryEntry, error) {
	var entry domain.DictionaryEntry
	if err := forUpdate(r.db.WithContext(ctx)).Where("id = ?", id).First(&entry).Error; err != nil {
		return nil, notFound(err, common.ErrEntryNotFound)
	}
	return &entry, nil
}

func (r *entryRepository) FindByEntryNumber(ctx context.Context, n int) (*domain.DictionaryEntry, error) {
	var entry domain.DictionaryEntry
	if err := r.db.WithContext(ctx).Where("entry_number = ?", n).First(&entry).Error; err != nil {
		return nil, notFound(err, common.ErrEntryNotFound)
	}
	return &entry, nil
}

// FindByIDs returns entries in the order of ids; unknown ids are skipped
func (r *entryRepository) FindByIDs(ctx context.Context, ids []string) ([]domain.DictionaryEntry, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []domain.DictionaryEntry
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	byID := make(map[string]domain.DictionaryEntry, len(rows))
	for _, e := range rows {
		byID[e.ID] = e
	}
	out := make([]domain.DictionaryEntry, 0, len(rows))
	for _, id := range ids {
		if e, ok := byID[id]; ok {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *entryRepository) List(ctx context.Context, page, limit int) ([]domain.DictionaryEntry, int64, error) {
	var entries []domain.DictionaryEntry
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.DictionaryEntry{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	if err := query.Order("entry_number").Offset(offset).Limit(limit).Find(&entries).Error; err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

// Search matches q as a case-insensitive substring of the columns for searchType.
// Unknown types search all columns. limit <= 0 means unbounded.
func (r *entryRepository) Search(ctx context.Context, q, searchType string, limit int) ([]domain.DictionaryEntry, error) {
	cols, ok := searchColumns[searchType]
	if !ok {
		cols = searchColumns["all"]
	}
	clauses := make([]string, len(cols))
	args := make([]interface{}, len(cols))
	for i, col := range cols {
		clauses[i] = "LOWER(" + col + ") LIKE ?"
		args[i] = likePattern(q)
	}

	query := r.db.WithContext(ctx).Where(strings.Join(clauses, " OR "), args...).Order("entry_number")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var entries []domain.DictionaryEntry
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// NextEntryNumber returns MAX(entry_number)+1. Call inside the creating transaction;
// concurrent callers are serialized until that transaction ends.
func (r *entryRepository) NextEntryNumber(ctx context.Context) (int, error) {
	db := r.db.WithContext(ctx)
	pre, lockRead := entryNumberLock(db.Dialector.Name())
	if pre != "" {
		if err := db.Exec(pre, entryNumberLockKey).Error; err != nil {
			return 0, fmt.Errorf("lock entry numbers: %w", err)
		}
	}

	query := db.Model(&domain.DictionaryEntry{}).Select("COALESCE(MAX(entry_number), 0) + 1")
	if lockRead {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var next int
	err := query.Scan(&next).Error
	return next, err
}

func (r *entryRepository) Create(ctx context.Context, entry *domain.DictionaryEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// Update writes the given columns; ErrEntryNotFound when no row matched
func (r *entryRepository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	res := r.db.WithContext(ctx).Model(&domain.DictionaryEntry{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return common.ErrEntryNotFound
	}
	return nil
}

func (r *entryRepository) Stats(ctx context.Context) (*domain.DictionaryStats, error) {
	var stats domain.DictionaryStats
	err := r.db.WithContext(ctx).Model(&domain.DictionaryEntry{}).
		Select(`COUNT(*) AS total_entries,
			COUNT(word_konkani_devanagari) AS with_devanagari,
			COUNT(word_konkani_english_alphabet) AS with_english_alphabet,
			COALESCE(SUM(CASE WHEN devanagari_needs_correction OR meaning_needs_correction THEN 1 ELSE 0 END), 0) AS needing_correction`).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// FindInBatches walks every entry ordered by entry_number
func (r *entryRepository) FindInBatches(ctx context.Context, batchSize int, fn func([]domain.DictionaryEntry) error) error {
	var last *int
	for {
		query := r.db.WithContext(ctx).Order("entry_number").Limit(batchSize)
		if last != nil {
			query = query.Where("entry_number > ?", *last)
		}
		var batch []domain.DictionaryEntry
		if err := query.Find(&batch).Error; err != nil {
			return err
		}
		if len(batch) == 0 {
			return nil
		}
		if err := fn(batch); err != nil {
			return err
		}
		if len(batch) < batchSize {
			return nil
		}
		n := batch[len(batch)-1].EntryNumber
		last = &n
	}
}
