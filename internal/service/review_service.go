package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/amchigale/konkani-dictionary/internal/common"
	"github.com/amchigale/konkani-dictionary/internal/domain"
	"github.com/amchigale/konkani-dictionary/internal/repository"
	"github.com/amchigale/konkani-dictionary/pkg/cache"
	pkglogger "github.com/amchigale/konkani-dictionary/pkg/logger"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// EntryIndexer receives entries changed by approved reviews
type EntryIndexer interface {
	IndexEntries(ctx context.Context, entries []domain.DictionaryEntry) error
}

// ReviewInput is one expert decision on a suggestion
type ReviewInput struct {
	SuggestionID string
	ReviewerID   string
	Decision     string
	Notes        string
	Overrides    *domain.ReviewOverrides
}

// ReviewService applies expert decisions to the suggestion ledger and the dictionary
type ReviewService struct {
	db              *gorm.DB
	suggestionRepo  repository.SuggestionRepository
	entryRepo       repository.EntryRepository
	contributorRepo repository.ContributorRepository
	changeLogRepo   repository.ChangeLogRepository
	cache           cache.Service
	indexer         EntryIndexer
	now             func() time.Time
}

// NewReviewService creates a new ReviewService
func NewReviewService(
	db *gorm.DB,
	suggestionRepo repository.SuggestionRepository,
	entryRepo repository.EntryRepository,
	contributorRepo repository.ContributorRepository,
	changeLogRepo repository.ChangeLogRepository,
) *ReviewService {
	return &ReviewService{
		db:              db,
		suggestionRepo:  suggestionRepo,
		entryRepo:       entryRepo,
		contributorRepo: contributorRepo,
		changeLogRepo:   changeLogRepo,
		now:             time.Now,
	}
}

// SetCache sets the dictionary cache invalidated after approvals
func (s *ReviewService) SetCache(c cache.Service) {
	s.cache = c
}

// SetIndexer sets the search indexer refreshed after approvals
func (s *ReviewService) SetIndexer(ix EntryIndexer) {
	s.indexer = ix
}

// txRepos is the set of repositories bound to one transaction
type txRepos struct {
	suggestions  repository.SuggestionRepository
	entries      repository.EntryRepository
	contributors repository.ContributorRepository
	changeLog    repository.ChangeLogRepository
}

func (s *ReviewService) bind(tx *gorm.DB) txRepos {
	return txRepos{
		suggestions:  s.suggestionRepo.WithTx(tx),
		entries:      s.entryRepo.WithTx(tx),
		contributors: s.contributorRepo.WithTx(tx),
		changeLog:    s.changeLogRepo.WithTx(tx),
	}
}

// Review applies an approve/reject decision in one transaction.
// A suggestion that already left pending/in_review yields ErrAlreadyReviewed.
func (s *ReviewService) Review(ctx context.Context, in ReviewInput) (*domain.ReviewResult, error) {
	if in.Decision != domain.StatusApproved && in.Decision != domain.StatusRejected {
		return nil, common.NewValidationError(`Decision must be "approved" or "rejected"`)
	}

	result := &domain.ReviewResult{SuggestionID: in.SuggestionID, Decision: in.Decision}
	var suggestionType string

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := s.bind(tx)

		suggestion, err := r.suggestions.FindByIDForUpdate(ctx, in.SuggestionID)
		if err != nil {
			return err
		}
		if !suggestion.Reviewable() {
			return common.ErrAlreadyReviewed
		}
		suggestionType = suggestion.SuggestionType

		reviewedAt := s.now().UTC()
		rows, err := r.suggestions.Transition(ctx, suggestion.ID,
			[]string{domain.StatusPending, domain.StatusInReview},
			repository.StatusUpdate{
				Status:        in.Decision,
				ReviewedBy:    in.ReviewerID,
				ReviewedAt:    &reviewedAt,
				ReviewerNotes: domain.StringPtr(in.Notes),
			})
		if err != nil {
			return fmt.Errorf("update suggestion status: %w", err)
		}
		if rows == 0 {
			return common.ErrAlreadyReviewed
		}

		if in.Decision == domain.StatusRejected {
			return nil
		}

		final := suggestion.SuggestedValues().Overlay(in.Overrides.Values())
		var entryID string
		switch suggestion.SuggestionType {
		case domain.SuggestionAddition:
			entryID, err = s.applyAddition(ctx, r, suggestion, final, in.ReviewerID)
		case domain.SuggestionCorrection:
			entryID, err = s.applyCorrection(ctx, r, suggestion, final, in.ReviewerID)
		case domain.SuggestionDeletion:
			entryID, err = s.applyDeletion(ctx, r, suggestion, in.ReviewerID)
		default:
			err = common.NewValidationError(fmt.Sprintf("unknown suggestion type %q", suggestion.SuggestionType))
		}
		if err != nil {
			return err
		}
		result.EntryID = &entryID

		if err := r.contributors.IncrementApproved(ctx, suggestion.ContributorID); err != nil {
			return fmt.Errorf("increment approved contributions: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	reviewDecisions.WithLabelValues(in.Decision, suggestionType).Inc()
	pkglogger.FromContext(ctx).Info().
		Str("suggestion_id", in.SuggestionID).
		Str("decision", in.Decision).
		Str("type", suggestionType).
		Str("reviewer_id", in.ReviewerID).
		Msg("suggestion reviewed")

	if result.EntryID != nil {
		s.afterApply(ctx, *result.EntryID)
	}
	return result, nil
}

func (s *ReviewService) applyAddition(ctx context.Context, r txRepos, suggestion *domain.Suggestion, final domain.EntryValues, reviewerID string) (string, error) {
	if !final.HasHeadword() {
		return "", common.NewValidationError("An addition needs a Devanagari word, romanized word or English meaning")
	}

	number, err := r.entries.NextEntryNumber(ctx)
	if err != nil {
		return "", fmt.Errorf("next entry number: %w", err)
	}
	entry := &domain.DictionaryEntry{
		EntryNumber:                number,
		WordKonkaniDevanagari:      final.WordKonkaniDevanagari,
		WordKonkaniEnglishAlphabet: final.WordKonkaniEnglishAlphabet,
		EnglishMeaning:             final.EnglishMeaning,
		ContextUsageSentence:       final.ContextUsageSentence,
	}
	if err := r.entries.Create(ctx, entry); err != nil {
		return "", fmt.Errorf("create entry: %w", err)
	}

	if err := s.appendChange(ctx, r, entry.ID, suggestion, domain.ChangeAddition, nil, &final, reviewerID); err != nil {
		return "", err
	}
	return entry.ID, nil
}

func (s *ReviewService) applyCorrection(ctx context.Context, r txRepos, suggestion *domain.Suggestion, final domain.EntryValues, reviewerID string) (string, error) {
	if suggestion.OriginalEntryID == nil {
		return "", common.NewValidationError("A correction must reference an existing entry")
	}

	entry, err := r.entries.FindByIDForUpdate(ctx, *suggestion.OriginalEntryID)
	if err != nil {
		return "", err
	}
	before := entry.Values()

	// nil fields keep the stored value
	if err := r.entries.Update(ctx, entry.ID, final.Updates()); err != nil {
		return "", fmt.Errorf("update entry: %w", err)
	}

	if err := s.appendChange(ctx, r, entry.ID, suggestion, domain.ChangeCorrection, &before, &final, reviewerID); err != nil {
		return "", err
	}
	return entry.ID, nil
}

// applyDeletion flags the entry for re-check; entries are never removed
func (s *ReviewService) applyDeletion(ctx context.Context, r txRepos, suggestion *domain.Suggestion, reviewerID string) (string, error) {
	if suggestion.OriginalEntryID == nil {
		return "", common.NewValidationError("A deletion must reference an existing entry")
	}

	entry, err := r.entries.FindByIDForUpdate(ctx, *suggestion.OriginalEntryID)
	if err != nil {
		return "", err
	}
	before := entry.Values()

	err = r.entries.Update(ctx, entry.ID, map[string]interface{}{
		"devanagari_needs_correction": true,
		"meaning_needs_correction":    true,
	})
	if err != nil {
		return "", fmt.Errorf("flag entry: %w", err)
	}

	if err := s.appendChange(ctx, r, entry.ID, suggestion, domain.ChangeDeletion, &before, nil, reviewerID); err != nil {
		return "", err
	}
	return entry.ID, nil
}

func (s *ReviewService) appendChange(ctx context.Context, r txRepos, entryID string, suggestion *domain.Suggestion, changeType string, oldValues, newValues *domain.EntryValues, reviewerID string) error {
	oldJSON, err := snapshot(oldValues)
	if err != nil {
		return err
	}
	newJSON, err := snapshot(newValues)
	if err != nil {
		return err
	}
	err = r.changeLog.Create(ctx, &domain.ChangeLogEntry{
		EntryID:      &entryID,
		SuggestionID: suggestion.ID,
		ChangeType:   changeType,
		OldValues:    oldJSON,
		NewValues:    newJSON,
		ChangedBy:    suggestion.ContributorID,
		ApprovedBy:   reviewerID,
	})
	if err != nil {
		return fmt.Errorf("append change log: %w", err)
	}
	return nil
}

func snapshot(v *domain.EntryValues) (datatypes.JSON, error) {
	if v == nil {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return datatypes.JSON(b), nil
}

// afterApply refreshes derived stores; failures are logged, never returned
func (s *ReviewService) afterApply(ctx context.Context, entryID string) {
	if s.cache != nil {
		if err := s.cache.InvalidateDictionary(ctx); err != nil {
			pkglogger.Warn("cache invalidation failed: %v", err)
		}
	}
	if s.indexer == nil {
		return
	}
	entry, err := s.entryRepo.FindByID(ctx, entryID)
	if err != nil {
		pkglogger.Warn("reindex entry %s: %v", entryID, err)
		return
	}
	if err := s.indexer.IndexEntries(ctx, []domain.DictionaryEntry{*entry}); err != nil {
		pkglogger.Warn("reindex entry %s: %v", entryID, err)
	}
}

// Claim moves a pending suggestion to in_review for the given expert
func (s *ReviewService) Claim(ctx context.Context, suggestionID, reviewerID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		suggestions := s.suggestionRepo.WithTx(tx)

		suggestion, err := suggestions.FindByIDForUpdate(ctx, suggestionID)
		if err != nil {
			return err
		}
		if suggestion.Status != domain.StatusPending {
			return common.ErrAlreadyReviewed
		}

		rows, err := suggestions.Transition(ctx, suggestionID, []string{domain.StatusPending}, repository.StatusUpdate{
			Status:     domain.StatusInReview,
			ReviewedBy: reviewerID,
		})
		if err != nil {
			return fmt.Errorf("claim suggestion: %w", err)
		}
		if rows == 0 {
			return common.ErrAlreadyReviewed
		}
		return nil
	})
}
