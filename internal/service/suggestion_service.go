package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/amchigale/konkani-dictionary/internal/common"
	"github.com/amchigale/konkani-dictionary/internal/domain"
	"github.com/amchigale/konkani-dictionary/internal/repository"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// Listing bounds for the admin suggestion queue
const (
	DefaultSuggestionLimit = 50
	MaxSuggestionLimit     = 200
)

// SuggestionService handles public submissions and the admin suggestion queue
type SuggestionService struct {
	db              *gorm.DB
	suggestionRepo  repository.SuggestionRepository
	entryRepo       repository.EntryRepository
	contributorRepo repository.ContributorRepository
	changeLogRepo   repository.ChangeLogRepository
	validate        *validator.Validate
	now             func() time.Time
}

// NewSuggestionService creates a new SuggestionService
func NewSuggestionService(
	db *gorm.DB,
	suggestionRepo repository.SuggestionRepository,
	entryRepo repository.EntryRepository,
	contributorRepo repository.ContributorRepository,
	changeLogRepo repository.ChangeLogRepository,
) *SuggestionService {
	return &SuggestionService{
		db:              db,
		suggestionRepo:  suggestionRepo,
		entryRepo:       entryRepo,
		contributorRepo: contributorRepo,
		changeLogRepo:   changeLogRepo,
		validate:        validator.New(),
		now:             time.Now,
	}
}

// Submit records a new pending suggestion and counts it for the contributor.
// The contributor upsert and the suggestion insert commit together.
func (s *SuggestionService) Submit(ctx context.Context, req *domain.SubmitSuggestionRequest) (string, error) {
	email := strings.TrimSpace(req.ContributorEmail)
	name := strings.TrimSpace(req.ContributorName)
	originalEntryID := strings.TrimSpace(req.OriginalEntryID)

	switch {
	case email == "" && name == "":
		return "", common.NewValidationError("Contributor name and email are required")
	case email == "":
		return "", common.NewValidationError("Contributor email is required")
	}
	if err := s.validate.Var(email, "email,max=255"); err != nil {
		return "", common.NewValidationError("Contributor email is invalid")
	}
	if err := s.validate.Var(name, "max=100"); err != nil {
		return "", common.NewValidationError("Contributor name must be at most 100 characters")
	}
	if name == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}

	if strings.TrimSpace(req.SuggestedDevanagari) == "" && strings.TrimSpace(req.SuggestedMeaning) == "" {
		return "", common.NewValidationError("At least Devanagari word or English meaning is required")
	}

	suggestionType := req.SuggestionType
	if suggestionType == "" {
		suggestionType = domain.SuggestionAddition
		if originalEntryID != "" {
			suggestionType = domain.SuggestionCorrection
		}
	}
	if !domain.ValidSuggestionType(suggestionType) {
		return "", common.NewValidationError(`Suggestion type must be "addition", "correction" or "deletion"`)
	}
	if suggestionType != domain.SuggestionAddition && originalEntryID == "" {
		return "", common.NewValidationError(fmt.Sprintf("A %s must reference an existing entry", suggestionType))
	}

	suggestion := &domain.Suggestion{
		OriginalEntryID:                     domain.StringPtr(originalEntryID),
		SuggestionType:                      suggestionType,
		SuggestedWordKonkaniDevanagari:      domain.StringPtr(strings.TrimSpace(req.SuggestedDevanagari)),
		SuggestedWordKonkaniEnglishAlphabet: domain.StringPtr(strings.TrimSpace(req.SuggestedEnglishAlphabet)),
		SuggestedEnglishMeaning:             domain.StringPtr(strings.TrimSpace(req.SuggestedMeaning)),
		SuggestedContextUsageSentence:       domain.StringPtr(strings.TrimSpace(req.SuggestedContext)),
		ContributorNotes:                    domain.StringPtr(strings.TrimSpace(req.ContributorNotes)),
		Status:                              domain.StatusPending,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		contributor, err := s.contributorRepo.WithTx(tx).UpsertForSubmission(ctx, email, name)
		if err != nil {
			return fmt.Errorf("upsert contributor: %w", err)
		}
		suggestion.ContributorID = contributor.ID

		// snapshot is best-effort: a missing entry leaves the originals empty
		if originalEntryID != "" && suggestionType != domain.SuggestionAddition {
			entry, err := s.entryRepo.WithTx(tx).FindByID(ctx, originalEntryID)
			switch {
			case err == nil:
				suggestion.SetOriginal(entry.Values())
			case !common.IsNotFound(err):
				return fmt.Errorf("load original entry: %w", err)
			}
		}

		if err := s.suggestionRepo.WithTx(tx).Create(ctx, suggestion); err != nil {
			return fmt.Errorf("create suggestion: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	suggestionsSubmitted.WithLabelValues(suggestionType).Inc()
	return suggestion.ID, nil
}

// List returns the moderation queue filtered, sorted and paginated
func (s *SuggestionService) List(ctx context.Context, params domain.SuggestionListParams) ([]domain.SuggestionListItem, error) {
	if params.Status == "" {
		params.Status = domain.StatusPending
	}
	if !domain.ValidStatus(params.Status) {
		return nil, common.NewValidationError(fmt.Sprintf("unknown status %q", params.Status))
	}
	if params.Type != "" && !domain.ValidSuggestionType(params.Type) {
		return nil, common.NewValidationError(fmt.Sprintf("unknown suggestion type %q", params.Type))
	}
	if params.Limit <= 0 {
		params.Limit = DefaultSuggestionLimit
	}
	if params.Limit > MaxSuggestionLimit {
		params.Limit = MaxSuggestionLimit
	}
	if params.Offset < 0 {
		params.Offset = 0
	}
	return s.suggestionRepo.List(ctx, params)
}

// SuggestionDetail is a suggestion with its applied changes
type SuggestionDetail struct {
	*domain.SuggestionListItem
	Changes []domain.ChangeLogEntry `json:"changes"`
}

// Get returns one suggestion with contributor/reviewer info and its change log
func (s *SuggestionService) Get(ctx context.Context, id string) (*SuggestionDetail, error) {
	item, err := s.suggestionRepo.FindDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	changes, err := s.changeLogRepo.ListBySuggestion(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load change log: %w", err)
	}
	return &SuggestionDetail{SuggestionListItem: item, Changes: changes}, nil
}

// Stats returns the moderation dashboard counters. "Today" is the UTC calendar day.
func (s *SuggestionService) Stats(ctx context.Context) (*domain.AdminStats, error) {
	now := s.now().UTC()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	endOfDay := startOfDay.Add(24 * time.Hour)

	var stats domain.AdminStats
	var err error
	if stats.PendingCount, err = s.suggestionRepo.CountByStatus(ctx, domain.StatusPending); err != nil {
		return nil, fmt.Errorf("count pending: %w", err)
	}
	if stats.ApprovedToday, err = s.suggestionRepo.CountReviewedBetween(ctx, domain.StatusApproved, startOfDay, endOfDay); err != nil {
		return nil, fmt.Errorf("count approved today: %w", err)
	}
	if stats.RejectedToday, err = s.suggestionRepo.CountReviewedBetween(ctx, domain.StatusRejected, startOfDay, endOfDay); err != nil {
		return nil, fmt.Errorf("count rejected today: %w", err)
	}
	if stats.ActiveContributors, err = s.suggestionRepo.CountActiveContributorsSince(ctx, now.Add(-30*24*time.Hour)); err != nil {
		return nil, fmt.Errorf("count active contributors: %w", err)
	}
	return &stats, nil
}
