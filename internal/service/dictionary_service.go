package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/amchigale/konkani-dictionary/internal/common"
	"github.com/amchigale/konkani-dictionary/internal/domain"
	"github.com/amchigale/konkani-dictionary/internal/repository"
	"github.com/amchigale/konkani-dictionary/pkg/cache"
	pkglogger "github.com/amchigale/konkani-dictionary/pkg/logger"
	"github.com/google/uuid"
)

// Search and paging bounds
const (
	DefaultPageLimit  = 20
	MaxPageLimit      = 100
	MaxSearchResults  = 200
	DefaultAgentLimit = 5
	MaxAgentLimit     = 50

	SearchTypeAll      = "all"
	SearchTypeFulltext = "fulltext"
	searchTypeHeadword = "headword"
)

// FulltextSearcher finds entry ids for a free-text query
type FulltextSearcher interface {
	Search(ctx context.Context, q string, size int) ([]string, error)
}

// DictionaryService read-only dictionary queries
type DictionaryService struct {
	entryRepo     repository.EntryRepository
	changeLogRepo repository.ChangeLogRepository
	cache         cache.Service
	fulltext      FulltextSearcher
}

// NewDictionaryService creates a new DictionaryService
func NewDictionaryService(entryRepo repository.EntryRepository, changeLogRepo repository.ChangeLogRepository) *DictionaryService {
	return &DictionaryService{
		entryRepo:     entryRepo,
		changeLogRepo: changeLogRepo,
	}
}

// SetCache sets the read-through cache for stats and entry lookups
func (s *DictionaryService) SetCache(c cache.Service) {
	s.cache = c
}

// SetFulltext enables the fulltext search type
func (s *DictionaryService) SetFulltext(f FulltextSearcher) {
	s.fulltext = f
}

// List returns one page of entries ordered by entry_number
func (s *DictionaryService) List(ctx context.Context, page, limit int) ([]domain.DictionaryEntry, common.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	entries, total, err := s.entryRepo.List(ctx, page, limit)
	if err != nil {
		return nil, common.Pagination{}, fmt.Errorf("list entries: %w", err)
	}
	if entries == nil {
		entries = []domain.DictionaryEntry{}
	}
	return entries, common.NewPagination(page, limit, total), nil
}

// Search runs a substring search over the columns named by searchType
func (s *DictionaryService) Search(ctx context.Context, q, searchType string) ([]domain.DictionaryEntry, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, common.NewValidationError("Search query is required")
	}
	if searchType == "" {
		searchType = SearchTypeAll
	}

	if searchType == SearchTypeFulltext {
		if s.fulltext != nil {
			entries, err := s.searchFulltext(ctx, q)
			if err == nil {
				return entries, nil
			}
			pkglogger.Warn("fulltext search failed, falling back to substring: %v", err)
		}
		searchType = SearchTypeAll
	}
	if searchType == searchTypeHeadword || !repository.IsSearchType(searchType) {
		return nil, common.NewValidationError(fmt.Sprintf("unknown search type %q", searchType))
	}

	entries, err := s.entryRepo.Search(ctx, q, searchType, MaxSearchResults)
	if err != nil {
		return nil, fmt.Errorf("search entries: %w", err)
	}
	return nonNil(entries), nil
}

func (s *DictionaryService) searchFulltext(ctx context.Context, q string) ([]domain.DictionaryEntry, error) {
	ids, err := s.fulltext.Search(ctx, q, MaxSearchResults)
	if err != nil {
		return nil, err
	}
	entries, err := s.entryRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return nonNil(entries), nil
}

// Get looks an entry up by UUID, or by entry_number when ref is numeric
func (s *DictionaryService) Get(ctx context.Context, ref string) (*domain.DictionaryEntry, error) {
	gen, cached := s.cacheGeneration(ctx)
	if cached {
		var hit domain.DictionaryEntry
		if err := s.cache.GetEntry(ctx, gen, ref, &hit); err == nil {
			return &hit, nil
		}
	}

	var entry *domain.DictionaryEntry
	var err error
	if _, parseErr := uuid.Parse(ref); parseErr == nil {
		entry, err = s.entryRepo.FindByID(ctx, ref)
	} else if n, convErr := strconv.Atoi(ref); convErr == nil {
		entry, err = s.entryRepo.FindByEntryNumber(ctx, n)
	} else {
		return nil, common.ErrEntryNotFound
	}
	if err != nil {
		return nil, err
	}

	if cached {
		if err := s.cache.SetEntry(ctx, gen, ref, entry); err != nil {
			pkglogger.Warn("cache entry %s: %v", ref, err)
		}
	}
	return entry, nil
}

// cacheGeneration reads the cache generation before a database load.
// The second result is false when there is no usable cache.
func (s *DictionaryService) cacheGeneration(ctx context.Context) (int64, bool) {
	if s.cache == nil {
		return 0, false
	}
	gen, err := s.cache.Generation(ctx)
	if err != nil {
		pkglogger.Warn("cache generation: %v", err)
		return 0, false
	}
	return gen, true
}

// History returns the change log of an entry, newest first
func (s *DictionaryService) History(ctx context.Context, ref string) ([]domain.ChangeLogEntry, error) {
	entry, err := s.Get(ctx, ref)
	if err != nil {
		return nil, err
	}
	return s.changeLogRepo.ListByEntry(ctx, entry.ID)
}

// Stats returns dictionary counters, cached when a cache is configured
func (s *DictionaryService) Stats(ctx context.Context) (*domain.DictionaryStats, error) {
	gen, cached := s.cacheGeneration(ctx)
	if cached {
		var hit domain.DictionaryStats
		err := s.cache.GetStats(ctx, gen, &hit)
		if err == nil {
			return &hit, nil
		}
		if !errors.Is(err, cache.ErrMiss) {
			pkglogger.Warn("stats cache read: %v", err)
		}
	}

	stats, err := s.entryRepo.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("dictionary stats: %w", err)
	}

	if cached {
		if err := s.cache.SetStats(ctx, gen, stats); err != nil {
			pkglogger.Warn("stats cache write: %v", err)
		}
	}
	return stats, nil
}

// AgentSearch returns compact hits over devanagari, romanized and meaning
func (s *DictionaryService) AgentSearch(ctx context.Context, q string, limit int) ([]domain.AgentHit, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, common.NewValidationError("q is required")
	}
	if limit <= 0 {
		limit = DefaultAgentLimit
	}
	if limit > MaxAgentLimit {
		limit = MaxAgentLimit
	}

	entries, err := s.entryRepo.Search(ctx, q, searchTypeHeadword, limit)
	if err != nil {
		return nil, fmt.Errorf("agent search: %w", err)
	}
	hits := make([]domain.AgentHit, len(entries))
	for i := range entries {
		hits[i] = entries[i].ToAgentHit()
	}
	return hits, nil
}

func nonNil(entries []domain.DictionaryEntry) []domain.DictionaryEntry {
	if entries == nil {
		return []domain.DictionaryEntry{}
	}
	return entries
}
