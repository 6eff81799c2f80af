package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/amchigale/konkani-dictionary/internal/common"
	"github.com/amchigale/konkani-dictionary/internal/domain"
	"github.com/amchigale/konkani-dictionary/internal/repository"
	"github.com/amchigale/konkani-dictionary/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var str = testutil.Str

func TestContributorRepository_UpsertForSubmission(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewContributorRepository(db)
	ctx := context.Background()

	first, err := repo.UpsertForSubmission(ctx, "a@x.com", "Asha")
	require.NoError(t, err)
	assert.Equal(t, 1, first.ContributionsCount)
	assert.True(t, first.IsActive)
	assert.False(t, first.IsExpert)

	second, err := repo.UpsertForSubmission(ctx, "a@x.com", "Someone Else")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 2, second.ContributionsCount)
	assert.Equal(t, "Asha", second.Name)

	var count int64
	require.NoError(t, db.Model(&domain.Contributor{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestContributorRepository_IncrementApproved(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewContributorRepository(db)
	ctx := context.Background()
	c := testutil.CreateContributor(t, db, "b@x.com", "Bala")

	require.NoError(t, repo.IncrementApproved(ctx, c.ID))
	require.NoError(t, repo.IncrementApproved(ctx, c.ID))

	got, err := repo.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.ApprovedContributions)

	assert.ErrorIs(t, repo.IncrementApproved(ctx, "missing"), common.ErrNotFound)
}

func TestContributorRepository_EnsureExpert(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewContributorRepository(db)
	ctx := context.Background()

	created, err := repo.EnsureExpert(ctx, "expert@konkani.org", "Dr. Konkani Expert")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repo.EnsureExpert(ctx, "expert@konkani.org", "Renamed")
	require.NoError(t, err)
	assert.False(t, created)

	got, err := repo.FindByEmail(ctx, "expert@konkani.org")
	require.NoError(t, err)
	assert.True(t, got.IsActiveExpert())
	assert.Equal(t, "Dr. Konkani Expert", got.Name)
	assert.Nil(t, got.PasswordHash)

	require.NoError(t, repo.SetActive(ctx, "expert@konkani.org", false))
	got, err = repo.FindByEmail(ctx, "expert@konkani.org")
	require.NoError(t, err)
	assert.False(t, got.IsActiveExpert())

	assert.ErrorIs(t, repo.SetPasswordHash(ctx, "nobody@x.com", "h"), common.ErrNotFound)
}

func TestContributorRepository_SetActiveIsIdempotent(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewContributorRepository(db)
	ctx := context.Background()
	testutil.CreateExpert(t, db, "expert@konkani.org", "Dr. Konkani Expert", "")

	require.NoError(t, repo.SetActive(ctx, "expert@konkani.org", false))
	require.NoError(t, repo.SetActive(ctx, "expert@konkani.org", false))
	require.NoError(t, repo.SetPasswordHash(ctx, "expert@konkani.org", "h"))
	require.NoError(t, repo.SetPasswordHash(ctx, "expert@konkani.org", "h"))

	got, err := repo.FindByEmail(ctx, "expert@konkani.org")
	require.NoError(t, err)
	assert.False(t, got.IsActive)
	assert.Equal(t, "h", *got.PasswordHash)

	assert.ErrorIs(t, repo.SetActive(ctx, "nobody@x.com", true), common.ErrNotFound)
}

func TestEntryRepository_SearchAndList(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewEntryRepository(db)
	ctx := context.Background()

	testutil.CreateEntry(t, db, 2, str("दुकान"), str("Dukan"), str("shop"), str("dukanak vetam"))
	testutil.CreateEntry(t, db, 1, str("दिवो"), str("divo"), str("lamp"), nil)
	testutil.CreateEntry(t, db, 3, nil, str("udok"), str("water"), str("the shop sells water"))

	t.Run("case-insensitive romanized", func(t *testing.T) {
		got, err := repo.Search(ctx, "DUK", "english_word", 0)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, 2, got[0].EntryNumber)
	})

	t.Run("all columns ordered by entry number", func(t *testing.T) {
		got, err := repo.Search(ctx, "shop", "all", 0)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, 2, got[0].EntryNumber)
		assert.Equal(t, 3, got[1].EntryNumber)
	})

	t.Run("headword skips context", func(t *testing.T) {
		got, err := repo.Search(ctx, "shop", "headword", 0)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, 2, got[0].EntryNumber)
	})

	t.Run("limit", func(t *testing.T) {
		got, err := repo.Search(ctx, "o", "all", 2)
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("list paginates by entry number", func(t *testing.T) {
		got, total, err := repo.List(ctx, 2, 2)
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		require.Len(t, got, 1)
		assert.Equal(t, 3, got[0].EntryNumber)
	})

	t.Run("next entry number", func(t *testing.T) {
		n, err := repo.NextEntryNumber(ctx)
		require.NoError(t, err)
		assert.Equal(t, 4, n)
	})
}

func TestEntryRepository_Stats(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewEntryRepository(db)
	ctx := context.Background()

	empty, err := repo.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), empty.TotalEntries)

	testutil.CreateEntry(t, db, 1, str("दिवो"), str("divo"), str("lamp"), nil)
	e := testutil.CreateEntry(t, db, 2, nil, str("udok"), str("water"), nil)
	testutil.CreateEntry(t, db, 3, nil, nil, str("tree"), nil)
	require.NoError(t, db.Model(e).Update("meaning_needs_correction", true).Error)

	stats, err := repo.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.DictionaryStats{
		TotalEntries:        3,
		WithDevanagari:      1,
		WithEnglishAlphabet: 2,
		NeedingCorrection:   1,
	}, *stats)
}

func TestEntryRepository_UpdateAndFind(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewEntryRepository(db)
	ctx := context.Background()
	e := testutil.CreateEntry(t, db, 7, str("दिवो"), nil, str("lamp"), nil)

	require.NoError(t, repo.Update(ctx, e.ID, map[string]interface{}{"english_meaning": "torch"}))
	got, err := repo.FindByEntryNumber(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "torch", *got.EnglishMeaning)
	assert.Equal(t, "दिवो", *got.WordKonkaniDevanagari)

	assert.ErrorIs(t, repo.Update(ctx, "missing", map[string]interface{}{"english_meaning": "x"}), common.ErrEntryNotFound)
	_, err = repo.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, common.ErrEntryNotFound)
}

func TestEntryRepository_FindInBatches(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewEntryRepository(db)
	for i := 1; i <= 5; i++ {
		testutil.CreateEntry(t, db, i, nil, nil, str("m"), nil)
	}

	var seen []int
	err := repo.FindInBatches(context.Background(), 2, func(batch []domain.DictionaryEntry) error {
		for _, e := range batch {
			seen = append(seen, e.EntryNumber)
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, seen)
}

func TestSuggestionRepository_ListAndTransition(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewSuggestionRepository(db)
	ctx := context.Background()

	zed := testutil.CreateContributor(t, db, "z@x.com", "Zed")
	amy := testutil.CreateContributor(t, db, "a@x.com", "Amy")
	expert := testutil.CreateExpert(t, db, "expert@konkani.org", "Dr. Konkani Expert", "")

	base := time.Now().UTC().Add(-time.Hour)
	older := testutil.CreateSuggestion(t, db, &domain.Suggestion{
		ContributorID: zed.ID, SuggestionType: domain.SuggestionAddition,
		SuggestedEnglishMeaning: str("shop"), CreatedAt: base,
	})
	newer := testutil.CreateSuggestion(t, db, &domain.Suggestion{
		ContributorID: amy.ID, SuggestionType: domain.SuggestionCorrection,
		SuggestedEnglishMeaning: str("lamp"), CreatedAt: base.Add(time.Minute),
	})

	list, err := repo.List(ctx, domain.SuggestionListParams{Status: domain.StatusPending, Sort: "created_at", Limit: 50})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID)
	assert.Equal(t, "Amy", *list[0].ContributorName)
	assert.Equal(t, "a@x.com", *list[0].ContributorEmail)
	assert.Nil(t, list[0].ReviewerName)

	list, err = repo.List(ctx, domain.SuggestionListParams{Status: domain.StatusPending, Sort: "created_at_asc", Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, newer.ID, list[0].ID)

	list, err = repo.List(ctx, domain.SuggestionListParams{Status: domain.StatusPending, Sort: "contributor", Limit: 50})
	require.NoError(t, err)
	assert.Equal(t, "Amy", *list[0].ContributorName)

	list, err = repo.List(ctx, domain.SuggestionListParams{Status: domain.StatusPending, Type: domain.SuggestionAddition, Limit: 50})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, older.ID, list[0].ID)

	now := time.Now().UTC()
	rows, err := repo.Transition(ctx, older.ID, []string{domain.StatusPending}, repository.StatusUpdate{
		Status: domain.StatusRejected, ReviewedBy: expert.ID, ReviewedAt: &now, ReviewerNotes: str("dup"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	rows, err = repo.Transition(ctx, older.ID, []string{domain.StatusPending}, repository.StatusUpdate{
		Status: domain.StatusApproved, ReviewedBy: expert.ID, ReviewedAt: &now,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows)

	detail, err := repo.FindDetail(ctx, older.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRejected, detail.Status)
	assert.Equal(t, "Dr. Konkani Expert", *detail.ReviewerName)
	assert.Equal(t, "dup", *detail.ReviewerNotes)

	_, err = repo.FindDetail(ctx, "missing")
	assert.ErrorIs(t, err, common.ErrSuggestionNotFound)

	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	n, err := repo.CountReviewedBetween(ctx, domain.StatusRejected, startOfDay, startOfDay.Add(24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = repo.CountByStatus(ctx, domain.StatusPending)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = repo.CountActiveContributorsSince(ctx, now.Add(-30*24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestChangeLogRepository_Immutable(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewChangeLogRepository(db)
	ctx := context.Background()
	entryID := "e-1"

	row := &domain.ChangeLogEntry{EntryID: &entryID, SuggestionID: "s-1", ChangeType: domain.ChangeAddition}
	require.NoError(t, repo.Create(ctx, row))

	assert.ErrorIs(t, db.Model(row).Update("change_type", "correction").Error, domain.ErrChangeLogImmutable)
	assert.ErrorIs(t, db.Delete(row).Error, domain.ErrChangeLogImmutable)

	rows, err := repo.ListByEntry(ctx, entryID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, domain.ChangeAddition, rows[0].ChangeType)
}
