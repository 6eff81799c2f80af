package search

import (
	"context"
	"errors"
	"testing"

	"github.com/amchigale/konkani-dictionary/internal/domain"
	"github.com/amchigale/konkani-dictionary/pkg/elasticsearch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockBackend struct {
	mock.Mock
}

func (m *mockBackend) CreateIndex(ctx context.Context, index string, mapping map[string]interface{}) error {
	return m.Called(ctx, index, mapping).Error(0)
}

func (m *mockBackend) IndexDocument(ctx context.Context, index, docID string, body interface{}) error {
	return m.Called(ctx, index, docID, body).Error(0)
}

func (m *mockBackend) BulkIndex(ctx context.Context, index string, docs map[string]interface{}) error {
	return m.Called(ctx, index, docs).Error(0)
}

func (m *mockBackend) Search(ctx context.Context, index string, query map[string]interface{}, size int) ([]elasticsearch.Hit, error) {
	args := m.Called(ctx, index, query, size)
	if hits := args.Get(0); hits != nil {
		return hits.([]elasticsearch.Hit), args.Error(1)
	}
	return nil, args.Error(1)
}

func meaning(s string) *string { return &s }

func TestEntryIndex_IndexEntries(t *testing.T) {
	ctx := context.Background()

	t.Run("single entry uses IndexDocument", func(t *testing.T) {
		b := new(mockBackend)
		x := NewEntryIndex(b, "dictionary_entries")
		e := domain.DictionaryEntry{ID: "e1", EntryNumber: 4, EnglishMeaning: meaning("lamp")}

		b.On("IndexDocument", ctx, "dictionary_entries", "e1", Document{EntryNumber: 4, Meaning: e.EnglishMeaning}).Return(nil)
		require.NoError(t, x.IndexEntries(ctx, []domain.DictionaryEntry{e}))
		b.AssertExpectations(t)
	})

	t.Run("many entries use BulkIndex", func(t *testing.T) {
		b := new(mockBackend)
		x := NewEntryIndex(b, "dictionary_entries")
		entries := []domain.DictionaryEntry{{ID: "e1", EntryNumber: 1}, {ID: "e2", EntryNumber: 2}}

		b.On("BulkIndex", ctx, "dictionary_entries", mock.MatchedBy(func(docs map[string]interface{}) bool {
			return len(docs) == 2 && docs["e2"].(Document).EntryNumber == 2
		})).Return(nil)
		require.NoError(t, x.IndexEntries(ctx, entries))
		b.AssertExpectations(t)
	})

	t.Run("empty is a no-op", func(t *testing.T) {
		b := new(mockBackend)
		require.NoError(t, NewEntryIndex(b, "i").IndexEntries(ctx, nil))
		b.AssertNotCalled(t, "BulkIndex", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestEntryIndex_Search(t *testing.T) {
	ctx := context.Background()
	b := new(mockBackend)
	x := NewEntryIndex(b, "dictionary_entries")

	b.On("Search", ctx, "dictionary_entries", mock.Anything, 10).
		Return([]elasticsearch.Hit{{ID: "e2", Score: 3.1}, {ID: "e1", Score: 1.2}}, nil).Once()
	ids, err := x.Search(ctx, "oil lamp", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"e2", "e1"}, ids)

	b.On("Search", ctx, "dictionary_entries", mock.Anything, 10).Return(nil, errors.New("es down")).Once()
	_, err = x.Search(ctx, "oil lamp", 10)
	assert.EqualError(t, err, "es down")
}

type sliceSource struct {
	batches [][]domain.DictionaryEntry
}

func (s sliceSource) FindInBatches(ctx context.Context, batchSize int, fn func([]domain.DictionaryEntry) error) error {
	for _, b := range s.batches {
		if err := fn(b); err != nil {
			return err
		}
	}
	return nil
}

func TestEntryIndex_Reindex(t *testing.T) {
	ctx := context.Background()
	b := new(mockBackend)
	x := NewEntryIndex(b, "dictionary_entries")

	src := sliceSource{batches: [][]domain.DictionaryEntry{
		{{ID: "e1", EntryNumber: 1}, {ID: "e2", EntryNumber: 2}},
		{{ID: "e3", EntryNumber: 3}},
	}}

	b.On("CreateIndex", ctx, "dictionary_entries", mapping).Return(nil)
	b.On("BulkIndex", ctx, "dictionary_entries", mock.Anything).Return(nil).Once()
	b.On("IndexDocument", ctx, "dictionary_entries", "e3", Document{EntryNumber: 3}).Return(nil).Once()

	n, err := x.Reindex(ctx, src, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	b.AssertExpectations(t)
}

func TestEntryIndex_ReindexStopsOnIndexError(t *testing.T) {
	ctx := context.Background()
	b := new(mockBackend)
	x := NewEntryIndex(b, "dictionary_entries")

	b.On("CreateIndex", ctx, "dictionary_entries", mapping).Return(nil)
	b.On("IndexDocument", ctx, "dictionary_entries", "e1", mock.Anything).Return(errors.New("es down"))

	n, err := x.Reindex(ctx, sliceSource{batches: [][]domain.DictionaryEntry{{{ID: "e1", EntryNumber: 1}}}}, 10)
	assert.EqualError(t, err, "es down")
	assert.Zero(t, n)
}
