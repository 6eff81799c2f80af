// Package search keeps an Elasticsearch index of dictionary entries for fulltext lookups.
package search

import (
	"context"

	"github.com/amchigale/konkani-dictionary/internal/domain"
	"github.com/amchigale/konkani-dictionary/pkg/elasticsearch"
)

// Backend is the subset of the Elasticsearch client the index needs
type Backend interface {
	CreateIndex(ctx context.Context, index string, mapping map[string]interface{}) error
	IndexDocument(ctx context.Context, index, docID string, body interface{}) error
	BulkIndex(ctx context.Context, index string, docs map[string]interface{}) error
	Search(ctx context.Context, index string, query map[string]interface{}, size int) ([]elasticsearch.Hit, error)
}

// EntryIndex indexes and queries dictionary entries
type EntryIndex struct {
	backend Backend
	index   string
}

// NewEntryIndex creates an EntryIndex over the named index
func NewEntryIndex(backend Backend, index string) *EntryIndex {
	return &EntryIndex{backend: backend, index: index}
}

// Document is the indexed form of an entry
type Document struct {
	EntryNumber int     `json:"entry_number"`
	Devanagari  *string `json:"word_konkani_devanagari,omitempty"`
	Roman       *string `json:"word_konkani_english_alphabet,omitempty"`
	Meaning     *string `json:"english_meaning,omitempty"`
	Context     *string `json:"context_usage_sentence,omitempty"`
}

func toDocument(e *domain.DictionaryEntry) Document {
	return Document{
		EntryNumber: e.EntryNumber,
		Devanagari:  e.WordKonkaniDevanagari,
		Roman:       e.WordKonkaniEnglishAlphabet,
		Meaning:     e.EnglishMeaning,
		Context:     e.ContextUsageSentence,
	}
}

var mapping = map[string]interface{}{
	"mappings": map[string]interface{}{
		"properties": map[string]interface{}{
			"entry_number":                  map[string]interface{}{"type": "integer"},
			"word_konkani_devanagari":       map[string]interface{}{"type": "text"},
			"word_konkani_english_alphabet": map[string]interface{}{"type": "text"},
			"english_meaning":               map[string]interface{}{"type": "text", "analyzer": "english"},
			"context_usage_sentence":        map[string]interface{}{"type": "text", "analyzer": "english"},
		},
	},
}

// EnsureIndex creates the index with its mapping if missing
func (x *EntryIndex) EnsureIndex(ctx context.Context) error {
	return x.backend.CreateIndex(ctx, x.index, mapping)
}

// IndexEntries upserts entries by id
func (x *EntryIndex) IndexEntries(ctx context.Context, entries []domain.DictionaryEntry) error {
	switch len(entries) {
	case 0:
		return nil
	case 1:
		return x.backend.IndexDocument(ctx, x.index, entries[0].ID, toDocument(&entries[0]))
	}
	docs := make(map[string]interface{}, len(entries))
	for i := range entries {
		docs[entries[i].ID] = toDocument(&entries[i])
	}
	return x.backend.BulkIndex(ctx, x.index, docs)
}

// Search returns matching entry ids, best match first
func (x *EntryIndex) Search(ctx context.Context, q string, size int) ([]string, error) {
	body := map[string]interface{}{
		"query": map[string]interface{}{"multi_match": map[string]interface{}{
			"query": q,
			"fields": []string{
				"word_konkani_devanagari^3",
				"word_konkani_english_alphabet^3",
				"english_meaning^2",
				"context_usage_sentence",
			},
			"operator": "and",
		}},
	}
	hits, err := x.backend.Search(ctx, x.index, body, size)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(hits))
	for i, h := range hits {
		ids[i] = h.ID
	}
	return ids, nil
}

// Source walks entries ordered by entry_number
type Source interface {
	FindInBatches(ctx context.Context, batchSize int, fn func([]domain.DictionaryEntry) error) error
}

// Reindex pushes every entry from src into the index and returns the count
func (x *EntryIndex) Reindex(ctx context.Context, src Source, batchSize int) (int, error) {
	if err := x.EnsureIndex(ctx); err != nil {
		return 0, err
	}
	total := 0
	err := src.FindInBatches(ctx, batchSize, func(batch []domain.DictionaryEntry) error {
		if err := x.IndexEntries(ctx, batch); err != nil {
			return err
		}
		total += len(batch)
		return nil
	})
	return total, err
}
