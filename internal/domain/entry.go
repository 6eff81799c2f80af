package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DictionaryEntry is one headword of the canonical dictionary - maps to dictionary_entries
type DictionaryEntry struct {
	ID                         string    `gorm:"column:id;primaryKey;size:36" json:"id"`
	EntryNumber                int       `gorm:"column:entry_number;uniqueIndex;not null" json:"entry_number"`
	WordKonkaniDevanagari      *string   `gorm:"column:word_konkani_devanagari;type:text" json:"word_konkani_devanagari"`
	WordKonkaniEnglishAlphabet *string   `gorm:"column:word_konkani_english_alphabet;type:text" json:"word_konkani_english_alphabet"`
	EnglishMeaning             *string   `gorm:"column:english_meaning;type:text" json:"english_meaning"`
	ContextUsageSentence       *string   `gorm:"column:context_usage_sentence;type:text" json:"context_usage_sentence"`
	DevanagariNeedsCorrection  bool      `gorm:"column:devanagari_needs_correction;not null" json:"devanagari_needs_correction"`
	MeaningNeedsCorrection     bool      `gorm:"column:meaning_needs_correction;not null" json:"meaning_needs_correction"`
	CreatedAt                  time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt                  time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName returns the table name
func (DictionaryEntry) TableName() string {
	return "dictionary_entries"
}

// BeforeCreate assigns a UUID when none is set
func (e *DictionaryEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

// Values returns the four editable fields
func (e *DictionaryEntry) Values() EntryValues {
	return EntryValues{
		WordKonkaniDevanagari:      e.WordKonkaniDevanagari,
		WordKonkaniEnglishAlphabet: e.WordKonkaniEnglishAlphabet,
		EnglishMeaning:             e.EnglishMeaning,
		ContextUsageSentence:       e.ContextUsageSentence,
	}
}

// EntryValues is the editable part of an entry, also the change log snapshot shape
type EntryValues struct {
	WordKonkaniDevanagari      *string `json:"word_konkani_devanagari"`
	WordKonkaniEnglishAlphabet *string `json:"word_konkani_english_alphabet"`
	EnglishMeaning             *string `json:"english_meaning"`
	ContextUsageSentence       *string `json:"context_usage_sentence"`
}

// HasHeadword reports whether at least one of devanagari, romanized or meaning is set
func (v EntryValues) HasHeadword() bool {
	return nonEmpty(v.WordKonkaniDevanagari) || nonEmpty(v.WordKonkaniEnglishAlphabet) || nonEmpty(v.EnglishMeaning)
}

// Overlay returns v with every non-empty field of o replacing the corresponding field
func (v EntryValues) Overlay(o EntryValues) EntryValues {
	return EntryValues{
		WordKonkaniDevanagari:      firstNonEmpty(o.WordKonkaniDevanagari, v.WordKonkaniDevanagari),
		WordKonkaniEnglishAlphabet: firstNonEmpty(o.WordKonkaniEnglishAlphabet, v.WordKonkaniEnglishAlphabet),
		EnglishMeaning:             firstNonEmpty(o.EnglishMeaning, v.EnglishMeaning),
		ContextUsageSentence:       firstNonEmpty(o.ContextUsageSentence, v.ContextUsageSentence),
	}
}

// Updates returns the column map for non-nil fields only
func (v EntryValues) Updates() map[string]interface{} {
	m := make(map[string]interface{}, 4)
	if v.WordKonkaniDevanagari != nil {
		m["word_konkani_devanagari"] = *v.WordKonkaniDevanagari
	}
	if v.WordKonkaniEnglishAlphabet != nil {
		m["word_konkani_english_alphabet"] = *v.WordKonkaniEnglishAlphabet
	}
	if v.EnglishMeaning != nil {
		m["english_meaning"] = *v.EnglishMeaning
	}
	if v.ContextUsageSentence != nil {
		m["context_usage_sentence"] = *v.ContextUsageSentence
	}
	return m
}

// DictionaryStats is the public dictionary summary
type DictionaryStats struct {
	TotalEntries        int64 `json:"total_entries"`
	WithDevanagari      int64 `json:"with_devanagari"`
	WithEnglishAlphabet int64 `json:"with_english_alphabet"`
	NeedingCorrection   int64 `json:"needing_correction"`
}

// AgentHit is the compact search result returned to bots
type AgentHit struct {
	ID         int     `json:"id"`
	Devanagari *string `json:"devanagari"`
	Roman      *string `json:"roman"`
	Meaning    *string `json:"meaning"`
	Context    *string `json:"context"`
}

// ToAgentHit converts an entry to its compact form
func (e *DictionaryEntry) ToAgentHit() AgentHit {
	return AgentHit{
		ID:         e.EntryNumber,
		Devanagari: e.WordKonkaniDevanagari,
		Roman:      e.WordKonkaniEnglishAlphabet,
		Meaning:    e.EnglishMeaning,
		Context:    e.ContextUsageSentence,
	}
}

func nonEmpty(s *string) bool {
	return s != nil && *s != ""
}

func firstNonEmpty(a, b *string) *string {
	if nonEmpty(a) {
		return a
	}
	return b
}

// StringPtr returns nil for "" and &s otherwise
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
