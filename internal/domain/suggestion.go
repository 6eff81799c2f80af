package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Suggestion types
const (
	SuggestionAddition   = "addition"
	SuggestionCorrection = "correction"
	SuggestionDeletion   = "deletion"
)

// Suggestion statuses
const (
	StatusPending  = "pending"
	StatusInReview = "in_review"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// ValidSuggestionType reports whether t is a known suggestion type
func ValidSuggestionType(t string) bool {
	return t == SuggestionAddition || t == SuggestionCorrection || t == SuggestionDeletion
}

// ValidStatus reports whether s is a known suggestion status
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusInReview, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Suggestion is a proposed edit to the dictionary - maps to dictionary_suggestions
type Suggestion struct {
	ID              string  `gorm:"column:id;primaryKey;size:36" json:"id"`
	OriginalEntryID *string `gorm:"column:original_entry_id;size:36;index:idx_suggestions_entry" json:"original_entry_id"`
	ContributorID   string  `gorm:"column:contributor_id;size:36;not null;index:idx_suggestions_contributor" json:"contributor_id"`
	SuggestionType  string  `gorm:"column:suggestion_type;size:20;not null" json:"suggestion_type"`

	OriginalWordKonkaniDevanagari      *string `gorm:"column:original_word_konkani_devanagari;type:text" json:"original_word_konkani_devanagari"`
	OriginalWordKonkaniEnglishAlphabet *string `gorm:"column:original_word_konkani_english_alphabet;type:text" json:"original_word_konkani_english_alphabet"`
	OriginalEnglishMeaning             *string `gorm:"column:original_english_meaning;type:text" json:"original_english_meaning"`
	OriginalContextUsageSentence       *string `gorm:"column:original_context_usage_sentence;type:text" json:"original_context_usage_sentence"`

	SuggestedWordKonkaniDevanagari      *string `gorm:"column:suggested_word_konkani_devanagari;type:text" json:"suggested_word_konkani_devanagari"`
	SuggestedWordKonkaniEnglishAlphabet *string `gorm:"column:suggested_word_konkani_english_alphabet;type:text" json:"suggested_word_konkani_english_alphabet"`
	SuggestedEnglishMeaning             *string `gorm:"column:suggested_english_meaning;type:text" json:"suggested_english_meaning"`
	SuggestedContextUsageSentence       *string `gorm:"column:suggested_context_usage_sentence;type:text" json:"suggested_context_usage_sentence"`

	ContributorNotes *string `gorm:"column:contributor_notes;type:text" json:"contributor_notes"`
	Status           string  `gorm:"column:status;size:20;not null;index:idx_suggestions_status" json:"status"`

	ReviewedBy    *string    `gorm:"column:reviewed_by;size:36" json:"reviewed_by"`
	ReviewedAt    *time.Time `gorm:"column:reviewed_at" json:"reviewed_at"`
	ReviewerNotes *string    `gorm:"column:reviewer_notes;type:text" json:"reviewer_notes"`

	CreatedAt time.Time `gorm:"column:created_at;index:idx_suggestions_created" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`

	// original_entry_id stays unconstrained: deletion approvals only flag the entry
	Contributor *Contributor `gorm:"foreignKey:ContributorID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

// TableName returns the table name
func (Suggestion) TableName() string {
	return "dictionary_suggestions"
}

// BeforeCreate assigns a UUID and the initial status
func (s *Suggestion) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.Status == "" {
		s.Status = StatusPending
	}
	return nil
}

// Reviewable reports whether a decision may still be applied
func (s *Suggestion) Reviewable() bool {
	return s.Status == StatusPending || s.Status == StatusInReview
}

// SuggestedValues returns the proposed field values
func (s *Suggestion) SuggestedValues() EntryValues {
	return EntryValues{
		WordKonkaniDevanagari:      s.SuggestedWordKonkaniDevanagari,
		WordKonkaniEnglishAlphabet: s.SuggestedWordKonkaniEnglishAlphabet,
		EnglishMeaning:             s.SuggestedEnglishMeaning,
		ContextUsageSentence:       s.SuggestedContextUsageSentence,
	}
}

// SetOriginal snapshots the referenced entry's current values
func (s *Suggestion) SetOriginal(v EntryValues) {
	s.OriginalWordKonkaniDevanagari = v.WordKonkaniDevanagari
	s.OriginalWordKonkaniEnglishAlphabet = v.WordKonkaniEnglishAlphabet
	s.OriginalEnglishMeaning = v.EnglishMeaning
	s.OriginalContextUsageSentence = v.ContextUsageSentence
}

// SuggestionVote is a helpful/not-helpful vote on a suggestion - maps to suggestion_votes
type SuggestionVote struct {
	ID            string    `gorm:"column:id;primaryKey;size:36" json:"id"`
	SuggestionID  string    `gorm:"column:suggestion_id;size:36;not null;uniqueIndex:idx_votes_suggestion_contributor" json:"suggestion_id"`
	ContributorID string    `gorm:"column:contributor_id;size:36;not null;uniqueIndex:idx_votes_suggestion_contributor" json:"contributor_id"`
	VoteType      string    `gorm:"column:vote_type;size:10;not null" json:"vote_type"` // helpful, not_helpful
	CreatedAt     time.Time `gorm:"column:created_at" json:"created_at"`
}

// TableName returns the table name
func (SuggestionVote) TableName() string {
	return "suggestion_votes"
}

// SubmitSuggestionRequest public suggestion submission body
type SubmitSuggestionRequest struct {
	OriginalEntryID          string `json:"originalEntryId"`
	SuggestionType           string `json:"suggestionType"`
	ContributorName          string `json:"contributorName"`
	ContributorEmail         string `json:"contributorEmail"`
	SuggestedDevanagari      string `json:"suggestedDevanagari"`
	SuggestedEnglishAlphabet string `json:"suggestedEnglishAlphabet"`
	SuggestedMeaning         string `json:"suggestedMeaning"`
	SuggestedContext         string `json:"suggestedContext"`
	ContributorNotes         string `json:"contributorNotes"`
}

// ReviewOverrides lets an expert edit a contribution before accepting it
type ReviewOverrides struct {
	SuggestedWordKonkaniDevanagari      string `json:"suggested_word_konkani_devanagari"`
	SuggestedWordKonkaniEnglishAlphabet string `json:"suggested_word_konkani_english_alphabet"`
	SuggestedEnglishMeaning             string `json:"suggested_english_meaning"`
	SuggestedContextUsageSentence       string `json:"suggested_context_usage_sentence"`
}

// Values converts overrides to EntryValues, empty strings becoming nil
func (o *ReviewOverrides) Values() EntryValues {
	if o == nil {
		return EntryValues{}
	}
	return EntryValues{
		WordKonkaniDevanagari:      StringPtr(o.SuggestedWordKonkaniDevanagari),
		WordKonkaniEnglishAlphabet: StringPtr(o.SuggestedWordKonkaniEnglishAlphabet),
		EnglishMeaning:             StringPtr(o.SuggestedEnglishMeaning),
		ContextUsageSentence:       StringPtr(o.SuggestedContextUsageSentence),
	}
}

// ReviewRequest expert decision body
type ReviewRequest struct {
	Decision string           `json:"decision"`
	Notes    string           `json:"notes"`
	Apply    *ReviewOverrides `json:"apply,omitempty"`
}

// ReviewResult is returned after a decision was committed
type ReviewResult struct {
	SuggestionID string  `json:"suggestion_id"`
	Decision     string  `json:"decision"`
	EntryID      *string `json:"entry_id,omitempty"`
}

// SuggestionListParams filters for the admin listing
type SuggestionListParams struct {
	Status string
	Type   string
	Sort   string // created_at | created_at_asc | contributor
	Limit  int
	Offset int
}

// SuggestionListItem is a suggestion joined with contributor and reviewer display info
type SuggestionListItem struct {
	Suggestion
	ContributorName  *string `gorm:"column:contributor_name" json:"contributor_name"`
	ContributorEmail *string `gorm:"column:contributor_email" json:"contributor_email"`
	ReviewerName     *string `gorm:"column:reviewer_name" json:"reviewer_name"`
}

// AdminStats moderation dashboard counters
type AdminStats struct {
	PendingCount       int64 `json:"pending"`
	ApprovedToday      int64 `json:"approvedToday"`
	RejectedToday      int64 `json:"rejectedToday"`
	ActiveContributors int64 `json:"activeContributors"`
}
