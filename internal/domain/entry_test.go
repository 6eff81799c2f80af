package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sp(s string) *string { return &s }

func TestEntryValues_Overlay(t *testing.T) {
	base := EntryValues{
		WordKonkaniDevanagari: sp("दिवो"),
		EnglishMeaning:        sp("lamp"),
	}

	got := base.Overlay(EntryValues{EnglishMeaning: sp("torch"), ContextUsageSentence: sp("")})

	assert.Equal(t, "दिवो", *got.WordKonkaniDevanagari)
	assert.Equal(t, "torch", *got.EnglishMeaning)
	assert.Nil(t, got.WordKonkaniEnglishAlphabet)
	// empty override is not an override
	assert.Nil(t, got.ContextUsageSentence)
}

func TestEntryValues_Updates(t *testing.T) {
	v := EntryValues{EnglishMeaning: sp("shop")}
	assert.Equal(t, map[string]interface{}{"english_meaning": "shop"}, v.Updates())
	assert.Empty(t, EntryValues{}.Updates())
}

func TestEntryValues_HasHeadword(t *testing.T) {
	assert.False(t, EntryValues{}.HasHeadword())
	assert.False(t, EntryValues{ContextUsageSentence: sp("only context")}.HasHeadword())
	assert.True(t, EntryValues{WordKonkaniEnglishAlphabet: sp("divo")}.HasHeadword())
}

func TestReviewOverrides_Values(t *testing.T) {
	var nilOverrides *ReviewOverrides
	assert.Equal(t, EntryValues{}, nilOverrides.Values())

	o := &ReviewOverrides{SuggestedEnglishMeaning: "torch"}
	v := o.Values()
	assert.Equal(t, "torch", *v.EnglishMeaning)
	assert.Nil(t, v.WordKonkaniDevanagari)
}

func TestSuggestion_Reviewable(t *testing.T) {
	for status, want := range map[string]bool{
		StatusPending:  true,
		StatusInReview: true,
		StatusApproved: false,
		StatusRejected: false,
	} {
		s := Suggestion{Status: status}
		assert.Equal(t, want, s.Reviewable(), status)
	}
}

func TestValidSuggestionType(t *testing.T) {
	assert.True(t, ValidSuggestionType("deletion"))
	assert.False(t, ValidSuggestionType("merge"))
	assert.True(t, ValidStatus("in_review"))
	assert.False(t, ValidStatus("maybe"))
}
