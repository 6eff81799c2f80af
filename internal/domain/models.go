package domain

import "errors"

// ErrChangeLogImmutable is returned by gorm hooks when a change log row is updated or deleted
var ErrChangeLogImmutable = errors.New("change log entries are immutable")

// AllModels lists every persisted model in dependency order
func AllModels() []interface{} {
	return []interface{}{
		&DictionaryEntry{},
		&Contributor{},
		&Suggestion{},
		&SuggestionVote{},
		&ChangeLogEntry{},
	}
}
