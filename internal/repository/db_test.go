package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntryNumberLock(t *testing.T) {
	tests := []struct {
		dialect  string
		pre      string
		lockRead bool
	}{
		{dialect: "postgres", pre: "SELECT pg_advisory_xact_lock(?)"},
		{dialect: "mysql", lockRead: true},
		{dialect: "sqlite"},
	}
	for _, tt := range tests {
		t.Run(tt.dialect, func(t *testing.T) {
			pre, lockRead := entryNumberLock(tt.dialect)
			assert.Equal(t, tt.pre, pre)
			assert.Equal(t, tt.lockRead, lockRead)
		})
	}
}
