package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNilClientIsNoop(t *testing.T) {
	ctx := context.Background()
	c := NewService(nil)

	assert.False(t, c.IsAvailable())
	gen, err := c.Generation(ctx)
	assert.NoError(t, err)
	assert.Zero(t, gen)
	assert.NoError(t, c.SetStats(ctx, gen, map[string]int{"total_entries": 3}))
	assert.NoError(t, c.SetEntry(ctx, gen, "12", map[string]string{"id": "x"}))
	assert.NoError(t, c.Delete(ctx, "a", "b"))
	assert.NoError(t, c.InvalidateDictionary(ctx))

	var out map[string]int
	assert.ErrorIs(t, c.GetStats(ctx, gen, &out), ErrMiss)
	assert.ErrorIs(t, c.GetEntry(ctx, gen, "12", &out), ErrMiss)
	assert.Nil(t, out)
}

func TestEntryKey(t *testing.T) {
	assert.Equal(t, "dictionary:entry:0:42", entryKey(0, "42"))
	assert.Equal(t, "dictionary:entry:7:42", entryKey(7, "42"))
	assert.Equal(t, "dictionary:stats:7", statsKey(7))
}
