package elasticsearch

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeHits(t *testing.T) {
	body := `{"hits":{"total":{"value":2},"hits":[
		{"_id":"a","_score":3.5,"_source":{}},
		{"_id":"b","_score":1.25}
	]}}`

	hits, err := decodeHits(strings.NewReader(body))
	require.NoError(t, err)
	assert.Equal(t, []Hit{{ID: "a", Score: 3.5}, {ID: "b", Score: 1.25}}, hits)
}

func TestDecodeHits_Empty(t *testing.T) {
	hits, err := decodeHits(strings.NewReader(`{"hits":{"hits":[]}}`))
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestDecodeHits_Malformed(t *testing.T) {
	_, err := decodeHits(strings.NewReader(`{`))
	assert.Error(t, err)
}
