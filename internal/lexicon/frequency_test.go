// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lexicon

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/wordbank/pkg/types"
)

const sampleFrequencyList = "the\nof\ncat\nhome\nmap\nx\nMap\nit's\npen\nhouse\nto\nsun\n"

func TestFrequencyListParse(t *testing.T) {
	data := parseFrequencyList(sampleFrequencyList)
	assert.Equal(t, []string{"cat", "home", "map", "pen", "house", "sun"}, data.Words)
	assert.Equal(t, 3, data.Ranks["cat"], "rank is the line number")
	assert.Equal(t, 5, data.Ranks["map"], "first occurrence wins")
}

func TestFrequencyListFetchAndCache(t *testing.T) {
	var hits int32
	ts := jsonServer(t, http.StatusOK, sampleFrequencyList, &hits)
	override(t, &frequencyListURL, ts.URL)

	c := newMemCache()
	f := NewFrequencyList(testHTTP(ts), c)
	require.NoError(t, f.Fetch(context.Background()))
	require.NoError(t, f.Fetch(context.Background()))
	assert.Equal(t, int32(1), hits)
	assert.Equal(t, 6, f.Len())
	assert.Contains(t, c.data, frequencyCacheKey)

	// A second list reads from the cache.
	g := NewFrequencyList(testHTTP(ts), c)
	assert.Equal(t, 4, g.Rank(context.Background(), "HOME"))
	assert.Equal(t, int32(1), hits)
}

func TestFrequencyListFetchFailure(t *testing.T) {
	ts := jsonServer(t, http.StatusInternalServerError, "", nil)
	override(t, &frequencyListURL, ts.URL)

	f := NewFrequencyList(testHTTP(ts), nil)
	_, err := f.WordsByLength(context.Background(), 3, 0, nil, 10)
	assert.Error(t, err)
	assert.Equal(t, types.UnrankedFrequency, f.Rank(context.Background(), "cat"))
}

func TestFrequencyListWordsByLength(t *testing.T) {
	f := &FrequencyList{}
	f.Load(sampleFrequencyList)
	ctx := context.Background()

	tests := []struct {
		name      string
		length    int
		tolerance int
		exclude   map[string]struct{}
		limit     int
		want      []string
	}{
		{"exact", 3, 0, nil, 10, []string{"cat", "map", "pen", "sun"}},
		{"exclude", 3, 0, map[string]struct{}{"cat": {}}, 10, []string{"map", "pen", "sun"}},
		{"limit", 3, 0, nil, 2, []string{"cat", "map"}},
		{"tolerance", 4, 1, nil, 10, []string{"cat", "home", "map", "pen", "house", "sun"}},
		{"none", 9, 0, nil, 10, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.WordsByLength(ctx, tt.length, tt.tolerance, tt.exclude, tt.limit)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFrequencyListTopWordsAndRank(t *testing.T) {
	f := &FrequencyList{}
	f.Load(sampleFrequencyList)
	ctx := context.Background()

	got, err := f.TopWords(ctx, 3, map[string]struct{}{"home": {}})
	require.NoError(t, err)
	assert.Equal(t, []string{"cat", "map", "pen"}, got)

	assert.Equal(t, 3, f.Rank(ctx, "cat"))
	assert.Equal(t, types.UnrankedFrequency, f.Rank(ctx, "zebra"))
	assert.Equal(t, types.UnrankedFrequency, f.Rank(ctx, "the"), "stopwords are not ranked")
}
