// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package relations

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/wordbank/internal/lexicon"
	"github.com/pdiddy/wordbank/pkg/types"
)

type fakeSynonyms struct {
	syns, ants []string
	err        error
	available  bool
	calls      int
	mu         sync.Mutex
}

func (f *fakeSynonyms) Relations(context.Context, string) ([]string, []string, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	return f.syns, f.ants, f.err
}

func (f *fakeSynonyms) Available() bool { return f.available }

type fakeList struct {
	words []string
	err   error
}

func (f fakeList) Associations(context.Context, string, int) ([]string, error) {
	return f.words, f.err
}

func (f fakeList) Rhymes(context.Context, string, int) ([]string, error) {
	return f.words, f.err
}

type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemCache() *memCache { return &memCache{data: make(map[string][]byte)} }

func (c *memCache) GetJSON(_ context.Context, key string, v any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, v)
}

func (c *memCache) SetJSON(_ context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = b
	return nil
}

func TestValid(t *testing.T) {
	tests := []struct {
		word string
		want bool
	}{
		{"joyful", true},
		{"Happy", false},
		{"ox", false},
		{"ice cream", false},
		{"well-being", false},
		{"the", false},
		{"pitcher", false},
		{"varlet", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			assert.Equal(t, tt.want, Valid(tt.word, "happy"))
		})
	}
}

func TestClean(t *testing.T) {
	got := Clean("happy", 3, []string{"Glad", "glad", "happy"}, []string{"the", "cheerful", "merry", "jolly"})
	assert.Equal(t, []string{"glad", "cheerful", "merry"}, got)
	assert.Equal(t, []string{}, Clean("happy", 5))
}

func TestBuildPrefersThesaurus(t *testing.T) {
	mw := &fakeSynonyms{available: true, syns: []string{"glad", "content"}, ants: []string{"gloomy"}}
	fd := &fakeSynonyms{syns: []string{"merry"}}
	b := NewBuilder(
		WithThesaurus(mw),
		WithDictionary(fd),
		WithAssociations(SourceDatamuse, fakeList{words: []string{"smile", "birthday", "a"}}),
		WithRhymes(fakeList{words: []string{"snappy", "nappy", "happy", "zappy"}}),
	)

	rel, err := b.Build(context.Background(), "Happy")
	require.NoError(t, err)
	assert.Equal(t, []string{"joyful", "cheerful", "glad", "pleased", "content"}, rel.Synonyms)
	assert.Equal(t, []string{"sad", "unhappy", "miserable", "gloomy"}, rel.Antonyms)
	assert.Equal(t, []string{"smile", "birthday"}, rel.Associated)
	assert.Equal(t, []string{"snappy", "nappy", "zappy"}, rel.Rhymes)
	assert.Equal(t, SourceMerriamWebster, rel.Sources["synonyms"])
	assert.Equal(t, SourceDatamuse, rel.Sources["associated"])
	assert.Zero(t, fd.calls)
	assert.NoError(t, rel.Err())
}

func TestBuildFallsBackToDictionary(t *testing.T) {
	tests := []struct {
		name string
		mw   *fakeSynonyms
	}{
		{"unavailable", &fakeSynonyms{available: false, syns: []string{"feline"}}},
		{"empty", &fakeSynonyms{available: true}},
		{"not found", &fakeSynonyms{available: true, err: lexicon.ErrNotFound}},
		{"failed", &fakeSynonyms{available: true, err: errors.New("boom")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fd := &fakeSynonyms{syns: []string{"kitty"}}
			b := NewBuilder(WithThesaurus(tt.mw), WithDictionary(fd))
			rel, err := b.Build(context.Background(), "cat")
			require.NoError(t, err)
			assert.Equal(t, []string{"kitty"}, rel.Synonyms)
			assert.Equal(t, SourceFreeDictionary, rel.Sources["synonyms"])
			assert.Equal(t, 1, fd.calls)
			assert.NoError(t, rel.Err())
		})
	}
}

func TestBuildSpentThesaurusBudgetIsNotAnError(t *testing.T) {
	mw := &fakeSynonyms{available: true, err: lexicon.ErrRateLimited}
	fd := &fakeSynonyms{err: lexicon.ErrNotFound}
	rel, err := NewBuilder(WithThesaurus(mw), WithDictionary(fd)).Build(context.Background(), "cat")
	require.NoError(t, err)
	assert.Empty(t, rel.Synonyms)
	assert.NoError(t, rel.Err())
}

func TestBuildAssociationFallback(t *testing.T) {
	b := NewBuilder(
		WithAssociations(SourceUSF, fakeList{}),
		WithAssociations(SourceDatamuse, fakeList{words: []string{"dog", "mouse"}}),
	)
	rel, err := b.Build(context.Background(), "cat")
	require.NoError(t, err)
	assert.Equal(t, []string{"dog", "mouse"}, rel.Associated)
	assert.Equal(t, SourceDatamuse, rel.Sources["associated"])
}

func TestBuildRecordsErrors(t *testing.T) {
	cache := newMemCache()
	b := NewBuilder(
		WithDictionary(&fakeSynonyms{err: lexicon.ErrRateLimited}),
		WithAssociations(SourceDatamuse, fakeList{err: errors.New("down")}),
		WithRhymes(fakeList{words: []string{"hat", "bat"}}),
		WithCache(cache),
	)
	rel, err := b.Build(context.Background(), "cat")
	require.NoError(t, err)
	assert.Equal(t, []string{"hat", "bat"}, rel.Rhymes)
	assert.Empty(t, rel.Synonyms)
	assert.Len(t, rel.Errors, 2)
	assert.ErrorIs(t, rel.Err(), lexicon.ErrRateLimited)
	assert.Empty(t, cache.data, "failed builds are not cached")
}

func TestBuildCaches(t *testing.T) {
	cache := newMemCache()
	fd := &fakeSynonyms{syns: []string{"kitty"}}
	b := NewBuilder(WithDictionary(fd), WithCache(cache))

	first, err := b.Build(context.Background(), "cat")
	require.NoError(t, err)
	second, err := b.Build(context.Background(), "cat")
	require.NoError(t, err)

	assert.Equal(t, first.Synonyms, second.Synonyms)
	assert.Equal(t, 1, fd.calls)
	assert.Contains(t, cache.data, "relationships_v5_cat")
}

func TestBuildLimits(t *testing.T) {
	fd := &fakeSynonyms{syns: []string{"aaa", "bbb", "ccc", "ddd"}}
	b := NewBuilder(WithDictionary(fd), WithLimits(types.RelationsConfig{MaxSynonyms: 2}))
	rel, err := b.Build(context.Background(), "zzz")
	require.NoError(t, err)
	assert.Equal(t, []string{"aaa", "bbb"}, rel.Synonyms)
}

func TestBuildEmptyWord(t *testing.T) {
	_, err := NewBuilder().Build(context.Background(), "  ")
	assert.Error(t, err)
}

func TestBuildCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewBuilder().Build(ctx, "cat")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAvoid(t *testing.T) {
	rel := Relations{
		Synonyms:   []string{"kitty"},
		Antonyms:   []string{},
		Associated: []string{"Dog"},
		Rhymes:     []string{"hat"},
	}
	assert.Equal(t, []string{"kitty", "Dog"}, rel.Avoid(), "rhymes travel separately")

	rt := (Relations{}).Types()
	assert.NotNil(t, rt.Synonyms)
	assert.NotNil(t, rt.Rhymes)
}
