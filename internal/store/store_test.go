// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/wordbank/pkg/types"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(types.StoreConfig{Dir: t.TempDir(), CacheExpiry: time.Hour})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestNewStoreCreatesDatabase(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	s, err := NewStore(types.StoreConfig{Dir: dir})
	require.NoError(t, err)
	defer s.Close()

	_, err = os.Stat(filepath.Join(dir, dbFile))
	assert.NoError(t, err)
	assert.Equal(t, defaultExpiry, s.expiry)
}

func TestCacheRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, ok, err := s.Get(ctx, "pos_cat")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.SetJSON(ctx, "pos_cat", []string{"noun"}))
	var got []string
	ok, err = s.GetJSON(ctx, "pos_cat", &got)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"noun"}, got)

	require.NoError(t, s.SetJSON(ctx, "pos_cat", []string{"noun", "verb"}))
	ok, err = s.GetJSON(ctx, "pos_cat", &got)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"noun", "verb"}, got)
}

func TestCacheExpiry(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return start }

	require.NoError(t, s.Set(ctx, "old", []byte("1")))
	s.now = func() time.Time { return start.Add(30 * time.Minute) }
	require.NoError(t, s.Set(ctx, "fresh", []byte("2")))

	s.now = func() time.Time { return start.Add(61 * time.Minute) }
	_, ok, err := s.Get(ctx, "old")
	require.NoError(t, err)
	assert.False(t, ok, "entry past expiry reads as missing")

	v, ok, err := s.Get(ctx, "fresh")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "2", string(v))

	n, err := s.Purge(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestCacheDeleteAndClear(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	for _, k := range []string{"a", "b", "c"} {
		require.NoError(t, s.Set(ctx, k, []byte(k)))
	}

	require.NoError(t, s.Delete(ctx, "a"))
	require.NoError(t, s.Delete(ctx, "missing"))
	_, ok, err := s.Get(ctx, "a")
	require.NoError(t, err)
	assert.False(t, ok)

	n, err := s.Clear(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestMasterEntries(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	cat := types.WordEntry{ID: "cat-1", Word: "Cat", PartOfSpeech: types.POSNoun, Definition: "a small pet", NeedsReview: true}
	dog := types.WordEntry{ID: "dog-1", Word: "dog", PartOfSpeech: types.POSNoun}

	require.NoError(t, s.SaveEntry(ctx, cat))
	require.NoError(t, s.SaveEntry(ctx, dog))

	approved, err := s.IsApproved(ctx, "cat")
	require.NoError(t, err)
	assert.False(t, approved)

	_, ok, err := s.ApprovedEntry(ctx, "cat")
	require.NoError(t, err)
	assert.False(t, ok)

	review, err := s.List(ctx, ListFilter{NeedsReview: true})
	require.NoError(t, err)
	require.Len(t, review, 1)
	assert.Equal(t, "Cat", review[0].Word)

	require.NoError(t, s.Approve(ctx, cat))
	approved, err = s.IsApproved(ctx, "CAT")
	require.NoError(t, err)
	assert.True(t, approved)

	got, ok, err := s.ApprovedEntry(ctx, "cat")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "a small pet", got.Definition)
	assert.False(t, got.NeedsReview, "approval clears the review flag")

	// Saving again keeps the approval.
	cat.Definition = "a small furry pet"
	require.NoError(t, s.SaveEntry(ctx, cat))
	approved, err = s.IsApproved(ctx, "cat")
	require.NoError(t, err)
	assert.True(t, approved)

	all, err := s.List(ctx, ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "a small furry pet", all[0].Definition)
	assert.Equal(t, "dog", all[1].Word)

	onlyApproved, err := s.List(ctx, ListFilter{ApprovedOnly: true})
	require.NoError(t, err)
	assert.Len(t, onlyApproved, 1)

	removed, err := s.Remove(ctx, "dog")
	require.NoError(t, err)
	assert.True(t, removed)
	removed, err = s.Remove(ctx, "dog")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestSaveEntryRejectsEmptyWord(t *testing.T) {
	s := newTestStore(t)
	assert.Error(t, s.SaveEntry(context.Background(), types.WordEntry{Word: "  "}))
}

func TestProgress(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	got, err := s.LoadProgress(ctx, "generate")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, s.SaveProgress(ctx, "generate", []string{"dog", "sun"}))
	require.NoError(t, s.SaveProgress(ctx, "generate", []string{"sun"}))
	got, err = s.LoadProgress(ctx, "generate")
	require.NoError(t, err)
	assert.Equal(t, []string{"sun"}, got)

	require.NoError(t, s.ClearProgress(ctx, "generate"))
	got, err = s.LoadProgress(ctx, "generate")
	require.NoError(t, err)
	assert.Nil(t, got)
}
