// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package distractor

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/wordbank/internal/sound"
	"github.com/pdiddy/wordbank/pkg/types"
)

// --- fakes ---

type fakePool struct {
	words      []string
	ignoreExcl bool
	err        error
	tolerances []int
}

func (p *fakePool) WordsByLength(_ context.Context, length, tolerance int, exclude map[string]struct{}, limit int) ([]string, error) {
	p.tolerances = append(p.tolerances, tolerance)
	if p.err != nil {
		return nil, p.err
	}
	var out []string
	for _, w := range p.words {
		n := utf8.RuneCountInString(w)
		if n < length-tolerance || n > length+tolerance {
			continue
		}
		if _, ok := exclude[strings.ToLower(w)]; ok && !p.ignoreExcl {
			continue
		}
		out = append(out, w)
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

type fakePOS struct {
	parts map[string][]string
	errs  map[string]error
	calls map[string]int
}

func (f *fakePOS) PartsOfSpeech(_ context.Context, word string) ([]string, error) {
	if f.calls == nil {
		f.calls = make(map[string]int)
	}
	f.calls[word]++
	if err := f.errs[word]; err != nil {
		return nil, err
	}
	return f.parts[word], nil
}

type fakeCategory struct {
	cats  map[string][]string
	errs  map[string]error
	calls int
}

func (f *fakeCategory) Categories(_ context.Context, word string) ([]string, error) {
	f.calls++
	if err := f.errs[word]; err != nil {
		return nil, err
	}
	return f.cats[word], nil
}

func catTarget() Target {
	return Target{
		Word:     "cat",
		POS:      types.POSNoun,
		Avoid:    []string{"kitten", "feline", "dog"},
		Rhymes:   []string{"hat", "bat"},
		Category: "animal",
	}
}

// --- scenarios ---

func TestGenerateCatScenario(t *testing.T) {
	pool := &fakePool{words: []string{"cap", "hat", "rat", "map"}}
	pos := &fakePOS{parts: map[string][]string{
		"cap": {"noun"}, "rat": {"noun"}, "map": {"noun", "verb"},
	}}
	cat := &fakeCategory{cats: map[string][]string{"rat": {"animal"}, "map": {"object"}}}

	g := New(pool, pos, cat)
	got := g.Generate(context.Background(), catTarget())

	assert.Equal(t, []string{"map"}, got)
	assert.Equal(t, 1, g.Usage("map"))
	assert.Equal(t, 0, g.Usage("rat"))
}

func TestGenerateEmptyPool(t *testing.T) {
	pool := &fakePool{}
	g := New(pool, nil, nil)

	got := g.Generate(context.Background(), catTarget())
	assert.Empty(t, got)
	assert.Equal(t, []int{0, 1, 2}, pool.tolerances, "every tolerance level should be tried")
}

func TestGenerateEmptyTarget(t *testing.T) {
	pool := &fakePool{words: []string{"map"}}
	g := New(pool, nil, nil)
	assert.Empty(t, g.Generate(context.Background(), Target{Word: "  "}))
	assert.Empty(t, pool.tolerances)
}

func TestGeneratePoolErrorIsSoft(t *testing.T) {
	g := New(&fakePool{err: errors.New("network down")}, nil, nil)
	assert.Empty(t, g.Generate(context.Background(), catTarget()))
}

// --- invariants ---

func TestGeneratePrefersExactLength(t *testing.T) {
	pool := &fakePool{words: []string{
		"bird", "house", "map", "lamp", "pen", "sun", "table", "box", "tree", "leg", "rope", "go",
	}}
	g := New(pool, nil, nil)

	got := g.Generate(context.Background(), Target{Word: "cat"})
	require.Len(t, got, 10)
	assert.Equal(t, []string{"map", "pen", "sun", "box", "leg"}, got[:5])
	for _, w := range got[:5] {
		assert.Equal(t, 3, utf8.RuneCountInString(w))
	}
	assert.Equal(t, []string{"bird", "lamp", "tree", "rope", "go"}, got[5:])
}

func TestGenerateStopsAtMax(t *testing.T) {
	pool := &fakePool{words: []string{"map", "pen", "sun", "box", "leg", "fox", "jam", "mug"}}
	g := New(pool, nil, nil, WithConfig(types.DistractorConfig{Max: 3}))

	got := g.Generate(context.Background(), Target{Word: "cat"})
	assert.Equal(t, []string{"map", "pen", "sun"}, got)
	assert.Equal(t, []int{0}, pool.tolerances, "no wider tolerance once full")
}

func TestGenerateNeverLeaksAvoidWords(t *testing.T) {
	// The pool ignores the exclusion set; the generator must still filter.
	pool := &fakePool{
		ignoreExcl: true,
		words:      []string{"Cat", "dog", "DOG", "hat", "feline", "kitten", "map", "map", "pen"},
	}
	g := New(pool, nil, nil)

	got := g.Generate(context.Background(), catTarget())
	assert.Equal(t, []string{"map", "pen"}, got)
	for _, w := range got {
		assert.NotEqual(t, "cat", strings.ToLower(w))
		assert.NotContains(t, []string{"kitten", "feline", "dog", "hat", "bat"}, strings.ToLower(w))
	}
}

func TestGenerateOnsetExclusion(t *testing.T) {
	d := sound.New("en")
	pool := &fakePool{words: []string{
		"ship", "shoe", "sock", "desk", "shed", "milk", "shop", "frog", "star", "rain",
	}}
	g := New(pool, nil, nil, WithDetector(d))

	got := g.Generate(context.Background(), Target{Word: "shell"})
	require.NotEmpty(t, got)
	for _, w := range got {
		assert.NotEqual(t, d.Group("shell"), d.Group(w), w)
	}
	assert.Contains(t, got, "sock", "s differs from sh")
}

func TestGenerateRejectsRhymes(t *testing.T) {
	pool := &fakePool{words: []string{"light", "night", "might", "bring", "table", "sight", "clay", "room"}}
	g := New(pool, nil, nil)

	got := g.Generate(context.Background(), Target{Word: "fight", Rhymes: []string{"kite", "bright"}})
	// light, night, might and sight share "ight" with the target.
	assert.Equal(t, []string{"bring", "table", "clay", "room"}, got)
}

func TestGenerateRhymeEndingFromList(t *testing.T) {
	pool := &fakePool{words: []string{"spite", "dance"}}
	g := New(pool, nil, nil)

	got := g.Generate(context.Background(), Target{Word: "light", Rhymes: []string{"kite"}})
	assert.Equal(t, []string{"dance"}, got, "spite ends like the rhyme kite")
}

func TestGenerateReuseCeiling(t *testing.T) {
	pool := &fakePool{words: []string{"map"}}
	g := New(pool, nil, nil)

	total := 0
	for _, target := range []string{"cat", "dog", "pen", "cup", "sun"} {
		total += len(g.Generate(context.Background(), Target{Word: target}))
	}
	assert.Equal(t, 3, total)
	assert.Equal(t, 3, g.Usage("map"))
	assert.True(t, g.Ledger().Exhausted("MAP"))
}

func TestResetUsage(t *testing.T) {
	pool := &fakePool{words: []string{"map"}}
	g := New(pool, nil, nil)

	for range 3 {
		require.Equal(t, []string{"map"}, g.Generate(context.Background(), Target{Word: "cat"}))
	}
	require.Empty(t, g.Generate(context.Background(), Target{Word: "cat"}))

	g.ResetUsage()
	assert.Equal(t, 0, g.Usage("map"))
	assert.Equal(t, []string{"map"}, g.Generate(context.Background(), Target{Word: "cat"}))
}

// --- part of speech and category ---

func TestGeneratePOS(t *testing.T) {
	pool := &fakePool{words: []string{"run", "map", "big", "pen", "odd"}}
	pos := &fakePOS{
		parts: map[string][]string{
			"run": {"verb", "noun"},
			"map": {"noun"},
			"big": {"adjective"},
		},
		errs: map[string]error{"odd": errors.New("rate limited")},
	}

	tests := []struct {
		name string
		pos  string
		want []string
	}{
		{"noun keeps multi-POS and unknown", "noun", []string{"run", "map", "pen", "odd"}},
		{"adjective", "adjective", []string{"big", "pen", "odd"}},
		{"empty accepts all", "", []string{"run", "map", "big", "pen", "odd"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(pool, pos, nil)
			got := g.Generate(context.Background(), Target{Word: "cat", POS: tt.pos})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGenerateCachesLookups(t *testing.T) {
	pool := &fakePool{words: []string{"map", "pen"}}
	pos := &fakePOS{parts: map[string][]string{"map": {"noun"}, "pen": {"verb"}}}
	cat := &fakeCategory{cats: map[string][]string{"map": {"object"}}}
	g := New(pool, pos, cat)

	tgt := Target{Word: "cat", POS: "noun", Category: "animal"}
	g.Generate(context.Background(), tgt)
	g.Generate(context.Background(), tgt)

	assert.Equal(t, 1, pos.calls["map"])
	assert.Equal(t, 1, pos.calls["pen"])
	assert.Equal(t, 2, cat.calls, "one lookup per distinct candidate")
}

func TestGenerateCategoryFailOpen(t *testing.T) {
	pool := &fakePool{words: []string{"rat", "owl", "map"}}
	cat := &fakeCategory{
		cats: map[string][]string{"owl": {"bird"}, "map": nil},
		errs: map[string]error{"rat": errors.New("timeout")},
	}
	g := New(pool, nil, cat)

	got := g.Generate(context.Background(), Target{Word: "cat", Category: "animal"})
	assert.Equal(t, []string{"rat", "owl", "map"}, got)
}

func TestGenerateCategorySubstringMatch(t *testing.T) {
	pool := &fakePool{words: []string{"rat", "owl", "map"}}
	cat := &fakeCategory{cats: map[string][]string{"rat": {"Animals"}, "owl": {"animal"}}}
	g := New(pool, nil, cat)

	got := g.Generate(context.Background(), Target{Word: "cat", Category: "animal"})
	assert.Equal(t, []string{"map"}, got)
}

func TestGenerateRejectsOnAnyCategory(t *testing.T) {
	pool := &fakePool{words: []string{"rat", "map"}}
	cat := &fakeCategory{cats: map[string][]string{
		"rat": {"rodent", "animal", "pest"},
		"map": {"chart", "document"},
	}}
	g := New(pool, nil, cat)

	got := g.Generate(context.Background(), Target{Word: "cat", Category: "animal"})
	assert.Equal(t, []string{"map"}, got)
}

func TestGenerateTrimsCandidates(t *testing.T) {
	pool := &fakePool{words: []string{" map ", "map", "pen\n"}}
	g := New(pool, nil, nil)

	got := g.Generate(context.Background(), Target{Word: "cat"})
	assert.Equal(t, []string{"map", "pen"}, got)
	assert.Equal(t, 1, g.Usage("map"))
}

func TestGenerateSkipsCategoryWhenTargetHasNone(t *testing.T) {
	pool := &fakePool{words: []string{"rat"}}
	cat := &fakeCategory{cats: map[string][]string{"rat": {"animal"}}}
	g := New(pool, nil, cat)

	assert.Equal(t, []string{"rat"}, g.Generate(context.Background(), Target{Word: "cat"}))
	assert.Zero(t, cat.calls)
}

func TestGenerateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	g := New(&fakePool{words: []string{"map"}}, nil, nil)
	assert.Empty(t, g.Generate(ctx, Target{Word: "cat"}))
}
