// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lexicon

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/pdiddy/wordbank/pkg/types"
)

// frequencyListURL is the google-10000-english list, most frequent first.
// Declared as a var so tests can substitute an httptest server.
var frequencyListURL = "https://raw.githubusercontent.com/first20hours/google-10000-english/master/google-10000-english-no-swears.txt"

const frequencyCacheKey = "frequency_list_v2"

// minPoolWordLen drops very short tokens (abbreviations, fragments).
const minPoolWordLen = 3

// FrequencyList is a frequency-ranked word pool. It loads lazily on first
// use and is safe for concurrent use.
type FrequencyList struct {
	HTTP  HTTP
	Cache Cache

	mu     sync.Mutex
	loaded bool
	words  []string
	ranks  map[string]int
}

type frequencyData struct {
	Words []string       `json:"words"`
	Ranks map[string]int `json:"ranks"`
}

// NewFrequencyList returns a list that fetches over h and caches in c.
// c may be nil.
func NewFrequencyList(h HTTP, c Cache) *FrequencyList {
	return &FrequencyList{HTTP: h, Cache: c}
}

// Fetch loads the list if it has not been loaded yet.
func (f *FrequencyList) Fetch(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loaded {
		return nil
	}

	data, err := cached(ctx, f.Cache, frequencyCacheKey, func() (frequencyData, error) {
		body, err := f.HTTP.get(ctx, frequencyListURL)
		if err != nil {
			return frequencyData{}, fmt.Errorf("fetching frequency list: %w", err)
		}
		return parseFrequencyList(string(body)), nil
	})
	if err != nil {
		return err
	}
	f.words, f.ranks = data.Words, data.Ranks
	f.loaded = true
	return nil
}

// Load replaces the list with text, one word per line, most frequent first.
func (f *FrequencyList) Load(text string) {
	data := parseFrequencyList(text)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.words, f.ranks = data.Words, data.Ranks
	f.loaded = true
}

// parseFrequencyList keeps lowercase alphabetic words of at least three
// letters that are not stopwords. A word's rank is its line number.
func parseFrequencyList(text string) frequencyData {
	data := frequencyData{Ranks: make(map[string]int)}
	sc := bufio.NewScanner(strings.NewReader(text))
	line := 0
	for sc.Scan() {
		line++
		w := strings.ToLower(strings.TrimSpace(sc.Text()))
		if !IsAlpha(w) || utf8.RuneCountInString(w) < minPoolWordLen || IsStopword(w) {
			continue
		}
		if _, dup := data.Ranks[w]; dup {
			continue
		}
		data.Words = append(data.Words, w)
		data.Ranks[w] = line
	}
	return data
}

// Len returns the number of words loaded.
func (f *FrequencyList) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.words)
}

// Rank returns word's position in the list, lower being more frequent, or
// types.UnrankedFrequency when the word is absent or the list cannot load.
func (f *FrequencyList) Rank(ctx context.Context, word string) int {
	if err := f.Fetch(ctx); err != nil {
		return types.UnrankedFrequency
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if r, ok := f.ranks[strings.ToLower(strings.TrimSpace(word))]; ok {
		return r
	}
	return types.UnrankedFrequency
}

// TopWords returns the n most frequent words not in exclude (lowercase).
func (f *FrequencyList) TopWords(ctx context.Context, n int, exclude map[string]struct{}) ([]string, error) {
	return f.filter(ctx, n, exclude, func(string) bool { return true })
}

// WordsByLength returns up to limit words, most frequent first, whose rune
// length lies within tolerance of length and which are not in exclude
// (lowercase).
func (f *FrequencyList) WordsByLength(ctx context.Context, length, tolerance int, exclude map[string]struct{}, limit int) ([]string, error) {
	lo, hi := length-tolerance, length+tolerance
	return f.filter(ctx, limit, exclude, func(w string) bool {
		n := utf8.RuneCountInString(w)
		return n >= lo && n <= hi
	})
}

func (f *FrequencyList) filter(ctx context.Context, limit int, exclude map[string]struct{}, keep func(string) bool) ([]string, error) {
	if err := f.Fetch(ctx); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []string
	for _, w := range f.words {
		if limit > 0 && len(out) >= limit {
			break
		}
		if _, skip := exclude[w]; skip {
			continue
		}
		if keep(w) {
			out = append(out, w)
		}
	}
	return out, nil
}
