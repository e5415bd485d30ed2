// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lexicon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// mwThesaurusBase is the Merriam-Webster Intermediate Thesaurus endpoint.
// Declared as a var so tests can substitute an httptest server.
var mwThesaurusBase = "https://www.dictionaryapi.com/api/v3/references/ithesaurus/json"

// Default request budget of the free Merriam-Webster key.
const (
	DefaultMWPerMinute = 30
	DefaultMWPerDay    = 1000
)

// MWThesaurus looks up synonyms and antonyms in the Merriam-Webster
// Intermediate Thesaurus. Requests are held to a per-minute and per-day
// budget; a spent budget fails fast with ErrRateLimited instead of waiting.
type MWThesaurus struct {
	HTTP  HTTP
	Cache Cache
	Key   string

	minute *rate.Limiter
	day    *rate.Limiter
}

// NewMWThesaurus returns a thesaurus client. Non-positive budgets use the
// defaults.
func NewMWThesaurus(h HTTP, c Cache, key string, perMinute, perDay int) *MWThesaurus {
	if perMinute <= 0 {
		perMinute = DefaultMWPerMinute
	}
	if perDay <= 0 {
		perDay = DefaultMWPerDay
	}
	return &MWThesaurus{
		HTTP:   h,
		Cache:  c,
		Key:    key,
		minute: rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute),
		day:    rate.NewLimiter(rate.Every(24*time.Hour/time.Duration(perDay)), perDay),
	}
}

// Available reports whether a key is configured and the budget has room
// for another request.
func (m *MWThesaurus) Available() bool {
	if m == nil || m.Key == "" {
		return false
	}
	return m.minute.Tokens() >= 1 && m.day.Tokens() >= 1
}

type thesaurusResult struct {
	Synonyms []string `json:"synonyms"`
	Antonyms []string `json:"antonyms"`
}

type mwEntry struct {
	Meta struct {
		Syns [][]string `json:"syns"`
		Ants [][]string `json:"ants"`
	} `json:"meta"`
}

// Relations returns synonyms and antonyms of word from the first thesaurus
// entry, deduplicated in source order. ErrNotFound means the thesaurus only
// offered spelling suggestions.
func (m *MWThesaurus) Relations(ctx context.Context, word string) (synonyms, antonyms []string, err error) {
	if m == nil || m.Key == "" {
		return nil, nil, errors.New("merriam-webster thesaurus key not configured")
	}
	word = strings.ToLower(strings.TrimSpace(word))

	res, err := cached(ctx, m.Cache, "mw_thesaurus_"+word, func() (thesaurusResult, error) {
		if !m.minute.Allow() || !m.day.Allow() {
			return thesaurusResult{}, fmt.Errorf("merriam-webster budget spent: %w", ErrRateLimited)
		}
		return m.fetch(ctx, word)
	})
	if err != nil {
		return nil, nil, err
	}
	if res.Synonyms == nil && res.Antonyms == nil {
		return nil, nil, ErrNotFound
	}
	return res.Synonyms, res.Antonyms, nil
}

func (m *MWThesaurus) fetch(ctx context.Context, word string) (thesaurusResult, error) {
	reqURL := mwThesaurusBase + "/" + url.PathEscape(word) + "?" + url.Values{"key": {m.Key}}.Encode()

	var raw []json.RawMessage
	err := m.HTTP.getJSON(ctx, reqURL, &raw)
	if errors.Is(err, ErrNotFound) {
		return thesaurusResult{}, nil
	}
	if err != nil {
		return thesaurusResult{}, fmt.Errorf("merriam-webster %s: %w", word, err)
	}

	// An unknown word returns a list of suggestion strings.
	if len(raw) == 0 || strings.HasPrefix(strings.TrimSpace(string(raw[0])), `"`) {
		return thesaurusResult{}, nil
	}

	var entry mwEntry
	if err := json.Unmarshal(raw[0], &entry); err != nil {
		return thesaurusResult{}, fmt.Errorf("parsing merriam-webster entry: %w", err)
	}

	res := thesaurusResult{Synonyms: []string{}, Antonyms: []string{}}
	res.Synonyms = appendUnique(res.Synonyms, word, entry.Meta.Syns)
	res.Antonyms = appendUnique(res.Antonyms, word, entry.Meta.Ants)
	return res, nil
}

func appendUnique(dst []string, word string, groups [][]string) []string {
	seen := make(map[string]struct{}, len(dst))
	for _, w := range dst {
		seen[strings.ToLower(w)] = struct{}{}
	}
	for _, g := range groups {
		for _, w := range g {
			w = strings.TrimSpace(w)
			lw := strings.ToLower(w)
			if w == "" || lw == word {
				continue
			}
			if _, dup := seen[lw]; dup {
				continue
			}
			seen[lw] = struct{}{}
			dst = append(dst, w)
		}
	}
	return dst
}
