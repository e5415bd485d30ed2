// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lexicon

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/pdiddy/wordbank/pkg/types"
)

// datamuseBase is the Datamuse words endpoint. Declared as a var so tests
// can substitute an httptest server.
var datamuseBase = "https://api.datamuse.com/words"

// Datamuse resolves categories (hypernyms), rhymes and associations. It
// implements distractor.CategoryResolver through Categories.
type Datamuse struct {
	HTTP  HTTP
	Cache Cache
}

type datamuseWord struct {
	Word  string `json:"word"`
	Score int    `json:"score"`
}

func (d *Datamuse) query(ctx context.Context, rel, word string, max int) ([]datamuseWord, error) {
	params := url.Values{
		rel:   {word},
		"max": {strconv.Itoa(max)},
	}
	var out []datamuseWord
	if err := d.HTTP.getJSON(ctx, datamuseBase+"?"+params.Encode(), &out); err != nil {
		return nil, fmt.Errorf("datamuse %s=%s: %w", rel, word, err)
	}
	return out, nil
}

// maxCategories is how many rel_gen terms count as a word's categories.
const maxCategories = 3

// Categories returns the top general terms Datamuse gives for word ("dog" →
// "animal", "canine"), best first. A word with none yields an empty slice.
func (d *Datamuse) Categories(ctx context.Context, word string) ([]string, error) {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return nil, nil
	}
	return cached(ctx, d.Cache, "categories_"+word, func() ([]string, error) {
		res, err := d.query(ctx, "rel_gen", word, maxCategories)
		if err != nil {
			return nil, err
		}
		out := make([]string, 0, len(res))
		for _, r := range res {
			if w := strings.ToLower(strings.TrimSpace(r.Word)); w != "" {
				out = append(out, w)
			}
		}
		return out, nil
	})
}

// Category returns the most general term for word, or "" when it has none.
func (d *Datamuse) Category(ctx context.Context, word string) (string, error) {
	cats, err := d.Categories(ctx, word)
	if err != nil || len(cats) == 0 {
		return "", err
	}
	return cats[0], nil
}

// FetchCategory returns word's category when pos is noun. Categories are
// not meaningful for other parts of speech.
func (d *Datamuse) FetchCategory(ctx context.Context, word, pos string) (string, error) {
	if pos != types.POSNoun {
		return "", nil
	}
	return d.Category(ctx, word)
}

// Rhymes returns up to limit single-word rhymes of word, best first.
func (d *Datamuse) Rhymes(ctx context.Context, word string, limit int) ([]string, error) {
	word = strings.ToLower(strings.TrimSpace(word))
	words, err := cached(ctx, d.Cache, "rhymes_"+word, func() ([]string, error) {
		res, err := d.query(ctx, "rel_rhy", word, 30)
		if err != nil {
			return nil, err
		}
		return singleWords(res, 2), nil
	})
	return firstN(words, limit), err
}

// Associations returns up to limit words "triggered by" word, strongest
// first.
func (d *Datamuse) Associations(ctx context.Context, word string, limit int) ([]string, error) {
	word = strings.ToLower(strings.TrimSpace(word))
	words, err := cached(ctx, d.Cache, "triggers_"+word, func() ([]string, error) {
		res, err := d.query(ctx, "rel_trg", word, 20)
		if err != nil {
			return nil, err
		}
		return singleWords(res, 3), nil
	})
	return firstN(words, limit), err
}

// singleWords keeps alphabetic single-token results of at least minLen runes.
func singleWords(res []datamuseWord, minLen int) []string {
	out := make([]string, 0, len(res))
	for _, r := range res {
		w := strings.TrimSpace(r.Word)
		if !IsAlpha(w) || len([]rune(w)) < minLen {
			continue
		}
		out = append(out, w)
	}
	return out
}
