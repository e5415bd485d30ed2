// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lexicon

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleLightJSON = `[{
  "word": "light",
  "meanings": [
    {
      "partOfSpeech": "noun",
      "definitions": [
        {"definition": "Visible electromagnetic radiation.", "synonyms": ["illumination"]},
        {"definition": "A source of illumination such as a lamp.", "example": "Turn on the light, please."}
      ],
      "synonyms": ["lamp"],
      "antonyms": ["darkness"]
    },
    {
      "partOfSpeech": "adjective",
      "definitions": [
        {"definition": "Having little weight; not heavy.", "example": "The box is light enough to carry.", "antonyms": ["heavy"]},
        {"definition": "Pale in colour.", "example": "She wore a light blue dress."}
      ],
      "synonyms": ["lightweight"]
    },
    {
      "partOfSpeech": "verb",
      "definitions": [
        {"definition": "To start a fire; archaic sense of alighting.", "example": "They light the candles."}
      ]
    }
  ]
}]`

const samplePrepositionJSON = `[{
  "word": "amid",
  "meanings": [
    {"partOfSpeech": "preposition", "definitions": [{"definition": "In the middle of something."}]}
  ]
}]`

func fdServer(t *testing.T, bodies map[string]string, hits *int32) HTTP {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			atomic.AddInt32(hits, 1)
		}
		body, ok := bodies[path.Base(r.URL.Path)]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"title":"No Definitions Found"}`)
			return
		}
		fmt.Fprint(w, body)
	}))
	t.Cleanup(ts.Close)
	override(t, &freeDictionaryBase, ts.URL+"/api/v2/entries/en")
	return testHTTP(ts)
}

func TestFreeDictionaryLookup(t *testing.T) {
	h := fdServer(t, map[string]string{"light": sampleLightJSON}, nil)
	d := &FreeDictionary{HTTP: h}

	def, err := d.Lookup(context.Background(), "Light")
	require.NoError(t, err)

	// light is usually an adjective; the +100 bonus picks the adjective sense
	// with an example.
	assert.Equal(t, "adjective", def.POS)
	assert.Equal(t, "Having little weight; not heavy.", def.Definition)
	assert.Equal(t, []string{"noun", "adjective", "verb"}, def.AllPOS)
	assert.Equal(t, []string{"illumination", "lamp", "lightweight"}, def.Synonyms)
	assert.Equal(t, []string{"heavy", "darkness"}, def.Antonyms)
	require.NotEmpty(t, def.Examples)
	assert.Equal(t, "The box is light enough to carry.", def.Examples[0])
	assert.Contains(t, def.Examples, "She wore a light blue dress.")
}

func TestFreeDictionaryLookupErrors(t *testing.T) {
	h := fdServer(t, map[string]string{"amid": samplePrepositionJSON}, nil)
	d := &FreeDictionary{HTTP: h}
	ctx := context.Background()

	_, err := d.Lookup(ctx, "zzxq")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = d.Lookup(ctx, "amid")
	assert.ErrorIs(t, err, ErrExcluded)

	_, err = d.Lookup(ctx, "the")
	assert.ErrorIs(t, err, ErrExcluded, "stopwords never reach the API")
}

func TestFreeDictionaryPartsOfSpeech(t *testing.T) {
	var hits int32
	h := fdServer(t, map[string]string{"light": sampleLightJSON}, &hits)
	d := &FreeDictionary{HTTP: h, Cache: newMemCache()}
	ctx := context.Background()

	got, err := d.PartsOfSpeech(ctx, "light")
	require.NoError(t, err)
	assert.Equal(t, []string{"noun", "adjective", "verb"}, got)

	got, err = d.PartsOfSpeech(ctx, "zzxq")
	require.NoError(t, err)
	assert.Empty(t, got, "unknown word is unknown, not an error")

	_, err = d.PartsOfSpeech(ctx, "light")
	require.NoError(t, err)
	_, err = d.PartsOfSpeech(ctx, "zzxq")
	require.NoError(t, err)
	assert.Equal(t, int32(2), hits, "answers, including misses, are cached")
}

func TestFreeDictionaryRelations(t *testing.T) {
	h := fdServer(t, map[string]string{"light": sampleLightJSON}, nil)
	d := &FreeDictionary{HTTP: h}

	syns, ants, err := d.Relations(context.Background(), "light")
	require.NoError(t, err)
	assert.Equal(t, []string{"illumination", "lamp", "lightweight"}, syns)
	assert.Equal(t, []string{"darkness", "heavy"}, ants)
}

func TestBadDefinition(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"cat", true},
		{"Too short", true},
		{"Things that are big in size.", true},
		{"The state of being big, or large.", true},
		{"A binary operator on two numbers.", true},
		{"A small domesticated animal.", false},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			word := "big"
			if tt.text == "cat" {
				word = "cat"
			}
			assert.Equal(t, tt.want, badDefinition(tt.text, word))
		})
	}
}
