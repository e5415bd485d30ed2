// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lexicon

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// tatoebaBase is the Tatoeba sentence search endpoint. Declared as a var so
// tests can substitute an httptest server.
var tatoebaBase = "https://tatoeba.org/eng/api_v0/search"

// MinSentenceWords is the shortest usable example sentence.
const MinSentenceWords = 4

// Tatoeba searches the Tatoeba corpus for example sentences.
type Tatoeba struct {
	HTTP  HTTP
	Cache Cache
}

type tatoebaResponse struct {
	Results []struct {
		Text string `json:"text"`
	} `json:"results"`
}

// Sentences returns every English sentence Tatoeba has for word, unfiltered.
func (s *Tatoeba) Sentences(ctx context.Context, word string) ([]string, error) {
	word = strings.ToLower(strings.TrimSpace(word))
	return cached(ctx, s.Cache, "sentences_v2_"+word, func() ([]string, error) {
		params := url.Values{"from": {"eng"}, "query": {word}, "limit": {"20"}}
		var resp tatoebaResponse
		if err := s.HTTP.getJSON(ctx, tatoebaBase+"?"+params.Encode(), &resp); err != nil {
			return nil, fmt.Errorf("tatoeba %s: %w", word, err)
		}
		out := []string{}
		for _, r := range resp.Results {
			if t := strings.TrimSpace(r.Text); t != "" {
				out = append(out, t)
			}
		}
		return out, nil
	})
}

// FilterSentences keeps up to count sentences that have at least
// MinSentenceWords words, contain word or a simple inflection of it, and
// read as a single sentence. Kept sentences are capitalised and end in
// punctuation.
func FilterSentences(sentences []string, word string, count int) []string {
	pattern := inflectionPattern(strings.ToLower(strings.TrimSpace(word)))
	seen := make(map[string]struct{})
	var out []string
	for _, s := range sentences {
		if count > 0 && len(out) >= count {
			break
		}
		s = strings.TrimSpace(s)
		if len(strings.Fields(s)) < MinSentenceWords || strings.Contains(s, "\n") {
			continue
		}
		if !pattern.MatchString(strings.ToLower(s)) {
			continue
		}
		s = capitalise(s)
		if !strings.ContainsAny(s[len(s)-1:], ".!?") {
			s += "."
		}
		if strings.Count(s, ".") > 2 {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// inflectionPattern matches word and its regular plural, past and
// progressive forms as whole words.
func inflectionPattern(word string) *regexp.Regexp {
	forms := []string{word}
	if strings.HasSuffix(word, "s") {
		forms = append(forms, strings.TrimSuffix(word, "s"))
	} else {
		forms = append(forms, word+"s", word+"es")
	}
	if strings.HasSuffix(word, "e") {
		forms = append(forms, word+"d", strings.TrimSuffix(word, "e")+"ing")
	} else {
		forms = append(forms, word+"ed", word+"ing")
	}
	if strings.HasSuffix(word, "y") {
		stem := strings.TrimSuffix(word, "y")
		forms = append(forms, stem+"ies", stem+"ied")
	}
	for i, f := range forms {
		forms[i] = regexp.QuoteMeta(f)
	}
	return regexp.MustCompile(`\b(?:` + strings.Join(forms, "|") + `)\b`)
}

func capitalise(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || unicode.IsUpper(r) {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
