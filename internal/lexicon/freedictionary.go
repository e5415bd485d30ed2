// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lexicon

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/wordbank/pkg/types"
)

// freeDictionaryBase is the Free Dictionary API entries endpoint. Declared as
// a var so tests can substitute an httptest server.
var freeDictionaryBase = "https://api.dictionaryapi.dev/api/v2/entries/en"

// FreeDictionary looks up definitions, parts of speech, examples and
// synonyms. It implements distractor.POSResolver.
type FreeDictionary struct {
	HTTP  HTTP
	Cache Cache
}

// Definition is the best everyday sense of a word.
type Definition struct {
	Word       string   `json:"word"`
	Definition string   `json:"definition"`
	POS        string   `json:"pos"`
	AllPOS     []string `json:"allPos"`
	Synonyms   []string `json:"synonyms"`
	Antonyms   []string `json:"antonyms"`
	Examples   []string `json:"examples"`
}

type fdEntry struct {
	Word     string      `json:"word"`
	Meanings []fdMeaning `json:"meanings"`
}

type fdMeaning struct {
	PartOfSpeech string         `json:"partOfSpeech"`
	Definitions  []fdDefinition `json:"definitions"`
	Synonyms     []string       `json:"synonyms"`
	Antonyms     []string       `json:"antonyms"`
}

type fdDefinition struct {
	Definition string   `json:"definition"`
	Example    string   `json:"example"`
	Synonyms   []string `json:"synonyms"`
	Antonyms   []string `json:"antonyms"`
}

// excludedPOS are parts of speech that never become wordbank entries.
var excludedPOS = toSet(
	"preposition", "conjunction", "pronoun", "interjection", "determiner",
	"article", "particle", "abbreviation", "affix", "prefix", "suffix",
)

// technicalTerms mark a definition as too specialised for everyday use.
var technicalTerms = []string{
	"unary", "binary", "operator", "operand", "boolean",
	"syntax", "semantics", "morpheme", "phoneme", "lexeme",
	"algorithm", "function", "variable", "parameter",
	"theorem", "axiom", "postulate", "corollary",
	"genus", "species", "phylum", "taxonomy",
	"plaintiff", "defendant", "tort", "statute",
	"enzyme", "protein", "molecule", "compound",
}

// uncommonPhrases mark a sense as regional, dated or field-specific.
var uncommonPhrases = []string{
	"in baseball", "in cricket", "in golf", "in tennis",
	"in computing", "in programming", "in mathematics",
	"in logic", "in philosophy", "in law", "in medicine",
	"archaic", "obsolete", "(rare)", "dated", "historical",
	"technical term", "legal term", "medical term",
	"chiefly british", "chiefly scottish",
}

// commonPOS is the everyday part of speech of words whose dictionary entry
// lists a rarer sense first.
var commonPOS = map[string]string{
	"new": types.POSAdjective, "old": types.POSAdjective, "big": types.POSAdjective,
	"small": types.POSAdjective, "good": types.POSAdjective, "bad": types.POSAdjective,
	"full": types.POSAdjective, "empty": types.POSAdjective, "hot": types.POSAdjective,
	"cold": types.POSAdjective, "fast": types.POSAdjective, "slow": types.POSAdjective,
	"hard": types.POSAdjective, "soft": types.POSAdjective, "high": types.POSAdjective,
	"low": types.POSAdjective, "long": types.POSAdjective, "short": types.POSAdjective,
	"heavy": types.POSAdjective, "light": types.POSAdjective, "dark": types.POSAdjective,
	"bright": types.POSAdjective, "clean": types.POSAdjective, "dirty": types.POSAdjective,
	"wet": types.POSAdjective, "dry": types.POSAdjective, "sick": types.POSAdjective,
	"happy": types.POSAdjective, "sad": types.POSAdjective, "angry": types.POSAdjective,
	"quiet": types.POSAdjective, "loud": types.POSAdjective, "rich": types.POSAdjective,
	"poor": types.POSAdjective, "young": types.POSAdjective, "easy": types.POSAdjective,
	"true": types.POSAdjective, "false": types.POSAdjective, "tired": types.POSAdjective,
	"hungry": types.POSAdjective, "ready": types.POSAdjective, "busy": types.POSAdjective,

	"rarely": types.POSAdverb, "seldom": types.POSAdverb,

	"home": types.POSNoun, "house": types.POSNoun, "time": types.POSNoun,
	"day": types.POSNoun, "year": types.POSNoun, "hand": types.POSNoun,
	"night": types.POSNoun, "room": types.POSNoun, "water": types.POSNoun,
	"door": types.POSNoun, "car": types.POSNoun, "book": types.POSNoun,
	"food": types.POSNoun, "fire": types.POSNoun, "tree": types.POSNoun,
	"bird": types.POSNoun, "fish": types.POSNoun, "dog": types.POSNoun,
	"cat": types.POSNoun, "ball": types.POSNoun, "table": types.POSNoun,
	"chair": types.POSNoun, "bed": types.POSNoun, "phone": types.POSNoun,
	"boat": types.POSNoun, "train": types.POSNoun, "sun": types.POSNoun,
	"moon": types.POSNoun, "star": types.POSNoun, "rain": types.POSNoun,
	"snow": types.POSNoun, "wind": types.POSNoun, "cloud": types.POSNoun,
	"flower": types.POSNoun,

	"run": types.POSVerb, "walk": types.POSVerb, "talk": types.POSVerb,
	"eat": types.POSVerb, "drink": types.POSVerb, "sleep": types.POSVerb,
	"play": types.POSVerb, "read": types.POSVerb, "write": types.POSVerb,
	"watch": types.POSVerb, "listen": types.POSVerb, "find": types.POSVerb,
	"help": types.POSVerb, "stop": types.POSVerb, "open": types.POSVerb,
	"close": types.POSVerb, "buy": types.POSVerb, "give": types.POSVerb,
	"ask": types.POSVerb, "learn": types.POSVerb, "jump": types.POSVerb,
	"swim": types.POSVerb, "sing": types.POSVerb, "dance": types.POSVerb,
}

// CommonPOS returns the everyday part of speech of word when one is known.
func CommonPOS(word string) (string, bool) {
	p, ok := commonPOS[strings.ToLower(strings.TrimSpace(word))]
	return p, ok
}

// entries fetches and caches the raw dictionary entries for word. An
// unknown word yields no entries and no error.
func (d *FreeDictionary) entries(ctx context.Context, word string) ([]fdEntry, error) {
	return cached(ctx, d.Cache, "free_dictionary_"+word, func() ([]fdEntry, error) {
		var out []fdEntry
		err := d.HTTP.getJSON(ctx, freeDictionaryBase+"/"+url.PathEscape(word), &out)
		if errors.Is(err, ErrNotFound) {
			return []fdEntry{}, nil
		}
		if err != nil {
			return nil, fmt.Errorf("free dictionary %s: %w", word, err)
		}
		return out, nil
	})
}

// PartsOfSpeech returns every part of speech listed for word, lowercase,
// in dictionary order. An unknown word yields an empty list.
func (d *FreeDictionary) PartsOfSpeech(ctx context.Context, word string) ([]string, error) {
	word = strings.ToLower(strings.TrimSpace(word))
	entries, err := d.entries(ctx, word)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		for _, m := range e.Meanings {
			p := strings.ToLower(m.PartOfSpeech)
			if p != "" && !slices.Contains(out, p) {
				out = append(out, p)
			}
		}
	}
	return out, nil
}

// Lookup returns the best everyday definition of word. Senses are scored:
// the word's usual part of speech +100, noun/verb/adjective +10, has an
// example +5, 20-150 characters long +3. Circular, very short, technical and
// uncommon senses are skipped. ErrNotFound means no usable sense; ErrExcluded
// means the word is a stopword or only a function word.
func (d *FreeDictionary) Lookup(ctx context.Context, word string) (Definition, error) {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" || IsStopword(word) {
		return Definition{}, ErrExcluded
	}

	entries, err := d.entries(ctx, word)
	if err != nil {
		return Definition{}, err
	}
	if len(entries) == 0 {
		return Definition{}, ErrNotFound
	}

	expected, _ := CommonPOS(word)
	def := Definition{Word: word}

	var (
		best      *fdDefinition
		bestPOS   string
		bestScore = -1
	)
	for _, e := range entries {
		for mi := range e.Meanings {
			m := &e.Meanings[mi]
			pos := strings.ToLower(m.PartOfSpeech)
			if pos != "" && !slices.Contains(def.AllPOS, pos) {
				def.AllPOS = append(def.AllPOS, pos)
			}
			if _, skip := excludedPOS[pos]; skip {
				continue
			}
			for di := range m.Definitions {
				sense := &m.Definitions[di]
				if badDefinition(sense.Definition, word) || !commonDefinition(sense.Definition) {
					continue
				}
				if score := scoreSense(pos, expected, sense); score > bestScore {
					best, bestPOS, bestScore = sense, pos, score
				}
			}
		}
	}

	if best == nil {
		if len(def.AllPOS) > 0 && allExcluded(def.AllPOS) {
			return Definition{}, ErrExcluded
		}
		return Definition{}, ErrNotFound
	}

	def.Definition = strings.TrimSpace(best.Definition)
	def.POS = bestPOS
	if expected != "" && slices.Contains(def.AllPOS, expected) {
		def.POS = expected
	}

	syns, ants := collectRelations(entries, best, word)
	def.Synonyms = firstN(syns, 5)
	def.Antonyms = firstN(ants, 5)
	def.Examples = collectExamples(entries, best, bestPOS)
	return def, nil
}

// Relations returns synonyms and antonyms listed anywhere in word's entry.
func (d *FreeDictionary) Relations(ctx context.Context, word string) (synonyms, antonyms []string, err error) {
	word = strings.ToLower(strings.TrimSpace(word))
	entries, err := d.entries(ctx, word)
	if err != nil {
		return nil, nil, err
	}
	syns, ants := collectRelations(entries, nil, word)
	return syns, ants, nil
}

func scoreSense(pos, expected string, sense *fdDefinition) int {
	score := 0
	if expected != "" && pos == expected {
		score += 100
	}
	switch pos {
	case types.POSNoun, types.POSVerb, types.POSAdjective:
		score += 10
	}
	if sense.Example != "" {
		score += 5
	}
	if n := utf8.RuneCountInString(sense.Definition); n >= 20 && n <= 150 {
		score += 3
	}
	return score
}

// badDefinition rejects circular, very short and technical definitions.
func badDefinition(text, word string) bool {
	t := strings.ToLower(strings.TrimSpace(text))
	if t == word || utf8.RuneCountInString(t) < 10 {
		return true
	}
	for _, circular := range []string{"things that are ", "the quality of being ", "the state of being "} {
		if strings.Contains(t, circular+word) {
			return true
		}
	}
	for _, term := range technicalTerms {
		if strings.Contains(t, term) {
			return true
		}
	}
	return false
}

func commonDefinition(text string) bool {
	t := strings.ToLower(text)
	for _, p := range uncommonPhrases {
		if strings.Contains(t, p) {
			return false
		}
	}
	return true
}

func allExcluded(pos []string) bool {
	for _, p := range pos {
		if _, ok := excludedPOS[p]; !ok {
			return false
		}
	}
	return true
}

// collectRelations gathers synonyms and antonyms, those of the chosen sense
// first, then meaning-level ones, deduplicated case-insensitively.
func collectRelations(entries []fdEntry, best *fdDefinition, word string) (syns, ants []string) {
	add := func(dst []string, words []string) []string {
		for _, w := range words {
			w = strings.TrimSpace(w)
			lw := strings.ToLower(w)
			if w == "" || lw == word || slices.ContainsFunc(dst, func(s string) bool { return strings.EqualFold(s, w) }) {
				continue
			}
			dst = append(dst, w)
		}
		return dst
	}
	if best != nil {
		syns = add(syns, best.Synonyms)
		ants = add(ants, best.Antonyms)
	}
	for _, e := range entries {
		for _, m := range e.Meanings {
			for _, def := range m.Definitions {
				syns = add(syns, def.Synonyms)
				ants = add(ants, def.Antonyms)
			}
			syns = add(syns, m.Synonyms)
			ants = add(ants, m.Antonyms)
		}
	}
	return syns, ants
}

// collectExamples returns the example of the chosen sense first, then the
// other examples of the same part of speech, then the rest.
func collectExamples(entries []fdEntry, best *fdDefinition, pos string) []string {
	var samePOS, other []string
	for _, e := range entries {
		for _, m := range e.Meanings {
			for i := range m.Definitions {
				ex := strings.TrimSpace(m.Definitions[i].Example)
				if ex == "" || ex == strings.TrimSpace(best.Example) {
					continue
				}
				if strings.EqualFold(m.PartOfSpeech, pos) {
					samePOS = append(samePOS, ex)
				} else {
					other = append(other, ex)
				}
			}
		}
	}
	var out []string
	if ex := strings.TrimSpace(best.Example); ex != "" {
		out = append(out, ex)
	}
	out = append(out, samePOS...)
	out = append(out, other...)
	return slices.Compact(out)
}

func firstN(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
