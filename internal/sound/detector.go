// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sound classifies the starting sound of a word into a coarse sound
// group so that phonetically confusable words can be kept apart.
//
// Each language has an ordered table of written onsets (trigraphs such as
// "str", digraphs such as "sh") paired with an IPA-like phonetic form. Lookup
// is longest-pattern-first; a word matching no pattern falls back to its
// first letter.
package sound

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/antzucaro/matchr"
)

// Pattern is one written onset and its phonetic form.
type Pattern struct {
	Written  string
	Phonetic string
}

var tables = map[string][]Pattern{
	"en": {
		{"thr", "θr"},
		{"shr", "ʃr"},
		{"scr", "skr"},
		{"spr", "spr"},
		{"str", "str"},
		{"squ", "skw"},
		{"sch", "sk"},
		{"th", "θ"},
		{"sh", "ʃ"},
		{"ch", "tʃ"},
		{"ph", "f"},
		{"wh", "w"},
		{"wr", "r"},
		{"kn", "n"},
		{"gn", "n"},
		{"qu", "kw"},
		{"ck", "k"},
		{"ng", "ŋ"},
	},
	"de": {
		{"sch", "ʃ"},
		{"chr", "kr"},
		{"chs", "ks"},
		{"ch", "x"},
		{"ph", "f"},
		{"qu", "kv"},
		{"sp", "ʃp"},
		{"st", "ʃt"},
		{"th", "t"},
		{"pf", "pf"},
		{"kn", "kn"},
		{"gn", "gn"},
		{"ä", "ɛ"},
		{"ö", "ø"},
		{"ü", "y"},
	},
}

// DefaultLanguage is used when an unknown language is requested.
const DefaultLanguage = "en"

// Languages returns the codes that have a pattern table, sorted.
func Languages() []string {
	langs := make([]string, 0, len(tables))
	for l := range tables {
		langs = append(langs, l)
	}
	sort.Strings(langs)
	return langs
}

// Detector maps words to sound groups. It is read-only after construction
// and safe for concurrent use.
type Detector struct {
	language string
	patterns []Pattern
}

// New returns a Detector for lang. Unknown languages use the English table.
func New(lang string) *Detector {
	table, ok := tables[lang]
	if !ok {
		lang = DefaultLanguage
		table = tables[lang]
	}
	patterns := make([]Pattern, len(table))
	copy(patterns, table)
	// Longest written form first; ties keep table order.
	sort.SliceStable(patterns, func(i, j int) bool {
		return utf8.RuneCountInString(patterns[i].Written) > utf8.RuneCountInString(patterns[j].Written)
	})
	return &Detector{language: lang, patterns: patterns}
}

// Language returns the language code of the active table.
func (d *Detector) Language() string { return d.language }

// Group returns the sound group of word: the longest table pattern that
// prefixes it, or its first letter. An empty word yields "".
func (d *Detector) Group(word string) string {
	w := normalize(word)
	if w == "" {
		return ""
	}
	if p, ok := d.match(w); ok {
		return p.Written
	}
	r, _ := utf8.DecodeRuneInString(w)
	return string(r)
}

// Same reports whether a and b start with the same sound group.
func (d *Detector) Same(a, b string) bool {
	return d.Group(a) == d.Group(b)
}

// Phonetic returns the IPA-like form of the word's onset, or its first
// letter when no pattern matches.
func (d *Detector) Phonetic(word string) string {
	w := normalize(word)
	if w == "" {
		return ""
	}
	if p, ok := d.match(w); ok {
		return p.Phonetic
	}
	r, _ := utf8.DecodeRuneInString(w)
	return string(r)
}

// GroupWords buckets words by sound group, preserving input order within
// each bucket. Empty words are dropped.
func (d *Detector) GroupWords(words []string) map[string][]string {
	groups := make(map[string][]string)
	for _, w := range words {
		g := d.Group(w)
		if g == "" {
			continue
		}
		groups[g] = append(groups[g], w)
	}
	return groups
}

// Key returns the primary Double Metaphone code of word. It is a finer,
// whole-word phonetic key used for reporting, not for grouping.
func (d *Detector) Key(word string) string {
	w := normalize(word)
	if w == "" {
		return ""
	}
	primary, _ := matchr.DoubleMetaphone(w)
	return primary
}

func (d *Detector) match(w string) (Pattern, bool) {
	for _, p := range d.patterns {
		if strings.HasPrefix(w, p.Written) {
			return p, true
		}
	}
	return Pattern{}, false
}

func normalize(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}
