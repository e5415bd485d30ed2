// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package distractor

import (
	"strings"
	"unicode/utf8"
)

const rhymeSuffixLen = 3

// wordSet is a set of lowercase words.
type wordSet map[string]struct{}

func (s wordSet) has(w string) bool {
	_, ok := s[w]
	return ok
}

func (s wordSet) add(w string) { s[w] = struct{}{} }

// buildAvoid lowercases every avoid word and rhyme into one set that also
// holds the target, and derives the three-rune endings of the rhymes.
func buildAvoid(target string, avoid, rhymes []string) (wordSet, wordSet) {
	set := make(wordSet, len(avoid)+len(rhymes)+1)
	for _, w := range avoid {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
			set.add(w)
		}
	}
	set.add(strings.ToLower(target))

	endings := make(wordSet, len(rhymes))
	for _, r := range rhymes {
		r = strings.ToLower(strings.TrimSpace(r))
		if r == "" {
			continue
		}
		set.add(r)
		if utf8.RuneCountInString(r) >= rhymeSuffixLen {
			endings.add(suffix(r, rhymeSuffixLen))
		}
	}
	return set, endings
}

// endsAlike reports whether word looks like a rhyme of target: the two share
// their last four or last three runes, or word's three-rune ending belongs
// to a known rhyme. Identical words do not count as rhymes.
func endsAlike(word, target string, endings wordSet) bool {
	w, t := strings.ToLower(word), strings.ToLower(target)
	if w == t {
		return false
	}
	if len(endings) > 0 && utf8.RuneCountInString(w) >= rhymeSuffixLen {
		if endings.has(suffix(w, rhymeSuffixLen)) {
			return true
		}
	}
	wl, tl := utf8.RuneCountInString(w), utf8.RuneCountInString(t)
	for _, n := range []int{4, 3} {
		if wl >= n && tl >= n && suffix(w, n) == suffix(t, n) {
			return true
		}
	}
	return false
}

// categoryMatches reports whether any of got matches want
// case-insensitively, where either label containing the other counts as a
// match. Empty labels never match.
func categoryMatches(got []string, want string) bool {
	w := strings.ToLower(strings.TrimSpace(want))
	if w == "" {
		return false
	}
	for _, c := range got {
		c = strings.ToLower(strings.TrimSpace(c))
		if c != "" && (strings.Contains(c, w) || strings.Contains(w, c)) {
			return true
		}
	}
	return false
}

// suffix returns the last n runes of s.
func suffix(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[len(r)-n:])
}

func runeLen(s string) int { return utf8.RuneCountInString(s) }

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
