// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package relations

import (
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/wordbank/internal/lexicon"
)

const minRelatedLen = 3

// domainSpecific words come from sports, computing, medicine, law and
// church usage and confuse young readers.
var domainSpecific = toSet(
	"rbi", "runs", "batting", "pitcher", "inning", "dugout",
	"wicket", "bowler", "batsman", "crease", "stumps",
	"boolean", "integer", "string", "array", "algorithm",
	"seizure", "syndrome", "disorder", "diagnosis",
	"plaintiff", "defendant", "litigation", "tort",
	"heraldic", "ecclesiastical", "liturgical", "canonical",
)

// obscure words show up in thesaurus results but are rarely known.
var obscure = toSet(
	"entropy", "varlet", "befree", "newsworthiness",
	"nonpareil", "bender", "cardinal",
)

// strongSynonyms and strongAntonyms are verified pairs merged ahead of any
// source results.
var strongSynonyms = map[string][]string{
	"best":  {"optimal", "finest", "greatest", "supreme", "top"},
	"worst": {"poorest", "lowest", "bottom"},
	"good":  {"fine", "excellent", "great", "pleasant", "positive"},
	"bad":   {"poor", "terrible", "awful", "unpleasant", "negative"},
	"big":   {"large", "huge", "enormous", "massive", "giant"},
	"small": {"little", "tiny", "minute", "miniature", "compact"},
	"happy": {"joyful", "cheerful", "glad", "pleased", "content"},
	"sad":   {"unhappy", "sorrowful", "melancholy", "depressed", "gloomy"},
	"fast":  {"quick", "rapid", "swift", "speedy"},
	"slow":  {"sluggish", "gradual", "leisurely", "unhurried"},
}

var strongAntonyms = map[string][]string{
	"best":      {"worst"},
	"good":      {"bad", "evil", "poor"},
	"big":       {"small", "little", "tiny"},
	"happy":     {"sad", "unhappy", "miserable"},
	"fast":      {"slow"},
	"hot":       {"cold", "cool", "freezing"},
	"old":       {"new", "young", "modern"},
	"beautiful": {"ugly", "hideous"},
	"strong":    {"weak", "feeble"},
	"rich":      {"poor"},
	"true":      {"false"},
	"open":      {"closed", "shut"},
	"light":     {"dark", "heavy"},
}

// Valid reports whether word is usable as a relationship of target: a
// single alphabetic token of at least three letters that is not target, a
// stopword, or a domain-specific or obscure term.
func Valid(word, target string) bool {
	w := strings.ToLower(strings.TrimSpace(word))
	if utf8.RuneCountInString(w) < minRelatedLen || !lexicon.IsAlpha(w) {
		return false
	}
	if w == strings.ToLower(strings.TrimSpace(target)) {
		return false
	}
	if _, ok := domainSpecific[w]; ok {
		return false
	}
	if _, ok := obscure[w]; ok {
		return false
	}
	return !lexicon.IsStopword(w)
}

// Clean lowercases words, drops invalid ones and duplicates, and keeps at
// most limit. A non-positive limit keeps everything.
func Clean(target string, limit int, lists ...[]string) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, words := range lists {
		for _, w := range words {
			if limit > 0 && len(out) >= limit {
				return out
			}
			w = strings.ToLower(strings.TrimSpace(w))
			if !Valid(w, target) {
				continue
			}
			if _, dup := seen[w]; dup {
				continue
			}
			seen[w] = struct{}{}
			out = append(out, w)
		}
	}
	return out
}

// cleanRhymes is looser than Clean: rhymes only need to be distinct
// alphabetic words of two or more letters.
func cleanRhymes(target string, limit int, words []string) []string {
	t := strings.ToLower(strings.TrimSpace(target))
	seen := make(map[string]struct{})
	out := []string{}
	for _, w := range words {
		if limit > 0 && len(out) >= limit {
			break
		}
		w = strings.ToLower(strings.TrimSpace(w))
		if w == t || utf8.RuneCountInString(w) < 2 || !lexicon.IsAlpha(w) {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

func toSet(words ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
