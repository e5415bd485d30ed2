// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package wordbank

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/wordbank/pkg/types"
)

// Request is one word to generate, optionally pinned to a part of speech.
type Request struct {
	Word string
	POS  string
}

// String renders r the way ParseRequest reads it.
func (r Request) String() string {
	if r.POS == "" {
		return r.Word
	}
	return r.Word + "," + r.POS
}

var validPOS = map[string]bool{
	types.POSNoun:      true,
	types.POSVerb:      true,
	types.POSAdjective: true,
	types.POSAdverb:    true,
}

// ParseRequest reads "word" or "word,pos".
func ParseRequest(s string) (Request, error) {
	word, pos, _ := strings.Cut(s, ",")
	r := Request{
		Word: strings.ToLower(strings.TrimSpace(word)),
		POS:  strings.ToLower(strings.TrimSpace(pos)),
	}
	if r.Word == "" {
		return Request{}, fmt.Errorf("empty word in %q", s)
	}
	if r.POS != "" && !validPOS[r.POS] {
		return Request{}, fmt.Errorf("unknown part of speech %q for %s", r.POS, r.Word)
	}
	return r, nil
}

// ParseRequests parses each string with ParseRequest, applying pos to
// entries that do not name their own.
func ParseRequests(lines []string, pos string) ([]Request, error) {
	out := make([]Request, 0, len(lines))
	for _, line := range lines {
		r, err := ParseRequest(line)
		if err != nil {
			return nil, err
		}
		if r.POS == "" {
			r.POS = pos
		}
		out = append(out, r)
	}
	return out, nil
}

// ReadWordList reads one request per line. Blank lines and lines starting
// with # are ignored; duplicate words keep their first occurrence.
func ReadWordList(r io.Reader) ([]Request, error) {
	var out []Request
	sc := bufio.NewScanner(r)
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		req, err := ParseRequest(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
		out = append(out, req)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading word list: %w", err)
	}
	return Dedupe(out), nil
}

// Dedupe drops requests whose entry ID was already requested, keeping the
// first occurrence.
func Dedupe(reqs []Request) []Request {
	seen := make(map[string]bool, len(reqs))
	out := make([]Request, 0, len(reqs))
	for _, r := range reqs {
		id := EntryID(r.Word)
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, r)
	}
	return out
}
