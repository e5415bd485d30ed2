// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lexicon

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// USFNorms reads the University of South Florida free-association norms:
// CSV files with CUE, TARGET and #G (number of participants giving the
// response) columns. Every regular file in Dir is loaded on first use.
type USFNorms struct {
	Dir string

	once sync.Once
	err  error
	cues map[string][]usfResponse
}

type usfResponse struct {
	word  string
	count int
}

// NewUSFNorms returns norms read from dir.
func NewUSFNorms(dir string) *USFNorms {
	return &USFNorms{Dir: dir}
}

// Associations returns up to limit single-word responses to word, most
// frequently given first. Words missing from the norms yield an empty list.
func (u *USFNorms) Associations(_ context.Context, word string, limit int) ([]string, error) {
	u.once.Do(func() { u.err = u.load() })
	if u.err != nil {
		return nil, u.err
	}

	responses := u.cues[strings.ToUpper(strings.TrimSpace(word))]
	out := make([]string, 0, len(responses))
	for _, r := range responses {
		if limit > 0 && len(out) >= limit {
			break
		}
		out = append(out, r.word)
	}
	return out, nil
}

func (u *USFNorms) load() error {
	entries, err := os.ReadDir(u.Dir)
	if err != nil {
		return fmt.Errorf("reading association norms %s: %w", u.Dir, err)
	}

	u.cues = make(map[string][]usfResponse)
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		path := filepath.Join(u.Dir, e.Name())
		if err := u.loadFile(path); err != nil {
			slog.Warn("skipping association norms file", "path", path, "error", err)
		}
	}

	for cue, rs := range u.cues {
		sort.SliceStable(rs, func(i, j int) bool { return rs[i].count > rs[j].count })
		u.cues[cue] = dedupeResponses(rs)
	}
	return nil
}

func (u *USFNorms) loadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return fmt.Errorf("reading header: %w", err)
	}
	cueCol, targetCol, countCol := -1, -1, -1
	for i, h := range header {
		switch strings.ToUpper(strings.TrimSpace(h)) {
		case "CUE":
			cueCol = i
		case "TARGET":
			targetCol = i
		case "#G":
			countCol = i
		}
	}
	if cueCol < 0 || targetCol < 0 || countCol < 0 {
		return errors.New("missing CUE, TARGET or #G column")
	}

	for {
		rec, err := r.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if len(rec) <= max(cueCol, targetCol, countCol) {
			continue
		}
		cue := strings.ToUpper(strings.TrimSpace(rec[cueCol]))
		target := strings.ToLower(strings.TrimSpace(rec[targetCol]))
		count, _ := strconv.Atoi(strings.TrimSpace(rec[countCol]))
		if cue == "" || target == "" || count <= 0 || strings.Contains(target, " ") {
			continue
		}
		u.cues[cue] = append(u.cues[cue], usfResponse{word: target, count: count})
	}
}

func dedupeResponses(rs []usfResponse) []usfResponse {
	seen := make(map[string]struct{}, len(rs))
	out := rs[:0]
	for _, r := range rs {
		if _, dup := seen[r.word]; dup {
			continue
		}
		seen[r.word] = struct{}{}
		out = append(out, r)
	}
	return out
}
