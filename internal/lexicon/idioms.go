// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lexicon

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
)

// Idioms finds phrases containing a word in local idiom lists. For a
// language code xx it reads idioms_xx.txt and sample_idioms_xx.txt from
// Dir: one idiom per line, blank lines and # comments ignored. The files
// are read once, on first use; missing files give an empty list.
type Idioms struct {
	Dir      string
	Language string

	once    sync.Once
	err     error
	phrases []string
}

// NewIdioms returns the idiom lists for language in dir.
func NewIdioms(dir, language string) *Idioms {
	return &Idioms{Dir: dir, Language: language}
}

// files lists the candidate idiom files, main list first.
func (i *Idioms) files() []string {
	return []string{
		filepath.Join(i.Dir, "idioms_"+i.Language+".txt"),
		filepath.Join(i.Dir, "sample_idioms_"+i.Language+".txt"),
	}
}

// Phrases returns up to limit idioms that contain word as a whole word, in
// file order, with the first letter capitalised.
func (i *Idioms) Phrases(_ context.Context, word string, limit int) ([]string, error) {
	i.once.Do(func() { i.err = i.load() })
	if i.err != nil {
		return nil, i.err
	}

	word = strings.ToLower(strings.TrimSpace(word))
	out := []string{}
	if word == "" {
		return out, nil
	}
	re := wholeWord(word)
	for _, p := range i.phrases {
		if limit > 0 && len(out) >= limit {
			break
		}
		if re.MatchString(p) {
			out = append(out, capitalise(p))
		}
	}
	return out, nil
}

func (i *Idioms) load() error {
	seen := make(map[string]bool)
	for _, path := range i.files() {
		f, err := os.Open(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return fmt.Errorf("opening idioms: %w", err)
		}
		phrases, err := readIdioms(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		for _, p := range phrases {
			if !seen[p] {
				seen[p] = true
				i.phrases = append(i.phrases, p)
			}
		}
		slog.Debug("loaded idioms", "path", path, "count", len(phrases))
	}
	return nil
}

// readIdioms reads one lowercase idiom per line, collapsing inner spaces.
func readIdioms(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, strings.ToLower(strings.Join(strings.Fields(line), " ")))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading idioms: %w", err)
	}
	return out, nil
}

// wholeWord matches word bounded by non-letters, so that "cat" finds
// "let the cat out of the bag" but not "catch". \b is ASCII-only, which
// would miss words with umlauts.
func wholeWord(word string) *regexp.Regexp {
	return regexp.MustCompile(`(?:^|[^\p{L}])` + regexp.QuoteMeta(word) + `(?:$|[^\p{L}])`)
}
